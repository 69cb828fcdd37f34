package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_Categories(t *testing.T) {
	tests := []struct {
		raw  string
		want Category
	}{
		{raw: "pending", want: CategoryPending},
		{raw: "in review", want: CategoryPending},
		{raw: "processing", want: CategoryPending},
		{raw: "accepted", want: CategoryAccepted},
		{raw: "approved", want: CategoryAccepted},
		{raw: "verified", want: CategoryAccepted},
		{raw: "completed", want: CategoryAccepted},
		{raw: "rejected", want: CategoryRejected},
		{raw: "declined", want: CategoryRejected},
		{raw: "denied", want: CategoryRejected},
		{raw: "Declined", want: CategoryRejected},
		{raw: "APPROVED", want: CategoryAccepted},
		{raw: "PenDing", want: CategoryPending},
		{raw: "escalated", want: CategoryUnknown},
		{raw: "", want: CategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.raw, "").Category)
		})
	}
}

func TestResolve_UnknownShownVerbatim(t *testing.T) {
	d := Resolve("Escalated to L2", "")
	assert.Equal(t, CategoryUnknown, d.Category)
	assert.Equal(t, "Escalated to L2", d.Title)
	assert.Equal(t, "Current status: Escalated to L2", d.Description)
	assert.False(t, d.CanEdit)
}

func TestResolve_EmptyStatus(t *testing.T) {
	d := Resolve("", "")
	assert.Equal(t, "Unknown Status", d.Title)
}

func TestResolve_RejectionReason(t *testing.T) {
	d := Resolve("Declined", "blurry site pictures")
	assert.Equal(t, CategoryRejected, d.Category)
	assert.True(t, d.CanEdit)
	assert.Equal(t, "Your request was declined due to: blurry site pictures", d.Description)

	noReason := Resolve("rejected", "")
	assert.Equal(t, "Your request was declined. Please check your email for more details.", noReason.Description)
}

func TestResolve_OnlyRejectedCanEdit(t *testing.T) {
	assert.False(t, Resolve("accepted", "").CanEdit)
	assert.False(t, Resolve("pending", "").CanEdit)
	assert.True(t, Resolve("denied", "").CanEdit)
}
