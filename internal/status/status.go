// server/internal/status/status.go
package status

import (
	"fmt"
	"strings"
)

// Category is the tracker-facing bucket a raw status string falls into.
type Category string

const (
	CategoryAccepted Category = "accepted"
	CategoryRejected Category = "rejected"
	CategoryPending  Category = "pending"
	CategoryUnknown  Category = "unknown"
)

// Display is what the tracker screen renders for one category.
type Display struct {
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	// CanEdit marks rejected requests, which the tracker offers to
	// edit & resubmit.
	CanEdit bool `json:"canEdit"`
}

var (
	acceptedStatuses = []string{"accepted", "approved", "verified", "completed"}
	rejectedStatuses = []string{"rejected", "declined", "denied"}
	pendingStatuses  = []string{"pending", "in review", "processing"}
)

// Resolve maps a stored status string (case-insensitively) to its tracker
// display. An unrecognized non-empty status is shown verbatim rather than
// rejected; reviewers occasionally write free-form states into the store.
func Resolve(raw, rejectionReason string) Display {
	normalized := strings.ToLower(raw)

	if contains(acceptedStatuses, normalized) {
		return Display{
			Category:    CategoryAccepted,
			Title:       "Request Accepted by True Sun Trading Company",
			Description: "Your request has been forwarded to Premier Energies, Kindly wait for the approval from Premier Energies.",
		}
	}

	if contains(rejectedStatuses, normalized) {
		desc := "Your request was declined. Please check your email for more details."
		if rejectionReason != "" {
			desc = fmt.Sprintf("Your request was declined due to: %s", rejectionReason)
		}
		return Display{
			Category:    CategoryRejected,
			Title:       "Request Rejected by True Sun Trading Company",
			Description: desc,
			CanEdit:     true,
		}
	}

	if contains(pendingStatuses, normalized) {
		return Display{
			Category:    CategoryPending,
			Title:       "Request Pending with True Sun Trading Company",
			Description: "We are currently reviewing your request. Please check back later.",
		}
	}

	title := raw
	if title == "" {
		title = "Unknown Status"
	}
	return Display{
		Category:    CategoryUnknown,
		Title:       title,
		Description: "Current status: " + title,
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
