package idgen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occupiedSet(ids ...string) func(string) (bool, error) {
	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return func(id string) (bool, error) {
		return set[id], nil
	}
}

func TestFormatID(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{n: 167, want: "WR167"},
		{n: 7, want: "WR007"},
		{n: 42, want: "WR042"},
		{n: 1000, want: "WR1000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatID(tt.n))
		})
	}
}

func TestAllocate_FirstSlotFree(t *testing.T) {
	id, chosen, err := Allocate(StartValue, occupiedSet())
	require.NoError(t, err)
	assert.Equal(t, "WR167", id)
	assert.Equal(t, 167, chosen)
}

func TestAllocate_SkipsOccupiedSlots(t *testing.T) {
	id, chosen, err := Allocate(167, occupiedSet("WR167", "WR168"))
	require.NoError(t, err)
	assert.Equal(t, "WR169", id)
	assert.Equal(t, 169, chosen, "counter must advance to the value actually chosen")
}

func TestAllocate_TenthProbeStillSucceeds(t *testing.T) {
	// 9 occupied slots: the 10th and last probe lands on WR176.
	var occupied []string
	for n := 167; n < 176; n++ {
		occupied = append(occupied, FormatID(n))
	}
	id, chosen, err := Allocate(167, occupiedSet(occupied...))
	require.NoError(t, err)
	assert.Equal(t, "WR176", id)
	assert.Equal(t, 176, chosen)
}

func TestAllocate_ExhaustedAfterTenProbes(t *testing.T) {
	var occupied []string
	for n := 167; n < 177; n++ {
		occupied = append(occupied, FormatID(n))
	}
	probes := 0
	exists := func(id string) (bool, error) {
		probes++
		return occupiedSet(occupied...)(id)
	}
	_, _, err := Allocate(167, exists)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 10, probes)
}

func TestAllocate_PropagatesExistenceErrors(t *testing.T) {
	boom := errors.New("connection reset")
	_, _, err := Allocate(167, func(string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}

func TestAllocate_SequentialIssueIsDense(t *testing.T) {
	// Simulates the §8 property sequentially: each committed allocation
	// occupies its slot and advances the counter, producing WR167..WR(167+N-1)
	// with no duplicates or gaps.
	const n = 25
	claimed := map[string]bool{}
	counter := 0 // zero means "counter document absent"

	for i := 0; i < n; i++ {
		next := StartValue
		if counter != 0 {
			next = counter + 1
		}
		id, chosen, err := Allocate(next, func(id string) (bool, error) {
			return claimed[id], nil
		})
		require.NoError(t, err)
		require.False(t, claimed[id], "duplicate id issued: %s", id)
		claimed[id] = true
		counter = chosen
	}

	assert.Len(t, claimed, n)
	for i := 0; i < n; i++ {
		want := fmt.Sprintf("WR%03d", StartValue+i)
		assert.True(t, claimed[want], "missing %s", want)
	}
}
