package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Boundaries(t *testing.T) {
	cases := []struct {
		name     string
		ticket   int64
		slot     int
		position int
		wait     int
	}{
		{"first ticket of the day", 1, 1, 1, 0},
		{"last ticket of slot one", 60, 1, 60, 295},
		{"first ticket of slot two", 61, 2, 1, 0},
		{"last ticket of the last slot", 780, 13, 60, 295},
		{"wraparound back to slot one", 781, 1, 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.ticket)
			require.NoError(t, err)

			assert.Equal(t, tc.ticket, got.TokenNumber)
			assert.Equal(t, tc.slot, got.SlotNumber)
			assert.Equal(t, tc.position, got.PositionInSlot)
			assert.Equal(t, tc.wait, got.EstimatedWaitMinutes)

			slot := TimeSlots()[tc.slot-1]
			assert.Equal(t, slot.TimeRange, got.TimeRange)
			assert.Equal(t, slot.StartTime, got.StartTime)
			assert.Equal(t, slot.EndTime, got.EndTime)
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	for _, ticket := range []int64{1, 59, 60, 61, 130, 779, 780, 781, 100000} {
		first, err := Resolve(ticket)
		require.NoError(t, err)
		second, err := Resolve(ticket)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestResolve_Wraparound(t *testing.T) {
	// One full cycle is SlotCapacity*SlotCount tickets; adding it changes
	// nothing but the ticket number itself.
	const cycle = SlotCapacity * SlotCount

	for ticket := int64(1); ticket <= cycle; ticket += 37 {
		base, err := Resolve(ticket)
		require.NoError(t, err)
		wrapped, err := Resolve(ticket + cycle)
		require.NoError(t, err)

		assert.Equal(t, base.SlotNumber, wrapped.SlotNumber, "ticket %d", ticket)
		assert.Equal(t, base.PositionInSlot, wrapped.PositionInSlot, "ticket %d", ticket)
		assert.Equal(t, base.EstimatedWaitMinutes, wrapped.EstimatedWaitMinutes, "ticket %d", ticket)
	}
}

func TestResolve_InvalidTicket(t *testing.T) {
	for _, ticket := range []int64{0, -1, -780} {
		_, err := Resolve(ticket)
		assert.ErrorIs(t, err, ErrInvalidTicketNumber, "ticket %d", ticket)
	}
}
