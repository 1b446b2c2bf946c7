package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlots_CoversOperatingDay(t *testing.T) {
	slots := TimeSlots()
	require.Len(t, slots, SlotCount)

	assert.Equal(t, "7:30 AM", slots[0].StartTime)
	assert.Equal(t, "8:30 PM", slots[len(slots)-1].EndTime)

	for i, slot := range slots {
		assert.Equal(t, i+1, slot.SlotNumber)
		assert.Equal(t, slot.StartTime+" - "+slot.EndTime, slot.TimeRange)
	}

	// Contiguous and non-overlapping: each slot ends where the next begins.
	for i := 0; i < len(slots)-1; i++ {
		assert.Equal(t, slots[i].EndTime, slots[i+1].StartTime,
			"slot %d must end where slot %d starts", i+1, i+2)
	}
}

func TestTimeSlots_NoonRendering(t *testing.T) {
	slots := TimeSlots()

	// Slot 5 is 11:30 AM - 12:30 PM, slot 6 is 12:30 PM - 1:30 PM. Hour 12
	// must render as "12", never "0".
	assert.Equal(t, "11:30 AM - 12:30 PM", slots[4].TimeRange)
	assert.Equal(t, "12:30 PM - 1:30 PM", slots[5].TimeRange)
}

func TestTimeSlots_Deterministic(t *testing.T) {
	assert.Equal(t, TimeSlots(), TimeSlots())
}
