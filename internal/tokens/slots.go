package tokens

import "fmt"

// TimeSlots returns the fixed daily slot table: 13 contiguous one-hour
// slots from 7:30 AM through 8:30 PM. The table does not depend on the
// calendar date and is identical on every call.
func TimeSlots() []Slot {
	slots := make([]Slot, 0, SlotCount)
	for i := 0; i < SlotCount; i++ {
		start := formatClock(openingHour+i, openingMinute)
		end := formatClock(openingHour+i+1, openingMinute)
		slots = append(slots, Slot{
			SlotNumber: i + 1,
			StartTime:  start,
			EndTime:    end,
			TimeRange:  start + " - " + end,
		})
	}
	return slots
}

// formatClock renders a 24h hour/minute pair on a 12-hour clock with an
// AM/PM suffix. Hour 12 stays "12", it never becomes "0".
func formatClock(hour, minute int) string {
	switch {
	case hour > 12:
		return fmt.Sprintf("%d:%02d PM", hour-12, minute)
	case hour == 12:
		return fmt.Sprintf("12:%02d PM", minute)
	default:
		return fmt.Sprintf("%d:%02d AM", hour, minute)
	}
}
