package tokens

// Resolve maps a ticket number onto its slot, position and wait estimate.
// Slots fill in order and cycle: ticket SlotCapacity*SlotCount+1 wraps back
// to slot 1. The wraparound keeps slot labels bounded; past 780 tickets a
// day the label is a display artifact, not a distinct time window.
//
// Resolve is pure and total over positive ticket numbers; the same input
// always yields the same assignment. A non-positive ticket number returns
// ErrInvalidTicketNumber.
func Resolve(ticketNumber int64) (Assignment, error) {
	if ticketNumber < 1 {
		return Assignment{}, ErrInvalidTicketNumber
	}

	slotIndex := int((ticketNumber - 1) / SlotCapacity % SlotCount)
	position := int((ticketNumber-1)%SlotCapacity) + 1

	slot := TimeSlots()[slotIndex]

	return Assignment{
		TokenNumber:          ticketNumber,
		SlotNumber:           slot.SlotNumber,
		TimeRange:            slot.TimeRange,
		StartTime:            slot.StartTime,
		EndTime:              slot.EndTime,
		PositionInSlot:       position,
		EstimatedWaitMinutes: (position - 1) * PerPatientMinutes,
	}, nil
}
