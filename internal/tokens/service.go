package tokens

import (
	"context"
	"errors"
	"time"

	"medq/pkg/logger"
)

// Service is the allocator facade: "assign the next ticket for facility F".
type Service interface {
	Assign(ctx context.Context, facility string) (Assignment, error)
	Slots() []Slot
}

type service struct {
	counter CounterStore
	logger  *logger.Logger
	now     func() time.Time
}

func NewService(counter CounterStore, log *logger.Logger) Service {
	return &service{
		counter: counter,
		logger:  log,
		now:     time.Now,
	}
}

// Assign issues the next ticket number for the facility and resolves it to
// a slot, position and wait estimate. When the counter store is unreachable
// it falls back to FallbackTicketNumber and marks the assignment degraded;
// the caller still gets a structurally complete record and the patient is
// never shown a storage error. An issued number is never rolled back, even
// if the caller's subsequent persist fails.
func (s *service) Assign(ctx context.Context, facility string) (Assignment, error) {
	ticket, err := s.counter.Next(ctx, facility, s.now())
	degraded := false

	if err != nil {
		if !errors.Is(err, ErrCounterUnavailable) {
			return Assignment{}, err
		}
		ticket = FallbackTicketNumber
		degraded = true
		s.logger.LogDegradedAllocation(ctx, facility, err)
	}

	assignment, err := Resolve(ticket)
	if err != nil {
		return Assignment{}, err
	}
	assignment.Degraded = degraded

	s.logger.LogTicketAssigned(ctx, facility, assignment.TokenNumber, assignment.SlotNumber, degraded)
	return assignment, nil
}

func (s *service) Slots() []Slot {
	return TimeSlots()
}
