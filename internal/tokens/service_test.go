package tokens

import (
	"context"
	"testing"
	"time"

	"medq/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCounterStore struct {
	next int64
	err  error

	gotFacility string
}

func (s *stubCounterStore) Next(ctx context.Context, facility string, day time.Time) (int64, error) {
	s.gotFacility = facility
	if s.err != nil {
		return 0, s.err
	}
	return s.next, nil
}

func TestService_Assign(t *testing.T) {
	store := &stubCounterStore{next: 61}
	svc := NewService(store, logger.GetDefault())

	got, err := svc.Assign(context.Background(), "Central Medical Center")
	require.NoError(t, err)

	assert.Equal(t, "Central Medical Center", store.gotFacility)
	assert.Equal(t, int64(61), got.TokenNumber)
	assert.Equal(t, 2, got.SlotNumber)
	assert.Equal(t, 1, got.PositionInSlot)
	assert.Equal(t, 0, got.EstimatedWaitMinutes)
	assert.False(t, got.Degraded)
}

func TestService_AssignDegradedMode(t *testing.T) {
	store := &stubCounterStore{err: ErrCounterUnavailable}
	svc := NewService(store, logger.GetDefault())

	got, err := svc.Assign(context.Background(), "Hospital 1")
	require.NoError(t, err, "a patient never sees the storage error")

	// The record is structurally complete: every field of a normal
	// assignment is populated from the fallback ticket.
	assert.True(t, got.Degraded)
	assert.Equal(t, int64(FallbackTicketNumber), got.TokenNumber)
	assert.Equal(t, 1, got.SlotNumber)
	assert.Equal(t, 1, got.PositionInSlot)
	assert.Equal(t, 0, got.EstimatedWaitMinutes)
	assert.NotEmpty(t, got.TimeRange)
	assert.NotEmpty(t, got.StartTime)
	assert.NotEmpty(t, got.EndTime)
}

func TestService_Slots(t *testing.T) {
	svc := NewService(NewMemoryCounterStore(), logger.GetDefault())
	assert.Equal(t, TimeSlots(), svc.Slots())
}
