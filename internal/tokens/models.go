package tokens

import "errors"

// Daily operating window: 13 one-hour slots from 7:30 AM to 8:30 PM,
// 60 patients per slot, 5 minutes estimated per patient. These values are
// product constants; persisted assignments depend on them, so changing any
// of them requires a data migration.
const (
	SlotCount         = 13
	SlotCapacity      = 60
	PerPatientMinutes = 5

	openingHour   = 7
	openingMinute = 30
)

// FallbackTicketNumber is handed out when the counter store is unreachable.
// Assignments built from it carry Degraded=true so operators can tell them
// apart from a legitimate first ticket of the day.
const FallbackTicketNumber = 1

var (
	// ErrCounterUnavailable means the counter store could not complete the
	// atomic increment. The facade converts this into a degraded assignment
	// instead of surfacing it to patients.
	ErrCounterUnavailable = errors.New("token counter store unavailable")

	// ErrInvalidTicketNumber means the resolver was handed a non-positive
	// ticket number. The issuer never produces one, so this is a contract
	// violation, not a retryable condition.
	ErrInvalidTicketNumber = errors.New("ticket number must be positive")
)

// Slot is one fixed time window of the daily schedule.
type Slot struct {
	SlotNumber int    `json:"slot_number"` // 1-based
	StartTime  string `json:"start_time"`  // "7:30 AM"
	EndTime    string `json:"end_time"`    // "8:30 AM"
	TimeRange  string `json:"time_range"`  // "7:30 AM - 8:30 AM"
}

// Assignment is the full ticket assignment handed back to intake. It is
// derived purely from the ticket number and the fixed slot table, and is
// persisted by the caller alongside the patient record.
type Assignment struct {
	TokenNumber          int64  `json:"token_number"`
	SlotNumber           int    `json:"slot_number"`
	TimeRange            string `json:"time_range"`
	StartTime            string `json:"start_time"`
	EndTime              string `json:"end_time"`
	PositionInSlot       int    `json:"position_in_slot"`
	EstimatedWaitMinutes int    `json:"estimated_wait_minutes"`

	// Degraded is set when the ticket number came from the fallback path.
	// Hidden from patient-facing JSON; operators read it from logs and
	// the stored record.
	Degraded bool `json:"-"`
}
