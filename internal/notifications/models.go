package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeTicketAssigned NotificationType = "TICKET_ASSIGNED"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusQueued  NotificationStatus = "QUEUED"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// TicketNotification is the message published when an intake submission
// receives its token assignment. The consumer turns it into a patient email.
type TicketNotification struct {
	ID   uuid.UUID        `json:"id"`
	Type NotificationType `json:"type"`

	// Recipient info; email may be empty for walk-ins without one, in which
	// case delivery is skipped after logging.
	PatientID      uuid.UUID `json:"patient_id"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`

	// Assignment details
	FacilityName         string `json:"facility_name"`
	TokenNumber          int64  `json:"token_number"`
	SlotNumber           int    `json:"slot_number"`
	TimeRange            string `json:"time_range"`
	PositionInSlot       int    `json:"position_in_slot"`
	EstimatedWaitMinutes int    `json:"estimated_wait_minutes"`

	// Status tracking
	Status    NotificationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	SentAt    *time.Time         `json:"sent_at,omitempty"`
}

// NewTicketNotification builds the pending notification for one submission
func NewTicketNotification(patientID uuid.UUID, email, name, facility string,
	tokenNumber int64, slotNumber int, timeRange string, position, waitMinutes int) *TicketNotification {
	now := time.Now()
	return &TicketNotification{
		ID:                   uuid.New(),
		Type:                 NotificationTypeTicketAssigned,
		PatientID:            patientID,
		RecipientEmail:       email,
		RecipientName:        name,
		FacilityName:         facility,
		TokenNumber:          tokenNumber,
		SlotNumber:           slotNumber,
		TimeRange:            timeRange,
		PositionInSlot:       position,
		EstimatedWaitMinutes: waitMinutes,
		Status:               NotificationStatusPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

func (n *TicketNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func FromJSON(data []byte) (*TicketNotification, error) {
	var n TicketNotification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// GetPartitionKey routes all notifications for one patient to one partition
func (n *TicketNotification) GetPartitionKey() string {
	return n.PatientID.String()
}
