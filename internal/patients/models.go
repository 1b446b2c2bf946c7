package patients

import (
	"time"

	"github.com/google/uuid"
)

// Patient is one intake submission with its token assignment merged in.
// The assignment fields are copied from the allocator at submission time;
// dashboards read them as stored and never re-derive them.
type Patient struct {
	ID uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`

	// Identity
	FirstName   string     `json:"first_name" gorm:"not null"`
	LastName    string     `json:"last_name" gorm:"not null"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Age         int        `json:"age"`
	Gender      string     `json:"gender" gorm:"type:varchar(20)"`

	// Contact
	CountryCode string `json:"country_code" gorm:"type:varchar(8)"`
	Phone       string `json:"phone" gorm:"not null"` // stored with country code
	Email       string `json:"email"`
	Address     string `json:"address"`

	// Medical
	Symptoms   string `json:"symptoms"`
	Department string `json:"department"`

	// Emergency contact
	EmergencyName     string `json:"emergency_name,omitempty"`
	EmergencyPhone    string `json:"emergency_phone,omitempty"`
	EmergencyRelation string `json:"emergency_relation,omitempty"`
	EmergencyContact  string `json:"emergency_contact,omitempty"` // combined display string

	// Facility (name denormalized: dashboards group on it directly)
	FacilityID   uuid.UUID `json:"facility_id" gorm:"type:uuid;index;not null"`
	FacilityName string    `json:"facility_name" gorm:"index;not null"`

	// Token assignment (derived once at submission, then authoritative as stored)
	TokenNumber          int64  `json:"token_number" gorm:"index;not null"`
	SlotNumber           int    `json:"slot_number" gorm:"not null"`
	TimeRange            string `json:"time_range"`
	StartTime            string `json:"start_time"`
	EndTime              string `json:"end_time"`
	PositionInSlot       int    `json:"position_in_slot"`
	EstimatedWaitMinutes int    `json:"estimated_wait_minutes"`
	Degraded             bool   `json:"-" gorm:"default:false"`

	// SubmittedOn is the counter's day bucket (YYYY-MM-DD).
	SubmittedOn string `json:"submitted_on" gorm:"type:varchar(10);index;not null"`

	// Optional link to a logged-in patient account
	UserID *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}
