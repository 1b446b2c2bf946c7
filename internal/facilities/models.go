package facilities

import (
	"time"

	"github.com/google/uuid"
)

// Facility is a hospital/location the allocator issues tickets for.
type Facility struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	Active      bool      `json:"active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Facility) TableName() string {
	return "facilities"
}

// CreateFacilityRequest represents the admin facility creation payload
type CreateFacilityRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"max=500"`
}
