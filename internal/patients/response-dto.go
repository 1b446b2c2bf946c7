package patients

import "time"

// TokenInfo is the assignment block shown to the patient after submission
type TokenInfo struct {
	TokenNumber          int64  `json:"token_number"`
	SlotNumber           int    `json:"slot_number"`
	TimeRange            string `json:"time_range"`
	StartTime            string `json:"start_time"`
	EndTime              string `json:"end_time"`
	PositionInSlot       int    `json:"position_in_slot"`
	EstimatedWaitMinutes int    `json:"estimated_wait_minutes"`
}

// SubmissionResponse is returned from the intake endpoint
type SubmissionResponse struct {
	PatientID    string    `json:"patient_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	FacilityName string    `json:"facility_name"`
	Token        TokenInfo `json:"token"`
	SubmittedOn  string    `json:"submitted_on"`
	CreatedAt    time.Time `json:"created_at"`
}

// PatientListResponse is the paginated staff listing
type PatientListResponse struct {
	Patients   []Patient `json:"patients"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

func (p *Patient) ToSubmissionResponse() *SubmissionResponse {
	return &SubmissionResponse{
		PatientID:    p.ID.String(),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		FacilityName: p.FacilityName,
		Token: TokenInfo{
			TokenNumber:          p.TokenNumber,
			SlotNumber:           p.SlotNumber,
			TimeRange:            p.TimeRange,
			StartTime:            p.StartTime,
			EndTime:              p.EndTime,
			PositionInSlot:       p.PositionInSlot,
			EstimatedWaitMinutes: p.EstimatedWaitMinutes,
		},
		SubmittedOn: p.SubmittedOn,
		CreatedAt:   p.CreatedAt,
	}
}
