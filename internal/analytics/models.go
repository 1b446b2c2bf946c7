package analytics

import "time"

// OverviewStats is the admin dashboard summary. Facility may be empty,
// in which case the numbers cover every facility.
type OverviewStats struct {
	Facility            string          `json:"facility,omitempty"`
	TotalPatients       int             `json:"total_patients"`
	TodayPatients       int             `json:"today_patients"`
	MonthPatients       int             `json:"month_patients"`
	DegradedAllocations int             `json:"degraded_allocations"`
	GenderBreakdown     []GenderCount   `json:"gender_breakdown"`
	FacilityCounts      []FacilityCount `json:"facility_counts"`
	GeneratedAt         time.Time       `json:"generated_at"`
}

// GenderCount is one gender bucket of the overview
type GenderCount struct {
	Gender string `json:"gender"`
	Count  int    `json:"count"`
}

// FacilityCount is one facility bucket of the overview
type FacilityCount struct {
	FacilityName string `json:"facility_name"`
	Count        int    `json:"count"`
}

// SlotOccupancy is the fill level of one consultation slot on one day
type SlotOccupancy struct {
	SlotNumber int    `json:"slot_number"`
	TimeRange  string `json:"time_range"`
	Count      int    `json:"count"`
	Capacity   int    `json:"capacity"`
}

// SlotDashboard is the doctor's view of one facility's day
type SlotDashboard struct {
	FacilityName  string          `json:"facility_name"`
	Date          string          `json:"date"`
	TotalPatients int             `json:"total_patients"`
	Slots         []SlotOccupancy `json:"slots"`
}
