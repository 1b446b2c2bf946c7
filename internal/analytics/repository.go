package analytics

import (
	"context"
	"fmt"
	"time"

	"medq/internal/patients"
	"medq/internal/tokens"

	"gorm.io/gorm"
)

// Repository aggregates stored intake records. All numbers come from the
// persisted assignment fields; nothing is re-derived from token math here.
type Repository interface {
	GetOverview(ctx context.Context, facility string) (*OverviewStats, error)
	GetSlotOccupancy(ctx context.Context, facility, day string) ([]SlotOccupancy, error)
	ListForExport(ctx context.Context, facility, day string) ([]patients.Patient, error)
}

type repository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db, now: time.Now}
}

func (r *repository) GetOverview(ctx context.Context, facility string) (*OverviewStats, error) {
	stats := &OverviewStats{
		Facility:    facility,
		GeneratedAt: r.now(),
	}

	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Table("patients")
		if facility != "" {
			q = q.Where("facility_name = ?", facility)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	stats.TotalPatients = int(total)

	var today int64
	if err := base().Where("submitted_on = ?", tokens.DayKey(r.now())).Count(&today).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's patients: %w", err)
	}
	stats.TodayPatients = int(today)

	monthStart := time.Date(r.now().Year(), r.now().Month(), 1, 0, 0, 0, 0, r.now().Location())
	var month int64
	if err := base().Where("created_at >= ?", monthStart).Count(&month).Error; err != nil {
		return nil, fmt.Errorf("failed to count this month's patients: %w", err)
	}
	stats.MonthPatients = int(month)

	var degraded int64
	if err := base().Where("degraded = ?", true).Count(&degraded).Error; err != nil {
		return nil, fmt.Errorf("failed to count degraded allocations: %w", err)
	}
	stats.DegradedAllocations = int(degraded)

	if err := base().
		Select("gender, COUNT(*) as count").
		Group("gender").
		Order("count DESC").
		Scan(&stats.GenderBreakdown).Error; err != nil {
		return nil, fmt.Errorf("failed to get gender breakdown: %w", err)
	}

	if err := base().
		Select("facility_name, COUNT(*) as count").
		Group("facility_name").
		Order("count DESC").
		Scan(&stats.FacilityCounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get facility counts: %w", err)
	}

	return stats, nil
}

// GetSlotOccupancy returns all slots of the schedule in order, including
// empty ones, so dashboards render the full day.
func (r *repository) GetSlotOccupancy(ctx context.Context, facility, day string) ([]SlotOccupancy, error) {
	var rows []struct {
		SlotNumber int
		Count      int
	}

	err := r.db.WithContext(ctx).Table("patients").
		Select("slot_number, COUNT(*) as count").
		Where("facility_name = ? AND submitted_on = ?", facility, day).
		Group("slot_number").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get slot occupancy: %w", err)
	}

	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.SlotNumber] = row.Count
	}

	schedule := tokens.TimeSlots()
	occupancy := make([]SlotOccupancy, 0, len(schedule))
	for _, slot := range schedule {
		occupancy = append(occupancy, SlotOccupancy{
			SlotNumber: slot.SlotNumber,
			TimeRange:  slot.TimeRange,
			Count:      counts[slot.SlotNumber],
			Capacity:   tokens.SlotCapacity,
		})
	}

	return occupancy, nil
}

func (r *repository) ListForExport(ctx context.Context, facility, day string) ([]patients.Patient, error) {
	var list []patients.Patient

	q := r.db.WithContext(ctx).Model(&patients.Patient{})
	if facility != "" {
		q = q.Where("facility_name = ?", facility)
	}
	if day != "" {
		q = q.Where("submitted_on = ?", day)
	}

	err := q.Order("facility_name ASC, token_number ASC").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load patients for export: %w", err)
	}

	return list, nil
}
