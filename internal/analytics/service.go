package analytics

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"medq/internal/shared/constants"
	"medq/pkg/cache"
	"medq/pkg/logger"
)

type Service interface {
	GetOverview(ctx context.Context, facility string) (*OverviewStats, error)
	GetSlotDashboard(ctx context.Context, facility, day string) (*SlotDashboard, error)
	ExportCSV(ctx context.Context, w io.Writer, facility, day string) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
	logger       *logger.Logger
}

// NewService creates the analytics service. cacheService may be nil, in
// which case every read goes straight to the database.
func NewService(repo Repository, cacheService cache.Service, log *logger.Logger) Service {
	return &service{
		repo:         repo,
		cacheService: cacheService,
		logger:       log,
	}
}

func (s *service) GetOverview(ctx context.Context, facility string) (*OverviewStats, error) {
	cacheKey := constants.BuildAnalyticsOverviewKey(facility)

	if s.cacheService != nil {
		var cached OverviewStats
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.repo.GetOverview(ctx, facility)
	if err != nil {
		return nil, fmt.Errorf("failed to get overview stats: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, stats, constants.TTL_ANALYTICS_OVERVIEW); err != nil {
			s.logger.Warn("Failed to cache analytics overview", "error", err)
		}
	}

	return stats, nil
}

func (s *service) GetSlotDashboard(ctx context.Context, facility, day string) (*SlotDashboard, error) {
	cacheKey := constants.BuildAnalyticsSlotsKey(facility, day)

	if s.cacheService != nil {
		var cached SlotDashboard
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	occupancy, err := s.repo.GetSlotOccupancy(ctx, facility, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get slot dashboard: %w", err)
	}

	dashboard := &SlotDashboard{
		FacilityName: facility,
		Date:         day,
		Slots:        occupancy,
	}
	for _, slot := range occupancy {
		dashboard.TotalPatients += slot.Count
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, dashboard, constants.TTL_ANALYTICS_SLOTS); err != nil {
			s.logger.Warn("Failed to cache slot dashboard", "error", err)
		}
	}

	return dashboard, nil
}

var exportHeader = []string{
	"token_number", "first_name", "last_name", "age", "gender",
	"phone", "email", "facility", "slot_number", "time_range",
	"position_in_slot", "estimated_wait_minutes", "symptoms",
	"submitted_on", "created_at",
}

// ExportCSV streams the filtered records. Exports bypass the cache:
// admins expect the file to reflect the table as of now.
func (s *service) ExportCSV(ctx context.Context, w io.Writer, facility, day string) error {
	list, err := s.repo.ListForExport(ctx, facility, day)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, p := range list {
		record := []string{
			strconv.FormatInt(p.TokenNumber, 10),
			p.FirstName,
			p.LastName,
			strconv.Itoa(p.Age),
			p.Gender,
			p.Phone,
			p.Email,
			p.FacilityName,
			strconv.Itoa(p.SlotNumber),
			p.TimeRange,
			strconv.Itoa(p.PositionInSlot),
			strconv.Itoa(p.EstimatedWaitMinutes),
			p.Symptoms,
			p.SubmittedOn,
			p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
