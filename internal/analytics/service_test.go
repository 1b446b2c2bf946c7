package analytics

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"medq/internal/patients"
	"medq/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsRepository struct {
	overview  *OverviewStats
	occupancy []SlotOccupancy
	records   []patients.Patient
}

func (f *fakeAnalyticsRepository) GetOverview(ctx context.Context, facility string) (*OverviewStats, error) {
	return f.overview, nil
}

func (f *fakeAnalyticsRepository) GetSlotOccupancy(ctx context.Context, facility, day string) ([]SlotOccupancy, error) {
	return f.occupancy, nil
}

func (f *fakeAnalyticsRepository) ListForExport(ctx context.Context, facility, day string) ([]patients.Patient, error) {
	return f.records, nil
}

func TestService_GetSlotDashboardTotals(t *testing.T) {
	repo := &fakeAnalyticsRepository{
		occupancy: []SlotOccupancy{
			{SlotNumber: 1, TimeRange: "7:30 AM - 8:30 AM", Count: 12, Capacity: 60},
			{SlotNumber: 2, TimeRange: "8:30 AM - 9:30 AM", Count: 3, Capacity: 60},
			{SlotNumber: 3, TimeRange: "9:30 AM - 10:30 AM", Count: 0, Capacity: 60},
		},
	}
	svc := NewService(repo, nil, logger.GetDefault())

	dashboard, err := svc.GetSlotDashboard(context.Background(), "City General Hospital", "2024-04-15")
	require.NoError(t, err)

	assert.Equal(t, "City General Hospital", dashboard.FacilityName)
	assert.Equal(t, "2024-04-15", dashboard.Date)
	assert.Equal(t, 15, dashboard.TotalPatients)
	assert.Len(t, dashboard.Slots, 3)
}

func TestService_ExportCSV(t *testing.T) {
	created := time.Date(2024, 4, 15, 9, 45, 0, 0, time.UTC)
	repo := &fakeAnalyticsRepository{
		records: []patients.Patient{
			{
				FirstName:            "Asha",
				LastName:             "Verma",
				Age:                  33,
				Gender:               "female",
				Phone:                "+91 9876543210",
				Email:                "asha@example.com",
				FacilityName:         "City General Hospital",
				TokenNumber:          61,
				SlotNumber:           2,
				TimeRange:            "8:30 AM - 9:30 AM",
				PositionInSlot:       1,
				EstimatedWaitMinutes: 0,
				Symptoms:             "persistent cough, mild fever",
				SubmittedOn:          "2024-04-15",
				CreatedAt:            created,
			},
		},
	}
	svc := NewService(repo, nil, logger.GetDefault())

	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), &buf, "City General Hospital", "2024-04-15")
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, exportHeader, rows[0])

	row := rows[1]
	assert.Equal(t, "61", row[0])
	assert.Equal(t, "Asha", row[1])
	assert.Equal(t, "2", row[8])
	assert.Equal(t, "8:30 AM - 9:30 AM", row[9])
	// Commas inside fields survive the round trip.
	assert.Equal(t, "persistent cough, mild fever", row[12])
	assert.Equal(t, "2024-04-15 09:45:00", row[14])
}

func TestService_ExportCSVEmpty(t *testing.T) {
	svc := NewService(&fakeAnalyticsRepository{}, nil, logger.GetDefault())

	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), &buf, "", "")
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
