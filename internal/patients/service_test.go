package patients

import (
	"context"
	"errors"
	"testing"
	"time"

	"medq/internal/facilities"
	"medq/internal/notifications"
	"medq/internal/tokens"
	"medq/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	created   []*Patient
	createErr error
}

func (f *fakeRepository) Create(ctx context.Context, patient *Patient) error {
	if f.createErr != nil {
		return f.createErr
	}
	patient.ID = uuid.New()
	f.created = append(f.created, patient)
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	for _, p := range f.created {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrPatientNotFound
}

func (f *fakeRepository) List(ctx context.Context, query PatientListQuery) ([]Patient, int64, error) {
	out := make([]Patient, 0, len(f.created))
	for _, p := range f.created {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

type fakeFacilityService struct {
	facility *facilities.Facility
}

func (f *fakeFacilityService) Create(ctx context.Context, req *facilities.CreateFacilityRequest) (*facilities.Facility, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeFacilityService) GetByID(ctx context.Context, id uuid.UUID) (*facilities.Facility, error) {
	if f.facility == nil || f.facility.ID != id {
		return nil, facilities.ErrFacilityNotFound
	}
	return f.facility, nil
}

func (f *fakeFacilityService) GetByName(ctx context.Context, name string) (*facilities.Facility, error) {
	if f.facility == nil || f.facility.Name != name {
		return nil, facilities.ErrFacilityNotFound
	}
	return f.facility, nil
}

func (f *fakeFacilityService) ListActive(ctx context.Context) ([]facilities.Facility, error) {
	if f.facility == nil {
		return nil, nil
	}
	return []facilities.Facility{*f.facility}, nil
}

type stubAllocator struct {
	assignment   tokens.Assignment
	err          error
	calls        int
	lastFacility string
}

func (s *stubAllocator) Assign(ctx context.Context, facility string) (tokens.Assignment, error) {
	s.calls++
	s.lastFacility = facility
	return s.assignment, s.err
}

func (s *stubAllocator) Slots() []tokens.Slot {
	return tokens.TimeSlots()
}

type capturingPublisher struct {
	published  []*notifications.TicketNotification
	publishErr error
}

func (c *capturingPublisher) PublishTicketAssigned(ctx context.Context, n *notifications.TicketNotification) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.published = append(c.published, n)
	return nil
}

func (c *capturingPublisher) Close() error { return nil }

func (c *capturingPublisher) HealthCheck(ctx context.Context) error { return nil }

func newTestService(repo *fakeRepository, allocator *stubAllocator, publisher *capturingPublisher) (Service, *facilities.Facility) {
	facility := &facilities.Facility{
		ID:     uuid.New(),
		Name:   "City General Hospital",
		Active: true,
	}
	svc := NewService(repo, &fakeFacilityService{facility: facility}, allocator, publisher, logger.GetDefault())
	svc.(*service).now = func() time.Time {
		return time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc, facility
}

func validRequest(facilityID uuid.UUID) *SubmitPatientRequest {
	return &SubmitPatientRequest{
		FirstName:         "Asha",
		LastName:          "Verma",
		DateOfBirth:       "1990-06-20",
		Gender:            "female",
		Phone:             "9876543210",
		Email:             "asha@example.com",
		Symptoms:          "persistent cough",
		EmergencyName:     "Ravi Verma",
		EmergencyPhone:    "+91 9876500000",
		EmergencyRelation: "spouse",
		FacilityID:        facilityID.String(),
	}
}

func TestService_Submit(t *testing.T) {
	repo := &fakeRepository{}
	allocator := &stubAllocator{assignment: tokens.Assignment{
		TokenNumber:          61,
		SlotNumber:           2,
		TimeRange:            "8:30 AM - 9:30 AM",
		StartTime:            "8:30 AM",
		EndTime:              "9:30 AM",
		PositionInSlot:       1,
		EstimatedWaitMinutes: 0,
	}}
	publisher := &capturingPublisher{}
	svc, facility := newTestService(repo, allocator, publisher)

	patient, err := svc.Submit(context.Background(), validRequest(facility.ID), nil)
	require.NoError(t, err)

	assert.Equal(t, facility.Name, allocator.lastFacility)
	assert.Equal(t, int64(61), patient.TokenNumber)
	assert.Equal(t, 2, patient.SlotNumber)
	assert.Equal(t, "2024-04-15", patient.SubmittedOn)
	assert.False(t, patient.Degraded)

	require.Len(t, repo.created, 1)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, int64(61), publisher.published[0].TokenNumber)
	assert.Equal(t, "asha@example.com", publisher.published[0].RecipientEmail)
}

func TestService_SubmitDerivations(t *testing.T) {
	repo := &fakeRepository{}
	allocator := &stubAllocator{assignment: tokens.Assignment{TokenNumber: 1, SlotNumber: 1}}
	svc, facility := newTestService(repo, allocator, &capturingPublisher{})

	patient, err := svc.Submit(context.Background(), validRequest(facility.ID), nil)
	require.NoError(t, err)

	// Born 1990-06-20, submitted 2024-04-15: birthday not yet reached.
	assert.Equal(t, 33, patient.Age)
	assert.Equal(t, "+91", patient.CountryCode)
	assert.Equal(t, "+91 9876543210", patient.Phone)
	assert.Equal(t, "Ravi Verma +91 9876500000 (spouse)", patient.EmergencyContact)
}

func TestService_SubmitExplicitCountryCode(t *testing.T) {
	repo := &fakeRepository{}
	allocator := &stubAllocator{assignment: tokens.Assignment{TokenNumber: 1, SlotNumber: 1}}
	svc, facility := newTestService(repo, allocator, &capturingPublisher{})

	req := validRequest(facility.ID)
	req.CountryCode = "+44"
	req.Phone = "7700900123"

	patient, err := svc.Submit(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, "+44 7700900123", patient.Phone)
}

func TestService_SubmitAgeWithoutDOB(t *testing.T) {
	repo := &fakeRepository{}
	allocator := &stubAllocator{assignment: tokens.Assignment{TokenNumber: 1, SlotNumber: 1}}
	svc, facility := newTestService(repo, allocator, &capturingPublisher{})

	req := validRequest(facility.ID)
	req.DateOfBirth = ""
	req.Age = 47

	patient, err := svc.Submit(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, 47, patient.Age)
	assert.Nil(t, patient.DateOfBirth)
}

func TestService_SubmitUnknownFacility(t *testing.T) {
	repo := &fakeRepository{}
	allocator := &stubAllocator{}
	svc, _ := newTestService(repo, allocator, &capturingPublisher{})

	req := validRequest(uuid.New())
	_, err := svc.Submit(context.Background(), req, nil)
	require.ErrorIs(t, err, facilities.ErrFacilityNotFound)
	assert.Zero(t, allocator.calls)
	assert.Empty(t, repo.created)
}

func TestService_SubmitDegradedAssignment(t *testing.T) {
	repo := &fakeRepository{}
	allocator := &stubAllocator{assignment: tokens.Assignment{
		TokenNumber:          tokens.FallbackTicketNumber,
		SlotNumber:           1,
		TimeRange:            "7:30 AM - 8:30 AM",
		StartTime:            "7:30 AM",
		EndTime:              "8:30 AM",
		PositionInSlot:       1,
		EstimatedWaitMinutes: 0,
		Degraded:             true,
	}}
	svc, facility := newTestService(repo, allocator, &capturingPublisher{})

	patient, err := svc.Submit(context.Background(), validRequest(facility.ID), nil)
	require.NoError(t, err)
	assert.True(t, patient.Degraded)
	assert.Equal(t, int64(tokens.FallbackTicketNumber), patient.TokenNumber)
	require.Len(t, repo.created, 1)
}

func TestService_SubmitPersistFailureKeepsToken(t *testing.T) {
	repo := &fakeRepository{createErr: errors.New("db down")}
	allocator := &stubAllocator{assignment: tokens.Assignment{TokenNumber: 5, SlotNumber: 1}}
	svc, facility := newTestService(repo, allocator, &capturingPublisher{})

	_, err := svc.Submit(context.Background(), validRequest(facility.ID), nil)
	require.Error(t, err)

	// The token was consumed even though the write failed; the counter
	// is never decremented.
	assert.Equal(t, 1, allocator.calls)
}

func TestService_SubmitPublishFailureIsNonFatal(t *testing.T) {
	repo := &fakeRepository{}
	allocator := &stubAllocator{assignment: tokens.Assignment{TokenNumber: 1, SlotNumber: 1}}
	publisher := &capturingPublisher{publishErr: errors.New("broker unavailable")}
	svc, facility := newTestService(repo, allocator, publisher)

	patient, err := svc.Submit(context.Background(), validRequest(facility.ID), nil)
	require.NoError(t, err)
	assert.NotNil(t, patient)
	require.Len(t, repo.created, 1)
}

func TestDeriveAge(t *testing.T) {
	now := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday passed this year", time.Date(1990, 2, 1, 0, 0, 0, 0, time.UTC), 34},
		{"birthday later this year", time.Date(1990, 11, 1, 0, 0, 0, 0, time.UTC), 33},
		{"birthday today", time.Date(1990, 4, 15, 0, 0, 0, 0, time.UTC), 34},
		{"born this year", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, deriveAge(tc.dob, now))
		})
	}
}
