package patients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medq/internal/facilities"
	"medq/internal/notifications"
	"medq/internal/tokens"
	"medq/pkg/logger"

	"github.com/google/uuid"
)

const defaultCountryCode = "+91"

type Service interface {
	Submit(ctx context.Context, req *SubmitPatientRequest, userID *uuid.UUID) (*Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	List(ctx context.Context, query PatientListQuery) ([]Patient, int64, error)
}

type service struct {
	repo       Repository
	facilities facilities.Service
	allocator  tokens.Service
	notifier   notifications.Publisher
	logger     *logger.Logger
	now        func() time.Time
}

func NewService(repo Repository, facilityService facilities.Service, allocator tokens.Service,
	notifier notifications.Publisher, log *logger.Logger) Service {
	return &service{
		repo:       repo,
		facilities: facilityService,
		allocator:  allocator,
		notifier:   notifier,
		logger:     log,
		now:        time.Now,
	}
}

// Submit validates the intake form, assigns the next token for the chosen
// facility and persists the combined record. The token is issued before the
// write and is never reclaimed if the write fails: a gap in stored tokens is
// acceptable, a duplicate is not.
func (s *service) Submit(ctx context.Context, req *SubmitPatientRequest, userID *uuid.UUID) (*Patient, error) {
	facilityID, err := uuid.Parse(req.FacilityID)
	if err != nil {
		return nil, facilities.ErrFacilityNotFound
	}

	facility, err := s.facilities.GetByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	patient := &Patient{
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Gender:            req.Gender,
		Email:             req.Email,
		Address:           req.Address,
		Symptoms:          req.Symptoms,
		Department:        req.Department,
		EmergencyName:     req.EmergencyName,
		EmergencyPhone:    req.EmergencyPhone,
		EmergencyRelation: req.EmergencyRelation,
		FacilityID:        facility.ID,
		FacilityName:      facility.Name,
		UserID:            userID,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("invalid date of birth: %w", err)
		}
		patient.DateOfBirth = &dob
		patient.Age = deriveAge(dob, s.now())
	} else {
		patient.Age = req.Age
	}

	patient.CountryCode = req.CountryCode
	if patient.CountryCode == "" {
		patient.CountryCode = defaultCountryCode
	}
	patient.Phone = combinePhone(patient.CountryCode, req.Phone)
	patient.EmergencyContact = combineEmergencyContact(req.EmergencyName, req.EmergencyPhone, req.EmergencyRelation)

	assignment, err := s.allocator.Assign(ctx, facility.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to assign token: %w", err)
	}

	patient.TokenNumber = assignment.TokenNumber
	patient.SlotNumber = assignment.SlotNumber
	patient.TimeRange = assignment.TimeRange
	patient.StartTime = assignment.StartTime
	patient.EndTime = assignment.EndTime
	patient.PositionInSlot = assignment.PositionInSlot
	patient.EstimatedWaitMinutes = assignment.EstimatedWaitMinutes
	patient.Degraded = assignment.Degraded
	patient.SubmittedOn = tokens.DayKey(s.now())

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to save patient record: %w", err)
	}

	s.logger.LogPatientRegistered(ctx, patient.ID.String(), patient.FacilityName, patient.TokenNumber)
	s.publishNotification(ctx, patient)

	return patient, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, query PatientListQuery) ([]Patient, int64, error) {
	return s.repo.List(ctx, query)
}

// publishNotification is best-effort: the patient already has their token,
// a lost email must not fail the submission.
func (s *service) publishNotification(ctx context.Context, patient *Patient) {
	if s.notifier == nil {
		return
	}

	notification := notifications.NewTicketNotification(
		patient.ID,
		patient.Email,
		patient.FirstName+" "+patient.LastName,
		patient.FacilityName,
		patient.TokenNumber,
		patient.SlotNumber,
		patient.TimeRange,
		patient.PositionInSlot,
		patient.EstimatedWaitMinutes,
	)

	if err := s.notifier.PublishTicketAssigned(ctx, notification); err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to publish ticket notification", err, map[string]interface{}{
			"patient_id":   patient.ID.String(),
			"token_number": patient.TokenNumber,
		})
	}
}

// deriveAge computes completed years between dob and now
func deriveAge(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

func combinePhone(countryCode, phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, countryCode) {
		return phone
	}
	return countryCode + " " + phone
}

// combineEmergencyContact renders the single display string the dashboards
// show: "Jane Doe +91 9876543210 (spouse)"
func combineEmergencyContact(name, phone, relation string) string {
	var parts []string
	if name != "" {
		parts = append(parts, name)
	}
	if phone != "" {
		parts = append(parts, phone)
	}
	if relation != "" {
		parts = append(parts, "("+relation+")")
	}
	return strings.Join(parts, " ")
}
