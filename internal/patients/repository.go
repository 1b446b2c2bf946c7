package patients

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPatientNotFound = errors.New("patient not found")

const defaultPageLimit = 20

type Repository interface {
	Create(ctx context.Context, patient *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	List(ctx context.Context, query PatientListQuery) ([]Patient, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, patient *Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	var patient Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &patient, nil
}

func (r *repository) List(ctx context.Context, query PatientListQuery) ([]Patient, int64, error) {
	var list []Patient
	var totalCount int64

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = defaultPageLimit
	}

	baseQuery := r.db.WithContext(ctx).Model(&Patient{})
	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("token_number ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&list).Error

	return list, totalCount, err
}

func (r *repository) applyFilters(query *gorm.DB, filters PatientListQuery) *gorm.DB {
	if filters.Facility != "" {
		query = query.Where("facility_name = ?", filters.Facility)
	}
	if filters.Date != "" {
		query = query.Where("submitted_on = ?", filters.Date)
	}
	if filters.SlotNumber > 0 {
		query = query.Where("slot_number = ?", filters.SlotNumber)
	}
	return query
}

// CalculateTotalPages is shared by the listing responses
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
