package facilities

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrFacilityNotFound = errors.New("facility not found")

type Repository interface {
	Create(ctx context.Context, facility *Facility) error
	GetByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	GetByName(ctx context.Context, name string) (*Facility, error)
	ListActive(ctx context.Context) ([]Facility, error)
	NameExists(ctx context.Context, name string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, facility *Facility) error {
	return r.db.WithContext(ctx).Create(facility).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	var facility Facility
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&facility).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return &facility, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Facility, error) {
	var facility Facility
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&facility).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return &facility, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Facility, error) {
	var list []Facility
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) NameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Facility{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
