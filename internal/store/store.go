// Package store is the data-access layer over the housing schema.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Lordiod/NMUstudenthousing/internal/model"
)

// Sentinel errors surfaced to the HTTP layer.
var (
	// ErrNoApartment means no apartment in the student's housing block
	// has a free slot.
	ErrNoApartment = errors.New("no available apartments")
	// ErrDuplicateStudent means the external student ID is already
	// registered.
	ErrDuplicateStudent = errors.New("student ID already exists")
	// ErrNoLease means the student holds no lease.
	ErrNoLease = errors.New("no lease found")
)

// Store defines the database operations used by the request handlers.
type Store interface {
	DB() *gorm.DB

	UserByID(ctx context.Context, id int64) (*model.User, error)
	StudentByID(ctx context.Context, id int64) (*model.Student, error)
	StudentIDTaken(ctx context.Context, studentID int64) (bool, error)
	LeaseForStudent(ctx context.Context, studentID int64) (*model.Lease, error)
	ApartmentByID(ctx context.Context, id int64) (*model.Apartment, error)
	CreateMaintenanceRequest(ctx context.Context, req *model.MaintenanceRequest) error

	RegisterStudent(ctx context.Context, reg Registration) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// LocationForGender maps a declared gender to the housing block it is
// assigned from. The comparison is case-insensitive; anything other
// than "male" maps to the b2 block.
func LocationForGender(gender string) string {
	if strings.EqualFold(gender, "male") {
		return model.LocationMale
	}
	return model.LocationFemale
}

func (s *gormStore) UserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) StudentByID(ctx context.Context, id int64) (*model.Student, error) {
	var student model.Student
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *gormStore) StudentIDTaken(ctx context.Context, studentID int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Student{}).
		Where("student_id = ?", studentID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check student ID: %w", err)
	}
	return count > 0, nil
}

// LeaseForStudent returns the student's first lease by ascending ID,
// or ErrNoLease when none exists.
func (s *gormStore) LeaseForStudent(ctx context.Context, studentID int64) (*model.Lease, error) {
	var lease model.Lease
	err := s.db.WithContext(ctx).Where("student_id = ?", studentID).
		Order("id").First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoLease
	}
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

func (s *gormStore) ApartmentByID(ctx context.Context, id int64) (*model.Apartment, error) {
	var apartment model.Apartment
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&apartment).Error; err != nil {
		return nil, err
	}
	return &apartment, nil
}

func (s *gormStore) CreateMaintenanceRequest(ctx context.Context, req *model.MaintenanceRequest) error {
	if err := s.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create maintenance request: %w", err)
	}
	return nil
}
