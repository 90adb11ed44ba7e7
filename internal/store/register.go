package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Lordiod/NMUstudenthousing/internal/model"
)

// Registration carries the validated signup fields plus the computed
// lease term. PasswordHash must already be hashed by the caller.
type Registration struct {
	StudentID    int64
	FirstName    string
	SecondName   string
	Gender       string
	PasswordHash string
	Phone        string
	Faculty      string
	Year         int

	LeaseStart time.Time
	LeaseEnd   time.Time
}

// RegisterStudent runs the apartment-assignment flow in a single
// transaction: it creates the User and Student records, picks the
// first apartment with a free slot in the block matching the
// student's gender, takes the slot, and writes the lease. If any
// step fails, nothing is persisted.
func (s *gormStore) RegisterStudent(ctx context.Context, reg Registration) error {
	location := LocationForGender(reg.Gender)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Student{}).
			Where("student_id = ?", reg.StudentID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check for existing student: %w", err)
		}
		if count > 0 {
			return ErrDuplicateStudent
		}

		user := model.User{
			ID:       reg.StudentID,
			Username: fmt.Sprintf("%s %s", reg.FirstName, reg.SecondName),
			Password: reg.PasswordHash,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		student := model.Student{
			ID:         reg.StudentID,
			StudentID:  reg.StudentID,
			FirstName:  reg.FirstName,
			SecondName: reg.SecondName,
			Gender:     reg.Gender,
			Phone:      reg.Phone,
			Faculty:    reg.Faculty,
			Year:       reg.Year,
		}
		if err := tx.Create(&student).Error; err != nil {
			return fmt.Errorf("failed to create student: %w", err)
		}

		apartment, err := firstAvailableApartment(tx, location)
		if err != nil {
			return err
		}

		taken, err := acquireLeaseSlot(tx, apartment.ID)
		if err != nil {
			return err
		}
		if !taken {
			// A concurrent signup took the last slot between the
			// search and the increment.
			return ErrNoApartment
		}

		leaseRow := model.Lease{
			StudentID:   student.ID,
			ApartmentID: apartment.ID,
			StartDate:   reg.LeaseStart,
			EndDate:     reg.LeaseEnd,
			Terms:       "accepted",
		}
		if err := tx.Create(&leaseRow).Error; err != nil {
			return fmt.Errorf("failed to create lease: %w", err)
		}
		return nil
	})
}

// firstAvailableApartment returns the lowest-ID apartment with a free
// slot in the given housing block, or ErrNoApartment.
func firstAvailableApartment(tx *gorm.DB, location string) (*model.Apartment, error) {
	var apartment model.Apartment
	err := tx.
		Joins("JOIN buildings ON buildings.id = apartments.building_id").
		Where("buildings.location = ? AND apartments.lease_count < ?", location, model.MaxLeases).
		Order("apartments.id").
		First(&apartment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoApartment
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search for an apartment: %w", err)
	}
	return &apartment, nil
}

// acquireLeaseSlot increments the apartment's lease counter only if a
// slot is still free, reporting whether the increment happened. The
// conditional update keeps lease_count under the cap under concurrent
// signups.
func acquireLeaseSlot(tx *gorm.DB, apartmentID int64) (bool, error) {
	res := tx.Model(&model.Apartment{}).
		Where("id = ? AND lease_count < ?", apartmentID, model.MaxLeases).
		UpdateColumn("lease_count", gorm.Expr("lease_count + 1"))
	if res.Error != nil {
		return false, fmt.Errorf("failed to acquire lease slot: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}
