package model

import "time"

// Lease ties a student to an apartment for a term.
type Lease struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	StudentID   int64     `gorm:"index;not null" json:"student_id"`
	ApartmentID int64     `gorm:"index;not null" json:"apartment_id"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	Terms       string    `json:"terms"`

	// Associations
	Student   Student   `json:"-"`
	Apartment Apartment `json:"-"`
}
