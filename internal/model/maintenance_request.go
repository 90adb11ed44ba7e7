package model

import "time"

// Maintenance request statuses.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// MaintenanceRequest is an issue filed by a student against the
// apartment on their lease.
type MaintenanceRequest struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	IssueDescription string    `gorm:"size:255;not null" json:"issue_description"`
	DateReported     time.Time `gorm:"not null" json:"date_reported"`
	Status           string    `gorm:"size:50;not null;default:'Pending'" json:"status"`
	ApartmentID      int64     `gorm:"index;not null" json:"apartment_id"`

	// Associations
	Apartment Apartment `json:"-"`
}
