package model

// MaxLeases is the number of students an apartment can house.
const MaxLeases = 3

// Apartment represents a single unit within a building. LeaseCount is
// a denormalized counter of active leases, capped at MaxLeases.
type Apartment struct {
	ID         int64 `gorm:"primaryKey" json:"id"`
	AptNum     int   `gorm:"not null" json:"apt_num"`
	Floor      int   `gorm:"not null" json:"floor"`
	BuildingID int64 `gorm:"index;not null" json:"building_id"`
	LeaseCount int   `gorm:"not null;default:0" json:"lease_count"`

	// Associations
	Building Building `json:"-"`
}
