package model

// Location codes for the gender-segregated housing blocks.
const (
	LocationMale   = "b1"
	LocationFemale = "b2"
)

// Building represents a housing block. Capacity is the maximum number
// of apartments the building may hold.
type Building struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	BuildingNum int    `gorm:"not null" json:"building_num"`
	Location    string `gorm:"size:255;not null" json:"location"`
	Capacity    int    `gorm:"not null" json:"capacity"`
	TotalFloors int    `gorm:"not null" json:"total_floors"`

	// Associations
	Apartments []Apartment `gorm:"foreignKey:BuildingID" json:"-"`
}
