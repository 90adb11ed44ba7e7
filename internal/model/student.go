package model

// Student holds the housing profile for a registered student. Its
// primary key equals the ID of the User account created alongside it.
type Student struct {
	ID         int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	StudentID  int64  `gorm:"uniqueIndex;not null" json:"student_id"`
	FirstName  string `gorm:"size:100;not null" json:"first_name"`
	SecondName string `gorm:"size:100;not null" json:"second_name"`
	Gender     string `gorm:"size:10;not null" json:"gender"`
	Phone      string `gorm:"size:15;not null" json:"phone"`
	Faculty    string `gorm:"size:100;not null" json:"faculty"`
	Year       int    `gorm:"not null" json:"year"`

	// Associations
	Leases []Lease `gorm:"foreignKey:StudentID" json:"-"`
}
