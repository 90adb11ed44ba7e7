package model

// User represents a login account. Non-admin accounts share their ID
// with the Student record created at signup; the seeded admin account
// holds ID 0.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Username string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Password string `gorm:"size:150;not null" json:"-"` // bcrypt hash
	IsAdmin  bool   `gorm:"not null;default:false" json:"is_admin"`
}
