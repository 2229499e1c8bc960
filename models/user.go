package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the identity behind reservations and supervised tours. IsStaff marks
// an administrator.
type User struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Username   string     `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email      string     `gorm:"size:254" json:"email"`
	Password   string     `gorm:"not null" json:"-"` // bcrypt hash
	FirstName  string     `gorm:"size:150" json:"first_name"`
	LastName   string     `gorm:"size:150" json:"last_name"`
	Phone      string     `gorm:"size:32" json:"phone"`
	IsStaff    bool       `gorm:"not null" json:"is_staff"`
	IsActive   bool       `gorm:"not null" json:"is_active"`
	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login"`

	Reservations   []Reservation `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	SupervisedTour []Tour        `gorm:"foreignKey:SupervisorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// Initialize the join date before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now().UTC()
	}
	return
}

func (u User) String() string {
	return u.Username
}
