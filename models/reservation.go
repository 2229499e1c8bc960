package models

import (
	"fmt"
	"time"
)

// Reservation is a booking owned by exactly one user. The owner never changes
// after creation.
type Reservation struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"index;not null" json:"user"`
	User              *User     `gorm:"foreignKey:UserID" json:"-"`
	DateOfReservation Date      `gorm:"not null" json:"date_of_reservation"`
	AmountOfChildren  int       `gorm:"not null" json:"amount_of_children"`
	AmountOfAdults    int       `gorm:"not null" json:"amount_of_adults"`
	IsConfirmed       bool      `gorm:"not null;index" json:"is_confirmed"`
	IsActive          bool      `gorm:"not null" json:"is_active"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`

	TourLinks []TourReservation `gorm:"foreignKey:ReservationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// ReservationOrdering lists unconfirmed reservations first.
const ReservationOrdering = "is_confirmed ASC, id ASC"

// OwnerID satisfies policy.Owned.
func (r *Reservation) OwnerID() uint {
	return r.UserID
}

func (r *Reservation) Validate() error {
	if r.AmountOfChildren < 0 {
		return errNegative("amount_of_children")
	}
	if r.AmountOfAdults < 0 {
		return errNegative("amount_of_adults")
	}
	return nil
}

func (r Reservation) String() string {
	owner := fmt.Sprintf("user #%d", r.UserID)
	if r.User != nil {
		owner = r.User.String()
	}
	return fmt.Sprintf("Reservation #%d by %s", r.ID, owner)
}
