package models

import (
	"fmt"
	"time"
)

// TourReservation links a reservation to one of its tours. Duplicate links for
// the same pair are allowed.
type TourReservation struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	ReservationID  uint         `gorm:"index;not null" json:"reservation"`
	Reservation    *Reservation `gorm:"foreignKey:ReservationID" json:"-"`
	TourID         uint         `gorm:"index;not null" json:"tour"`
	Tour           *Tour        `gorm:"foreignKey:TourID" json:"-"`
	IsPriceReduced bool         `gorm:"not null" json:"is_price_reduced"`
	IsActive       bool         `gorm:"not null" json:"is_active"`
	CreatedAt      time.Time    `json:"-"`
	UpdatedAt      time.Time    `json:"-"`
}

const TourReservationOrdering = "is_active ASC, id ASC"

func (tr TourReservation) String() string {
	return fmt.Sprintf("Reservation #%d - Tour #%d", tr.ReservationID, tr.TourID)
}
