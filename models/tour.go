package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"travelapp-backend/apperrors"
)

type TourType string

const (
	TourTypeAllInclusive TourType = "all inclusive"
	TourTypeStandard     TourType = "standard"
	TourTypeExclusive    TourType = "exclusive"
)

// TourTypes lists the accepted tour types in display order.
var TourTypes = []TourType{TourTypeAllInclusive, TourTypeStandard, TourTypeExclusive}

const (
	PriceDigits       = 9
	PriceScale        = 2
	MaxLocationLength = 45
)

// TourOrdering lists inactive tours first.
const TourOrdering = "is_active ASC, id ASC"

func (t TourType) Valid() bool {
	for _, known := range TourTypes {
		if t == known {
			return true
		}
	}
	return false
}

func ParseTourType(value string) (TourType, error) {
	t := TourType(value)
	if !t.Valid() {
		return "", apperrors.Validation("tour_type", fmt.Sprintf("%q is not a valid choice", value))
	}
	return t, nil
}

// Tour is an offer supervised by a user. Only administrators may create or
// mutate tours; the supervisor gets no extra rights.
type Tour struct {
	ID                      uint            `gorm:"primaryKey" json:"id"`
	SupervisorID            uint            `gorm:"index;not null" json:"supervisor"`
	Supervisor              *User           `gorm:"foreignKey:SupervisorID" json:"-"`
	MaxNumberOfParticipants int             `gorm:"not null" json:"max_number_of_participants"`
	DateStart               Date            `gorm:"not null;index" json:"date_start"`
	DateEnd                 Date            `gorm:"not null" json:"date_end"`
	PlaceID                 int             `gorm:"not null" json:"place_id"`
	TourType                TourType        `gorm:"type:varchar(20);not null;index" json:"tour_type"`
	Price                   decimal.Decimal `gorm:"type:decimal(9,2);not null" json:"price"`
	Country                 string          `gorm:"size:45;not null;index" json:"country"`
	Region                  string          `gorm:"size:45;not null" json:"region"`
	City                    string          `gorm:"size:45;not null" json:"city"`
	Accommodation           string          `gorm:"size:45;not null" json:"accommodation"`
	IsActive                bool            `gorm:"not null" json:"is_active"`
	ProfilePic              *string         `gorm:"size:255" json:"profile_pic"`
	CreatedAt               time.Time       `json:"-"`
	UpdatedAt               time.Time       `json:"-"`

	ReservationLinks []TourReservation `gorm:"foreignKey:TourID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// StandardTours narrows a tour query to the standard offer. It is applied per
// query so results always reflect the current rows.
func StandardTours(db *gorm.DB) *gorm.DB {
	return db.Where("tour_type = ?", TourTypeStandard)
}

// ValidatePrice enforces DECIMAL(9,2).
func ValidatePrice(price decimal.Decimal) error {
	if !price.Equal(price.Round(PriceScale)) {
		return apperrors.Validation("price", fmt.Sprintf("ensure that there are no more than %d decimal places", PriceScale))
	}
	limit := decimal.New(1, PriceDigits-PriceScale)
	if price.Abs().GreaterThanOrEqual(limit) {
		return apperrors.Validation("price", fmt.Sprintf("ensure that there are no more than %d digits in total", PriceDigits))
	}
	return nil
}

// ParsePrice converts decimal text into an exact price.
func ParsePrice(text string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Decimal{}, apperrors.Validation("price", "a valid number is required")
	}
	if err := ValidatePrice(price); err != nil {
		return decimal.Decimal{}, err
	}
	return price, nil
}

func (t *Tour) Validate() error {
	if t.MaxNumberOfParticipants <= 0 {
		return apperrors.Validation("max_number_of_participants", "ensure this value is greater than 0")
	}
	if !t.TourType.Valid() {
		return apperrors.Validation("tour_type", fmt.Sprintf("%q is not a valid choice", string(t.TourType)))
	}
	if err := ValidatePrice(t.Price); err != nil {
		return err
	}
	for _, f := range []struct{ name, value string }{
		{"country", t.Country},
		{"region", t.Region},
		{"city", t.City},
		{"accommodation", t.Accommodation},
	} {
		if len([]rune(f.value)) > MaxLocationLength {
			return apperrors.Validation(f.name, fmt.Sprintf("ensure this field has no more than %d characters", MaxLocationLength))
		}
	}
	return nil
}

func (t Tour) String() string {
	return fmt.Sprintf("Tour #%d - %s, %s", t.ID, t.City, t.Country)
}
