package models

import (
	"bytes"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar date stored in a DATE column and serialised as YYYY-MM-DD.
type Date struct {
	datatypes.Date
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))}
}

// Today returns the current local calendar date.
func Today() Date {
	return NewDate(time.Now())
}

func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

func (d Date) Time() time.Time {
	return time.Time(d.Date)
}

func (d Date) IsZero() bool {
	return d.Time().IsZero()
}

func (d Date) Equal(other Date) bool {
	return d.String() == other.String()
}

func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
