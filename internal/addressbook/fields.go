// Package addressbook holds the contact model: validated fields, records,
// the in-memory book and the upcoming birthdays schedule.
package addressbook

import (
	"time"

	"github.com/tartampluch/go-assistant/internal/config"
)

const (
	fieldName     = "name"
	fieldPhone    = "phone"
	fieldBirthday = "birthday"
)

// Name is a non-empty contact name.
type Name struct {
	value string
}

// NewName validates a contact name.
func NewName(raw string) (Name, error) {
	if raw == "" {
		return Name{}, &ValidationError{Field: fieldName, Reason: config.ErrNameEmpty}
	}
	return Name{value: raw}, nil
}

func (n Name) String() string { return n.value }

// Phone is a phone number of exactly ten decimal digits.
type Phone struct {
	value string
}

// NewPhone validates a phone number.
func NewPhone(raw string) (Phone, error) {
	if raw == "" {
		return Phone{}, &ValidationError{Field: fieldPhone, Reason: config.ErrPhoneEmpty}
	}
	if len(raw) != config.PhoneLength {
		return Phone{}, &ValidationError{Field: fieldPhone, Reason: config.ErrPhoneLength}
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return Phone{}, &ValidationError{Field: fieldPhone, Reason: config.ErrPhoneDigits}
		}
	}
	return Phone{value: raw}, nil
}

func (p Phone) String() string { return p.value }

// Birthday is a calendar date. Only month and day matter for recurrence.
type Birthday struct {
	date time.Time
}

// NewBirthday parses a DD.MM.YYYY date.
func NewBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(config.DateFormatBirthday, raw)
	if err != nil {
		return Birthday{}, &ValidationError{Field: fieldBirthday, Reason: config.ErrBirthdayFormat}
	}
	return Birthday{date: t}, nil
}

// BirthdayFromDate builds a Birthday from an already parsed date (vCard import).
func BirthdayFromDate(t time.Time) Birthday {
	return Birthday{date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Date returns the birth date at midnight UTC.
func (b Birthday) Date() time.Time { return b.date }

func (b Birthday) String() string { return b.date.Format(config.DateFormatBirthday) }
