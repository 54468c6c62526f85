package addressbook

import (
	"fmt"
	"slices"
	"strings"
)

// Record is one contact. Its name never changes once created.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a contact with no phones and no birthday.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone numbers in insertion order.
func (r *Record) Phones() []Phone { return slices.Clone(r.phones) }

// FirstPhone returns the first phone number, if any.
func (r *Record) FirstPhone() (Phone, bool) {
	if len(r.phones) == 0 {
		return Phone{}, false
	}
	return r.phones[0], true
}

// Birthday returns the birthday, if set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone appends a phone number unless an equal one is already present.
func (r *Record) AddPhone(raw string) error {
	if r.phoneIndex(raw) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicatePhone, raw)
	}
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone deletes a phone number, keeping the order of the others.
func (r *Record) RemovePhone(raw string) error {
	i := r.phoneIndex(raw)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPhoneNotFound, raw)
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// EditPhone replaces oldRaw with newRaw at the same position.
// The record is left untouched if newRaw does not validate.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	i := r.phoneIndex(oldRaw)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPhoneNotFound, oldRaw)
	}
	p, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	r.phones[i] = p
	return nil
}

// FindPhone returns the phone equal to raw.
func (r *Record) FindPhone(raw string) (Phone, bool) {
	i := r.phoneIndex(raw)
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

// SetBirthday parses and stores raw, replacing any previous birthday.
func (r *Record) SetBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// SetBirthdayDate stores an already validated birthday.
func (r *Record) SetBirthdayDate(b Birthday) {
	r.birthday = &b
}

func (r *Record) phoneIndex(raw string) int {
	return slices.IndexFunc(r.phones, func(p Phone) bool { return p.value == raw })
}

func (r *Record) String() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.value
	}
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(values, "; "))
}
