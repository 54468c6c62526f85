package addressbook

import (
	"fmt"
	"slices"
)

// AddressBook maps contact names to records and remembers insertion order.
// It is not safe for concurrent use.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// New returns an empty address book.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord inserts r keyed by its name. A second record with the same name is rejected.
func (b *AddressBook) AddRecord(r *Record) error {
	key := r.name.value
	if _, exists := b.records[key]; exists {
		return fmt.Errorf("%w: %s", ErrRecordExists, key)
	}
	b.records[key] = r
	b.order = append(b.order, key)
	return nil
}

// Find looks a record up by exact, case-sensitive name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record named name.
func (b *AddressBook) Delete(name string) error {
	if _, ok := b.records[name]; !ok {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, name)
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })
	return nil
}

// Records returns every record in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.order) }
