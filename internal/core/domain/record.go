package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Record holds one contact: a name, any number of phones (duplicates allowed) and an optional birthday.
type Record struct {
	name     Field
	phones   []Field
	birthday *Field
}

// NewRecord creates a record. An empty birthday means the contact has none.
func NewRecord(name, birthday string) (*Record, error) {
	r := &Record{name: NewName(name)}

	if err := r.SetBirthday(birthday); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Record) Name() Field {
	return r.name
}

// Rename changes the contact's name. An AddressBook holding the record keeps its old key.
func (r *Record) Rename(name string) {
	r.name = NewName(name)
}

// Phones returns a copy of the phone sequence in insertion order.
func (r *Record) Phones() []Field {
	return slices.Clone(r.phones)
}

func (r *Record) Birthday() (Field, bool) {
	if r.birthday == nil {
		return Field{}, false
	}

	return *r.birthday, true
}

// SetBirthday validates and stores a birthday; an empty value clears it.
func (r *Record) SetBirthday(value string) error {
	if value == "" {
		r.birthday = nil
		return nil
	}

	b, err := NewBirthday(value)
	if err != nil {
		return err
	}

	r.birthday = &b
	return nil
}

// AddPhone appends a validated phone. On failure the phones are left unchanged.
func (r *Record) AddPhone(text string) error {
	p, err := NewPhone(text)
	if err != nil {
		return err
	}

	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops every phone equal to text. Nothing matching is not an error.
func (r *Record) RemovePhone(text string) {
	r.phones = slices.DeleteFunc(r.phones, func(p Field) bool {
		return p.String() == text
	})
}

// EditPhone replaces the first phone equal to oldText with newText.
func (r *Record) EditPhone(oldText, newText string) error {
	i := r.indexOf(oldText)
	if i < 0 {
		return fmt.Errorf("%w: phone %q", ErrNotFound, oldText)
	}

	// validate before touching the slice so a bad value leaves the old phone in place
	p, err := NewPhone(newText)
	if err != nil {
		return err
	}

	r.phones[i] = p
	return nil
}

func (r *Record) FindPhone(text string) (Field, bool) {
	i := r.indexOf(text)
	if i < 0 {
		return Field{}, false
	}

	return r.phones[i], true
}

func (r *Record) indexOf(text string) int {
	return slices.IndexFunc(r.phones, func(p Field) bool {
		return p.String() == text
	})
}

// DaysToBirthday counts the days from today to the next occurrence of the birthday, 0 when it is today.
// The second result is false when the record has no birthday.
// A Feb 29 birthday is celebrated on Feb 28 in non-leap years.
func (r *Record) DaysToBirthday(today time.Time) (int, bool) {
	if r.birthday == nil {
		return 0, false
	}

	born, err := r.birthday.Date()
	if err != nil {
		// unreachable, the value was validated on write
		return 0, false
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	next := occurrence(born, day.Year())
	if next.Before(day) {
		next = occurrence(born, day.Year()+1)
	}

	return int(next.Sub(day).Hours() / 24), true
}

func occurrence(born time.Time, year int) time.Time {
	month, d := born.Month(), born.Day()
	if month == time.February && d == 29 && !isLeap(year) {
		d = 28
	}

	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Clone returns a deep copy sharing no state with r.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}

	c := &Record{
		name:   r.name,
		phones: slices.Clone(r.phones),
	}

	if r.birthday != nil {
		b := *r.birthday
		c.birthday = &b
	}

	return c
}

func (r *Record) String() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.String()
	}

	return fmt.Sprintf("Contact name: %s, phones: %s", r.name.Value(), strings.Join(phones, "; "))
}
