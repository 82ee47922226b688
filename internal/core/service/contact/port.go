package contact

import (
	"context"
	"contactbook/internal/core/domain"
)

// NewContact is the input for creating or overwriting a contact.
type NewContact struct {
	Name     string
	Birthday string
	Phones   []string
}

// Page is one batch of the address book.
type Page struct {
	Records   []*domain.Record
	Page      int
	BatchSize int
	Total     int
}

type Service interface {
	// Queries
	ListContacts(ctx context.Context, page, batchSize int) (Page, error)
	GetContact(ctx context.Context, name string) (*domain.Record, error)
	DaysToBirthday(ctx context.Context, name string) (int, bool, error)

	// Commands on the book
	CreateContact(ctx context.Context, c NewContact) (*domain.Record, bool, error)
	DeleteContact(ctx context.Context, name string) error

	// Commands on a single contact
	AddPhone(ctx context.Context, name, phone string) (*domain.Record, error)
	EditPhone(ctx context.Context, name, oldPhone, newPhone string) (*domain.Record, error)
	RemovePhone(ctx context.Context, name, phone string) (*domain.Record, error)
	SetBirthday(ctx context.Context, name, birthday string) (*domain.Record, error)
}
