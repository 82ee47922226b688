package contact

import (
	"context"
	"contactbook/internal/core/domain"
	"fmt"

	"github.com/benbjohnson/clock"
)

const defaultMaxBatchSize = 100

type contactService struct {
	contactRepo      Repository
	clock            clock.Clock
	defaultBatchSize int
	maxBatchSize     int
}

// Option configures the service.
type Option func(*contactService)

// WithClock sets the time source used for birthday arithmetic.
func WithClock(c clock.Clock) Option {
	return func(s *contactService) {
		s.clock = c
	}
}

// WithBatchSize sets the batch size used when a caller asks for none, and the largest one allowed.
func WithBatchSize(defaultSize, maxSize int) Option {
	return func(s *contactService) {
		if defaultSize > 0 {
			s.defaultBatchSize = defaultSize
		}
		if maxSize > 0 {
			s.maxBatchSize = maxSize
		}
	}
}

func NewService(repo Repository, opts ...Option) Service {
	s := &contactService{
		contactRepo:      repo,
		clock:            clock.New(),
		defaultBatchSize: domain.DefaultBatchSize,
		maxBatchSize:     defaultMaxBatchSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

var _ Service = (*contactService)(nil)

func (s *contactService) ListContacts(ctx context.Context, page, batchSize int) (Page, error) {
	if page < 0 {
		return Page{}, ErrInvalidPage
	}

	if batchSize <= 0 {
		batchSize = s.defaultBatchSize
	}
	batchSize = min(batchSize, s.maxBatchSize)

	records, total, err := s.contactRepo.Batch(ctx, page, batchSize)
	if err != nil {
		return Page{}, fmt.Errorf("ListContacts: %w", err)
	}

	return Page{
		Records:   records,
		Page:      page,
		BatchSize: batchSize,
		Total:     total,
	}, nil
}

func (s *contactService) GetContact(ctx context.Context, name string) (*domain.Record, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	return s.contactRepo.Find(ctx, name)
}

func (s *contactService) DaysToBirthday(ctx context.Context, name string) (int, bool, error) {
	record, err := s.GetContact(ctx, name)
	if err != nil {
		return 0, false, err
	}

	days, ok := record.DaysToBirthday(s.clock.Now())
	return days, ok, nil
}

func (s *contactService) CreateContact(ctx context.Context, c NewContact) (*domain.Record, bool, error) {
	if c.Name == "" {
		return nil, false, fmt.Errorf("CreateContact: %w", ErrEmptyName)
	}

	// build the whole record first so an invalid phone stores nothing
	record, err := domain.NewRecord(c.Name, c.Birthday)
	if err != nil {
		return nil, false, fmt.Errorf("CreateContact: %w", err)
	}

	for _, phone := range c.Phones {
		if err := record.AddPhone(phone); err != nil {
			return nil, false, fmt.Errorf("CreateContact: %w", err)
		}
	}

	wasCreated, err := s.contactRepo.Save(ctx, record)
	if err != nil {
		return nil, false, fmt.Errorf("CreateContact: could not save to repository: %w", err)
	}

	return record, wasCreated, nil
}

// DeleteContact is a no-op for a name that is not in the book.
func (s *contactService) DeleteContact(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyName
	}

	return s.contactRepo.Delete(ctx, name)
}

func (s *contactService) AddPhone(ctx context.Context, name, phone string) (*domain.Record, error) {
	if phone == "" {
		return nil, ErrEmptyPhone
	}

	return s.update(ctx, "AddPhone", name, func(r *domain.Record) error {
		return r.AddPhone(phone)
	})
}

func (s *contactService) EditPhone(ctx context.Context, name, oldPhone, newPhone string) (*domain.Record, error) {
	if oldPhone == "" || newPhone == "" {
		return nil, ErrEmptyPhone
	}

	return s.update(ctx, "EditPhone", name, func(r *domain.Record) error {
		return r.EditPhone(oldPhone, newPhone)
	})
}

func (s *contactService) RemovePhone(ctx context.Context, name, phone string) (*domain.Record, error) {
	return s.update(ctx, "RemovePhone", name, func(r *domain.Record) error {
		r.RemovePhone(phone)
		return nil
	})
}

// SetBirthday clears the birthday when given an empty value.
func (s *contactService) SetBirthday(ctx context.Context, name, birthday string) (*domain.Record, error) {
	return s.update(ctx, "SetBirthday", name, func(r *domain.Record) error {
		return r.SetBirthday(birthday)
	})
}

func (s *contactService) update(ctx context.Context, op, name string, mutate func(*domain.Record) error) (*domain.Record, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	record, err := s.contactRepo.Update(ctx, name, mutate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return record, nil
}
