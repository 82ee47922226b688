package memrepo

import (
	"context"
	"contactbook/internal/core/domain"
	"contactbook/internal/core/service/contact"
	"contactbook/internal/pkg/copier"
	"fmt"
	"sync"
)

// memRepository keeps the address book in memory. The book itself is not safe for concurrent use, the mutex is.
type memRepository struct {
	mu   sync.RWMutex
	book *domain.AddressBook
}

var _ contact.Repository = (*memRepository)(nil)

func NewMemRepository() contact.Repository {
	return newMemRepository()
}

func newMemRepository() *memRepository {
	return &memRepository{
		book: domain.NewAddressBook(),
	}
}

func (r *memRepository) Find(ctx context.Context, name string) (*domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", contact.ErrContactNotFound, name)
	}

	return copier.DeepCopy(record)
}

// Batch returns the page-th batch of batchSize records in insertion order along with the total record count.
// A page past the end is an empty batch, not an error.
func (r *memRepository) Batch(ctx context.Context, page, batchSize int) ([]*domain.Record, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := r.book.Len()
	current := 0

	for batch := range r.book.Batches(batchSize) {
		if current == page {
			records, err := copier.DeepCopy(batch)
			return records, total, err
		}
		current++
	}

	return []*domain.Record{}, total, nil
}

// Save stores a copy of record keyed by its name, reporting whether the name was new.
func (r *memRepository) Save(ctx context.Context, record *domain.Record) (bool, error) {
	stored, err := copier.DeepCopy(record)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.book.Find(record.Name().Value())
	r.book.AddRecord(stored)

	return !exists, nil
}

// Update runs mutate on the stored record under the write lock. Domain mutations are all-or-nothing, so a failed mutate leaves the record as it was.
func (r *memRepository) Update(ctx context.Context, name string, mutate func(*domain.Record) error) (*domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", contact.ErrContactNotFound, name)
	}

	if err := mutate(record); err != nil {
		return nil, err
	}

	return copier.DeepCopy(record)
}

// Delete is a no-op for unknown names.
func (r *memRepository) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.book.Delete(name)
	return nil
}
