package domain

import (
	"iter"
	"slices"
)

// DefaultBatchSize is used by Batches when no positive size is given.
const DefaultBatchSize = 10

// AddressBook maps contact names to records and remembers insertion order for iteration.
// It is not safe for concurrent use.
type AddressBook struct {
	order   []string
	records map[string]*Record
}

func NewAddressBook() *AddressBook {
	return &AddressBook{
		records: make(map[string]*Record),
	}
}

// AddRecord stores r under its current name, silently overwriting an existing entry.
// An overwritten entry keeps its original position.
func (b *AddressBook) AddRecord(r *Record) {
	key := r.Name().Value()

	if _, exists := b.records[key]; !exists {
		b.order = append(b.order, key)
	}

	b.records[key] = r
}

func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes name if present. A missing name is a no-op.
func (b *AddressBook) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}

	delete(b.records, name)

	if i := slices.Index(b.order, name); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
}

func (b *AddressBook) Len() int {
	return len(b.records)
}

// Records returns the records in insertion order.
func (b *AddressBook) Records() []*Record {
	result := make([]*Record, 0, len(b.order))
	for _, key := range b.order {
		result = append(result, b.records[key])
	}

	return result
}

// Batches yields the records in insertion order, size at a time; the last batch may be shorter.
// The record list is captured when iteration starts so every range over the sequence begins afresh.
func (b *AddressBook) Batches(size int) iter.Seq[[]*Record] {
	if size <= 0 {
		size = DefaultBatchSize
	}

	return func(yield func([]*Record) bool) {
		records := b.Records()

		for start := 0; start < len(records); start += size {
			end := min(start+size, len(records))

			if !yield(records[start:end:end]) {
				return
			}
		}
	}
}
