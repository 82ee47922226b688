package memrepo

import (
	"contactbook/internal/core/domain"
	"contactbook/internal/core/service/contact"
	"encoding/json"
	"fmt"
	"io"
)

// SeedContact is one entry of a seed document.
type SeedContact struct {
	Name     string   `json:"name"`
	Birthday string   `json:"birthday,omitempty"`
	Phones   []string `json:"phones,omitempty"`
}

// Seed is the document accepted on stdin or from a seed file: {"contacts": [...]}.
type Seed struct {
	Contacts []SeedContact `json:"contacts"`
}

// NewMemRepositoryFromSeed decodes a seed document and loads every contact into a fresh repository.
// Any invalid contact aborts the load.
func NewMemRepositoryFromSeed(rd io.Reader) (contact.Repository, error) {
	var seed Seed

	dec := json.NewDecoder(rd)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("could not decode seed data: %w", err)
	}

	return NewMemRepositoryFromData(seed)
}

func NewMemRepositoryFromData(seed Seed) (contact.Repository, error) {
	repo := newMemRepository()

	for i, c := range seed.Contacts {
		if c.Name == "" {
			return nil, fmt.Errorf("seed contact %d: %w", i, contact.ErrEmptyName)
		}

		record, err := domain.NewRecord(c.Name, c.Birthday)
		if err != nil {
			return nil, fmt.Errorf("seed contact %q: %w", c.Name, err)
		}

		for _, phone := range c.Phones {
			if err := record.AddPhone(phone); err != nil {
				return nil, fmt.Errorf("seed contact %q: %w", c.Name, err)
			}
		}

		repo.book.AddRecord(record)
	}

	return repo, nil
}
