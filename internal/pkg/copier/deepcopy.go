package copier

import (
	"contactbook/internal/core/domain" // It needs to know about domain.Record
	"fmt"
)

// DeepCopy copies records (and slices of them) so callers never share state with the repository.
func DeepCopy[T any](src T) (T, error) {
	var zero T

	copied := deepCopyValue(any(src))
	if result, ok := copied.(T); ok {
		return result, nil
	}

	return zero, fmt.Errorf("deep copy failed: expected %T, got %T", zero, copied)
}

func deepCopyValue(src any) any {
	switch v := src.(type) {
	case *domain.Record:
		return v.Clone()

	case []*domain.Record:
		if v == nil {
			return []*domain.Record(nil)
		}
		dst := make([]*domain.Record, len(v))
		for i, record := range v {
			dst[i] = record.Clone()
		}
		return dst

	case map[string]*domain.Record:
		if v == nil {
			return map[string]*domain.Record(nil)
		}
		dst := make(map[string]*domain.Record, len(v))
		for key, record := range v {
			dst[key] = record.Clone()
		}
		return dst

	default:
		// anything else is returned as-is
		return v
	}
}
