package collections

import (
	"cmp"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/exceptions"
	"strings"
)

type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

const (
	SortKeyRecent = "recent"
	SortKeyID     = "id"
	SortKeyName   = "name"
)

func ParseSortOrder(value string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(value), string(SortDescending)) {
		return SortDescending
	}
	return SortAscending
}

// SortBy builds the comparator for a named key:
//   - "recent" (or empty): id descending, order is ignored
//   - "id": id in the given order; equal ids keep source order
//   - "name": display name, case-insensitive, then id descending
//   - any other key: a numeric ledger field, then id descending
//
// A numeric key is validated against kind so typos are rejected up front.
func SortBy(kind models.EntityKind, key string, order SortOrder) (Comparator, error) {
	key = strings.TrimSpace(key)
	switch key {
	case "", SortKeyRecent:
		return byRecency, nil
	case SortKeyID:
		return directed(func(a, b models.ViewModel) int {
			return cmp.Compare(a.ID(), b.ID())
		}, order), nil
	case SortKeyName:
		return thenRecency(directed(func(a, b models.ViewModel) int {
			return strings.Compare(strings.ToLower(a.DisplayName()), strings.ToLower(b.DisplayName()))
		}, order)), nil
	}

	if !isNumericField(kind, key) {
		return nil, exceptions.ErrUnknownSortKey(nil, key)
	}
	return thenRecency(directed(func(a, b models.ViewModel) int {
		left, _ := a.Numeric(key)
		right, _ := b.Numeric(key)
		return left.Cmp(right)
	}, order)), nil
}

func byRecency(a, b models.ViewModel) int {
	return cmp.Compare(b.ID(), a.ID())
}

func directed(comparator Comparator, order SortOrder) Comparator {
	if order == SortDescending {
		return func(a, b models.ViewModel) int { return comparator(b, a) }
	}
	return comparator
}

func thenRecency(primary Comparator) Comparator {
	return func(a, b models.ViewModel) int {
		if result := primary(a, b); result != 0 {
			return result
		}
		return byRecency(a, b)
	}
}

func isNumericField(kind models.EntityKind, key string) bool {
	if key == SortKeyID {
		return true
	}
	record, err := models.NewRecord(kind)
	if err != nil {
		return false
	}
	value, ok := record.LedgerFields()[key]
	if !ok {
		return false
	}
	if _, text := value.(string); text {
		return false
	}
	_, numeric := models.ToDecimal(value)
	return numeric
}
