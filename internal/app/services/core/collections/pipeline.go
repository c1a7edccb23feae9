package collections

import (
	"medimarket-service/internal/app/models"
	"slices"
	"strings"
)

// Predicate selects views. A nil Predicate selects everything.
type Predicate func(view models.ViewModel) bool

// Comparator returns a negative number when a sorts before b, zero when
// their keys are equal.
type Comparator func(a, b models.ViewModel) int

// DefaultSearchFields are the text fields matched by a search term when the
// caller does not configure any.
var DefaultSearchFields = map[models.EntityKind][]string{
	models.KindDoctor:      {"name", "specialization", "account"},
	models.KindPatient:     {"name", "account"},
	models.KindMedicine:    {"name", "category", "description"},
	models.KindAppointment: {"name", "category", "date", "status"},
	models.KindOrder:       {"name", "status"},
}

// FilterAndSort keeps the views accepted by both predicate and statusFilter
// and orders them with a stable sort, so equal keys keep their input order.
// The input slice is not modified.
func FilterAndSort(views []models.ViewModel, predicate, statusFilter Predicate, comparator Comparator) []models.ViewModel {
	result := make([]models.ViewModel, 0, len(views))
	for _, view := range views {
		if predicate != nil && !predicate(view) {
			continue
		}
		if statusFilter != nil && !statusFilter(view) {
			continue
		}
		result = append(result, view)
	}
	if comparator != nil {
		slices.SortStableFunc(result, comparator)
	}
	return result
}

// MatchText is a case-insensitive substring match of term against any of the
// named text fields. An empty term matches every view.
func MatchText(term string, fields ...string) Predicate {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil
	}
	return func(view models.ViewModel) bool {
		searchFields := fields
		if len(searchFields) == 0 {
			searchFields = DefaultSearchFields[view.Kind()]
		}
		for _, field := range searchFields {
			value, ok := view.TextField(field)
			if ok && strings.Contains(strings.ToLower(value), needle) {
				return true
			}
		}
		return false
	}
}

// And combines predicates; nil entries are ignored.
func And(predicates ...Predicate) Predicate {
	var active []Predicate
	for _, predicate := range predicates {
		if predicate != nil {
			active = append(active, predicate)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(view models.ViewModel) bool {
		for _, predicate := range active {
			if !predicate(view) {
				return false
			}
		}
		return true
	}
}

// ExcludeIDs drops views whose record id is in ids.
func ExcludeIDs(ids map[uint64]struct{}) Predicate {
	if len(ids) == 0 {
		return nil
	}
	return func(view models.ViewModel) bool {
		_, excluded := ids[view.ID()]
		return !excluded
	}
}
