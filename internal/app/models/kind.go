package models

import (
	"fmt"
	"strings"
)

type EntityKind string

const (
	KindDoctor      EntityKind = "doctor"
	KindPatient     EntityKind = "patient"
	KindMedicine    EntityKind = "medicine"
	KindAppointment EntityKind = "appointment"
	KindOrder       EntityKind = "order"
)

var entityKindLabels = map[EntityKind]string{
	KindDoctor:      "Doctor",
	KindPatient:     "Patient",
	KindMedicine:    "Medicine",
	KindAppointment: "Appointment",
	KindOrder:       "Order",
}

func ParseEntityKind(value string) (EntityKind, bool) {
	kind := EntityKind(strings.ToLower(strings.TrimSpace(value)))
	_, ok := entityKindLabels[kind]
	return kind, ok
}

// Label is the human name used in fallback display labels.
func (k EntityKind) Label() string {
	if label, ok := entityKindLabels[k]; ok {
		return label
	}
	return string(k)
}

func (k EntityKind) String() string {
	return string(k)
}

// FallbackLabel is shown for any document-sourced display field when the
// document is missing, pending or failed to resolve.
func FallbackLabel(kind EntityKind, id uint64) string {
	return fmt.Sprintf("%s #%d", kind.Label(), id)
}

type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   uint64     `json:"id"`
}
