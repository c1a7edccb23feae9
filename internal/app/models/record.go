package models

import "fmt"

// LedgerRecord is an immutable snapshot of one on-chain entity. Fields are
// owned by the ledger; this service only changes them through a submitted
// transaction that a later read reflects.
type LedgerRecord interface {
	RecordID() uint64
	Kind() EntityKind
	ContentRef() string
	// LedgerFields exposes the kind-specific fields keyed by their wire name.
	LedgerFields() map[string]any
}

// NewRecord returns an empty record of the given kind, ready to be decoded into.
func NewRecord(kind EntityKind) (LedgerRecord, error) {
	switch kind {
	case KindDoctor:
		return &Doctor{}, nil
	case KindPatient:
		return &Patient{}, nil
	case KindMedicine:
		return &Medicine{}, nil
	case KindAppointment:
		return &Appointment{}, nil
	case KindOrder:
		return &Order{}, nil
	default:
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
}
