package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type ResolutionStatus string

const (
	ResolutionPending  ResolutionStatus = "pending"
	ResolutionResolved ResolutionStatus = "resolved"
	ResolutionFailed   ResolutionStatus = "failed"
	ResolutionSkipped  ResolutionStatus = "skipped"
)

func (s ResolutionStatus) IsTerminal() bool {
	return s == ResolutionResolved || s == ResolutionFailed || s == ResolutionSkipped
}

// ViewModel merges one ledger record with its enrichment document.
type ViewModel struct {
	Record   LedgerRecord
	Document ContentDocument
	Status   ResolutionStatus
	Error    string
}

// NewViewModel starts a record as skipped when it has no content ref and as
// pending otherwise.
func NewViewModel(record LedgerRecord) ViewModel {
	status := ResolutionPending
	if record.ContentRef() == "" {
		status = ResolutionSkipped
	}
	return ViewModel{Record: record, Status: status}
}

// Resolve moves a pending view to resolved. Terminal views are returned unchanged.
func (v ViewModel) Resolve(document ContentDocument) (ViewModel, bool) {
	if v.Status != ResolutionPending {
		return v, false
	}
	v.Document = document.Clone()
	v.Status = ResolutionResolved
	return v, true
}

// Fail moves a pending view to failed. Terminal views are returned unchanged.
func (v ViewModel) Fail(err error) (ViewModel, bool) {
	if v.Status != ResolutionPending {
		return v, false
	}
	v.Document = nil
	v.Status = ResolutionFailed
	if err != nil {
		v.Error = err.Error()
	}
	return v, true
}

func (v ViewModel) ID() uint64 {
	return v.Record.RecordID()
}

func (v ViewModel) Kind() EntityKind {
	return v.Record.Kind()
}

func (v ViewModel) Ref() EntityRef {
	return EntityRef{Kind: v.Kind(), ID: v.ID()}
}

func (v ViewModel) FallbackLabel() string {
	return FallbackLabel(v.Kind(), v.ID())
}

// Fields is the shallow merge of document and ledger fields; ledger fields win
// on key collision.
func (v ViewModel) Fields() map[string]any {
	ledgerFields := v.Record.LedgerFields()
	merged := make(map[string]any, len(v.Document)+len(ledgerFields))
	if v.Status == ResolutionResolved {
		for key, value := range v.Document {
			merged[key] = value
		}
	}
	for key, value := range ledgerFields {
		merged[key] = value
	}
	return merged
}

// DisplayString reads a document-sourced display field, falling back when the
// document is not resolved or lacks the key.
func (v ViewModel) DisplayString(key, fallback string) string {
	if v.Status != ResolutionResolved {
		return fallback
	}
	return v.Document.StringOr(key, fallback)
}

func (v ViewModel) DisplayName() string {
	return v.DisplayString("name", v.FallbackLabel())
}

// TextField returns a searchable string for key, looking at ledger fields
// first and then the resolved document.
func (v ViewModel) TextField(key string) (string, bool) {
	if key == "name" {
		return v.DisplayName(), true
	}
	value, ok := v.Fields()[key]
	if !ok || value == nil {
		return "", false
	}
	switch typed := value.(type) {
	case string:
		return typed, true
	case decimal.Decimal:
		return typed.String(), true
	case []any, map[string]any:
		return "", false
	default:
		return fmt.Sprint(typed), true
	}
}

// Numeric reads a ledger-sourced numeric field. Document values are never
// consulted so aggregates stay valid while enrichment is in flight.
func (v ViewModel) Numeric(key string) (decimal.Decimal, bool) {
	value, ok := v.Record.LedgerFields()[key]
	if !ok {
		return decimal.Zero, false
	}
	return ToDecimal(value)
}

// Bool reads a ledger-sourced boolean field.
func (v ViewModel) Bool(key string) bool {
	value, _ := v.Record.LedgerFields()[key].(bool)
	return value
}
