package models

import (
	"errors"
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewModelResolution(t *testing.T) {
	t.Run("Record without a content ref is skipped", func(t *testing.T) {
		view := NewViewModel(&Medicine{ID: 1})
		assert.Equal(t, ResolutionSkipped, view.Status)
		assert.True(t, view.Status.IsTerminal())
	})

	t.Run("Pending view resolves once", func(t *testing.T) {
		view := NewViewModel(&Medicine{ID: 1, ContentRefValue: "cas://a"})
		require.Equal(t, ResolutionPending, view.Status)

		resolved, changed := view.Resolve(ContentDocument{"name": "Aspirin"})
		require.True(t, changed)
		assert.Equal(t, "Aspirin", resolved.DisplayName())

		again, changed := resolved.Fail(errors.New("late failure"))
		assert.False(t, changed)
		assert.Equal(t, ResolutionResolved, again.Status)
	})

	t.Run("Failed view keeps the fallback label", func(t *testing.T) {
		view := NewViewModel(&Doctor{ID: 9, ContentRefValue: "ipfs://x"})
		failed, changed := view.Fail(errors.New("gateway timeout"))
		require.True(t, changed)
		assert.Equal(t, "gateway timeout", failed.Error)
		assert.Equal(t, "Doctor #9", failed.DisplayName())
	})

	t.Run("Resolve copies the document", func(t *testing.T) {
		document := ContentDocument{"name": "Aspirin"}
		resolved, _ := NewViewModel(&Medicine{ID: 1, ContentRefValue: "cas://a"}).Resolve(document)
		document["name"] = "changed"
		assert.Equal(t, "Aspirin", resolved.DisplayName())
	})
}

func TestViewModelFields(t *testing.T) {
	view := NewViewModel(&Medicine{
		ID:              2,
		ContentRefValue: "cas://b",
		Price:           decimal.RequireFromString("0.01"),
		Quantity:        5,
	})
	view, _ = view.Resolve(ContentDocument{"name": "Ibuprofen", "quantity": "999", "price": "100"})

	fields := view.Fields()
	assert.Equal(t, "Ibuprofen", fields["name"])
	assert.Equal(t, uint64(5), fields["quantity"])

	price, ok := view.Numeric("price")
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("0.01")))

	_, ok = view.Numeric("name")
	assert.False(t, ok)

	text, ok := view.TextField("quantity")
	require.True(t, ok)
	assert.Equal(t, "5", text)
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
		ok    bool
	}{
		{name: "int", value: 3, want: "3", ok: true},
		{name: "uint64 max", value: uint64(math.MaxUint64), want: "18446744073709551615", ok: true},
		{name: "float", value: 0.25, want: "0.25", ok: true},
		{name: "NaN", value: math.NaN(), ok: false},
		{name: "infinity", value: math.Inf(1), ok: false},
		{name: "json number", value: json.Number("12.5"), want: "12.5", ok: true},
		{name: "padded string", value: " 7 ", want: "7", ok: true},
		{name: "text", value: "seven", ok: false},
		{name: "nil decimal pointer", value: (*decimal.Decimal)(nil), ok: false},
		{name: "bool", value: true, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToDecimal(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestParseEntityKind(t *testing.T) {
	kind, ok := ParseEntityKind(" Medicine ")
	assert.True(t, ok)
	assert.Equal(t, KindMedicine, kind)

	_, ok = ParseEntityKind("spaceship")
	assert.False(t, ok)

	_, err := NewRecord(EntityKind("spaceship"))
	assert.Error(t, err)
}

func TestWizardStateClone(t *testing.T) {
	state := WizardState{
		FormFields:  map[string]any{"quantity": "2"},
		FieldErrors: map[string]string{"quantity": "too many"},
		Selection:   &Selection{Snapshot: map[string]any{"name": "Aspirin"}},
		LastFailure: &Failure{Class: FailureNetwork},
	}

	clone := state.Clone()
	clone.FormFields["quantity"] = "3"
	clone.FieldErrors["quantity"] = ""
	clone.Selection.Snapshot["name"] = "other"
	clone.LastFailure.Class = FailureUnknown

	assert.Equal(t, "2", state.FieldString("quantity"))
	assert.Equal(t, "too many", state.FieldErrors["quantity"])
	assert.Equal(t, "Aspirin", state.Selection.Snapshot["name"])
	assert.Equal(t, FailureNetwork, state.LastFailure.Class)
}
