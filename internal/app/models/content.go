package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ContentDocument is an enrichment document resolved from a content ref. It
// has no guaranteed shape, so every reader takes a fallback.
type ContentDocument map[string]any

func (d ContentDocument) String(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	value, ok := d[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

func (d ContentDocument) StringOr(key, fallback string) string {
	if value, ok := d.String(key); ok {
		return value
	}
	return fallback
}

func (d ContentDocument) Strings(key string) []string {
	if d == nil {
		return nil
	}
	switch values := d[key].(type) {
	case []string:
		return append([]string(nil), values...)
	case []any:
		result := make([]string, 0, len(values))
		for _, value := range values {
			if s, ok := value.(string); ok {
				result = append(result, s)
			}
		}
		return result
	default:
		return nil
	}
}

func (d ContentDocument) Decimal(key string) (decimal.Decimal, bool) {
	if d == nil {
		return decimal.Zero, false
	}
	return ToDecimal(d[key])
}

// Clone is shallow; nested values are shared and must be treated as read-only.
func (d ContentDocument) Clone() ContentDocument {
	if d == nil {
		return nil
	}
	clone := make(ContentDocument, len(d))
	for k, v := range d {
		clone[k] = v
	}
	return clone
}
