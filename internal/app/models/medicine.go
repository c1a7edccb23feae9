package models

import "github.com/shopspring/decimal"

type Medicine struct {
	ID              uint64          `json:"id"`
	ContentRefValue string          `json:"content_ref"`
	Price           decimal.Decimal `json:"price"`
	Discount        decimal.Decimal `json:"discount"`
	Quantity        uint64          `json:"quantity"`
	IsActive        bool            `json:"is_active"`
	SoldCount       uint64          `json:"sold_count"`
}

func (m *Medicine) RecordID() uint64   { return m.ID }
func (m *Medicine) Kind() EntityKind   { return KindMedicine }
func (m *Medicine) ContentRef() string { return m.ContentRefValue }

func (m *Medicine) LedgerFields() map[string]any {
	return map[string]any{
		"id":         m.ID,
		"price":      m.Price,
		"discount":   m.Discount,
		"quantity":   m.Quantity,
		"is_active":  m.IsActive,
		"sold_count": m.SoldCount,
	}
}
