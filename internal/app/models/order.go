package models

import "github.com/shopspring/decimal"

const (
	OrderStatusPlaced    = "placed"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID              uint64          `json:"id"`
	MedicineID      uint64          `json:"medicine_id"`
	PatientID       uint64          `json:"patient_id"`
	ContentRefValue string          `json:"content_ref"`
	Quantity        uint64          `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Status          string          `json:"status"`
}

func (o *Order) RecordID() uint64   { return o.ID }
func (o *Order) Kind() EntityKind   { return KindOrder }
func (o *Order) ContentRef() string { return o.ContentRefValue }

func (o *Order) LedgerFields() map[string]any {
	return map[string]any{
		"id":          o.ID,
		"medicine_id": o.MedicineID,
		"patient_id":  o.PatientID,
		"quantity":    o.Quantity,
		"unit_price":  o.UnitPrice,
		"total_price": o.TotalPrice,
		"status":      o.Status,
	}
}
