package models

type Patient struct {
	ID               uint64 `json:"id"`
	Account          string `json:"account"`
	ContentRefValue  string `json:"content_ref"`
	AppointmentCount uint64 `json:"appointment_count"`
	OrderCount       uint64 `json:"order_count"`
}

func (p *Patient) RecordID() uint64   { return p.ID }
func (p *Patient) Kind() EntityKind   { return KindPatient }
func (p *Patient) ContentRef() string { return p.ContentRefValue }

func (p *Patient) LedgerFields() map[string]any {
	return map[string]any{
		"id":                p.ID,
		"account":           p.Account,
		"appointment_count": p.AppointmentCount,
		"order_count":       p.OrderCount,
	}
}
