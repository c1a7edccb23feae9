package models

import "github.com/shopspring/decimal"

type Doctor struct {
	ID                       uint64          `json:"id"`
	Account                  string          `json:"account"`
	ContentRefValue          string          `json:"content_ref"`
	IsApproved               bool            `json:"is_approved"`
	ConsultationFee          decimal.Decimal `json:"consultation_fee"`
	AppointmentCount         uint64          `json:"appointment_count"`
	SuccessfulTreatmentCount uint64          `json:"successful_treatment_count"`
}

func (d *Doctor) RecordID() uint64   { return d.ID }
func (d *Doctor) Kind() EntityKind   { return KindDoctor }
func (d *Doctor) ContentRef() string { return d.ContentRefValue }

func (d *Doctor) LedgerFields() map[string]any {
	return map[string]any{
		"id":                         d.ID,
		"account":                    d.Account,
		"is_approved":                d.IsApproved,
		"consultation_fee":           d.ConsultationFee,
		"appointment_count":          d.AppointmentCount,
		"successful_treatment_count": d.SuccessfulTreatmentCount,
	}
}
