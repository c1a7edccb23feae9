package models

import "github.com/shopspring/decimal"

const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

type Appointment struct {
	ID              uint64          `json:"id"`
	DoctorID        uint64          `json:"doctor_id"`
	PatientID       uint64          `json:"patient_id"`
	ContentRefValue string          `json:"content_ref"`
	Date            string          `json:"date"`
	TimeFrom        string          `json:"time_from"`
	TimeTo          string          `json:"time_to"`
	Fee             decimal.Decimal `json:"fee"`
	Status          string          `json:"status"`
}

func (a *Appointment) RecordID() uint64   { return a.ID }
func (a *Appointment) Kind() EntityKind   { return KindAppointment }
func (a *Appointment) ContentRef() string { return a.ContentRefValue }

func (a *Appointment) LedgerFields() map[string]any {
	return map[string]any{
		"id":         a.ID,
		"doctor_id":  a.DoctorID,
		"patient_id": a.PatientID,
		"date":       a.Date,
		"time_from":  a.TimeFrom,
		"time_to":    a.TimeTo,
		"fee":        a.Fee,
		"status":     a.Status,
	}
}
