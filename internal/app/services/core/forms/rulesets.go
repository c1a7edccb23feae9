package forms

import (
	"fmt"
	"medimarket-service/internal/pkg/constvars"
)

const appointmentCategories = "general follow_up consultation emergency checkup"

// AppointmentDetails covers the detail step of booking an appointment.
func AppointmentDetails() Ruleset {
	return Ruleset{
		Fields: []FieldRule{
			{Field: "date", Label: "date", Type: TypeDate, Required: true, Tags: "not_past_date"},
			{Field: "time_from", Label: "start time", Type: TypeTime, Required: true},
			{Field: "time_to", Label: "end time", Type: TypeTime, Required: true},
			{Field: "category", Label: "category", Type: TypeText, Required: true, Tags: "oneof=" + appointmentCategories},
			{Field: "notes", Label: "notes", Type: TypeText, Tags: "max=1000"},
		},
		Cross: []CrossFieldRule{After("time_to", "time_from")},
	}
}

// MedicinePurchaseDetails bounds the quantity by the stock seen at selection.
func MedicinePurchaseDetails(stock uint64) Ruleset {
	return Ruleset{
		Fields: []FieldRule{
			{Field: "quantity", Label: "quantity", Type: TypeInteger, Required: true, Tags: fmt.Sprintf("gte=1,lte=%d", stock)},
			{Field: "shipping_address", Label: "shipping address", Type: TypeText, Required: true, Tags: "notblank,max=500"},
			{Field: "notes", Label: "notes", Type: TypeText, Tags: "max=1000"},
		},
	}
}

// MedicineListing covers the admin listing form.
func MedicineListing() Ruleset {
	return Ruleset{
		Fields: []FieldRule{
			{Field: "name", Label: "name", Type: TypeText, Required: true, Tags: "notblank,max=120"},
			{Field: "description", Label: "description", Type: TypeText, Required: true, Tags: "notblank,max=2000"},
			{Field: "category", Label: "category", Type: TypeText, Required: true, Tags: "notblank,max=60"},
			{Field: "price", Label: "price", Type: TypeNumber, Required: true, Tags: "gte=0"},
			{Field: "discount", Label: "discount", Type: TypeNumber, Tags: fmt.Sprintf("gte=0,lte=%d", constvars.MaxDiscountPercent)},
			{Field: "quantity", Label: "quantity", Type: TypeInteger, Required: true, Tags: "gte=0"},
			{Field: "image_url", Label: "image url", Type: TypeText, Tags: "url"},
		},
	}
}
