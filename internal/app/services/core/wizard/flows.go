package wizard

import (
	"errors"
	"fmt"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/app/services/core/forms"
	"medimarket-service/internal/app/services/core/pricing"
	"medimarket-service/internal/pkg/constvars"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	FlowBookAppointment  = "book_appointment"
	FlowPurchaseMedicine = "purchase_medicine"
	FlowListMedicine     = "list_medicine"
)

var (
	ErrDoctorNotApproved    = errors.New("only approved doctors can be booked")
	ErrMedicineNotAvailable = errors.New("this medicine is not available for purchase")
)

// Flow describes one booking/purchase wizard. SelectionKind is empty for
// flows that start at detail entry.
type Flow struct {
	Name          string
	Kind          models.EntityKind
	SelectionKind models.EntityKind
	Admin         bool

	// CanSelect rejects targets the ledger would refuse anyway.
	CanSelect func(view models.ViewModel) error
	Ruleset   func(state models.WizardState) forms.Ruleset
	Quote     func(state models.WizardState, values map[string]any) (pricing.Quote, error)
	// Content, when set, is published before the ledger write and its ref is
	// passed to Payload.
	Content func(state models.WizardState, values map[string]any) (models.ContentDocument, models.ContentMeta)
	Payload func(state models.WizardState, values map[string]any, quote pricing.Quote, contentRef string) models.TransactionPayload
}

func (f Flow) HasSelection() bool {
	return f.SelectionKind != ""
}

func (f Flow) InitialStep() models.WizardStep {
	if f.HasSelection() {
		return models.StepSelectTarget
	}
	return models.StepEnterDetails
}

var flows = map[string]Flow{
	FlowBookAppointment:  bookAppointmentFlow(),
	FlowPurchaseMedicine: purchaseMedicineFlow(),
	FlowListMedicine:     listMedicineFlow(),
}

func LookupFlow(name string) (Flow, bool) {
	flow, ok := flows[strings.TrimSpace(name)]
	return flow, ok
}

func FlowNames() []string {
	return []string{FlowBookAppointment, FlowPurchaseMedicine, FlowListMedicine}
}

func snapshotDecimal(state models.WizardState, key string) decimal.Decimal {
	if state.Selection == nil {
		return decimal.Zero
	}
	value, _ := models.ToDecimal(state.Selection.Snapshot[key])
	return value
}

func textValue(values map[string]any, key string) string {
	value, _ := values[key].(string)
	return value
}

func integerValue(values map[string]any, key string) int64 {
	value, _ := values[key].(int64)
	return value
}

func clockValue(values map[string]any, key string) string {
	minutes, _ := values[key].(int)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func dateValue(values map[string]any, key string) string {
	date, ok := values[key].(time.Time)
	if !ok {
		return ""
	}
	return date.Format(constvars.DateLayout)
}

func bookAppointmentFlow() Flow {
	return Flow{
		Name:          FlowBookAppointment,
		Kind:          models.KindAppointment,
		SelectionKind: models.KindDoctor,
		CanSelect: func(view models.ViewModel) error {
			if !view.Bool("is_approved") {
				return ErrDoctorNotApproved
			}
			return nil
		},
		Ruleset: func(models.WizardState) forms.Ruleset {
			return forms.AppointmentDetails()
		},
		Quote: func(state models.WizardState, _ map[string]any) (pricing.Quote, error) {
			return pricing.NewQuote(snapshotDecimal(state, "consultation_fee"), decimal.Zero, 1)
		},
		Content: func(state models.WizardState, values map[string]any) (models.ContentDocument, models.ContentMeta) {
			document := models.ContentDocument{
				"name":      "Appointment with " + state.Selection.Label,
				"doctor_id": state.Selection.Ref.ID,
				"category":  textValue(values, "category"),
				"notes":     textValue(values, "notes"),
				"date":      dateValue(values, "date"),
				"time_from": clockValue(values, "time_from"),
				"time_to":   clockValue(values, "time_to"),
			}
			return document, models.ContentMeta{
				Name:        "appointment",
				ContentType: constvars.MIMEApplicationJSON,
				Labels:      map[string]string{"flow": FlowBookAppointment},
			}
		},
		Payload: func(state models.WizardState, values map[string]any, quote pricing.Quote, contentRef string) models.TransactionPayload {
			return models.TransactionPayload{
				Method: "bookAppointment",
				Args: map[string]any{
					"doctor_id":   state.Selection.Ref.ID,
					"date":        dateValue(values, "date"),
					"time_from":   clockValue(values, "time_from"),
					"time_to":     clockValue(values, "time_to"),
					"content_ref": contentRef,
				},
				Value: quote.TotalPrice,
			}
		},
	}
}

func purchaseMedicineFlow() Flow {
	return Flow{
		Name:          FlowPurchaseMedicine,
		Kind:          models.KindOrder,
		SelectionKind: models.KindMedicine,
		CanSelect: func(view models.ViewModel) error {
			quantity, _ := view.Numeric("quantity")
			if !view.Bool("is_active") || quantity.Sign() <= 0 {
				return ErrMedicineNotAvailable
			}
			return nil
		},
		Ruleset: func(state models.WizardState) forms.Ruleset {
			stock := snapshotDecimal(state, "quantity")
			if stock.IsNegative() {
				stock = decimal.Zero
			}
			return forms.MedicinePurchaseDetails(uint64(stock.IntPart()))
		},
		Quote: func(state models.WizardState, values map[string]any) (pricing.Quote, error) {
			return pricing.NewQuote(snapshotDecimal(state, "price"), snapshotDecimal(state, "discount"), integerValue(values, "quantity"))
		},
		Content: func(state models.WizardState, values map[string]any) (models.ContentDocument, models.ContentMeta) {
			document := models.ContentDocument{
				"name":             "Order of " + state.Selection.Label,
				"medicine_id":      state.Selection.Ref.ID,
				"shipping_address": textValue(values, "shipping_address"),
				"notes":            textValue(values, "notes"),
			}
			return document, models.ContentMeta{
				Name:        "order",
				ContentType: constvars.MIMEApplicationJSON,
				Labels:      map[string]string{"flow": FlowPurchaseMedicine},
			}
		},
		Payload: func(state models.WizardState, values map[string]any, quote pricing.Quote, contentRef string) models.TransactionPayload {
			return models.TransactionPayload{
				Method: "buyMedicine",
				Args: map[string]any{
					"medicine_id": state.Selection.Ref.ID,
					"quantity":    quote.Quantity,
					"content_ref": contentRef,
				},
				Value: quote.TotalPrice,
			}
		},
	}
}

func listMedicineFlow() Flow {
	return Flow{
		Name:  FlowListMedicine,
		Kind:  models.KindMedicine,
		Admin: true,
		Ruleset: func(models.WizardState) forms.Ruleset {
			return forms.MedicineListing()
		},
		Quote: func(_ models.WizardState, values map[string]any) (pricing.Quote, error) {
			return pricing.NewQuote(forms.DecimalValue(values, "price"), forms.DecimalValue(values, "discount"), integerValue(values, "quantity"))
		},
		Content: func(_ models.WizardState, values map[string]any) (models.ContentDocument, models.ContentMeta) {
			document := models.ContentDocument{
				"name":        textValue(values, "name"),
				"description": textValue(values, "description"),
				"category":    textValue(values, "category"),
			}
			if imageURL := textValue(values, "image_url"); imageURL != "" {
				document["image_url"] = imageURL
			}
			return document, models.ContentMeta{
				Name:        "medicine-listing",
				ContentType: constvars.MIMEApplicationJSON,
				Labels:      map[string]string{"flow": FlowListMedicine},
			}
		},
		Payload: func(_ models.WizardState, values map[string]any, quote pricing.Quote, contentRef string) models.TransactionPayload {
			return models.TransactionPayload{
				Method: "addMedicine",
				Args: map[string]any{
					"price":       quote.BasePrice,
					"discount":    quote.DiscountPercent,
					"quantity":    quote.Quantity,
					"content_ref": contentRef,
				},
				Value: decimal.Zero,
			}
		},
	}
}
