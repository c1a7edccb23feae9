package collections

import (
	"medimarket-service/internal/app/models"

	"github.com/shopspring/decimal"
)

// AggregateSpec names the ledger fields to total. SuccessField/TotalField,
// when both set, produce a success rate over their sums.
type AggregateSpec struct {
	SumFields    []string
	SuccessField string
	TotalField   string
}

type Stats struct {
	Count       int                        `json:"count"`
	Sums        map[string]decimal.Decimal `json:"sums"`
	SuccessRate int64                      `json:"success_rate"`
	Buckets     map[string]int             `json:"buckets"`
}

// DefaultAggregateSpecs are the statistics shown on each dashboard.
var DefaultAggregateSpecs = map[models.EntityKind]AggregateSpec{
	models.KindDoctor: {
		SumFields:    []string{"appointment_count", "successful_treatment_count", "consultation_fee"},
		SuccessField: "successful_treatment_count",
		TotalField:   "appointment_count",
	},
	models.KindPatient: {
		SumFields: []string{"appointment_count", "order_count"},
	},
	models.KindMedicine: {
		SumFields: []string{"quantity", "sold_count"},
	},
	models.KindAppointment: {
		SumFields: []string{"fee"},
	},
	models.KindOrder: {
		SumFields: []string{"quantity", "total_price"},
	},
}

// Aggregate computes statistics over a snapshot of views. Only ledger fields
// are read, so the result does not depend on enrichment progress.
func Aggregate(kind models.EntityKind, views []models.ViewModel, spec AggregateSpec) Stats {
	stats := Stats{
		Count:   len(views),
		Sums:    make(map[string]decimal.Decimal, len(spec.SumFields)),
		Buckets: make(map[string]int),
	}
	for _, field := range spec.SumFields {
		stats.Sums[field] = decimal.Zero
	}

	success := decimal.Zero
	total := decimal.Zero
	buckets := statusBuckets[kind]
	for _, view := range views {
		for _, field := range spec.SumFields {
			if value, ok := view.Numeric(field); ok {
				stats.Sums[field] = stats.Sums[field].Add(value)
			}
		}
		if spec.SuccessField != "" && spec.TotalField != "" {
			if value, ok := view.Numeric(spec.SuccessField); ok {
				success = success.Add(value)
			}
			if value, ok := view.Numeric(spec.TotalField); ok {
				total = total.Add(value)
			}
		}
		for name, predicate := range buckets {
			if predicate(view) {
				stats.Buckets[name]++
			}
		}
	}
	stats.Buckets[BucketAll] = len(views)

	if spec.SuccessField != "" && spec.TotalField != "" {
		stats.SuccessRate = SuccessRate(success, total)
	}
	return stats
}

// SuccessRate is round(100 * success / total), or 0 when total is not
// positive.
func SuccessRate(success, total decimal.Decimal) int64 {
	if total.Sign() <= 0 {
		return 0
	}
	return success.Mul(decimal.NewFromInt(100)).Div(total).Round(0).IntPart()
}

// DoctorSuccessRate is the per-doctor rate shown next to each listing.
func DoctorSuccessRate(view models.ViewModel) int64 {
	success, _ := view.Numeric("successful_treatment_count")
	total, _ := view.Numeric("appointment_count")
	return SuccessRate(success, total)
}
