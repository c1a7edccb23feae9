package collections

import (
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/exceptions"
	"sort"
	"strings"
)

const BucketAll = "all"

var statusBuckets = map[models.EntityKind]map[string]Predicate{
	models.KindDoctor: {
		"approved": func(v models.ViewModel) bool { return v.Bool("is_approved") },
		"pending":  func(v models.ViewModel) bool { return !v.Bool("is_approved") },
	},
	models.KindPatient: {},
	models.KindMedicine: {
		"active":   func(v models.ViewModel) bool { return v.Bool("is_active") },
		"inactive": func(v models.ViewModel) bool { return !v.Bool("is_active") },
		"out_of_stock": func(v models.ViewModel) bool {
			quantity, ok := v.Numeric("quantity")
			return ok && quantity.Sign() <= 0
		},
	},
	models.KindAppointment: {
		models.AppointmentStatusScheduled: statusEquals(models.AppointmentStatusScheduled),
		models.AppointmentStatusCompleted: statusEquals(models.AppointmentStatusCompleted),
		models.AppointmentStatusCancelled: statusEquals(models.AppointmentStatusCancelled),
	},
	models.KindOrder: {
		models.OrderStatusPlaced:    statusEquals(models.OrderStatusPlaced),
		models.OrderStatusDelivered: statusEquals(models.OrderStatusDelivered),
		models.OrderStatusCancelled: statusEquals(models.OrderStatusCancelled),
	},
}

func statusEquals(status string) Predicate {
	return func(v models.ViewModel) bool {
		value, _ := v.Record.LedgerFields()["status"].(string)
		return strings.EqualFold(value, status)
	}
}

// StatusFilter returns the predicate for a named bucket of kind. An empty
// bucket or "all" yields a nil predicate.
func StatusFilter(kind models.EntityKind, bucket string) (Predicate, error) {
	bucket = strings.ToLower(strings.TrimSpace(bucket))
	if bucket == "" || bucket == BucketAll {
		return nil, nil
	}
	buckets, ok := statusBuckets[kind]
	if !ok {
		return nil, exceptions.ErrUnknownEntityKind(nil, string(kind))
	}
	predicate, ok := buckets[bucket]
	if !ok {
		return nil, exceptions.ErrUnknownStatusFilter(nil, bucket, string(kind))
	}
	return predicate, nil
}

// Buckets lists the bucket names of kind in a stable order, "all" first.
func Buckets(kind models.EntityKind) []string {
	names := make([]string, 0, len(statusBuckets[kind])+1)
	for name := range statusBuckets[kind] {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{BucketAll}, names...)
}
