package responses

import "medimarket-service/internal/app/services/core/collections"

type CatalogItem struct {
	ID               uint64         `json:"id"`
	Kind             string         `json:"kind"`
	Name             string         `json:"name"`
	ResolutionStatus string         `json:"resolution_status"`
	ResolutionError  string         `json:"resolution_error,omitempty"`
	Fields           map[string]any `json:"fields"`
	SuccessRate      *int64         `json:"success_rate,omitempty"`
}

type CatalogPage struct {
	Kind       string        `json:"kind"`
	Generation uint64        `json:"generation"`
	Settled    bool          `json:"settled"`
	Buckets    []string      `json:"buckets"`
	Items      []CatalogItem `json:"items"`
}

type CatalogStats struct {
	Kind       string            `json:"kind"`
	Generation uint64            `json:"generation"`
	Stats      collections.Stats `json:"stats"`
}

type DoctorReview struct {
	DoctorID uint64 `json:"doctor_id"`
	Status   string `json:"status"`
	TxHash   string `json:"tx_hash,omitempty"`
}
