package models

import "github.com/shopspring/decimal"

// TransactionPayload is the write submitted to the ledger for one entity kind.
type TransactionPayload struct {
	Method         string          `json:"method"`
	Args           map[string]any  `json:"args"`
	Value          decimal.Decimal `json:"value"`
	From           string          `json:"from,omitempty"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

type TransactionReceipt struct {
	TxHash      string `bson:"tx_hash" json:"tx_hash"`
	BlockNumber uint64 `bson:"block_number" json:"block_number"`
	Status      string `bson:"status" json:"status"`
	EntityID    uint64 `bson:"entity_id,omitempty" json:"entity_id,omitempty"`
}

// ContentMeta accompanies a document published to the content store.
type ContentMeta struct {
	Name        string            `json:"name"`
	ContentType string            `json:"content_type"`
	Labels      map[string]string `json:"labels,omitempty"`
}
