package ledgergateway

import (
	"medimarket-service/internal/app/models"

	"github.com/goccy/go-json"
)

// Error codes reported by the gateway in place of a receipt.
const (
	codeActionRejected    = "ACTION_REJECTED"
	codeInsufficientFunds = "INSUFFICIENT_FUNDS"
	codeCallException     = "CALL_EXCEPTION"
	codeNetworkError      = "NETWORK_ERROR"
	codeTimeout           = "TIMEOUT"
)

type listResponse struct {
	Kind    models.EntityKind `json:"kind"`
	Records []json.RawMessage `json:"records"`
}

type submitRequest struct {
	Kind models.EntityKind `json:"kind"`
	models.TransactionPayload
}

type submitResponse struct {
	Receipt *models.TransactionReceipt `json:"receipt"`
	Error   *gatewayError              `json:"error"`
}

type gatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
}
