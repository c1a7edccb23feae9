package ledgergateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"medimarket-service/internal/pkg/utils"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type ledgerGatewayClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Log        *zap.Logger
}

// NewLedgerGatewayClient talks to the ledger gateway API. A nil limiter
// disables client-side throttling.
func NewLedgerGatewayClient(baseUrl string, httpClient *http.Client, limiter *rate.Limiter, logger *zap.Logger) contracts.LedgerClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ledgerGatewayClient{
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		HTTPClient: httpClient,
		Limiter:    limiter,
		Log:        logger,
	}
}

func (c *ledgerGatewayClient) List(ctx context.Context, kind models.EntityKind) ([]models.LedgerRecord, error) {
	requestID := utils.GetRequestID(ctx)

	err := c.wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exceptions.ErrLedgerUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/records/%s", c.BaseUrl, kind), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exceptions.ErrLedgerUnavailable, err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("ledgerGatewayClient.List error calling ledger gateway",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEntityKindKey, kind.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", exceptions.ErrLedgerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.Log.Error("ledgerGatewayClient.List unexpected status from ledger gateway",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.ByteString(constvars.LoggingDataKey, body),
		)
		return nil, fmt.Errorf("%w: status %d", exceptions.ErrLedgerUnavailable, resp.StatusCode)
	}

	var payload listResponse
	err = json.NewDecoder(resp.Body).Decode(&payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", exceptions.ErrLedgerUnavailable, fmt.Sprintf(constvars.ErrDevLedgerDecodeResponse, kind), err)
	}

	records := make([]models.LedgerRecord, 0, len(payload.Records))
	for _, raw := range payload.Records {
		record, err := models.NewRecord(kind)
		if err != nil {
			return nil, err
		}
		err = json.Unmarshal(raw, record)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", exceptions.ErrLedgerUnavailable, fmt.Sprintf(constvars.ErrDevLedgerDecodeResponse, kind), err)
		}
		records = append(records, record)
	}

	c.Log.Info("ledgerGatewayClient.List succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityKindKey, kind.String()),
		zap.Int(constvars.LoggingRecordCountKey, len(records)),
	)
	return records, nil
}

func (c *ledgerGatewayClient) Submit(ctx context.Context, kind models.EntityKind, payload models.TransactionPayload) (*models.TransactionReceipt, error) {
	requestID := utils.GetRequestID(ctx)

	err := c.wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exceptions.ErrNetwork, err)
	}

	requestJSON, err := json.Marshal(submitRequest{Kind: kind, TransactionPayload: payload})
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/transactions/%s", c.BaseUrl, kind), bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if payload.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", payload.IdempotencyKey)
	}
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("ledgerGatewayClient.Submit error calling ledger gateway",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdempotencyKey, payload.IdempotencyKey),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", exceptions.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exceptions.ErrNetwork, err)
	}

	var result submitResponse
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode >= constvars.StatusInternalServerError && (decodeErr != nil || result.Error == nil) {
		return nil, fmt.Errorf("%w: gateway responded with status %d", exceptions.ErrNetwork, resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf(constvars.ErrDevLedgerDecodeResponse+": %v", kind, decodeErr)
	}
	if result.Error != nil {
		mapped := mapGatewayError(result.Error)
		c.Log.Warn("ledgerGatewayClient.Submit ledger rejected the write",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdempotencyKey, payload.IdempotencyKey),
			zap.String(constvars.LoggingErrorCodeKey, result.Error.Code),
			zap.String(constvars.LoggingErrorMessageKey, result.Error.Message),
		)
		return nil, mapped
	}
	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		return nil, fmt.Errorf("ledger gateway responded with status %d", resp.StatusCode)
	}
	if result.Receipt == nil {
		return nil, errors.New("ledger gateway returned neither a receipt nor an error")
	}

	c.Log.Info("ledgerGatewayClient.Submit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityKindKey, kind.String()),
		zap.String(constvars.LoggingTxHashKey, result.Receipt.TxHash),
	)
	return result.Receipt, nil
}

func (c *ledgerGatewayClient) wait(ctx context.Context) error {
	if c.Limiter == nil {
		return nil
	}
	return c.Limiter.Wait(ctx)
}

// mapGatewayError turns gateway error codes into the typed ledger failures.
// Unknown codes keep the gateway message so classification can fall back to
// pattern matching.
func mapGatewayError(gwErr *gatewayError) error {
	switch gwErr.Code {
	case codeActionRejected:
		return fmt.Errorf("%w: %s", exceptions.ErrUserRejected, gwErr.Message)
	case codeInsufficientFunds:
		return fmt.Errorf("%w: %s", exceptions.ErrInsufficientFunds, gwErr.Message)
	case codeCallException:
		switch {
		case gwErr.Reason != "":
			return exceptions.NewPreconditionFailed(gwErr.Reason)
		case gwErr.Message != "":
			return exceptions.NewPreconditionFailed(gwErr.Message)
		}
		return exceptions.NewPreconditionFailed(constvars.ErrClientLedgerCallRejected)
	case codeNetworkError, codeTimeout:
		return fmt.Errorf("%w: %s", exceptions.ErrNetwork, gwErr.Message)
	default:
		if gwErr.Message == "" {
			return fmt.Errorf("ledger gateway error %s", gwErr.Code)
		}
		return errors.New(gwErr.Message)
	}
}
