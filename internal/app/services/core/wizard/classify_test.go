package wizard

import (
	"context"
	"errors"
	"fmt"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		class       models.FailureClass
		message     string
		remediation string
		retryable   bool
	}{
		{
			name:        "Typed user rejection",
			err:         fmt.Errorf("sign: %w", exceptions.ErrUserRejected),
			class:       models.FailureUserRejected,
			remediation: constvars.RemediationUserRejected,
			retryable:   true,
		},
		{
			name:        "Wallet rejection code in message",
			err:         errors.New("MetaMask Tx Signature: code 4001"),
			class:       models.FailureUserRejected,
			remediation: constvars.RemediationUserRejected,
			retryable:   true,
		},
		{
			name:        "ACTION_REJECTED code",
			err:         errors.New("ACTION_REJECTED: user rejected transaction"),
			class:       models.FailureUserRejected,
			remediation: constvars.RemediationUserRejected,
			retryable:   true,
		},
		{
			name:        "Insufficient funds message",
			err:         errors.New("insufficient funds for intrinsic transaction cost"),
			class:       models.FailureInsufficientFunds,
			remediation: constvars.RemediationInsufficientFunds,
			retryable:   true,
		},
		{
			name:        "Typed precondition keeps the reason verbatim",
			err:         exceptions.NewPreconditionFailed("Not enough stock"),
			class:       models.FailurePrecondition,
			message:     "Not enough stock",
			remediation: constvars.RemediationOutOfStock,
		},
		{
			name:        "Revert reason from message",
			err:         errors.New("execution reverted: Doctor is not approved"),
			class:       models.FailurePrecondition,
			message:     "Doctor is not approved",
			remediation: constvars.RemediationDoctorNotApproved,
		},
		{
			name:        "Revert reason mentioning 4001 stays a precondition",
			err:         errors.New("execution reverted: insufficient stock for medicine 4001"),
			class:       models.FailurePrecondition,
			message:     "insufficient stock for medicine 4001",
			remediation: constvars.RemediationOutOfStock,
		},
		{
			name:        "Wallet rejection code in parentheses",
			err:         errors.New("transaction signature denied (4001)"),
			class:       models.FailureUserRejected,
			remediation: constvars.RemediationUserRejected,
			retryable:   true,
		},
		{
			name:        "Amount containing 4001 is not a rejection",
			err:         errors.New("nonce too low for value 40010000"),
			class:       models.FailureUnknown,
			message:     "nonce too low for value 40010000",
			remediation: constvars.RemediationUnknown,
			retryable:   true,
		},
		{
			name:        "Revert reason about the fee",
			err:         errors.New("execution reverted: Incorrect fee sent"),
			class:       models.FailurePrecondition,
			message:     "Incorrect fee sent",
			remediation: constvars.RemediationWrongAmount,
		},
		{
			name:        "Typed network error",
			err:         fmt.Errorf("submit: %w", exceptions.ErrNetwork),
			class:       models.FailureNetwork,
			remediation: constvars.RemediationNetwork,
			retryable:   true,
		},
		{
			name:        "Deadline exceeded",
			err:         fmt.Errorf("call: %w", context.DeadlineExceeded),
			class:       models.FailureNetwork,
			remediation: constvars.RemediationNetwork,
			retryable:   true,
		},
		{
			name:        "Connection refused message",
			err:         errors.New("dial tcp 127.0.0.1:8545: connection refused"),
			class:       models.FailureNetwork,
			remediation: constvars.RemediationNetwork,
			retryable:   true,
		},
		{
			name:        "Upload failure",
			err:         exceptions.NewUploadError(errors.New("bucket missing")),
			class:       models.FailureUpload,
			remediation: constvars.RemediationUpload,
			retryable:   true,
		},
		{
			name:        "Unmatched error keeps the raw message",
			err:         errors.New("nonce too low"),
			class:       models.FailureUnknown,
			message:     "nonce too low",
			remediation: constvars.RemediationUnknown,
			retryable:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failure := Classify(tt.err)
			assert.Equal(t, tt.class, failure.Class)
			assert.Equal(t, tt.remediation, failure.Remediation)
			assert.Equal(t, tt.retryable, failure.Retryable)
			if tt.message != "" {
				assert.Equal(t, tt.message, failure.Message)
			} else {
				assert.NotEmpty(t, failure.Message)
			}
		})
	}
}

func TestReturnStep(t *testing.T) {
	assert.Equal(t, models.StepEnterDetails, ReturnStep(models.FailureValidation))
	assert.Equal(t, models.StepEnterDetails, ReturnStep(models.FailurePrecondition))
	for _, class := range []models.FailureClass{
		models.FailureUserRejected,
		models.FailureInsufficientFunds,
		models.FailureNetwork,
		models.FailureUpload,
		models.FailureUnknown,
	} {
		assert.Equal(t, models.StepConfirm, ReturnStep(class), string(class))
	}
}
