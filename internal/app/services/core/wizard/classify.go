package wizard

import (
	"context"
	"errors"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"net"
	"regexp"
	"strings"
)

var (
	revertReasonPattern     = regexp.MustCompile(`(?i)execution reverted(?::\s*(.+))?`)
	userRejectedCodePattern = regexp.MustCompile(`(?i)\bcode[=: ]*4001\b|\(4001\)`)
)

var (
	userRejectedPatterns      = []string{"user rejected", "user denied", "action_rejected", "rejected by user"}
	insufficientFundsPatterns = []string{"insufficient funds", "insufficient_funds", "insufficient balance"}
	networkPatterns           = []string{"timeout", "timed out", "connection refused", "connection reset", "network error", "network_error", "no such host", "failed to fetch", "econnreset", "unexpected eof"}
)

// Classify maps a submission error to the fixed failure taxonomy. Typed
// errors are matched first; collaborator messages second. Anything else is
// unknown and keeps its raw message.
func Classify(err error) models.Failure {
	if err == nil {
		return models.Failure{Class: models.FailureUnknown, Remediation: constvars.RemediationUnknown, Retryable: true}
	}
	message := err.Error()

	var precondition *exceptions.PreconditionFailedError
	var upload *exceptions.UploadError
	var netErr net.Error

	switch {
	case errors.Is(err, exceptions.ErrStepValidation):
		return validationFailure()
	case errors.As(err, &upload):
		return models.Failure{Class: models.FailureUpload, Message: message, Remediation: constvars.RemediationUpload, Retryable: true}
	case errors.As(err, &precondition):
		return preconditionFailure(precondition.Reason)
	case errors.Is(err, exceptions.ErrUserRejected):
		return userRejectedFailure(message)
	case errors.Is(err, exceptions.ErrInsufficientFunds):
		return insufficientFundsFailure(message)
	case errors.Is(err, exceptions.ErrNetwork),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return networkFailure(message)
	}

	lower := strings.ToLower(message)
	switch {
	case revertReasonPattern.MatchString(message):
		reason := message
		if match := revertReasonPattern.FindStringSubmatch(message); len(match) > 1 && strings.TrimSpace(match[1]) != "" {
			reason = strings.TrimSpace(match[1])
		}
		return preconditionFailure(reason)
	case containsAny(lower, userRejectedPatterns), userRejectedCodePattern.MatchString(message):
		return userRejectedFailure(message)
	case containsAny(lower, insufficientFundsPatterns):
		return insufficientFundsFailure(message)
	case containsAny(lower, networkPatterns):
		return networkFailure(message)
	}

	return models.Failure{Class: models.FailureUnknown, Message: message, Remediation: constvars.RemediationUnknown, Retryable: true}
}

// FailureFor rebuilds a failure from a recorded class and message, as when a
// journaled attempt is reconciled after the process that made it went away.
func FailureFor(class models.FailureClass, message string) models.Failure {
	switch class {
	case models.FailureValidation:
		return validationFailure()
	case models.FailurePrecondition:
		return preconditionFailure(message)
	case models.FailureUserRejected:
		return userRejectedFailure(message)
	case models.FailureInsufficientFunds:
		return insufficientFundsFailure(message)
	case models.FailureNetwork:
		return networkFailure(message)
	case models.FailureUpload:
		return models.Failure{Class: models.FailureUpload, Message: message, Remediation: constvars.RemediationUpload, Retryable: true}
	}
	return models.Failure{Class: models.FailureUnknown, Message: message, Remediation: constvars.RemediationUnknown, Retryable: true}
}

// InterruptedFailure marks an attempt whose outcome was never recorded. It
// returns the wizard to the recap.
func InterruptedFailure() models.Failure {
	return models.Failure{
		Class:       models.FailureUnknown,
		Message:     constvars.ErrClientSubmissionInterrupted,
		Remediation: constvars.RemediationInterrupted,
		Retryable:   true,
	}
}

func validationFailure() models.Failure {
	return models.Failure{
		Class:       models.FailureValidation,
		Message:     constvars.ErrClientFixFormErrors,
		Remediation: constvars.RemediationValidation,
	}
}

func preconditionFailure(reason string) models.Failure {
	lower := strings.ToLower(reason)
	remediation := constvars.RemediationPrecondition
	switch {
	case strings.Contains(lower, "stock"), strings.Contains(lower, "quantity"):
		remediation = constvars.RemediationOutOfStock
	case strings.Contains(lower, "approv"):
		remediation = constvars.RemediationDoctorNotApproved
	case strings.Contains(lower, "fee"), strings.Contains(lower, "amount"), strings.Contains(lower, "value"), strings.Contains(lower, "price"):
		remediation = constvars.RemediationWrongAmount
	}
	return models.Failure{Class: models.FailurePrecondition, Message: reason, Remediation: remediation}
}

func userRejectedFailure(message string) models.Failure {
	return models.Failure{Class: models.FailureUserRejected, Message: message, Remediation: constvars.RemediationUserRejected, Retryable: true}
}

func insufficientFundsFailure(message string) models.Failure {
	return models.Failure{Class: models.FailureInsufficientFunds, Message: message, Remediation: constvars.RemediationInsufficientFunds, Retryable: true}
}

func networkFailure(message string) models.Failure {
	return models.Failure{Class: models.FailureNetwork, Message: message, Remediation: constvars.RemediationNetwork, Retryable: true}
}

func containsAny(value string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(value, pattern) {
			return true
		}
	}
	return false
}
