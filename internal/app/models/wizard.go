package models

import "time"

// WizardStep numbers the booking/purchase states. Failed is not a resting
// step: a failed submission returns to Confirm or EnterDetails.
type WizardStep int

const (
	StepSelectTarget WizardStep = iota + 1
	StepEnterDetails
	StepConfirm
	StepSubmitting
	StepSucceeded
)

var wizardStepNames = map[WizardStep]string{
	StepSelectTarget: "select_target",
	StepEnterDetails: "enter_details",
	StepConfirm:      "confirm",
	StepSubmitting:   "submitting",
	StepSucceeded:    "succeeded",
}

func (s WizardStep) String() string {
	if name, ok := wizardStepNames[s]; ok {
		return name
	}
	return "unknown"
}

type SubmissionStatus string

const (
	SubmissionIdle       SubmissionStatus = "idle"
	SubmissionSubmitting SubmissionStatus = "submitting"
	SubmissionSucceeded  SubmissionStatus = "succeeded"
	SubmissionFailed     SubmissionStatus = "failed"
)

type FailureClass string

const (
	FailureValidation        FailureClass = "validation"
	FailureUpload            FailureClass = "upload"
	FailurePrecondition      FailureClass = "precondition"
	FailureUserRejected      FailureClass = "user_rejected"
	FailureInsufficientFunds FailureClass = "insufficient_funds"
	FailureNetwork           FailureClass = "network"
	FailureUnknown           FailureClass = "unknown"
)

// Failure is a classified submission failure. Message is the collaborator's
// reason, kept verbatim; Remediation tells the user what to do next.
type Failure struct {
	Class       FailureClass `json:"class"`
	Message     string       `json:"message"`
	Remediation string       `json:"remediation"`
	Retryable   bool         `json:"retryable"`
}

// Selection is the target picked in the first step. Snapshot holds the
// ledger fields at selection time, which pricing and guards read.
type Selection struct {
	Ref      EntityRef      `json:"ref"`
	Label    string         `json:"label"`
	Snapshot map[string]any `json:"snapshot"`
}

type WizardState struct {
	ID               string              `json:"id"`
	Flow             string              `json:"flow"`
	Account          string              `json:"account,omitempty"`
	Step             WizardStep          `json:"step"`
	Selection        *Selection          `json:"selection,omitempty"`
	FormFields       map[string]any      `json:"form_fields"`
	FieldErrors      map[string]string   `json:"field_errors"`
	SubmissionStatus SubmissionStatus    `json:"submission_status"`
	LastFailure      *Failure            `json:"last_failure,omitempty"`
	Receipt          *TransactionReceipt `json:"receipt,omitempty"`
	IdempotencyKey   string              `json:"idempotency_key,omitempty"`
	ContentRef       string              `json:"content_ref,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// Clone copies the maps so reducers never mutate a state they were given.
func (s WizardState) Clone() WizardState {
	clone := s
	clone.FormFields = make(map[string]any, len(s.FormFields))
	for k, v := range s.FormFields {
		clone.FormFields[k] = v
	}
	clone.FieldErrors = make(map[string]string, len(s.FieldErrors))
	for k, v := range s.FieldErrors {
		clone.FieldErrors[k] = v
	}
	if s.Selection != nil {
		selection := *s.Selection
		selection.Snapshot = make(map[string]any, len(s.Selection.Snapshot))
		for k, v := range s.Selection.Snapshot {
			selection.Snapshot[k] = v
		}
		clone.Selection = &selection
	}
	if s.LastFailure != nil {
		failure := *s.LastFailure
		clone.LastFailure = &failure
	}
	if s.Receipt != nil {
		receipt := *s.Receipt
		clone.Receipt = &receipt
	}
	return clone
}

// FieldString reads a form field as text; booleans and missing values yield "".
func (s WizardState) FieldString(name string) string {
	value, _ := s.FormFields[name].(string)
	return value
}

func (s WizardState) FieldBool(name string) bool {
	value, _ := s.FormFields[name].(bool)
	return value
}
