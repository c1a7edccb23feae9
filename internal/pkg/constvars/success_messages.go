package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"
)

const (
	GetCatalogSuccessMessage      = "catalog retrieved successfully"
	GetCatalogStatsSuccessMessage = "catalog statistics retrieved successfully"
	CreateWizardSuccessMessage    = "booking session started"
	GetWizardSuccessMessage       = "booking session retrieved successfully"
	UpdateWizardSuccessMessage    = "booking session updated"
	DiscardWizardSuccessMessage   = "booking session discarded"
	GetConfirmationSuccessMessage = "confirmation retrieved successfully"
	SubmitWizardSuccessMessage    = "submission accepted by the ledger"
	SubmitWizardFailedMessage     = "submission was not completed"
	ApproveDoctorSuccessMessage   = "doctor approved"
	RejectDoctorSuccessMessage    = "doctor rejected"
	StepValidationFailedMessage   = "please correct the highlighted fields"
)
