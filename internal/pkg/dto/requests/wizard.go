package requests

type CreateWizard struct {
	Flow string `json:"flow" validate:"required,oneof=book_appointment purchase_medicine list_medicine"`
}

// SelectTarget uses a pointer so that entity id 0 is distinguishable from a
// missing id.
type SelectTarget struct {
	EntityID *uint64 `json:"entity_id" validate:"required"`
}

type UpdateWizardFields struct {
	Fields map[string]any `json:"fields" validate:"required,min=1"`
}
