package requests

type CatalogQuery struct {
	Search  string `json:"search"`
	Status  string `json:"status"`
	Sort    string `json:"sort"`
	Order   string `json:"order" validate:"omitempty,oneof=asc desc"`
	Refresh bool   `json:"refresh"`
}
