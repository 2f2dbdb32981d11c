package dto

// SearchResponse groups matches by entity type. A branch that fails yields its
// empty group — callers cannot tell "no rows" from a failed branch, matching
// the list-hook semantics elsewhere in the API.
type SearchResponse struct {
	Query     string             `json:"query"`
	Products  []ProductResponse  `json:"products"`
	Customers []CustomerResponse `json:"customers"`
	Suppliers []SupplierResponse `json:"suppliers"`
}
