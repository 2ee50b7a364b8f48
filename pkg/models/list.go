package models

// Pagination describes the page set of a list response.
type Pagination struct {
	TotalCount int `json:"total_count"`
	MaxPage    int `json:"max_page"`
}

// ListResource is one page of a list response.
type ListResource[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}
