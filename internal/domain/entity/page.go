package entity

// Page is the paginated list envelope returned by every collection endpoint.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// PageRequest carries the standard list query parameters.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}
