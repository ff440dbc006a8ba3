package dto

// Page is a paginated query result. Pages are 1-based.
type Page[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

// Offset converts a 1-based page into a row offset. A non-positive size
// means an unbounded listing and yields offset zero.
func Offset(page, size int) int {
	if page <= 1 || size <= 0 {
		return 0
	}
	return (page - 1) * size
}
