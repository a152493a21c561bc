package domain

// Page is one slice of a paginated backend collection, in the Spring Data
// response shape the board service uses.
//
// Invariant: when Content is non-empty, PageIndex < TotalPages. The one
// transient exception is the window between deleting the last item of a
// non-first page and the re-fetch of the previous page; callers must not
// treat the page as stable until that re-fetch lands.
type Page[T any] struct {
	Content    []T `json:"content"`
	PageIndex  int `json:"number"`
	TotalPages int `json:"totalPages"`
}
