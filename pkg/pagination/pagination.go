package pagination

type PageRequest struct {
	Page    int
	PerPage int
}

type Page[T any] struct {
	Items      []T
	TotalItems int64
	Page       int
	PerPage    int
}

// Normalize clamps the request to usable values: page is 1-based and
// fails closed to 1, per-page falls back to def and is capped at max.
func (r PageRequest) Normalize(def, max int) PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PerPage <= 0 {
		r.PerPage = def
	}
	if r.PerPage > max {
		r.PerPage = max
	}
	return r
}

// Offset returns the number of items preceding the requested page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PerPage
}
