package pagination

const (
	defaultSize = 20
	maxSize     = 100
)

// PageRequest identifies a bounded slice of a query result.
// Page numbers are zero-based.
type PageRequest struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// NewPageRequest clamps the raw query parameters into a usable request:
// negative pages become 0, out-of-range sizes fall back to the default.
func NewPageRequest(page, size int) PageRequest {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > maxSize {
		size = defaultSize
	}
	return PageRequest{PageNumber: page, PageSize: size}
}

// Offset returns the row offset for this request.
func (p PageRequest) Offset() int {
	return p.PageNumber * p.PageSize
}

// Page is one slice of a query result plus the total match count and the
// request that produced it.
type Page[T any] struct {
	Content       []T         `json:"content"`
	TotalElements int         `json:"totalElements"`
	Pageable      PageRequest `json:"pageable"`
}

// NewPage wraps content in a page envelope. A nil content slice is
// normalized to an empty one so it serializes as [] rather than null.
func NewPage[T any](content []T, total int, req PageRequest) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{Content: content, TotalElements: total, Pageable: req}
}
