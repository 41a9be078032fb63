package repository

// CompareOp is a comparison operator in a list filter condition.
type CompareOp string

const (
	OpEq  CompareOp = "eq"
	OpGt  CompareOp = "gt"
	OpGte CompareOp = "gte"
	OpLt  CompareOp = "lt"
	OpLte CompareOp = "lte"
	OpIn  CompareOp = "in"
)

// Condition is one field comparison in a list filter. For OpIn the value is
// a slice; for every other operator it is a scalar.
type Condition struct {
	Field string
	Op    CompareOp
	Value any
}

// SortField is one component of a sort order.
type SortField struct {
	Field string
	Desc  bool
}

// Pagination defaults shared by every list endpoint.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListQuery is a typed specification for list endpoints: filter conditions,
// projection, sort order and pagination. Repositories translate it to their
// native query representation; the ownership scope of the calling user is
// applied by the repository on top of these conditions and can never be
// overridden by them.
type ListQuery struct {
	Conditions []Condition
	Sort       []SortField
	Select     []string
	Page       int
	Limit      int
}

// PageOrDefault returns the requested page, defaulting to 1.
func (q ListQuery) PageOrDefault() int {
	if q.Page < 1 {
		return DefaultPage
	}
	return q.Page
}

// LimitOrDefault returns the requested page size, defaulting to 10.
func (q ListQuery) LimitOrDefault() int {
	if q.Limit < 1 {
		return DefaultLimit
	}
	return q.Limit
}

// Skip returns the number of documents to skip for the requested page.
func (q ListQuery) Skip() int {
	return (q.PageOrDefault() - 1) * q.LimitOrDefault()
}

// PageRef identifies an adjacent page in a paginated response.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries references to the adjacent pages of a list result.
// Next is present iff page*limit < total; Prev is present iff page > 1.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Paginate computes the pagination block for a list result. A page past the
// end of the result set simply yields neither Next nor an error.
func (q ListQuery) Paginate(total int64) Pagination {
	page := q.PageOrDefault()
	limit := q.LimitOrDefault()

	var p Pagination
	if int64(page*limit) < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}
