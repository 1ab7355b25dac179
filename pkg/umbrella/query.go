package umbrella

import (
	"net/url"
	"strconv"
)

// QueryParams represents query parameters for API requests. Parameters are
// single-valued; pagination fields are only serialized when set.
type QueryParams struct {
	Page    int
	Limit   int
	Filters map[string]string
}

// NewQueryParams creates a new QueryParams instance.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string]string),
	}
}

// WithPage sets the page number.
func (q *QueryParams) WithPage(page int) *QueryParams {
	q.Page = page

	return q
}

// WithLimit sets the page size.
func (q *QueryParams) WithLimit(limit int) *QueryParams {
	q.Limit = limit

	return q
}

// WithFilter sets a filter parameter, replacing any previous value.
func (q *QueryParams) WithFilter(key, value string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string]string)
	}

	q.Filters[key] = value

	return q
}

// Clone returns an independent copy. Pagination loops clone their base params
// per request so page state never leaks between calls.
func (q *QueryParams) Clone() *QueryParams {
	if q == nil {
		return NewQueryParams()
	}

	clone := &QueryParams{
		Page:    q.Page,
		Limit:   q.Limit,
		Filters: make(map[string]string, len(q.Filters)),
	}

	for key, value := range q.Filters {
		clone.Filters[key] = value
	}

	return clone
}

// ToValues converts the params to url.Values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q == nil {
		return values
	}

	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	for key, value := range q.Filters {
		values.Set(key, value)
	}

	return values
}
