package umbrella

import (
	"context"

	"github.com/policyops/umbrella/internal/constants"
)

// PageSize is the fixed page size used by all pagination helpers.
const PageSize = constants.PageSize

// PageLister issues a single page request against a paginated list endpoint.
type PageLister[T any] interface {
	ListPage(ctx context.Context, path string, params *QueryParams) (*ListResponse[T], error)
}

// FetchAllPages retrieves every page of a listing endpoint and returns the
// concatenated items in page order.
//
// The loop requests 1-based pages of PageSize items and stops at the first
// page shorter than PageSize. A listing whose total is an exact multiple of
// PageSize therefore costs one extra request for the trailing empty page; the
// server does not report a total, so a short page is the only end signal.
// Errors abort the loop and no partial result is returned.
func FetchAllPages[T any](ctx context.Context, lister PageLister[T], path string, base *QueryParams) ([]T, error) {
	var all []T

	for page := 1; ; page++ {
		// Fresh params per request; the base is never mutated.
		params := base.Clone()
		params.Page = page
		params.Limit = PageSize

		resp, err := lister.ListPage(ctx, path, params)
		if err != nil {
			return nil, err
		}

		all = append(all, resp.Data...)

		if len(resp.Data) < PageSize {
			return all, nil
		}
	}
}

// PaginationIterator walks a paginated endpoint one item at a time, fetching
// pages lazily.
type PaginationIterator[T any] struct {
	ctx    context.Context
	lister PageLister[T]
	path   string
	base   *QueryParams

	page    int
	buffer  []T
	index   int
	done    bool
	lastErr error
}

// NewPaginationIterator creates an iterator over the given endpoint.
func NewPaginationIterator[T any](ctx context.Context, lister PageLister[T], path string, base *QueryParams) *PaginationIterator[T] {
	return &PaginationIterator[T]{
		ctx:    ctx,
		lister: lister,
		path:   path,
		base:   base,
	}
}

// HasNext reports whether another item is available. A pending fetch error
// also counts as "next" so Next can surface it.
func (it *PaginationIterator[T]) HasNext() bool {
	if it.lastErr != nil || it.index < len(it.buffer) {
		return true
	}

	if it.done {
		return false
	}

	it.fetchNextPage()

	return it.lastErr != nil || it.index < len(it.buffer)
}

// Next returns the next item, fetching the next page when the current one is
// exhausted.
func (it *PaginationIterator[T]) Next() (T, error) {
	var zero T

	if it.index >= len(it.buffer) && !it.done && it.lastErr == nil {
		it.fetchNextPage()
	}

	if it.lastErr != nil {
		err := it.lastErr
		it.lastErr = nil

		return zero, err
	}

	if it.index >= len(it.buffer) {
		return zero, ErrNoMoreItems
	}

	item := it.buffer[it.index]
	it.index++

	return item, nil
}

// All drains the iterator and returns the remaining items.
func (it *PaginationIterator[T]) All() ([]T, error) {
	var all []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return nil, err
		}

		all = append(all, item)
	}

	return all, nil
}

// ForEach applies fn to each remaining item, stopping on the first error.
func (it *PaginationIterator[T]) ForEach(fn func(item T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

func (it *PaginationIterator[T]) fetchNextPage() {
	it.page++

	params := it.base.Clone()
	params.Page = it.page
	params.Limit = PageSize

	resp, err := it.lister.ListPage(it.ctx, it.path, params)
	if err != nil {
		it.lastErr = err

		return
	}

	it.buffer = resp.Data
	it.index = 0

	if len(resp.Data) < PageSize {
		it.done = true
	}
}
