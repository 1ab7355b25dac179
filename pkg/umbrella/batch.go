package umbrella

import (
	"context"

	"github.com/policyops/umbrella/internal/constants"
)

// BatchSize is the fixed chunk size for bulk destination endpoints.
const BatchSize = constants.BatchSize

// Chunk splits items into contiguous chunks of at most size items, preserving
// input order. The last chunk may be shorter. Empty input yields no chunks.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)

	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}

	return chunks
}

// SubmitChunks submits the items in chunks of size via submit, one request per
// chunk in input order, and returns the data of the last chunk's response.
//
// Empty input issues no requests and returns nil. A failed chunk aborts the
// remaining chunks; the returned ChunkError reports how many chunks had
// already been applied, since the server does not roll them back.
func SubmitChunks[T, R any](
	ctx context.Context,
	items []T,
	size int,
	submit func(ctx context.Context, chunk []T) (*Response[R], error),
) (*R, error) {
	chunks := Chunk(items, size)
	if len(chunks) == 0 {
		return nil, nil
	}

	var last *Response[R]

	for i, chunk := range chunks {
		resp, err := submit(ctx, chunk)
		if err != nil {
			return nil, &ChunkError{Completed: i, Total: len(chunks), Err: err}
		}

		last = resp
	}

	return &last.Data, nil
}
