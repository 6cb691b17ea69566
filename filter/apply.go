package filter

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"
)

const (
	// EntryKey and EntryValue name an object entry inside an expression
	EntryKey   = "key"
	EntryValue = "value"

	defaultBatchSize = 256
)

// ApplyOption configures Apply
type ApplyOption func(*applier)

// WithWorkers sets the number of goroutines used for large arrays
func WithWorkers(workers int) ApplyOption {
	return func(a *applier) {
		if workers > 0 {
			a.workers = workers
		}
	}
}

// WithBatchSize sets the array length from which rows are evaluated concurrently
func WithBatchSize(size int) ApplyOption {
	return func(a *applier) {
		if size > 0 {
			a.batchSize = size
		}
	}
}

type applier struct {
	workers   int
	batchSize int
}

// Apply keeps the parts of a decoded JSON value that match the filter.
// Arrays keep their matching elements in order. Objects keep the entries for
// which the filter matches; each entry is exposed as key and value, and an
// object value also has its fields in scope.
func Apply(ctx context.Context, f *Filter, v any, opts ...ApplyOption) (any, error) {
	a := applier{
		workers:   runtime.GOMAXPROCS(0),
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(&a)
	}

	switch t := v.(type) {
	case []any:
		if len(t) < a.batchSize {
			return filterRows(ctx, f, t, 0)
		}
		return a.filterConcurrent(ctx, f, t)
	case map[string]any:
		return filterEntries(ctx, f, t)
	default:
		return nil, ErrNotFilterable
	}
}

func filterRows(ctx context.Context, f *Filter, rows []any, offset int) ([]any, error) {
	matches := make([]any, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := f.Match(row)
		if err != nil {
			return nil, &EvaluationError{
				Expression: f.expression,
				Row:        strconv.Itoa(offset + i),
				Reason:     err.Error(),
				Err:        err,
			}
		}
		if ok {
			matches = append(matches, row)
		}
	}
	return matches, nil
}

// filterConcurrent splits rows into chunks and evaluates them on an errgroup,
// then joins the chunk results in their original order.
func (a applier) filterConcurrent(ctx context.Context, f *Filter, rows []any) ([]any, error) {
	chunkSize := max(len(rows)/a.workers, a.batchSize)
	chunks := make([][]any, (len(rows)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(rows))

		g.Go(func() error {
			matches, err := filterRows(ctx, f, rows[start:end], start)
			if err != nil {
				return err
			}
			chunks[i] = matches
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return slices.Concat(chunks...), nil
}

func filterEntries(ctx context.Context, f *Filter, entries map[string]any) (map[string]any, error) {
	out := make(map[string]any)
	for key, value := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row := map[string]any{}
		if fields, ok := value.(map[string]any); ok {
			for k, v := range fields {
				row[k] = v
			}
		}
		row[EntryKey] = key
		row[EntryValue] = value

		ok, err := f.Match(row)
		if err != nil {
			return nil, &EvaluationError{
				Expression: f.expression,
				Row:        fmt.Sprintf("%q", key),
				Reason:     err.Error(),
				Err:        err,
			}
		}
		if ok {
			out[key] = value
		}
	}
	return out, nil
}
