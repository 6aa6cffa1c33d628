package simulate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/pagebind/internal/pagination"
	"github.com/rshade/pagebind/internal/source"
)

// Drain pages through src with a headless controller, scrolling to the end
// after every page, and passes each item to emit. It stops when the
// controller reports the source empty or exhausted and returns the final
// pagination snapshot.
func Drain(
	ctx context.Context,
	src source.Source,
	opts pagination.Options,
	sortField, sortOrder string,
	logger zerolog.Logger,
	emit func(source.Item) error,
) (pagination.Meta, error) {
	rec := NewRecorder(logger)

	var pending *LoadRequest
	rec.OnLoad = func(req LoadRequest) {
		pending = &req
	}

	ctrl, err := pagination.BuildWith(opts.PageElementCount, rec).
		WithOptions(opts).
		SetLogger(logger).
		Build()
	if err != nil {
		return pagination.Meta{}, err
	}
	rec.LayoutPass()

	total := 0
	for {
		pending = nil
		if applyErr := Apply(ctrl, rec, Step{Op: OpScroll}, opts.PageElementCount); applyErr != nil {
			return ctrl.Meta(), applyErr
		}
		if pending == nil {
			return ctrl.Meta(), nil
		}

		items, fetchErr := src.Fetch(ctx, source.Query{
			Offset:    pending.CurrentLoad,
			Limit:     pending.PageSize,
			SortField: sortField,
			SortOrder: sortOrder,
		})
		if fetchErr != nil {
			_ = ctrl.LoadFinished(total)
			return ctrl.Meta(), fmt.Errorf("fetching page %d from %s: %w", pending.NextPage, src.Name(), fetchErr)
		}

		for _, it := range items {
			if emitErr := emit(it); emitErr != nil {
				return ctrl.Meta(), emitErr
			}
		}

		total += len(items)
		if finishErr := ctrl.LoadFinished(total); finishErr != nil {
			return ctrl.Meta(), finishErr
		}
	}
}
