// Package fanout provides a generic concurrent map-reduce helper for
// per-file rename work (spec §4.6 step 8, §5): run one function per item
// concurrently, respecting cancellation, and collect the results in
// input order.
//
// Grounded on gopls's own concurrent reverse-dependency search
// (golang.org/x/tools/gopls/internal/golang/implementation.go's
// `var group errgroup.Group` fan-out), generalized from Go packages to
// an arbitrary item type via generics.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map runs f(ctx, item) concurrently for every item in items and returns
// the results in the same order as items. If any call returns an error,
// Map cancels the remaining work and returns that error (the first one
// observed); every suspension point inside f should honor ctx so
// cancellation actually stops in-flight work (spec §5).
func Map[T, R any](ctx context.Context, items []T, f func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	group, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		group.Go(func() error {
			r, err := f(gctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MapTolerant is Map's degrade-silently counterpart (spec §7: "per-file
// failures during fan-out degrade silently"). onError is called (if
// non-nil) with each item's error for logging; the failing item's zero
// result is omitted from the returned slice rather than aborting the
// whole fan-out. MapTolerant still respects ctx cancellation: a
// cancelled context is itself returned as an error, since that is not a
// per-item failure but an aborted operation (spec §5: "on cancel the
// orchestrator aborts pending per-file tasks and returns a cancellation
// error").
func MapTolerant[T, R any](ctx context.Context, items []T, f func(context.Context, T) (R, error), onError func(item T, err error)) ([]R, error) {
	type outcome struct {
		result R
		ok     bool
	}
	outcomes := make([]outcome, len(items))
	group, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		group.Go(func() error {
			r, err := f(gctx, item)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				if onError != nil {
					onError(item, err)
				}
				return nil
			}
			outcomes[i] = outcome{result: r, ok: true}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	results := make([]R, 0, len(items))
	for _, o := range outcomes {
		if o.ok {
			results = append(results, o.result)
		}
	}
	return results, nil
}
