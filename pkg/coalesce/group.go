// Package coalesce shares one in-flight call between concurrent callers
// asking for the same key.
package coalesce

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// Group coalesces calls producing values of type T. The zero value is ready
// to use. A key is registered while its call runs and is released when the
// call returns, successfully or not; later callers start a new call.
type Group[T any] struct {
	group singleflight.Group
}

// Do runs fn once for all concurrent callers using key and hands every
// caller the same result. shared reports whether the result was delivered to
// more than one caller.
//
// fn receives a context detached from the caller's cancellation, so a caller
// giving up does not fail the call for the others. A caller whose ctx is
// done stops waiting and gets ctx.Err().
func (g *Group[T]) Do(ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (T, bool, error) {
	detached := context.WithoutCancel(ctx)

	ch := g.group.DoChan(key, func() (interface{}, error) {
		return fn(detached)
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Shared, res.Err
		}
		if res.Val == nil {
			return zero, res.Shared, nil
		}
		v, ok := res.Val.(T)
		if !ok {
			return zero, res.Shared, fmt.Errorf("coalesce: unexpected result type %T for key %q", res.Val, key)
		}
		return v, res.Shared, nil
	}
}

// Forget releases key so the next caller starts a fresh call even if one is
// still in flight.
func (g *Group[T]) Forget(key string) {
	g.group.Forget(key)
}
