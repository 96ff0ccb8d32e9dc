// Package loader provides the recipient sources a campaign can draw from.
//
// Loaders do raw extraction only. Validation and dedup are the planner's job,
// so every source gets the same guarantees regardless of how clean it is.
package loader

import "context"

// Loader produces the raw ordered candidate list for one run. A load failure
// is fatal to the run: there is nothing to dispatch without it.
type Loader interface {
	Load(ctx context.Context) ([]string, error)
}

// Func adapts a plain function into a Loader. This is the pluggable variant
// for recipient sources that do not fit the built-in set.
type Func func(ctx context.Context) ([]string, error)

func (f Func) Load(ctx context.Context) ([]string, error) { return f(ctx) }
