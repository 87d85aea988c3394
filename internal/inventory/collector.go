package inventory

import "context"

// Collector is implemented by each storage provider.
type Collector interface {
	Collect(ctx context.Context, cfg CollectConfig, progress func(Progress)) *Result
}
