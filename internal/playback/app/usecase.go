package app

import (
	"context"
	"time"
)

// searchLimit admin searches return at most this many rows
const searchLimit = 50

// now clock of decisions and audit entries, swapped in tests
var now = time.Now

// boundCtx applies the persistence timeout to one use case call
func boundCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
