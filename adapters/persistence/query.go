package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/yash-jivani/DevNetworks/pkg/apperror"
)

// queryContext bounds a single store operation. The request context alone
// carries no deadline, so without this a stalled connection blocks the
// request until the TCP connection dies.
func queryContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// queryError classifies a failed store operation: a deadline hit is a
// timeout, everything else is internal.
func queryError(details string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.NewTimeout(details, err)
	}
	return apperror.NewInternal(details, err)
}
