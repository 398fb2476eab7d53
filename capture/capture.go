package capture

import (
	"context"
	"time"
)

// Capturer records a bounded-duration segment of a network stream to dest.
// Implementations block until the capture finishes or ctx is cancelled, and
// must not leave a file at dest on failure.
type Capturer interface {
	Capture(ctx context.Context, uri string, duration time.Duration, dest string) error
}
