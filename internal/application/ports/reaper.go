package ports

import "context"

// Reaper purges expired shares, their file rows and their blobs.
// Reap is idempotent and safe to call concurrently with itself.
type Reaper interface {
	Reap(ctx context.Context) (int, error)
}
