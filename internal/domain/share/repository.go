package share

import (
	"context"
	"time"
)

type Repository interface {
	// CreateShare persists a new share; ErrCodeTaken when the code
	// collides with an existing row.
	CreateShare(ctx context.Context, req Share) (*Share, error)
	// FetchByCode returns the share for a normalized code, expired or
	// not, or nil when absent.
	FetchByCode(ctx context.Context, code string) (*Share, error)
	// FetchPublicByCode is the password-less lookup path; a protected
	// share is invisible through it.
	FetchPublicByCode(ctx context.Context, code string) (*Share, error)
	// UpdateText replaces the stored text body; nil when the share is gone.
	UpdateText(ctx context.Context, uuid UUID, text string) (*Share, error)
	// FetchExpired lists every share whose expiry is strictly before now.
	FetchExpired(ctx context.Context, now time.Time) (Shares, error)
	// DeleteShare removes the share row, cascading to its file rows.
	// Returns false when the row was already gone.
	DeleteShare(ctx context.Context, uuid UUID) (bool, error)
}
