package share_file

import (
	"context"

	"quickdrop-api/internal/domain/share"
)

type Repository interface {
	// CreateFile records a persisted blob under its owning share.
	CreateFile(ctx context.Context, shareUUID share.UUID, req File) (*File, error)
	// FetchByShare lists every file owned by a share, oldest first.
	FetchByShare(ctx context.Context, shareUUID share.UUID) (Files, error)
	// FetchByStorageKey resolves a blob key to its file and the owning
	// share's expiry; nil when the key is unknown.
	FetchByStorageKey(ctx context.Context, key string) (*OwnedFile, error)
	// DeleteByStorageKey removes one file row; false when already gone.
	DeleteByStorageKey(ctx context.Context, key string) (bool, error)
	// DeleteByShare removes all file rows owned by a share.
	DeleteByShare(ctx context.Context, shareUUID share.UUID) error
}
