package share_file

import (
	"time"

	"github.com/google/uuid"

	"quickdrop-api/internal/domain/share"
)

type (
	// File is one uploaded payload owned by a share. FileName and
	// MimeType are client-declared and untrusted; StorageKey is the
	// generated blob-store name (`<token>.<ext>`), unique per file.
	File struct {
		UUID      uuid.UUID
		ShareUUID share.UUID

		FileName   string
		StorageKey string
		FileSize   int64
		MimeType   string

		CreatedAt time.Time
	}
	Files []*File

	// OwnedFile pairs a file with its owning share's expiry so the
	// retrieval gateway can tell a lapsed owner from an unknown key.
	OwnedFile struct {
		File
		ShareExpiresAt *time.Time
	}
)

// Expired reports whether the owning share has lapsed.
func (f *OwnedFile) Expired(now time.Time) bool {
	return f.ShareExpiresAt != nil && f.ShareExpiresAt.Before(now)
}
