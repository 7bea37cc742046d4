package share_file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID        uint64
		UUID      uuid.UUID
		ShareUUID uuid.UUID

		FileName   string
		StorageKey string
		FileSize   int64
		MimeType   string

		CreatedAt time.Time
	}
	Files []*File
)
