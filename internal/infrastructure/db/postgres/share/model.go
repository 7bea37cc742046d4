package share

import (
	"time"

	"github.com/google/uuid"
)

type (
	Share struct {
		ID   uint64
		UUID uuid.UUID

		Code     string
		TextData *string
		Password *string

		CreatedAt time.Time
		ExpiresAt *time.Time
	}
	Shares []*Share
)
