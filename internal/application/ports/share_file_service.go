package ports

import (
	"context"

	"quickdrop-api/internal/domain/share_file"
)

// FileContent is the retrieval gateway's answer: the exact bytes written
// at ingestion plus the recorded metadata for framing a response.
type FileContent struct {
	File *share_file.File
	Data []byte
}

type ShareFileService interface {
	AddFiles(ctx context.Context, code string, files []RawFile) (share_file.Files, error)
	FetchFile(ctx context.Context, key string) (*FileContent, error)
	DeleteFile(ctx context.Context, key string) error
}
