package ports

import (
	"context"
	"io"

	"quickdrop-api/internal/domain/share"
	"quickdrop-api/internal/domain/share_file"
)

type (
	// RawFile is one incoming upload, transport-agnostic. Name, type and
	// size are client-declared.
	RawFile struct {
		FileName string
		MimeType string
		Size     int64
		Open     func() (io.ReadCloser, error)
	}

	CreateResult struct {
		Code        string
		FilesCount  int
		HasTextData bool
	}

	// ShareView is a share together with its current file list.
	ShareView struct {
		Share *share.Share
		Files share_file.Files
	}
)

type ShareService interface {
	CreateShare(ctx context.Context, text string, files []RawFile, password string) (*CreateResult, error)
	GetShare(ctx context.Context, code string) (*ShareView, error)
	AppendOrAccess(ctx context.Context, code, text string, files []RawFile, password string) (*ShareView, error)
}
