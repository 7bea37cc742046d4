package services

import (
	"context"
	"fmt"

	"quickdrop-api/config"
	"quickdrop-api/internal/application/ports"
	"quickdrop-api/internal/domain/share"
	"quickdrop-api/internal/domain/share_file"
)

// validateRawFile checks size then declared MIME type, in that order.
func validateRawFile(cfg config.Share, rf ports.RawFile) error {
	if rf.Size > cfg.MaxFileBytes {
		return share.NewFileTooLarge(rf.FileName)
	}
	if !mimeAllowed(cfg, rf.MimeType) {
		return share.NewUnsupportedType(rf.FileName, rf.MimeType)
	}
	return nil
}

func mimeAllowed(cfg config.Share, mimeType string) bool {
	for _, m := range cfg.AllowedMimes {
		if m == mimeType {
			return true
		}
	}
	return cfg.MimePrefixOK != "" && len(mimeType) >= len(cfg.MimePrefixOK) &&
		mimeType[:len(cfg.MimePrefixOK)] == cfg.MimePrefixOK
}

// persistRawFile writes the payload to the blob store under a fresh token
// and records the file row. The recorded size is the byte count actually
// written, not the client-declared one.
func persistRawFile(
	ctx context.Context,
	codes *CodeGenerator,
	blobs ports.BlobStore,
	fileRepo share_file.Repository,
	shareUUID share.UUID,
	rf ports.RawFile,
) (*share_file.File, error) {
	token, err := codes.NewBlobToken()
	if err != nil {
		return nil, fmt.Errorf("blob token generation failed: %w", err)
	}
	key := token + extensionFor(rf.FileName, rf.MimeType)

	rc, err := rf.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %q: %w", rf.FileName, err)
	}
	defer rc.Close()

	n, err := blobs.Put(ctx, key, rc)
	if err != nil {
		return nil, fmt.Errorf("write blob %q: %w", key, err)
	}

	rec := share_file.File{
		FileName:   sanitizeFileName(rf.FileName),
		StorageKey: key,
		FileSize:   n,
		MimeType:   rf.MimeType,
	}

	return fileRepo.CreateFile(ctx, shareUUID, rec)
}
