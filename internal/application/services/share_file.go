package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"quickdrop-api/config"
	"quickdrop-api/internal/application/ports"
	domain "quickdrop-api/internal/domain/share"
	"quickdrop-api/internal/domain/share_file"
)

type ShareFileService struct {
	cfg       config.Share
	shareRepo domain.Repository
	fileRepo  share_file.Repository
	blobs     ports.BlobStore
	codes     *CodeGenerator
	reaper    ports.Reaper
	mCounter  *prometheus.CounterVec
	logger    *zap.Logger
}

func NewShareFileService(
	cfg config.Share,
	shareRepo domain.Repository,
	fileRepo share_file.Repository,
	blobs ports.BlobStore,
	codes *CodeGenerator,
	reaper ports.Reaper,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.ShareFileService {
	return &ShareFileService{
		cfg:       cfg,
		shareRepo: shareRepo,
		fileRepo:  fileRepo,
		blobs:     blobs,
		codes:     codes,
		reaper:    reaper,
		mCounter:  mCounter,
		logger:    logger,
	}
}

// AddFiles uploads more files to an existing share. Invalid files are
// skipped, not failed; only the files persisted by this call are returned.
func (sfs *ShareFileService) AddFiles(ctx context.Context, code string, files []ports.RawFile) (share_file.Files, error) {
	sh, err := sfs.shareRepo.FetchByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, domain.ErrNotFound
	}
	if sh.Expired(time.Now()) {
		if _, rerr := sfs.reaper.Reap(ctx); rerr != nil {
			sfs.logger.Error("reactive expiry pass failed", zap.Error(rerr))
		}
		return nil, domain.ErrNotFound
	}

	var added share_file.Files
	for _, rf := range files {
		if verr := validateRawFile(sfs.cfg, rf); verr != nil {
			sfs.logger.Info("skipping invalid file on upload",
				zap.String("code", sh.Code),
				zap.String("file_name", rf.FileName),
				zap.String("reason", verr.Error()),
			)
			continue
		}
		f, err := persistRawFile(ctx, sfs.codes, sfs.blobs, sfs.fileRepo, sh.UUID, rf)
		if err != nil {
			return nil, err
		}
		added = append(added, f)
		sfs.mCounter.WithLabelValues("files_uploaded_total").Inc()
	}

	return added, nil
}

// FetchFile resolves a blob key to its exact bytes and recorded metadata.
// A known key whose owning share has lapsed but not yet been reaped is
// Expired, distinct from NotFound.
func (sfs *ShareFileService) FetchFile(ctx context.Context, key string) (*ports.FileContent, error) {
	of, err := sfs.fileRepo.FetchByStorageKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if of == nil {
		return nil, domain.ErrNotFound
	}
	if of.Expired(time.Now()) {
		return nil, domain.ErrExpired
	}

	rc, err := sfs.blobs.Open(ctx, of.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("open blob %q: %w", of.StorageKey, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read blob %q: %w", of.StorageKey, err)
	}

	return &ports.FileContent{File: &of.File, Data: data}, nil
}

// DeleteFile removes the record and the blob unconditionally; access
// gating happens above this layer.
func (sfs *ShareFileService) DeleteFile(ctx context.Context, key string) error {
	of, err := sfs.fileRepo.FetchByStorageKey(ctx, key)
	if err != nil {
		return err
	}
	if of == nil {
		return domain.ErrNotFound
	}

	if err = sfs.blobs.Delete(ctx, of.StorageKey); err != nil {
		return fmt.Errorf("delete blob %q: %w", of.StorageKey, err)
	}

	deleted, err := sfs.fileRepo.DeleteByStorageKey(ctx, of.StorageKey)
	if err != nil {
		return err
	}
	if !deleted {
		// lost the race to a concurrent delete
		return domain.ErrNotFound
	}

	sfs.mCounter.WithLabelValues("files_deleted_total").Inc()

	return nil
}
