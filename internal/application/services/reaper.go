package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"quickdrop-api/config"
	"quickdrop-api/internal/application/ports"
	domain "quickdrop-api/internal/domain/share"
	"quickdrop-api/internal/domain/share_file"
	"quickdrop-api/internal/infrastructure/mq"
)

// Reaper purges shares whose expiry is in the past: blobs first
// (best-effort), then file rows, then the share row. Counting only
// shares whose row delete actually removed a row keeps overlapping
// passes idempotent.
type Reaper struct {
	cfg       config.Share
	shareRepo domain.Repository
	fileRepo  share_file.Repository
	blobs     ports.BlobStore
	mq        ports.RabbitMQ
	mCounter  *prometheus.CounterVec
	logger    *zap.Logger
}

func NewReaper(
	cfg config.Share,
	shareRepo domain.Repository,
	fileRepo share_file.Repository,
	blobs ports.BlobStore,
	rbMQ ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) *Reaper {
	return &Reaper{
		cfg:       cfg,
		shareRepo: shareRepo,
		fileRepo:  fileRepo,
		blobs:     blobs,
		mq:        rbMQ,
		mCounter:  mCounter,
		logger:    logger,
	}
}

func (r *Reaper) Reap(ctx context.Context) (int, error) {
	expired, err := r.shareRepo.FetchExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	reaped := 0
	for _, sh := range expired {
		files, err := r.fileRepo.FetchByShare(ctx, sh.UUID)
		if err != nil {
			return reaped, err
		}

		for _, f := range files {
			if derr := r.blobs.Delete(ctx, f.StorageKey); derr != nil {
				// a blob already gone is fine; anything else is logged and skipped
				r.logger.Warn("failed to delete blob",
					zap.String("storage_key", f.StorageKey),
					zap.Error(derr),
				)
			}
		}

		if err = r.fileRepo.DeleteByShare(ctx, sh.UUID); err != nil {
			return reaped, err
		}
		deleted, err := r.shareRepo.DeleteShare(ctx, sh.UUID)
		if err != nil {
			return reaped, err
		}
		if deleted {
			reaped++
		}
	}

	if reaped > 0 {
		r.mq.GetInputChan() <- mq.Event{
			Id:      uuid.New(),
			TS:      time.Now(),
			Action:  mq.ActionShareReaped,
			Payload: mq.Payload{ReapedCount: reaped},
		}
		r.mCounter.WithLabelValues("shares_reaped_total").Add(float64(reaped))
	}

	return reaped, nil
}

// Worker runs scheduled expiry passes until the context is cancelled.
func (r *Reaper) Worker(ctx context.Context) {
	r.logger.Info("starting reaper worker", zap.Duration("interval", r.cfg.ReapInterval))

	defer func() {
		r.logger.Info("reaper worker gracefully stopped")
	}()

	t := time.NewTicker(r.cfg.ReapInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			n, err := r.Reap(ctx)
			if err != nil {
				r.logger.Error("expiry pass failed", zap.Error(err))
				continue
			}
			if n > 0 {
				r.logger.Info("expiry pass completed", zap.Int("deleted_shares", n))
			}
		case <-ctx.Done():
			return
		}
	}
}
