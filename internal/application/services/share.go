package services

import (
	"context"
	"errors"
	"fmt"
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

// maxCodeAttempts bounds the regenerate-on-collision loop for new codes.
const maxCodeAttempts = 5

type ShareService struct {
	cfg       config.Share
	shareRepo domain.Repository
	fileRepo  share_file.Repository
	blobs     ports.BlobStore
	codes     *CodeGenerator
	reaper    ports.Reaper
	mq        ports.RabbitMQ
	mCounter  *prometheus.CounterVec
	logger    *zap.Logger
}

func NewShareService(
	cfg config.Share,
	shareRepo domain.Repository,
	fileRepo share_file.Repository,
	blobs ports.BlobStore,
	codes *CodeGenerator,
	reaper ports.Reaper,
	rbMQ ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.ShareService {
	return &ShareService{
		cfg:       cfg,
		shareRepo: shareRepo,
		fileRepo:  fileRepo,
		blobs:     blobs,
		codes:     codes,
		reaper:    reaper,
		mq:        rbMQ,
		mCounter:  mCounter,
		logger:    logger,
	}
}

// CreateShare allocates a fresh code and persists the payload. A file
// that fails validation aborts the whole batch; files accepted before it
// stay committed, there is no wrapping transaction.
func (s *ShareService) CreateShare(ctx context.Context, text string, files []ports.RawFile, password string) (*ports.CreateResult, error) {
	if text == "" && len(files) == 0 {
		return nil, domain.NewEmptyPayload()
	}

	var sh *domain.Share
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.codes.NewCode()
		if err != nil {
			return nil, fmt.Errorf("code generation failed: %w", err)
		}

		expiresAt := time.Now().Add(s.cfg.TTL)
		req := domain.Share{
			Code:      code,
			TextData:  optional(text),
			Password:  optional(password),
			ExpiresAt: &expiresAt,
		}

		sh, err = s.shareRepo.CreateShare(ctx, req)
		if errors.Is(err, domain.ErrCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}
	if sh == nil {
		return nil, fmt.Errorf("could not allocate a unique access code after %d attempts", maxCodeAttempts)
	}

	count := 0
	for _, rf := range files {
		if err := validateRawFile(s.cfg, rf); err != nil {
			return nil, err
		}
		if _, err := persistRawFile(ctx, s.codes, s.blobs, s.fileRepo, sh.UUID, rf); err != nil {
			return nil, err
		}
		count++
	}

	s.mq.GetInputChan() <- mq.Event{
		Id:     uuid.New(),
		TS:     time.Now(),
		Action: mq.ActionShareCreated,
		Code:   sh.Code,
		Payload: mq.Payload{
			FilesCount:  count,
			HasTextData: text != "",
		},
	}

	s.mCounter.WithLabelValues("shares_created_total").Inc()

	return &ports.CreateResult{
		Code:        sh.Code,
		FilesCount:  count,
		HasTextData: text != "",
	}, nil
}

// GetShare is the public lookup path: only password-less shares are
// visible through it. Discovering an expired share triggers a full
// expiry pass before NotFound is reported, so the code frees up promptly.
func (s *ShareService) GetShare(ctx context.Context, code string) (*ports.ShareView, error) {
	sh, err := s.shareRepo.FetchPublicByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, domain.ErrNotFound
	}
	if sh.Expired(time.Now()) {
		s.reapExpired(ctx)
		return nil, domain.ErrNotFound
	}

	files, err := s.fileRepo.FetchByShare(ctx, sh.UUID)
	if err != nil {
		return nil, err
	}
	if (sh.TextData == nil || *sh.TextData == "") && len(files) == 0 {
		return nil, domain.ErrNotFound
	}

	return &ports.ShareView{Share: sh, Files: files}, nil
}

// AppendOrAccess gates on the share password, merges new text under the
// separator marker and persists any valid new files, skipping invalid
// ones rather than failing the request.
func (s *ShareService) AppendOrAccess(ctx context.Context, code, text string, files []ports.RawFile, password string) (*ports.ShareView, error) {
	sh, err := s.shareRepo.FetchByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, domain.ErrNotFound
	}
	if sh.Expired(time.Now()) {
		s.reapExpired(ctx)
		return nil, domain.ErrNotFound
	}

	if !sh.Authorize(password) {
		return nil, domain.ErrUnauthorized
	}

	if text != "" {
		merged := sh.AppendText(text)
		sh, err = s.shareRepo.UpdateText(ctx, sh.UUID, merged)
		if err != nil {
			return nil, err
		}
		if sh == nil {
			// reaped between lookup and update; never resurrect
			return nil, domain.ErrNotFound
		}
	}

	added := 0
	for _, rf := range files {
		if verr := validateRawFile(s.cfg, rf); verr != nil {
			s.logger.Info("skipping invalid file on append",
				zap.String("code", sh.Code),
				zap.String("file_name", rf.FileName),
				zap.String("reason", verr.Error()),
			)
			continue
		}
		if _, err = persistRawFile(ctx, s.codes, s.blobs, s.fileRepo, sh.UUID, rf); err != nil {
			return nil, err
		}
		added++
	}

	allFiles, err := s.fileRepo.FetchByShare(ctx, sh.UUID)
	if err != nil {
		return nil, err
	}

	if text != "" || added > 0 {
		s.mq.GetInputChan() <- mq.Event{
			Id:     uuid.New(),
			TS:     time.Now(),
			Action: mq.ActionShareAppended,
			Code:   sh.Code,
			Payload: mq.Payload{
				FilesCount:  added,
				HasTextData: text != "",
			},
		}
		s.mCounter.WithLabelValues("shares_appended_total").Inc()
	}

	return &ports.ShareView{Share: sh, Files: allFiles}, nil
}

func (s *ShareService) reapExpired(ctx context.Context) {
	if _, err := s.reaper.Reap(ctx); err != nil {
		s.logger.Error("reactive expiry pass failed", zap.Error(err))
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
