package services

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"quickdrop-api/config"
	"quickdrop-api/internal/application/ports"
	domain "quickdrop-api/internal/domain/share"
	"quickdrop-api/internal/domain/share_file"
	"quickdrop-api/internal/infrastructure/mq"
)

type fakeShareRepo struct {
	mu     sync.Mutex
	shares map[string]*domain.Share // keyed by code
}

func newFakeShareRepo() *fakeShareRepo {
	return &fakeShareRepo{shares: make(map[string]*domain.Share)}
}

func (r *fakeShareRepo) CreateShare(_ context.Context, req domain.Share) (*domain.Share, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shares[req.Code]; ok {
		return nil, domain.ErrCodeTaken
	}
	s := req
	s.UUID = uuid.New()
	s.CreatedAt = time.Now()
	r.shares[s.Code] = &s
	out := s
	return &out, nil
}

func (r *fakeShareRepo) FetchByCode(_ context.Context, code string) (*domain.Share, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shares[code]
	if !ok {
		return nil, nil
	}
	out := *s
	return &out, nil
}

func (r *fakeShareRepo) FetchPublicByCode(_ context.Context, code string) (*domain.Share, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shares[code]
	if !ok || s.Password != nil {
		return nil, nil
	}
	out := *s
	return &out, nil
}

func (r *fakeShareRepo) UpdateText(_ context.Context, id domain.UUID, text string) (*domain.Share, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shares {
		if s.UUID == id {
			s.TextData = &text
			out := *s
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeShareRepo) FetchExpired(_ context.Context, now time.Time) (domain.Shares, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out domain.Shares
	for _, s := range r.shares {
		if s.ExpiresAt != nil && s.ExpiresAt.Before(now) {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeShareRepo) DeleteShare(_ context.Context, id domain.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for code, s := range r.shares {
		if s.UUID == id {
			delete(r.shares, code)
			return true, nil
		}
	}
	return false, nil
}

// expire rewinds a share's expiry so tests can exercise lapsed shares.
func (r *fakeShareRepo) expire(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.shares[code]; ok {
		past := time.Now().Add(-time.Minute)
		s.ExpiresAt = &past
	}
}

type fakeFileRepo struct {
	mu     sync.Mutex
	shares *fakeShareRepo
	files  map[string]*share_file.File // keyed by storage key
}

func newFakeFileRepo(shares *fakeShareRepo) *fakeFileRepo {
	return &fakeFileRepo{shares: shares, files: make(map[string]*share_file.File)}
}

func (r *fakeFileRepo) CreateFile(_ context.Context, shareUUID domain.UUID, req share_file.File) (*share_file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := req
	f.UUID = uuid.New()
	f.ShareUUID = shareUUID
	f.CreatedAt = time.Now()
	r.files[f.StorageKey] = &f
	out := f
	return &out, nil
}

func (r *fakeFileRepo) FetchByShare(_ context.Context, shareUUID domain.UUID) (share_file.Files, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out share_file.Files
	for _, f := range r.files {
		if f.ShareUUID == shareUUID {
			c := *f
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) FetchByStorageKey(_ context.Context, key string) (*share_file.OwnedFile, error) {
	r.mu.Lock()
	f, ok := r.files[key]
	if !ok {
		r.mu.Unlock()
		return nil, nil
	}
	of := &share_file.OwnedFile{File: *f}
	r.mu.Unlock()

	r.shares.mu.Lock()
	defer r.shares.mu.Unlock()
	for _, s := range r.shares.shares {
		if s.UUID == f.ShareUUID {
			of.ShareExpiresAt = s.ExpiresAt
		}
	}
	return of, nil
}

func (r *fakeFileRepo) DeleteByStorageKey(_ context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.files[key]; !ok {
		return false, nil
	}
	delete(r.files, key)
	return true, nil
}

func (r *fakeFileRepo) DeleteByShare(_ context.Context, shareUUID domain.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, f := range r.files {
		if f.ShareUUID == shareUUID {
			delete(r.files, key)
		}
	}
	return nil
}

type fakeBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (s *fakeBlobStore) Put(_ context.Context, key string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return int64(len(data)), nil
}

func (s *fakeBlobStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeBlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

func (s *fakeBlobStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

type fakeRabbitMQ struct {
	in chan mq.Event
}

func newFakeRabbitMQ() *fakeRabbitMQ {
	return &fakeRabbitMQ{in: make(chan mq.Event, 64)}
}

func (f *fakeRabbitMQ) Connect(_ context.Context, _ string) error { return nil }
func (f *fakeRabbitMQ) Init() error                               { return nil }
func (f *fakeRabbitMQ) PublisherWorker(_ context.Context)         {}
func (f *fakeRabbitMQ) GetInputChan() chan mq.Event               { return f.in }
func (f *fakeRabbitMQ) GetConn() *amqp091.Connection              { return nil }

func testShareCfg() config.Share {
	return config.Share{
		CodeLength:   8,
		TokenLength:  16,
		MaxFileBytes: 1 << 20,
		TTL:          time.Hour,
		ReapInterval: time.Minute,
		AllowedMimes: config.DefaultAllowedMimes(),
		MimePrefixOK: "text/",
	}
}

// stack bundles the services over shared in-memory fakes.
type stack struct {
	cfg       config.Share
	shareRepo *fakeShareRepo
	fileRepo  *fakeFileRepo
	blobs     *fakeBlobStore
	rabbit    *fakeRabbitMQ
	reaper    *Reaper
	shares    ports.ShareService
	files     ports.ShareFileService
}

func newStack(cfg config.Share) *stack {
	shareRepo := newFakeShareRepo()
	fileRepo := newFakeFileRepo(shareRepo)
	blobs := newFakeBlobStore()
	rabbit := newFakeRabbitMQ()
	logger := zap.NewNop()
	codes := NewCodeGenerator(cfg)
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"})

	reaper := NewReaper(cfg, shareRepo, fileRepo, blobs, rabbit, counter, logger)

	return &stack{
		cfg:       cfg,
		shareRepo: shareRepo,
		fileRepo:  fileRepo,
		blobs:     blobs,
		rabbit:    rabbit,
		reaper:    reaper,
		shares:    NewShareService(cfg, shareRepo, fileRepo, blobs, codes, reaper, rabbit, counter, logger),
		files:     NewShareFileService(cfg, shareRepo, fileRepo, blobs, codes, reaper, counter, logger),
	}
}

func rawFile(name, mimeType string, data []byte) ports.RawFile {
	return ports.RawFile{
		FileName: name,
		MimeType: mimeType,
		Size:     int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}
