package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quickdrop-api/internal/application/ports"
	domain "quickdrop-api/internal/domain/share"
	"quickdrop-api/internal/domain/share_file"
)

func setupFileRouter(t *testing.T, fs ports.ShareFileService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewFileController(r, fs, zap.NewNop())
	return r
}

func someFileContent(key, name, mimeType string, data []byte) *ports.FileContent {
	return &ports.FileContent{
		File: &share_file.File{
			UUID:       uuid.New(),
			FileName:   name,
			StorageKey: key,
			FileSize:   int64(len(data)),
			MimeType:   mimeType,
			CreatedAt:  time.Now(),
		},
		Data: data,
	}
}

func TestGetFileHandlerDownloads(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	fs := &FakeShareFileService{
		FetchFileFunc: func(_ context.Context, key string) (*ports.FileContent, error) {
			assert.Equal(t, "tok0000000000000.png", key)
			return someFileContent(key, "pic.png", "image/png", payload), nil
		},
	}
	r := setupFileRouter(t, fs)

	req, err := http.NewRequest(http.MethodGet, "/api/v1/files/tok0000000000000.png", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, payload, rr.Body.Bytes())
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="pic.png"`, rr.Header().Get("Content-Disposition"))
}

func TestGetFileHandlerPDFPreviewIsInline(t *testing.T) {
	fs := &FakeShareFileService{
		FetchFileFunc: func(_ context.Context, key string) (*ports.FileContent, error) {
			return someFileContent(key, "doc.pdf", "application/pdf", []byte("%PDF-1.4")), nil
		},
	}
	r := setupFileRouter(t, fs)

	req, err := http.NewRequest(http.MethodGet, "/api/v1/files/tok0000000000000.pdf?preview=true", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `inline; filename="doc.pdf"`, rr.Header().Get("Content-Disposition"))
}

func TestGetFileHandlerPreviewIgnoredForNonPDF(t *testing.T) {
	fs := &FakeShareFileService{
		FetchFileFunc: func(_ context.Context, key string) (*ports.FileContent, error) {
			return someFileContent(key, "pic.png", "image/png", []byte{1}), nil
		},
	}
	r := setupFileRouter(t, fs)

	req, err := http.NewRequest(http.MethodGet, "/api/v1/files/tok0000000000000.png?preview=true", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `attachment; filename="pic.png"`, rr.Header().Get("Content-Disposition"))
}

func TestGetFileHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown key", domain.ErrNotFound, http.StatusNotFound},
		{"lapsed owner", domain.ErrExpired, http.StatusGone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := &FakeShareFileService{
				FetchFileFunc: func(_ context.Context, _ string) (*ports.FileContent, error) {
					return nil, tc.err
				},
			}
			r := setupFileRouter(t, fs)

			req, err := http.NewRequest(http.MethodGet, "/api/v1/files/tok0000000000000.bin", nil)
			require.NoError(t, err)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestGetFileHandlerRejectsTraversalKey(t *testing.T) {
	r := setupFileRouter(t, &FakeShareFileService{})

	req, err := http.NewRequest(http.MethodGet, "/api/v1/files/..%2Fsecret.txt", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteFileHandler(t *testing.T) {
	called := false
	fs := &FakeShareFileService{
		DeleteFileFunc: func(_ context.Context, key string) error {
			called = true
			assert.Equal(t, "tok0000000000000.txt", key)
			return nil
		},
	}
	r := setupFileRouter(t, fs)

	req, err := http.NewRequest(http.MethodDelete, "/api/v1/files/tok0000000000000.txt", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.True(t, called)
}

func TestDeleteFileHandlerUnknownKey(t *testing.T) {
	fs := &FakeShareFileService{
		DeleteFileFunc: func(_ context.Context, _ string) error {
			return domain.ErrNotFound
		},
	}
	r := setupFileRouter(t, fs)

	req, err := http.NewRequest(http.MethodDelete, "/api/v1/files/tok0000000000000.txt", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
