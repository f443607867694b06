package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"go-ems/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeWriter struct {
	bytes.Buffer
	writeErr error
	closeErr error
	closed   bool
}

func (f *fakeWriter) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.Buffer.Write(p)
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return f.closeErr
}

func newTestStore(w *fakeWriter, keys *[]string) *gcsStore {
	return &gcsStore{
		bucket:        "ems-bucket",
		publicBaseURL: "https://storage.googleapis.com",
		newWriter: func(_ context.Context, key string) io.WriteCloser {
			*keys = append(*keys, key)
			return w
		},
		newID:  func() string { return "fixed-id" },
		logger: zap.NewNop(),
	}
}

func TestGCSStore_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var keys []string
		w := &fakeWriter{}
		s := newTestStore(w, &keys)

		artifact, err := s.Upload(ctx, []byte("png-bytes"), "my photo.png", FolderEmployeeImages)

		assert.NoError(t, err)
		assert.Equal(t, []string{"employee_management/fixed-id-my_photo.png"}, keys)
		assert.Equal(t, "https://storage.googleapis.com/ems-bucket/employee_management/fixed-id-my_photo.png", artifact.URL)
		assert.Equal(t, "png-bytes", w.String())
		assert.True(t, w.closed)
	})

	t.Run("path components are stripped", func(t *testing.T) {
		var keys []string
		s := newTestStore(&fakeWriter{}, &keys)

		_, err := s.Upload(ctx, []byte("x"), "..\\..\\etc/passwd", FolderExports)

		assert.NoError(t, err)
		assert.Equal(t, []string{"emp/fixed-id-passwd"}, keys)
	})

	t.Run("empty data", func(t *testing.T) {
		var keys []string
		s := newTestStore(&fakeWriter{}, &keys)

		_, err := s.Upload(ctx, nil, "a.png", FolderEmployeeImages)

		assert.True(t, apperror.Is(err, apperror.CodeInvalidInput))
		assert.Empty(t, keys)
	})

	t.Run("close failure is a dependency error", func(t *testing.T) {
		var keys []string
		s := newTestStore(&fakeWriter{closeErr: errors.New("403 forbidden")}, &keys)

		_, err := s.Upload(ctx, []byte("x"), "a.png", FolderEmployeeImages)

		assert.True(t, apperror.Is(err, apperror.CodeDependencyFailed))
	})
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", contentType("r.PDF", []byte("%PDF-1.4")))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType("r.xlsx", []byte("PK")))
	assert.Equal(t, "image/png", contentType("a", []byte("\x89PNG\r\n\x1a\n")))
}
