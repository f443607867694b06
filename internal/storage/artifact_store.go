package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"go-ems/internal/config"
	"go-ems/internal/shared/apperror"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	FolderEmployeeImages = "employee_management"
	FolderExports        = "emp"
)

type Artifact struct {
	URL       string `json:"url"`
	ObjectKey string `json:"objectKey"`
}

//go:generate mockgen -source=artifact_store.go -destination=mock/artifact_store_mock.go -package=mock
type ArtifactStore interface {
	Upload(ctx context.Context, data []byte, originalName, folder string) (Artifact, error)
}

type gcsStore struct {
	bucket        string
	publicBaseURL string
	newWriter     func(ctx context.Context, objectKey string) io.WriteCloser
	newID         func() string
	logger        *zap.Logger
}

// NewGCSStore opens a storage client with explicit credentials when given,
// otherwise with application default credentials.
func NewGCSStore(ctx context.Context, cfg config.Storage, logger ...*zap.Logger) (ArtifactStore, func() error, error) {
	l := zap.L().Named("storage.gcs")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.gcs")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, nil, fmt.Errorf("GCS_BUCKET is required")
	}

	var opts []option.ClientOption
	if creds := strings.TrimSpace(cfg.CredentialsJSON); creds != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("gcs client: %w", err)
	}

	bucket := client.Bucket(cfg.Bucket)
	store := &gcsStore{
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		newWriter: func(ctx context.Context, objectKey string) io.WriteCloser {
			return bucket.Object(objectKey).NewWriter(ctx)
		},
		newID:  uuid.NewString,
		logger: l,
	}
	return store, client.Close, nil
}

func (s *gcsStore) Upload(ctx context.Context, data []byte, originalName, folder string) (Artifact, error) {
	if len(data) == 0 {
		return Artifact{}, apperror.Validation("File is empty")
	}

	key := s.objectKey(originalName, folder)
	w := s.newWriter(ctx, key)
	if gw, ok := w.(*gcs.Writer); ok {
		gw.ContentType = contentType(originalName, data)
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		s.logger.Error("upload artifact failed", zap.String("object", key), zap.Error(err))
		return Artifact{}, apperror.Dependency(err, "Failed to upload file")
	}
	if err := w.Close(); err != nil {
		s.logger.Error("finalize artifact failed", zap.String("object", key), zap.Error(err))
		return Artifact{}, apperror.Dependency(err, "Failed to upload file")
	}

	s.logger.Info("artifact uploaded", zap.String("object", key), zap.Int("bytes", len(data)))
	return Artifact{
		URL:       fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key),
		ObjectKey: key,
	}, nil
}

func (s *gcsStore) objectKey(originalName, folder string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(originalName), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	name = strings.ReplaceAll(name, " ", "_")
	return path.Join(folder, s.newID()+"-"+name)
}

func contentType(name string, data []byte) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".pdf":
		return "application/pdf"
	}
	return http.DetectContentType(data)
}
