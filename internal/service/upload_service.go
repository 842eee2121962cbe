package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"

	"goldconnect/api/internal/config"
	"goldconnect/api/internal/ids"
	"goldconnect/api/internal/models"
	"goldconnect/api/internal/storage"
)

// UploadService puts media payloads into the object store and hands
// back a stable public URL. Uploaded media is never deleted; there is
// no cleanup path.
type UploadService struct {
	store *storage.ObjectStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewUploadService(store *storage.ObjectStore, cfg *config.AppConfig, log zerolog.Logger) *UploadService {
	return &UploadService{
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

// Upload stores the payload and returns its retrieval URL. Audio goes
// to the videos bucket: the storage layer has no audio category, so
// audio rides the video one. Deliberate mapping, not a defect.
func (s *UploadService) Upload(ctx context.Context, kind models.MessageKind, ext, contentType string, data []byte) (string, error) {
	bucket := s.bucketFor(kind)
	objectKey := buildObjectKey(ext)

	reader := bytes.NewReader(data)
	options := minio.PutObjectOptions{
		ContentType: contentType,
	}

	if _, err := s.store.Client().PutObject(ctx, bucket, objectKey, reader, int64(len(data)), options); err != nil {
		return "", fmt.Errorf("%w: put object: %v", ErrUpload, err)
	}

	s.log.Debug().Str("bucket", bucket).Str("key", objectKey).Int("size", len(data)).Msg("media uploaded")

	return s.buildPublicURL(bucket, objectKey), nil
}

func (s *UploadService) bucketFor(kind models.MessageKind) string {
	if kind == models.MessageKindImage {
		return s.cfg.Storage.BucketImages
	}
	return s.cfg.Storage.BucketVideos
}

func buildObjectKey(ext string) string {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	return path.Join(datePrefix, fmt.Sprintf("%s.%s", ids.New(), ext))
}

func (s *UploadService) buildPublicURL(bucket, objectKey string) string {
	base := strings.TrimSuffix(s.cfg.Storage.Endpoint, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/%s/%s", base, bucket, objectKey)
}
