package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/sunthewhat/certgen-api/common/util"
)

// MinIOMirror copies finished archives into an object storage bucket.
type MinIOMirror struct {
	client *minio.Client
	bucket string

	once      sync.Once
	bucketErr error
}

func NewMinIOMirror(client *minio.Client, bucket string) *MinIOMirror {
	return &MinIOMirror{client: client, bucket: bucket}
}

func (m *MinIOMirror) Mirror(ctx context.Context, localPath, objectName string) error {
	m.once.Do(func() {
		m.bucketErr = util.EnsureBucket(ctx, m.client, m.bucket)
	})
	if m.bucketErr != nil {
		return m.bucketErr
	}

	info, err := m.client.FPutObject(ctx, m.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: "application/zip",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to bucket %s: %w", objectName, m.bucket, err)
	}

	slog.Info("Archive mirrored to MinIO", "bucket", m.bucket, "object", objectName, "size", info.Size)
	return nil
}
