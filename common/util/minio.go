package util

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sunthewhat/certgen-api/common"
)

// InitMinIO connects the optional archive mirror. It is a no-op when MinIO
// is not configured.
func InitMinIO() error {
	if common.Config.MinIoEndpoint == nil || *common.Config.MinIoEndpoint == "" {
		slog.Info("MinIO not configured, archive mirror disabled")
		return nil
	}

	if common.Config.MinIoAccessKey == nil || common.Config.MinIoSecretKey == nil || common.Config.BucketArchive == nil {
		return fmt.Errorf("MinIO configuration is incomplete")
	}

	secure := true
	if common.Config.MinIoSecure != nil {
		secure = *common.Config.MinIoSecure
	}

	client, err := minio.New(*common.Config.MinIoEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(*common.Config.MinIoAccessKey, *common.Config.MinIoSecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	common.MinIOClient = client
	return nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func EnsureBucket(ctx context.Context, client *minio.Client, bucketName string) error {
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}
