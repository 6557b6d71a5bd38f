package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-service/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver writes each sync result to object storage as a JSON report, one
// object per run. Archiving is best effort: a storage hiccup must never fail
// a sync that already committed.
type Archiver struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewArchiver creates a report archiver.
func NewArchiver(client storage.Client, bucket string, logger *zap.Logger) *Archiver {
	return &Archiver{client: client, bucket: bucket, logger: logger}
}

// Archive uploads the result. Failures are logged and swallowed.
func (a *Archiver) Archive(ctx context.Context, res *Result) {
	name := fmt.Sprintf("reports/sync-%s-%s.json",
		time.Now().UTC().Format("20060102T150405Z"), uuid.NewString())

	if err := a.put(ctx, name, res); err != nil {
		a.logger.Warn("failed to archive sync report", zap.String("object", name), zap.Error(err))
		return
	}
	a.logger.Info("sync report archived", zap.String("object", name))
}

func (a *Archiver) put(ctx context.Context, name string, res *Result) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return err
	}

	_, err = a.client.PutObject(ctx, a.bucket, name,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}
