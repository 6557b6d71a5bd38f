package sync

import (
	"context"
	"errors"
	"testing"

	"catalog-service/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestArchive_UploadsReport(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "sync-reports").Return(true, nil)
	client.On("PutObject", mock.Anything, "sync-reports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	a := NewArchiver(client, "sync-reports", zap.NewNop())

	res := NewResult()
	res.Imported = 2
	a.Archive(context.Background(), res)

	client.AssertCalled(t, "PutObject", mock.Anything, "sync-reports", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestArchive_CreatesMissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "sync-reports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "sync-reports", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "sync-reports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	a := NewArchiver(client, "sync-reports", zap.NewNop())
	a.Archive(context.Background(), NewResult())

	client.AssertCalled(t, "MakeBucket", mock.Anything, "sync-reports", mock.Anything)
}

func TestArchive_SwallowsStorageErrors(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "sync-reports").Return(false, errors.New("endpoint down"))

	a := NewArchiver(client, "sync-reports", zap.NewNop())
	// Must not panic or propagate.
	a.Archive(context.Background(), NewResult())

	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
