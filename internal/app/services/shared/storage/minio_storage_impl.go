package storage

import (
	"bytes"
	"context"
	"io"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
}

func NewMinioStorage(minioClient *minio.Client) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
	}
}

func (m *minioStorage) PutObject(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error {
	_, err := m.MinioClient.PutObject(
		ctx,
		bucketName,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, bucketName)
	}
	return nil
}

// GetObject reads a whole object. minio defers the request until the first
// read, so a missing object surfaces from ReadAll.
func (m *minioStorage) GetObject(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	object, err := m.MinioClient.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, exceptions.ErrMinioGetObject(err, bucketName)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, exceptions.ErrMinioGetObject(err, bucketName)
	}
	return data, nil
}
