package storage

import (
	"context"
	"fmt"
	"medimarket-service/internal/app/config"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// NewMinio connects to the content store and makes sure the content bucket
// exists, since documents are written there by content hash.
func NewMinio(driverConfig *config.DriverConfig, logger *logrus.Logger) *minio.Client {
	endPoint := fmt.Sprintf("%s:%s", driverConfig.Minio.Host, driverConfig.Minio.Port)
	minioClient, err := minio.New(endPoint, &minio.Options{
		Creds:  credentials.NewStaticV4(driverConfig.Minio.Username, driverConfig.Minio.Password, ""),
		Secure: driverConfig.Minio.UseSSL,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize Minio Client: %s", err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bucketName := driverConfig.Minio.BucketName
	exists, err := minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		logger.Fatalf("Failed to check Minio bucket %s: %s", bucketName, err.Error())
	}
	if !exists {
		err = minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			logger.Fatalf("Failed to create Minio bucket %s: %s", bucketName, err.Error())
		}
		logger.Printf("Created Minio bucket %s", bucketName)
	}

	logger.Println("Successfully connected to minio")
	return minioClient
}
