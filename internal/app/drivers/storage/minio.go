package storage

import (
	"context"
	"fmt"
	"log"

	"claimsync-service/internal/app/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewMinio connects to the clearinghouse bucket and creates it when it does
// not exist yet.
func NewMinio(driverConfig *config.DriverConfig) *minio.Client {
	endPoint := fmt.Sprintf("%s:%s", driverConfig.Minio.Host, driverConfig.Minio.Port)
	minioClient, err := minio.New(endPoint, &minio.Options{
		Creds:  credentials.NewStaticV4(driverConfig.Minio.Username, driverConfig.Minio.Password, ""),
		Secure: driverConfig.Minio.UseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Minio Client: %s", err.Error())
	}

	ctx := context.Background()
	exists, err := minioClient.BucketExists(ctx, driverConfig.Minio.BucketName)
	if err != nil {
		log.Fatalf("Failed to check minio bucket %s: %s", driverConfig.Minio.BucketName, err.Error())
	}
	if !exists {
		err = minioClient.MakeBucket(ctx, driverConfig.Minio.BucketName, minio.MakeBucketOptions{})
		if err != nil {
			log.Fatalf("Failed to create minio bucket %s: %s", driverConfig.Minio.BucketName, err.Error())
		}
	}

	log.Println("Successfully connected to minio")
	return minioClient
}
