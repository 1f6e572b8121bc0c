package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var MinioClient *minio.Client

const imageBucket = "exambank-images"

func InitMinio() {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000" // Default fallback
	}

	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	if accessKey == "" {
		accessKey = "minioadmin" // Default fallback
	}

	secretKey := os.Getenv("MINIO_SECRET_KEY")
	if secretKey == "" {
		secretKey = "minioadmin" // Default fallback
	}

	useSSL := false // Set to true if using HTTPS

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})

	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	// Create a context with timeout for operations
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Create the image bucket if it doesn't exist
	exists, err := client.BucketExists(ctx, imageBucket)
	if err != nil {
		log.Printf("Warning: Failed to check bucket existence: %v", err)
	} else if !exists {
		err = client.MakeBucket(ctx, imageBucket, minio.MakeBucketOptions{})
		if err != nil {
			log.Printf("Warning: Failed to create bucket: %v", err)
		} else {
			log.Printf("Created bucket: %s", imageBucket)
		}
	}

	MinioClient = client
	fmt.Println("✅ Connected to MinIO")
}

// UploadImage stores an already-processed JPEG under the given object name
// and returns the URL to reference from documents.
func UploadImage(objectName string, data []byte) (string, error) {
	_, err := MinioClient.PutObject(
		context.Background(),
		imageBucket,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/jpeg"},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return fmt.Sprintf("http://%s/%s/%s", os.Getenv("MINIO_ENDPOINT"), imageBucket, objectName), nil
}
