package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrObjectStoreDisabled = errors.New("no object store configured")

type ObjectStore interface {
	UploadFile(ctx context.Context, file io.Reader, key string, contentType string) (string, error)
}

type CloudinaryStore struct {
	store  *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(store *cloudinary.Cloudinary, folder string) *CloudinaryStore {
	return &CloudinaryStore{
		store:  store,
		folder: folder,
	}
}

func (s *CloudinaryStore) UploadFile(ctx context.Context, file io.Reader, key string, contentType string) (string, error) {
	resp, err := s.store.Upload.Upload(ctx, file, uploader.UploadParams{PublicID: key, Folder: s.folder})

	if err != nil {
		return "", fmt.Errorf("error uploading file: %w", err)
	}

	if resp.Error.Message != "" {
		return "", fmt.Errorf("error uploading file: %s", resp.Error.Message)
	}

	return resp.SecureURL, nil
}

type S3Store struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Store(client *s3.Client, bucket string, region string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		region: region,
	}
}

func (s *S3Store) UploadFile(ctx context.Context, file io.Reader, key string, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})

	if err != nil {
		return "", fmt.Errorf("error uploading object to s3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// NoopObjectStore rejects every upload; it backs deployments without image storage.
type NoopObjectStore struct{}

func (NoopObjectStore) UploadFile(ctx context.Context, file io.Reader, key string, contentType string) (string, error) {
	return "", ErrObjectStoreDisabled
}
