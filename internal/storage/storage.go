// Package storage uploads processed listing photos to an S3-compatible
// object store and hands back their public URLs.
package storage

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"primaland/server/config"
)

// Uploader is the object-store operation the upload handler depends on.
type Uploader interface {
	Upload(data []byte, fileName, contentType string) (string, error)
}

// ObjectStore is an S3-compatible bucket client.
type ObjectStore struct {
	client   *s3.S3
	bucket   string
	folder   string
	endpoint string
}

// NewObjectStore builds a client from the storage configuration.
func NewObjectStore(cfg *config.Config) (*ObjectStore, error) {
	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Storage.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Storage.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Storage.Endpoint)
	}
	if cfg.Storage.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			cfg.Storage.AccessKey, cfg.Storage.SecretKey, "",
		)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}

	return &ObjectStore{
		client:   s3.New(sess),
		bucket:   cfg.Storage.Bucket,
		folder:   strings.Trim(cfg.Storage.Folder, "/"),
		endpoint: strings.TrimSuffix(cfg.Storage.Endpoint, "/"),
	}, nil
}

// Upload stores the file under a collision-free key derived from fileName
// and returns its public URL.
func (s *ObjectStore) Upload(data []byte, fileName, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s-%s", s.folder, uuid.NewString(), fileName)

	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", fileName, err)
	}

	return s.publicURL(key), nil
}

func (s *ObjectStore) publicURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
