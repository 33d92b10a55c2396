package infra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"apnadoctor/internal/config"
)

var ErrObjectNotFound = errors.New("stored object not found")

// FileStore keeps uploaded report files. The returned path is opaque to callers.
type FileStore interface {
	Save(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

func NewFileStore(ctx context.Context, cfg config.StorageConfig) (FileStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "local":
		return NewLocalFileStore(cfg.UploadDir)
	case "s3":
		return NewS3FileStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.Driver)
	}
}

type localFileStore struct {
	dir string
}

func NewLocalFileStore(dir string) (FileStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localFileStore{dir: dir}, nil
}

func (l *localFileStore) Save(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	path := filepath.Join(l.dir, filepath.Base(key))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", err
	}
	return path, f.Close()
}

func (l *localFileStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	return f, err
}

func (l *localFileStore) Delete(_ context.Context, path string) error {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

type s3FileStore struct {
	client *s3.Client
	bucket string
}

func NewS3FileStore(ctx context.Context, cfg config.StorageConfig) (FileStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("S3_BUCKET is required for the s3 storage driver")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	opts := s3.Options{
		Region:       awsCfg.Region,
		Credentials:  awsCfg.Credentials,
		HTTPClient:   awsCfg.HTTPClient,
		BaseEndpoint: awsCfg.BaseEndpoint,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &s3FileStore{client: s3.New(opts), bucket: cfg.Bucket}, nil
}

func (s *s3FileStore) Save(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	objectKey := "reports/" + filepath.Base(key)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return objectKey, nil
}

func (s *s3FileStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("get object: %w", err)
	}
	return out.Body, nil
}

func (s *s3FileStore) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	return err
}
