package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// Source yields a raw inventory CSV stream.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Name() string
}

// Load opens src and parses its contents.
func Load(ctx context.Context, src Source) ([]domain.InventoryItem, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", src.Name(), err)
	}
	defer rc.Close()

	items, err := ParseCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", src.Name(), err)
	}
	return items, nil
}

// FileSource reads inventory from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns a description of the source.
func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Open opens the file for reading.
func (s *FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(s.path) //nolint:gosec // path from trusted config
}

// ObjectConfig locates an inventory object in S3-compatible storage.
type ObjectConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	Key       string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// ObjectSource reads inventory from an S3-compatible object store.
type ObjectSource struct {
	client *minio.Client
	bucket string
	key    string
}

// NewObjectSource creates an ObjectSource backed by a minio client.
func NewObjectSource(cfg ObjectConfig) (*ObjectSource, error) {
	if cfg.Bucket == "" || cfg.Key == "" {
		return nil, errors.New("object source requires a bucket and a key")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating object storage client: %w", err)
	}

	return &ObjectSource{client: client, bucket: cfg.Bucket, key: cfg.Key}, nil
}

// Name returns a description of the source.
func (s *ObjectSource) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

// Open fetches the object. The stat call surfaces missing objects and
// permission errors here rather than on first read.
func (s *ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("getting object: %w", err)
	}

	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("stat object: %w", err)
	}

	return obj, nil
}
