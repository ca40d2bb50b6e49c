package blob

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// S3 is a Store backed by any S3-compatible object store. Objects are
// keyed "<thing-id>/<name>" inside one bucket.
type S3 struct {
	client  *minio.Client
	bucket  string
	maxSize int64
}

// S3Option configures an S3 store.
type S3Option func(*S3)

// WithS3MaxSize overrides the per-blob size limit.
func WithS3MaxSize(n int64) S3Option {
	return func(s *S3) {
		s.maxSize = n
	}
}

// NewS3 creates a Store over an existing minio client and bucket. The
// bucket is created if it does not exist.
func NewS3(ctx context.Context, client *minio.Client, bucket string, opts ...S3Option) (*S3, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("blob: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("blob: create bucket: %w", err)
		}
	}
	s := &S3{client: client, bucket: bucket, maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func objectName(key Key) string {
	return key.ThingID.String() + "/" + key.Name
}

// Put implements Store.
func (s *S3) Put(ctx context.Context, key Key, contentType string, r io.Reader) (*Info, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	// Buffer to hash and size-check before upload
	data, err := readLimited(r, s.maxSize)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	info := Info{
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		SHA256:      hex.EncodeToString(sum[:]),
		CreatedAt:   time.Now().UTC(),
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectName(key), bytes.NewReader(data), info.Size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"sha256": info.SHA256,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("blob: put object: %w", err)
	}
	return &info, nil
}

// Get implements Store.
func (s *S3) Get(ctx context.Context, key Key) (io.ReadCloser, *Info, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("blob: get object: %w", err)
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, nil, fmt.Errorf("%w: %s/%s", ErrNotFound, key.ThingID, key.Name)
		}
		return nil, nil, fmt.Errorf("blob: stat object: %w", err)
	}
	info := &Info{
		Key:         key,
		ContentType: stat.ContentType,
		Size:        stat.Size,
		SHA256:      stat.UserMetadata["Sha256"],
		CreatedAt:   stat.LastModified,
	}
	return obj, info, nil
}

// Delete implements Store.
func (s *S3) Delete(ctx context.Context, key Key) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectName(key), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("blob: remove object: %w", err)
	}
	return nil
}

// List implements Store.
func (s *S3) List(ctx context.Context, thingID uuid.UUID) ([]Info, error) {
	var out []Info
	prefix := thingID.String() + "/"
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("blob: list objects: %w", obj.Err)
		}
		out = append(out, Info{
			Key:       Key{ThingID: thingID, Name: obj.Key[len(prefix):]},
			Size:      obj.Size,
			CreatedAt: obj.LastModified,
		})
	}
	return out, nil
}
