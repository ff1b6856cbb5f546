package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// s3API is the subset of the MinIO client used by the s3 provider.
type s3API interface {
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type s3Client struct {
	api    s3API
	region string
	retry  RetryConfig
}

func newS3Client(cfg Config) (*s3Client, error) {
	// Minio expects endpoint without scheme
	secure := cfg.UseSSL || strings.HasPrefix(cfg.Endpoint, "https://")
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimSuffix(endpoint, "/")

	creds := credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	if cfg.Anonymous {
		// Empty static credentials make the client skip request signing.
		creds = credentials.NewStaticV4("", "", "")
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:     creds,
		Secure:    secure,
		Region:    cfg.Region,
		Transport: newTransport(cfg.timeout()),
		// Retries are driven by RetryConfig instead of the client's default of 10.
		MaxRetries: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return newS3ClientWithAPI(&minioClientWrapper{Client: minioClient}, cfg.Region, cfg.Retry), nil
}

func newS3ClientWithAPI(api s3API, region string, retry RetryConfig) *s3Client {
	return &s3Client{api: api, region: region, retry: retry}
}

type minioClientWrapper struct {
	*minio.Client
}

func (c *minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := c.Client.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	// GetObject is lazy; Stat surfaces a missing object before the first read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, err
	}
	return obj, nil
}

func (c *s3Client) CreateBucket(ctx context.Context, bucket string, attrs BucketAttrs) (*BucketAttrs, error) {
	region := attrs.Location
	if region == "" {
		region = c.region
	}
	err := retryS3(ctx, c.retry, true, func() error {
		return c.api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region})
	})
	if err != nil {
		return nil, mapS3Err(err)
	}
	return &BucketAttrs{Name: bucket, Location: region, StorageClass: attrs.StorageClass}, nil
}

func (c *s3Client) NewWriter(ctx context.Context, bucket, key string) Writer {
	return &s3Writer{ctx: ctx, client: c, bucket: bucket, key: key}
}

func (c *s3Client) NewReader(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	r, err := c.api.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapS3Err(err)
	}
	return r, nil
}

func (c *s3Client) ListObjects(ctx context.Context, bucket string, opts ListOptions) iter.Seq2[*ObjectAttrs, error] {
	return func(yield func(*ObjectAttrs, error) bool) {
		// Cancelling unblocks the listing goroutine when the consumer stops early.
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		var n int
		for info := range c.api.ListObjects(ctx, bucket, minio.ListObjectsOptions{
			Prefix:    opts.Prefix,
			Recursive: true,
		}) {
			if opts.MaxResults > 0 && n >= opts.MaxResults {
				return
			}
			n++
			if info.Err != nil {
				yield(nil, mapS3Err(info.Err))
				return
			}
			if !yield(mapS3ObjectInfo(bucket, info), nil) {
				return
			}
		}
	}
}

func (c *s3Client) DeleteObject(ctx context.Context, bucket, key string) error {
	err := retryS3(ctx, c.retry, false, func() error {
		return c.api.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
	})
	return mapS3Err(err)
}

func (c *s3Client) Close() error {
	return nil
}

// s3Writer buffers the payload and uploads it on Close so that a retried
// attempt can replay the full body.
type s3Writer struct {
	ctx    context.Context
	client *s3Client
	bucket string
	key    string
	buf    bytes.Buffer
	attrs  *ObjectAttrs
	done   bool
}

func (w *s3Writer) Write(p []byte) (int, error) {
	if w.done {
		return 0, errors.New("write to finalized writer")
	}
	return w.buf.Write(p)
}

func (w *s3Writer) Close() error {
	if w.done {
		return errors.New("writer already finalized")
	}
	w.done = true

	body := w.buf.Bytes()
	var info minio.UploadInfo
	err := retryS3(w.ctx, w.client.retry, false, func() error {
		var err error
		info, err = w.client.api.PutObject(w.ctx, w.bucket, w.key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{})
		return err
	})
	if err != nil {
		return mapS3Err(err)
	}

	w.attrs = &ObjectAttrs{
		Bucket:     w.bucket,
		Name:       w.key,
		Size:       info.Size,
		Generation: info.VersionID,
		ETag:       info.ETag,
		Updated:    info.LastModified,
	}
	return nil
}

func (w *s3Writer) Abort(error) {
	w.done = true
	w.buf.Reset()
}

func (w *s3Writer) Attrs() *ObjectAttrs {
	return w.attrs
}

func mapS3ObjectInfo(bucket string, info minio.ObjectInfo) *ObjectAttrs {
	return &ObjectAttrs{
		Bucket:      bucket,
		Name:        info.Key,
		Size:        info.Size,
		ContentType: info.ContentType,
		Generation:  info.VersionID,
		ETag:        info.ETag,
		Updated:     info.LastModified,
	}
}

func mapS3Err(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "BucketAlreadyOwnedByYou", "BucketAlreadyExists":
		return ErrBucketExists
	case "NoSuchBucket":
		return fmt.Errorf("%w: %s", ErrBucketNotExist, resp.Message)
	case "NoSuchKey":
		return fmt.Errorf("%w: %s", ErrObjectNotExist, resp.Message)
	default:
		return err
	}
}
