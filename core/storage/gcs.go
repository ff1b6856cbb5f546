package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const gcsAPIPath = "/storage/v1/"

type gcsClient struct {
	client    *storage.Client
	projectID string
}

func newGCSClient(ctx context.Context, cfg Config) (*gcsClient, error) {
	endpoint, err := gcsEndpoint(cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if cfg.Anonymous {
		// A custom HTTP client bypasses credentials, so it is only safe without them.
		opts = append(opts, option.WithoutAuthentication(),
			option.WithHTTPClient(&http.Client{Transport: newTransport(cfg.timeout())}))
	}
	if endpoint != "" {
		// Emulators only serve reads through the JSON API.
		opts = append(opts, option.WithEndpoint(endpoint), storage.WithJSONReads())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}
	client.SetRetry(gcsRetryOptions(cfg.Retry)...)

	return &gcsClient{client: client, projectID: cfg.ProjectID}, nil
}

func gcsRetryOptions(r RetryConfig) []storage.RetryOption {
	policy := storage.RetryAlways
	switch r.Policy {
	case RetryIdempotent:
		policy = storage.RetryIdempotent
	case RetryNever:
		policy = storage.RetryNever
	}
	return []storage.RetryOption{
		storage.WithPolicy(policy),
		storage.WithMaxAttempts(r.MaxAttempts()),
		storage.WithBackoff(gax.Backoff{
			Initial:    r.initialBackoff(),
			Max:        r.maxBackoff(),
			Multiplier: 2,
		}),
	}
}

// gcsEndpoint turns "host:port" or a base URL into the JSON API endpoint the
// client expects. An empty endpoint selects the production service.
func gcsEndpoint(endpoint string, useSSL bool) (string, error) {
	if endpoint == "" {
		return "", nil
	}
	if !strings.Contains(endpoint, "://") {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		endpoint = scheme + "://" + endpoint
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid storage endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid storage endpoint %q: missing host", endpoint)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = gcsAPIPath
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String(), nil
}

func (c *gcsClient) CreateBucket(ctx context.Context, bucket string, attrs BucketAttrs) (*BucketAttrs, error) {
	handle := c.client.Bucket(bucket)
	err := handle.Create(ctx, c.projectID, &storage.BucketAttrs{
		Location:     attrs.Location,
		StorageClass: attrs.StorageClass,
	})
	if err != nil {
		if isGCSConflict(err) {
			return nil, ErrBucketExists
		}
		return nil, mapGCSErr(err)
	}

	created, err := handle.Attrs(ctx)
	if err != nil {
		return nil, mapGCSErr(err)
	}
	return &BucketAttrs{
		Name:         created.Name,
		Location:     created.Location,
		StorageClass: created.StorageClass,
		Created:      created.Created,
	}, nil
}

func (c *gcsClient) NewWriter(ctx context.Context, bucket, key string) Writer {
	ctx, cancel := context.WithCancelCause(ctx)
	w := c.client.Bucket(bucket).Object(key).NewWriter(ctx)
	return &gcsWriter{w: w, cancel: cancel}
}

func (c *gcsClient) NewReader(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	r, err := c.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, mapGCSErr(err)
	}
	return r, nil
}

func (c *gcsClient) ListObjects(ctx context.Context, bucket string, opts ListOptions) iter.Seq2[*ObjectAttrs, error] {
	return func(yield func(*ObjectAttrs, error) bool) {
		it := c.client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: opts.Prefix})
		var n int
		for {
			if opts.MaxResults > 0 && n >= opts.MaxResults {
				return
			}
			attrs, err := it.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			n++
			if err != nil {
				// The iterator keeps returning the same error; stop after reporting it.
				yield(nil, mapGCSListErr(err))
				return
			}
			if !yield(mapGCSObjectAttrs(attrs), nil) {
				return
			}
		}
	}
}

func (c *gcsClient) DeleteObject(ctx context.Context, bucket, key string) error {
	return mapGCSErr(c.client.Bucket(bucket).Object(key).Delete(ctx))
}

func (c *gcsClient) Close() error {
	return c.client.Close()
}

type gcsWriter struct {
	w      *storage.Writer
	cancel context.CancelCauseFunc
	attrs  *ObjectAttrs
	done   bool
}

func (w *gcsWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	return n, mapGCSErr(err)
}

func (w *gcsWriter) Close() error {
	if w.done {
		return errors.New("writer already finalized")
	}
	w.done = true
	if err := w.w.Close(); err != nil {
		w.cancel(err)
		return mapGCSErr(err)
	}
	w.attrs = mapGCSObjectAttrs(w.w.Attrs())
	w.cancel(nil)
	return nil
}

func (w *gcsWriter) Abort(cause error) {
	if w.done {
		return
	}
	w.done = true
	if cause == nil {
		cause = context.Canceled
	}
	w.cancel(cause)
	// Reap the upload goroutine; the canceled context prevents a commit.
	_ = w.w.Close()
}

func (w *gcsWriter) Attrs() *ObjectAttrs {
	return w.attrs
}

func mapGCSObjectAttrs(attrs *storage.ObjectAttrs) *ObjectAttrs {
	if attrs == nil {
		return nil
	}
	return &ObjectAttrs{
		Bucket:      attrs.Bucket,
		Name:        attrs.Name,
		Size:        attrs.Size,
		ContentType: attrs.ContentType,
		Generation:  strconv.FormatInt(attrs.Generation, 10),
		ETag:        attrs.Etag,
		MD5:         attrs.MD5,
		Created:     attrs.Created,
		Updated:     attrs.Updated,
	}
}

func isGCSConflict(err error) bool {
	var e *googleapi.Error
	if errors.As(err, &e) && e.Code == http.StatusConflict {
		return true
	}
	if s, ok := status.FromError(err); ok && s.Code() == codes.AlreadyExists {
		return true
	}
	return false
}

func mapGCSErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrObjectNotExist):
		return ErrObjectNotExist
	case errors.Is(err, storage.ErrBucketNotExist):
		return ErrBucketNotExist
	default:
		return err
	}
}

func mapGCSListErr(err error) error {
	var e *googleapi.Error
	if errors.As(err, &e) && e.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrBucketNotExist, err)
	}
	return mapGCSErr(err)
}
