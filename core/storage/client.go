package storage

import (
	"context"
	"fmt"
	"io"
	"iter"
	"time"
)

// Client defines the interface for storage operations.
type Client interface {
	// CreateBucket creates a new bucket. An existing bucket yields ErrBucketExists.
	CreateBucket(ctx context.Context, bucket string, attrs BucketAttrs) (*BucketAttrs, error)
	// NewWriter opens a writer for an object. Nothing is committed until Close.
	NewWriter(ctx context.Context, bucket, key string) Writer
	// NewReader downloads an object.
	NewReader(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	// ListObjects lazily enumerates objects in a bucket. Every call starts a
	// fresh enumeration; an entry carrying an error has a nil value.
	ListObjects(ctx context.Context, bucket string, opts ListOptions) iter.Seq2[*ObjectAttrs, error]
	// DeleteObject removes an object from a bucket.
	DeleteObject(ctx context.Context, bucket, key string) error
	// Close releases the underlying connections.
	Close() error
}

// Writer is an in-progress object write bound to a single bucket and key.
type Writer interface {
	io.Writer
	// Close commits the object. After a nil return Attrs is populated.
	Close() error
	// Abort discards the pending object without committing it.
	Abort(cause error)
	// Attrs returns the committed object metadata, or nil if the writer has
	// not been closed successfully.
	Attrs() *ObjectAttrs
}

// BucketAttrs describes a bucket.
type BucketAttrs struct {
	Name         string    `json:"name"`
	Location     string    `json:"location,omitempty"`
	StorageClass string    `json:"storage_class,omitempty"`
	Created      time.Time `json:"created,omitempty"`
}

// ObjectAttrs describes a committed object.
type ObjectAttrs struct {
	Bucket      string    `json:"bucket"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type,omitempty"`
	Generation  string    `json:"generation,omitempty"`
	ETag        string    `json:"etag,omitempty"`
	MD5         []byte    `json:"md5,omitempty"`
	Created     time.Time `json:"created,omitempty"`
	Updated     time.Time `json:"updated,omitempty"`
}

// ListOptions narrows a listing.
type ListOptions struct {
	// Prefix filters results to keys starting with this value.
	Prefix string
	// MaxResults stops the enumeration after this many entries. Zero means no limit.
	MaxResults int
}

// NewClient creates a storage client for the configured provider.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	switch cfg.Provider {
	case ProviderGCS, "":
		return newGCSClient(ctx, cfg)
	case ProviderS3:
		return newS3Client(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// WriteObject streams r into bucket/key and commits it. The writer is always
// released: it is closed on success and aborted if copying fails.
func WriteObject(ctx context.Context, client Client, bucket, key string, r io.Reader) (*ObjectAttrs, error) {
	w := client.NewWriter(ctx, bucket, key)
	if _, err := io.Copy(w, r); err != nil {
		w.Abort(err)
		return nil, fmt.Errorf("failed to write object %s/%s: %w", bucket, key, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to commit object %s/%s: %w", bucket, key, err)
	}
	return w.Attrs(), nil
}
