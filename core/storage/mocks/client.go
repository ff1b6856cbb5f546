package mocks

import (
	"context"
	"io"
	"iter"

	"storage-probe/core/storage"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

func (m *Client) CreateBucket(ctx context.Context, bucket string, attrs storage.BucketAttrs) (*storage.BucketAttrs, error) {
	args := m.Called(ctx, bucket, attrs)
	if b, ok := args.Get(0).(*storage.BucketAttrs); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) NewWriter(ctx context.Context, bucket, key string) storage.Writer {
	args := m.Called(ctx, bucket, key)
	return args.Get(0).(storage.Writer)
}

func (m *Client) NewReader(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, bucket, key)
	if r, ok := args.Get(0).(io.ReadCloser); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListObjects(ctx context.Context, bucket string, opts storage.ListOptions) iter.Seq2[*storage.ObjectAttrs, error] {
	args := m.Called(ctx, bucket, opts)
	if seq, ok := args.Get(0).(iter.Seq2[*storage.ObjectAttrs, error]); ok {
		return seq
	}
	return func(func(*storage.ObjectAttrs, error) bool) {}
}

func (m *Client) DeleteObject(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *Client) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Entry is one listing result fed to Listing.
type Entry struct {
	Attrs *storage.ObjectAttrs
	Err   error
}

// Listing builds a listing sequence from fixed entries.
func Listing(entries ...Entry) iter.Seq2[*storage.ObjectAttrs, error] {
	return func(yield func(*storage.ObjectAttrs, error) bool) {
		for _, e := range entries {
			if !yield(e.Attrs, e.Err) {
				return
			}
		}
	}
}

// Writer is an in-memory storage.Writer whose Close result is controlled by
// CloseErr.
type Writer struct {
	Bucket   string
	Key      string
	Data     []byte
	CloseErr error
	Closed   bool
	Aborted  bool
	attrs    *storage.ObjectAttrs
}

func (w *Writer) Write(p []byte) (int, error) {
	w.Data = append(w.Data, p...)
	return len(p), nil
}

func (w *Writer) Close() error {
	w.Closed = true
	if w.CloseErr != nil {
		return w.CloseErr
	}
	w.attrs = &storage.ObjectAttrs{Bucket: w.Bucket, Name: w.Key, Size: int64(len(w.Data))}
	return nil
}

func (w *Writer) Abort(error) {
	w.Aborted = true
}

func (w *Writer) Attrs() *storage.ObjectAttrs {
	return w.attrs
}
