// Package storage provides an abstraction layer for object storage services.
//
// It wraps the Google Cloud Storage client and the MinIO Go client behind a
// single Client interface covering the calls the storage workflow needs:
// creating buckets, writing objects through a scoped writer, and listing
// objects lazily. Local emulators (fake-gcs-server, MinIO) are reached by
// pointing Config.Endpoint at them and enabling anonymous credentials.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - CreateBucket: Creates a bucket; an existing bucket yields ErrBucketExists.
//   - NewWriter: Opens a Writer; the object exists only after Close returns nil.
//   - ListObjects: Returns an iter.Seq2 of (attrs, error) entries. Check the
//     error before touching the attrs: failed entries carry a nil value.
//   - NewReader / DeleteObject: Download and remove single objects.
//
// # Retry Policy
//
// RetryConfig.MaxErrors bounds the number of transient failures an operation
// tolerates. The gcs provider hands it to the client's own retry settings; the
// s3 provider retries through cenkalti/backoff.
//
// # Usage
//
//	client, err := storage.NewClient(ctx, cfg)
//	attrs, err := storage.WriteObject(ctx, client, "my-bucket", "my-key", strings.NewReader("hello world"))
//	for obj, err := range client.ListObjects(ctx, "my-bucket", storage.ListOptions{}) {
//	    if err != nil {
//	        continue
//	    }
//	    fmt.Println(obj.Name)
//	}
package storage
