// Command upload_example creates my-bucket on a local GCS emulator and writes
// "hello world" to my-key.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"storage-probe/core/storage"
)

func main() {
	ctx := context.Background()

	client, err := storage.NewClient(ctx, storage.Config{
		Provider:  storage.ProviderGCS,
		Endpoint:  "localhost:4443",
		Anonymous: true,
		ProjectID: "test",
		Retry:     storage.RetryConfig{MaxErrors: 2, Policy: storage.RetryAlways},
	})
	if err != nil {
		fmt.Printf("Upload failed: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	if _, err := client.CreateBucket(ctx, "my-bucket", storage.BucketAttrs{}); err != nil && !errors.Is(err, storage.ErrBucketExists) {
		fmt.Printf("Upload failed: %v\n", err)
		os.Exit(1)
	}

	if _, err := storage.WriteObject(ctx, client, "my-bucket", "my-key", strings.NewReader("hello world")); err != nil {
		fmt.Printf("Upload failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Upload succeeded")
}
