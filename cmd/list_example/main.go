// Command list_example prints every object in my-bucket on a local GCS
// emulator. Entries that failed are skipped.
package main

import (
	"context"
	"fmt"
	"os"

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
		fmt.Fprintf(os.Stderr, "failed to create client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	for obj, err := range client.ListObjects(ctx, "my-bucket", storage.ListOptions{}) {
		if err != nil {
			continue
		}
		fmt.Printf("%s/%s size=%d generation=%s\n", obj.Bucket, obj.Name, obj.Size, obj.Generation)
	}
}
