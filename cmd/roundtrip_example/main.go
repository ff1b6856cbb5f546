// Command roundtrip_example writes my-key to my-bucket on an emulator at
// localhost:8080, then checks the bucket lists exactly that one object.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"storage-probe/core/logger"
	"storage-probe/core/storage"
	"storage-probe/feature/workflow"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()
	logg, err := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logg.Sync()

	client, err := storage.NewClient(ctx, storage.Config{
		Provider:  storage.ProviderGCS,
		Endpoint:  "localhost:8080",
		Anonymous: true,
		ProjectID: "test",
		Retry:     storage.RetryConfig{MaxErrors: 2, Policy: storage.RetryAlways},
	})
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}
	defer client.Close()

	svc := workflow.NewService(client, "my-bucket", logg, nil)
	if step, err := roundTrip(ctx, svc); err != nil {
		fail(logg, step, err)
	}
	fmt.Println("PASS")
}

// roundTrip writes my-key and checks it is the only listed object. It
// returns the step that failed.
func roundTrip(ctx context.Context, svc *workflow.Service) (string, error) {
	if _, _, err := svc.EnsureBucket(ctx); err != nil {
		return "bucket", err
	}

	attrs, err := svc.Upload(ctx, "my-key", strings.NewReader("hello world"))
	if err != nil {
		return "upload", err
	}
	if attrs.Name != "my-key" {
		return "upload", fmt.Errorf("committed object is named %q", attrs.Name)
	}

	v, err := svc.Verify(ctx, workflow.Expectation{Key: "my-key", Sole: true})
	if err != nil {
		return "verify", err
	}
	if !v.Passed {
		return "verify", fmt.Errorf("%v", v.Problems)
	}
	return "", nil
}

func fail(logg *zap.Logger, step string, err error) {
	logg.Error("Round trip failed", zap.String("step", step), zap.Error(err))
	fmt.Println("FAIL")
	_ = logg.Sync()
	os.Exit(1)
}
