package workflow

import (
	"bytes"
	"context"
	"testing"

	"storage-probe/core/storage"

	"github.com/fsouza/fake-gcs-server/fakestorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEmulatorService(t *testing.T) *Service {
	t.Helper()

	server, err := fakestorage.NewServerWithOptions(fakestorage.Options{
		Scheme: "http",
		Host:   "127.0.0.1",
	})
	require.NoError(t, err)
	t.Cleanup(server.Stop)

	client, err := storage.NewClient(context.Background(), storage.Config{
		Provider:       storage.ProviderGCS,
		Endpoint:       server.URL(),
		Anonymous:      true,
		ProjectID:      "test",
		TimeoutSeconds: 5,
		Retry:          storage.RetryConfig{MaxErrors: 2, InitialBackoffMs: 1, MaxBackoffMs: 5, Policy: storage.RetryAlways},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewService(client, "my-bucket", zap.NewNop(), nil)
}

func TestScenario_UploadThenList(t *testing.T) {
	svc := newEmulatorService(t)
	ctx := context.Background()

	_, _, err := svc.EnsureBucket(ctx)
	require.NoError(t, err)

	attrs, err := svc.Upload(ctx, "my-key", bytes.NewReader([]byte("hello world")))
	require.NoError(t, err)
	assert.Equal(t, "my-key", attrs.Name)

	listing := svc.List(ctx, storage.ListOptions{})
	require.Len(t, listing.Entries, 1)
	assert.Zero(t, listing.Failed)
	assert.Equal(t, "my-key", listing.Entries[0].Object.Name)
}

func TestScenario_Run(t *testing.T) {
	svc := newEmulatorService(t)

	report, err := svc.Run(context.Background(), Plan{
		Key:      "my-key",
		Payload:  "hello world",
		ReadBack: true,
		Sole:     true,
		Cleanup:  true,
	})
	require.NoError(t, err)
	assert.True(t, report.Passed())
	require.NotNil(t, report.Verification.DigestMatch)
	assert.True(t, *report.Verification.DigestMatch)
	assert.True(t, report.CleanedUp)

	assert.Empty(t, svc.List(context.Background(), storage.ListOptions{}).Entries)
}

func TestScenario_RepeatedRunSeesExistingBucket(t *testing.T) {
	svc := newEmulatorService(t)
	ctx := context.Background()

	first, err := svc.Run(ctx, Plan{Key: "my-key", Payload: "hello world"})
	require.NoError(t, err)
	assert.True(t, first.Passed())

	second, err := svc.Run(ctx, Plan{Key: "my-key", Payload: "hello again", ReadBack: true})
	require.NoError(t, err)
	assert.True(t, second.Passed())
	assert.Equal(t, 1, second.Verification.Matches)
}
