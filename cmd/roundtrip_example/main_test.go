package main

import (
	"context"
	"testing"

	"storage-probe/core/logger"
	"storage-probe/core/storage"
	"storage-probe/feature/workflow"

	"github.com/fsouza/fake-gcs-server/fakestorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*fakestorage.Server, *workflow.Service) {
	t.Helper()

	server, err := fakestorage.NewServerWithOptions(fakestorage.Options{Scheme: "http", Host: "127.0.0.1"})
	require.NoError(t, err)
	t.Cleanup(server.Stop)

	client, err := storage.NewClient(context.Background(), storage.Config{
		Provider:  storage.ProviderGCS,
		Endpoint:  server.URL(),
		Anonymous: true,
		ProjectID: "test",
		Retry:     storage.RetryConfig{MaxErrors: 2, InitialBackoffMs: 1, MaxBackoffMs: 5, Policy: storage.RetryAlways},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	logg, err := logger.New(&logger.Config{Level: "debug", Format: "console"})
	require.NoError(t, err)

	return server, workflow.NewService(client, "my-bucket", logg, nil)
}

func TestRoundTrip(t *testing.T) {
	_, svc := newService(t)

	step, err := roundTrip(context.Background(), svc)
	require.NoError(t, err)
	assert.Empty(t, step)
}

func TestRoundTrip_ExtraObjectFailsVerify(t *testing.T) {
	server, svc := newService(t)
	server.CreateBucketWithOpts(fakestorage.CreateBucketOpts{Name: "my-bucket"})
	server.CreateObject(fakestorage.Object{
		ObjectAttrs: fakestorage.ObjectAttrs{BucketName: "my-bucket", Name: "other"},
		Content:     []byte("x"),
	})

	step, err := roundTrip(context.Background(), svc)
	require.Error(t, err)
	assert.Equal(t, "verify", step)
	assert.Contains(t, err.Error(), "one object")
}
