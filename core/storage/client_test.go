package storage_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"storage-probe/core/storage"
	"storage-probe/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	t.Run("GCSEmulator", func(t *testing.T) {
		cfg := storage.Config{
			Provider:  storage.ProviderGCS,
			Endpoint:  "localhost:4443",
			Anonymous: true,
			ProjectID: "test",
			Retry:     storage.RetryConfig{MaxErrors: 2},
		}

		client, err := storage.NewClient(ctx, cfg)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.NoError(t, client.Close())
	})

	t.Run("S3ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Provider:  storage.ProviderS3,
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(ctx, cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("S3EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Provider:  storage.ProviderS3,
			Endpoint:  "http://localhost:9000",
			Anonymous: true,
		}

		client, err := storage.NewClient(ctx, cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("S3EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Provider:  storage.ProviderS3,
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(ctx, cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("UnknownProvider", func(t *testing.T) {
		client, err := storage.NewClient(ctx, storage.Config{Provider: "azure"})
		assert.ErrorIs(t, err, storage.ErrUnknownProvider)
		assert.Nil(t, client)
	})

	t.Run("MalformedEndpoint", func(t *testing.T) {
		client, err := storage.NewClient(ctx, storage.Config{Provider: storage.ProviderGCS, Endpoint: "http://"})
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestWriteObject(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		w := &mocks.Writer{Bucket: "my-bucket", Key: "my-key"}
		client := new(mocks.Client)
		client.On("NewWriter", mock.Anything, "my-bucket", "my-key").Return(w)

		attrs, err := storage.WriteObject(ctx, client, "my-bucket", "my-key", strings.NewReader("hello world"))
		require.NoError(t, err)
		assert.Equal(t, "my-key", attrs.Name)
		assert.Equal(t, int64(11), attrs.Size)
		assert.Equal(t, "hello world", string(w.Data))
		assert.True(t, w.Closed)
	})

	t.Run("CloseFailure", func(t *testing.T) {
		w := &mocks.Writer{Bucket: "my-bucket", Key: "my-key", CloseErr: errors.New("upload rejected")}
		client := new(mocks.Client)
		client.On("NewWriter", mock.Anything, "my-bucket", "my-key").Return(w)

		attrs, err := storage.WriteObject(ctx, client, "my-bucket", "my-key", strings.NewReader("hello world"))
		require.Error(t, err)
		assert.Nil(t, attrs)
		assert.Nil(t, w.Attrs())
		assert.Contains(t, err.Error(), "upload rejected")
	})

	t.Run("CopyFailureAborts", func(t *testing.T) {
		w := &mocks.Writer{Bucket: "my-bucket", Key: "my-key"}
		client := new(mocks.Client)
		client.On("NewWriter", mock.Anything, "my-bucket", "my-key").Return(w)

		attrs, err := storage.WriteObject(ctx, client, "my-bucket", "my-key", iotest.ErrReader(errors.New("source broke")))
		require.Error(t, err)
		assert.Nil(t, attrs)
		assert.True(t, w.Aborted)
		assert.False(t, w.Closed)
	})
}
