package storage_test

import (
	"context"
	"testing"

	"s3lib/core/storage"
	"s3lib/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Driver:    storage.DriverMinio,
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("AWSDriver", func(t *testing.T) {
		cfg := storage.Config{
			Driver:    storage.DriverAWS,
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			PathStyle: true,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("LocalDriver", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{Driver: storage.DriverLocal, Root: t.TempDir()})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("LocalDriverWithoutRoot", func(t *testing.T) {
		_, err := storage.NewClient(storage.Config{Driver: storage.DriverLocal})
		assert.Error(t, err)
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		_, err := storage.NewClient(storage.Config{Driver: "ftp"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ftp")
	})
}

func TestConfig_IsValidDriver(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		want   bool
	}{
		{"Minio", storage.DriverMinio, true},
		{"AWS", storage.DriverAWS, true},
		{"Local", storage.DriverLocal, true},
		{"Invalid", "invalid", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := storage.Config{Driver: tt.driver}
			assert.Equal(t, tt.want, c.IsValidDriver())
		})
	}
}

func TestRemovePrefix(t *testing.T) {
	t.Run("DeletesListedKeys", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "assets", storage.ListOptions{Prefix: "logs/", Recursive: true}).
			Return(mocks.Objects("logs/a.txt", "logs/b/c.txt"))
		client.On("RemoveObjects", mock.Anything, "assets", []string{"logs/a.txt", "logs/b/c.txt"}).Return(nil)

		n, err := storage.RemovePrefix(context.Background(), client, "assets", "logs/")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		client.AssertExpectations(t)
	})

	t.Run("NothingListed", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "assets", mock.Anything).Return(mocks.Objects())

		n, err := storage.RemovePrefix(context.Background(), client, "assets", "logs/")
		require.NoError(t, err)
		assert.Zero(t, n)
		client.AssertNotCalled(t, "RemoveObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ListError", func(t *testing.T) {
		ch := make(chan storage.ObjectInfo, 1)
		ch <- storage.ObjectInfo{Err: assert.AnError}
		close(ch)

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "assets", mock.Anything).Return((<-chan storage.ObjectInfo)(ch))

		_, err := storage.RemovePrefix(context.Background(), client, "assets", "logs/")
		assert.ErrorIs(t, err, assert.AnError)
	})
}
