//go:build integration

package dbmongo

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goquote/internal/common"
	"goquote/internal/config"
)

var testConfig *config.Config

func TestMain(m *testing.M) {
	// Uses the MongoDB from docker-compose
	testConfig = &config.Config{
		MongoDB: config.MongoDBConfig{
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: getEnvOrDefault("MONGO_USERNAME", "admin"),
			Password: getEnvOrDefault("MONGO_PASSWORD", "admin123"),
			Database: getEnvOrDefault("MONGO_DATABASE", "goquote_test"),
			Bucket:   "attachments_test",
		},
	}
	os.Exit(m.Run())
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func TestMongoConnection_Integration(t *testing.T) {
	ctx := context.Background()

	client, err := NewMongoConnection(ctx, testConfig, nil)
	require.NoError(t, err, "ensure MongoDB is running")
	defer client.Close(ctx)

	assert.NoError(t, client.Client.Ping(ctx, nil))
	assert.NotNil(t, client.Attachments)
	assert.NotNil(t, client.Database)
}

func TestAttachmentStorage_Integration(t *testing.T) {
	ctx := context.Background()

	client, err := NewMongoConnection(ctx, testConfig, nil)
	require.NoError(t, err, "ensure MongoDB is running")
	defer client.Close(ctx)

	storage := NewAttachmentStorage(client)

	t.Run("upload_and_download", func(t *testing.T) {
		content := "quoted screenshot bytes"
		uploaded, err := storage.Upload(ctx, "p1", "shot.png", "image/png", "u1", strings.NewReader(content))
		require.NoError(t, err)
		assert.NotEmpty(t, uploaded.ID)
		assert.Equal(t, common.MediaKindImage, uploaded.Kind)
		assert.Equal(t, int64(len(content)), uploaded.Size)

		reader, meta, err := storage.Download(ctx, uploaded.ID)
		require.NoError(t, err)
		defer reader.Close()
		assert.Equal(t, "p1", meta.PostID)
		assert.Equal(t, "shot.png", meta.Filename)

		got, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, content, string(got))

		assert.NoError(t, storage.Delete(ctx, uploaded.ID))
	})

	t.Run("download_nonexistent_file", func(t *testing.T) {
		_, _, err := storage.Download(ctx, "507f1f77bcf86cd799439011")
		assert.Error(t, err)
	})
}
