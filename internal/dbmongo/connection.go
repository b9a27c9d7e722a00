// Package dbmongo stores post attachments in a GridFS bucket.
package dbmongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"goquote/internal/config"
	"goquote/internal/logger"
)

const (
	defaultBucket  = "attachments"
	appName        = "goquote"
	connectTimeout = 10 * time.Second
	selectTimeout  = 5 * time.Second
)

// MongoClient is an open connection plus the attachment bucket.
type MongoClient struct {
	Client      *mongo.Client
	Database    *mongo.Database
	// Attachments holds one GridFS file per uploaded post attachment.
	Attachments *gridfs.Bucket
}

func clientOptions(c *config.Config) *options.ClientOptions {
	return options.Client().
		ApplyURI(c.GetMongoURI()).
		SetAppName(appName).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(selectTimeout)
}

// NewMongoConnection connects, pings the server and opens the attachment
// bucket. The client is disconnected again when any step fails.
func NewMongoConnection(ctx context.Context, c *config.Config, log *zap.Logger) (*MongoClient, error) {
	log = logger.OrNop(log)
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions(c))
	if err != nil {
		return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(c.MongoDB.Database)
	bucketName := BucketName(c.MongoDB)
	bucket, err := gridfs.NewBucket(database, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to open attachment bucket %s: %w", bucketName, err)
	}

	log.Info("mongo_connected",
		zap.String("host", c.MongoDB.Host),
		zap.String("database", c.MongoDB.Database),
		zap.String("bucket", bucketName))
	return &MongoClient{
		Client:      client,
		Database:    database,
		Attachments: bucket,
	}, nil
}

// BucketName is the configured GridFS bucket, or "attachments".
func BucketName(m config.MongoDBConfig) string {
	if m.Bucket == "" {
		return defaultBucket
	}
	return m.Bucket
}

// Close disconnects the client. In-flight uploads fail once ctx expires.
func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.Client.Disconnect(ctx)
}
