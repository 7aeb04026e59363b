package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const (
	defaultConnectTimeout = 5 * time.Second
	defaultOpTimeout      = 30 * time.Second
	defaultMaxPoolSize    = 10
)

// Config captures the settings required to establish a MongoDB connection pool.
type Config struct {
	URI      string
	Database string
	// ConnectTimeout bounds server selection and connection acquisition.
	ConnectTimeout time.Duration
	// OpTimeout bounds a single repository operation.
	OpTimeout   time.Duration
	MaxPoolSize uint64
}

func (c Config) withDefaults() Config {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	if c.OpTimeout <= 0 {
		c.OpTimeout = defaultOpTimeout
	}
	if c.MaxPoolSize == 0 {
		c.MaxPoolSize = defaultMaxPoolSize
	}
	return c
}

// clientOptions maps Config onto driver options. The driver owns the pool;
// callers never hold a connection across operations.
func clientOptions(cfg Config) *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetSocketTimeout(cfg.OpTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetRetryWrites(true).
		SetWriteConcern(writeconcern.Majority())
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	cfg = cfg.withDefaults()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", classify(err))
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the indexes every repository relies on. The unique
// phone number index is what makes participant registration race-safe.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := db.Collection(collectionParticipants).Indexes().CreateOne(ctx, participantIndex()); err != nil {
		return fmt.Errorf("ensure participant indexes: %w", err)
	}
	if _, err := db.Collection(collectionPrizes).Indexes().CreateOne(ctx, prizeIndex()); err != nil {
		return fmt.Errorf("ensure prize indexes: %w", err)
	}
	if _, err := db.Collection(collectionPlayAudits).Indexes().CreateOne(ctx, playAuditIndex()); err != nil {
		return fmt.Errorf("ensure play audit indexes: %w", err)
	}
	return nil
}

// Ping checks that the store is reachable within ctx.
func Ping(ctx context.Context, db *mongo.Database) error {
	if err := db.Client().Ping(ctx, nil); err != nil {
		return classify(err)
	}
	return nil
}
