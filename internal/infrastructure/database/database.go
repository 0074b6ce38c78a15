package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/promanage/core/internal/infrastructure/config"
	"github.com/promanage/core/migrations"
)

// Collection names are fixed because the migrations in /migrations target them.
const (
	UsersCollection      = "users"
	TasksCollection      = "tasks"
	MigrationsCollection = "schema_migrations"
)

// Mongo wraps the mongo client and the application database
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
	config config.DatabaseConfig
}

// New connects to MongoDB and verifies the connection
func New(ctx context.Context, cfg config.DatabaseConfig) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetConnectTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Mongo{
		Client: client,
		DB:     client.Database(cfg.Name),
		config: cfg,
	}, nil
}

// Users returns the users collection
func (m *Mongo) Users() *mongo.Collection {
	return m.DB.Collection(UsersCollection)
}

// Tasks returns the tasks collection
func (m *Mongo) Tasks() *mongo.Collection {
	return m.DB.Collection(TasksCollection)
}

// Close disconnects the client
func (m *Mongo) Close(ctx context.Context) error {
	if m.Client != nil {
		return m.Client.Disconnect(ctx)
	}
	return nil
}

// HealthCheck pings the primary
func (m *Mongo) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := m.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	return nil
}

// Migrator builds a golang-migrate instance over the embedded migrations.
// Closing it disconnects the shared client, so callers close the Mongo instead.
func (m *Mongo) Migrator() (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	driver, err := mongodb.WithInstance(m.Client, &mongodb.Config{
		DatabaseName:         m.config.Name,
		MigrationsCollection: MigrationsCollection,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", source, "mongodb", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}

	return mig, nil
}

// MigrateUp applies every pending migration. It reports whether anything ran.
func (m *Mongo) MigrateUp() (bool, error) {
	mig, err := m.Migrator()
	if err != nil {
		return false, err
	}

	if err := mig.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, fmt.Errorf("migration failed: %w", err)
	}

	return true, nil
}
