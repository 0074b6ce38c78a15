package repository

import (
	"context"

	"github.com/promanage/core/internal/infrastructure/database"
	"github.com/promanage/core/internal/ports"
)

// MongoStore implements ports.Store on top of a MongoDB database
type MongoStore struct {
	db    *database.Mongo
	users ports.UserRepository
	tasks ports.TaskRepository
}

// NewMongoStore creates the Mongo-backed repositories
func NewMongoStore(db *database.Mongo) *MongoStore {
	return &MongoStore{
		db:    db,
		users: NewUserRepository(db.Users()),
		tasks: NewTaskRepository(db.Tasks()),
	}
}

func (s *MongoStore) Users() ports.UserRepository { return s.users }

func (s *MongoStore) Tasks() ports.TaskRepository { return s.tasks }

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.db.Close(ctx)
}
