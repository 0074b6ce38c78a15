package services

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/promanage/core/internal/adapters/repository"
	"github.com/promanage/core/internal/domain/entities"
	"github.com/promanage/core/internal/infrastructure/config"
	"github.com/promanage/core/internal/infrastructure/logger"
	"github.com/promanage/core/internal/ports"
)

type fixture struct {
	store *repository.MemoryStore
	auth  *AuthService
	users *UserService
	tasks *TaskService
}

func newFixture() *fixture {
	store := repository.NewMemoryStore()
	auth := NewAuthService(config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: time.Hour,
		Issuer:    "promanage-test",
	}, bcrypt.MinCost)
	log := logger.NewNop()

	return &fixture{
		store: store,
		auth:  auth,
		users: NewUserService(store.Users(), auth, nil, log),
		tasks: NewTaskService(store.Tasks(), store.Users(), nil, log),
	}
}

// register creates an account and returns its identity.
func (f *fixture) register(t *testing.T, name, email string) entities.Identity {
	t.Helper()
	res, err := f.users.Register(context.Background(), ports.RegisterRequest{
		Name:            name,
		Email:           email,
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return res.User
}

func (f *fixture) createTask(t *testing.T, creator entities.Identity, assignNow string) *entities.Task {
	t.Helper()
	task, err := f.tasks.CreateTask(context.Background(), creator.UserID.Hex(), ports.CreateTaskRequest{
		Title:     "Write report",
		Priority:  entities.PriorityHigh,
		AssignNow: assignNow,
		Checklist: []ports.SubTaskInput{{Title: "outline"}, {Title: "draft"}},
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func kindOf(err error) entities.ErrorKind {
	return entities.KindOf(err)
}
