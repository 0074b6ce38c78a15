package ports

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/promanage/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// GetByIDs returns the users that exist among ids, in the order of ids.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	Update(ctx context.Context, id primitive.ObjectID, update UserUpdate) error
	AddGroupMember(ctx context.Context, ownerID, memberID primitive.ObjectID) error
	PushTask(ctx context.Context, userID, taskID primitive.ObjectID) error
	// PullTask removes taskID from the task list of every user in userIDs.
	PullTask(ctx context.Context, userIDs []primitive.ObjectID, taskID primitive.ObjectID) error
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Task, error)
	// GetByIDs returns the tasks that exist among ids, in the order of ids.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entities.Task, error)
	// Update applies the non-nil fields and returns the stored task.
	Update(ctx context.Context, id primitive.ObjectID, update TaskUpdate) (*entities.Task, error)
	SetTaskType(ctx context.Context, id primitive.ObjectID, taskType entities.TaskType) error
	// SetSubTaskDone flips a single checklist entry and returns it.
	SetSubTaskDone(ctx context.Context, taskID, subTaskID primitive.ObjectID, done bool) (*entities.SubTask, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Store groups the repositories behind a single backing database.
type Store interface {
	Users() UserRepository
	Tasks() TaskRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// UserUpdate holds the fields of a profile update; nil means unchanged.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// IsEmpty reports whether the update would change nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.PasswordHash == nil
}

// TaskUpdate holds a partial task overwrite; nil fields are left untouched.
type TaskUpdate struct {
	Title     *string
	Priority  *entities.Priority
	Checklist []entities.SubTask
	DueDate   *time.Time
	TaskType  *entities.TaskType
	AssignTo  []primitive.ObjectID
}
