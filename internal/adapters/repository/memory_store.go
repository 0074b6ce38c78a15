package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/promanage/core/internal/domain/entities"
	"github.com/promanage/core/internal/ports"
)

// MemoryStore keeps users and tasks in process memory. It mirrors the
// single-document update semantics of the Mongo repositories and is used for
// local runs and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*entities.User
	tasks map[primitive.ObjectID]*entities.Task
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[primitive.ObjectID]*entities.User),
		tasks: make(map[primitive.ObjectID]*entities.Task),
	}
}

func (s *MemoryStore) Users() ports.UserRepository { return &memoryUsers{s} }

func (s *MemoryStore) Tasks() ports.TaskRepository { return &memoryTasks{s} }

func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemoryStore) Close(context.Context) error { return nil }

type memoryUsers struct {
	s *MemoryStore
}

func (r *memoryUsers) Create(_ context.Context, user *entities.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return entities.ErrEmailTaken
		}
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.GroupPeople == nil {
		user.GroupPeople = []primitive.ObjectID{}
	}
	if user.Tasks == nil {
		user.Tasks = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.s.users[user.ID] = copyUser(user)
	return nil
}

func (r *memoryUsers) GetByID(_ context.Context, id primitive.ObjectID) (*entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *memoryUsers) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *memoryUsers) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*entities.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			users = append(users, copyUser(u))
		}
	}
	return users, nil
}

func (r *memoryUsers) List(_ context.Context) ([]*entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*entities.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, copyUser(u))
	}
	// ObjectIDs embed their creation time, which gives insertion order
	sort.Slice(users, func(i, j int) bool {
		return users[i].ID.Hex() < users[j].ID.Hex()
	})
	return users, nil
}

func (r *memoryUsers) Update(_ context.Context, id primitive.ObjectID, update ports.UserUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return entities.ErrUserNotFound
	}
	if update.Email != nil {
		for otherID, other := range r.s.users {
			if otherID != id && other.Email == *update.Email {
				return entities.ErrEmailTaken
			}
		}
		u.Email = *update.Email
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memoryUsers) AddGroupMember(_ context.Context, ownerID, memberID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[ownerID]
	if !ok {
		return entities.ErrUserNotFound
	}
	if !u.HasGroupMember(memberID) {
		u.GroupPeople = append(u.GroupPeople, memberID)
	}
	return nil
}

func (r *memoryUsers) PushTask(_ context.Context, userID, taskID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return entities.ErrUserNotFound
	}
	u.Tasks = append(u.Tasks, taskID)
	return nil
}

func (r *memoryUsers) PullTask(_ context.Context, userIDs []primitive.ObjectID, taskID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range userIDs {
		u, ok := r.s.users[id]
		if !ok {
			continue
		}
		kept := u.Tasks[:0]
		for _, t := range u.Tasks {
			if t != taskID {
				kept = append(kept, t)
			}
		}
		u.Tasks = kept
	}
	return nil
}

type memoryTasks struct {
	s *MemoryStore
}

func (r *memoryTasks) Create(_ context.Context, task *entities.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	if task.AssignTo == nil {
		task.AssignTo = []primitive.ObjectID{}
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	r.s.tasks[task.ID] = copyTask(task)
	return nil
}

func (r *memoryTasks) GetByID(_ context.Context, id primitive.ObjectID) (*entities.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	return copyTask(t), nil
}

func (r *memoryTasks) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*entities.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[primitive.ObjectID]bool, len(ids))
	tasks := make([]*entities.Task, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.s.tasks[id]; ok && !seen[id] {
			seen[id] = true
			tasks = append(tasks, copyTask(t))
		}
	}
	return tasks, nil
}

func (r *memoryTasks) Update(_ context.Context, id primitive.ObjectID, update ports.TaskUpdate) (*entities.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	if update.Title != nil {
		t.Title = *update.Title
	}
	if update.Priority != nil {
		t.Priority = *update.Priority
	}
	if update.Checklist != nil {
		t.Checklist = append([]entities.SubTask(nil), update.Checklist...)
	}
	if update.DueDate != nil {
		due := *update.DueDate
		t.DueDate = &due
	}
	if update.TaskType != nil {
		t.TaskType = *update.TaskType
	}
	if update.AssignTo != nil {
		t.AssignTo = append([]primitive.ObjectID(nil), update.AssignTo...)
	}
	return copyTask(t), nil
}

func (r *memoryTasks) SetTaskType(_ context.Context, id primitive.ObjectID, taskType entities.TaskType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return entities.ErrTaskNotFound
	}
	t.TaskType = taskType
	return nil
}

func (r *memoryTasks) SetSubTaskDone(_ context.Context, taskID, subTaskID primitive.ObjectID, done bool) (*entities.SubTask, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[taskID]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	sub := t.SubTask(subTaskID)
	if sub == nil {
		return nil, entities.ErrSubTaskNotFound
	}
	sub.Done = done
	out := *sub
	return &out, nil
}

func (r *memoryTasks) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

func copyUser(u *entities.User) *entities.User {
	out := *u
	out.GroupPeople = append([]primitive.ObjectID{}, u.GroupPeople...)
	out.Tasks = append([]primitive.ObjectID{}, u.Tasks...)
	return &out
}

func copyTask(t *entities.Task) *entities.Task {
	out := *t
	out.AssignTo = append([]primitive.ObjectID{}, t.AssignTo...)
	out.Checklist = append([]entities.SubTask{}, t.Checklist...)
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	return &out
}
