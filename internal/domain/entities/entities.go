package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enums and types
type Priority string

const (
	PriorityHigh     Priority = "High"
	PriorityModerate Priority = "Moderate"
	PriorityLow      Priority = "Low"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityModerate, PriorityLow:
		return true
	}
	return false
}

type TaskType string

const (
	TaskTypeToDo       TaskType = "To do"
	TaskTypeBacklog    TaskType = "Backlog"
	TaskTypeInProgress TaskType = "In Progress"
	TaskTypeDone       TaskType = "Done"
)

// Valid reports whether t is one of the workflow columns.
func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeToDo, TaskTypeBacklog, TaskTypeInProgress, TaskTypeDone:
		return true
	}
	return false
}

// User represents a registered account
type User struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name"`
	Email        string               `json:"email" bson:"email"`
	PasswordHash string               `json:"-" bson:"password"`
	GroupPeople  []primitive.ObjectID `json:"groupPeople" bson:"groupPeople"`
	Tasks        []primitive.ObjectID `json:"tasks" bson:"tasks"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HasGroupMember reports whether id was already added to the user's group.
func (u *User) HasGroupMember(id primitive.ObjectID) bool {
	for _, member := range u.GroupPeople {
		if member == id {
			return true
		}
	}
	return false
}

// Identity is the public view of a user embedded in tokens and auth responses.
type Identity struct {
	UserID primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Email  string             `json:"email"`
}

// PublicIdentity strips everything but id, name and email.
func (u *User) PublicIdentity() Identity {
	return Identity{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
	}
}

// SubTask is a single checklist entry
type SubTask struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Title string             `json:"title" bson:"title"`
	Done  bool               `json:"done" bson:"done"`
}

// Task represents a task card
type Task struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title     string               `json:"title" bson:"title"`
	Priority  Priority             `json:"priority" bson:"priority"`
	AssignTo  []primitive.ObjectID `json:"assignTo" bson:"assignTo"`
	Checklist []SubTask            `json:"checklist" bson:"checklist"`
	DueDate   *time.Time           `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	CreatedBy primitive.ObjectID   `json:"createdBy" bson:"createdBy"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	TaskType  TaskType             `json:"taskType" bson:"taskType"`
}

// IsCreator reports whether userID owns the task.
func (t *Task) IsCreator(userID primitive.ObjectID) bool {
	return t.CreatedBy == userID
}

// IsAssignee reports whether userID is in the task's assignee set.
func (t *Task) IsAssignee(userID primitive.ObjectID) bool {
	for _, id := range t.AssignTo {
		if id == userID {
			return true
		}
	}
	return false
}

// SubTask returns a pointer into the checklist for the given id, or nil.
func (t *Task) SubTask(id primitive.ObjectID) *SubTask {
	for i := range t.Checklist {
		if t.Checklist[i].ID == id {
			return &t.Checklist[i]
		}
	}
	return nil
}
