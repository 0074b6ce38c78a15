package ports

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/promanage/core/internal/domain/entities"
)

// Request/Response Types

// Auth related types
type RegisterRequest struct {
	Name            string `json:"name" validate:"omitempty,max=100"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  entities.Identity `json:"user"`
	Token string            `json:"token"`
}

// Claims is the identity decoded from a verified token.
type Claims struct {
	UserID primitive.ObjectID
	Name   string
	Email  string
}

// Identity converts claims to the public identity of the caller.
func (c *Claims) Identity() entities.Identity {
	return entities.Identity{UserID: c.UserID, Name: c.Name, Email: c.Email}
}

// User related types
type UpdateUserRequest struct {
	UpdatedEmail string `json:"updatedEmail" validate:"omitempty,email"`
	Name         string `json:"name" validate:"omitempty,max=100"`
	OldPassword  string `json:"oldPassword"`
	NewPassword  string `json:"newPassword"`
}

type AddPersonRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Task related types
type SubTaskInput struct {
	ID    string `json:"id"`
	Title string `json:"title" validate:"required"`
	Done  bool   `json:"done"`
}

type CreateTaskRequest struct {
	Title     string            `json:"title"`
	Priority  entities.Priority `json:"priority"`
	AssignNow string            `json:"assignNow"`
	Checklist []SubTaskInput    `json:"checklist" validate:"dive"`
	DueDate   *Date             `json:"dueDate"`
}

type UpdateTaskRequest struct {
	Title     *string            `json:"title"`
	Priority  *entities.Priority `json:"priority"`
	AssignNow string             `json:"assignNow"`
	Checklist []SubTaskInput     `json:"checklist" validate:"omitempty,dive"`
	TaskType  *entities.TaskType `json:"taskType"`
	DueDate   *Date              `json:"dueDate"`
}

type ChangeTaskTypeRequest struct {
	NewTaskType entities.TaskType `json:"newTaskType"`
}

type SetSubTaskCheckRequest struct {
	SubTaskID   string `json:"subTaskId"`
	SubTaskDone bool   `json:"subTaskDone"`
}

// StatusPriorityCount summarises a user's task list.
type StatusPriorityCount struct {
	Backlog     int `json:"backlog"`
	ToDo        int `json:"toDo"`
	InProgress  int `json:"inProgress"`
	Done        int `json:"done"`
	High        int `json:"high"`
	Moderate    int `json:"moderate"`
	Low         int `json:"low"`
	WithDueDate int `json:"dueDate"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Msg string `json:"msg"`
}
