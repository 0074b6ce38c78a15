package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/promanage/core/internal/domain/entities"
	"github.com/promanage/core/internal/infrastructure/logger"
	"github.com/promanage/core/internal/ports"
)

// TaskService handles task-related operations
type TaskService struct {
	taskRepo ports.TaskRepository
	userRepo ports.UserRepository
	metrics  ports.Metrics
	logger   *logger.Logger
	now      func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, userRepo ports.UserRepository, metrics ports.Metrics, logger *logger.Logger) *TaskService {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		metrics:  metrics,
		logger:   logger.WithComponent("task_service"),
		now:      time.Now,
	}
}

// CreateTask creates a task owned by creatorID, optionally assigned to one user by email
func (s *TaskService) CreateTask(ctx context.Context, creatorID string, req ports.CreateTaskRequest) (*entities.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.Priority == "" || req.Checklist == nil {
		return nil, entities.BadRequest("Please provide values for mandatory fields")
	}
	if !req.Priority.Valid() {
		return nil, entities.BadRequest("Invalid priority")
	}
	if len(req.Checklist) == 0 {
		return nil, entities.BadRequest("Checklist must have at least one sub-task")
	}
	checklist, err := buildChecklist(req.Checklist)
	if err != nil {
		return nil, err
	}

	creator, err := s.requester(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	var assignee *entities.User
	if email := strings.TrimSpace(req.AssignNow); email != "" {
		assignee, err = s.assigneeByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
	}

	task := &entities.Task{
		Title:     title,
		Priority:  req.Priority,
		AssignTo:  []primitive.ObjectID{},
		Checklist: checklist,
		DueDate:   req.DueDate.TimePtr(),
		CreatedBy: creator.ID,
		CreatedAt: s.now().UTC(),
		TaskType:  entities.TaskTypeToDo,
	}
	if assignee != nil {
		task.AssignTo = append(task.AssignTo, assignee.ID)
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if err := s.userRepo.PushTask(ctx, creator.ID, task.ID); err != nil {
		return nil, fmt.Errorf("failed to link task to creator: %w", err)
	}
	if assignee != nil {
		if err := s.userRepo.PushTask(ctx, assignee.ID, task.ID); err != nil {
			return nil, fmt.Errorf("failed to link task to assignee: %w", err)
		}
	}

	s.metrics.TaskCreated()
	s.logger.LogUserAction(creator.ID.Hex(), "create_task", map[string]interface{}{
		"task_id":  task.ID.Hex(),
		"assigned": assignee != nil,
	})

	return task, nil
}

// GetTask fetches a task; anyone holding the id may read it
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*entities.Task, error) {
	return s.findTask(ctx, taskID)
}

// GetUserTasks returns the tasks listed on the target user; callers may only list their own
func (s *TaskService) GetUserTasks(ctx context.Context, requester entities.Identity, targetID string) ([]*entities.Task, error) {
	user, err := s.ownTaskList(ctx, requester, targetID, "You are not authorized to get the tasks")
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.GetByIDs(ctx, user.Tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTask applies a partial overwrite; only the creator may update
func (s *TaskService) UpdateTask(ctx context.Context, requester entities.Identity, taskID string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	if _, err := s.requester(ctx, requester.UserID.Hex()); err != nil {
		return nil, err
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := AssertOwner(requester, task.CreatedBy); err != nil {
		s.denied(requester, task, "update_task")
		return nil, err
	}

	if req.Checklist != nil && len(req.Checklist) == 0 {
		return nil, entities.BadRequest("Checklist must have at least one sub-task")
	}

	var assignee *entities.User
	if email := strings.TrimSpace(req.AssignNow); email != "" {
		assignee, err = s.assigneeByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if task.IsAssignee(assignee.ID) {
			return nil, entities.BadRequest("User is already assigned to this task")
		}
	}

	update, err := taskUpdateFrom(req)
	if err != nil {
		return nil, err
	}
	if assignee != nil {
		update.AssignTo = append(append([]primitive.ObjectID{}, task.AssignTo...), assignee.ID)
	}

	updated, err := s.taskRepo.Update(ctx, task.ID, update)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return nil, entities.NotFound("Task not found")
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if assignee != nil {
		if err := s.userRepo.PushTask(ctx, assignee.ID, updated.ID); err != nil {
			return nil, fmt.Errorf("failed to link task to assignee: %w", err)
		}
	}

	s.logger.LogUserAction(requester.UserID.Hex(), "update_task", map[string]interface{}{
		"task_id":  updated.ID.Hex(),
		"assigned": assignee != nil,
	})

	return updated, nil
}

// ChangeTaskType moves a task between workflow columns. Unlike the other
// mutations, assignees are allowed as well as the creator.
func (s *TaskService) ChangeTaskType(ctx context.Context, requester entities.Identity, taskID string, newType entities.TaskType) error {
	if _, err := s.requester(ctx, requester.UserID.Hex()); err != nil {
		return err
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}

	if !task.IsCreator(requester.UserID) && !task.IsAssignee(requester.UserID) {
		s.denied(requester, task, "change_task_type")
		return entities.Unauthorized("You are not authorized to change this task type")
	}

	if !newType.Valid() {
		return entities.BadRequest("Invalid task type")
	}

	if err := s.taskRepo.SetTaskType(ctx, task.ID, newType); err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return entities.NotFound("Task not found")
		}
		return fmt.Errorf("failed to change task type: %w", err)
	}

	s.logger.LogUserAction(requester.UserID.Hex(), "change_task_type", map[string]interface{}{
		"task_id":   task.ID.Hex(),
		"task_type": string(newType),
	})

	return nil
}

// SetSubTaskCheck sets the done flag of one checklist entry; only the creator may do so
func (s *TaskService) SetSubTaskCheck(ctx context.Context, requester entities.Identity, taskID string, req ports.SetSubTaskCheckRequest) (*entities.SubTask, error) {
	if _, err := s.requester(ctx, requester.UserID.Hex()); err != nil {
		return nil, err
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := AssertOwner(requester, task.CreatedBy); err != nil {
		s.denied(requester, task, "set_sub_task_check")
		return nil, err
	}

	subTaskID, err := parseID(req.SubTaskID, "Sub task not found")
	if err != nil {
		return nil, err
	}

	sub, err := s.taskRepo.SetSubTaskDone(ctx, task.ID, subTaskID, req.SubTaskDone)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrSubTaskNotFound):
			return nil, entities.NotFound("Sub task not found")
		case errors.Is(err, entities.ErrTaskNotFound):
			return nil, entities.NotFound("Task not found")
		}
		return nil, fmt.Errorf("failed to update sub task: %w", err)
	}

	return sub, nil
}

// DeleteTask removes a task and unlinks it from its creator and assignees.
// The unlink steps run after the delete and are not rolled back on failure.
func (s *TaskService) DeleteTask(ctx context.Context, requester entities.Identity, taskID string) error {
	if _, err := s.requester(ctx, requester.UserID.Hex()); err != nil {
		return err
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}

	if err := AssertOwner(requester, task.CreatedBy); err != nil {
		s.denied(requester, task, "delete_task")
		return entities.Unauthorized("You are not authorized to delete this task")
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return entities.NotFound("Task not found")
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	linked := append(append([]primitive.ObjectID{}, task.AssignTo...), task.CreatedBy)
	if err := s.userRepo.PullTask(ctx, linked, task.ID); err != nil {
		return fmt.Errorf("failed to unlink deleted task: %w", err)
	}

	s.metrics.TaskDeleted()
	s.logger.LogUserAction(requester.UserID.Hex(), "delete_task", map[string]interface{}{
		"task_id": task.ID.Hex(),
	})

	return nil
}

// GetStatusPriorityCount tallies the target user's tasks by column, priority and due date
func (s *TaskService) GetStatusPriorityCount(ctx context.Context, requester entities.Identity, targetID string) (*ports.StatusPriorityCount, error) {
	tasks, err := s.GetUserTasks(ctx, requester, targetID)
	if err != nil {
		return nil, err
	}

	var counts ports.StatusPriorityCount
	for _, t := range tasks {
		switch t.TaskType {
		case entities.TaskTypeBacklog:
			counts.Backlog++
		case entities.TaskTypeToDo:
			counts.ToDo++
		case entities.TaskTypeInProgress:
			counts.InProgress++
		case entities.TaskTypeDone:
			counts.Done++
		}

		switch t.Priority {
		case entities.PriorityHigh:
			counts.High++
		case entities.PriorityModerate:
			counts.Moderate++
		case entities.PriorityLow:
			counts.Low++
		}

		if t.DueDate != nil {
			counts.WithDueDate++
		}
	}

	return &counts, nil
}

// GetAssigneeEmails lists the emails of a task's assignees in assignment order
func (s *TaskService) GetAssigneeEmails(ctx context.Context, taskID string) ([]string, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetByIDs(ctx, task.AssignTo)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignees: %w", err)
	}

	emails := make([]string, 0, len(users))
	for _, u := range users {
		emails = append(emails, u.Email)
	}

	return emails, nil
}

// requester loads the acting user; a token for a vanished user is Unauthenticated.
func (s *TaskService) requester(ctx context.Context, id string) (*entities.User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, entities.Unauthenticated("User not found")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.Unauthenticated("User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (s *TaskService) ownTaskList(ctx context.Context, requester entities.Identity, targetID, deniedMsg string) (*entities.User, error) {
	if requester.UserID.Hex() != targetID {
		return nil, entities.Unauthorized(deniedMsg)
	}

	user, err := s.userRepo.GetByID(ctx, requester.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (s *TaskService) assigneeByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.NotFound("Assigned user not found")
		}
		return nil, fmt.Errorf("failed to find assignee: %w", err)
	}
	return user, nil
}

func (s *TaskService) findTask(ctx context.Context, id string) (*entities.Task, error) {
	taskID, err := parseID(id, "Task not found")
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return nil, entities.NotFound("Task not found")
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

func (s *TaskService) denied(requester entities.Identity, task *entities.Task, action string) {
	s.logger.Warnw("Task access denied",
		"user_id", requester.UserID.Hex(),
		"task_id", task.ID.Hex(),
		"action", action,
	)
}

func taskUpdateFrom(req ports.UpdateTaskRequest) (ports.TaskUpdate, error) {
	var update ports.TaskUpdate

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return update, entities.BadRequest("Title cannot be empty")
		}
		update.Title = &title
	}

	if req.Priority != nil {
		if !req.Priority.Valid() {
			return update, entities.BadRequest("Invalid priority")
		}
		update.Priority = req.Priority
	}

	if req.TaskType != nil {
		if !req.TaskType.Valid() {
			return update, entities.BadRequest("Invalid task type")
		}
		update.TaskType = req.TaskType
	}

	if req.Checklist != nil {
		checklist, err := buildChecklist(req.Checklist)
		if err != nil {
			return update, err
		}
		update.Checklist = checklist
	}

	update.DueDate = req.DueDate.TimePtr()

	return update, nil
}

// buildChecklist keeps client-supplied entry ids when they are well formed so
// that rewriting a checklist does not orphan ids the client already holds.
func buildChecklist(items []ports.SubTaskInput) ([]entities.SubTask, error) {
	checklist := make([]entities.SubTask, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			return nil, entities.BadRequest("Sub-task title is required")
		}

		id, err := primitive.ObjectIDFromHex(item.ID)
		if err != nil {
			id = primitive.NewObjectID()
		}

		checklist = append(checklist, entities.SubTask{
			ID:    id,
			Title: title,
			Done:  item.Done,
		})
	}
	return checklist, nil
}
