package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/promanage/core/internal/application/services"
	"github.com/promanage/core/internal/domain/entities"
	"github.com/promanage/core/internal/infrastructure/logger"
	"github.com/promanage/core/internal/ports"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// CreateTask handles task creation for the user in the path
// @Summary Create a task
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param userId path string true "Creator ID"
// @Param body body ports.CreateTaskRequest true "Task"
// @Success 201 {object} map[string]entities.Task
// @Failure 400 {object} ports.ErrorResponse
// @Failure 401 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /tasks/{userId}/createTask [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), c.Param("userId"), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]*entities.Task{"task": task})
}

// GetTask handles getting a task by id
// @Summary Get a task
// @Tags Tasks
// @Produce json
// @Param taskId path string true "Task ID"
// @Success 200 {object} map[string]entities.Task
// @Failure 404 {object} ports.ErrorResponse
// @Router /tasks/{taskId} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("taskId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]*entities.Task{"task": task})
}

// GetUserTasks handles listing the caller's tasks
// @Summary List a user's tasks
// @Tags Tasks
// @Security BearerAuth
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string][]entities.Task
// @Failure 401 {object} ports.ErrorResponse
// @Failure 403 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /tasks/allTasks/{userId} [get]
func (h *TaskHandler) GetUserTasks(c echo.Context) error {
	identity, err := IdentityFromContext(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.GetUserTasks(c.Request().Context(), identity, c.Param("userId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string][]*entities.Task{"tasks": tasks})
}

// UpdateTask handles partial task updates
// @Summary Update a task
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param taskId path string true "Task ID"
// @Param body body ports.UpdateTaskRequest true "Changed fields"
// @Success 200 {object} map[string]entities.Task
// @Failure 400 {object} ports.ErrorResponse
// @Failure 403 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /tasks/updateTask/{taskId} [patch]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	identity, err := IdentityFromContext(c)
	if err != nil {
		return err
	}

	var req ports.UpdateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), identity, c.Param("taskId"), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]*entities.Task{"task": task})
}

// ChangeTaskType handles moving a task to another column
// @Summary Move a task to another column
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param taskId path string true "Task ID"
// @Param body body ports.ChangeTaskTypeRequest true "Target column"
// @Success 200 {object} ports.MessageResponse
// @Failure 400 {object} ports.ErrorResponse
// @Failure 403 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /tasks/changeTaskType/{taskId} [patch]
func (h *TaskHandler) ChangeTaskType(c echo.Context) error {
	identity, err := IdentityFromContext(c)
	if err != nil {
		return err
	}

	var req ports.ChangeTaskTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.taskService.ChangeTaskType(c.Request().Context(), identity, c.Param("taskId"), req.NewTaskType); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Task type updated successfully"})
}

// SetSubTaskCheck handles toggling one checklist entry
// @Summary Check or uncheck a checklist entry
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param taskId path string true "Task ID"
// @Param body body ports.SetSubTaskCheckRequest true "Checklist entry"
// @Success 200 {object} map[string]entities.SubTask
// @Failure 403 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /tasks/setSubTaskCheck/{taskId} [patch]
func (h *TaskHandler) SetSubTaskCheck(c echo.Context) error {
	identity, err := IdentityFromContext(c)
	if err != nil {
		return err
	}

	var req ports.SetSubTaskCheckRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sub, err := h.taskService.SetSubTaskCheck(c.Request().Context(), identity, c.Param("taskId"), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]*entities.SubTask{"subTask": sub})
}

// DeleteTask handles task deletion
// @Summary Delete a task
// @Tags Tasks
// @Security BearerAuth
// @Produce json
// @Param taskId path string true "Task ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /tasks/deleteTask/{taskId} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	identity, err := IdentityFromContext(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), identity, c.Param("taskId")); err != nil {
		return err
	}

	h.logger.Debugw("Task deleted", "task_id", c.Param("taskId"), "request_id", c.Response().Header().Get(echo.HeaderXRequestID))

	return c.JSON(http.StatusOK, struct{}{})
}

// GetStatusPriorityCount handles the dashboard summary for the caller
// @Summary Count a user's tasks by column and priority
// @Tags Tasks
// @Security BearerAuth
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} ports.StatusPriorityCount
// @Failure 403 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /tasks/{userId}/getStatusPriorityCount [get]
func (h *TaskHandler) GetStatusPriorityCount(c echo.Context) error {
	identity, err := IdentityFromContext(c)
	if err != nil {
		return err
	}

	counts, err := h.taskService.GetStatusPriorityCount(c.Request().Context(), identity, c.Param("userId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, counts)
}

// GetAssigneeEmails handles listing the emails of a task's assignees
// @Summary List a task's assignee emails
// @Tags Tasks
// @Security BearerAuth
// @Produce json
// @Param taskId path string true "Task ID"
// @Success 200 {object} map[string][]string
// @Failure 404 {object} ports.ErrorResponse
// @Router /tasks/getAssigneeEmailsByTask/{taskId} [get]
func (h *TaskHandler) GetAssigneeEmails(c echo.Context) error {
	emails, err := h.taskService.GetAssigneeEmails(c.Request().Context(), c.Param("taskId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string][]string{"emails": emails})
}
