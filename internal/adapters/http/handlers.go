package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/promanage/core/internal/application/services"
	"github.com/promanage/core/internal/domain/entities"
	"github.com/promanage/core/internal/infrastructure/logger"
	"github.com/promanage/core/internal/ports"
)

// UserHandler handles account, profile and group requests
type UserHandler struct {
	userService *services.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// Register handles account creation
// @Summary Register a new user
// @Tags Users
// @Accept json
// @Produce json
// @Param body body ports.RegisterRequest true "New account"
// @Success 201 {object} ports.AuthResponse
// @Failure 400 {object} ports.ErrorResponse
// @Router /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.userService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, res)
}

// Login handles user login
// @Summary Log in
// @Tags Users
// @Accept json
// @Produce json
// @Param body body ports.LoginRequest true "Credentials"
// @Success 200 {object} ports.AuthResponse
// @Failure 401 {object} ports.ErrorResponse
// @Router /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.userService.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, res)
}

// Logout acknowledges a logout; the client discards its token
// @Summary Log out
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]string
// @Router /users/logout [get]
func (h *UserHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"msg": h.userService.Logout()})
}

// GetUser handles getting a user by id
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param uid path string true "User ID"
// @Success 200 {object} map[string]entities.User
// @Failure 404 {object} ports.ErrorResponse
// @Router /users/{uid} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]*entities.User{"user": user})
}

// ListUsers handles listing every user
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {object} map[string][]entities.User
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string][]*entities.User{"users": users})
}

// UpdateUser handles profile updates
// @Summary Update a profile
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param uid path string true "User ID"
// @Param body body ports.UpdateUserRequest true "Changed fields"
// @Success 200 {object} ports.MessageResponse
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /users/updateUser/{uid} [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req ports.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.userService.UpdateUser(c.Request().Context(), c.Param("uid"), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: msg})
}

// AddPersonToGroup handles adding a collaborator by email
// @Summary Add a collaborator to a group
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param uid path string true "Group owner ID"
// @Param body body ports.AddPersonRequest true "Collaborator email"
// @Success 200 {object} ports.MessageResponse
// @Failure 400 {object} ports.ErrorResponse
// @Failure 401 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /users/{uid}/addPersonToGroup [patch]
func (h *UserHandler) AddPersonToGroup(c echo.Context) error {
	var req ports.AddPersonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Email == "" {
		return entities.BadRequest("Please provide an email")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.AddPersonToGroup(c.Request().Context(), c.Param("uid"), req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "User added to group successfully"})
}

// GetEmailsForGroup handles listing collaborator emails
// @Summary List collaborator emails
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param uid path string true "Group owner ID"
// @Success 200 {object} map[string][]string
// @Failure 401 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /users/{uid}/getEmailsForGroup [get]
func (h *UserHandler) GetEmailsForGroup(c echo.Context) error {
	emails, err := h.userService.GetEmailsForGroup(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string][]string{"emails": emails})
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
