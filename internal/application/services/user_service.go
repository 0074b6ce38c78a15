package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/promanage/core/internal/domain/entities"
	"github.com/promanage/core/internal/infrastructure/logger"
	"github.com/promanage/core/internal/ports"
)

const minPasswordLength = 6

// UserService handles registration, login, profiles and groups
type UserService struct {
	userRepo ports.UserRepository
	auth     *AuthService
	metrics  ports.Metrics
	logger   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, auth *AuthService, metrics ports.Metrics, logger *logger.Logger) *UserService {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
		metrics:  metrics,
		logger:   logger.WithComponent("user_service"),
	}
}

// Register creates a new account and signs the caller in
func (s *UserService) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	if name == "" || email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, entities.BadRequest("Please provide all values")
	}

	if req.Password != req.ConfirmPassword {
		return nil, entities.BadRequest("Passwords do not match")
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, entities.BadRequest("Email already exists")
	}
	if !errors.Is(err, entities.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if len(req.Password) < minPasswordLength {
		return nil, entities.BadRequest(fmt.Sprintf("Password must be at least %d characters long", minPasswordLength))
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			return nil, entities.BadRequest("Email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.UserRegistered()
	s.logger.LogUserAction(user.ID.Hex(), "register", nil)

	return s.authResponse(user)
}

// Login verifies credentials. Unknown email and wrong password fail identically.
func (s *UserService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, entities.BadRequest("Please provide your email and password to login")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			s.auth.VerifyDummyPassword(req.Password)
			s.logger.Warnw("Login attempt with unknown email")
			return nil, entities.Unauthenticated("Incorrect email/password")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.auth.VerifyPassword(req.Password, user.PasswordHash) {
		s.logger.Warnw("Login attempt with invalid password", "user_id", user.ID.Hex())
		return nil, entities.Unauthenticated("Incorrect email/password")
	}

	s.logger.LogUserAction(user.ID.Hex(), "login", nil)

	return s.authResponse(user)
}

// Logout is stateless: tokens are not tracked server-side.
func (s *UserService) Logout() string {
	return "Logged out successfully"
}

func (s *UserService) authResponse(user *entities.User) (*ports.AuthResponse, error) {
	identity := user.PublicIdentity()
	token, err := s.auth.IssueToken(identity)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResponse{User: identity, Token: token}, nil
}

// GetUser retrieves a user by id
func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// ListUsers returns every user without password hashes
func (s *UserService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for _, user := range users {
		user.PasswordHash = ""
	}

	return users, nil
}

// AddPersonToGroup adds the user with the given email to the owner's group
func (s *UserService) AddPersonToGroup(ctx context.Context, ownerID, email string) error {
	owner, err := s.findUser(ctx, ownerID)
	if err != nil {
		return err
	}

	member, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return entities.NotFound("User not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if owner.HasGroupMember(member.ID) {
		return entities.BadRequest("User already in group")
	}

	if owner.ID == member.ID {
		return entities.BadRequest("Cannot add yourself")
	}

	if err := s.userRepo.AddGroupMember(ctx, owner.ID, member.ID); err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}

	s.logger.LogUserAction(owner.ID.Hex(), "add_group_member", map[string]interface{}{
		"member_id": member.ID.Hex(),
	})

	return nil
}

// GetEmailsForGroup lists the emails of the owner's group, in insertion order
func (s *UserService) GetEmailsForGroup(ctx context.Context, ownerID string) ([]string, error) {
	owner, err := s.findUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	members, err := s.userRepo.GetByIDs(ctx, owner.GroupPeople)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}

	emails := make([]string, 0, len(members))
	for _, m := range members {
		emails = append(emails, m.Email)
	}

	return emails, nil
}

// UpdateUser applies each profile field that is present and actually changed.
// It returns the acknowledgment message for the client.
func (s *UserService) UpdateUser(ctx context.Context, ownerID string, req ports.UpdateUserRequest) (string, error) {
	user, err := s.findUser(ctx, ownerID)
	if err != nil {
		return "", err
	}

	var update ports.UserUpdate

	if email := strings.TrimSpace(req.UpdatedEmail); email != "" && email != user.Email {
		existing, err := s.userRepo.GetByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != user.ID:
			return "", entities.BadRequest("Email already exists")
		case err != nil && !errors.Is(err, entities.ErrUserNotFound):
			return "", fmt.Errorf("failed to check email: %w", err)
		}
		update.Email = &email
	}

	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return "", entities.BadRequest("Name cannot be empty")
		}
		if name != user.Name {
			update.Name = &name
		}
	}

	if req.NewPassword != "" {
		if req.OldPassword == "" {
			return "", entities.BadRequest("Please provide old password to update")
		}
		if !s.auth.VerifyPassword(req.OldPassword, user.PasswordHash) {
			return "", entities.BadRequest("Incorrect old password")
		}
		if len(req.NewPassword) < minPasswordLength {
			return "", entities.BadRequest(fmt.Sprintf("Password must be at least %d characters long", minPasswordLength))
		}
		hash, err := s.auth.HashPassword(req.NewPassword)
		if err != nil {
			return "", err
		}
		update.PasswordHash = &hash
	}

	if update.IsEmpty() {
		return "No changes detected", nil
	}

	if err := s.userRepo.Update(ctx, user.ID, update); err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			return "", entities.BadRequest("Email already exists")
		}
		if errors.Is(err, entities.ErrUserNotFound) {
			return "", entities.NotFound("User not found")
		}
		return "", fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.LogUserAction(user.ID.Hex(), "update_profile", map[string]interface{}{
		"email_changed":    update.Email != nil,
		"name_changed":     update.Name != nil,
		"password_changed": update.PasswordHash != nil,
	})

	return "User updated successfully", nil
}

func (s *UserService) findUser(ctx context.Context, id string) (*entities.User, error) {
	userID, err := parseID(id, "User not found")
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

type nopMetrics struct{}

func (nopMetrics) UserRegistered() {}
func (nopMetrics) TaskCreated()    {}
func (nopMetrics) TaskDeleted()    {}
