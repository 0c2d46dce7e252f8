package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"rental_backend/internal/models"
	"rental_backend/internal/repositories"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserValidation    = errors.New("user data validation error")
	ErrUserAlreadyExists = errors.New("username or email already taken")
)

type CreateUserRequest struct {
	Username string  `json:"name" binding:"required"`
	Email    *string `json:"email"`
	Password string  `json:"password" binding:"required"`
	Role     string  `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Username *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

type UserService interface {
	CreateUser(req CreateUserRequest) (*models.User, error)
	GetUserByID(userID int64) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(userID int64, req UpdateUserRequest) (*models.User, error)
	DeleteUser(userID int64) error
}

type userService struct {
	userRepo repositories.UserRepository
	db       *sql.DB
}

// NewUserService creates a new instance of UserService.
func NewUserService(ur repositories.UserRepository, db *sql.DB) UserService {
	return &userService{userRepo: ur, db: db}
}

func hashPassword(password string) (string, error) {
	if len(password) < 6 {
		return "", fmt.Errorf("%w: password must be at least 6 characters", ErrUserValidation)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *userService) CreateUser(req CreateUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrUserValidation)
	}
	if !models.IsValidUserRole(req.Role) {
		return nil, fmt.Errorf("%w: role must be %q or %q", ErrUserValidation, models.RoleOwner, models.RoleStaff)
	}
	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         req.Role,
	}
	if _, err = s.userRepo.CreateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByID(userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) GetUsers() ([]models.User, error) {
	users, err := s.userRepo.GetUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

func (s *userService) UpdateUser(userID int64, req UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}

	if req.Username != nil {
		if strings.TrimSpace(*req.Username) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrUserValidation)
		}
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Role != nil {
		if !models.IsValidUserRole(*req.Role) {
			return nil, fmt.Errorf("%w: role must be %q or %q", ErrUserValidation, models.RoleOwner, models.RoleStaff)
		}
		user.Role = *req.Role
	}
	if req.Password != nil {
		hashed, hashErr := hashPassword(*req.Password)
		if hashErr != nil {
			return nil, hashErr
		}
		user.PasswordHash = hashed
	}

	if err = s.userRepo.UpdateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to update user in repository: %w", err)
	}
	return user, nil
}

func (s *userService) DeleteUser(userID int64) error {
	err := s.userRepo.DeleteUser(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
