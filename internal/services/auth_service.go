package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/repository"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrSetupCompleted       = errors.New("setup already completed")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AuthService handles login and first-run setup.
type AuthService struct {
	userRepo  repository.UserRepository
	adminRole string
}

// NewAuthService creates a new AuthService. adminRole is assigned to the
// account created by Setup.
func NewAuthService(userRepo repository.UserRepository, adminRole string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		adminRole: adminRole,
	}
}

// SetupInput represents the first administrator account.
type SetupInput struct {
	FirstName            string `json:"first_name" form:"first_name" validate:"required,max=255"`
	LastName             string `json:"last_name" form:"last_name" validate:"required,max=255"`
	Email                string `json:"email" form:"email" validate:"required,email,max=255"`
	Password             string `json:"password" form:"password" validate:"required,max=72"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" validate:"required,eqfield=Password"`
	Business             string `json:"business" form:"business" validate:"max=255"`
}

// SetupRequired reports whether no user exists yet.
func (s *AuthService) SetupRequired() (bool, error) {
	count, err := s.userRepo.Count()
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return count == 0, nil
}

// Setup creates the first administrator. It fails once any user exists.
func (s *AuthService) Setup(ctx context.Context, input SetupInput) (*models.User, error) {
	required, err := s.SetupRequired()
	if err != nil {
		return nil, err
	}
	if !required {
		return nil, ErrSetupCompleted
	}

	input.Email = normalizeEmail(input.Email)
	verr := validateStruct(input)
	if _, failed := verr.Fields["password"]; !failed {
		if err := utils.CheckPasswordStrength(input.Password, input.Email, input.FirstName, input.LastName); err != nil {
			verr.Add("password", err.Error())
		}
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        input.Email,
		Business:     strings.TrimSpace(input.Business),
		PasswordHash: hash,
	}
	if err := s.userRepo.CreateWithRole(user, s.adminRole); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateUser, err)
	}

	zerolog.Ctx(ctx).Info().Uint64("user_id", user.ID).Msg("initial administrator created")
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.BurnTokenCheck(input.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		zerolog.Ctx(ctx).Warn().Uint64("user_id", user.ID).Msg("failed login attempt")
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID with roles and permissions.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindWithGrants(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
