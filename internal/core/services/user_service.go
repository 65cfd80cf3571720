package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finvolt/banking-core/internal/apperrors"
	"github.com/finvolt/banking-core/internal/core/domain"
	portsrepo "github.com/finvolt/banking-core/internal/core/ports/repositories"
	portssvc "github.com/finvolt/banking-core/internal/core/ports/services"
	"github.com/finvolt/banking-core/internal/dto"
	"github.com/finvolt/banking-core/internal/middleware"
	"github.com/finvolt/banking-core/internal/utils"
	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned on a failed login. Deliberately does not
// distinguish unknown email from wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthConfig carries the token-issuing parameters.
type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string
}

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	cfg      AuthConfig
}

// NewUserService creates the registration/login service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, cfg AuthConfig) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register creates a new ordinary user.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Role:         domain.RoleUser,
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		}
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// Login verifies credentials and issues a bearer token carrying the user's
// role.
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiry, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.LoginResponse{Token: token, UserID: user.UserID}, nil
}
