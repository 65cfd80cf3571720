package services

import (
	"context"

	"github.com/finvolt/banking-core/internal/core/domain"
	"github.com/finvolt/banking-core/internal/dto"
)

// UserSvcFacade covers registration and login.
type UserSvcFacade interface {
	// Register creates a new user with a bcrypt-hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login verifies credentials and issues a signed bearer token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
