package usecase

import (
	"context"

	"vetgonow/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterTutorInput defines the data required to register a new tutor account.
type RegisterTutorInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a tutor to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// UserUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	RegisterTutor(ctx context.Context, input *RegisterTutorInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
