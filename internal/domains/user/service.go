package user

import (
	"context"

	"bloghub-backend/internal/shared"
)

// Service định nghĩa business logic layer contract
type Service interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// Profile
	GetCurrent(ctx context.Context, identity shared.Identity) (*UserDTO, error)
	GetByID(ctx context.Context, id string) (*UserDTO, error)
	EditProfile(ctx context.Context, identity shared.Identity, req EditProfileRequest) (*UserDTO, error)
}
