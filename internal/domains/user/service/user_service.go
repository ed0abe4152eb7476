package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bloghub-backend/internal/domains/user"
	"bloghub-backend/internal/shared"
	"bloghub-backend/internal/shared/apperror"
	"bloghub-backend/internal/shared/utils"
)

// bcrypt cost = 12: balance giữa security và performance
const defaultBcryptCost = 12

// TokenIssuer is satisfied by *jwt.Manager.
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, email string) (string, time.Time, error)
}

// userService implement user.Service interface
type userService struct {
	repo       user.Repository
	tokens     TokenIssuer
	bcryptCost int
	now        func() time.Time
}

// NewUserService tạo service instance
func NewUserService(repo user.Repository, tokens TokenIssuer) user.Service {
	return &userService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: defaultBcryptCost,
		now:        time.Now,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register tạo user mới với password đã hash
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.RegisterResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	email := utils.NormalizeEmail(req.Email)

	// 2. BUSINESS RULE: email phải unique. The unique index still guards the race.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, user.ErrEmailAlreadyExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("check email exists: %w", err)
	}

	// 3. HASH PASSWORD
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	passwordHash := string(hash)

	// 4. CREATE USER ENTITY
	now := s.now().UTC()
	newUser := &user.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: &passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 5. PERSIST
	if err := s.repo.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user.RegisterResponse{
		ID:    newUser.ID,
		Name:  newUser.Name,
		Email: newUser.Email,
	}, nil
}

// Login xác thực user và trả về JWT
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	u, err := s.repo.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// Third-party only accounts have no hash to compare against
	if !u.HasPassword() {
		return nil, user.ErrPasswordNotSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &user.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: user.RegisterResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		},
	}, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetCurrent(ctx context.Context, identity shared.Identity) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*user.UserDTO, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, user.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

// EditProfile cập nhật name/email/bio/avatar của chính caller
func (s *userService) EditProfile(ctx context.Context, identity shared.Identity, req user.EditProfileRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}
	if !req.HasChanges() {
		return nil, user.ErrNothingToUpdate
	}

	targetID := uuid.MustParse(req.ID) // validated above
	if targetID != identity.UserID {
		return nil, user.ErrForbiddenEdit
	}

	u, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Avatar != nil {
		u.Avatar = strings.TrimSpace(*req.Avatar)
	}
	if req.Email != nil {
		email := utils.NormalizeEmail(*req.Email)
		if email != u.Email {
			existing, err := s.repo.FindByEmail(ctx, email)
			switch {
			case err == nil && existing.ID != u.ID:
				return nil, user.ErrEmailAlreadyExists
			case err != nil && !errors.Is(err, user.ErrUserNotFound):
				return nil, fmt.Errorf("check email exists: %w", err)
			}
		}
		u.Email = email
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		if errors.Is(err, user.ErrUserNotFound) || errors.Is(err, user.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	dto := u.ToDTO()
	return &dto, nil
}
