package user

import "bloghub-backend/internal/shared/apperror"

// Error codes (USER001 - USER099)
var (
	ErrUserNotFound       = apperror.NotFound("USER001", "User not found")
	ErrEmailAlreadyExists = apperror.Conflict("USER002", "Email is already registered")
	ErrInvalidCredentials = apperror.Authentication("USER003", "Invalid email or password")
	ErrPasswordNotSet     = apperror.Authentication("USER004", "This account signs in with a third-party provider")
	ErrForbiddenEdit      = apperror.Forbidden("USER005", "You can only edit your own profile")
	ErrNothingToUpdate    = apperror.Validation("USER006", "Provide at least one of name, email, bio or avatar")
	ErrInvalidUserID      = apperror.InvalidArgument(apperror.CodeInvalidID, "Invalid user id")
	ErrNoAuthPath         = apperror.Validation("USER007", "A password or a third-party identity is required")
)
