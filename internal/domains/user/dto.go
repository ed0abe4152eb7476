package user

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// ========================================
// AUTH DTOs
// ========================================

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.By(trimmedLength(1, 100)),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
			validation.Length(3, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(1, 72).Error("password must be at most 72 bytes"),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("email is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

// RegisterResponse - chỉ trả về id, name, email
type RegisterResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      RegisterResponse `json:"user"`
}

// ========================================
// PROFILE DTOs
// ========================================

// UserDTO - Public user representation (không có password hash)
type UserDTO struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Avatar     string      `json:"avatar"`
	Bio        string      `json:"bio"`
	IsVerified bool        `json:"isVerified"`
	Followers  []uuid.UUID `json:"followers"`
	Following  []uuid.UUID `json:"following"`
	Bookmarks  []uuid.UUID `json:"bookmarks"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// EditProfileRequest - PATCH /user/edit. Nil fields are left untouched.
type EditProfileRequest struct {
	ID     string  `json:"id"`
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Bio    *string `json:"bio,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

func (r EditProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID,
			validation.Required.Error("id is required"),
			is.UUID.Error("id must be a valid UUID"),
		),
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.By(trimmedLength(1, 100))),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.EmailFormat),
		validation.Field(&r.Bio, validation.By(maxLength(500))),
	)
}

// HasChanges reports whether at least one editable field was supplied.
func (r EditProfileRequest) HasChanges() bool {
	return r.Name != nil || r.Email != nil || r.Bio != nil || r.Avatar != nil
}

// ========================================
// RULE HELPERS
// ========================================

func trimmedLength(min, max int) validation.RuleFunc {
	return func(value interface{}) error {
		iv, _ := validation.Indirect(value)
		s, ok := iv.(string)
		if !ok {
			return nil
		}
		n := len([]rune(strings.TrimSpace(s)))
		if n < min || n > max {
			return validation.NewError("validation_length_out_of_range", "the length must be between {{.min}} and {{.max}}").
				SetParams(map[string]interface{}{"min": min, "max": max})
		}
		return nil
	}
}

func maxLength(max int) validation.RuleFunc {
	return func(value interface{}) error {
		iv, _ := validation.Indirect(value)
		s, _ := iv.(string)
		if len([]rune(s)) > max {
			return validation.NewError("validation_length_too_long", "the length must be no more than {{.max}}").
				SetParams(map[string]interface{}{"max": max})
		}
		return nil
	}
}
