package user

import (
	"time"

	"github.com/google/uuid"
)

// User là domain entity - ánh xạ 1:1 với bảng users trong DB
type User struct {
	// Identity
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`

	// Authentication. Một user có password hash hoặc third-party id (hoặc cả hai).
	PasswordHash *string `json:"-"`
	GoogleID     *string `json:"-"`
	GithubID     *string `json:"-"`

	// Profile
	Avatar     string `json:"avatar"`
	Bio        string `json:"bio"`
	IsVerified bool   `json:"isVerified"`

	// Social graph: relations only, no behaviour attached yet
	Followers []uuid.UUID `json:"followers"`
	Following []uuid.UUID `json:"following"`
	Bookmarks []uuid.UUID `json:"bookmarks"`

	// Timestamps
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasPassword reports whether password login is possible for this account.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// HasAuthPath kiểm tra user có ít nhất một cách đăng nhập
func (u *User) HasAuthPath() bool {
	return u.HasPassword() ||
		(u.GoogleID != nil && *u.GoogleID != "") ||
		(u.GithubID != nil && *u.GithubID != "")
}

// ToDTO converts entity sang representation an toàn để trả về client
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Avatar:     u.Avatar,
		Bio:        u.Bio,
		IsVerified: u.IsVerified,
		Followers:  nonNil(u.Followers),
		Following:  nonNil(u.Following),
		Bookmarks:  nonNil(u.Bookmarks),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func nonNil(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
