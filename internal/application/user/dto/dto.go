package dto

import (
	"time"

	"github.com/qreserve/qreserve/internal/domain/user"
)

// UserDTO is the public profile. The password digest is never part of it.
type UserDTO struct {
	ID          uint                   `json:"id"`
	Email       string                 `json:"email"`
	FullName    string                 `json:"full_name"`
	Role        string                 `json:"role"`
	IsActive    bool                   `json:"is_active"`
	DarkMode    bool                   `json:"dark_mode"`
	Preferences map[string]interface{} `json:"preferences"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

type TokenDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type ListUsersResult struct {
	Users    []*UserDTO
	Total    int64
	Page     int
	PageSize int
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	prefs := u.Preferences()
	return &UserDTO{
		ID:          u.ID(),
		Email:       u.Email().String(),
		FullName:    u.FullName().String(),
		Role:        u.Role().String(),
		IsActive:    u.IsActive(),
		DarkMode:    prefs.DarkMode,
		Preferences: prefs.ToMap(),
		CreatedAt:   u.CreatedAt(),
		UpdatedAt:   u.UpdatedAt(),
	}
}
