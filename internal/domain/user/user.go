package user

import (
	"fmt"
	"time"

	vo "github.com/qreserve/qreserve/internal/domain/user/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/biztime"
)

// User is an account. The password digest never leaves the domain and
// persistence layers.
type User struct {
	id             uint
	email          vo.Email
	fullName       vo.FullName
	hashedPassword string
	role           authorization.UserRole
	isActive       bool
	preferences    Preferences
	createdAt      time.Time
	updatedAt      time.Time
}

// NewUser creates an active account. role defaults to end_user when empty.
func NewUser(email vo.Email, fullName vo.FullName, hashedPassword string, role authorization.UserRole) (*User, error) {
	if email.IsZero() {
		return nil, fmt.Errorf("email is required")
	}
	if fullName.String() == "" {
		return nil, fmt.Errorf("full name is required")
	}
	if hashedPassword == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if role == "" {
		role = authorization.RoleEndUser
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := biztime.NowUTC()
	return &User{
		email:          email,
		fullName:       fullName,
		hashedPassword: hashedPassword,
		role:           role,
		isActive:       true,
		preferences:    DefaultPreferences(),
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(
	id uint,
	email vo.Email,
	fullName vo.FullName,
	hashedPassword string,
	role authorization.UserRole,
	isActive bool,
	preferences Preferences,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		id:             id,
		email:          email,
		fullName:       fullName,
		hashedPassword: hashedPassword,
		role:           role,
		isActive:       isActive,
		preferences:    preferences,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Email() vo.Email {
	return u.email
}

func (u *User) FullName() vo.FullName {
	return u.fullName
}

func (u *User) HashedPassword() string {
	return u.hashedPassword
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

func (u *User) IsActive() bool {
	return u.isActive
}

func (u *User) Preferences() Preferences {
	return u.preferences
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) ChangeEmail(email vo.Email) {
	if u.email.Equals(email) {
		return
	}
	u.email = email
	u.touch()
}

func (u *User) Rename(fullName vo.FullName) {
	if u.fullName == fullName {
		return
	}
	u.fullName = fullName
	u.touch()
}

func (u *User) ChangePassword(hashedPassword string) error {
	if hashedPassword == "" {
		return fmt.Errorf("password hash is required")
	}
	u.hashedPassword = hashedPassword
	u.touch()
	return nil
}

func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	if u.role == role {
		return nil
	}
	u.role = role
	u.touch()
	return nil
}

func (u *User) Activate() {
	if u.isActive {
		return
	}
	u.isActive = true
	u.touch()
}

func (u *User) Deactivate() {
	if !u.isActive {
		return
	}
	u.isActive = false
	u.touch()
}

func (u *User) UpdatePreferences(p Preferences) {
	u.preferences = p
	u.touch()
}

func (u *User) touch() {
	u.updatedAt = biztime.NowUTC()
}
