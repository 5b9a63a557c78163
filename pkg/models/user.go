package models

import (
	"strings"
	"time"
)

type User struct {
	ID           int        `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FirstName    *string    `json:"firstName" db:"first_name"`
	LastName     *string    `json:"lastName" db:"last_name"`
	IsActive     bool       `json:"isActive" db:"is_active"`
	IsAdmin      bool       `json:"isAdmin" db:"is_admin"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	LastLoginAt  *time.Time `json:"lastLoginAt" db:"last_login_at"`
	Locations    *string    `json:"-" db:"locations"`
}

func (u *User) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   u.ID,
		ResourceType: "user",
	}
}

// LocationList normalizes the stored comma-separated locations string:
// split on comma, trim whitespace, drop empties.
func (u *User) LocationList() []string {
	list := []string{}
	if u.Locations == nil {
		return list
	}
	for _, loc := range strings.Split(*u.Locations, ",") {
		loc = strings.TrimSpace(loc)
		if loc != "" {
			list = append(list, loc)
		}
	}
	return list
}

// UserDTO is the API projection of a user with normalized locations.
type UserDTO struct {
	ID          int        `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   *string    `json:"firstName"`
	LastName    *string    `json:"lastName"`
	IsActive    bool       `json:"isActive"`
	IsAdmin     bool       `json:"isAdmin"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	Locations   []string   `json:"locations"`
}

func (u *User) DTO() UserDTO {
	return UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		IsAdmin:     u.IsAdmin,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
		Locations:   u.LocationList(),
	}
}

// SettingsUserDTO keeps the stored locations string unstructured, as
// the admin screens round-trip it verbatim.
type SettingsUserDTO struct {
	ID          int        `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   *string    `json:"firstName"`
	LastName    *string    `json:"lastName"`
	IsActive    bool       `json:"isActive"`
	IsAdmin     bool       `json:"isAdmin"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	Locations   *string    `json:"locations"`
}

func (u *User) SettingsDTO() SettingsUserDTO {
	return SettingsUserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		IsAdmin:     u.IsAdmin,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
		Locations:   u.Locations,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username  string  `json:"username" binding:"required"`
	Email     string  `json:"email" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type AuthResponse struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
	User    UserDTO   `json:"user"`
}

type CreateUserRequest struct {
	Username  string  `json:"username" binding:"required"`
	Email     string  `json:"email" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	IsAdmin   bool    `json:"isAdmin"`
	Locations *string `json:"locations"`
}

type UpdateUserRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	IsAdmin   *bool   `json:"isAdmin"`
	IsActive  *bool   `json:"isActive"`
	Locations *string `json:"locations"`
}
