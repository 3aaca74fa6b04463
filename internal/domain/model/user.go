package model

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleMentor  Role = "mentor"
	RoleStudent Role = "student"
)

// ParseRole accepts exactly one of the three known role tags.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleMentor, RoleStudent:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Brief is the public projection embedded in courses, enrollments and submissions.
func (u *User) Brief() *UserBrief {
	if u == nil {
		return nil
	}
	return &UserBrief{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

type UserBrief struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Actor is the authenticated identity a request runs as.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) Is(userID string) bool {
	return a.UserID != "" && a.UserID == userID
}

type Profile struct {
	UserID      string    `json:"user_id"`
	Bio         string    `json:"bio"`
	Avatar      *string   `json:"avatar,omitempty"`
	Country     string    `json:"country"`
	PhoneNumber string    `json:"phone_number"`
	UpdatedAt   time.Time `json:"updated_at"`
}
