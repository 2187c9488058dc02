package models

import (
	"strings"
	"time"
)

// Role is the access level of an account
type Role string

const (
	RoleChild Role = "child"
	RoleAdmin Role = "admin"
)

// ParseRole returns the role named by s (case-insensitive)
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleChild:
		return RoleChild, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// User represents an account in the system
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin reports whether the account may use the admin menu
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
