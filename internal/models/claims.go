package models

import "github.com/golang-jwt/jwt/v5"

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"`
}

// Principal is the authenticated actor passed into service-layer
// authorization decisions.
type Principal struct {
	UserID uint
	Role   string
}

// Principal extracts the actor identity from the claims.
func (c *UserClaims) Principal() Principal {
	return Principal{UserID: c.UserID, Role: c.Role}
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
