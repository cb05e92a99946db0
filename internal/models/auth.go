package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole identifies the access level encoded in a token.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
)

// JWTClaims carries identity information inside access tokens.
type JWTClaims struct {
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest describes the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	Email       string    `json:"email"`
	Role        UserRole  `json:"role"`
}
