package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID     uuid.UUID
	CustomerID *uuid.UUID
	Email      string
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued to shoppers.
type AccessTokenClaims struct {
	UserID     uuid.UUID  `json:"user_id"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	Email      string     `json:"email"`
	jwt.RegisteredClaims
}
