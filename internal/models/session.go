package models

import "github.com/golang-jwt/jwt/v4"

// SessionClaims are the claims of the session cookie issued after a Firebase login
type SessionClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// CreateSessionRequest carries the Firebase ID token obtained by the client
type CreateSessionRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// DeleteAccountRequest is the JSON form of the self-service delete request
type DeleteAccountRequest struct {
	UserID string `json:"userId" validate:"required"`
}
