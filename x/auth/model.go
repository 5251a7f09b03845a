package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload. Subject carries the account id
// and ID carries the token's jti, which the logout denylist keys on.
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      *int   `json:"age"`
	Captcha  string `json:"captcha"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
