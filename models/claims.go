package models

import "github.com/golang-jwt/jwt/v5"

// AppClaims represents the claims in an access token issued by the auth
// layer. Sub carries the userId every core operation is scoped by.
type AppClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}
