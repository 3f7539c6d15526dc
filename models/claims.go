package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of the tokens issued at signup and login.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}
