package utils

import (
	"os"
	"time"

	"github.com/kataras/iris/v12/middleware/jwt"
)

// AccessToken carries the admin identity for the back-office party.
// Authentication itself is an external concern; the server only signs
// and verifies these claims.
type AccessToken struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func CreateAccessToken(username, role string) (string, error) {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 24*time.Hour)

	token, err := signer.Sign(AccessToken{
		Username: username,
		Role:     role,
	})
	if err != nil {
		return "", err
	}
	return string(token), nil
}
