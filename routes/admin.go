package routes

import (
	"os"

	"github.com/DevrimSalis/HasatEmlak/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
)

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin checks the configured back-office credential (username
// plus bcrypt hash from the environment) and issues an access token.
// The credential store is deliberately external to this server.
func AdminLogin(ctx iris.Context) {
	var input loginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	passwordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if username == "" || passwordHash == "" {
		utils.JSONError(ctx, iris.StatusServiceUnavailable, "auth_unconfigured", "admin credentials are not configured")
		return
	}

	if input.Username != username ||
		bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(input.Password)) != nil {
		utils.JSONError(ctx, iris.StatusUnauthorized, "invalid_credentials", "username or password is incorrect")
		return
	}

	token, err := utils.CreateAccessToken(input.Username, "admin")
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"accessToken": token})
}
