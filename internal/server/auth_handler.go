package server

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/auth"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
)

// LoginRequest carries the credentials for the login route.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse returns the issued token plus an account summary.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

// UserSummary is the public shape of an account.
type UserSummary struct {
	ID                 string `json:"id"`
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	RegistrationNumber string `json:"registration_number"`
	Role               string `json:"role"`
}

func summarize(user *model.User) UserSummary {
	return UserSummary{
		ID:                 user.ID.String(),
		FullName:           user.FullName,
		Email:              user.Email,
		RegistrationNumber: user.RegistrationNumber,
		Role:               user.Role,
	}
}

func handleLogin(authenticator *auth.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return badBody(err)
		}
		if err := req.Validate(); err != nil {
			// Malformed credentials never reach the credential
			// check, but the response stays indistinguishable from a
			// failed one.
			return auth.ErrInvalidCredentials
		}

		token, user, err := authenticator.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return err
		}

		return c.JSON(LoginResponse{
			Message: "Login successful",
			Token:   token,
			User:    summarize(user),
		})
	}
}

func handlePing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "pong"})
}
