package server

import (
	"time"

	"jotter/internal/apperr"
	"jotter/internal/database/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 72 * time.Hour

func (s *FiberServer) login(c *fiber.Ctx) error {
	var credentials dto.LoginCredentials
	if err := c.BodyParser(&credentials); err != nil {
		return respondError(c, apperr.Validation("AUTH_LOGIN_VALIDATION_ERROR", "Invalid request body"))
	}

	user, err := s.users.Authenticate(c.Context(), credentials.Username, credentials.Password)
	if err != nil {
		return respondError(c, err)
	}

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return respondError(c, apperr.Internal("AUTH_LOGIN_INTERNAL_ERROR", "Failed to log in"))
	}

	return respondSuccess(c, fiber.StatusOK, "AUTH_LOGIN_SUCCESS", "Logged in successfully",
		fiber.Map{"token": signed})
}
