package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/repairdesk/repairs-service/internal/api/dto"
	"github.com/repairdesk/repairs-service/internal/service"
)

// AuthHandler exposes registration, login and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}

	result, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		AccountType: req.AccountType,
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		Address:     dto.StringValue(req.Address),
		Specialty:   dto.StringValue(req.Specialty),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.RegisterResponse{Token: result.Token, Staff: result.Staff})
}

// Login handles POST /login. Bad credentials still answer 200.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}

	result, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	if !result.Valid {
		return c.JSON(dto.LoginResponse{Valid: false})
	}
	staff := result.Staff
	return c.JSON(dto.LoginResponse{Valid: true, Token: result.Token, Staff: &staff})
}

// Logout handles POST /logout by revoking the presented token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.UserContext(), p.Claims); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
