package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/healthhive/internal/api/dto"
	"github.com/spec-kit/healthhive/internal/service"
	apperrors "github.com/spec-kit/healthhive/pkg/util/errorutil"
)

// AuthHandler exposes the registration and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateRegister(req); err != nil {
		return err
	}

	user, tokens, err := h.auth.Register(c.Context(), service.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		Username:       req.Username,
		Phone:          strings.TrimSpace(req.Phone),
		Location:       req.Location,
		RoleID:         req.Role,
		LicenseNumber:  req.LicenseNumber,
		Specialization: req.Specialization,
		PharmacyName:   req.PharmacyName,
		VehicleNumber:  req.VehicleNumber,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Status:  http.StatusCreated,
		Message: "User registered successfully",
		User:    dto.NewUserSummary(user),
		Tokens:  tokens,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Identifier == "" || req.Password == "" {
		return apperrors.NewValidationError("identifier and password required", nil)
	}

	user, tokens, err := h.auth.Login(c.Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Status:  http.StatusOK,
		Message: "Logged in successfully",
		User:    dto.NewUserSummary(user),
		Tokens:  tokens,
	})
}

func validateRegister(req dto.RegisterRequest) error {
	if req.Email == "" || req.Password == "" || req.Username == "" || req.Phone == "" || req.Role == 0 {
		return apperrors.NewValidationError("email, password, username, phone, role required", nil)
	}
	if len(req.Password) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters long", nil)
	}
	if len(strings.TrimSpace(req.Phone)) < 10 {
		return apperrors.NewValidationError("phone number must be at least 10 characters", nil)
	}
	return nil
}
