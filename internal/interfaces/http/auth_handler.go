package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spekmx/cotizador-api/internal/application/auth"
	"github.com/spekmx/cotizador-api/internal/application/dto"
)

// AuthHandler maneja registro e inicio de sesión.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register crea un usuario nuevo.
// POST /api/auth/register
// @Summary Registrar usuario
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} dto.UserResponse
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if !validateBody(c, &in) {
		return nil
	}
	user, err := h.uc.Register(in.Email, in.Password, in.Name)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UserResponse{
		ID: user.ID, Email: user.Email, Name: user.Name,
	})
}

// Login valida credenciales y devuelve un token.
// POST /api/auth/login
// @Summary Iniciar sesión
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} dto.LoginResponse
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if !validateBody(c, &in) {
		return nil
	}
	token, user, err := h.uc.Login(in.Email, in.Password)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.LoginResponse{
		Token: token,
		User:  dto.UserResponse{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}
