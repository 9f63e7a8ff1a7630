package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/playshelf/backend/internal/models"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	auth AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	if h.auth.FirebaseEnabled() {
		g.POST("/firebase-login", h.FirebaseLogin)
	}
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Signup(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, result)
}

// SignIn handles local user authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Signin(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, result)
}

// FirebaseLogin exchanges a Firebase ID token for a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.FirebaseLogin(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, result)
}
