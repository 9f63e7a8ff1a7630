package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/playshelf/backend/internal/middleware"
	"github.com/anonto42/playshelf/backend/internal/models"
)

// UserHandler handles HTTP requests related to the caller's profile
type UserHandler struct {
	auth    AuthService
	follows FollowService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(auth AuthService, follows FollowService) *UserHandler {
	return &UserHandler{auth: auth, follows: follows}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile, middleware.RequireActor)
	g.PUT("/profile", h.UpdateProfile, middleware.RequireActor)
	g.GET("/users/:id/follow-counts", h.GetFollowCounts)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.auth.Profile(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.auth.UpdateProfile(c.Request().Context(), middleware.ActorFrom(c), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

func (h *UserHandler) GetFollowCounts(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	counts, err := h.follows.Counts(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, counts)
}
