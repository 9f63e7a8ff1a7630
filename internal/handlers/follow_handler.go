package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/playshelf/backend/internal/middleware"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	follows FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(follows FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser, middleware.RequireActor)
	g.DELETE("/users/:id/follow", h.UnfollowUser, middleware.RequireActor)
	g.GET("/users/:id/followers", h.GetFollowers, middleware.RequireActor)
	g.GET("/users/:id/following", h.GetFollowing, middleware.RequireActor)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.follows.Follow(c.Request().Context(), middleware.ActorFrom(c), targetID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"following": true})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.follows.Unfollow(c.Request().Context(), middleware.ActorFrom(c), targetID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"following": false})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	users, err := h.follows.Followers(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"users": users})
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	users, err := h.follows.Following(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"users": users})
}
