package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/playshelf/backend/internal/middleware"
)

// FeedHandler serves the playlists of the users the caller follows
type FeedHandler struct {
	playlists PlaylistService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(playlists PlaylistService) *FeedHandler {
	return &FeedHandler{playlists: playlists}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed, middleware.RequireActor)
}

// GetFeed returns followed users' playlists visible to the caller, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	page, limit := pagination(c)
	playlists, err := h.playlists.Feed(c.Request().Context(), middleware.ActorFrom(c), page, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{
		"playlists": playlists,
		"page":      page,
		"limit":     limit,
	})
}
