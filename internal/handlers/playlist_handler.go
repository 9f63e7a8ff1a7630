package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/playshelf/backend/internal/middleware"
	"github.com/anonto42/playshelf/backend/internal/models"
)

// PlaylistHandler handles HTTP requests related to playlists
type PlaylistHandler struct {
	playlists PlaylistService
}

// NewPlaylistHandler creates a new PlaylistHandler
func NewPlaylistHandler(playlists PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

// RegisterPlaylistRoutes registers playlist-related routes
func (h *PlaylistHandler) RegisterPlaylistRoutes(g *echo.Group) {
	g.GET("/playlists/:id", h.GetPlaylist)
	g.GET("/users/:id/playlists", h.ListUserPlaylists)
	g.POST("/playlists", h.CreatePlaylist, middleware.RequireActor)
	g.PUT("/playlists/:id", h.UpdatePlaylist, middleware.RequireActor)
	g.DELETE("/playlists/:id", h.DeletePlaylist, middleware.RequireActor)
	g.POST("/playlists/:id/games/:game_id", h.AddGame, middleware.RequireActor)
	g.DELETE("/playlists/:id/games/:game_id", h.RemoveGame, middleware.RequireActor)
}

func (h *PlaylistHandler) CreatePlaylist(c echo.Context) error {
	var req models.CreatePlaylistRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	playlist, err := h.playlists.Create(c.Request().Context(), middleware.ActorFrom(c), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, playlist)
}

// GetPlaylist returns a playlist with its games and like summary if the caller may view it
func (h *PlaylistHandler) GetPlaylist(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.playlists.Get(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, detail)
}

func (h *PlaylistHandler) ListUserPlaylists(c echo.Context) error {
	ownerID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	playlists, err := h.playlists.ListByOwner(c.Request().Context(), middleware.ActorFrom(c), ownerID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"playlists": playlists})
}

func (h *PlaylistHandler) UpdatePlaylist(c echo.Context) error {
	var req models.UpdatePlaylistRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	playlist, err := h.playlists.Update(c.Request().Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, playlist)
}

func (h *PlaylistHandler) DeletePlaylist(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.playlists.Delete(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlaylistHandler) AddGame(c echo.Context) error {
	id, gameID, err := playlistGameIDs(c)
	if err != nil {
		return err
	}
	if err := h.playlists.AddGame(c.Request().Context(), middleware.ActorFrom(c), id, gameID); err != nil {
		return err
	}
	return respond(c, http.StatusCreated, echo.Map{"playlist_id": id, "game_id": gameID})
}

func (h *PlaylistHandler) RemoveGame(c echo.Context) error {
	id, gameID, err := playlistGameIDs(c)
	if err != nil {
		return err
	}
	if err := h.playlists.RemoveGame(c.Request().Context(), middleware.ActorFrom(c), id, gameID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func playlistGameIDs(c echo.Context) (uint, uint, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	gameID, err := parseID(c, "game_id")
	if err != nil {
		return 0, 0, err
	}
	return id, gameID, nil
}
