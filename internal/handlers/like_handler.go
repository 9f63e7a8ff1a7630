package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/playshelf/backend/internal/middleware"
	"github.com/anonto42/playshelf/backend/internal/models"
)

// LikeHandler serves the like ledgers of comments, reviews and playlists
type LikeHandler struct {
	likes LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likes LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	for _, kind := range []models.TargetKind{models.TargetComment, models.TargetReview, models.TargetPlaylist} {
		path := "/" + string(kind) + "s/:id/likes"
		g.GET(path, h.GetLikes(kind))
		g.POST(path, h.Like(kind), middleware.RequireActor)
		g.DELETE(path, h.Unlike(kind), middleware.RequireActor)
	}
}

func (h *LikeHandler) Like(kind models.TargetKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		if err := h.likes.Like(c.Request().Context(), middleware.ActorFrom(c), kind, id); err != nil {
			return err
		}
		return h.status(c, kind, id, http.StatusCreated)
	}
}

func (h *LikeHandler) Unlike(kind models.TargetKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		if err := h.likes.Unlike(c.Request().Context(), middleware.ActorFrom(c), kind, id); err != nil {
			return err
		}
		return h.status(c, kind, id, http.StatusOK)
	}
}

func (h *LikeHandler) GetLikes(kind models.TargetKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		return h.status(c, kind, id, http.StatusOK)
	}
}

func (h *LikeHandler) status(c echo.Context, kind models.TargetKind, id uint, code int) error {
	status, err := h.likes.Status(c.Request().Context(), middleware.ActorFrom(c), kind, id)
	if err != nil {
		return err
	}
	return respond(c, code, status)
}
