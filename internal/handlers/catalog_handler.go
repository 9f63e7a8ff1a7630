package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/playshelf/backend/internal/middleware"
	"github.com/anonto42/playshelf/backend/internal/models"
)

// CatalogHandler serves games and their reviews
type CatalogHandler struct {
	games   GameService
	reviews ReviewService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(games GameService, reviews ReviewService) *CatalogHandler {
	return &CatalogHandler{games: games, reviews: reviews}
}

// RegisterCatalogRoutes registers game and review routes
func (h *CatalogHandler) RegisterCatalogRoutes(g *echo.Group) {
	g.GET("/games", h.ListGames)
	g.GET("/games/:id", h.GetGame)
	g.POST("/games", h.CreateGame, middleware.RequireAdmin)

	g.GET("/games/:id/reviews", h.ListReviews)
	g.GET("/reviews/:id", h.GetReview)
	g.POST("/games/:id/reviews", h.CreateReview, middleware.RequireActor)
	g.PUT("/reviews/:id", h.UpdateReview, middleware.RequireActor)
	g.DELETE("/reviews/:id", h.DeleteReview, middleware.RequireActor)
}

func (h *CatalogHandler) ListGames(c echo.Context) error {
	page, limit := pagination(c)
	games, total, err := h.games.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{
		"games":      games,
		"pagination": pageMeta(page, limit, total),
	})
}

func (h *CatalogHandler) GetGame(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	game, err := h.games.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, game)
}

func (h *CatalogHandler) CreateGame(c echo.Context) error {
	var req models.CreateGameRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	game, err := h.games.Create(c.Request().Context(), middleware.ActorFrom(c), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, game)
}

func (h *CatalogHandler) ListReviews(c echo.Context) error {
	gameID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	reviews, err := h.reviews.ListByGame(c.Request().Context(), gameID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"reviews": reviews})
}

func (h *CatalogHandler) GetReview(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	review, err := h.reviews.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, review)
}

// CreateReview posts the caller's review of a game
func (h *CatalogHandler) CreateReview(c echo.Context) error {
	var req models.CreateReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	gameID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	review, err := h.reviews.Create(c.Request().Context(), middleware.ActorFrom(c), gameID, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, review)
}

// UpdateReview edits a review; its author or an admin may do so
func (h *CatalogHandler) UpdateReview(c echo.Context) error {
	var req models.UpdateReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	review, err := h.reviews.Update(c.Request().Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, review)
}

func (h *CatalogHandler) DeleteReview(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.reviews.Delete(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
