package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/playshelf/backend/internal/middleware"
	"github.com/anonto42/playshelf/backend/internal/models"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/reviews/:id/comments", h.ListComments)
	g.GET("/comments/:id", h.GetComment)
	g.POST("/reviews/:id/comments", h.CreateComment, middleware.RequireActor)
	g.PUT("/comments/:id", h.UpdateComment, middleware.RequireActor)
	g.DELETE("/comments/:id", h.DeleteComment, middleware.RequireActor)
	g.GET("/admin/comments/:id/audit", h.AuditComment, middleware.RequireAdmin)
}

// CreateComment creates a comment on a review, optionally as a reply
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	reviewID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	comment, err := h.comments.Create(c.Request().Context(), middleware.ActorFrom(c), reviewID, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, comment)
}

func (h *CommentHandler) ListComments(c echo.Context) error {
	reviewID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.comments.ListByReview(c.Request().Context(), reviewID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"comments": comments})
}

func (h *CommentHandler) GetComment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.comments.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, comment)
}

// UpdateComment edits a comment's content; only its author may do so
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	var req models.UpdateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	comment, err := h.comments.Update(c.Request().Context(), id, middleware.ActorFrom(c), req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, comment)
}

// DeleteComment tombstones a comment with replies and removes one without
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	result, err := h.comments.Delete(c.Request().Context(), id, middleware.ActorFrom(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, result)
}

func (h *CommentHandler) AuditComment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	audit, err := h.comments.Audit(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, audit)
}
