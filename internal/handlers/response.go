package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
)

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func kindOfStatus(status int) apperrors.Kind {
	switch status {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return apperrors.KindValidation
	case http.StatusUnauthorized:
		return apperrors.KindUnauthorized
	case http.StatusForbidden:
		return apperrors.KindForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return apperrors.KindNotFound
	case http.StatusConflict:
		return apperrors.KindConflict
	default:
		return apperrors.KindInternal
	}
}

// ErrorHandler renders every error returned by a handler or middleware as
// {"success": false, "error": {"kind", "message"}}. Internal failures are
// logged and their details hidden from the client.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("failed to write error response", zap.Error(err))
		}
	}
}

func render(err error) (int, any) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return he.Code, apperrors.Envelope(kindOfStatus(he.Code), msg)
		}
		return he.Code, he.Message
	}
	kind := apperrors.KindOf(err)
	return StatusOf(kind), apperrors.Envelope(kind, apperrors.MessageOf(err))
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.Newf(apperrors.KindValidation, "invalid %s", name)
	}
	return uint(id), nil
}

// bind decodes the request body and validates it before any store access.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Wrap(apperrors.KindValidation, err, "invalid request payload")
	}
	return c.Validate(req)
}

func pagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return page, limit
}

func pageMeta(page, limit int, total int64) echo.Map {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return echo.Map{
		"currentPage":     page,
		"totalPages":      totalPages,
		"totalItems":      total,
		"itemsPerPage":    limit,
		"hasNextPage":     page < totalPages,
		"hasPreviousPage": page > 1,
	}
}
