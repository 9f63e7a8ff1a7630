package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
)

const (
	claimsKey = "user"
	actorKey  = "actor"
)

// OptionalJWT resolves the calling actor. A request without an Authorization
// header proceeds as the anonymous actor; a malformed or invalid token is
// rejected.
func OptionalJWT(secret string) echo.MiddlewareFunc {
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				c.Set(actorKey, models.Anonymous)
				return next(c)
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorized("invalid authorization header format")
			}

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !token.Valid || claims.UserID == 0 {
				return unauthorized("invalid token")
			}

			c.Set(claimsKey, claims)
			c.Set(actorKey, models.Actor{ID: claims.UserID, Role: claims.Role})
			return next(c)
		}
	}
}

// RequireActor rejects anonymous requests.
func RequireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ActorFrom(c).IsAnonymous() {
			return unauthorized("authentication required")
		}
		return next(c)
	}
}

// RequireAdmin rejects requests from anyone but administrators.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor := ActorFrom(c)
		if actor.IsAnonymous() {
			return unauthorized("authentication required")
		}
		if !actor.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.Envelope(apperrors.KindForbidden, "admin role required"))
		}
		return next(c)
	}
}

// ActorFrom returns the actor resolved by OptionalJWT, or the anonymous actor.
func ActorFrom(c echo.Context) models.Actor {
	if actor, ok := c.Get(actorKey).(models.Actor); ok {
		return actor
	}
	return models.Anonymous
}

func unauthorized(msg string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.Envelope(apperrors.KindUnauthorized, msg))
}
