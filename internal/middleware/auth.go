package middleware

import (
	"net/http"
	"strings"

	"nestify/internal/model"
	"nestify/pkg/database"
	"nestify/pkg/jwtutil"
	"nestify/pkg/logger"
	"nestify/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const userContextKey = "current_user"

// AuthMiddleware validates the JWT token from the Authorization header
// and loads the authenticated user from the database
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		var user model.User
		result := database.GetDB().First(&user, claims.UserID)
		if result.Error != nil || !user.IsActive {
			log.Error("Authenticated user not found or inactive", zap.Uint("user_id", claims.UserID))
			prometheus.RecordAuthError("user_not_found")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found or inactive"})
		}

		c.Set(userContextKey, &user)
		return next(c)
	}
}

// RequireRole restricts a route to users holding one of the given
// roles. Must run after AuthMiddleware.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			logger.FromContext(c).Warn("Role check failed",
				zap.String("role", user.Role),
				zap.Strings("required", roles))
			return c.JSON(http.StatusForbidden, echo.Map{
				"error": "access denied, required roles: " + strings.Join(roles, ", "),
			})
		}
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware,
// or nil outside an authenticated route
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
