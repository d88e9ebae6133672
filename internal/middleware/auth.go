package middleware

import (
	"net/http"
	"strings"

	"hanouti-api/internal/model"
	"hanouti-api/pkg/jwtutil"
	"hanouti-api/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AdminAuth validates the admin session token and requires the admin
// role. The token is read from the session cookie; a bearer
// Authorization header is accepted as a fallback for API clients.
// Every failure mode answers 401 with the same body so callers can't
// probe which part was wrong.
func AdminAuth(jwt *jwtutil.Util, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			tokenString := ""
			if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
				tokenString = cookie.Value
			} else if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					tokenString = parts[1]
				}
			}

			if tokenString == "" {
				log.Warn("Missing admin session token")
				return unauthorized(c)
			}

			claims, err := jwt.ValidateToken(tokenString)
			if err != nil {
				log.Warn("Invalid admin session token", zap.Error(err))
				return unauthorized(c)
			}

			if claims.Role != model.RoleAdmin {
				log.Warn("Session token without admin role",
					zap.String("email", claims.Email),
					zap.String("role", claims.Role))
				return unauthorized(c)
			}

			c.Set("admin_id", claims.UserID)
			c.Set("admin_email", claims.Email)

			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}
