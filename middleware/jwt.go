package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Claims carries the authenticated user's numeric id alongside the registered
// claims; the email travels in the standard sub claim.
type Claims struct {
	UserID int `json:"id"`
	jwt.RegisteredClaims
}

// JWT returns an Echo middleware that validates the bearer token in the
// Authorization header. Bad signature, expiry, and malformed tokens all
// surface the same unauthorized response; a token missing its identity
// claims is treated as not found.
func JWT(key []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			token := strings.TrimPrefix(header, "Bearer ")

			claims := &Claims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}
			if claims.Subject == "" || claims.UserID == 0 {
				return echo.NewHTTPError(http.StatusNotFound, "Resource not found")
			}

			c.Set("email", claims.Subject)
			c.Set("user_id", claims.UserID)
			return next(c)
		}
	}
}
