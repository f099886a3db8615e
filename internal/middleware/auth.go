package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"usedauction-backend/internal/auth"
	"usedauction-backend/internal/model"
	"usedauction-backend/internal/service"
)

type AuthMiddleware struct {
	tokens *auth.TokenProvider
	users  service.UserService
}

func NewAuthMiddleware(tokens *auth.TokenProvider, users service.UserService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// RequireAuth validates the bearer token and loads the user it names into
// the request context under "user".
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := auth.ResolveToken(c.Request())
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		if err := m.tokens.Validate(token); err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		email, err := m.tokens.Email(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		user, err := m.users.GetByEmail(c.Request().Context(), email)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown_user"})
		}
		c.Set("user", user)
		return next(c)
	}
}

// CurrentUser returns the authenticated user stashed by RequireAuth.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get("user").(*model.User)
	return user, ok
}
