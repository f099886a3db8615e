package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"google.golang.org/api/idtoken"

	"usedauction-backend/internal/auth"
	"usedauction-backend/internal/model"
	"usedauction-backend/internal/service"
)

// AuthHandler handles Google social login: the client sends a Google ID
// token, we verify it, find or create the user by email and hand back
// our own bearer token.
type AuthHandler struct {
	users    service.UserService
	tokens   *auth.TokenProvider
	audience string
	verify   func(ctx echo.Context, idToken, audience string) (*idtoken.Payload, error)
}

func NewAuthHandler(users service.UserService, tokens *auth.TokenProvider, audience string) *AuthHandler {
	return &AuthHandler{
		users:    users,
		tokens:   tokens,
		audience: audience,
		verify: func(c echo.Context, token, audience string) (*idtoken.Payload, error) {
			return idtoken.Validate(c.Request().Context(), token, audience)
		},
	}
}

type SocialLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type LoginResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (h *AuthHandler) SocialLogin(c echo.Context) error {
	var req SocialLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "idToken is required"))
	}

	payload, err := h.verify(c, req.IDToken, h.audience)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "invalid ID token"))
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "ID token has no email"))
	}

	ctx := c.Request().Context()
	user, err := h.users.GetByEmail(ctx, email)
	if err == service.ErrNotFound {
		user, err = h.users.Add(ctx, &model.User{Nickname: name, Email: email})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to resolve user"))
	}

	token, err := h.tokens.CreateToken(email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to issue token"))
	}
	return c.JSON(http.StatusOK, LoginResponse{User: user, Token: token})
}
