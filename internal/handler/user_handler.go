package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"usedauction-backend/internal/auth"
	"usedauction-backend/internal/middleware"
	"usedauction-backend/internal/model"
	"usedauction-backend/internal/service"
	"usedauction-backend/internal/storage"
)

type UserHandler struct {
	svc      service.UserService
	tokens   *auth.TokenProvider
	uploader *storage.Uploader
}

func NewUserHandler(svc service.UserService, tokens *auth.TokenProvider, uploader *storage.Uploader) *UserHandler {
	return &UserHandler{svc: svc, tokens: tokens, uploader: uploader}
}

type RegisterUserPayload struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register accepts multipart form data: a "user" JSON part plus an
// optional "profile_image" file. The image is uploaded to the bucket
// when one is configured and stored inline as base64 otherwise.
func (h *UserHandler) Register(c echo.Context) error {
	userJSON := c.FormValue("user")
	if userJSON == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "user part is required"))
	}
	var payload RegisterUserPayload
	if err := json.Unmarshal([]byte(userJSON), &payload); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user json"))
	}
	if payload.Email == "" || payload.Password == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "email and password are required"))
	}

	user := &model.User{
		Nickname: payload.Nickname,
		Email:    payload.Email,
		Password: payload.Password,
	}

	if fh, err := c.FormFile("profile_image"); err == nil && fh.Size > 0 {
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to read profile image"))
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to read profile image"))
		}
		if h.uploader.Enabled() {
			url, err := h.uploader.Upload(c.Request().Context(), "profiles", fh.Filename, fh.Header.Get("Content-Type"), data)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to upload profile image"))
			}
			user.ProfileImage = &url
		} else {
			encoded := base64.StdEncoding.EncodeToString(data)
			user.ProfileImage = &encoded
		}
	}

	created, err := h.svc.Add(c.Request().Context(), user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to create user"))
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "email and password are required"))
	}

	user, err := h.svc.GetByEmail(c.Request().Context(), req.Email)
	if err != nil || !h.svc.VerifyPassword(user.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "invalid email or password"))
	}

	token, err := h.tokens.CreateToken(user.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to issue token"))
	}
	return c.JSON(http.StatusOK, LoginResponse{User: user, Token: token})
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.GetAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch users"))
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	user, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch user"))
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Patch(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	current, ok := middleware.CurrentUser(c)
	if !ok || current.ID != id {
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "cannot modify another user"))
	}

	var patch service.UserPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	user, err := h.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update user"))
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	current, ok := middleware.CurrentUser(c)
	if !ok || current.ID != id {
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "cannot delete another user"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete user"))
	}
	return c.NoContent(http.StatusNoContent)
}
