package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"usedauction-backend/internal/middleware"
	"usedauction-backend/internal/model"
	"usedauction-backend/internal/service"
	"usedauction-backend/internal/storage"
)

type ItemHandler struct {
	svc      service.ItemService
	uploader *storage.Uploader
}

func NewItemHandler(svc service.ItemService, uploader *storage.Uploader) *ItemHandler {
	return &ItemHandler{svc: svc, uploader: uploader}
}

type UpdateItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Region      string `json:"region"`
}

type WinningBidRequest struct {
	LastPrice int    `json:"lastPrice"`
	WinnerID  uint64 `json:"winnerId" validate:"required"`
}

func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.svc.GetAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch items"))
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	item, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch item"))
	}
	return c.JSON(http.StatusOK, item)
}

// Create takes a multipart form: title, description, price, endDateTime
// (ISO-8601), bidUnit, region, plus image URLs in itemImages and/or
// uploaded files in images. The listing always starts at lastPrice 0.
func (h *ItemHandler) Create(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "login required"))
	}

	price, err := strconv.Atoi(c.FormValue("price"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid price"))
	}
	bidUnit, err := strconv.Atoi(c.FormValue("bidUnit"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid bidUnit"))
	}
	endDateTime, err := time.Parse(time.RFC3339, c.FormValue("endDateTime"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid endDateTime"))
	}

	item := &model.Item{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       price,
		LastPrice:   0,
		BidUnit:     bidUnit,
		EndDateTime: endDateTime,
		Region:      c.FormValue("region"),
		OwnerID:     user.ID,
	}

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		pos := 0
		for _, url := range form.Value["itemImages"] {
			item.Images = append(item.Images, model.ItemImage{ImageURL: url, Position: pos})
			pos++
		}
		if h.uploader.Enabled() {
			for _, fh := range form.File["images"] {
				f, err := fh.Open()
				if err != nil {
					return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to read image"))
				}
				data, err := io.ReadAll(f)
				f.Close()
				if err != nil {
					return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to read image"))
				}
				url, err := h.uploader.Upload(c.Request().Context(), "items", fh.Filename, fh.Header.Get("Content-Type"), data)
				if err != nil {
					return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to upload image"))
				}
				item.Images = append(item.Images, model.ItemImage{ImageURL: url, Position: pos})
				pos++
			}
		}
	}

	created, err := h.svc.Add(c.Request().Context(), item)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to create item"))
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ItemHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if ok, herr := h.requireOwner(c, id); !ok {
		return herr
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	item, err := h.svc.Update(c.Request().Context(), id, req.Title, req.Description, req.Region)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update item"))
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) UpdateWinner(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if ok, herr := h.requireOwner(c, id); !ok {
		return herr
	}

	var req WinningBidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "winnerId is required"))
	}
	if err := h.svc.UpdateWinner(c.Request().Context(), id, req.WinnerID, req.LastPrice); err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update winner"))
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "winner updated"})
}

func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if ok, herr := h.requireOwner(c, id); !ok {
		return herr
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete item"))
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ItemHandler) CurrentPrice(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	price, err := h.svc.CurrentPrice(c.Request().Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch price"))
	}
	return c.JSON(http.StatusOK, price)
}

// CurrentPrice and RemainingTime return bare JSON scalars, matching the
// shape the frontend already consumes.
func (h *ItemHandler) RemainingTime(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	remaining, err := h.svc.RemainingTime(c.Request().Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch remaining time"))
	}
	// Whole minutes; negative once the auction is past its end time.
	return c.JSON(http.StatusOK, int64(remaining.Minutes()))
}

// requireOwner writes the error response itself; when ok is false the
// handler must return err as-is.
func (h *ItemHandler) requireOwner(c echo.Context, itemID uint64) (ok bool, err error) {
	user, authed := middleware.CurrentUser(c)
	if !authed {
		return false, c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "login required"))
	}
	item, err := h.svc.GetByID(c.Request().Context(), itemID)
	if err != nil {
		if err == service.ErrNotFound {
			return false, c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
		}
		return false, c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch item"))
	}
	if item.OwnerID != user.ID {
		return false, c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not the item owner"))
	}
	return true, nil
}
