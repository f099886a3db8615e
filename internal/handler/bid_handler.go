package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"usedauction-backend/internal/service"
)

type BidHandler struct {
	svc service.BidService
}

func NewBidHandler(svc service.BidService) *BidHandler {
	return &BidHandler{svc: svc}
}

type PlaceBidRequest struct {
	ItemID   uint64 `json:"itemId" validate:"required"`
	BidderID uint64 `json:"bidderId" validate:"required"`
	// No validation on the amount: zero, negative and below-price bids
	// all go through.
	BidAmount int `json:"bidAmount"`
}

func (h *BidHandler) PlaceBid(c echo.Context) error {
	var req PlaceBidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "itemId and bidderId are required"))
	}

	bid, err := h.svc.PlaceBid(c.Request().Context(), req.ItemID, req.BidderID, req.BidAmount)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to place bid"))
	}
	return c.JSON(http.StatusCreated, bid)
}

func (h *BidHandler) List(c echo.Context) error {
	bids, err := h.svc.GetAllBids(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch bids"))
	}
	return c.JSON(http.StatusOK, bids)
}

func (h *BidHandler) ListByItem(c echo.Context) error {
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid item id"))
	}
	bids, err := h.svc.GetBidsByItemID(c.Request().Context(), itemID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch bids"))
	}
	return c.JSON(http.StatusOK, bids)
}
