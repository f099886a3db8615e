package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"usedauction-backend/internal/middleware"
	"usedauction-backend/internal/model"
	"usedauction-backend/internal/service"
)

type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type CreateRoomRequest struct {
	ItemID         uint64 `json:"itemId" validate:"required"`
	SellerID       uint64 `json:"sellerId" validate:"required"`
	SellerNickname string `json:"sellerNickname"`
	BuyerID        uint64 `json:"buyerId" validate:"required"`
	BuyerNickname  string `json:"buyerNickname"`
	ItemTitle      string `json:"itemTitle"`
	ItemImage      string `json:"itemImage"`
	FinalPrice     int    `json:"finalPrice"`
}

type SendMessageRequest struct {
	ChatRoomID  uint64 `json:"chatRoomId" validate:"required"`
	RecipientID uint64 `json:"recipientId"`
	Content     string `json:"content" validate:"required"`
}

func (h *ChatHandler) CreateRoom(c echo.Context) error {
	var req CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "itemId, sellerId and buyerId are required"))
	}

	room := &model.ChatRoom{
		ItemID:         req.ItemID,
		SellerID:       req.SellerID,
		SellerNickname: req.SellerNickname,
		BuyerID:        req.BuyerID,
		BuyerNickname:  req.BuyerNickname,
		ItemTitle:      req.ItemTitle,
		ItemImage:      req.ItemImage,
		FinalPrice:     req.FinalPrice,
	}
	created, err := h.svc.CreateRoom(c.Request().Context(), room)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to create chat room"))
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ChatHandler) ListRooms(c echo.Context) error {
	rooms, err := h.svc.GetRooms(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch chat rooms"))
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid room id"))
	}
	msgs, err := h.svc.GetMessages(c.Request().Context(), roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch messages"))
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "login required"))
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "chatRoomId and content are required"))
	}

	msg := &model.ChatMessage{
		ChatRoomID:  req.ChatRoomID,
		SenderID:    user.ID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
	}
	created, err := h.svc.SendMessage(c.Request().Context(), msg)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "chat room not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to send message"))
	}
	return c.JSON(http.StatusCreated, created)
}
