package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"usedauction-backend/internal/model"
	"usedauction-backend/internal/repository"
)

type ChatService interface {
	CreateRoom(ctx context.Context, room *model.ChatRoom) (*model.ChatRoom, error)
	GetRooms(ctx context.Context) ([]model.ChatRoom, error)
	GetMessages(ctx context.Context, roomID uint64) ([]model.ChatMessage, error)
	SendMessage(ctx context.Context, msg *model.ChatMessage) (*model.ChatMessage, error)
}

type chatService struct {
	repo repository.ChatRepository
	now  func() time.Time
}

func NewChatService(repo repository.ChatRepository) ChatService {
	return &chatService{repo: repo, now: time.Now}
}

func (s *chatService) CreateRoom(ctx context.Context, room *model.ChatRoom) (*model.ChatRoom, error) {
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *chatService) GetRooms(ctx context.Context) ([]model.ChatRoom, error) {
	return s.repo.FindRooms(ctx)
}

func (s *chatService) GetMessages(ctx context.Context, roomID uint64) ([]model.ChatMessage, error) {
	return s.repo.FindMessagesByRoom(ctx, roomID)
}

// SendMessage persists the message and then refreshes the room's
// last-message summary, same two-step shape as placing a bid.
func (s *chatService) SendMessage(ctx context.Context, msg *model.ChatMessage) (*model.ChatMessage, error) {
	msg.Timestamp = s.now()
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	room, err := s.repo.FindRoomByID(ctx, msg.ChatRoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	room.LastMessage = msg.Content
	t := msg.Timestamp
	room.LastMessageTime = &t
	if err := s.repo.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return msg, nil
}
