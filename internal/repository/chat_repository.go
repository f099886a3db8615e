package repository

import (
	"context"

	"gorm.io/gorm"

	"usedauction-backend/internal/model"
)

type ChatRepository interface {
	CreateRoom(ctx context.Context, room *model.ChatRoom) error
	FindRoomByID(ctx context.Context, id uint64) (*model.ChatRoom, error)
	FindRooms(ctx context.Context) ([]model.ChatRoom, error)
	SaveRoom(ctx context.Context, room *model.ChatRoom) error
	CreateMessage(ctx context.Context, msg *model.ChatMessage) error
	FindMessagesByRoom(ctx context.Context, roomID uint64) ([]model.ChatMessage, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateRoom(ctx context.Context, room *model.ChatRoom) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *chatRepository) FindRoomByID(ctx context.Context, id uint64) (*model.ChatRoom, error) {
	var room model.ChatRoom
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *chatRepository) FindRooms(ctx context.Context) ([]model.ChatRoom, error) {
	var rooms []model.ChatRoom
	if err := r.db.WithContext(ctx).Order("last_message_time DESC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *chatRepository) SaveRoom(ctx context.Context, room *model.ChatRoom) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *model.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatRepository) FindMessagesByRoom(ctx context.Context, roomID uint64) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	if err := r.db.WithContext(ctx).
		Where("chat_room_id = ?", roomID).
		Order("id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}
