package service

import (
	"context"

	"gorm.io/gorm"

	"usedauction-backend/internal/model"
)

// In-memory repository fakes shared by the service tests.

type fakeItemRepo struct {
	items  map[uint64]model.Item
	nextID uint64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uint64]model.Item), nextID: 1}
}

func (r *fakeItemRepo) Create(_ context.Context, item *model.Item) error {
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uint64) (*model.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *fakeItemRepo) FindAll(_ context.Context) ([]model.Item, error) {
	out := make([]model.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeItemRepo) Save(_ context.Context, item *model.Item) error {
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uint64) error {
	delete(r.items, id)
	return nil
}

type fakeUserRepo struct {
	users  map[uint64]model.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]model.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint64) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *model.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint64) error {
	delete(r.users, id)
	return nil
}

type fakeBidRepo struct {
	bids   []model.Bid
	nextID uint64
}

func newFakeBidRepo() *fakeBidRepo {
	return &fakeBidRepo{nextID: 1}
}

func (r *fakeBidRepo) Create(_ context.Context, bid *model.Bid) error {
	bid.ID = r.nextID
	r.nextID++
	r.bids = append(r.bids, *bid)
	return nil
}

func (r *fakeBidRepo) FindAll(_ context.Context) ([]model.Bid, error) {
	return append([]model.Bid(nil), r.bids...), nil
}

func (r *fakeBidRepo) FindByItemID(_ context.Context, itemID uint64) ([]model.Bid, error) {
	var out []model.Bid
	for _, bid := range r.bids {
		if bid.ItemID == itemID {
			out = append(out, bid)
		}
	}
	return out, nil
}

type fakeChatRepo struct {
	rooms      map[uint64]model.ChatRoom
	messages   []model.ChatMessage
	nextRoomID uint64
	nextMsgID  uint64
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{rooms: make(map[uint64]model.ChatRoom), nextRoomID: 1, nextMsgID: 1}
}

func (r *fakeChatRepo) CreateRoom(_ context.Context, room *model.ChatRoom) error {
	room.ID = r.nextRoomID
	r.nextRoomID++
	r.rooms[room.ID] = *room
	return nil
}

func (r *fakeChatRepo) FindRoomByID(_ context.Context, id uint64) (*model.ChatRoom, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &room, nil
}

func (r *fakeChatRepo) FindRooms(_ context.Context) ([]model.ChatRoom, error) {
	out := make([]model.ChatRoom, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	return out, nil
}

func (r *fakeChatRepo) SaveRoom(_ context.Context, room *model.ChatRoom) error {
	r.rooms[room.ID] = *room
	return nil
}

func (r *fakeChatRepo) CreateMessage(_ context.Context, msg *model.ChatMessage) error {
	msg.ID = r.nextMsgID
	r.nextMsgID++
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeChatRepo) FindMessagesByRoom(_ context.Context, roomID uint64) ([]model.ChatMessage, error) {
	var out []model.ChatMessage
	for _, msg := range r.messages {
		if msg.ChatRoomID == roomID {
			out = append(out, msg)
		}
	}
	return out, nil
}
