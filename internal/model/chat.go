package model

import "time"

type ChatRoom struct {
	ID              uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemID          uint64     `gorm:"column:item_id;index" json:"itemId"`
	SellerID        uint64     `gorm:"column:seller_id;index;not null" json:"sellerId"`
	SellerNickname  string     `gorm:"column:seller_nickname;size:64" json:"sellerNickname"`
	BuyerID         uint64     `gorm:"column:buyer_id;index;not null" json:"buyerId"`
	BuyerNickname   string     `gorm:"column:buyer_nickname;size:64" json:"buyerNickname"`
	ItemTitle       string     `gorm:"column:item_title;size:120" json:"itemTitle"`
	ItemImage       string     `gorm:"column:item_image;size:512" json:"itemImage"`
	FinalPrice      int        `gorm:"column:final_price" json:"finalPrice"`
	LastMessage     string     `gorm:"column:last_message;type:text" json:"lastMessage"`
	LastMessageTime *time.Time `gorm:"column:last_message_time" json:"lastMessageTime,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ChatRoom) TableName() string {
	return "chat_rooms"
}

type ChatMessage struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatRoomID  uint64    `gorm:"column:chat_room_id;index;not null" json:"chatRoomId"`
	SenderID    uint64    `gorm:"column:sender_id;index;not null" json:"senderId"`
	RecipientID uint64    `gorm:"column:recipient_id;index" json:"recipientId"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Timestamp   time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
