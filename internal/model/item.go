package model

import "time"

type Item struct {
	ID          uint64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string      `gorm:"size:120;not null" json:"title"`
	Description string      `gorm:"type:text;not null" json:"description"`
	Price       int         `gorm:"not null" json:"price"`
	LastPrice   int         `gorm:"column:last_price;not null;default:0" json:"lastPrice"`
	BidUnit     int         `gorm:"column:bid_unit;not null" json:"bidUnit"`
	EndDateTime time.Time   `gorm:"column:end_date_time;not null" json:"endDateTime"`
	OwnerID     uint64      `gorm:"column:owner_id;index;not null" json:"ownerId"`
	WinnerID    *uint64     `gorm:"column:winner_id" json:"winnerId,omitempty"`
	Region      string      `gorm:"size:64" json:"region"`
	Images      []ItemImage `gorm:"foreignKey:ItemID" json:"images,omitempty"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Item) TableName() string {
	return "items"
}

type ItemImage struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemID   uint64 `gorm:"column:item_id;not null;index:idx_item_images_item_id" json:"itemId"`
	ImageURL string `gorm:"column:image_url;size:512;not null" json:"imageUrl"`
	Position int    `gorm:"column:position;not null" json:"position"`
}

func (ItemImage) TableName() string {
	return "item_images"
}
