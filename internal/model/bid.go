package model

import "time"

// Bid rows are write-once: nothing updates or deletes them.
type Bid struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemID    uint64    `gorm:"column:item_id;index;not null" json:"itemId"`
	BidderID  uint64    `gorm:"column:bidder_id;index;not null" json:"bidderId"`
	BidAmount int       `gorm:"column:bid_amount;not null" json:"bidAmount"`
	BidTime   time.Time `gorm:"column:bid_time;not null" json:"bidTime"`
}

func (Bid) TableName() string {
	return "bids"
}
