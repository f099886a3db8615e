package repository

import (
	"context"

	"gorm.io/gorm"

	"usedauction-backend/internal/model"
)

type BidRepository interface {
	Create(ctx context.Context, bid *model.Bid) error
	FindAll(ctx context.Context) ([]model.Bid, error)
	FindByItemID(ctx context.Context, itemID uint64) ([]model.Bid, error)
}

type bidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) BidRepository {
	return &bidRepository{db: db}
}

func (r *bidRepository) Create(ctx context.Context, bid *model.Bid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *bidRepository) FindAll(ctx context.Context) ([]model.Bid, error) {
	var bids []model.Bid
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

func (r *bidRepository) FindByItemID(ctx context.Context, itemID uint64) ([]model.Bid, error) {
	var bids []model.Bid
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("bid_time ASC").
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}
