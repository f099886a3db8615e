package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"usedauction-backend/internal/model"
	"usedauction-backend/internal/repository"
)

// Fallback shown when a bid's bidder record no longer exists.
const unknownBidderNickname = "unknown"

type BidWithNickname struct {
	Bid      model.Bid `json:"bid"`
	Nickname string    `json:"nickname"`
}

type BidService interface {
	PlaceBid(ctx context.Context, itemID, bidderID uint64, bidAmount int) (*model.Bid, error)
	GetAllBids(ctx context.Context) ([]model.Bid, error)
	GetBidsByItemID(ctx context.Context, itemID uint64) ([]BidWithNickname, error)
}

type bidService struct {
	bidRepo  repository.BidRepository
	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
	now      func() time.Time
}

func NewBidService(bidRepo repository.BidRepository, userRepo repository.UserRepository, itemRepo repository.ItemRepository) BidService {
	return &bidService{bidRepo: bidRepo, userRepo: userRepo, itemRepo: itemRepo, now: time.Now}
}

// PlaceBid records the bid and then overwrites the item's last price with
// the bid amount. The two writes are not transactional and the amount is
// not compared against the current price, so between concurrent bidders
// the most recently written bid wins regardless of amount.
func (s *bidService) PlaceBid(ctx context.Context, itemID, bidderID uint64, bidAmount int) (*model.Bid, error) {
	bid := &model.Bid{
		ItemID:    itemID,
		BidderID:  bidderID,
		BidAmount: bidAmount,
		BidTime:   s.now(),
	}
	if err := s.bidRepo.Create(ctx, bid); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item.LastPrice = bidAmount
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	return bid, nil
}

func (s *bidService) GetAllBids(ctx context.Context) ([]model.Bid, error) {
	return s.bidRepo.FindAll(ctx)
}

func (s *bidService) GetBidsByItemID(ctx context.Context, itemID uint64) ([]BidWithNickname, error) {
	bids, err := s.bidRepo.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	out := make([]BidWithNickname, 0, len(bids))
	for _, bid := range bids {
		nickname := unknownBidderNickname
		if user, err := s.userRepo.FindByID(ctx, bid.BidderID); err == nil {
			nickname = user.Nickname
		}
		out = append(out, BidWithNickname{Bid: bid, Nickname: nickname})
	}
	return out, nil
}
