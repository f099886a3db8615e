package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"usedauction-backend/internal/model"
	"usedauction-backend/internal/repository"
)

var ErrNotFound = errors.New("not found")

type ItemService interface {
	GetAll(ctx context.Context) ([]model.Item, error)
	GetByID(ctx context.Context, id uint64) (*model.Item, error)
	Add(ctx context.Context, item *model.Item) (*model.Item, error)
	Update(ctx context.Context, id uint64, title, description, region string) (*model.Item, error)
	UpdateWinner(ctx context.Context, itemID, winnerID uint64, lastPrice int) error
	CurrentPrice(ctx context.Context, itemID uint64) (int, error)
	RemainingTime(ctx context.Context, itemID uint64) (time.Duration, error)
	Delete(ctx context.Context, id uint64) error
}

type itemService struct {
	repo repository.ItemRepository
	now  func() time.Time
}

func NewItemService(repo repository.ItemRepository) ItemService {
	return &itemService{repo: repo, now: time.Now}
}

func (s *itemService) GetAll(ctx context.Context) ([]model.Item, error) {
	return s.repo.FindAll(ctx)
}

func (s *itemService) GetByID(ctx context.Context, id uint64) (*model.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) Add(ctx context.Context, item *model.Item) (*model.Item, error) {
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) Update(ctx context.Context, id uint64, title, description, region string) (*model.Item, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Title = title
	item.Description = description
	item.Region = region
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateWinner overwrites the winner and last price without checking that
// the auction has ended or that the winner placed the winning bid.
func (s *itemService) UpdateWinner(ctx context.Context, itemID, winnerID uint64, lastPrice int) error {
	item, err := s.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	item.WinnerID = &winnerID
	item.LastPrice = lastPrice
	return s.repo.Save(ctx, item)
}

func (s *itemService) CurrentPrice(ctx context.Context, itemID uint64) (int, error) {
	item, err := s.GetByID(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return item.LastPrice, nil
}

// RemainingTime is endDateTime minus now; it goes negative once the
// auction has expired, there is no terminal closed state.
func (s *itemService) RemainingTime(ctx context.Context, itemID uint64) (time.Duration, error) {
	item, err := s.GetByID(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return item.EndDateTime.Sub(s.now()), nil
}

func (s *itemService) Delete(ctx context.Context, id uint64) error {
	return s.repo.Delete(ctx, id)
}
