package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"usedauction-backend/internal/model"
)

func newBidFixture(t *testing.T) (*fakeBidRepo, *fakeUserRepo, *fakeItemRepo, BidService) {
	t.Helper()
	bidRepo := newFakeBidRepo()
	userRepo := newFakeUserRepo()
	itemRepo := newFakeItemRepo()
	svc := NewBidService(bidRepo, userRepo, itemRepo)
	return bidRepo, userRepo, itemRepo, svc
}

func TestPlaceBidUpdatesLastPrice(t *testing.T) {
	ctx := context.Background()
	_, _, itemRepo, svc := newBidFixture(t)

	item := &model.Item{Title: "camera", Price: 1000, BidUnit: 100, EndDateTime: time.Now().Add(time.Hour)}
	require.NoError(t, itemRepo.Create(ctx, item))

	bid, err := svc.PlaceBid(ctx, item.ID, 7, 1200)
	require.NoError(t, err)
	require.Equal(t, 1200, bid.BidAmount)
	require.False(t, bid.BidTime.IsZero())

	stored, err := itemRepo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 1200, stored.LastPrice)
}

// A bid lower than the starting price still goes through: nothing
// compares the amount against price or bid unit.
func TestPlaceBidBelowStartingPrice(t *testing.T) {
	ctx := context.Background()
	_, _, itemRepo, svc := newBidFixture(t)

	item := &model.Item{Title: "chair", Price: 1000, BidUnit: 100, EndDateTime: time.Now().Add(time.Hour)}
	require.NoError(t, itemRepo.Create(ctx, item))

	_, err := svc.PlaceBid(ctx, item.ID, 7, 500)
	require.NoError(t, err)

	stored, err := itemRepo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 500, stored.LastPrice)
}

// Sequential bids leave the most recent amount as the last price, even
// when it is lower than the one before it.
func TestPlaceBidLastWriteWins(t *testing.T) {
	ctx := context.Background()
	_, _, itemRepo, svc := newBidFixture(t)

	item := &model.Item{Title: "lamp", Price: 10, EndDateTime: time.Now().Add(time.Hour)}
	require.NoError(t, itemRepo.Create(ctx, item))

	_, err := svc.PlaceBid(ctx, item.ID, 1, 100)
	require.NoError(t, err)
	_, err = svc.PlaceBid(ctx, item.ID, 2, 50)
	require.NoError(t, err)

	stored, err := itemRepo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 50, stored.LastPrice)
}

func TestPlaceBidMissingItem(t *testing.T) {
	ctx := context.Background()
	bidRepo, _, _, svc := newBidFixture(t)

	_, err := svc.PlaceBid(ctx, 999, 7, 100)
	require.ErrorIs(t, err, ErrNotFound)

	// The bid record was still written before the item lookup failed.
	bids, err := bidRepo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, bids, 1)
}

func TestGetBidsByItemIDResolvesNicknames(t *testing.T) {
	ctx := context.Background()
	_, userRepo, itemRepo, svc := newBidFixture(t)

	item := &model.Item{Title: "desk", EndDateTime: time.Now().Add(time.Hour)}
	require.NoError(t, itemRepo.Create(ctx, item))

	bidder := &model.User{Nickname: "jin", Email: "jin@example.com"}
	require.NoError(t, userRepo.Create(ctx, bidder))

	_, err := svc.PlaceBid(ctx, item.ID, bidder.ID, 300)
	require.NoError(t, err)
	_, err = svc.PlaceBid(ctx, item.ID, 424242, 400) // bidder record missing
	require.NoError(t, err)

	bids, err := svc.GetBidsByItemID(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	require.Equal(t, "jin", bids[0].Nickname)
	require.Equal(t, "unknown", bids[1].Nickname)
}

func TestGetAllBids(t *testing.T) {
	ctx := context.Background()
	_, _, itemRepo, svc := newBidFixture(t)

	item := &model.Item{Title: "bike", EndDateTime: time.Now().Add(time.Hour)}
	require.NoError(t, itemRepo.Create(ctx, item))

	for i := 0; i < 3; i++ {
		_, err := svc.PlaceBid(ctx, item.ID, uint64(i+1), (i+1)*100)
		require.NoError(t, err)
	}

	bids, err := svc.GetAllBids(ctx)
	require.NoError(t, err)
	require.Len(t, bids, 3)
}
