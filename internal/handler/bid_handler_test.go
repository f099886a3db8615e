package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"usedauction-backend/internal/model"
	"usedauction-backend/internal/service"
)

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	return e
}

type fakeBidService struct {
	placed   []model.Bid
	placeErr error
}

func (f *fakeBidService) PlaceBid(_ context.Context, itemID, bidderID uint64, amount int) (*model.Bid, error) {
	if f.placeErr != nil {
		return nil, f.placeErr
	}
	bid := model.Bid{ID: uint64(len(f.placed) + 1), ItemID: itemID, BidderID: bidderID, BidAmount: amount, BidTime: time.Now()}
	f.placed = append(f.placed, bid)
	return &bid, nil
}

func (f *fakeBidService) GetAllBids(_ context.Context) ([]model.Bid, error) {
	return f.placed, nil
}

func (f *fakeBidService) GetBidsByItemID(_ context.Context, itemID uint64) ([]service.BidWithNickname, error) {
	var out []service.BidWithNickname
	for _, bid := range f.placed {
		if bid.ItemID == itemID {
			out = append(out, service.BidWithNickname{Bid: bid, Nickname: "jin"})
		}
	}
	return out, nil
}

func TestPlaceBidHandler(t *testing.T) {
	e := newTestEcho()
	svc := &fakeBidService{}
	h := NewBidHandler(svc)

	body := `{"itemId":1,"bidderId":2,"bidAmount":500}`
	req := httptest.NewRequest(http.MethodPost, "/api/bids", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.PlaceBid(e.NewContext(req, rec)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var bid model.Bid
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bid))
	require.Equal(t, uint64(1), bid.ItemID)
	require.Equal(t, 500, bid.BidAmount)
}

func TestPlaceBidHandlerMissingFields(t *testing.T) {
	e := newTestEcho()
	h := NewBidHandler(&fakeBidService{})

	req := httptest.NewRequest(http.MethodPost, "/api/bids", strings.NewReader(`{"itemId":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.PlaceBid(e.NewContext(req, rec)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceBidHandlerItemNotFound(t *testing.T) {
	e := newTestEcho()
	h := NewBidHandler(&fakeBidService{placeErr: service.ErrNotFound})

	body := `{"itemId":99,"bidderId":2,"bidAmount":500}`
	req := httptest.NewRequest(http.MethodPost, "/api/bids", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.PlaceBid(e.NewContext(req, rec)))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListBidsByItem(t *testing.T) {
	e := newTestEcho()
	svc := &fakeBidService{}
	h := NewBidHandler(svc)

	_, err := svc.PlaceBid(context.Background(), 1, 2, 300)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/bids/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("itemId")
	c.SetParamValues("1")

	require.NoError(t, h.ListByItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var bids []service.BidWithNickname
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bids))
	require.Len(t, bids, 1)
	require.Equal(t, "jin", bids[0].Nickname)
}
