package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/domain/mocks"
	"github.com/x-xyz/auction/service/notify"
)

var (
	mockCtx = ctx.Background()
)

type fakePage struct {
	item    *domain.Item
	bids    []domain.Bid
	reloads int
}

func (p *fakePage) Snapshot() (*domain.Item, []domain.Bid) {
	return p.item, p.bids
}

func (p *fakePage) Reload(c ctx.Ctx) error {
	p.reloads++
	return nil
}

type flowSuite struct {
	suite.Suite
	ratings  *mocks.RatingRepo
	page     *fakePage
	recorder *notify.Recorder
	subject  *Flow
}

func TestFlow(t *testing.T) {
	suite.Run(t, new(flowSuite))
}

func (s *flowSuite) SetupTest() {
	s.ratings = &mocks.RatingRepo{}
	s.page = &fakePage{
		item: &domain.Item{Id: 7, SellerId: 3},
		bids: []domain.Bid{
			{Id: 1, ItemId: 7, BidderId: 11},
			{Id: 2, ItemId: 7, Bidder: &domain.UserSummary{Id: 12}},
		},
	}
	s.recorder = notify.NewRecorder()
	s.subject = NewFlow(s.ratings, s.page, s.recorder)
}

func (s *flowSuite) TearDownTest() {
	s.ratings.AssertExpectations(s.T())
}

func (s *flowSuite) TestOpenPrefills() {
	s.ratings.On("FindOne", mockCtx, int64(11), int64(7)).
		Return(&domain.Rating{RateeId: 11, ItemId: 7, RatingValue: 4}, nil).Once()

	s.NoError(s.subject.Open(mockCtx, 11))
	s.True(s.subject.IsOpen())
	s.Equal(int64(11), s.subject.Bidder())
	s.Equal(4, s.subject.Value())
}

func (s *flowSuite) TestOpenWithoutRating() {
	s.ratings.On("FindOne", mockCtx, int64(11), int64(7)).Return(nil, domain.ErrNotFound).Once()
	s.NoError(s.subject.Open(mockCtx, 11))
	s.Equal(0, s.subject.Value())

	s.ratings.On("FindOne", mockCtx, int64(12), int64(7)).Return(nil, errors.New("boom")).Once()
	s.NoError(s.subject.Open(mockCtx, 12))
	s.True(s.subject.IsOpen())
	s.Equal(0, s.subject.Value())
}

func (s *flowSuite) TestOpenWithoutItem() {
	s.page.item = nil
	s.Equal(domain.ErrNotFound, s.subject.Open(mockCtx, 11))
	s.False(s.subject.IsOpen())
}

func (s *flowSuite) TestOpenBidderWithoutBid() {
	s.Equal(domain.ErrInvalidInput, s.subject.Open(mockCtx, 99))
	s.False(s.subject.IsOpen())
	s.Equal(int64(0), s.subject.Bidder())
	s.Equal(domain.ErrInvalidInput, s.subject.Confirm(mockCtx))

	s.page.bids = nil
	s.Equal(domain.ErrInvalidInput, s.subject.Open(mockCtx, 11))
	s.ratings.AssertNotCalled(s.T(), "FindOne", mock.Anything, mock.Anything, mock.Anything)
	s.ratings.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}

func (s *flowSuite) TestConfirmOutOfRange() {
	s.ratings.On("FindOne", mockCtx, int64(11), int64(7)).Return(nil, domain.ErrNotFound).Once()
	s.Require().NoError(s.subject.Open(mockCtx, 11))

	for _, v := range []int{0, 6, -1} {
		s.subject.SetValue(v)
		s.Equal(domain.ErrInvalidRating, s.subject.Confirm(mockCtx))
		s.True(s.subject.IsOpen())
		last, ok := s.recorder.Last()
		s.Require().True(ok)
		s.Equal("Invalid Rating", last.Title)
	}
	s.ratings.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}

func (s *flowSuite) TestConfirm() {
	s.ratings.On("FindOne", mockCtx, int64(11), int64(7)).Return(nil, domain.ErrNotFound).Once()
	s.ratings.On("Upsert", mockCtx, domain.Rating{RateeId: 11, ItemId: 7, RatingValue: 5}).Return(nil).Once()

	s.Require().NoError(s.subject.Open(mockCtx, 11))
	s.subject.SetValue(5)
	s.NoError(s.subject.Confirm(mockCtx))
	s.False(s.subject.IsOpen())
	s.Equal(0, s.subject.Value())
	s.Equal(int64(0), s.subject.Bidder())
	s.Equal(1, s.page.reloads)
}

func (s *flowSuite) TestConfirmRejected() {
	s.ratings.On("FindOne", mockCtx, int64(11), int64(7)).Return(nil, domain.ErrNotFound).Once()
	s.ratings.On("Upsert", mockCtx, domain.Rating{RateeId: 11, ItemId: 7, RatingValue: 2}).
		Return(&domain.RequestError{Status: 200, Message: "Bidder did not bid on this item"}).Once()

	s.Require().NoError(s.subject.Open(mockCtx, 11))
	s.subject.SetValue(2)
	err := s.subject.Confirm(mockCtx)
	s.True(errors.Is(err, domain.ErrRequestFailed))
	s.False(s.subject.IsOpen())
	s.Equal(0, s.subject.Value())
	s.Equal(0, s.page.reloads)

	last, ok := s.recorder.Last()
	s.Require().True(ok)
	s.Equal(domain.MsgFail, last.Title)
	s.Equal("Bidder did not bid on this item", last.Message)
}

func (s *flowSuite) TestConfirmTransportFailure() {
	s.ratings.On("FindOne", mockCtx, int64(11), int64(7)).Return(nil, domain.ErrNotFound).Once()
	s.ratings.On("Upsert", mockCtx, domain.Rating{RateeId: 11, ItemId: 7, RatingValue: 3}).
		Return(&domain.RequestError{Status: 500, Message: domain.MsgResponse}).Once()

	s.Require().NoError(s.subject.Open(mockCtx, 11))
	s.subject.SetValue(3)
	s.Error(s.subject.Confirm(mockCtx))
	s.False(s.subject.IsOpen())
	s.Empty(s.recorder.Notifications())
}

func (s *flowSuite) TestCancel() {
	s.ratings.On("FindOne", mockCtx, int64(11), int64(7)).
		Return(&domain.Rating{RatingValue: 4}, nil).Once()

	s.Require().NoError(s.subject.Open(mockCtx, 11))
	s.subject.Cancel()
	s.False(s.subject.IsOpen())
	s.Equal(0, s.subject.Value())
	s.Equal(domain.ErrInvalidInput, s.subject.Confirm(mockCtx))
}

func TestCanRate(t *testing.T) {
	item := &domain.Item{Id: 7, SellerId: 3}
	require.True(t, CanRate(3, item))
	require.False(t, CanRate(4, item))
	require.False(t, CanRate(0, &domain.Item{}))
	require.False(t, CanRate(3, nil))
}
