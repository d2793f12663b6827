package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
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
	start   = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
)

type fakePage struct {
	mu      sync.Mutex
	item    *domain.Item
	reloads int
}

func (p *fakePage) Snapshot() (*domain.Item, []domain.Bid) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.item, nil
}

func (p *fakePage) Reload(c ctx.Ctx) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reloads++
	return nil
}

type controllerSuite struct {
	suite.Suite
	bids     *mocks.BidRepo
	page     *fakePage
	recorder *notify.Recorder
	now      time.Time
	subject  *Controller
}

func TestController(t *testing.T) {
	suite.Run(t, new(controllerSuite))
}

func (s *controllerSuite) SetupTest() {
	s.bids = &mocks.BidRepo{}
	s.page = &fakePage{item: &domain.Item{
		Id:           7,
		MinimumBid:   decimal.NewFromInt(100),
		BidStartDate: domain.NewTimestamp(start),
		BidEndDate:   domain.NewTimestamp(start.Add(24 * time.Hour)),
	}}
	s.recorder = notify.NewRecorder()
	s.now = start.Add(time.Hour)
	s.subject = NewController(s.bids, s.page, s.recorder, WithClock(func() time.Time { return s.now }))
}

func (s *controllerSuite) TearDownTest() {
	s.bids.AssertExpectations(s.T())
}

func (s *controllerSuite) TestRevealWhileActive() {
	s.Equal(FormCollapsed, s.subject.State())
	s.NoError(s.subject.Submit(mockCtx))
	s.Equal(FormRevealed, s.subject.State())
	s.Empty(s.recorder.Notifications())
	s.bids.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *controllerSuite) TestRevealOutsideWindow() {
	for _, now := range []time.Time{start.Add(-time.Second), start.Add(24 * time.Hour)} {
		s.now = now
		s.Equal(domain.ErrBiddingClosed, s.subject.Submit(mockCtx))
		s.Equal(FormCollapsed, s.subject.State())
	}

	s.now = start
	s.NoError(s.subject.Submit(mockCtx))
	s.Equal(FormRevealed, s.subject.State())
}

func (s *controllerSuite) TestRevealWithoutItem() {
	s.page.item = nil
	s.Equal(domain.ErrBiddingClosed, s.subject.Submit(mockCtx))
	s.Equal(FormCollapsed, s.subject.State())
}

func (s *controllerSuite) TestInvalidAmount() {
	s.Require().NoError(s.subject.Submit(mockCtx))

	for _, raw := range []string{"", "  ", "abc", "NaN", "Inf", "0", "-5", "12..5"} {
		s.recorder.Reset()
		s.subject.SetAmount(raw)
		s.Equal(domain.ErrInvalidAmount, s.subject.Submit(mockCtx), raw)
		s.Equal(FormRevealed, s.subject.State())
		s.Equal(raw, s.subject.Amount())

		last, ok := s.recorder.Last()
		s.Require().True(ok)
		s.Equal("Invalid Bid Amount", last.Title)
		s.Equal(domain.LevelError, last.Level)
	}
	s.Equal(0, s.page.reloads)
}

func (s *controllerSuite) TestPlaceBid() {
	s.Require().NoError(s.subject.Submit(mockCtx))
	s.subject.SetAmount("150.50")

	req := domain.BidRequest{ItemId: 7, BidAmount: decimal.RequireFromString("150.50")}
	s.bids.On("Create", mockCtx, req).Return(nil).Once()

	s.NoError(s.subject.Submit(mockCtx))
	s.Equal(FormCollapsed, s.subject.State())
	s.Equal("", s.subject.Amount())
	s.Equal(1, s.page.reloads)
}

func (s *controllerSuite) TestPlaceBidRejected() {
	s.Require().NoError(s.subject.Submit(mockCtx))
	s.subject.SetAmount("90")

	req := domain.BidRequest{ItemId: 7, BidAmount: decimal.RequireFromString("90")}
	s.bids.On("Create", mockCtx, req).
		Return(&domain.RequestError{Status: 200, Message: "Bid amount must be greater than 100"}).Once()

	err := s.subject.Submit(mockCtx)
	s.True(errors.Is(err, domain.ErrRequestFailed))
	s.Equal(FormRevealed, s.subject.State())
	s.Equal("90", s.subject.Amount())
	s.Equal(0, s.page.reloads)

	last, ok := s.recorder.Last()
	s.Require().True(ok)
	s.Equal("Failed to place bid", last.Title)
	s.Equal("Bid amount must be greater than 100", last.Message)
}

func (s *controllerSuite) TestPlaceBidFallbackMessage() {
	s.Require().NoError(s.subject.Submit(mockCtx))
	s.subject.SetAmount("200")

	s.bids.On("Create", mockCtx, mock.Anything).Return(errors.New("connection reset")).Once()

	s.Error(s.subject.Submit(mockCtx))
	last, ok := s.recorder.Last()
	s.Require().True(ok)
	s.Equal("Please try again later.", last.Message)
	s.Equal(FormRevealed, s.subject.State())
}

func (s *controllerSuite) TestPlaceBidWithoutItem() {
	s.Require().NoError(s.subject.Submit(mockCtx))
	s.page.item = nil

	for _, raw := range []string{"150", "abc"} {
		s.recorder.Reset()
		s.subject.SetAmount(raw)
		s.Equal(domain.ErrNotFound, s.subject.Submit(mockCtx), raw)
		s.Equal(FormRevealed, s.subject.State())
		s.Equal(raw, s.subject.Amount())

		last, ok := s.recorder.Last()
		s.Require().True(ok)
		s.Equal("Failed to place bid", last.Title)
		s.Equal("Please try again later.", last.Message)
		s.Equal(domain.LevelError, last.Level)
	}
	s.bids.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	s.Equal(0, s.page.reloads)
}

func (s *controllerSuite) TestCollapseKeepsAmount() {
	s.Require().NoError(s.subject.Submit(mockCtx))
	s.subject.SetAmount("120")
	s.subject.Collapse()
	s.Equal(FormCollapsed, s.subject.State())
	s.Equal("120", s.subject.Amount())
}

func TestParseAmount(t *testing.T) {
	d, ok := ParseAmount(" 12.5 ")
	require.True(t, ok)
	require.True(t, d.Equal(decimal.RequireFromString("12.5")))

	d, ok = ParseAmount("1e3")
	require.True(t, ok)
	require.True(t, d.Equal(decimal.NewFromInt(1000)))

	for _, raw := range []string{"", "x", "0", "-0.01", "Infinity", "NaN"} {
		_, ok := ParseAmount(raw)
		require.False(t, ok, raw)
	}
}

func TestFormStateString(t *testing.T) {
	require.Equal(t, "collapsed", FormCollapsed.String())
	require.Equal(t, "revealed", FormRevealed.String())
}
