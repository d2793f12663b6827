package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/domain/mocks"
	"github.com/x-xyz/auction/service/notify"
)

var (
	mockCtx = ctx.Background()
)

type detailSuite struct {
	suite.Suite
	items    *mocks.ItemRepo
	recorder *notify.Recorder
	subject  *Detail
}

func TestDetail(t *testing.T) {
	suite.Run(t, new(detailSuite))
}

func (s *detailSuite) SetupTest() {
	s.items = &mocks.ItemRepo{}
	s.recorder = notify.NewRecorder()
	s.subject = NewDetail(s.items, s.recorder)
}

func (s *detailSuite) TearDownTest() {
	s.items.AssertExpectations(s.T())
}

func item(id int64, title string, bids ...domain.Bid) *domain.Item {
	return &domain.Item{Id: id, Title: title, MinimumBid: decimal.NewFromInt(100), Bids: bids}
}

func (s *detailSuite) TestMountInvalidID() {
	for _, raw := range []string{"", "abc", "-3", "0"} {
		s.recorder.Reset()
		err := s.subject.Mount(mockCtx, raw)
		s.Equal(domain.ErrNotFound, err, raw)
		s.Equal([]string{domain.RouteNotFound}, s.recorder.Routes(), raw)
	}
	s.items.AssertNotCalled(s.T(), "FindOne", mock.Anything, mock.Anything)
	got, bids := s.subject.Snapshot()
	s.Nil(got)
	s.Empty(bids)
}

func (s *detailSuite) TestMountLoads() {
	bid := domain.Bid{Id: 1, BidAmount: decimal.NewFromInt(120)}
	s.items.On("FindOne", mock.Anything, int64(7)).Return(item(7, "Lamp", bid), nil).Once()

	s.NoError(s.subject.Mount(mockCtx, "7"))
	got, bids := s.subject.Snapshot()
	s.Require().NotNil(got)
	s.Equal("Lamp", got.Title)
	s.Equal([]domain.Bid{bid}, bids)
	s.Equal(int64(7), s.subject.ItemID())
}

func (s *detailSuite) TestBidsDefaultToEmpty() {
	s.items.On("FindOne", mock.Anything, int64(7)).Return(&domain.Item{Id: 7}, nil).Once()

	s.NoError(s.subject.Mount(mockCtx, "7"))
	got, bids := s.subject.Snapshot()
	s.NotNil(got)
	s.NotNil(bids)
	s.Empty(bids)
}

func (s *detailSuite) TestLoadFailureClears() {
	s.items.On("FindOne", mock.Anything, int64(7)).Return(item(7, "Lamp"), nil).Once()
	s.items.On("FindOne", mock.Anything, int64(7)).Return(nil, &domain.RequestError{Status: 500}).Once()

	s.NoError(s.subject.Mount(mockCtx, "7"))
	s.Error(s.subject.Reload(mockCtx))

	got, bids := s.subject.Snapshot()
	s.Nil(got)
	s.NotNil(bids)
	s.Empty(bids)
	_, ok := s.subject.Status(time.Now())
	s.False(ok)
}

func (s *detailSuite) TestReloadReplaces() {
	first := item(7, "Lamp", domain.Bid{Id: 1, BidAmount: decimal.NewFromInt(120)})
	second := item(7, "Lamp (restored)", domain.Bid{Id: 2, BidAmount: decimal.NewFromInt(150)})
	s.items.On("FindOne", mock.Anything, int64(7)).Return(first, nil).Once()
	s.items.On("FindOne", mock.Anything, int64(7)).Return(second, nil).Once()

	s.NoError(s.subject.Mount(mockCtx, "7"))
	s.NoError(s.subject.Reload(mockCtx))

	got, bids := s.subject.Snapshot()
	s.Equal("Lamp (restored)", got.Title)
	s.Len(bids, 1)
	s.Equal(int64(2), bids[0].Id)
}

func (s *detailSuite) TestUnmountDropsLateResponse() {
	started := make(chan struct{})
	release := make(chan struct{})
	s.items.On("FindOne", mock.Anything, int64(7)).Return(item(7, "Lamp"), nil).Once().
		Run(func(mock.Arguments) {
			close(started)
			<-release
		})

	done := make(chan error)
	go func() { done <- s.subject.Mount(mockCtx, "7") }()
	<-started
	s.subject.Unmount()
	close(release)
	s.NoError(<-done)

	got, _ := s.subject.Snapshot()
	s.Nil(got)
	s.Equal(int64(0), s.subject.ItemID())
}

func (s *detailSuite) TestUnmountCancelsRequest() {
	started := make(chan struct{})
	var canceled error
	s.items.On("FindOne", mock.Anything, int64(7)).Return(nil, errors.New("canceled")).Once().
		Run(func(args mock.Arguments) {
			c := args.Get(0).(ctx.Ctx)
			close(started)
			<-c.Done()
			canceled = c.Err()
		})

	done := make(chan error)
	go func() { done <- s.subject.Mount(mockCtx, "7") }()
	<-started
	s.subject.Unmount()
	s.NoError(<-done)
	s.Error(canceled)
}

func (s *detailSuite) TestStaleLoadDropped() {
	started := make(chan struct{})
	release := make(chan struct{})
	s.items.On("FindOne", mock.Anything, int64(7)).Return(item(7, "v1"), nil).Once()
	s.items.On("FindOne", mock.Anything, int64(7)).Return(item(7, "v2"), nil).Once().
		Run(func(mock.Arguments) {
			close(started)
			<-release
		})
	s.items.On("FindOne", mock.Anything, int64(7)).Return(item(7, "v3"), nil).Once()

	s.NoError(s.subject.Mount(mockCtx, "7"))

	done := make(chan error)
	go func() { done <- s.subject.Load(mockCtx) }()
	<-started
	s.NoError(s.subject.Reload(mockCtx))
	close(release)
	s.NoError(<-done)

	got, _ := s.subject.Snapshot()
	s.Equal("v3", got.Title)
}

func (s *detailSuite) TestLoadBeforeMount() {
	s.NoError(s.subject.Load(mockCtx))
	got, _ := s.subject.Snapshot()
	s.Nil(got)
}
