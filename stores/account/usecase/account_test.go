package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/domain/keys"
	"github.com/x-xyz/auction/domain/mocks"
	"github.com/x-xyz/auction/service/cache"
	"github.com/x-xyz/auction/service/cache/provider/primitive"
	"github.com/x-xyz/auction/service/notify"
	categoryUC "github.com/x-xyz/auction/stores/category/usecase"
)

var (
	mockCtx = ctx.Background()
)

type accountSuite struct {
	suite.Suite
	users    *mocks.UserRepo
	cats     *mocks.CategoryRepo
	items    *mocks.ItemRepo
	payments *mocks.PaymentRepo
	recorder *notify.Recorder
	subject  domain.AccountUsecase
}

func TestAccount(t *testing.T) {
	suite.Run(t, new(accountSuite))
}

func (s *accountSuite) SetupTest() {
	s.users = &mocks.UserRepo{}
	s.cats = &mocks.CategoryRepo{}
	s.items = &mocks.ItemRepo{}
	s.payments = &mocks.PaymentRepo{}
	s.recorder = notify.NewRecorder()

	categories := categoryUC.New(s.cats, cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   keys.PfxCategory,
		Cache: primitive.NewPrimitive("category", 1),
	}), s.recorder)

	s.subject = New(&AccountUseCaseCfg{
		Users:      s.users,
		Categories: categories,
		Items:      s.items,
		Payments:   s.payments,
		Notifier:   s.recorder,
		Navigator:  s.recorder,
	})
}

func (s *accountSuite) TearDownTest() {
	s.users.AssertExpectations(s.T())
	s.cats.AssertExpectations(s.T())
	s.items.AssertExpectations(s.T())
	s.payments.AssertExpectations(s.T())
}

func (s *accountSuite) TestProfile() {
	user := &domain.User{Id: 5, FullName: "Ann", Credit: 12000}
	cats := []domain.Category{{Id: 1, CategoryName: "Art"}}
	items := []domain.Item{{Id: 9, Title: "Lamp", SellerId: 5}}
	s.users.On("Profile", mock.Anything, int64(5)).Return(user, nil).Once()
	s.cats.On("All", mock.Anything).Return(cats, nil).Once()
	s.items.On("FindMine", mock.Anything).Return(items, nil).Once()

	p, err := s.subject.Profile(mockCtx, 5)
	s.Require().NoError(err)
	s.Equal(user, p.User)
	s.Equal(cats, p.Categories)
	s.Equal(items, p.Items)
	s.True(p.User.CanList())
}

func (s *accountSuite) TestProfileDegrades() {
	s.users.On("Profile", mock.Anything, int64(5)).Return(&domain.User{Id: 5}, nil).Once()
	s.cats.On("All", mock.Anything).Return(nil, errors.New("boom")).Once()
	s.items.On("FindMine", mock.Anything).Return(nil, errors.New("boom")).Once()

	p, err := s.subject.Profile(mockCtx, 5)
	s.Require().NoError(err)
	s.Empty(p.Categories)
	s.NotNil(p.Categories)
	s.NotNil(p.Items)
}

func (s *accountSuite) TestProfileUserFails() {
	s.users.On("Profile", mock.Anything, int64(5)).Return(nil, domain.ErrNotFound).Once()
	s.cats.On("All", mock.Anything).Return([]domain.Category{}, nil).Maybe()
	s.items.On("FindMine", mock.Anything).Return([]domain.Item{}, nil).Maybe()

	_, err := s.subject.Profile(mockCtx, 5)
	s.True(errors.Is(err, domain.ErrNotFound))
}

func (s *accountSuite) TestInfo() {
	s.users.On("Profile", mockCtx, int64(8)).Return(&domain.User{Id: 8}, nil).Once()

	u, err := s.subject.Info(mockCtx, "8")
	s.Require().NoError(err)
	s.Equal(int64(8), u.Id)

	_, err = s.subject.Info(mockCtx, "")
	s.Equal(domain.ErrNotFound, err)
	s.Equal([]string{domain.RouteNotFound}, s.recorder.Routes())
}

func (s *accountSuite) TestRecharge() {
	s.payments.On("Pay", mockCtx, domain.RechargeRequest{Amount: 50000}).Return("https://pay.example/abc", nil).Once()

	url, err := s.subject.Recharge(mockCtx, 50000)
	s.Require().NoError(err)
	s.Equal("https://pay.example/abc", url)
	s.Equal([]string{"https://pay.example/abc"}, s.recorder.Routes())
}

func (s *accountSuite) TestRechargeInvalid() {
	_, err := s.subject.Recharge(mockCtx, 0)
	s.True(errors.Is(err, domain.ErrInvalidInput))
	s.Empty(s.recorder.Routes())
}

func (s *accountSuite) TestRechargeRejected() {
	s.payments.On("Pay", mockCtx, domain.RechargeRequest{Amount: 1}).
		Return("", &domain.RequestError{Status: 200, Message: "Payment gateway unavailable"}).Once()

	_, err := s.subject.Recharge(mockCtx, 1)
	s.Error(err)
	s.Empty(s.recorder.Routes())
	last, _ := s.recorder.Last()
	s.Equal("Payment gateway unavailable", last.Message)
}
