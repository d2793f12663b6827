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
)

var (
	mockCtx = ctx.Background()
)

type categorySuite struct {
	suite.Suite
	repo     *mocks.CategoryRepo
	recorder *notify.Recorder
	subject  domain.CategoryUsecase
}

func TestCategory(t *testing.T) {
	suite.Run(t, new(categorySuite))
}

func (s *categorySuite) SetupTest() {
	s.repo = &mocks.CategoryRepo{}
	s.recorder = notify.NewRecorder()
	s.subject = New(s.repo, cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   keys.PfxCategory,
		Cache: primitive.NewPrimitive("category", 1),
	}), s.recorder)
}

func (s *categorySuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
}

func (s *categorySuite) TestAllIsCached() {
	cats := []domain.Category{{Id: 1, CategoryName: "Art"}, {Id: 2, CategoryName: "Books"}}
	s.repo.On("All", mockCtx).Return(cats, nil).Once()

	got, err := s.subject.All(mockCtx)
	s.Require().NoError(err)
	s.Equal(cats, got)

	got, err = s.subject.All(mockCtx)
	s.Require().NoError(err)
	s.Equal(cats, got)
}

func (s *categorySuite) TestWriteInvalidates() {
	s.repo.On("All", mockCtx).Return([]domain.Category{{Id: 1, CategoryName: "Art"}}, nil).Twice()
	s.repo.On("Create", mockCtx, domain.Category{CategoryName: "Toys"}).Return(nil).Once()

	_, err := s.subject.All(mockCtx)
	s.Require().NoError(err)
	s.NoError(s.subject.Create(mockCtx, domain.Category{Id: 9, CategoryName: "Toys"}))
	_, err = s.subject.All(mockCtx)
	s.Require().NoError(err)
}

func (s *categorySuite) TestAllFails() {
	s.repo.On("All", mockCtx).Return(nil, errors.New("boom")).Once()
	_, err := s.subject.All(mockCtx)
	s.Error(err)
}

func (s *categorySuite) TestInvalid() {
	s.True(errors.Is(s.subject.Create(mockCtx, domain.Category{}), domain.ErrInvalidInput))
	s.True(errors.Is(s.subject.Update(mockCtx, domain.Category{CategoryName: "Art"}), domain.ErrInvalidInput))
	s.repo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *categorySuite) TestDeleteRejected() {
	s.repo.On("Delete", mockCtx, int64(3)).
		Return(&domain.RequestError{Status: 200, Message: "Category has items"}).Once()

	s.Error(s.subject.Delete(mockCtx, 3))
	last, ok := s.recorder.Last()
	s.Require().True(ok)
	s.Equal("Category has items", last.Message)
}
