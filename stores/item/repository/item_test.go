package repository

import (
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/api"
	"github.com/x-xyz/auction/service/notify"
)

var mockCtx = ctx.Background()

type itemRepoSuite struct {
	suite.Suite
	srv      *httptest.Server
	reply    string
	req      *http.Request
	body     string
	recorder *notify.Recorder
	im       domain.ItemRepo
}

func TestItemRepo(t *testing.T) {
	suite.Run(t, new(itemRepoSuite))
}

func (s *itemRepoSuite) SetupTest() {
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := ioutil.ReadAll(r.Body)
		s.req, s.body = r, string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(s.reply))
	}))
	s.recorder = notify.NewRecorder()
	s.im = NewItemRepo(api.NewClient(&api.ClientCfg{
		BaseURL:   s.srv.URL,
		Notifier:  s.recorder,
		Navigator: s.recorder,
	}))
}

func (s *itemRepoSuite) TearDownTest() {
	s.srv.Close()
}

func (s *itemRepoSuite) TestFindOne() {
	s.reply = `{"success":true,"data":{"id":3,"title":"Lamp","minimumBid":10,"bids":null}}`
	item, err := s.im.FindOne(mockCtx, 3)
	s.Require().NoError(err)
	s.Equal("/api/Item/3", s.req.URL.Path)
	s.Equal("Lamp", item.Title)
	s.NotNil(item.Bids)
	s.Empty(item.Bids)
	s.Empty(s.recorder.Notifications())
}

func (s *itemRepoSuite) TestFindOneWithoutData() {
	s.reply = `{"success":true,"data":null}`
	_, err := s.im.FindOne(mockCtx, 3)
	s.Equal(domain.ErrNotFound, err)
}

func (s *itemRepoSuite) TestFindAllQuery() {
	s.reply = `{"success":true,"data":{"queryable":[{"id":1},{"id":2}],"rowCount":12}}`
	page, err := s.im.FindAll(mockCtx, domain.ListOptions{Page: 2, Search: "lamp"})
	s.Require().NoError(err)
	s.Equal("2", s.req.URL.Query().Get("page"))
	s.Equal("10", s.req.URL.Query().Get("size"))
	s.Equal("lamp", s.req.URL.Query().Get("search"))
	s.Len(page.Queryable, 2)
	s.Equal(12, page.RowCount)
}

func (s *itemRepoSuite) TestFindMine() {
	s.reply = `{"success":true,"data":{"queryable":null}}`
	items, err := s.im.FindMine(mockCtx)
	s.Require().NoError(err)
	s.Equal("/api/Item/person", s.req.URL.Path)
	s.NotNil(items)
	s.Empty(items)
}

func (s *itemRepoSuite) TestWrites() {
	s.reply = `{"success":true,"message":"Data saved successfully!"}`
	s.Require().NoError(s.im.Create(mockCtx, domain.ItemForm{Title: "Lamp"}))
	s.Equal(http.MethodPost, s.req.Method)
	s.Contains(s.body, `"title":"Lamp"`)

	s.Require().NoError(s.im.Update(mockCtx, domain.ItemForm{Id: 4, Title: "Lamp"}))
	s.Equal(http.MethodPut, s.req.Method)
	s.Contains(s.body, `"id":4`)

	s.Require().NoError(s.im.Delete(mockCtx, 4))
	s.Equal(http.MethodDelete, s.req.Method)
	s.Equal("/api/Item/4", s.req.URL.Path)

	s.Len(s.recorder.Notifications(), 3)
}

func (s *itemRepoSuite) TestRejected() {
	s.reply = `{"success":false,"message":"Insufficient credits"}`
	err := s.im.Create(mockCtx, domain.ItemForm{Title: "Lamp"})
	s.True(domain.IsRejected(err))
	s.True(errors.Is(err, domain.ErrRequestFailed))
	s.Equal("Insufficient credits", domain.MessageOf(err, ""))
}
