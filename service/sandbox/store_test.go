package sandbox

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/auction/domain"
)

type storeSuite struct {
	suite.Suite
	now    time.Time
	store  *Store
	seller int64
	bidder int64
	cat    int64
}

func TestStore(t *testing.T) {
	suite.Run(t, new(storeSuite))
}

func (s *storeSuite) SetupTest() {
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.store = NewStore(func() time.Time { return s.now })

	var err error
	s.seller, err = s.store.AddUser(domain.User{Email: "Seller@Example.com", Credit: 50000}, "pw")
	s.Require().NoError(err)
	s.bidder, err = s.store.AddUser(domain.User{Email: "bidder@example.com"}, "pw")
	s.Require().NoError(err)
	s.cat, err = s.store.CreateCategory(domain.Category{CategoryName: "Books"})
	s.Require().NoError(err)
}

func (s *storeSuite) item(title string, start, end time.Duration) int64 {
	id, err := s.store.CreateItem(s.seller, domain.ItemForm{
		Title:        title,
		CategoryId:   s.cat,
		MinimumBid:   decimal.NewFromInt(10),
		Description:  title,
		BidStartDate: domain.NewTimestamp(s.now.Add(start)),
		BidEndDate:   domain.NewTimestamp(s.now.Add(end)),
	})
	s.Require().NoError(err)
	return id
}

func (s *storeSuite) bid(itemId int64, amount int64) error {
	_, err := s.store.PlaceBid(s.bidder, domain.BidRequest{ItemId: itemId, BidAmount: decimal.NewFromInt(amount)})
	return err
}

func (s *storeSuite) TestDuplicateEmail() {
	_, err := s.store.AddUser(domain.User{Email: "seller@example.com"}, "pw")
	s.True(errors.Is(err, domain.ErrInvalidInput))
}

func (s *storeSuite) TestRegisterNeedsVerification() {
	code, err := s.store.Register(domain.RegisterRequest{Email: "new@example.com", Password: "pw"})
	s.Require().NoError(err)
	s.Len(code, 6)

	_, err = s.store.Login(domain.LoginRequest{Email: "new@example.com", Password: "pw"})
	s.EqualError(err, "Please verify your email first")

	s.Error(s.store.Verify(domain.VerifyRequest{Email: "new@example.com", Token: "x" + code}))
	s.NoError(s.store.Verify(domain.VerifyRequest{Email: "new@example.com", Token: code}))
	s.Error(s.store.Verify(domain.VerifyRequest{Email: "new@example.com", Token: code}))

	u, err := s.store.Login(domain.LoginRequest{Email: "NEW@example.com", Password: "pw"})
	s.Require().NoError(err)
	s.Equal("new", u.Username)
}

func (s *storeSuite) TestBidRules() {
	upcoming := s.item("upcoming", time.Hour, 2*time.Hour)
	ended := s.item("ended", -2*time.Hour, -time.Hour)
	active := s.item("active", -time.Hour, time.Hour)

	s.True(errors.Is(s.bid(upcoming, 20), domain.ErrBiddingClosed))
	s.True(errors.Is(s.bid(ended, 20), domain.ErrBiddingClosed))
	s.True(errors.Is(s.bid(999, 20), domain.ErrNotFound))

	s.EqualError(s.bid(active, 10), "Bid amount must be greater than $10.00")
	s.NoError(s.bid(active, 11))
	s.EqualError(s.bid(active, 11), "Bid amount must be greater than $11.00")
	s.NoError(s.bid(active, 30))

	_, err := s.store.PlaceBid(s.seller, domain.BidRequest{ItemId: active, BidAmount: decimal.NewFromInt(100)})
	s.True(errors.Is(err, domain.ErrInvalidAmount))

	item, err := s.store.Item(active)
	s.Require().NoError(err)
	s.Require().Len(item.Bids, 2)
	s.True(item.Bids[0].BidAmount.Equal(decimal.NewFromInt(30)))
	s.Equal("bidder", item.Bids[0].Bidder.FullName)
}

func (s *storeSuite) TestListingFee() {
	s.item("a", time.Hour, 2*time.Hour)
	u, err := s.store.Profile(s.seller)
	s.Require().NoError(err)
	s.Equal(int64(45000), u.Credit)

	_, err = s.store.CreateItem(s.bidder, domain.ItemForm{Title: "x", CategoryId: s.cat})
	s.True(errors.Is(err, domain.ErrInsufficientCredit))

	_, err = s.store.CreateItem(s.seller, domain.ItemForm{
		Title:        "x",
		CategoryId:   s.cat,
		BidStartDate: domain.NewTimestamp(s.now),
		BidEndDate:   domain.NewTimestamp(s.now),
	})
	s.True(errors.Is(err, domain.ErrInvalidInput))
}

func (s *storeSuite) TestOwnership() {
	id := s.item("a", time.Hour, 2*time.Hour)
	bidder := domain.JwtCustomClaims{UserId: s.bidder}
	admin := domain.JwtCustomClaims{UserId: 42, Role: domain.RoleAdmin}

	s.True(errors.Is(s.store.DeleteItem(bidder, id), domain.ErrForbidden))
	s.NoError(s.store.DeleteItem(admin, id))
	_, err := s.store.Item(id)
	s.True(errors.Is(err, domain.ErrNotFound))
}

func (s *storeSuite) TestHome() {
	for i := 0; i < 10; i++ {
		s.item("open", time.Duration(10-i)*time.Hour, 24*time.Hour)
	}
	s.item("done", -2*time.Hour, -time.Hour)

	home := s.store.Home()
	s.Len(home, homeSize)
	for i := 1; i < len(home); i++ {
		s.False(home[i].BidStartDate.Before(home[i-1].BidStartDate.Time))
	}
	for _, i := range home {
		s.NotEqual("done", i.Title)
	}
}

func (s *storeSuite) TestItemsPaging() {
	for i := 0; i < 5; i++ {
		s.item("lamp", time.Hour, 2*time.Hour)
	}
	s.item("vase", time.Hour, 2*time.Hour)

	page := s.store.Items(domain.ListOptions{Page: 2, Size: 2, Search: "LAMP"})
	s.Equal(5, page.RowCount)
	s.Len(page.Queryable, 2)

	page = s.store.Items(domain.ListOptions{Page: 9, Size: 2})
	s.Equal(6, page.RowCount)
	s.Empty(page.Queryable)
}

func (s *storeSuite) TestRate() {
	id := s.item("a", -time.Hour, time.Hour)
	r := domain.Rating{RateeId: s.bidder, ItemId: id, RatingValue: 3}

	s.True(errors.Is(s.store.Rate(s.seller, r), domain.ErrInvalidRating))
	s.Require().NoError(s.bid(id, 20))
	s.True(errors.Is(s.store.Rate(s.bidder, r), domain.ErrForbidden))
	s.NoError(s.store.Rate(s.seller, r))

	r.RatingValue = 5
	s.NoError(s.store.Rate(s.seller, r))
	got, ok := s.store.Rating(s.bidder, id)
	s.True(ok)
	s.Equal(5, got.RatingValue)
	s.Equal(s.seller, got.RaterId)
}

func (s *storeSuite) TestDashboard() {
	sold := s.item("sold", -time.Hour, time.Hour)
	s.Require().NoError(s.bid(sold, 40))
	s.item("unsold", -3*time.Hour, -2*time.Hour)

	for _, amount := range []int64{100, 700, 300, 200, 600, 500} {
		_, err := s.store.Pay(s.bidder, amount)
		s.Require().NoError(err)
	}

	s.now = s.now.Add(2 * time.Hour)
	d := s.store.Dashboard()
	s.Equal(2, d.TotalItems)
	s.Equal(1, d.TotalBid)
	s.Equal(6, d.TotalExchange)
	s.True(d.TotalExchangeAmount.Equal(decimal.NewFromInt(2400)))
	s.True(d.TotalSellRevenue.Equal(decimal.NewFromInt(40)))
	s.Require().Len(d.Top5Exchanges, 5)
	s.True(d.Top5Exchanges[0].Amount.Equal(decimal.NewFromInt(700)))
	s.True(d.Top5Exchanges[4].Amount.Equal(decimal.NewFromInt(200)))

	u, err := s.store.Profile(s.bidder)
	s.Require().NoError(err)
	s.Equal(int64(2400), u.Credit)
}

func (s *storeSuite) TestFiles() {
	path := s.store.SaveFile("Photo.PNG", []byte("data"))
	s.Regexp(`^uploads/[0-9a-f-]{36}\.png$`, path)
	data, ok := s.store.File(path)
	s.True(ok)
	s.Equal("data", string(data))
	_, ok = s.store.File("uploads/missing.png")
	s.False(ok)
}
