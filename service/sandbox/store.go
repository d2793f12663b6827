package sandbox

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/x-xyz/auction/domain"
)

const homeSize = 8

// Rejection is a refused call, Message is what the user sees
type Rejection struct {
	Message string
	Kind    error
}

func (r *Rejection) Error() string {
	return r.Message
}

func (r *Rejection) Unwrap() error {
	return r.Kind
}

func reject(kind error, format string, args ...interface{}) error {
	return &Rejection{Message: fmt.Sprintf(format, args...), Kind: kind}
}

type account struct {
	domain.User
	password []byte
	verified bool
	code     string
}

// Store keeps the whole marketplace in memory
type Store struct {
	mu  sync.RWMutex
	now func() time.Time
	seq int64

	accounts   map[int64]*account
	byEmail    map[string]int64
	items      map[int64]*domain.Item
	bids       []domain.Bid
	ratings    map[[2]int64]domain.Rating
	categories map[int64]*domain.Category
	exchanges  []domain.Exchange
	files      map[string][]byte
}

func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:        now,
		accounts:   map[int64]*account{},
		byEmail:    map[string]int64{},
		items:      map[int64]*domain.Item{},
		ratings:    map[[2]int64]domain.Rating{},
		categories: map[int64]*domain.Category{},
		files:      map[string][]byte{},
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func pageBounds(opts domain.ListOptions, n int) (int, int) {
	page, size := opts.Page, opts.Size
	if page <= 0 {
		page = domain.DefaultPage
	}
	if size <= 0 {
		size = domain.DefaultPageSize
	}
	from := (page - 1) * size
	if from > n {
		from = n
	}
	to := from + size
	if to > n {
		to = n
	}
	return from, to
}

func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func summary(a *account) *domain.UserSummary {
	if a == nil {
		return nil
	}
	return &domain.UserSummary{Id: a.Id, FullName: a.FullName, Username: a.Username}
}

// AddUser creates a verified account, used to seed the sandbox
func (s *Store) AddUser(u domain.User, password string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUser(u, password, true)
}

func (s *Store) addUser(u domain.User, password string, verified bool) (int64, error) {
	email := strings.ToLower(u.Email)
	if _, ok := s.byEmail[email]; ok {
		return 0, reject(domain.ErrInvalidInput, "Email %s is already registered", u.Email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return 0, err
	}

	u.Id = s.nextID()
	u.Email = email
	if u.Username == "" {
		u.Username = strings.SplitN(email, "@", 2)[0]
	}
	if u.FullName == "" {
		u.FullName = u.Username
	}
	s.accounts[u.Id] = &account{User: u, password: hash, verified: verified}
	s.byEmail[email] = u.Id
	return u.Id, nil
}

// Register returns the code the user has to verify with
func (s *Store) Register(req domain.RegisterRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.addUser(domain.User{Email: req.Email}, req.Password, false)
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", uuid.New().ID()%1000000)
	s.accounts[id].code = code
	return code, nil
}

func (s *Store) Verify(req domain.VerifyRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.accounts[s.byEmail[strings.ToLower(req.Email)]]
	if a == nil || a.verified || a.code != req.Token {
		return reject(domain.ErrInvalidInput, "Invalid verification code")
	}
	a.verified = true
	a.code = ""
	return nil
}

func (s *Store) Login(req domain.LoginRequest) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.accounts[s.byEmail[strings.ToLower(req.Email)]]
	if a == nil || a.IsDeleted || bcrypt.CompareHashAndPassword(a.password, []byte(req.Password)) != nil {
		return domain.User{}, reject(domain.ErrUnauthenticated, "Email or password is incorrect")
	}
	if !a.verified {
		return domain.User{}, reject(domain.ErrUnauthenticated, "Please verify your email first")
	}
	return a.User, nil
}

func (s *Store) Users(opts domain.ListOptions) domain.UserPage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := []domain.User{}
	for _, a := range s.accounts {
		if !a.IsDeleted && matches(opts.Search, a.FullName, a.Username, a.Email) {
			all = append(all, a.User)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Id < all[j].Id })
	from, to := pageBounds(opts, len(all))
	return domain.UserPage{Queryable: all[from:to], RowCount: len(all)}
}

// Profile includes the items and bids of the user
func (s *Store) Profile(id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.accounts[id]
	if a == nil || a.IsDeleted {
		return nil, reject(domain.ErrNotFound, "User not found")
	}
	u := a.User
	u.Items = s.itemsOf(id)
	u.Bids = []domain.Bid{}
	for _, b := range s.bids {
		if b.BidderId == id {
			u.Bids = append(u.Bids, b)
		}
	}
	return &u, nil
}

// UpdateUser lets users edit their names and admins everything but the
// balance
func (s *Store) UpdateUser(actor domain.JwtCustomClaims, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.accounts[u.Id]
	if a == nil || a.IsDeleted {
		return reject(domain.ErrNotFound, "User not found")
	}
	if actor.UserId != u.Id && !actor.IsAdmin() {
		return reject(domain.ErrForbidden, domain.MsgUnauthorized)
	}
	if u.FullName != "" {
		a.FullName = u.FullName
	}
	if u.Username != "" {
		a.Username = u.Username
	}
	if actor.IsAdmin() {
		a.Role = u.Role
	}
	return nil
}

func (s *Store) DeleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.accounts[id]
	if a == nil || a.IsDeleted {
		return reject(domain.ErrNotFound, "User not found")
	}
	a.IsDeleted = true
	return nil
}

func (s *Store) Categories(opts domain.ListOptions) domain.CategoryPage {
	all := s.AllCategories()
	filtered := []domain.Category{}
	for _, c := range all {
		if matches(opts.Search, c.CategoryName) {
			filtered = append(filtered, c)
		}
	}
	from, to := pageBounds(opts, len(filtered))
	return domain.CategoryPage{Queryable: filtered[from:to], RowCount: len(filtered)}
}

func (s *Store) AllCategories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := []domain.Category{}
	for _, c := range s.categories {
		if !c.IsDeleted {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Id < all[j].Id })
	return all
}

func (s *Store) CreateCategory(cat domain.Category) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cat.ParentCategoryId != nil && s.category(*cat.ParentCategoryId) == nil {
		return 0, reject(domain.ErrInvalidInput, "Parent category does not exist")
	}
	cat.Id = s.nextID()
	cat.IsDeleted = false
	s.categories[cat.Id] = &cat
	return cat.Id, nil
}

func (s *Store) UpdateCategory(cat domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.category(cat.Id)
	if cur == nil {
		return reject(domain.ErrNotFound, "Category not found")
	}
	if cat.ParentCategoryId != nil && (*cat.ParentCategoryId == cat.Id || s.category(*cat.ParentCategoryId) == nil) {
		return reject(domain.ErrInvalidInput, "Invalid parent category")
	}
	cur.CategoryName = cat.CategoryName
	cur.ParentCategoryId = cat.ParentCategoryId
	return nil
}

func (s *Store) DeleteCategory(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.category(id)
	if cur == nil {
		return reject(domain.ErrNotFound, "Category not found")
	}
	for _, i := range s.items {
		if !i.IsDeleted && i.CategoryId == id {
			return reject(domain.ErrInvalidInput, "Category has items")
		}
	}
	cur.IsDeleted = true
	return nil
}

func (s *Store) category(id int64) *domain.Category {
	c := s.categories[id]
	if c == nil || c.IsDeleted {
		return nil
	}
	return c
}

// view returns a copy of the item with its bids, highest first
func (s *Store) view(i *domain.Item) domain.Item {
	v := *i
	v.Seller = summary(s.accounts[i.SellerId])
	v.Bids = []domain.Bid{}
	for _, b := range s.bids {
		if b.ItemId == i.Id {
			b.Bidder = summary(s.accounts[b.BidderId])
			v.Bids = append(v.Bids, b)
		}
	}
	sort.SliceStable(v.Bids, func(a, b int) bool { return v.Bids[a].BidAmount.GreaterThan(v.Bids[b].BidAmount) })
	return v
}

func (s *Store) live() []*domain.Item {
	all := []*domain.Item{}
	for _, i := range s.items {
		if !i.IsDeleted {
			all = append(all, i)
		}
	}
	sort.Slice(all, func(a, b int) bool { return all[a].Id < all[b].Id })
	return all
}

func (s *Store) Items(opts domain.ListOptions) domain.ItemPage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := []domain.Item{}
	for _, i := range s.live() {
		if matches(opts.Search, i.Title, i.Description) {
			all = append(all, s.view(i))
		}
	}
	from, to := pageBounds(opts, len(all))
	return domain.ItemPage{Queryable: all[from:to], RowCount: len(all)}
}

// Home lists the items still open for bidding, soonest first
func (s *Store) Home() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	all := []domain.Item{}
	for _, i := range s.live() {
		if i.Status(now) != domain.BidStatusEnded {
			all = append(all, s.view(i))
		}
	}
	sort.SliceStable(all, func(a, b int) bool { return all[a].BidStartDate.Before(all[b].BidStartDate.Time) })
	if len(all) > homeSize {
		all = all[:homeSize]
	}
	return all
}

func (s *Store) ItemsOf(sellerId int64) domain.ItemPage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.itemsOf(sellerId)
	return domain.ItemPage{Queryable: all, RowCount: len(all)}
}

func (s *Store) itemsOf(sellerId int64) []domain.Item {
	all := []domain.Item{}
	for _, i := range s.live() {
		if i.SellerId == sellerId {
			all = append(all, s.view(i))
		}
	}
	return all
}

func (s *Store) Item(id int64) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.items[id]
	if i == nil || i.IsDeleted {
		return nil, reject(domain.ErrNotFound, "Item not found")
	}
	v := s.view(i)
	return &v, nil
}

func (s *Store) checkForm(form domain.ItemForm) error {
	if s.category(form.CategoryId) == nil {
		return reject(domain.ErrInvalidInput, "Category does not exist")
	}
	if form.BidStartDate.IsZero() || form.BidEndDate.IsZero() {
		return reject(domain.ErrInvalidInput, "Bid start and end dates are required")
	}
	if !form.BidEndDate.After(form.BidStartDate.Time) {
		return reject(domain.ErrInvalidInput, "Bid end date must be after the start date")
	}
	return nil
}

// CreateItem charges the seller the listing fee
func (s *Store) CreateItem(sellerId int64, form domain.ItemForm) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seller := s.accounts[sellerId]
	if seller == nil || seller.IsDeleted {
		return 0, reject(domain.ErrUnauthenticated, domain.MsgUnauthenticated)
	}
	if !seller.CanList() {
		return 0, reject(domain.ErrInsufficientCredit, "Insufficient credits")
	}
	if err := s.checkForm(form); err != nil {
		return 0, err
	}

	item := &domain.Item{
		Id:           s.nextID(),
		Title:        form.Title,
		Description:  form.Description,
		ImagePath:    form.ImagePath,
		DocumentPath: form.DocumentPath,
		MinimumBid:   form.MinimumBid,
		BidIncrement: form.BidIncrement,
		BidStartDate: domain.NewTimestamp(form.BidStartDate.Time),
		BidEndDate:   domain.NewTimestamp(form.BidEndDate.Time),
		SellerId:     sellerId,
		CategoryId:   form.CategoryId,
	}
	s.items[item.Id] = item
	seller.Credit -= domain.ListingFeeCredits * domain.CreditUnit
	return item.Id, nil
}

func (s *Store) UpdateItem(actor domain.JwtCustomClaims, form domain.ItemForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.items[form.Id]
	if item == nil || item.IsDeleted {
		return reject(domain.ErrNotFound, "Item not found")
	}
	if item.SellerId != actor.UserId && !actor.IsAdmin() {
		return reject(domain.ErrForbidden, domain.MsgUnauthorized)
	}
	if err := s.checkForm(form); err != nil {
		return err
	}

	item.Title = form.Title
	item.Description = form.Description
	item.ImagePath = form.ImagePath
	item.DocumentPath = form.DocumentPath
	item.MinimumBid = form.MinimumBid
	item.BidIncrement = form.BidIncrement
	item.BidStartDate = domain.NewTimestamp(form.BidStartDate.Time)
	item.BidEndDate = domain.NewTimestamp(form.BidEndDate.Time)
	item.CategoryId = form.CategoryId
	return nil
}

func (s *Store) DeleteItem(actor domain.JwtCustomClaims, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.items[id]
	if item == nil || item.IsDeleted {
		return reject(domain.ErrNotFound, "Item not found")
	}
	if item.SellerId != actor.UserId && !actor.IsAdmin() {
		return reject(domain.ErrForbidden, domain.MsgUnauthorized)
	}
	item.IsDeleted = true
	return nil
}

// PlaceBid accepts amounts above the current highest bid, or above the
// minimum bid while there is none
func (s *Store) PlaceBid(bidderId int64, req domain.BidRequest) (domain.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.items[req.ItemId]
	if item == nil || item.IsDeleted {
		return domain.Bid{}, reject(domain.ErrNotFound, "Item not found")
	}
	now := s.now()
	if item.Status(now) != domain.BidStatusActive {
		return domain.Bid{}, reject(domain.ErrBiddingClosed, "Bidding is not open for this item")
	}
	if item.SellerId == bidderId {
		return domain.Bid{}, reject(domain.ErrInvalidAmount, "You cannot bid on your own item")
	}

	v := s.view(item)
	if floor := v.Floor(); !req.BidAmount.GreaterThan(floor) {
		return domain.Bid{}, reject(domain.ErrInvalidAmount, "Bid amount must be greater than %s", domain.FormatAmount(floor))
	}

	bid := domain.Bid{
		Id:        s.nextID(),
		ItemId:    item.Id,
		BidderId:  bidderId,
		BidAmount: req.BidAmount,
		BidDate:   domain.NewTimestamp(now),
	}
	s.bids = append(s.bids, bid)
	bid.Bidder = summary(s.accounts[bidderId])
	return bid, nil
}

func (s *Store) Rating(rateeId, itemId int64) (domain.Rating, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.ratings[[2]int64{rateeId, itemId}]
	return r, ok
}

// Rate upserts the rating the seller of the item gives one of its bidders
func (s *Store) Rate(raterId int64, r domain.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.items[r.ItemId]
	if item == nil || item.IsDeleted {
		return reject(domain.ErrNotFound, "Item not found")
	}
	if item.SellerId != raterId {
		return reject(domain.ErrForbidden, "Only the seller can rate bidders")
	}
	bid := false
	for _, b := range s.bids {
		if b.ItemId == r.ItemId && b.BidderId == r.RateeId {
			bid = true
			break
		}
	}
	if !bid {
		return reject(domain.ErrInvalidRating, "Bidder did not bid on this item")
	}

	r.RaterId = raterId
	s.ratings[[2]int64{r.RateeId, r.ItemId}] = r
	return nil
}

// Pay settles a recharge at once, there is no payment provider here
func (s *Store) Pay(userId int64, amount int64) (domain.Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.accounts[userId]
	if a == nil || a.IsDeleted {
		return domain.Exchange{}, reject(domain.ErrUnauthenticated, domain.MsgUnauthenticated)
	}
	ex := domain.Exchange{
		Id:        s.nextID(),
		Amount:    decimal.NewFromInt(amount),
		Status:    "completed",
		CreatedAt: domain.NewTimestamp(s.now()),
	}
	s.exchanges = append(s.exchanges, ex)
	a.Credit += amount
	return ex, nil
}

func (s *Store) Dashboard() domain.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d := domain.Dashboard{
		TotalExchange:       len(s.exchanges),
		TotalExchangeAmount: decimal.Zero,
		TotalBid:            len(s.bids),
		TotalBidRevenue:     decimal.Zero,
		TotalSellRevenue:    decimal.Zero,
		Top5Exchanges:       []domain.Exchange{},
	}
	for _, ex := range s.exchanges {
		d.TotalExchangeAmount = d.TotalExchangeAmount.Add(ex.Amount)
	}
	for _, b := range s.bids {
		d.TotalBidRevenue = d.TotalBidRevenue.Add(b.BidAmount)
	}
	now := s.now()
	for _, i := range s.live() {
		d.TotalItems++
		if v := s.view(i); i.Status(now) == domain.BidStatusEnded && len(v.Bids) > 0 {
			d.TotalSellRevenue = d.TotalSellRevenue.Add(v.Floor())
		}
	}

	top := append([]domain.Exchange(nil), s.exchanges...)
	sort.SliceStable(top, func(a, b int) bool { return top[a].Amount.GreaterThan(top[b].Amount) })
	if len(top) > 5 {
		top = top[:5]
	}
	d.Top5Exchanges = append(d.Top5Exchanges, top...)
	return d
}

// SaveFile returns the path the file is served under
func (s *Store) SaveFile(name string, data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := "uploads/" + uuid.NewString() + strings.ToLower(path.Ext(name))
	s.files[stored] = data
	return stored
}

func (s *Store) File(stored string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[stored]
	return data, ok
}

// VerificationCode is the pending code of email, false once verified
func (s *Store) VerificationCode(email string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a := s.accounts[s.byEmail[strings.ToLower(email)]]
	if a == nil || a.verified {
		return "", false
	}
	return a.code, true
}
