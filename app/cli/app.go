package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/goroutine"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/base/metrics"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/domain/keys"
	"github.com/x-xyz/auction/service/api"
	"github.com/x-xyz/auction/service/cache"
	"github.com/x-xyz/auction/service/cache/provider/primitive"
	"github.com/x-xyz/auction/service/livefeed"
	"github.com/x-xyz/auction/service/loading"
	"github.com/x-xyz/auction/service/notify"
	"github.com/x-xyz/auction/service/render"
	account_repository "github.com/x-xyz/auction/stores/account/repository"
	account_usecase "github.com/x-xyz/auction/stores/account/usecase"
	admin_usecase "github.com/x-xyz/auction/stores/admin/usecase"
	auth_repository "github.com/x-xyz/auction/stores/auth/repository"
	auth_usecase "github.com/x-xyz/auction/stores/auth/usecase"
	bid_repository "github.com/x-xyz/auction/stores/bid/repository"
	bid_usecase "github.com/x-xyz/auction/stores/bid/usecase"
	category_repository "github.com/x-xyz/auction/stores/category/repository"
	category_usecase "github.com/x-xyz/auction/stores/category/usecase"
	file_repository "github.com/x-xyz/auction/stores/file/repository"
	file_usecase "github.com/x-xyz/auction/stores/file/usecase"
	item_repository "github.com/x-xyz/auction/stores/item/repository"
	item_usecase "github.com/x-xyz/auction/stores/item/usecase"
	permission_usecase "github.com/x-xyz/auction/stores/permission/usecase"
	rating_repository "github.com/x-xyz/auction/stores/rating/repository"
	rating_usecase "github.com/x-xyz/auction/stores/rating/usecase"
)

var errUsage = errors.New("usage")

const usage = `commands:
  login <email> <password>      register <email> <password>   verify <code>
  logout                        whoami                        profile
  items [search] [page]         home                          mine
  show <item>                   bid <item> <amount>           watch <item>
  rate <item> <bidder> <1-5>    recharge <amount>             upload <file>
  categories                    users [search]                dashboard
  help                          quit (shell only)
`

type appCfg struct {
	BaseURL     string
	Timeout     time.Duration
	Tenant      string
	Credentials domain.CredentialStore
	Metrics     metrics.Service
	Out         io.Writer
	Now         func() time.Time
	Loc         *time.Location
}

// app is one terminal session against the backend
type app struct {
	out     io.Writer
	now     func() time.Time
	loc     *time.Location
	baseURL string
	met     metrics.Service

	creds    domain.CredentialStore
	notifier domain.Notifier
	route    string

	auth     domain.AuthUsecase
	items    domain.ItemUsecase
	account  domain.AccountUsecase
	admin    domain.AdminUsecase
	files    domain.FileUsecase
	ratings  domain.RatingRepo
	detail   *item_usecase.Detail
	form     *bid_usecase.Controller
	flow     *rating_usecase.Flow
	spinning *loading.Indicator
}

func newApp(cfg *appCfg) *app {
	a := &app{
		out:      cfg.Out,
		now:      cfg.Now,
		loc:      cfg.Loc,
		baseURL:  cfg.BaseURL,
		met:      cfg.Metrics,
		creds:    cfg.Credentials,
		notifier: notify.NewWriter(cfg.Out),
		spinning: loading.New(),
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.loc == nil {
		a.loc = time.Local
	}
	if a.met == nil {
		a.met = metrics.NewLog("cli")
	}
	nav := notify.NewNavigation(log.Log(), func(route string) {
		a.route = route
		fmt.Fprintf(a.out, "-> %s\n", route)
	})

	client := api.NewClient(&api.ClientCfg{
		HttpClient:  http.Client{},
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout,
		Credentials: a.creds,
		Notifier:    a.notifier,
		Navigator:   nav,
		Loading:     a.spinning,
		Metrics:     a.met,
	})

	memory := primitive.NewPrimitive("cli", 1)
	perms := permission_usecase.New(cache.New(cache.ServiceConfig{
		Ttl:   time.Hour,
		Pfx:   keys.PfxPermission,
		Cache: memory,
	}), cfg.Tenant)
	categories := category_usecase.New(category_repository.NewCategoryRepo(client), cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   keys.PfxCategory,
		Cache: memory,
	}), a.notifier)

	itemRepo := item_repository.NewItemRepo(client)
	userRepo := account_repository.NewUserRepo(client)
	paymentRepo := account_repository.NewPaymentRepo(client)

	a.auth = auth_usecase.New(auth_repository.NewAuthRepo(client), a.creds, perms, a.notifier, nav)
	a.items = item_usecase.New(itemRepo, a.notifier)
	a.account = account_usecase.New(&account_usecase.AccountUseCaseCfg{
		Users:      userRepo,
		Categories: categories,
		Items:      itemRepo,
		Payments:   paymentRepo,
		Notifier:   a.notifier,
		Navigator:  nav,
	})
	a.admin = admin_usecase.New(userRepo, categories, paymentRepo, a.notifier)
	a.files = file_usecase.New(file_repository.NewFileRepo(client), a.notifier)
	a.ratings = rating_repository.NewRatingRepo(client)
	a.detail = item_usecase.NewDetail(itemRepo, nav)
	a.form = bid_usecase.NewController(bid_repository.NewBidRepo(client), a.detail, a.notifier, bid_usecase.WithClock(a.now))
	a.flow = rating_usecase.NewFlow(a.ratings, a.detail, a.notifier)
	return a
}

// run executes one command. Failures the user was already notified about
// come back as errors too.
func (a *app) run(c ctx.Ctx, args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, args := args[0], args[1:]
	need := func(n int) error {
		if len(args) < n {
			fmt.Fprintf(a.out, "%s needs %d argument(s)\n%s", cmd, n, usage)
			return errUsage
		}
		return nil
	}

	switch cmd {
	case "help":
		fmt.Fprint(a.out, usage)
		return nil
	case "login":
		if err := need(2); err != nil {
			return err
		}
		return a.auth.Login(c, args[0], args[1])
	case "register":
		if err := need(2); err != nil {
			return err
		}
		return a.auth.Register(c, domain.RegisterRequest{Email: args[0], Password: args[1], ConfirmPassword: args[1]})
	case "verify":
		if err := need(1); err != nil {
			return err
		}
		return a.auth.Verify(c, args[0])
	case "logout":
		a.auth.Logout(c)
		return nil
	case "whoami":
		return a.whoami(c)
	case "profile":
		return a.profile(c)
	case "items":
		return a.list(c, args)
	case "home":
		items, err := a.items.Home(c)
		if err != nil {
			return err
		}
		return a.cards(items)
	case "mine":
		items, err := a.items.Mine(c)
		if err != nil {
			return err
		}
		return a.cards(items)
	case "show":
		if err := need(1); err != nil {
			return err
		}
		return a.show(c, args[0])
	case "bid":
		if err := need(2); err != nil {
			return err
		}
		return a.bid(c, args[0], args[1])
	case "watch":
		if err := need(1); err != nil {
			return err
		}
		return a.watch(c, args[0])
	case "rate":
		if err := need(3); err != nil {
			return err
		}
		return a.rate(c, args[0], args[1], args[2])
	case "recharge":
		if err := need(1); err != nil {
			return err
		}
		amount, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintln(a.out, "amount must be a whole number")
			return domain.ErrInvalidInput
		}
		url, err := a.account.Recharge(c, amount)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "complete the payment at %s\n", url)
		return nil
	case "upload":
		if err := need(1); err != nil {
			return err
		}
		return a.upload(c, args[0])
	case "categories":
		cats, err := a.admin.AllCategories(c)
		if err != nil {
			return err
		}
		for _, cat := range cats {
			fmt.Fprintf(a.out, "#%d %s\n", cat.Id, cat.CategoryName)
		}
		return nil
	case "users":
		return a.users(c, args)
	case "dashboard":
		return a.dashboard(c)
	}

	fmt.Fprintf(a.out, "unknown command %q\n%s", cmd, usage)
	return errUsage
}

// shell runs one command per line of in until it ends or reads quit
func (a *app) shell(c ctx.Ctx, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(a.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(a.out)
			return sc.Err()
		}
		args := strings.Fields(sc.Text())
		if len(args) == 1 && (args[0] == "quit" || args[0] == "exit") {
			return nil
		}
		if err := a.run(c, args); err != nil {
			c.WithFields(log.Fields{"cmd": args[0], "err": err}).Debug("command failed")
		}
		if c.Err() != nil {
			return nil
		}
	}
}

func (a *app) whoami(c ctx.Ctx) error {
	claims := a.auth.Claims(c)
	if claims.UserId == 0 {
		fmt.Fprintln(a.out, "not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "user #%d (%s)\n", claims.UserId, claims.Role)
	return nil
}

func (a *app) profile(c ctx.Ctx) error {
	claims := a.auth.Claims(c)
	if claims.UserId == 0 {
		fmt.Fprintln(a.out, "not signed in")
		return domain.ErrNoCredential
	}
	p, err := a.account.Profile(c, claims.UserId)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\ncredits: %s\n", p.User.FullName, p.User.Email, p.User.Credits().StringFixed(2))
	if !p.User.CanList() {
		fmt.Fprintf(a.out, "recharge to list items, a listing costs %d credits\n", domain.ListingFeeCredits)
	}
	return a.cards(p.Items)
}

func (a *app) list(c ctx.Ctx, args []string) error {
	opts := domain.ListOptions{}
	if len(args) > 0 {
		opts.Search = args[0]
	}
	if len(args) > 1 {
		page, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(a.out, "page must be a number")
			return domain.ErrInvalidInput
		}
		opts.Page = page
	}
	page, err := a.items.List(c, opts)
	if err != nil {
		return err
	}
	if err := a.cards(page.Queryable); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d item(s)\n", page.RowCount)
	return nil
}

func (a *app) cards(items []domain.Item) error {
	now := a.now()
	cards := make([]domain.Card, 0, len(items))
	for _, i := range items {
		cards = append(cards, domain.NewCard(i, now, a.loc))
	}
	return render.Cards(a.out, cards)
}

// open mounts the detail page of rawID unless it shows it already
func (a *app) open(c ctx.Ctx, rawID string) error {
	if id, err := domain.ParseID(rawID); err == nil && id == a.detail.ItemID() {
		return a.detail.Reload(c)
	}
	a.form.Collapse()
	a.flow.Cancel()
	return a.detail.Mount(c, rawID)
}

func (a *app) draw() error {
	item, bids := a.detail.Snapshot()
	return render.Detail(a.out, item, bids, a.now(), a.loc)
}

func (a *app) show(c ctx.Ctx, rawID string) error {
	if err := a.open(c, rawID); err != nil {
		return err
	}
	return a.draw()
}

func (a *app) bid(c ctx.Ctx, rawID, amount string) error {
	if err := a.open(c, rawID); err != nil {
		return err
	}
	if a.form.State() == bid_usecase.FormCollapsed {
		if err := a.form.Submit(c); err != nil {
			fmt.Fprintln(a.out, "bidding is not open for this item")
			return err
		}
	}
	a.form.SetAmount(amount)
	if err := a.form.Submit(c); err != nil {
		return err
	}
	return a.draw()
}

func (a *app) rate(c ctx.Ctx, rawID, rawBidder, rawValue string) error {
	if err := a.open(c, rawID); err != nil {
		return err
	}
	item, _ := a.detail.Snapshot()
	if !rating_usecase.CanRate(a.auth.Claims(c).UserId, item) {
		fmt.Fprintln(a.out, "only the seller can rate bidders")
		return domain.ErrForbidden
	}
	bidder, err := domain.ParseID(rawBidder)
	if err != nil {
		fmt.Fprintln(a.out, "bidder must be a user id")
		return domain.ErrInvalidInput
	}
	if err := a.flow.Open(c, bidder); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			fmt.Fprintf(a.out, "user #%d has no bid on this item\n", bidder)
		}
		return err
	}
	// unparsable values stay 0 and are refused by Confirm
	value, _ := strconv.Atoi(rawValue)
	a.flow.SetValue(value)
	return a.flow.Confirm(c)
}

func (a *app) upload(c ctx.Ctx, path string) error {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(a.out, "can't open %s\n", path)
		return err
	}
	defer f.Close()

	stored, err := a.files.Upload(c, filepath.Base(path), f)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, stored)
	return nil
}

func (a *app) users(c ctx.Ctx, args []string) error {
	opts := domain.ListOptions{}
	if len(args) > 0 {
		opts.Search = args[0]
	}
	page, err := a.admin.ListUsers(c, opts)
	if err != nil {
		return err
	}
	for _, u := range page.Queryable {
		fmt.Fprintf(a.out, "#%d %s <%s> %s\n", u.Id, u.FullName, u.Email, u.Role)
	}
	fmt.Fprintf(a.out, "%d user(s)\n", page.RowCount)
	return nil
}

func (a *app) dashboard(c ctx.Ctx) error {
	d, err := a.admin.Dashboard(c)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "items: %d\nbids: %d\nexchanges: %d (%s)\nrevenue: %s\n",
		d.TotalItems, d.TotalBid, d.TotalExchange, domain.FormatAmount(d.TotalExchangeAmount), domain.FormatAmount(d.TotalRevenue()))
	return nil
}

// watch shows the item and redraws it on every bid until c ends
func (a *app) watch(c ctx.Ctx, rawID string) error {
	if err := a.show(c, rawID); err != nil {
		return err
	}
	feed := livefeed.New(&livefeed.FeedCfg{
		BaseURL:     a.baseURL,
		Credentials: a.creds,
		Metrics:     a.met,
	}, a.detail.ItemID(), redraw{a})

	var err error
	if ev := <-goroutine.Go(func() { err = feed.Run(c) }); ev != nil {
		return xerrors.Errorf("live feed panicked: %v", ev.Panic)
	}
	return err
}

type redraw struct {
	a *app
}

func (r redraw) Reload(c ctx.Ctx) error {
	if err := r.a.detail.Reload(c); err != nil {
		return err
	}
	fmt.Fprintln(r.a.out)
	return r.a.draw()
}
