package usecase

import (
	"github.com/go-playground/validator/v10"
	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	bValidator "github.com/x-xyz/auction/base/validator"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/notify"
)

type impl struct {
	users      domain.UserRepo
	categories domain.CategoryUsecase
	items      domain.ItemRepo
	payments   domain.PaymentRepo
	notifier   domain.Notifier
	nav        domain.Navigator
	validate   *validator.Validate
}

type AccountUseCaseCfg struct {
	Users      domain.UserRepo
	Categories domain.CategoryUsecase
	Items      domain.ItemRepo
	Payments   domain.PaymentRepo
	Notifier   domain.Notifier
	Navigator  domain.Navigator
}

func New(cfg *AccountUseCaseCfg) domain.AccountUsecase {
	return &impl{
		users:      cfg.Users,
		categories: cfg.Categories,
		items:      cfg.Items,
		payments:   cfg.Payments,
		notifier:   cfg.Notifier,
		nav:        cfg.Navigator,
		validate:   bValidator.New(),
	}
}

// Profile fails only when the user cannot be loaded, the lists degrade to
// empty ones
func (im *impl) Profile(c ctx.Ctx, userId int64) (*domain.Profile, error) {
	var (
		user  *domain.User
		cats  []domain.Category
		items []domain.Item
	)

	b := goroutines.NewBatch(3, goroutines.WithBatchSize(3))
	defer b.Close()
	b.Queue(func() (interface{}, error) {
		u, err := im.users.Profile(c, userId)
		if err != nil {
			return nil, xerrors.Errorf("users.Profile: %w", err)
		}
		user = u
		return nil, nil
	})
	b.Queue(func() (interface{}, error) {
		res, err := im.categories.All(c)
		if err != nil {
			c.WithField("err", err).Warn("categories.All failed")
			return nil, nil
		}
		cats = res
		return nil, nil
	})
	b.Queue(func() (interface{}, error) {
		res, err := im.items.FindMine(c)
		if err != nil {
			c.WithField("err", err).Warn("items.FindMine failed")
			return nil, nil
		}
		items = res
		return nil, nil
	})
	b.QueueComplete()

	var err error
	for ret := range b.Results() {
		if ret.Error() != nil {
			err = ret.Error()
		}
	}
	if err != nil {
		c.WithFields(log.Fields{"userId": userId, "err": err}).Error("load profile failed")
		return nil, err
	}

	if cats == nil {
		cats = []domain.Category{}
	}
	if items == nil {
		items = []domain.Item{}
	}
	return &domain.Profile{User: user, Categories: cats, Items: items}, nil
}

func (im *impl) Info(c ctx.Ctx, rawId string) (*domain.User, error) {
	id, err := domain.ParseID(rawId)
	if err != nil {
		im.nav.Navigate(domain.RouteNotFound)
		return nil, err
	}

	u, err := im.users.Profile(c, id)
	if err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("users.Profile failed")
		return nil, err
	}
	return u, nil
}

func (im *impl) Recharge(c ctx.Ctx, amount int64) (string, error) {
	req := domain.RechargeRequest{Amount: amount}
	if err := im.validate.Struct(req); err != nil {
		return "", xerrors.Errorf("%s: %w", bValidator.Describe(err), domain.ErrInvalidInput)
	}

	redirect, err := im.payments.Pay(c, req)
	if err != nil {
		c.WithFields(log.Fields{"amount": amount, "err": err}).Error("payments.Pay failed")
		notify.Rejection(im.notifier, err)
		return "", err
	}
	if redirect == "" {
		return "", xerrors.Errorf("no payment url: %w", domain.ErrRequestFailed)
	}

	im.nav.Navigate(redirect)
	return redirect, nil
}
