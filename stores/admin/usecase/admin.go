package usecase

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/notify"
)

type impl struct {
	users      domain.UserRepo
	categories domain.CategoryUsecase
	payments   domain.PaymentRepo
	notifier   domain.Notifier
}

func New(users domain.UserRepo, categories domain.CategoryUsecase, payments domain.PaymentRepo, notifier domain.Notifier) domain.AdminUsecase {
	return &impl{
		users:      users,
		categories: categories,
		payments:   payments,
		notifier:   notifier,
	}
}

func (im *impl) ListUsers(c ctx.Ctx, opts domain.ListOptions) (*domain.UserPage, error) {
	page, err := im.users.FindAll(c, opts)
	if err != nil {
		c.WithFields(log.Fields{"opts": opts, "err": err}).Error("users.FindAll failed")
		return nil, err
	}
	return page, nil
}

func (im *impl) UpdateUser(c ctx.Ctx, u domain.User) error {
	if u.Id == 0 {
		return xerrors.Errorf("update without id: %w", domain.ErrInvalidInput)
	}
	if err := im.users.Update(c, u); err != nil {
		c.WithFields(log.Fields{"id": u.Id, "err": err}).Error("users.Update failed")
		notify.Rejection(im.notifier, err)
		return err
	}
	return nil
}

func (im *impl) DeleteUser(c ctx.Ctx, id int64) error {
	if err := im.users.Delete(c, id); err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("users.Delete failed")
		notify.Rejection(im.notifier, err)
		return err
	}
	return nil
}

func (im *impl) ListCategories(c ctx.Ctx, opts domain.ListOptions) (*domain.CategoryPage, error) {
	return im.categories.List(c, opts)
}

func (im *impl) AllCategories(c ctx.Ctx) ([]domain.Category, error) {
	return im.categories.All(c)
}

func (im *impl) CreateCategory(c ctx.Ctx, cat domain.Category) error {
	return im.categories.Create(c, cat)
}

func (im *impl) UpdateCategory(c ctx.Ctx, cat domain.Category) error {
	return im.categories.Update(c, cat)
}

func (im *impl) DeleteCategory(c ctx.Ctx, id int64) error {
	return im.categories.Delete(c, id)
}

func (im *impl) Dashboard(c ctx.Ctx) (*domain.Dashboard, error) {
	d, err := im.payments.Dashboard(c)
	if err != nil {
		c.WithField("err", err).Error("payments.Dashboard failed")
		return nil, err
	}
	if d.Top5Exchanges == nil {
		d.Top5Exchanges = []domain.Exchange{}
	}
	return d, nil
}
