package usecase

import (
	"github.com/go-playground/validator/v10"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	bValidator "github.com/x-xyz/auction/base/validator"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/cache"
	"github.com/x-xyz/auction/service/notify"
)

const allKey = "all"

type impl struct {
	categories domain.CategoryRepo
	cache      cache.Service
	notifier   domain.Notifier
	validate   *validator.Validate
}

func New(categories domain.CategoryRepo, cache cache.Service, notifier domain.Notifier) domain.CategoryUsecase {
	return &impl{
		categories: categories,
		cache:      cache,
		notifier:   notifier,
		validate:   bValidator.New(),
	}
}

func (im *impl) List(c ctx.Ctx, opts domain.ListOptions) (*domain.CategoryPage, error) {
	return im.categories.FindAll(c, opts)
}

func (im *impl) All(c ctx.Ctx) ([]domain.Category, error) {
	cats := []domain.Category{}
	if err := im.cache.GetByFunc(c, allKey, &cats, func() (interface{}, error) {
		res, err := im.categories.All(c)
		if err != nil {
			return nil, err
		}
		return &res, nil
	}); err != nil {
		c.WithField("err", err).Error("cache.GetByFunc failed")
		return nil, err
	}
	return cats, nil
}

func (im *impl) Create(c ctx.Ctx, cat domain.Category) error {
	cat.Id = 0
	if err := im.validate.Struct(cat); err != nil {
		return xerrors.Errorf("%s: %w", bValidator.Describe(err), domain.ErrInvalidInput)
	}
	if err := im.categories.Create(c, cat); err != nil {
		c.WithFields(log.Fields{"name": cat.CategoryName, "err": err}).Error("categories.Create failed")
		notify.Rejection(im.notifier, err)
		return err
	}
	im.invalidate(c)
	return nil
}

func (im *impl) Update(c ctx.Ctx, cat domain.Category) error {
	if cat.Id == 0 {
		return xerrors.Errorf("update without id: %w", domain.ErrInvalidInput)
	}
	if err := im.validate.Struct(cat); err != nil {
		return xerrors.Errorf("%s: %w", bValidator.Describe(err), domain.ErrInvalidInput)
	}
	if err := im.categories.Update(c, cat); err != nil {
		c.WithFields(log.Fields{"id": cat.Id, "err": err}).Error("categories.Update failed")
		notify.Rejection(im.notifier, err)
		return err
	}
	im.invalidate(c)
	return nil
}

func (im *impl) Delete(c ctx.Ctx, id int64) error {
	if err := im.categories.Delete(c, id); err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("categories.Delete failed")
		notify.Rejection(im.notifier, err)
		return err
	}
	im.invalidate(c)
	return nil
}

func (im *impl) invalidate(c ctx.Ctx) {
	if err := im.cache.Del(c, allKey); err != nil {
		c.WithField("err", err).Warn("cache.Del failed")
	}
}
