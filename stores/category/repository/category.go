package repository

import (
	"strconv"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/api"
)

type categoryRepo struct {
	api api.Client
}

func NewCategoryRepo(cl api.Client) domain.CategoryRepo {
	return &categoryRepo{cl}
}

func (r *categoryRepo) FindAll(c ctx.Ctx, opts domain.ListOptions) (*domain.CategoryPage, error) {
	res, err := r.api.Get(c, api.PathCategory, api.Quiet(), api.WithQuery(opts.Query()))
	if err != nil {
		c.WithFields(log.Fields{"opts": opts, "err": err}).Error("api.Get failed")
		return nil, err
	}

	page := &domain.CategoryPage{}
	if err := res.Decode(page); err != nil && err != api.ErrNoData {
		c.WithField("err", err).Error("res.Decode failed")
		return nil, err
	}
	return page, nil
}

func (r *categoryRepo) All(c ctx.Ctx) ([]domain.Category, error) {
	res, err := r.api.Get(c, api.PathCategoryAll, api.Quiet())
	if err != nil {
		c.WithField("err", err).Error("api.Get failed")
		return nil, err
	}

	cats := []domain.Category{}
	if err := res.Decode(&cats); err != nil && err != api.ErrNoData {
		c.WithField("err", err).Error("res.Decode failed")
		return nil, err
	}
	return cats, nil
}

func (r *categoryRepo) Create(c ctx.Ctx, cat domain.Category) error {
	if _, err := r.api.Post(c, api.PathCategory, cat); err != nil {
		c.WithFields(log.Fields{"name": cat.CategoryName, "err": err}).Error("api.Post failed")
		return err
	}
	return nil
}

func (r *categoryRepo) Update(c ctx.Ctx, cat domain.Category) error {
	if _, err := r.api.Put(c, api.PathCategory, cat); err != nil {
		c.WithFields(log.Fields{"id": cat.Id, "err": err}).Error("api.Put failed")
		return err
	}
	return nil
}

func (r *categoryRepo) Delete(c ctx.Ctx, id int64) error {
	if _, err := r.api.Delete(c, api.PathCategory+"/"+strconv.FormatInt(id, 10), nil); err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("api.Delete failed")
		return err
	}
	return nil
}
