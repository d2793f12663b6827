package repository

import (
	"strconv"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/api"
)

type itemRepo struct {
	api api.Client
}

func NewItemRepo(cl api.Client) domain.ItemRepo {
	return &itemRepo{cl}
}

func itemPath(id int64) string {
	return api.PathItem + "/" + strconv.FormatInt(id, 10)
}

func (r *itemRepo) FindOne(c ctx.Ctx, id int64) (*domain.Item, error) {
	res, err := r.api.Get(c, itemPath(id), api.Quiet())
	if err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("api.Get failed")
		return nil, err
	}

	item := &domain.Item{}
	if err := res.Decode(item); err == api.ErrNoData {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("res.Decode failed")
		return nil, err
	}
	if item.Bids == nil {
		item.Bids = []domain.Bid{}
	}
	return item, nil
}

func (r *itemRepo) FindAll(c ctx.Ctx, opts domain.ListOptions) (*domain.ItemPage, error) {
	res, err := r.api.Get(c, api.PathItem, api.Quiet(), api.WithQuery(opts.Query()))
	if err != nil {
		c.WithFields(log.Fields{"opts": opts, "err": err}).Error("api.Get failed")
		return nil, err
	}

	page := &domain.ItemPage{}
	if err := res.Decode(page); err != nil && err != api.ErrNoData {
		c.WithField("err", err).Error("res.Decode failed")
		return nil, err
	}
	return page, nil
}

func (r *itemRepo) FindHome(c ctx.Ctx) ([]domain.Item, error) {
	res, err := r.api.Get(c, api.PathItemHome, api.Quiet())
	if err != nil {
		c.WithField("err", err).Error("api.Get failed")
		return nil, err
	}

	items := []domain.Item{}
	if err := res.Decode(&items); err != nil && err != api.ErrNoData {
		c.WithField("err", err).Error("res.Decode failed")
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) FindMine(c ctx.Ctx) ([]domain.Item, error) {
	res, err := r.api.Get(c, api.PathItemPerson, api.Quiet())
	if err != nil {
		c.WithField("err", err).Error("api.Get failed")
		return nil, err
	}

	page := &domain.ItemPage{}
	if err := res.Decode(page); err != nil && err != api.ErrNoData {
		c.WithField("err", err).Error("res.Decode failed")
		return nil, err
	}
	if page.Queryable == nil {
		return []domain.Item{}, nil
	}
	return page.Queryable, nil
}

func (r *itemRepo) Create(c ctx.Ctx, form domain.ItemForm) error {
	if _, err := r.api.Post(c, api.PathItem, form); err != nil {
		c.WithFields(log.Fields{"title": form.Title, "err": err}).Error("api.Post failed")
		return err
	}
	return nil
}

func (r *itemRepo) Update(c ctx.Ctx, form domain.ItemForm) error {
	if _, err := r.api.Put(c, api.PathItem, form); err != nil {
		c.WithFields(log.Fields{"id": form.Id, "err": err}).Error("api.Put failed")
		return err
	}
	return nil
}

func (r *itemRepo) Delete(c ctx.Ctx, id int64) error {
	if _, err := r.api.Delete(c, itemPath(id), nil); err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("api.Delete failed")
		return err
	}
	return nil
}
