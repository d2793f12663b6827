package repository

import (
	"strconv"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/api"
)

type userRepo struct {
	api api.Client
}

func NewUserRepo(cl api.Client) domain.UserRepo {
	return &userRepo{cl}
}

func (r *userRepo) FindAll(c ctx.Ctx, opts domain.ListOptions) (*domain.UserPage, error) {
	res, err := r.api.Get(c, api.PathUser, api.Quiet(), api.WithQuery(opts.Query()))
	if err != nil {
		c.WithFields(log.Fields{"opts": opts, "err": err}).Error("api.Get failed")
		return nil, err
	}

	page := &domain.UserPage{}
	if err := res.Decode(page); err != nil && err != api.ErrNoData {
		c.WithField("err", err).Error("res.Decode failed")
		return nil, err
	}
	return page, nil
}

func (r *userRepo) Profile(c ctx.Ctx, id int64) (*domain.User, error) {
	res, err := r.api.Get(c, api.PathUserProfile+"/"+strconv.FormatInt(id, 10), api.Quiet())
	if err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("api.Get failed")
		return nil, err
	}

	u := &domain.User{}
	if err := res.Decode(u); err == api.ErrNoData {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("res.Decode failed")
		return nil, err
	}
	return u, nil
}

func (r *userRepo) Update(c ctx.Ctx, u domain.User) error {
	if _, err := r.api.Put(c, api.PathUser, u); err != nil {
		c.WithFields(log.Fields{"id": u.Id, "err": err}).Error("api.Put failed")
		return err
	}
	return nil
}

func (r *userRepo) Delete(c ctx.Ctx, id int64) error {
	if _, err := r.api.Delete(c, api.PathUser+"/"+strconv.FormatInt(id, 10), nil); err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("api.Delete failed")
		return err
	}
	return nil
}
