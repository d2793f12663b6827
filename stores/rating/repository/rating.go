package repository

import (
	"fmt"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/api"
)

type ratingRepo struct {
	api api.Client
}

func NewRatingRepo(cl api.Client) domain.RatingRepo {
	return &ratingRepo{cl}
}

func (r *ratingRepo) FindOne(c ctx.Ctx, rateeId, itemId int64) (*domain.Rating, error) {
	path := fmt.Sprintf("%s/%d/%d", api.PathRating, rateeId, itemId)
	res, err := r.api.Get(c, path, api.Quiet())
	if err != nil {
		c.WithFields(log.Fields{"rateeId": rateeId, "itemId": itemId, "err": err}).Warn("api.Get failed")
		return nil, err
	}

	rating := &domain.Rating{}
	if err := res.Decode(rating); err == api.ErrNoData {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("res.Decode failed")
		return nil, err
	}
	return rating, nil
}

func (r *ratingRepo) Upsert(c ctx.Ctx, rating domain.Rating) error {
	if _, err := r.api.Post(c, api.PathRating, rating); err != nil {
		c.WithFields(log.Fields{
			"rateeId": rating.RateeId,
			"itemId":  rating.ItemId,
			"err":     err,
		}).Error("api.Post failed")
		return err
	}
	return nil
}
