package repository

import (
	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/api"
)

type bidRepo struct {
	api api.Client
}

func NewBidRepo(cl api.Client) domain.BidRepo {
	return &bidRepo{cl}
}

func (r *bidRepo) Create(c ctx.Ctx, req domain.BidRequest) error {
	if _, err := r.api.Post(c, api.PathBid, req); err != nil {
		c.WithFields(log.Fields{
			"itemId": req.ItemId,
			"amount": req.BidAmount,
			"err":    err,
		}).Error("api.Post failed")
		return err
	}
	return nil
}
