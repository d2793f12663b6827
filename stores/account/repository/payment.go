package repository

import (
	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/api"
)

type paymentRepo struct {
	api api.Client
}

func NewPaymentRepo(cl api.Client) domain.PaymentRepo {
	return &paymentRepo{cl}
}

func (r *paymentRepo) Pay(c ctx.Ctx, req domain.RechargeRequest) (string, error) {
	res, err := r.api.Post(c, api.PathPaymentPay, req, api.Quiet())
	if err != nil {
		c.WithFields(log.Fields{"amount": req.Amount, "err": err}).Error("api.Post failed")
		return "", err
	}

	var redirect string
	if err := res.Decode(&redirect); err != nil {
		c.WithField("err", err).Error("res.Decode failed")
		return "", err
	}
	return redirect, nil
}

func (r *paymentRepo) Dashboard(c ctx.Ctx) (*domain.Dashboard, error) {
	res, err := r.api.Get(c, api.PathDashboard, api.Quiet())
	if err != nil {
		c.WithField("err", err).Error("api.Get failed")
		return nil, err
	}

	d := &domain.Dashboard{}
	if err := res.Decode(d); err != nil {
		c.WithField("err", err).Error("res.Decode failed")
		return nil, err
	}
	return d, nil
}
