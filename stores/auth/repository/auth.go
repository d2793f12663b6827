package repository

import (
	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/api"
)

type authRepo struct {
	api api.Client
}

func NewAuthRepo(cl api.Client) domain.AuthRepo {
	return &authRepo{cl}
}

func (r *authRepo) Login(c ctx.Ctx, req domain.LoginRequest) (string, error) {
	res, err := r.api.Post(c, api.PathLogin, req, api.Quiet())
	if err != nil {
		c.WithFields(log.Fields{"email": req.Email, "err": err}).Warn("api.Post failed")
		return "", err
	}

	var token string
	if err := res.Decode(&token); err == api.ErrNoData || (err == nil && token == "") {
		return "", domain.ErrUnauthenticated
	} else if err != nil {
		c.WithField("err", err).Error("res.Decode failed")
		return "", err
	}
	return token, nil
}

func (r *authRepo) Register(c ctx.Ctx, req domain.RegisterRequest) error {
	if _, err := r.api.Post(c, api.PathRegister, req); err != nil {
		c.WithFields(log.Fields{"email": req.Email, "err": err}).Warn("api.Post failed")
		return err
	}
	return nil
}

func (r *authRepo) Verify(c ctx.Ctx, req domain.VerifyRequest) error {
	if _, err := r.api.Post(c, api.PathVerify, req); err != nil {
		c.WithFields(log.Fields{"email": req.Email, "err": err}).Warn("api.Post failed")
		return err
	}
	return nil
}
