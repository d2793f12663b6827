package repository

import (
	"bytes"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/api"
)

type fileRepo struct {
	api api.Client
}

func NewFileRepo(cl api.Client) domain.FileRepo {
	return &fileRepo{cl}
}

func (r *fileRepo) Upload(c ctx.Ctx, name string, data []byte) (string, error) {
	res, err := r.api.Upload(c, api.PathUpload, name, bytes.NewReader(data), api.Quiet())
	if err != nil {
		c.WithFields(log.Fields{"name": name, "err": err}).Error("api.Upload failed")
		return "", err
	}

	var path string
	if err := res.Decode(&path); err != nil {
		c.WithField("err", err).Error("res.Decode failed")
		return "", err
	}
	return path, nil
}
