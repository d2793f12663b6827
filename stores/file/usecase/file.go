package usecase

import (
	"io"
	"io/ioutil"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/notify"
)

type impl struct {
	files    domain.FileRepo
	notifier domain.Notifier
}

func New(files domain.FileRepo, notifier domain.Notifier) domain.FileUsecase {
	return &impl{files, notifier}
}

func (im *impl) Upload(c ctx.Ctx, name string, r io.Reader) (string, error) {
	data, err := ioutil.ReadAll(io.LimitReader(r, domain.MaxUploadSize+1))
	if err != nil {
		c.WithFields(log.Fields{"name": name, "err": err}).Error("ReadAll failed")
		return "", err
	}
	if len(data) == 0 {
		return "", xerrors.Errorf("empty upload %s: %w", name, domain.ErrInvalidInput)
	}
	if len(data) > domain.MaxUploadSize {
		return "", xerrors.Errorf("upload %s too large: %w", name, domain.ErrInvalidInput)
	}

	mtype := mimetype.Detect(data)
	if !accepted(mtype) {
		c.WithFields(log.Fields{"name": name, "mimetype": mtype.String()}).Warn("unsupported upload")
		return "", xerrors.Errorf("unsupported type %s: %w", mtype.String(), domain.ErrInvalidInput)
	}

	path, err := im.files.Upload(c, name, data)
	if err != nil {
		c.WithFields(log.Fields{"name": name, "err": err}).Error("files.Upload failed")
		notify.Rejection(im.notifier, err)
		return "", err
	}
	return path, nil
}

func accepted(mtype *mimetype.MIME) bool {
	if strings.HasPrefix(mtype.String(), "image/") {
		return true
	}
	return mtype.Is("application/pdf")
}
