package usecase

import (
	"github.com/go-playground/validator/v10"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	bValidator "github.com/x-xyz/auction/base/validator"
	"github.com/x-xyz/auction/domain"
)

const (
	msgInsufficientCredits = "You need at least 5 credits to add an item. Please recharge your credits."
)

type impl struct {
	items    domain.ItemRepo
	notifier domain.Notifier
	validate *validator.Validate
}

func New(items domain.ItemRepo, notifier domain.Notifier) domain.ItemUsecase {
	return &impl{
		items:    items,
		notifier: notifier,
		validate: bValidator.New(),
	}
}

func (im *impl) List(c ctx.Ctx, opts domain.ListOptions) (*domain.ItemPage, error) {
	return im.items.FindAll(c, opts)
}

func (im *impl) Home(c ctx.Ctx) ([]domain.Item, error) {
	return im.items.FindHome(c)
}

func (im *impl) Mine(c ctx.Ctx) ([]domain.Item, error) {
	return im.items.FindMine(c)
}

func (im *impl) Create(c ctx.Ctx, form domain.ItemForm, seller *domain.User) error {
	if seller == nil || !seller.CanList() {
		im.notifier.Notify(domain.Notification{
			Level:   domain.LevelError,
			Title:   "Insufficient Credits",
			Message: msgInsufficientCredits,
		})
		return domain.ErrInsufficientCredit
	}

	form.Id = 0
	if err := im.check(c, form); err != nil {
		return err
	}

	if err := im.items.Create(c, form); err != nil {
		c.WithFields(log.Fields{"title": form.Title, "err": err}).Error("items.Create failed")
		im.reportRejection(err)
		return err
	}

	seller.Credit -= domain.ListingFeeCredits * domain.CreditUnit
	return nil
}

func (im *impl) Update(c ctx.Ctx, form domain.ItemForm) error {
	if form.Id == 0 {
		return xerrors.Errorf("update without id: %w", domain.ErrInvalidInput)
	}
	if err := im.check(c, form); err != nil {
		return err
	}

	if err := im.items.Update(c, form); err != nil {
		c.WithFields(log.Fields{"id": form.Id, "err": err}).Error("items.Update failed")
		im.reportRejection(err)
		return err
	}
	return nil
}

func (im *impl) Delete(c ctx.Ctx, id int64) error {
	if err := im.items.Delete(c, id); err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("items.Delete failed")
		return err
	}
	return nil
}

func (im *impl) check(c ctx.Ctx, form domain.ItemForm) error {
	if err := im.validate.Struct(form); err != nil {
		msg := bValidator.Describe(err)
		c.WithField("err", msg).Warn("invalid item form")
		im.notifier.Notify(domain.Notification{Level: domain.LevelError, Title: domain.MsgFail, Message: msg})
		return xerrors.Errorf("%s: %w", msg, domain.ErrInvalidInput)
	}
	if form.BidStartDate.IsZero() || form.BidEndDate.IsZero() || !form.BidEndDate.After(form.BidStartDate.Time) {
		msg := "bidEndDate: must be after bidStartDate"
		im.notifier.Notify(domain.Notification{Level: domain.LevelError, Title: domain.MsgFail, Message: msg})
		return xerrors.Errorf("%s: %w", msg, domain.ErrInvalidInput)
	}
	return nil
}

func (im *impl) reportRejection(err error) {
	if domain.IsRejected(err) {
		im.notifier.Notify(domain.Notification{
			Level:   domain.LevelError,
			Title:   domain.MsgFail,
			Message: domain.MessageOf(err, domain.MsgFail),
		})
	}
}
