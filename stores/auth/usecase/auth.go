package usecase

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	bValidator "github.com/x-xyz/auction/base/validator"
	"github.com/x-xyz/auction/domain"
)

type impl struct {
	auth     domain.AuthRepo
	creds    domain.CredentialStore
	perms    domain.PermissionUsecase
	notifier domain.Notifier
	nav      domain.Navigator
	validate *validator.Validate

	mu    sync.Mutex
	email string
}

func New(
	auth domain.AuthRepo,
	creds domain.CredentialStore,
	perms domain.PermissionUsecase,
	notifier domain.Notifier,
	nav domain.Navigator,
) domain.AuthUsecase {
	return &impl{
		auth:     auth,
		creds:    creds,
		perms:    perms,
		notifier: notifier,
		nav:      nav,
		validate: bValidator.New(),
	}
}

func (im *impl) Login(c ctx.Ctx, email, password string) error {
	req := domain.LoginRequest{Email: email, Password: password}
	if err := im.validate.Struct(req); err != nil {
		return xerrors.Errorf("%s: %w", bValidator.Describe(err), domain.ErrInvalidInput)
	}

	token, err := im.auth.Login(c, req)
	if err != nil {
		c.WithFields(log.Fields{"email": email, "err": err}).Warn("auth.Login failed")
		if domain.IsRejected(err) || err == domain.ErrUnauthenticated {
			im.notifier.Notify(domain.Notification{
				Level:   domain.LevelError,
				Title:   domain.MsgUnauthenticated,
				Message: domain.MessageOf(err, domain.MsgUnauthenticated),
			})
		}
		return err
	}

	if err := im.creds.Set(token); err != nil {
		c.WithField("err", err).Error("creds.Set failed")
		return err
	}
	if _, err := im.perms.Fetch(c); err != nil {
		c.WithField("err", err).Warn("perms.Fetch failed")
	}

	im.notifier.Notify(domain.Notification{Level: domain.LevelSuccess, Title: domain.MsgAuthenticated})
	im.nav.Navigate(domain.RouteHome)
	return nil
}

func (im *impl) Register(c ctx.Ctx, req domain.RegisterRequest) error {
	if err := im.validate.Struct(req); err != nil {
		return xerrors.Errorf("%s: %w", bValidator.Describe(err), domain.ErrInvalidInput)
	}

	if err := im.auth.Register(c, req); err != nil {
		c.WithFields(log.Fields{"email": req.Email, "err": err}).Warn("auth.Register failed")
		im.reportRejection(err)
		return err
	}

	im.mu.Lock()
	im.email = req.Email
	im.mu.Unlock()

	im.nav.Navigate(domain.RouteVerify)
	return nil
}

func (im *impl) Verify(c ctx.Ctx, code string) error {
	im.mu.Lock()
	email := im.email
	im.mu.Unlock()

	req := domain.VerifyRequest{Email: email, Token: code}
	if err := im.validate.Struct(req); err != nil {
		return xerrors.Errorf("%s: %w", bValidator.Describe(err), domain.ErrInvalidInput)
	}

	if err := im.auth.Verify(c, req); err != nil {
		c.WithFields(log.Fields{"email": email, "err": err}).Warn("auth.Verify failed")
		im.reportRejection(err)
		return err
	}

	im.nav.Navigate(domain.RouteLogin)
	return nil
}

func (im *impl) Logout(c ctx.Ctx) {
	im.creds.Clear()
	if err := im.perms.Invalidate(c); err != nil {
		c.WithField("err", err).Warn("perms.Invalidate failed")
	}
	im.nav.Navigate(domain.RouteLogin)
}

func (im *impl) Claims(c ctx.Ctx) domain.JwtCustomClaims {
	token, ok := im.creds.Get()
	if !ok {
		return domain.JwtCustomClaims{}
	}

	claims := domain.JwtCustomClaims{}
	// the client cannot verify the signature, the backend does on every call
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &claims); err != nil {
		c.WithField("err", err).Warn("ParseUnverified failed")
		return domain.JwtCustomClaims{}
	}
	return claims
}

func (im *impl) reportRejection(err error) {
	if !domain.IsRejected(err) {
		return
	}
	im.notifier.Notify(domain.Notification{
		Level:   domain.LevelError,
		Title:   domain.MsgFail,
		Message: domain.MessageOf(err, domain.MsgFail),
	})
}
