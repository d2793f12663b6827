package usecase

import (
	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/cache"
)

const userPermissions = "user_permissions"

type impl struct {
	cache  cache.Service
	tenant string
}

// New caches the permission list of tenant. Until the backend serves
// permissions every signed in user holds the wildcard.
func New(cache cache.Service, tenant string) domain.PermissionUsecase {
	return &impl{cache, tenant}
}

func (im *impl) key() string {
	return im.tenant + "." + userPermissions
}

func (im *impl) Fetch(c ctx.Ctx) ([]string, error) {
	perms := []string{}
	if err := im.cache.GetByFunc(c, im.key(), &perms, func() (interface{}, error) {
		return &[]string{domain.PermissionAll}, nil
	}); err != nil {
		c.WithFields(log.Fields{"tenant": im.tenant, "err": err}).Error("cache.GetByFunc failed")
		return nil, err
	}
	return perms, nil
}

func (im *impl) HasPermission(c ctx.Ctx, permission string) bool {
	if permission == "" {
		return true
	}
	perms, err := im.Fetch(c)
	if err != nil {
		return false
	}
	return domain.Granted(perms, permission)
}

func (im *impl) Invalidate(c ctx.Ctx) error {
	if err := im.cache.Del(c, im.key()); err != nil {
		c.WithFields(log.Fields{"tenant": im.tenant, "err": err}).Error("cache.Del failed")
		return err
	}
	return nil
}
