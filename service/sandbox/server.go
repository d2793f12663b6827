package sandbox

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/auction/base/metrics"
	bValidator "github.com/x-xyz/auction/base/validator"
	"github.com/x-xyz/auction/domain"
	mmiddleware "github.com/x-xyz/auction/middleware"
	"github.com/x-xyz/auction/service/cache/provider"
)

type ServerCfg struct {
	Store  *Store
	Tokens domain.TokenUsecase
	Hub    *Hub
	// BaseURL the sandbox is reachable under, used in payment redirects
	BaseURL string
	Metrics metrics.Service
	// Cache and CacheTtl enable response caching of the anonymous lists
	Cache    provider.Provider
	CacheTtl time.Duration
}

// NewServer wires the sandbox backend into a fresh echo instance
func NewServer(cfg *ServerCfg) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware(cfg.Metrics)
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	hub := cfg.Hub
	if hub == nil {
		hub = NewHub()
	}

	var cache echo.MiddlewareFunc
	if cfg.Cache != nil && cfg.CacheTtl > 0 {
		cache = mmiddleware.CacheHttp(cfg.Cache, cfg.CacheTtl)
	}

	newHandler(e, handlerCfg{
		Store:   cfg.Store,
		Tokens:  cfg.Tokens,
		Hub:     hub,
		BaseURL: cfg.BaseURL,
		Auth:    mmiddleware.NewAuth(cfg.Tokens),
		Cache:   cache,
	})
	return e
}
