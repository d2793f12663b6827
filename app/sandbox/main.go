package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/x-xyz/auction/base/config"
	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/database/redisclient"
	"github.com/x-xyz/auction/base/goroutine"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/base/metrics"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/cache/provider"
	"github.com/x-xyz/auction/service/cache/provider/compound"
	"github.com/x-xyz/auction/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/auction/service/cache/provider/redis"
	"github.com/x-xyz/auction/service/redis"
	"github.com/x-xyz/auction/service/sandbox"
	auth_usecase "github.com/x-xyz/auction/stores/auth/usecase"
)

type seedUser struct {
	Email    string
	FullName string
	Credit   int64
}

func init() {
	fs := config.Flags("sandbox")
	fs.String("sandbox.listen", "", "address the sandbox listens on")
	if err := config.Load(viper.GetViper(), fs, os.Args[1:]); err != nil {
		panic(err)
	}
}

func main() {
	context := ctx.Background()
	defer log.Sync()

	metricsCfg := metrics.Config{
		Host:    viper.GetString("datadog_host"),
		Port:    viper.GetInt("datadog_port"),
		EnvName: viper.GetString("env_name"),
		AppName: viper.GetString("app_name"),
	}

	// responses of the anonymous lists, shared through redis when configured
	var cacheProvider provider.Provider = primitive.NewPrimitive("sandbox", viper.GetInt("sandbox.cache.size"))
	if uri := viper.GetString("session.redis.uri"); uri != "" {
		context.Info("init redis cache")
		pool := redisclient.MustConnectRedis(uri, viper.GetString("session.redis.password"), redisclient.RedisParam{
			PoolMultiplier: viper.GetFloat64("session.redis.poolMultiplier"),
			Retry:          true,
		})
		red := redis.New("sandbox", metrics.New("redis", metricsCfg), pool)
		cacheProvider = compound.NewCompound(cacheProvider, redisProvider.NewRedis(red))
	}

	store := sandbox.NewStore(time.Now)
	if err := seed(context, store); err != nil {
		context.WithField("err", err).Panic("seed failed")
	}

	e := sandbox.NewServer(&sandbox.ServerCfg{
		Store:    store,
		Tokens:   auth_usecase.NewToken(viper.GetString("sandbox.jwtSecret"), config.Duration(viper.GetViper(), "sandbox.tokenTtl", 24*time.Hour)),
		Hub:      sandbox.NewHub(),
		BaseURL:  viper.GetString("sandbox.baseUrl"),
		Metrics:  metrics.New("sandbox", metricsCfg),
		Cache:    cacheProvider,
		CacheTtl: viper.GetDuration("sandbox.cache.ttl"),
	})

	listen := viper.GetString("sandbox.listen")
	goroutine.Go(func() {
		context.WithField("listen", listen).Info("sandbox started")
		if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	c, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(c); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

// seed fills the store with the configured accounts, categories and one
// open item per seller so the client has something to bid on
func seed(c ctx.Ctx, store *sandbox.Store) error {
	password := viper.GetString("sandbox.seed.password")
	if admin := viper.GetString("sandbox.seed.admin"); admin != "" {
		if _, err := store.AddUser(domain.User{Email: admin, FullName: "Admin", Role: domain.RoleAdmin}, password); err != nil {
			return err
		}
	}

	categoryId := int64(0)
	for _, name := range viper.GetStringSlice("sandbox.seed.categories") {
		id, err := store.CreateCategory(domain.Category{CategoryName: name})
		if err != nil {
			return err
		}
		if categoryId == 0 {
			categoryId = id
		}
	}

	users := []seedUser{}
	if err := viper.UnmarshalKey("sandbox.seed.users", &users); err != nil {
		return err
	}
	now := time.Now()
	for _, u := range users {
		id, err := store.AddUser(domain.User{Email: u.Email, FullName: u.FullName, Credit: u.Credit}, password)
		if err != nil {
			return err
		}
		if categoryId == 0 || u.Credit < domain.ListingFeeCredits*domain.CreditUnit {
			continue
		}
		if _, err := store.CreateItem(id, domain.ItemForm{
			Title:        "Sample item of " + u.FullName,
			CategoryId:   categoryId,
			MinimumBid:   decimal.NewFromInt(10),
			BidIncrement: decimal.NewFromInt(1),
			Description:  "Seeded by the sandbox",
			BidStartDate: domain.NewTimestamp(now),
			BidEndDate:   domain.NewTimestamp(now.Add(7 * 24 * time.Hour)),
		}); err != nil {
			return err
		}
	}
	c.WithFields(log.Fields{"users": len(users)}).Info("sandbox seeded")
	return nil
}
