package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/x-xyz/auction/base/config"
	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/database/redisclient"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/base/metrics"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/redis"
	session_repository "github.com/x-xyz/auction/stores/session/repository"
)

var args []string

func init() {
	fs := config.Flags("auction")
	if err := config.Load(viper.GetViper(), fs, os.Args[1:]); err != nil {
		panic(err)
	}
	args = fs.Args()
}

func main() {
	defer log.Sync()

	metricsCfg := metrics.Config{
		Host:    viper.GetString("datadog_host"),
		Port:    viper.GetInt("datadog_port"),
		EnvName: viper.GetString("env_name"),
		AppName: viper.GetString("app_name"),
	}
	tenant := viper.GetString("session.tenant")

	// a redis session survives between invocations, memory only lives as
	// long as the shell
	var creds domain.CredentialStore
	if uri := viper.GetString("session.redis.uri"); uri != "" {
		pool := redisclient.MustConnectRedis(uri, viper.GetString("session.redis.password"), redisclient.RedisParam{
			PoolMultiplier: viper.GetFloat64("session.redis.poolMultiplier"),
		})
		red := redis.New("session", metrics.New("redis", metricsCfg), pool)
		creds = session_repository.NewRedis(red, tenant, viper.GetDuration("session.redis.ttl"))
	} else {
		creds = session_repository.NewMemory()
	}

	a := newApp(&appCfg{
		BaseURL:     viper.GetString("api.baseUrl"),
		Timeout:     config.Duration(viper.GetViper(), "api.timeout", 10*time.Second),
		Tenant:      tenant,
		Credentials: creds,
		Metrics:     metrics.New("cli", metricsCfg),
		Out:         os.Stdout,
	})

	c, cancel := ctx.WithCancel(ctx.WithValue(ctx.Background(), "tenant", tenant))
	defer cancel()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	var err error
	if len(args) == 0 || args[0] == "shell" {
		err = a.shell(c, os.Stdin)
	} else {
		err = a.run(c, args)
	}
	if err != nil {
		log.Log().WithField("err", err).Debug("exit with failure")
		log.Sync()
		os.Exit(1)
	}
}
