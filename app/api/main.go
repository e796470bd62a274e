package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/x-xyz/suinsapi/base/ctx"
	"github.com/x-xyz/suinsapi/base/database/redisclient"
	"github.com/x-xyz/suinsapi/base/goroutine"
	"github.com/x-xyz/suinsapi/base/log"
	"github.com/x-xyz/suinsapi/base/metrics"
	bValidator "github.com/x-xyz/suinsapi/base/validator"
	"github.com/x-xyz/suinsapi/domain/keys"
	mmiddleware "github.com/x-xyz/suinsapi/middleware"
	"github.com/x-xyz/suinsapi/service/cache"
	compoundcache "github.com/x-xyz/suinsapi/service/cache/compoundCache"
	"github.com/x-xyz/suinsapi/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/suinsapi/service/cache/provider/redis"
	"github.com/x-xyz/suinsapi/service/featureflag"
	"github.com/x-xyz/suinsapi/service/query"
	"github.com/x-xyz/suinsapi/service/redis"
	"github.com/x-xyz/suinsapi/service/suins"
	hc_delivery "github.com/x-xyz/suinsapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/suinsapi/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/suinsapi/stores/healthcheck/usecase"
	suins_delivery "github.com/x-xyz/suinsapi/stores/suins/delivery/http"
	suins_usecase "github.com/x-xyz/suinsapi/stores/suins/usecase"

	_ "github.com/x-xyz/suinsapi/app/api/docs"
)

var configFile = pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")

func init() {
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	log.SetDebug(viper.GetBool(`debug`))
	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

// newFlags builds the evaluator named by featureFlags.provider.
func newFlags(c ctx.Ctx) featureflag.Evaluator {
	switch provider := viper.GetString("featureFlags.provider"); provider {
	case "growthbook":
		gb := featureflag.NewGrowthBook(&featureflag.GrowthBookCfg{
			HttpClient:   http.Client{},
			ApiHost:      viper.GetString("featureFlags.growthbook.apiHost"),
			ClientKey:    viper.GetString("featureFlags.growthbook.clientKey"),
			PollInterval: viper.GetDuration("featureFlags.growthbook.pollInterval"),
			Attributes:   viper.GetStringMap("featureFlags.growthbook.attributes"),
		})
		panics := gb.Start(c)
		go func() {
			for ev := range panics {
				c.WithField("event", ev).Error("feature flag poller stopped")
			}
		}()
		return gb
	case "", "config":
		cf := featureflag.NewConfig(viper.GetViper())
		cf.Watch(c)
		return cf
	default:
		c.WithField("provider", provider).Panic("unknown featureFlags.provider")
	}
	return nil
}

//	@title			SuiNS API
//	@version		1.0
//	@description	Resolve Sui Name Service names and addresses.
func main() {
	defer log.Sync()

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context, stop := ctx.WithCancel(ctx.Background())
	defer stop()

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	defer redisCachePool.Close()
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	// init sui rpc client, cached in process then in redis
	context.Info("init sui client")
	suiClient, err := suins.NewClient(&suins.ClientCfg{
		RpcUrl:  viper.GetString("sui.rpcUrl"),
		Timeout: viper.GetDuration("sui.timeout"),
	})
	if err != nil {
		context.WithField("err", err).Panic("failed to init sui client")
	}
	defer suiClient.Close()
	suiCache := compoundcache.NewCompoundCache([]cache.Service{
		cache.New(cache.ServiceConfig{
			Ttl:   viper.GetDuration("suins.cache.localTtl"),
			Pfx:   keys.PfxSuinsClient,
			Cache: primitive.NewPrimitive(keys.PfxSuinsClient, viper.GetInt("suins.cache.localSizeMb")),
		}),
		cache.New(cache.ServiceConfig{
			Ttl:   viper.GetDuration("suins.cache.redisTtl"),
			Pfx:   keys.PfxSuinsClient,
			Cache: redisProvider.NewRedis(redisCache),
		}),
	})
	cachedSuiClient := suins.NewCachedClient(suiClient, suiCache)

	flags := newFlags(context)

	queries := query.New(query.ClientCfg{
		MaxEntries: viper.GetInt("query.maxEntries"),
	})
	defer queries.Close()

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(redisCache, suiClient)
	hc := hc_usecase.New(hcRepo)
	suinsUsecase := suins_usecase.New(&suins_usecase.SuinsUseCaseCfg{
		Client:  cachedSuiClient,
		Flags:   flags,
		Queries: queries,
	})

	hc_delivery.New(e, hc)
	suins_delivery.New(e, suinsUsecase, viper.GetDuration("suins.waitTimeout"))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	quit := make(chan os.Signal, 1)
	goroutine.RecoverableGo(func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}, goroutine.WithAfterRecovered(func(interface{}, []byte) {
		quit <- syscall.SIGTERM
	}))

	// SIGHUP refetches the queries that opted into focus refetch, any other
	// signal shuts the server down gracefully within 10 seconds.
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	for sig := range quit {
		log.Log().WithField("signal", sig).Info("received signal")
		if sig == syscall.SIGHUP {
			queries.FocusRegained(context)
			continue
		}
		break
	}

	stop()
	ctx, cancel := ctx.WithTimeout(ctx.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
