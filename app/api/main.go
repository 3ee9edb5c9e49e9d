package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/database/mongoclient"
	"github.com/platz/goapi/base/log"
	bValidator "github.com/platz/goapi/base/validator"
	"github.com/platz/goapi/domain"
	mmiddleware "github.com/platz/goapi/middleware"
	"github.com/platz/goapi/service/cache"
	"github.com/platz/goapi/service/cache/provider/primitive"
	"github.com/platz/goapi/service/chain"
	"github.com/platz/goapi/service/chain/contract"
	"github.com/platz/goapi/service/query"
	bid_delivery "github.com/platz/goapi/stores/bid/delivery/http"
	bid_repository "github.com/platz/goapi/stores/bid/repository"
	bid_usecase "github.com/platz/goapi/stores/bid/usecase"
	listing_repository "github.com/platz/goapi/stores/listing/repository"
	user_repository "github.com/platz/goapi/stores/user/repository"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, dbName, enableSSL, true)
	q := query.New(mongoClient)

	// init chain service
	networks := viper.Sub("networks")
	rpcs := make(map[domain.ChainId][]string)
	for k := range networks.AllSettings() {
		chainId := domain.ChainId(networks.GetInt32(fmt.Sprintf("%s.chainId", k)))
		rpcs[chainId] = networks.GetStringSlice(fmt.Sprintf("%s.rpcUrls", k))
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls:     rpcs,
		CallTimeout: viper.GetDuration("chain.callTimeout"),
		MaxInflight: viper.GetInt("chain.maxInflight"),
	})
	if err != nil {
		context.WithField("err", err).Panic("chain.NewClient failed")
	}

	chainId := domain.ChainId(viper.GetInt32("marketplace.chainId"))
	marketplaceAddr := domain.Address(viper.GetString("marketplace.address")).ToLower()
	erc721Service := contract.NewErc721(chainService)
	marketplaceService := contract.NewMarketplace(chainService, marketplaceAddr)

	ownerCache := cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("ownerCache.ttl"),
		Pfx:   "owner",
		Cache: primitive.NewPrimitive("owner", viper.GetInt("ownerCache.sizeMb")),
	})

	// construct repository, usecase and delivery
	userRepo := user_repository.NewUserRepo(q)
	listingRepo := listing_repository.NewListingRepo(q)
	landTokenRepo := listing_repository.NewLandTokenRepo(q)
	bidRepo := bid_repository.NewBidRepo(q)

	synchronizer := bid_usecase.NewSynchronizer(&bid_usecase.SynchronizerCfg{
		ChainId:     chainId,
		BidRepo:     bidRepo,
		UserRepo:    userRepo,
		ListingRepo: listingRepo,
		Marketplace: marketplaceService,
	})
	aggregator := bid_usecase.NewAggregator(&bid_usecase.AggregatorCfg{
		ChainId:       chainId,
		BidRepo:       bidRepo,
		ListingRepo:   listingRepo,
		LandTokenRepo: landTokenRepo,
		Erc721:        erc721Service,
		OwnerCache:    ownerCache,
	})

	bid_delivery.New(e, synchronizer, aggregator)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	shutdownCtx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
