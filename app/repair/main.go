package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/database/mongoclient"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/listing"
	"github.com/platz/goapi/service/chain"
	"github.com/platz/goapi/service/chain/contract"
	"github.com/platz/goapi/service/query"
	bid_repository "github.com/platz/goapi/stores/bid/repository"
	bid_usecase "github.com/platz/goapi/stores/bid/usecase"
	listing_repository "github.com/platz/goapi/stores/listing/repository"
	repair_usecase "github.com/platz/goapi/stores/repair/usecase"
	user_repository "github.com/platz/goapi/stores/user/repository"
)

var configPath = pflag.String("config", "infra/configs/repair.yaml", "path to config file")

func init() {
	pflag.Parse()
	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configPath)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}
}

func main() {
	ctx := bCtx.Background()

	ctx.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, dbName, enableSSL, true)
	q := query.New(mongoClient)

	networks := viper.Sub("networks")
	rpcs := make(map[domain.ChainId][]string)
	for k := range networks.AllSettings() {
		chainId := domain.ChainId(networks.GetInt32(fmt.Sprintf("%s.chainId", k)))
		rpcs[chainId] = networks.GetStringSlice(fmt.Sprintf("%s.rpcUrls", k))
	}
	chainService, err := chain.NewClient(ctx, &chain.ClientCfg{
		RpcUrls:     rpcs,
		CallTimeout: viper.GetDuration("chain.callTimeout"),
		MaxInflight: viper.GetInt("chain.maxInflight"),
	})
	if err != nil {
		ctx.WithField("err", err).Panic("chain.NewClient failed")
	}

	chainId := domain.ChainId(viper.GetInt32("marketplace.chainId"))
	marketplaceAddr := domain.Address(viper.GetString("marketplace.address")).ToLower()
	erc721Service := contract.NewErc721(chainService)
	marketplaceService := contract.NewMarketplace(chainService, marketplaceAddr)

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
	repairer := repair_usecase.New(&repair_usecase.RepairCfg{
		ChainId:       chainId,
		BidRepo:       bidRepo,
		ListingRepo:   listingRepo,
		LandTokenRepo: landTokenRepo,
		Synchronizer:  synchronizer,
		Erc721:        erc721Service,
		Marketplace:   marketplaceService,
	})

	ctx.Info("running missing-token backfill")
	backfill, err := repairer.BackfillMissingTokens(ctx)
	if err != nil {
		ctx.WithField("err", err).Panic("backfill failed")
	}
	ctx.WithFields(log.Fields{"report": backfill}).Info("backfill done")

	ctx.Info("running bid resync")
	resync, err := repairer.ResyncAllBids(ctx)
	if err != nil {
		ctx.WithField("err", err).Panic("bid resync failed")
	}
	ctx.WithFields(log.Fields{"report": resync}).Info("bid resync done")

	ctx.Info("running ownership resync")
	listings, err := listingRepo.FindAll(ctx, listing.WithChainId(chainId), listing.WithActive(true))
	if err != nil {
		ctx.WithField("err", err).Panic("listing scan failed")
	}
	for _, lst := range listings {
		report, err := repairer.SyncOwnership(ctx, lst.CollectionId)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":          err,
				"collectionId": lst.CollectionId,
			}).Error("ownership resync failed")
			continue
		}
		ctx.WithFields(log.Fields{"report": report}).Info("ownership resync done")
	}
}
