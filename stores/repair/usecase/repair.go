package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"

	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/base/metrics"
	"github.com/platz/goapi/base/ptr"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/bid"
	"github.com/platz/goapi/domain/listing"
	"github.com/platz/goapi/domain/repair"
	"github.com/platz/goapi/service/chain/contract"
)

// fanOut bounds concurrent chain reads per repair run. The RPC endpoint is
// the only rate-limited shared resource these routines touch.
const fanOut = 8

type RepairCfg struct {
	ChainId       domain.ChainId
	BidRepo       bid.Repo
	ListingRepo   listing.Repo
	LandTokenRepo listing.LandTokenRepo
	Synchronizer  bid.SyncUseCase
	Erc721        contract.Erc721Contract
	Marketplace   contract.MarketplaceContract
}

type impl struct {
	chainId       domain.ChainId
	bidRepo       bid.Repo
	listingRepo   listing.Repo
	landTokenRepo listing.LandTokenRepo
	synchronizer  bid.SyncUseCase
	erc721        contract.Erc721Contract
	marketplace   contract.MarketplaceContract
	metrics       metrics.Service
}

func New(cfg *RepairCfg) repair.UseCase {
	return &impl{
		chainId:       cfg.ChainId,
		bidRepo:       cfg.BidRepo,
		listingRepo:   cfg.ListingRepo,
		landTokenRepo: cfg.LandTokenRepo,
		synchronizer:  cfg.Synchronizer,
		erc721:        cfg.Erc721,
		marketplace:   cfg.Marketplace,
		metrics:       metrics.New("repair"),
	}
}

type resyncOutcome int

const (
	resyncSynced resyncOutcome = iota
	resyncAlready
	resyncAttributionFailed
	resyncChainError
)

func (im *impl) ResyncAllBids(ctx bCtx.Ctx) (*repair.BidResyncReport, error) {
	defer im.metrics.BumpTime("resync_all_bids.time").End()

	report := &repair.BidResyncReport{JobId: uuid.New().String()}

	tokens, err := im.landTokenRepo.FindAll(ctx, listing.WithChainId(im.chainId))
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to landTokenRepo.FindAll")
		return nil, err
	}
	report.TokensScanned = len(tokens)
	if len(tokens) == 0 {
		return report, nil
	}

	b := goroutines.NewBatch(fanOut, goroutines.WithBatchSize(len(tokens)))
	defer b.Close()
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		b.Queue(func() (interface{}, error) {
			return im.resyncToken(ctx, token), nil
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		switch ret.Value().(resyncOutcome) {
		case resyncSynced:
			report.BidsSynced++
		case resyncAlready:
			report.AlreadySynced++
		case resyncAttributionFailed:
			report.AttributionFailures++
		case resyncChainError:
			report.ChainErrors++
		}
	}

	im.metrics.BumpSum("resync_all_bids.synced", float64(report.BidsSynced))
	im.metrics.BumpSum("resync_all_bids.chain_errors", float64(report.ChainErrors))
	ctx.WithFields(log.Fields{
		"report": report,
	}).Info("bid resync finished")
	return report, nil
}

func (im *impl) resyncToken(ctx bCtx.Ctx, token *listing.LandToken) resyncOutcome {
	chainBid, err := im.synchronizer.GetChainHighestBid(ctx, token.TokenId)
	if err == domain.ErrUnknownListing {
		return resyncAttributionFailed
	} else if err != nil {
		return resyncChainError
	}
	if chainBid == nil {
		// chain holds no active bid, nothing to converge
		return resyncAlready
	}

	id := bid.Id{
		ChainId:      im.chainId,
		CollectionId: token.CollectionId,
		TokenId:      token.TokenId,
		Bidder:       chainBid.Bidder.ToLower(),
		BidTime:      chainBid.BidTime,
	}
	if _, err := im.bidRepo.FindOne(ctx, id); err == nil {
		return resyncAlready
	} else if err != domain.ErrNotFound {
		return resyncChainError
	}

	err = im.synchronizer.ReconcileTokenBid(ctx, token.TokenId, chainBid)
	if err == domain.ErrUnknownBidder || err == domain.ErrUnknownListing {
		return resyncAttributionFailed
	} else if err != nil {
		return resyncChainError
	}
	return resyncSynced
}

type ownershipOutcome struct {
	mismatch   bool
	updated    bool
	selfBid    bool
	chainError bool
}

func (im *impl) SyncOwnership(ctx bCtx.Ctx, collectionId domain.CollectionId) (*repair.OwnershipReport, error) {
	defer im.metrics.BumpTime("sync_ownership.time").End()

	report := &repair.OwnershipReport{JobId: uuid.New().String()}

	lst, err := im.listingRepo.FindOne(ctx, listing.Id{ChainId: im.chainId, CollectionId: collectionId})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":          err,
			"collectionId": collectionId,
		}).Error("failed to listingRepo.FindOne")
		return nil, err
	}

	tokens, err := im.landTokenRepo.FindAll(ctx,
		listing.WithChainId(im.chainId),
		listing.WithCollectionId(collectionId),
	)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":          err,
			"collectionId": collectionId,
		}).Error("failed to landTokenRepo.FindAll")
		return nil, err
	}
	report.TokensChecked = len(tokens)
	if len(tokens) == 0 {
		return report, nil
	}

	b := goroutines.NewBatch(fanOut, goroutines.WithBatchSize(len(tokens)))
	defer b.Close()
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		b.Queue(func() (interface{}, error) {
			return im.checkOwnership(ctx, lst, token), nil
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		outcome := ret.Value().(ownershipOutcome)
		if outcome.chainError {
			report.ChainErrors++
		}
		if outcome.mismatch {
			report.Mismatches++
		}
		if outcome.updated {
			report.Updated++
		}
		if outcome.selfBid {
			report.SelfBids++
		}
	}

	im.metrics.BumpSum("sync_ownership.mismatches", float64(report.Mismatches))
	ctx.WithFields(log.Fields{
		"report": report,
	}).Info("ownership resync finished")
	return report, nil
}

func (im *impl) checkOwnership(ctx bCtx.Ctx, lst *listing.Listing, token *listing.LandToken) ownershipOutcome {
	outcome := ownershipOutcome{}

	owner, err := im.erc721.OwnerOf(ctx, im.chainId, lst.ContractAddress, token.TokenId)
	if err != nil {
		outcome.chainError = true
		return outcome
	}

	if !token.OwnerAddress.Equals(owner) {
		outcome.mismatch = true
		lowered := owner.ToLower()
		patch := listing.LandTokenPatchable{OwnerAddress: &lowered, UpdatedAt: ptr.Time(time.Now().UTC())}
		if err := im.landTokenRepo.Patch(ctx, token.ToId(), patch); err != nil {
			ctx.WithFields(log.Fields{
				"err": err,
				"id":  token.ToId(),
			}).Error("failed to landTokenRepo.Patch")
		} else {
			outcome.updated = true
		}
	}

	actives, err := im.bidRepo.FindAll(ctx,
		bid.WithChainId(im.chainId),
		bid.WithCollectionId(token.CollectionId),
		bid.WithTokenId(token.TokenId),
		bid.WithStatuses(bid.StatusActive),
	)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  token.ToId(),
		}).Error("failed to bidRepo.FindAll")
		return outcome
	}
	for _, a := range actives {
		if a.Bidder.Equals(owner) {
			// an owner bidding on their own token is a flagged anomaly
			outcome.selfBid = true
			break
		}
	}

	return outcome
}

type backfillOutcome struct {
	inserted   bool
	chainError bool
}

func (im *impl) BackfillMissingTokens(ctx bCtx.Ctx) (*repair.BackfillReport, error) {
	defer im.metrics.BumpTime("backfill_missing_tokens.time").End()

	report := &repair.BackfillReport{JobId: uuid.New().String()}

	listings, err := im.listingRepo.FindAll(ctx,
		listing.WithChainId(im.chainId),
		listing.WithActive(true),
	)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to listingRepo.FindAll")
		return nil, err
	}
	report.ListingsScanned = len(listings)

	for _, lst := range listings {
		if err := im.backfillListing(ctx, lst, report); err != nil {
			return nil, err
		}
	}

	im.metrics.BumpSum("backfill_missing_tokens.inserted", float64(report.Inserted))
	ctx.WithFields(log.Fields{
		"report": report,
	}).Info("token backfill finished")
	return report, nil
}

func (im *impl) backfillListing(ctx bCtx.Ctx, lst *listing.Listing, report *repair.BackfillReport) error {
	tokens, err := im.landTokenRepo.FindAll(ctx,
		listing.WithChainId(im.chainId),
		listing.WithCollectionId(lst.CollectionId),
	)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":          err,
			"collectionId": lst.CollectionId,
		}).Error("failed to landTokenRepo.FindAll")
		return err
	}

	present := map[domain.TokenId]bool{}
	for _, t := range tokens {
		present[t.TokenId] = true
	}

	missing := []domain.TokenId{}
	for i := uint64(0); i < lst.CollectionSize; i++ {
		id := lst.MainTokenId + domain.TokenId(i)
		report.TokensExpected++
		if !present[id] {
			missing = append(missing, id)
		}
	}
	report.TokensMissing += len(missing)
	if len(missing) == 0 {
		return nil
	}

	b := goroutines.NewBatch(fanOut, goroutines.WithBatchSize(len(missing)))
	defer b.Close()
	for i := 0; i < len(missing); i++ {
		tokenId := missing[i]
		b.Queue(func() (interface{}, error) {
			return im.backfillToken(ctx, lst, tokenId), nil
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		outcome := ret.Value().(backfillOutcome)
		if outcome.inserted {
			report.Inserted++
		}
		if outcome.chainError {
			report.ChainErrors++
		}
	}
	return nil
}

// backfillToken inserts a placeholder ownership row for a token the chain
// knows but the store does not. A token counts as present on chain when it
// has an owner or a non-empty highest bid.
func (im *impl) backfillToken(ctx bCtx.Ctx, lst *listing.Listing, tokenId domain.TokenId) backfillOutcome {
	owner, ownerErr := im.erc721.OwnerOf(ctx, im.chainId, lst.ContractAddress, tokenId)
	if ownerErr != nil {
		highest, bidErr := im.marketplace.GetHighestBid(ctx, im.chainId, lst.ContractAddress, tokenId)
		if bidErr != nil {
			return backfillOutcome{chainError: true}
		}
		if highest == nil {
			// not on chain at all, nothing to backfill
			return backfillOutcome{}
		}
		owner = ""
	}

	token := &listing.LandToken{
		ChainId:      im.chainId,
		CollectionId: lst.CollectionId,
		TokenId:      tokenId,
		OwnerAddress: owner.ToLower(),
		IsListed:     false,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := im.landTokenRepo.Upsert(ctx, token); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": token,
		}).Error("failed to landTokenRepo.Upsert")
		return backfillOutcome{}
	}
	return backfillOutcome{inserted: true}
}
