package usecase

import (
	"fmt"

	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/bid"
	"github.com/platz/goapi/domain/listing"
	"github.com/platz/goapi/service/cache"
	"github.com/platz/goapi/service/chain/contract"
)

type AggregatorCfg struct {
	ChainId       domain.ChainId
	BidRepo       bid.Repo
	ListingRepo   listing.Repo
	LandTokenRepo listing.LandTokenRepo
	Erc721        contract.Erc721Contract
	OwnerCache    cache.Service
}

// aggregator classifies every stored bid by one user's role, resolving
// token ownership from the store first and the chain second. Ownership
// lookups are deduplicated per distinct token, not per bid.
type aggregator struct {
	chainId       domain.ChainId
	bidRepo       bid.Repo
	listingRepo   listing.Repo
	landTokenRepo listing.LandTokenRepo
	erc721        contract.Erc721Contract
	ownerCache    cache.Service
}

func NewAggregator(cfg *AggregatorCfg) bid.AggregationUseCase {
	return &aggregator{
		chainId:       cfg.ChainId,
		bidRepo:       cfg.BidRepo,
		listingRepo:   cfg.ListingRepo,
		landTokenRepo: cfg.LandTokenRepo,
		erc721:        cfg.Erc721,
		ownerCache:    cfg.OwnerCache,
	}
}

type tokenKey struct {
	collectionId domain.CollectionId
	tokenId      domain.TokenId
}

func (a *aggregator) AggregateBidsForUser(ctx bCtx.Ctx, address domain.Address) *bid.Aggregation {
	res, err := a.aggregate(ctx, address.ToLower())
	if err != nil {
		// dashboards render an empty view rather than an error page
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("aggregation failed, returning empty result")
		return bid.EmptyAggregation()
	}
	return res
}

func (a *aggregator) GetActiveBidsForOwner(ctx bCtx.Ctx, address domain.Address) []*bid.ClassifiedBid {
	received := a.AggregateBidsForUser(ctx, address).ReceivedBids
	actives := []*bid.ClassifiedBid{}
	for _, b := range received {
		if b.Status == bid.StatusActive {
			actives = append(actives, b)
		}
	}
	return actives
}

func (a *aggregator) GetBidsByUser(ctx bCtx.Ctx, address domain.Address) []*bid.ClassifiedBid {
	return a.AggregateBidsForUser(ctx, address).UserBids
}

func (a *aggregator) GetAllBidsReceivedByOwner(ctx bCtx.Ctx, address domain.Address) []*bid.ClassifiedBid {
	return a.AggregateBidsForUser(ctx, address).ReceivedBids
}

func (a *aggregator) aggregate(ctx bCtx.Ctx, address domain.Address) (*bid.Aggregation, error) {
	bids, err := a.bidRepo.FindAll(ctx,
		bid.WithChainId(a.chainId),
		bid.WithStatuses(bid.StatusActive, bid.StatusAccepted, bid.StatusWithdrawn, bid.StatusOutbid),
	)
	if err != nil {
		return nil, err
	}

	byToken := map[tokenKey][]*bid.Bid{}
	for _, b := range bids {
		if b.TokenId.IsZero() {
			// legacy collection-level bids have no per-token ownership
			continue
		}
		key := tokenKey{b.CollectionId, b.TokenId}
		byToken[key] = append(byToken[key], b)
	}

	res := bid.EmptyAggregation()
	for key, tokenBids := range byToken {
		owner, err := a.resolveOwner(ctx, key.collectionId, key.tokenId)
		if err != nil {
			// unknown owner means the token's bids cannot be classified
			ctx.WithFields(log.Fields{
				"err":          err,
				"collectionId": key.collectionId,
				"tokenId":      key.tokenId,
			}).Warn("skipping token with unresolved ownership")
			continue
		}

		for _, b := range tokenBids {
			isBidder := b.Bidder.Equals(address)
			isOwner := owner.Equals(address)
			if !isBidder && !isOwner {
				continue
			}

			role := bid.RoleTokenOwner
			if isBidder {
				// self-bids classify as bidder
				role = bid.RoleBidder
			}
			classified := &bid.ClassifiedBid{Bid: b, Role: role, CurrentOwner: owner}

			res.AllBids = append(res.AllBids, classified)
			if role == bid.RoleBidder {
				res.UserBids = append(res.UserBids, classified)
				res.Summary.TotalBidsMade++
				if b.Status == bid.StatusActive {
					res.Summary.ActiveBidsMade++
				}
			} else {
				res.ReceivedBids = append(res.ReceivedBids, classified)
				res.Summary.TotalBidsReceived++
				if b.Status == bid.StatusActive {
					res.Summary.ActiveBidsReceived++
				}
			}
		}
	}

	return res, nil
}

// resolveOwner prefers the stored ownership row, then the chain via a short
// lived cache. The cache keeps repeated dashboard loads from hammering the
// RPC endpoint.
func (a *aggregator) resolveOwner(ctx bCtx.Ctx, collectionId domain.CollectionId, tokenId domain.TokenId) (domain.Address, error) {
	token, err := a.landTokenRepo.FindOne(ctx, listing.LandTokenId{
		ChainId:      a.chainId,
		CollectionId: collectionId,
		TokenId:      tokenId,
	})
	if err == nil && !token.OwnerAddress.IsEmpty() {
		return token.OwnerAddress.ToLower(), nil
	} else if err != nil && err != domain.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err":          err,
			"collectionId": collectionId,
			"tokenId":      tokenId,
		}).Error("failed to landTokenRepo.FindOne")
		// fall through to the chain
	}

	owner := domain.Address("")
	key := fmt.Sprintf("owner:%d:%d", collectionId, tokenId)
	err = a.ownerCache.GetByFunc(ctx, key, &owner, func() (interface{}, error) {
		chainOwner, err := a.chainOwner(ctx, collectionId, tokenId)
		if err != nil {
			return nil, err
		}
		return &chainOwner, nil
	})
	if err != nil {
		return "", err
	}
	return owner, nil
}

func (a *aggregator) chainOwner(ctx bCtx.Ctx, collectionId domain.CollectionId, tokenId domain.TokenId) (domain.Address, error) {
	lst, err := a.listingRepo.FindOne(ctx, listing.Id{ChainId: a.chainId, CollectionId: collectionId})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":          err,
			"collectionId": collectionId,
		}).Error("failed to listingRepo.FindOne")
		return "", err
	}

	owner, err := a.erc721.OwnerOf(ctx, a.chainId, lst.ContractAddress, tokenId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":          err,
			"collectionId": collectionId,
			"tokenId":      tokenId,
		}).Error("failed to erc721.OwnerOf")
		return "", err
	}
	return owner.ToLower(), nil
}
