package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/bid"
	"github.com/platz/goapi/domain/listing"
	"github.com/platz/goapi/domain/user"
	"github.com/platz/goapi/service/chain/contract"
)

type SynchronizerCfg struct {
	ChainId     domain.ChainId
	BidRepo     bid.Repo
	UserRepo    user.Repo
	ListingRepo listing.Repo
	Marketplace contract.MarketplaceContract
}

// synchronizer reconciles the chain's highest bid for one token into the
// store. Reconciliation flows chain -> store only; the store is never used
// to correct the chain.
type synchronizer struct {
	chainId     domain.ChainId
	bidRepo     bid.Repo
	userRepo    user.Repo
	listingRepo listing.Repo
	marketplace contract.MarketplaceContract
}

func NewSynchronizer(cfg *SynchronizerCfg) bid.SyncUseCase {
	return &synchronizer{
		chainId:     cfg.ChainId,
		bidRepo:     cfg.BidRepo,
		userRepo:    cfg.UserRepo,
		listingRepo: cfg.ListingRepo,
		marketplace: cfg.Marketplace,
	}
}

func (s *synchronizer) GetChainHighestBid(ctx bCtx.Ctx, tokenId domain.TokenId) (*bid.ChainBid, error) {
	lst, err := s.listingRepo.FindByToken(ctx, s.chainId, tokenId)
	if err == domain.ErrNotFound {
		return nil, domain.ErrUnknownListing
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("failed to listingRepo.FindByToken")
		return nil, err
	}

	highest, err := s.marketplace.GetHighestBid(ctx, s.chainId, lst.ContractAddress, tokenId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("failed to marketplace.GetHighestBid")
		return nil, err
	}
	if highest == nil {
		return nil, nil
	}

	return &bid.ChainBid{
		Bidder:  highest.Bidder,
		Amount:  bid.FromWei(highest.Amount),
		BidTime: time.Unix(int64(highest.Timestamp), 0).UTC(),
	}, nil
}

func (s *synchronizer) ReconcileTokenBid(ctx bCtx.Ctx, tokenId domain.TokenId, chainBid *bid.ChainBid) error {
	if chainBid == nil {
		return nil
	}

	lst, err := s.listingRepo.FindByToken(ctx, s.chainId, tokenId)
	if err == domain.ErrNotFound {
		ctx.WithFields(log.Fields{
			"tokenId": tokenId,
		}).Warn("no listing maps to token, skipping sync")
		return domain.ErrUnknownListing
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("failed to listingRepo.FindByToken")
		return err
	}

	if _, err := s.userRepo.FindOne(ctx, chainBid.Bidder); err == domain.ErrNotFound {
		ctx.WithFields(log.Fields{
			"tokenId": tokenId,
			"bidder":  chainBid.Bidder,
		}).Warn("chain bid from unknown bidder, skipping sync")
		return domain.ErrUnknownBidder
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"bidder": chainBid.Bidder,
		}).Error("failed to userRepo.FindOne")
		return err
	}

	actives, err := s.bidRepo.FindAll(ctx,
		bid.WithChainId(s.chainId),
		bid.WithCollectionId(lst.CollectionId),
		bid.WithTokenId(tokenId),
		bid.WithStatuses(bid.StatusActive),
	)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("failed to bidRepo.FindAll")
		return err
	}

	now := time.Now().UTC()
	alreadySynced := false
	for _, a := range actives {
		amount, err := a.AmountDecimal()
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":    err,
				"bid":    a,
				"amount": a.Amount,
			}).Error("stored bid amount not a decimal")
			continue
		}

		// keep walking even when the winning row is already stored: stale
		// lower siblings still need to be outbid
		if a.Bidder.Equals(chainBid.Bidder) && bid.AmountsMatch(amount, chainBid.Amount) {
			alreadySynced = true
			continue
		}

		if amount.LessThan(chainBid.Amount) {
			outbid := bid.StatusOutbid
			patch := bid.Patchable{Status: &outbid, UpdatedAt: &now}
			if err := s.bidRepo.Update(ctx, a.ToId(), patch); err != nil {
				ctx.WithFields(log.Fields{
					"err": err,
					"id":  a.ToId(),
				}).Error("failed to bidRepo.Update")
				return err
			}
		}
	}

	if alreadySynced {
		return nil
	}

	row := &bid.Bid{
		ChainId:      s.chainId,
		CollectionId: lst.CollectionId,
		TokenId:      tokenId,
		Bidder:       chainBid.Bidder,
		Amount:       chainBid.Amount.String(),
		Status:       bid.StatusActive,
		TxHash:       bid.SyncedTxHash,
		BidTime:      chainBid.BidTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// keyed on bid identity so two racing reconciliations converge to one row
	if err := s.bidRepo.Upsert(ctx, row); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"bid": row,
		}).Error("failed to bidRepo.Upsert")
		return err
	}

	return nil
}

func (s *synchronizer) GetCurrentBidWithSync(ctx bCtx.Ctx, tokenId domain.TokenId) (*bid.CurrentBid, error) {
	storeAmount, err := s.storeHighestActive(ctx, tokenId)
	if err != nil {
		return nil, err
	}

	chainBid, err := s.GetChainHighestBid(ctx, tokenId)
	if err != nil {
		// degraded read: the store view is better than no view
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Warn("chain read failed, falling back to store")
		return &bid.CurrentBid{CurrentBid: storeAmount, Synced: false}, nil
	}

	var chainAmount *decimal.Decimal
	if chainBid != nil {
		chainAmount = &chainBid.Amount
	}

	switch bid.Resolve(storeAmount, chainAmount) {
	case bid.ResolutionNoChainBid:
		return &bid.CurrentBid{CurrentBid: storeAmount, Synced: false}, nil
	case bid.ResolutionInSync:
		return &bid.CurrentBid{CurrentBid: storeAmount, Synced: true}, nil
	case bid.ResolutionChainAhead:
		synced := true
		if err := s.ReconcileTokenBid(ctx, tokenId, chainBid); err != nil {
			synced = false
		}
		return &bid.CurrentBid{CurrentBid: chainAmount, Synced: synced}, nil
	default: // ResolutionStoreAhead, drift flagged but not resolved here
		ctx.WithFields(log.Fields{
			"tokenId":     tokenId,
			"storeAmount": storeAmount,
			"chainAmount": chainAmount,
		}).Warn("store amount exceeds chain amount")
		return &bid.CurrentBid{CurrentBid: storeAmount, Synced: false}, nil
	}
}

func (s *synchronizer) GetMinimumBidAmount(ctx bCtx.Ctx, tokenId domain.TokenId) (decimal.Decimal, error) {
	current, err := s.GetCurrentBidWithSync(ctx, tokenId)
	if err != nil {
		return decimal.Zero, err
	}
	return bid.MinimumNextBid(current.CurrentBid), nil
}

func (s *synchronizer) ValidateBidAmount(ctx bCtx.Ctx, tokenId domain.TokenId, amount decimal.Decimal) (*bid.Validation, error) {
	chainBid, err := s.GetChainHighestBid(ctx, tokenId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Warn("chain read failed, validating against store only")
		return s.ValidateBidAmountFast(ctx, tokenId, amount)
	}

	var current *decimal.Decimal
	if chainBid != nil {
		current = &chainBid.Amount
	}
	return validate(current, amount), nil
}

func (s *synchronizer) ValidateBidAmountFast(ctx bCtx.Ctx, tokenId domain.TokenId, amount decimal.Decimal) (*bid.Validation, error) {
	current, err := s.storeHighestActive(ctx, tokenId)
	if err != nil {
		return nil, err
	}
	return validate(current, amount), nil
}

// storeHighestActive returns the store's highest ACTIVE amount for the
// token, nil when there is none.
func (s *synchronizer) storeHighestActive(ctx bCtx.Ctx, tokenId domain.TokenId) (*decimal.Decimal, error) {
	actives, err := s.bidRepo.FindAll(ctx,
		bid.WithChainId(s.chainId),
		bid.WithTokenId(tokenId),
		bid.WithStatuses(bid.StatusActive),
	)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("failed to bidRepo.FindAll")
		return nil, err
	}

	var highest *decimal.Decimal
	for _, a := range actives {
		amount, err := a.AmountDecimal()
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":    err,
				"amount": a.Amount,
			}).Error("stored bid amount not a decimal")
			continue
		}
		if highest == nil || amount.GreaterThan(*highest) {
			v := amount
			highest = &v
		}
	}
	return highest, nil
}

func validate(current *decimal.Decimal, amount decimal.Decimal) *bid.Validation {
	minimum := bid.MinimumNextBid(current)
	if amount.LessThan(minimum) {
		return &bid.Validation{
			Valid:      false,
			MinimumBid: minimum,
			CurrentBid: current,
			Message:    fmt.Sprintf("bid must be at least %s", minimum.String()),
		}
	}
	return &bid.Validation{
		Valid:      true,
		MinimumBid: minimum,
		CurrentBid: current,
	}
}
