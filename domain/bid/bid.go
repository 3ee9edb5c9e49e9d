package bid

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusAccepted  Status = "ACCEPTED"
	StatusWithdrawn Status = "WITHDRAWN"
	StatusOutbid    Status = "OUTBID"
)

// SyncedTxHash marks rows backfilled from chain state rather than submitted
// through this API.
const SyncedTxHash = domain.TxHash("synced-from-chain")

// Bid is one stored bid row. Amount is a decimal string in native units
// (wei / 10^18). The chain enforces at most one ACTIVE bid per token, but
// the store may transiently hold several until reconciliation converges
// them.
type Bid struct {
	ChainId      domain.ChainId      `json:"chainId" bson:"chainId"`
	CollectionId domain.CollectionId `json:"collectionId" bson:"collectionId"`
	TokenId      domain.TokenId      `json:"tokenId" bson:"tokenId"`
	Bidder       domain.Address      `json:"bidder" bson:"bidder"`
	Amount       string              `json:"amount" bson:"amount"`
	Status       Status              `json:"status" bson:"status"`
	TxHash       domain.TxHash       `json:"txHash" bson:"txHash"`
	BidTime      time.Time           `json:"bidTime" bson:"bidTime"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt" bson:"updatedAt"`
}

func (b *Bid) LowerCase() {
	b.Bidder = b.Bidder.ToLower()
	b.TxHash = b.TxHash.ToLower()
}

func (b *Bid) AmountDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(b.Amount)
}

func (b *Bid) ToId() Id {
	return Id{
		ChainId:      b.ChainId,
		CollectionId: b.CollectionId,
		TokenId:      b.TokenId,
		Bidder:       b.Bidder,
		BidTime:      b.BidTime,
	}
}

// Id identifies one bid row. The chain holds at most one bid per
// (token, bidder, bid time), so upserting by Id makes reconciliation
// idempotent even when two reconciliations race.
type Id struct {
	ChainId      domain.ChainId      `json:"chainId" bson:"chainId"`
	CollectionId domain.CollectionId `json:"collectionId" bson:"collectionId"`
	TokenId      domain.TokenId      `json:"tokenId" bson:"tokenId"`
	Bidder       domain.Address      `json:"bidder" bson:"bidder"`
	BidTime      time.Time           `json:"bidTime" bson:"bidTime"`
}

type Patchable struct {
	Status    *Status    `json:"status" bson:"status,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt" bson:"updatedAt,omitempty"`
}

type FindAllOptions struct {
	ChainId      *domain.ChainId
	CollectionId *domain.CollectionId
	TokenId      *domain.TokenId
	Bidder       *domain.Address
	Statuses     []Status
	Sort         *string
	Offset       *int32
	Limit        *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithChainId(chainId domain.ChainId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func WithCollectionId(collectionId domain.CollectionId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.CollectionId = &collectionId
		return nil
	}
}

func WithTokenId(tokenId domain.TokenId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.TokenId = &tokenId
		return nil
	}
}

func WithBidder(bidder domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		lowered := bidder.ToLower()
		options.Bidder = &lowered
		return nil
	}
}

func WithStatuses(statuses ...Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Statuses = statuses
		return nil
	}
}

func WithSort(sort string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Sort = &sort
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type Repo interface {
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Bid, error)
	FindOne(ctx ctx.Ctx, id Id) (*Bid, error)
	Count(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	Upsert(ctx ctx.Ctx, b *Bid) error
	Update(ctx ctx.Ctx, id Id, patchable Patchable) error
	UpdateAll(ctx ctx.Ctx, patchable Patchable, opts ...FindAllOptionsFunc) error
}

// ChainBid is the chain's highest bid converted to native units.
type ChainBid struct {
	Bidder  domain.Address
	Amount  decimal.Decimal
	BidTime time.Time
}

// CurrentBid is the reconciled view of a token's highest bid. Synced is
// false when there was nothing to sync or when drift was flagged without
// being resolved.
type CurrentBid struct {
	CurrentBid *decimal.Decimal `json:"currentBid"`
	Synced     bool             `json:"synced"`
}

// Validation is the outcome of a pre-submission bid amount check. It is an
// optimization to avoid wasted gas, never a substitute for the contract's
// own validation.
type Validation struct {
	Valid      bool             `json:"valid"`
	MinimumBid decimal.Decimal  `json:"minimumBid"`
	CurrentBid *decimal.Decimal `json:"currentBid"`
	Message    string           `json:"message,omitempty"`
}

type Role string

const (
	RoleBidder     Role = "bidder"
	RoleTokenOwner Role = "token_owner"
)

// ClassifiedBid is a stored bid annotated with the queried user's role and
// the chain-resolved current owner of the bid's token.
type ClassifiedBid struct {
	*Bid
	Role         Role           `json:"role"`
	CurrentOwner domain.Address `json:"currentOwner"`
}

type Summary struct {
	TotalBidsMade      int `json:"totalBidsMade"`
	ActiveBidsMade     int `json:"activeBidsMade"`
	TotalBidsReceived  int `json:"totalBidsReceived"`
	ActiveBidsReceived int `json:"activeBidsReceived"`
}

// Aggregation is one user's classified view over every stored bid.
type Aggregation struct {
	UserBids     []*ClassifiedBid `json:"userBids"`
	ReceivedBids []*ClassifiedBid `json:"receivedBids"`
	AllBids      []*ClassifiedBid `json:"allBids"`
	Summary      Summary          `json:"summary"`
}

func EmptyAggregation() *Aggregation {
	return &Aggregation{
		UserBids:     []*ClassifiedBid{},
		ReceivedBids: []*ClassifiedBid{},
		AllBids:      []*ClassifiedBid{},
	}
}

// SyncUseCase reconciles the chain's highest bid for one token against the
// store. It only inserts ACTIVE rows or converges siblings; ACCEPTED and
// WITHDRAWN transitions belong to action handlers elsewhere.
type SyncUseCase interface {
	// GetChainHighestBid returns nil when the chain reports no active bid.
	// An RPC failure is returned as an error, never as nil.
	GetChainHighestBid(ctx ctx.Ctx, tokenId domain.TokenId) (*ChainBid, error)
	ReconcileTokenBid(ctx ctx.Ctx, tokenId domain.TokenId, chainBid *ChainBid) error
	GetCurrentBidWithSync(ctx ctx.Ctx, tokenId domain.TokenId) (*CurrentBid, error)
	GetMinimumBidAmount(ctx ctx.Ctx, tokenId domain.TokenId) (decimal.Decimal, error)
	// ValidateBidAmount re-reads the chain first, falling back to the store
	// when the read fails. It must gate any bid actually submitted.
	ValidateBidAmount(ctx ctx.Ctx, tokenId domain.TokenId, amount decimal.Decimal) (*Validation, error)
	// ValidateBidAmountFast trusts the store only. Low latency, may disagree
	// with the chain when the store is stale.
	ValidateBidAmountFast(ctx ctx.Ctx, tokenId domain.TokenId, amount decimal.Decimal) (*Validation, error)
}

// AggregationUseCase classifies every stored bid by one user's bidder/owner
// role, resolving ownership from chain state in preference to the store.
type AggregationUseCase interface {
	// AggregateBidsForUser never fails upward: total failure degrades to an
	// empty result so dashboards render.
	AggregateBidsForUser(ctx ctx.Ctx, address domain.Address) *Aggregation
	GetActiveBidsForOwner(ctx ctx.Ctx, address domain.Address) []*ClassifiedBid
	GetBidsByUser(ctx ctx.Ctx, address domain.Address) []*ClassifiedBid
	GetAllBidsReceivedByOwner(ctx ctx.Ctx, address domain.Address) []*ClassifiedBid
}
