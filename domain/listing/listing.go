package listing

import (
	"time"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
)

// Listing groups tokens of one on-chain collection under a seller. The
// expected token-id range of the collection is [MainTokenId,
// MainTokenId+CollectionSize).
type Listing struct {
	ChainId         domain.ChainId      `json:"chainId" bson:"chainId"`
	CollectionId    domain.CollectionId `json:"collectionId" bson:"collectionId"`
	ContractAddress domain.Address      `json:"contractAddress" bson:"contractAddress"`
	Seller          domain.Address      `json:"seller" bson:"seller"`
	MainTokenId     domain.TokenId      `json:"mainTokenId" bson:"mainTokenId"`
	CollectionSize  uint64              `json:"collectionSize" bson:"collectionSize"`
	Active          bool                `json:"active" bson:"active"`
	CreatedAt       time.Time           `json:"createdAt" bson:"createdAt"`
}

func (l *Listing) LowerCase() {
	l.ContractAddress = l.ContractAddress.ToLower()
	l.Seller = l.Seller.ToLower()
}

func (l *Listing) ToId() Id {
	return Id{ChainId: l.ChainId, CollectionId: l.CollectionId}
}

type Id struct {
	ChainId      domain.ChainId      `json:"chainId" bson:"chainId"`
	CollectionId domain.CollectionId `json:"collectionId" bson:"collectionId"`
}

// LandToken is the stored ownership record of one token within a collection.
// It caches on-chain ownerOf/listing state and is explicitly allowed to go
// stale; reconciliation upserts it on observed mismatch.
type LandToken struct {
	ChainId      domain.ChainId      `json:"chainId" bson:"chainId"`
	CollectionId domain.CollectionId `json:"collectionId" bson:"collectionId"`
	TokenId      domain.TokenId      `json:"tokenId" bson:"tokenId"`
	OwnerAddress domain.Address      `json:"ownerAddress" bson:"ownerAddress"`
	IsListed     bool                `json:"isListed" bson:"isListed"`
	ListingPrice string              `json:"listingPrice" bson:"listingPrice"`
	UpdatedAt    time.Time           `json:"updatedAt" bson:"updatedAt"`
}

func (t *LandToken) LowerCase() {
	t.OwnerAddress = t.OwnerAddress.ToLower()
}

func (t *LandToken) ToId() LandTokenId {
	return LandTokenId{ChainId: t.ChainId, CollectionId: t.CollectionId, TokenId: t.TokenId}
}

type LandTokenId struct {
	ChainId      domain.ChainId      `json:"chainId" bson:"chainId"`
	CollectionId domain.CollectionId `json:"collectionId" bson:"collectionId"`
	TokenId      domain.TokenId      `json:"tokenId" bson:"tokenId"`
}

type LandTokenPatchable struct {
	OwnerAddress *domain.Address `json:"ownerAddress" bson:"ownerAddress,omitempty"`
	IsListed     *bool           `json:"isListed" bson:"isListed,omitempty"`
	ListingPrice *string         `json:"listingPrice" bson:"listingPrice,omitempty"`
	UpdatedAt    *time.Time      `json:"updatedAt" bson:"updatedAt,omitempty"`
}

type FindAllOptions struct {
	ChainId      *domain.ChainId
	CollectionId *domain.CollectionId
	Active       *bool
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

func WithActive(active bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Active = &active
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
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	FindOne(ctx ctx.Ctx, id Id) (*Listing, error)
	// FindByToken resolves the listing owning a token: first by main-token-id
	// match, then by membership in the collection's expected token range.
	FindByToken(ctx ctx.Ctx, chainId domain.ChainId, tokenId domain.TokenId) (*Listing, error)
	Upsert(ctx ctx.Ctx, l *Listing) error
}

type LandTokenRepo interface {
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*LandToken, error)
	FindOne(ctx ctx.Ctx, id LandTokenId) (*LandToken, error)
	Upsert(ctx ctx.Ctx, t *LandToken) error
	Patch(ctx ctx.Ctx, id LandTokenId, patchable LandTokenPatchable) error
}
