package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/platz/goapi/base/abi"
	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/service/chain"
)

// HighestBid is the chain's authoritative highest bid for one token.
// Amount is wei (fixed-point, scaled by 10^18).
type HighestBid struct {
	Bidder       domain.Address
	Amount       *big.Int
	PaymentToken domain.Address
	Timestamp    uint64
}

type Listing struct {
	Seller       domain.Address
	Price        *big.Int
	PaymentToken domain.Address
	Active       bool
}

type CollectionListing struct {
	Seller       domain.Address
	MainTokenId  domain.TokenId
	BasePrice    *big.Int
	PaymentToken domain.Address
	Active       bool
}

// MarketplaceContract reads marketplace state from the chain. All calls are
// read-only and idempotent. An error return means "unknown", never "empty":
// GetHighestBid reports "no active bid" as (nil, nil).
type MarketplaceContract interface {
	GetHighestBid(ctx bCtx.Ctx, chainId domain.ChainId, nftAddress domain.Address, tokenId domain.TokenId) (*HighestBid, error)
	GetListing(ctx bCtx.Ctx, chainId domain.ChainId, nftAddress domain.Address, tokenId domain.TokenId) (*Listing, error)
	GetCollectionListing(ctx bCtx.Ctx, chainId domain.ChainId, collectionId domain.CollectionId) (*CollectionListing, error)
}

type Marketplace struct {
	chainService chain.Client
	address      common.Address
	abi          ethabi.ABI
}

func NewMarketplace(chainService chain.Client, address domain.Address) *Marketplace {
	return &Marketplace{
		chainService: chainService,
		address:      common.HexToAddress(string(address)),
		abi:          baseabi.MarketplaceABI,
	}
}

func (m *Marketplace) GetHighestBid(ctx bCtx.Ctx, chainId domain.ChainId, nftAddress domain.Address, tokenId domain.TokenId) (*HighestBid, error) {
	method := "getHighestBid"
	unpacked, err := m.chainService.Call(ctx, chainId, m.address, m.abi, method, common.HexToAddress(string(nftAddress)), tokenId.ToBig())
	if err != nil {
		return nil, err
	}

	amount := unpacked[1].(*big.Int)
	if amount.Sign() == 0 {
		// the contract encodes "no active bid" as a zero amount
		return nil, nil
	}

	return &HighestBid{
		Bidder:       domain.Address(unpacked[0].(common.Address).String()).ToLower(),
		Amount:       amount,
		PaymentToken: domain.Address(unpacked[2].(common.Address).String()).ToLower(),
		Timestamp:    unpacked[3].(*big.Int).Uint64(),
	}, nil
}

func (m *Marketplace) GetListing(ctx bCtx.Ctx, chainId domain.ChainId, nftAddress domain.Address, tokenId domain.TokenId) (*Listing, error) {
	method := "getListing"
	unpacked, err := m.chainService.Call(ctx, chainId, m.address, m.abi, method, common.HexToAddress(string(nftAddress)), tokenId.ToBig())
	if err != nil {
		return nil, err
	}

	return &Listing{
		Seller:       domain.Address(unpacked[0].(common.Address).String()).ToLower(),
		Price:        unpacked[1].(*big.Int),
		PaymentToken: domain.Address(unpacked[2].(common.Address).String()).ToLower(),
		Active:       unpacked[3].(bool),
	}, nil
}

func (m *Marketplace) GetCollectionListing(ctx bCtx.Ctx, chainId domain.ChainId, collectionId domain.CollectionId) (*CollectionListing, error) {
	method := "getCollectionListing"
	unpacked, err := m.chainService.Call(ctx, chainId, m.address, m.abi, method, collectionId.ToBig())
	if err != nil {
		return nil, err
	}

	return &CollectionListing{
		Seller:       domain.Address(unpacked[0].(common.Address).String()).ToLower(),
		MainTokenId:  domain.TokenId(unpacked[1].(*big.Int).Uint64()),
		BasePrice:    unpacked[2].(*big.Int),
		PaymentToken: domain.Address(unpacked[3].(common.Address).String()).ToLower(),
		Active:       unpacked[4].(bool),
	}, nil
}
