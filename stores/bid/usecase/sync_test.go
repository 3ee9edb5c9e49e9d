package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/bid"
	mockBid "github.com/platz/goapi/domain/bid/mocks"
	"github.com/platz/goapi/domain/listing"
	mockListing "github.com/platz/goapi/domain/listing/mocks"
	"github.com/platz/goapi/domain/user"
	mockUser "github.com/platz/goapi/domain/user/mocks"
	"github.com/platz/goapi/service/chain/contract"
	mockContract "github.com/platz/goapi/service/chain/contract/mocks"
)

var mockCtx = ctx.Background()

const (
	testChainId      = domain.ChainId(137)
	testCollectionId = domain.CollectionId(7)
	testTokenId      = domain.TokenId(42)
)

var testListing = &listing.Listing{
	ChainId:         testChainId,
	CollectionId:    testCollectionId,
	ContractAddress: domain.Address("0x00000000000000000000000000000000000000aa"),
	Seller:          domain.Address("0x00000000000000000000000000000000000000bb"),
	MainTokenId:     domain.TokenId(40),
	CollectionSize:  10,
	Active:          true,
}

func toWei(native string) *big.Int {
	d := decimal.RequireFromString(native)
	return d.Mul(decimal.NewFromBigInt(domain.WeiPerNative, 0)).BigInt()
}

type syncTestsuite struct {
	suite.Suite
	bidRepo     *mockBid.Repo
	userRepo    *mockUser.Repo
	listingRepo *mockListing.Repo
	marketplace *mockContract.MarketplaceContract
	subject     *synchronizer
}

func TestSynchronizer(t *testing.T) {
	suite.Run(t, new(syncTestsuite))
}

func (t *syncTestsuite) SetupTest() {
	t.bidRepo = &mockBid.Repo{}
	t.userRepo = &mockUser.Repo{}
	t.listingRepo = &mockListing.Repo{}
	t.marketplace = &mockContract.MarketplaceContract{}
	t.subject = &synchronizer{
		chainId:     testChainId,
		bidRepo:     t.bidRepo,
		userRepo:    t.userRepo,
		listingRepo: t.listingRepo,
		marketplace: t.marketplace,
	}
}

func (t *syncTestsuite) activeBid(bidder domain.Address, amount string) *bid.Bid {
	return &bid.Bid{
		ChainId:      testChainId,
		CollectionId: testCollectionId,
		TokenId:      testTokenId,
		Bidder:       bidder.ToLower(),
		Amount:       amount,
		Status:       bid.StatusActive,
		TxHash:       bid.SyncedTxHash,
		BidTime:      time.Unix(1700000000, 0).UTC(),
	}
}

func (t *syncTestsuite) TestCurrentBidFreshToken() {
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*bid.Bid{}, nil)
	t.listingRepo.
		On("FindByToken", mockCtx, testChainId, testTokenId).
		Return(testListing, nil)
	t.marketplace.
		On("GetHighestBid", mockCtx, testChainId, testListing.ContractAddress, testTokenId).
		Return(nil, nil)

	res, err := t.subject.GetCurrentBidWithSync(mockCtx, testTokenId)
	t.NoError(err)
	t.Nil(res.CurrentBid)
	t.False(res.Synced)
}

func (t *syncTestsuite) TestCurrentBidChainAhead() {
	bidder := domain.Address("0x00000000000000000000000000000000000000cc")

	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*bid.Bid{}, nil)
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*bid.Bid{}, nil)
	t.listingRepo.
		On("FindByToken", mockCtx, testChainId, testTokenId).
		Return(testListing, nil)
	t.marketplace.
		On("GetHighestBid", mockCtx, testChainId, testListing.ContractAddress, testTokenId).
		Return(&contract.HighestBid{
			Bidder:    bidder,
			Amount:    toWei("2"),
			Timestamp: 1700000000,
		}, nil)
	t.userRepo.
		On("FindOne", mockCtx, bidder).
		Return(&user.User{Address: bidder}, nil)
	t.bidRepo.
		On("Upsert", mockCtx, mock.MatchedBy(func(b *bid.Bid) bool {
			return b.Bidder == bidder &&
				b.Status == bid.StatusActive &&
				b.TxHash == bid.SyncedTxHash &&
				b.CollectionId == testCollectionId &&
				b.Amount == "2"
		})).
		Return(nil)

	res, err := t.subject.GetCurrentBidWithSync(mockCtx, testTokenId)
	t.NoError(err)
	t.NotNil(res.CurrentBid)
	t.True(res.CurrentBid.Equal(decimal.RequireFromString("2")))
	t.True(res.Synced)
	t.bidRepo.AssertCalled(t.T(), "Upsert", mockCtx, mock.Anything)
}

func (t *syncTestsuite) TestCurrentBidStoreAheadFlagsDrift() {
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*bid.Bid{t.activeBid("0xdd", "5")}, nil)
	t.listingRepo.
		On("FindByToken", mockCtx, testChainId, testTokenId).
		Return(testListing, nil)
	t.marketplace.
		On("GetHighestBid", mockCtx, testChainId, testListing.ContractAddress, testTokenId).
		Return(&contract.HighestBid{
			Bidder:    domain.Address("0xee"),
			Amount:    toWei("3"),
			Timestamp: 1700000000,
		}, nil)

	res, err := t.subject.GetCurrentBidWithSync(mockCtx, testTokenId)
	t.NoError(err)
	t.NotNil(res.CurrentBid)
	t.True(res.CurrentBid.Equal(decimal.RequireFromString("5")))
	t.False(res.Synced)
	t.bidRepo.AssertNotCalled(t.T(), "Upsert", mock.Anything, mock.Anything)
}

func (t *syncTestsuite) TestCurrentBidChainErrorFallsBackToStore() {
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*bid.Bid{t.activeBid("0xdd", "1.5")}, nil)
	t.listingRepo.
		On("FindByToken", mockCtx, testChainId, testTokenId).
		Return(testListing, nil)
	t.marketplace.
		On("GetHighestBid", mockCtx, testChainId, testListing.ContractAddress, testTokenId).
		Return(nil, errors.New("rpc timeout"))

	res, err := t.subject.GetCurrentBidWithSync(mockCtx, testTokenId)
	t.NoError(err)
	t.NotNil(res.CurrentBid)
	t.True(res.CurrentBid.Equal(decimal.RequireFromString("1.5")))
	t.False(res.Synced)
}

func (t *syncTestsuite) TestReconcileSuppressesDuplicate() {
	// the chain reports the bid the store already holds, with the bidder in
	// a different case
	chainBid := &bid.ChainBid{
		Bidder:  domain.Address("0x00000000000000000000000000000000000000CC"),
		Amount:  decimal.RequireFromString("2.00005"),
		BidTime: time.Unix(1700000000, 0).UTC(),
	}

	t.listingRepo.
		On("FindByToken", mockCtx, testChainId, testTokenId).
		Return(testListing, nil)
	t.userRepo.
		On("FindOne", mockCtx, chainBid.Bidder).
		Return(&user.User{Address: chainBid.Bidder.ToLower()}, nil)
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*bid.Bid{t.activeBid("0x00000000000000000000000000000000000000cc", "2")}, nil)

	err := t.subject.ReconcileTokenBid(mockCtx, testTokenId, chainBid)
	t.NoError(err)
	t.bidRepo.AssertNotCalled(t.T(), "Upsert", mock.Anything, mock.Anything)
	t.bidRepo.AssertNotCalled(t.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
}

func (t *syncTestsuite) TestReconcileOutbidsLowerSiblings() {
	winner := domain.Address("0x00000000000000000000000000000000000000ff")
	loser := t.activeBid("0x00000000000000000000000000000000000000cc", "1")
	chainBid := &bid.ChainBid{
		Bidder:  winner,
		Amount:  decimal.RequireFromString("2"),
		BidTime: time.Unix(1700000000, 0).UTC(),
	}

	t.listingRepo.
		On("FindByToken", mockCtx, testChainId, testTokenId).
		Return(testListing, nil)
	t.userRepo.
		On("FindOne", mockCtx, winner).
		Return(&user.User{Address: winner}, nil)
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*bid.Bid{loser}, nil)
	t.bidRepo.
		On("Update", mockCtx, loser.ToId(), mock.MatchedBy(func(p bid.Patchable) bool {
			return p.Status != nil && *p.Status == bid.StatusOutbid
		})).
		Return(nil)
	t.bidRepo.
		On("Upsert", mockCtx, mock.MatchedBy(func(b *bid.Bid) bool {
			return b.Bidder == winner && b.Amount == "2"
		})).
		Return(nil)

	err := t.subject.ReconcileTokenBid(mockCtx, testTokenId, chainBid)
	t.NoError(err)
	t.bidRepo.AssertExpectations(t.T())
}

func (t *syncTestsuite) TestReconcileOutbidsStaleSiblingOfSyncedWinner() {
	// the winning row is already stored and sorts first (-bidTime); the
	// stale lower row behind it must still be transitioned to OUTBID
	winner := t.activeBid("0x00000000000000000000000000000000000000ff", "2")
	stale := t.activeBid("0x00000000000000000000000000000000000000cc", "1")
	chainBid := &bid.ChainBid{
		Bidder:  winner.Bidder,
		Amount:  decimal.RequireFromString("2"),
		BidTime: time.Unix(1700000000, 0).UTC(),
	}

	t.listingRepo.
		On("FindByToken", mockCtx, testChainId, testTokenId).
		Return(testListing, nil)
	t.userRepo.
		On("FindOne", mockCtx, winner.Bidder).
		Return(&user.User{Address: winner.Bidder}, nil)
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*bid.Bid{winner, stale}, nil)
	t.bidRepo.
		On("Update", mockCtx, stale.ToId(), mock.MatchedBy(func(p bid.Patchable) bool {
			return p.Status != nil && *p.Status == bid.StatusOutbid
		})).
		Return(nil)

	err := t.subject.ReconcileTokenBid(mockCtx, testTokenId, chainBid)
	t.NoError(err)
	t.bidRepo.AssertExpectations(t.T())
	t.bidRepo.AssertNotCalled(t.T(), "Upsert", mock.Anything, mock.Anything)
}

func (t *syncTestsuite) TestReconcileUnknownBidder() {
	chainBid := &bid.ChainBid{
		Bidder:  domain.Address("0x0000000000000000000000000000000000000099"),
		Amount:  decimal.RequireFromString("2"),
		BidTime: time.Unix(1700000000, 0).UTC(),
	}

	t.listingRepo.
		On("FindByToken", mockCtx, testChainId, testTokenId).
		Return(testListing, nil)
	t.userRepo.
		On("FindOne", mockCtx, chainBid.Bidder).
		Return(nil, domain.ErrNotFound)

	err := t.subject.ReconcileTokenBid(mockCtx, testTokenId, chainBid)
	t.ErrorIs(err, domain.ErrUnknownBidder)
	t.bidRepo.AssertNotCalled(t.T(), "Upsert", mock.Anything, mock.Anything)
}

func (t *syncTestsuite) TestMinimumBidWithoutCurrent() {
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*bid.Bid{}, nil)
	t.listingRepo.
		On("FindByToken", mockCtx, testChainId, testTokenId).
		Return(testListing, nil)
	t.marketplace.
		On("GetHighestBid", mockCtx, testChainId, testListing.ContractAddress, testTokenId).
		Return(nil, nil)

	min, err := t.subject.GetMinimumBidAmount(mockCtx, testTokenId)
	t.NoError(err)
	t.True(min.Equal(bid.MinIncrement))
}

func (t *syncTestsuite) TestValidateRejectsLowBid() {
	t.listingRepo.
		On("FindByToken", mockCtx, testChainId, testTokenId).
		Return(testListing, nil)
	t.marketplace.
		On("GetHighestBid", mockCtx, testChainId, testListing.ContractAddress, testTokenId).
		Return(&contract.HighestBid{
			Bidder:    domain.Address("0xcc"),
			Amount:    toWei("1"),
			Timestamp: 1700000000,
		}, nil)

	res, err := t.subject.ValidateBidAmount(mockCtx, testTokenId, decimal.RequireFromString("1.0005"))
	t.NoError(err)
	t.False(res.Valid)
	t.True(res.MinimumBid.Equal(decimal.RequireFromString("1.001")))
	t.Contains(res.Message, "1.001")
}

func (t *syncTestsuite) TestValidateFallsBackToStoreOnChainError() {
	t.listingRepo.
		On("FindByToken", mockCtx, testChainId, testTokenId).
		Return(testListing, nil)
	t.marketplace.
		On("GetHighestBid", mockCtx, testChainId, testListing.ContractAddress, testTokenId).
		Return(nil, errors.New("rpc timeout"))
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*bid.Bid{t.activeBid("0xcc", "1")}, nil)

	res, err := t.subject.ValidateBidAmount(mockCtx, testTokenId, decimal.RequireFromString("1.5"))
	t.NoError(err)
	t.True(res.Valid)
	t.True(res.MinimumBid.Equal(decimal.RequireFromString("1.001")))
}

func (t *syncTestsuite) TestValidateFastAcceptsAtMinimum() {
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*bid.Bid{t.activeBid("0xcc", "1")}, nil)

	res, err := t.subject.ValidateBidAmountFast(mockCtx, testTokenId, decimal.RequireFromString("1.001"))
	t.NoError(err)
	t.True(res.Valid)
}
