package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/bid"
	mockBid "github.com/platz/goapi/domain/bid/mocks"
	"github.com/platz/goapi/domain/listing"
	mockListing "github.com/platz/goapi/domain/listing/mocks"
	"github.com/platz/goapi/service/cache"
	"github.com/platz/goapi/service/cache/provider/primitive"
	mockContract "github.com/platz/goapi/service/chain/contract/mocks"
)

const (
	userAddr  = domain.Address("0x0000000000000000000000000000000000000001")
	otherAddr = domain.Address("0x0000000000000000000000000000000000000002")
)

type aggregationTestsuite struct {
	suite.Suite
	bidRepo       *mockBid.Repo
	listingRepo   *mockListing.Repo
	landTokenRepo *mockListing.LandTokenRepo
	erc721        *mockContract.Erc721Contract
	subject       *aggregator
}

func TestAggregator(t *testing.T) {
	suite.Run(t, new(aggregationTestsuite))
}

func (t *aggregationTestsuite) SetupTest() {
	t.bidRepo = &mockBid.Repo{}
	t.listingRepo = &mockListing.Repo{}
	t.landTokenRepo = &mockListing.LandTokenRepo{}
	t.erc721 = &mockContract.Erc721Contract{}
	t.subject = &aggregator{
		chainId:       testChainId,
		bidRepo:       t.bidRepo,
		listingRepo:   t.listingRepo,
		landTokenRepo: t.landTokenRepo,
		erc721:        t.erc721,
		ownerCache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   "test",
			Cache: primitive.NewPrimitive("owner", 1),
		}),
	}
}

func (t *aggregationTestsuite) storedBid(bidder domain.Address, tokenId domain.TokenId, status bid.Status) *bid.Bid {
	return &bid.Bid{
		ChainId:      testChainId,
		CollectionId: testCollectionId,
		TokenId:      tokenId,
		Bidder:       bidder.ToLower(),
		Amount:       "1",
		Status:       status,
		TxHash:       bid.SyncedTxHash,
		BidTime:      time.Unix(1700000000, 0).UTC(),
	}
}

func (t *aggregationTestsuite) stubOwner(tokenId domain.TokenId, owner domain.Address) {
	t.landTokenRepo.
		On("FindOne", mockCtx, listing.LandTokenId{
			ChainId:      testChainId,
			CollectionId: testCollectionId,
			TokenId:      tokenId,
		}).
		Return(&listing.LandToken{
			ChainId:      testChainId,
			CollectionId: testCollectionId,
			TokenId:      tokenId,
			OwnerAddress: owner,
		}, nil)
}

func (t *aggregationTestsuite) TestClassifiesBothRoles() {
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return([]*bid.Bid{
			t.storedBid(userAddr, 42, bid.StatusActive),    // made by the user
			t.storedBid(otherAddr, 43, bid.StatusActive),   // received on the user's token
			t.storedBid(otherAddr, 43, bid.StatusOutbid),   // received, no longer active
			t.storedBid(otherAddr, 44, bid.StatusAccepted), // unrelated to the user
		}, nil)
	t.stubOwner(42, otherAddr)
	t.stubOwner(43, userAddr)
	t.stubOwner(44, otherAddr)

	res := t.subject.AggregateBidsForUser(mockCtx, userAddr)
	t.Len(res.UserBids, 1)
	t.Len(res.ReceivedBids, 2)
	t.Len(res.AllBids, 3)
	t.Equal(1, res.Summary.TotalBidsMade)
	t.Equal(1, res.Summary.ActiveBidsMade)
	t.Equal(2, res.Summary.TotalBidsReceived)
	t.Equal(1, res.Summary.ActiveBidsReceived)
	t.Equal(bid.RoleBidder, res.UserBids[0].Role)
	t.Equal(bid.RoleTokenOwner, res.ReceivedBids[0].Role)
}

func (t *aggregationTestsuite) TestSelfBidClassifiesAsBidder() {
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return([]*bid.Bid{t.storedBid(userAddr, 42, bid.StatusActive)}, nil)
	t.stubOwner(42, userAddr)

	res := t.subject.AggregateBidsForUser(mockCtx, userAddr)
	t.Len(res.UserBids, 1)
	t.Len(res.ReceivedBids, 0)
	t.Equal(bid.RoleBidder, res.UserBids[0].Role)
	t.Equal(userAddr, res.UserBids[0].CurrentOwner)
}

func (t *aggregationTestsuite) TestDropsTokenlessBids() {
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return([]*bid.Bid{t.storedBid(userAddr, 0, bid.StatusActive)}, nil)

	res := t.subject.AggregateBidsForUser(mockCtx, userAddr)
	t.Len(res.AllBids, 0)
	t.landTokenRepo.AssertNotCalled(t.T(), "FindOne", mock.Anything, mock.Anything)
}

func (t *aggregationTestsuite) TestFallsBackToChainOwnership() {
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return([]*bid.Bid{t.storedBid(userAddr, 42, bid.StatusActive)}, nil)
	t.landTokenRepo.
		On("FindOne", mockCtx, mock.Anything).
		Return(nil, domain.ErrNotFound)
	t.listingRepo.
		On("FindOne", mockCtx, listing.Id{ChainId: testChainId, CollectionId: testCollectionId}).
		Return(testListing, nil)
	t.erc721.
		On("OwnerOf", mockCtx, testChainId, testListing.ContractAddress, domain.TokenId(42)).
		Return(otherAddr, nil)

	res := t.subject.AggregateBidsForUser(mockCtx, userAddr)
	t.Len(res.UserBids, 1)
	t.Equal(otherAddr, res.UserBids[0].CurrentOwner)
}

func (t *aggregationTestsuite) TestCachesChainOwnership() {
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return([]*bid.Bid{t.storedBid(userAddr, 42, bid.StatusActive)}, nil)
	t.landTokenRepo.
		On("FindOne", mockCtx, mock.Anything).
		Return(nil, domain.ErrNotFound)
	t.listingRepo.
		On("FindOne", mockCtx, mock.Anything).
		Return(testListing, nil)
	t.erc721.
		On("OwnerOf", mockCtx, testChainId, testListing.ContractAddress, domain.TokenId(42)).
		Return(otherAddr, nil).
		Once()

	t.subject.AggregateBidsForUser(mockCtx, userAddr)
	t.subject.AggregateBidsForUser(mockCtx, userAddr)
	t.erc721.AssertNumberOfCalls(t.T(), "OwnerOf", 1)
}

func (t *aggregationTestsuite) TestSkipsTokenWithUnresolvedOwnership() {
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return([]*bid.Bid{
			t.storedBid(userAddr, 42, bid.StatusActive),
			t.storedBid(userAddr, 43, bid.StatusActive),
		}, nil)
	t.stubOwner(42, otherAddr)
	t.landTokenRepo.
		On("FindOne", mockCtx, listing.LandTokenId{
			ChainId:      testChainId,
			CollectionId: testCollectionId,
			TokenId:      43,
		}).
		Return(nil, domain.ErrNotFound)
	t.listingRepo.
		On("FindOne", mockCtx, mock.Anything).
		Return(testListing, nil)
	t.erc721.
		On("OwnerOf", mockCtx, testChainId, testListing.ContractAddress, domain.TokenId(43)).
		Return(domain.Address(""), errors.New("rpc timeout"))

	res := t.subject.AggregateBidsForUser(mockCtx, userAddr)
	t.Len(res.UserBids, 1)
	t.Equal(domain.TokenId(42), res.UserBids[0].TokenId)
}

func (t *aggregationTestsuite) TestTotalFailureDegradesToEmpty() {
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return(nil, errors.New("mongo down"))

	res := t.subject.AggregateBidsForUser(mockCtx, userAddr)
	t.NotNil(res)
	t.Len(res.AllBids, 0)
	t.Equal(bid.Summary{}, res.Summary)
}
