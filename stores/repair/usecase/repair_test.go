package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/metrics"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/bid"
	mockBid "github.com/platz/goapi/domain/bid/mocks"
	"github.com/platz/goapi/domain/listing"
	mockListing "github.com/platz/goapi/domain/listing/mocks"
	mockContract "github.com/platz/goapi/service/chain/contract/mocks"
)

var mockCtx = ctx.Background()

const (
	testChainId      = domain.ChainId(137)
	testCollectionId = domain.CollectionId(7)
)

var testListing = &listing.Listing{
	ChainId:         testChainId,
	CollectionId:    testCollectionId,
	ContractAddress: domain.Address("0x00000000000000000000000000000000000000aa"),
	Seller:          domain.Address("0x00000000000000000000000000000000000000bb"),
	MainTokenId:     domain.TokenId(40),
	CollectionSize:  3,
	Active:          true,
}

type repairTestsuite struct {
	suite.Suite
	bidRepo       *mockBid.Repo
	listingRepo   *mockListing.Repo
	landTokenRepo *mockListing.LandTokenRepo
	synchronizer  *mockBid.SyncUseCase
	erc721        *mockContract.Erc721Contract
	marketplace   *mockContract.MarketplaceContract
	subject       *impl
}

func TestRepair(t *testing.T) {
	suite.Run(t, new(repairTestsuite))
}

func (t *repairTestsuite) SetupTest() {
	t.bidRepo = &mockBid.Repo{}
	t.listingRepo = &mockListing.Repo{}
	t.landTokenRepo = &mockListing.LandTokenRepo{}
	t.synchronizer = &mockBid.SyncUseCase{}
	t.erc721 = &mockContract.Erc721Contract{}
	t.marketplace = &mockContract.MarketplaceContract{}
	t.subject = &impl{
		chainId:       testChainId,
		bidRepo:       t.bidRepo,
		listingRepo:   t.listingRepo,
		landTokenRepo: t.landTokenRepo,
		synchronizer:  t.synchronizer,
		erc721:        t.erc721,
		marketplace:   t.marketplace,
		metrics:       metrics.New("repair"),
	}
}

func (t *repairTestsuite) landToken(tokenId domain.TokenId, owner domain.Address) *listing.LandToken {
	return &listing.LandToken{
		ChainId:      testChainId,
		CollectionId: testCollectionId,
		TokenId:      tokenId,
		OwnerAddress: owner.ToLower(),
		UpdatedAt:    time.Unix(1700000000, 0).UTC(),
	}
}

func (t *repairTestsuite) TestResyncCountsOutcomes() {
	bidder := domain.Address("0x00000000000000000000000000000000000000cc")
	chainBid := &bid.ChainBid{
		Bidder:  bidder,
		Amount:  decimal.RequireFromString("2"),
		BidTime: time.Unix(1700000000, 0).UTC(),
	}

	t.landTokenRepo.
		On("FindAll", mockCtx, mock.Anything).
		Return([]*listing.LandToken{
			t.landToken(40, "0xaa"),
			t.landToken(41, "0xaa"),
			t.landToken(42, "0xaa"),
		}, nil)

	// token 40: chain bid needs syncing
	t.synchronizer.
		On("GetChainHighestBid", mockCtx, domain.TokenId(40)).
		Return(chainBid, nil)
	t.bidRepo.
		On("FindOne", mockCtx, mock.MatchedBy(func(id bid.Id) bool { return id.TokenId == 40 })).
		Return(nil, domain.ErrNotFound)
	t.synchronizer.
		On("ReconcileTokenBid", mockCtx, domain.TokenId(40), chainBid).
		Return(nil)

	// token 41: no active chain bid
	t.synchronizer.
		On("GetChainHighestBid", mockCtx, domain.TokenId(41)).
		Return(nil, nil)

	// token 42: rpc failure
	t.synchronizer.
		On("GetChainHighestBid", mockCtx, domain.TokenId(42)).
		Return(nil, errors.New("rpc timeout"))

	report, err := t.subject.ResyncAllBids(mockCtx)
	t.NoError(err)
	t.Equal(3, report.TokensScanned)
	t.Equal(1, report.BidsSynced)
	t.Equal(1, report.AlreadySynced)
	t.Equal(1, report.ChainErrors)
	t.NotEmpty(report.JobId)
}

func (t *repairTestsuite) TestResyncSecondRunWritesNothing() {
	bidder := domain.Address("0x00000000000000000000000000000000000000cc")
	chainBid := &bid.ChainBid{
		Bidder:  bidder,
		Amount:  decimal.RequireFromString("2"),
		BidTime: time.Unix(1700000000, 0).UTC(),
	}

	t.landTokenRepo.
		On("FindAll", mockCtx, mock.Anything).
		Return([]*listing.LandToken{t.landToken(40, "0xaa")}, nil)
	t.synchronizer.
		On("GetChainHighestBid", mockCtx, domain.TokenId(40)).
		Return(chainBid, nil)
	// the row from the first run is already in the store
	t.bidRepo.
		On("FindOne", mockCtx, bid.Id{
			ChainId:      testChainId,
			CollectionId: testCollectionId,
			TokenId:      40,
			Bidder:       bidder,
			BidTime:      chainBid.BidTime,
		}).
		Return(&bid.Bid{Status: bid.StatusActive}, nil)

	report, err := t.subject.ResyncAllBids(mockCtx)
	t.NoError(err)
	t.Equal(0, report.BidsSynced)
	t.Equal(1, report.AlreadySynced)
	t.synchronizer.AssertNotCalled(t.T(), "ReconcileTokenBid", mock.Anything, mock.Anything, mock.Anything)
}

func (t *repairTestsuite) TestSyncOwnershipPatchesMismatch() {
	chainOwner := domain.Address("0x0000000000000000000000000000000000000002")

	t.listingRepo.
		On("FindOne", mockCtx, listing.Id{ChainId: testChainId, CollectionId: testCollectionId}).
		Return(testListing, nil)
	t.landTokenRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return([]*listing.LandToken{
			t.landToken(40, "0x0000000000000000000000000000000000000001"), // stale
			t.landToken(41, chainOwner),                                  // in sync
		}, nil)
	t.erc721.
		On("OwnerOf", mockCtx, testChainId, testListing.ContractAddress, mock.Anything).
		Return(chainOwner, nil)
	t.landTokenRepo.
		On("Patch", mockCtx,
			listing.LandTokenId{ChainId: testChainId, CollectionId: testCollectionId, TokenId: 40},
			mock.MatchedBy(func(p listing.LandTokenPatchable) bool {
				return p.OwnerAddress != nil && *p.OwnerAddress == chainOwner
			})).
		Return(nil)
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*bid.Bid{}, nil)

	report, err := t.subject.SyncOwnership(mockCtx, testCollectionId)
	t.NoError(err)
	t.Equal(2, report.TokensChecked)
	t.Equal(1, report.Mismatches)
	t.Equal(1, report.Updated)
	t.Equal(0, report.SelfBids)
	t.landTokenRepo.AssertNumberOfCalls(t.T(), "Patch", 1)
}

func (t *repairTestsuite) TestSyncOwnershipFlagsSelfBid() {
	chainOwner := domain.Address("0x0000000000000000000000000000000000000002")

	t.listingRepo.
		On("FindOne", mockCtx, mock.Anything).
		Return(testListing, nil)
	t.landTokenRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return([]*listing.LandToken{t.landToken(40, chainOwner)}, nil)
	t.erc721.
		On("OwnerOf", mockCtx, testChainId, testListing.ContractAddress, domain.TokenId(40)).
		Return(chainOwner, nil)
	t.bidRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*bid.Bid{{
			ChainId:      testChainId,
			CollectionId: testCollectionId,
			TokenId:      40,
			Bidder:       chainOwner,
			Amount:       "1",
			Status:       bid.StatusActive,
		}}, nil)

	report, err := t.subject.SyncOwnership(mockCtx, testCollectionId)
	t.NoError(err)
	t.Equal(1, report.SelfBids)
	t.Equal(0, report.Mismatches)
	t.landTokenRepo.AssertNotCalled(t.T(), "Patch", mock.Anything, mock.Anything, mock.Anything)
}

func (t *repairTestsuite) TestBackfillInsertsMissingToken() {
	owner := domain.Address("0x0000000000000000000000000000000000000002")

	t.listingRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return([]*listing.Listing{testListing}, nil)
	// tokens 40 and 41 exist, 42 is missing from the store
	t.landTokenRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return([]*listing.LandToken{
			t.landToken(40, owner),
			t.landToken(41, owner),
		}, nil)
	t.erc721.
		On("OwnerOf", mockCtx, testChainId, testListing.ContractAddress, domain.TokenId(42)).
		Return(owner, nil)
	t.landTokenRepo.
		On("Upsert", mockCtx, mock.MatchedBy(func(tok *listing.LandToken) bool {
			return tok.TokenId == 42 && tok.OwnerAddress == owner && !tok.IsListed
		})).
		Return(nil)

	report, err := t.subject.BackfillMissingTokens(mockCtx)
	t.NoError(err)
	t.Equal(1, report.ListingsScanned)
	t.Equal(3, report.TokensExpected)
	t.Equal(1, report.TokensMissing)
	t.Equal(1, report.Inserted)
}

func (t *repairTestsuite) TestBackfillSecondRunWritesNothing() {
	owner := domain.Address("0x0000000000000000000000000000000000000002")

	t.listingRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return([]*listing.Listing{testListing}, nil)
	t.landTokenRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return([]*listing.LandToken{
			t.landToken(40, owner),
			t.landToken(41, owner),
			t.landToken(42, owner),
		}, nil)

	report, err := t.subject.BackfillMissingTokens(mockCtx)
	t.NoError(err)
	t.Equal(0, report.TokensMissing)
	t.Equal(0, report.Inserted)
	t.landTokenRepo.AssertNotCalled(t.T(), "Upsert", mock.Anything, mock.Anything)
}

func (t *repairTestsuite) TestBackfillSkipsTokenAbsentOnChain() {
	t.listingRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return([]*listing.Listing{testListing}, nil)
	t.landTokenRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything).
		Return([]*listing.LandToken{
			t.landToken(40, "0x01"),
			t.landToken(41, "0x01"),
		}, nil)
	// not minted: ownerOf reverts and the marketplace has no bid either
	t.erc721.
		On("OwnerOf", mockCtx, testChainId, testListing.ContractAddress, domain.TokenId(42)).
		Return(domain.Address(""), errors.New("execution reverted"))
	t.marketplace.
		On("GetHighestBid", mockCtx, testChainId, testListing.ContractAddress, domain.TokenId(42)).
		Return(nil, nil)

	report, err := t.subject.BackfillMissingTokens(mockCtx)
	t.NoError(err)
	t.Equal(1, report.TokensMissing)
	t.Equal(0, report.Inserted)
	t.Equal(0, report.ChainErrors)
	t.landTokenRepo.AssertNotCalled(t.T(), "Upsert", mock.Anything, mock.Anything)
}
