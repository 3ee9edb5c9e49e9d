package repair

import (
	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
)

// BidResyncReport summarizes one full-dataset bid resync run.
type BidResyncReport struct {
	JobId               string `json:"jobId"`
	TokensScanned       int    `json:"tokensScanned"`
	BidsSynced          int    `json:"bidsSynced"`
	AlreadySynced       int    `json:"alreadySynced"`
	AttributionFailures int    `json:"attributionFailures"`
	ChainErrors         int    `json:"chainErrors"`
}

// OwnershipReport summarizes one ownership resync run over a collection.
type OwnershipReport struct {
	JobId         string `json:"jobId"`
	TokensChecked int    `json:"tokensChecked"`
	Mismatches    int    `json:"mismatches"`
	Updated       int    `json:"updated"`
	SelfBids      int    `json:"selfBids"`
	ChainErrors   int    `json:"chainErrors"`
}

// BackfillReport summarizes one missing-token backfill run.
type BackfillReport struct {
	JobId           string `json:"jobId"`
	ListingsScanned int    `json:"listingsScanned"`
	TokensExpected  int    `json:"tokensExpected"`
	TokensMissing   int    `json:"tokensMissing"`
	Inserted        int    `json:"inserted"`
	ChainErrors     int    `json:"chainErrors"`
}

// UseCase holds the operationally-triggered maintenance routines. All three
// are idempotent: a second run with unchanged chain state performs zero
// additional writes.
type UseCase interface {
	ResyncAllBids(ctx ctx.Ctx) (*BidResyncReport, error)
	SyncOwnership(ctx ctx.Ctx, collectionId domain.CollectionId) (*OwnershipReport, error)
	BackfillMissingTokens(ctx ctx.Ctx) (*BackfillReport, error)
}
