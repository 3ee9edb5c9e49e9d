package domain

import (
	"math/big"
	"strings"
)

// WeiPerNative is the chain's fixed-point scale: amounts on chain are
// integers scaled by 10^18.
var WeiPerNative = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0 || a.ToLower() == EmptyAddress
}

// Equals compares two addresses case-insensitively. Every address equality
// check in this codebase must go through Equals or ToLower.
func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// TokenId is a chain-assigned token id. It is not globally unique across
// collections, so lookups qualify it with a CollectionId. Zero marks a legacy
// collection-level bid with no per-token identity.
type TokenId uint64

func (i TokenId) IsZero() bool {
	return i == 0
}

func (i TokenId) ToBig() *big.Int {
	return new(big.Int).SetUint64(uint64(i))
}

// CollectionId correlates a stored listing with its on-chain collection.
type CollectionId uint64

func (c CollectionId) ToBig() *big.Int {
	return new(big.Int).SetUint64(uint64(c))
}

type TxHash string

func (h TxHash) ToLower() TxHash {
	return TxHash(strings.ToLower(string(h)))
}

type BlockNumber uint64
