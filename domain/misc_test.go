package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressEquals(t *testing.T) {
	req := require.New(t)

	a := Address("0xABCDef1234567890abcdef1234567890ABCDEF12")
	b := Address("0xabcdef1234567890abcdef1234567890abcdef12")

	req.True(a.Equals(b))
	req.True(b.Equals(a))
	req.Equal(b, a.ToLower())
	req.False(a.Equals(EmptyAddress))
}

func TestAddressIsEmpty(t *testing.T) {
	req := require.New(t)

	req.True(Address("").IsEmpty())
	req.True(EmptyAddress.IsEmpty())
	req.True(Address("0x0000000000000000000000000000000000000000").IsEmpty())
	req.False(Address("0xabcdef1234567890abcdef1234567890abcdef12").IsEmpty())
}

func TestTokenIdToBig(t *testing.T) {
	req := require.New(t)

	req.Equal(int64(42), TokenId(42).ToBig().Int64())
	req.True(TokenId(0).IsZero())
	req.False(TokenId(1).IsZero())
}
