package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidAddress(t *testing.T) {
	req := require.New(t)

	req.False(IsValidAddress("0x000"))
	req.False(IsValidAddress("not an address"))
	req.True(IsValidAddress("0x939ae6A4C8dfDBB1f7085189574F0A938013952A"))
	req.True(IsValidAddress("0x939ae6a4c8dfdbb1f7085189574f0a938013952b"))
}
