package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var MarketplaceABI abi.ABI

var marketplaceABI = `[{"type":"function","name":"getHighestBid","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"address","name":"nftAddress"},{"type":"uint256","name":"tokenId"}],"outputs":[{"type":"address","name":"bidder"},{"type":"uint256","name":"amount"},{"type":"address","name":"paymentToken"},{"type":"uint256","name":"timestamp"}]},{"type":"function","name":"getListing","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"address","name":"nftAddress"},{"type":"uint256","name":"tokenId"}],"outputs":[{"type":"address","name":"seller"},{"type":"uint256","name":"price"},{"type":"address","name":"paymentToken"},{"type":"bool","name":"active"}]},{"type":"function","name":"getCollectionListing","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"uint256","name":"collectionId"}],"outputs":[{"type":"address","name":"seller"},{"type":"uint256","name":"mainTokenId"},{"type":"uint256","name":"price"},{"type":"address","name":"paymentToken"},{"type":"bool","name":"active"}]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(marketplaceABI))
	if err != nil {
		panic("Failed to parse marketplace abi")
	}
	MarketplaceABI = _abi
}
