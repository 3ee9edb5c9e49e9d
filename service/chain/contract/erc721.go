package contract

import (
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/platz/goapi/base/abi"
	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/service/chain"
)

// Erc721Contract reads token ownership from chain state.
type Erc721Contract interface {
	OwnerOf(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address, tokenId domain.TokenId) (domain.Address, error)
}

type Erc721 struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewErc721(chainService chain.Client) *Erc721 {
	return &Erc721{
		abi:          baseabi.ERC721TokenABI,
		chainService: chainService,
	}
}

func (e *Erc721) OwnerOf(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	method := "ownerOf"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(string(addr)), e.abi, method, tokenId.ToBig())
	if err != nil {
		return "", err
	}
	return domain.Address(unpacked[0].(common.Address).String()).ToLower(), nil
}
