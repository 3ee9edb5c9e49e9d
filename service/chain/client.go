package chain

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/backoff"
	baseEthereum "github.com/platz/goapi/base/ethereum"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"golang.org/x/xerrors"
)

var ErrUnsupportedChain = errors.New("unsupported chain")

const (
	defaultCallTimeout = 30 * time.Second
	defaultMaxInflight = 10
	retryRounds        = 3
	backoffStart       = 500 * time.Millisecond
	backoffLimit       = 5 * time.Second
)

type ClientCfg struct {
	// RpcUrls maps a chain id to its prioritized list of RPC endpoints.
	// Endpoints are tried in order; the whole list is retried with backoff.
	RpcUrls map[domain.ChainId][]string
	// CallTimeout bounds each individual eth_call attempt
	CallTimeout time.Duration
	// MaxInflight bounds concurrent calls per endpoint
	MaxInflight int
}

// Client performs read-only contract calls. A returned error always means
// "unknown", never "empty"; decoding an empty result is the caller's
// concern.
type Client interface {
	Call(ctx bCtx.Ctx, chainId domain.ChainId, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
}

type clientImpl struct {
	clients     map[domain.ChainId][]*baseEthereum.ThrottledClient
	callTimeout time.Duration
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var anyerr error

	callTimeout := cfg.CallTimeout
	if callTimeout == 0 {
		callTimeout = defaultCallTimeout
	}
	maxInflight := cfg.MaxInflight
	if maxInflight == 0 {
		maxInflight = defaultMaxInflight
	}

	clients := make(map[domain.ChainId][]*baseEthereum.ThrottledClient)
	for chainId, urls := range cfg.RpcUrls {
		for _, url := range urls {
			client, err := ethclient.DialContext(ctx, url)
			if err != nil {
				anyerr = err
				ctx.WithFields(log.Fields{
					"err":     err,
					"chainId": chainId,
					"url":     url,
				}).Warn("failed to dial rpc")
				// soft warning, still let the server start
				continue
			}
			clients[chainId] = append(clients[chainId], baseEthereum.NewThrottledClient(client, maxInflight))
		}
	}
	return &clientImpl{
		clients:     clients,
		callTimeout: callTimeout,
	}, anyerr
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId domain.ChainId, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	endpoints, ok := c.clients[chainId]
	if !ok || len(endpoints) == 0 {
		return nil, ErrUnsupportedChain
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}

	var lastErr error
	bo := backoff.NewExponential(backoffStart, backoffLimit)
	for round := 0; round < retryRounds; round++ {
		for i, client := range endpoints {
			res, err := c.callOnce(ctx, client, msg)
			if err != nil {
				lastErr = err
				ctx.WithFields(log.Fields{
					"err":      err,
					"chainId":  chainId,
					"endpoint": i,
					"method":   method,
				}).Warn("eth_call failed, trying next endpoint")
				continue
			}
			unpacked, err := _abi.Unpack(method, res)
			if err != nil {
				ctx.WithField("err", err).Error("abi.Unpack failed")
				return nil, err
			}
			return unpacked, nil
		}
		if round < retryRounds-1 {
			if err := bo.Backoff(ctx); err != nil {
				return nil, err
			}
		}
	}
	return nil, xerrors.Errorf("all endpoints failed for %s: %w", method, lastErr)
}

func (c *clientImpl) callOnce(ctx bCtx.Ctx, client *baseEthereum.ThrottledClient, msg ethereum.CallMsg) ([]byte, error) {
	callCtx, cancel := bCtx.WithTimeout(ctx, c.callTimeout)
	defer cancel()
	return client.CallContract(callCtx, msg, nil)
}
