package sdk

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"gteKit/internal/calldata"
	"gteKit/internal/dex"
	"gteKit/internal/model"
	"gteKit/internal/quote"
	"gteKit/internal/rest"
	"gteKit/internal/router"
)

// DefaultDeadlineSeconds is how long a built swap stays valid.
const DefaultDeadlineSeconds int64 = 20 * 60

// Options configures a Client. Chain is required.
type Options struct {
	Chain model.ChainConfig
	// Reader performs contract view calls, typically a *chain.Client.
	Reader dex.ContractReader
	// Rest configures the market data client. BaseURL defaults to Chain.APIURL.
	Rest rest.Options
	// RouterAddress overrides the on-chain uniV2Router lookup.
	RouterAddress *common.Address
	Logger        *zap.Logger
	Now           func() time.Time
}

// Client reads market data and builds unsigned router transactions.
type Client struct {
	chain    model.ChainConfig
	reader   dex.ContractReader
	rest     *rest.Client
	resolver *router.Resolver
	engine   *quote.Engine
	encoder  *calldata.Encoder
	tokens   *dex.TokenCache
	logger   *zap.Logger
	now      func() time.Time
}

func New(opts Options) (*Client, error) {
	if opts.Chain.ID == 0 {
		return nil, fmt.Errorf("chain config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	restOpts := opts.Rest
	if restOpts.BaseURL == "" {
		restOpts.BaseURL = opts.Chain.APIURL
	}
	if restOpts.Logger == nil {
		restOpts.Logger = logger.Named("rest")
	}
	restClient, err := rest.New(restOpts)
	if err != nil {
		return nil, err
	}

	resolver := router.NewResolver(opts.Reader, opts.Chain.RouterAddress, opts.RouterAddress, logger.Named("router"))
	return &Client{
		chain:    opts.Chain,
		reader:   opts.Reader,
		rest:     restClient,
		resolver: resolver,
		engine:   quote.NewEngine(opts.Reader, resolver, logger.Named("quote")),
		encoder:  calldata.NewEncoder(opts.Chain.WETHAddress),
		tokens:   dex.NewTokenCache(),
		logger:   logger,
		now:      now,
	}, nil
}

// ChainConfig returns a copy of the configured chain.
func (c *Client) ChainConfig() model.ChainConfig {
	return c.chain
}

// RouterAddress returns the AMM router swaps are sent to.
func (c *Client) RouterAddress(ctx context.Context) (common.Address, error) {
	return c.resolver.Resolve(ctx)
}

// TokenMetadata reads decimals, symbol and name from the token contract. Results are cached.
func (c *Client) TokenMetadata(ctx context.Context, token common.Address) (model.Token, error) {
	return dex.LookupToken(ctx, c.reader, c.tokens, token, c.logger)
}
