package sdk

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"gteKit/internal/calldata"
	"gteKit/internal/model"
	"gteKit/internal/quote"
	"gteKit/internal/units"
)

// BuildApproveParams describes an ERC20 approval.
type BuildApproveParams struct {
	Token common.Address
	// Spender defaults to the router.
	Spender *common.Address
	// Amount defaults to MaxUint256. Without Decimals it must already be atomic.
	Amount   *units.Amount
	Decimals *uint8
}

// SwapExactInParams describes an exact-input swap.
type SwapExactInParams struct {
	quote.Request
	Recipient common.Address
	// DeadlineSeconds is relative to now; zero or negative selects DefaultDeadlineSeconds.
	DeadlineSeconds int64
	// Quote skips pricing when set.
	Quote        *model.QuoteExactIn
	UseNativeIn  bool
	UseNativeOut bool
}

// SwapExactOutParams describes an exact-output swap.
type SwapExactOutParams struct {
	quote.ExactOutRequest
	Recipient       common.Address
	DeadlineSeconds int64
	Quote           *model.QuoteExactOut
	UseNativeIn     bool
	UseNativeOut    bool
}

// GetQuote prices an exact-input trade against the router.
func (c *Client) GetQuote(ctx context.Context, req quote.Request) (model.QuoteExactIn, error) {
	return c.engine.ExactIn(ctx, req)
}

// GetQuoteExactOut prices an exact-output trade against the router.
func (c *Client) GetQuoteExactOut(ctx context.Context, req quote.ExactOutRequest) (model.QuoteExactOut, error) {
	return c.engine.ExactOut(ctx, req)
}

func (c *Client) BuildApprove(ctx context.Context, params BuildApproveParams) (model.PreparedTransaction, error) {
	var spender common.Address
	if params.Spender != nil {
		spender = *params.Spender
	} else {
		router, err := c.resolver.Resolve(ctx)
		if err != nil {
			return model.PreparedTransaction{}, fmt.Errorf("resolve router: %w", err)
		}
		spender = router
	}

	amount, err := approvalAmount(params)
	if err != nil {
		return model.PreparedTransaction{}, err
	}
	data, err := c.encoder.Approve(spender, amount)
	if err != nil {
		return model.PreparedTransaction{}, err
	}

	c.logger.Debug("built approve",
		zap.String("token", params.Token.Hex()),
		zap.String("spender", spender.Hex()),
		zap.String("amount", amount.String()),
	)
	return model.PreparedTransaction{
		To:      params.Token,
		Data:    data,
		Value:   new(big.Int),
		ChainID: c.chain.ID,
	}, nil
}

func (c *Client) BuildSwapExactIn(ctx context.Context, params SwapExactInParams) (model.SwapExactInResult, error) {
	var q model.QuoteExactIn
	if params.Quote != nil {
		q = *params.Quote
	} else {
		var err error
		if q, err = c.engine.ExactIn(ctx, params.Request); err != nil {
			return model.SwapExactInResult{}, err
		}
	}
	router, err := c.resolver.Resolve(ctx)
	if err != nil {
		return model.SwapExactInResult{}, fmt.Errorf("resolve router: %w", err)
	}
	deadline := c.deadline(params.DeadlineSeconds)

	call, err := c.encoder.SwapExactIn(calldata.SwapArgs{
		AmountIn:     q.AmountInAtomic,
		AmountOut:    q.MinAmountOutAtomic,
		Path:         q.Path,
		Recipient:    params.Recipient,
		Deadline:     deadline,
		UseNativeIn:  params.UseNativeIn,
		UseNativeOut: params.UseNativeOut,
	})
	if err != nil {
		return model.SwapExactInResult{}, err
	}

	c.logger.Debug("built swap", zap.String("method", call.Method), zap.Int64("deadline", deadline))
	return model.SwapExactInResult{
		Tx:       model.PreparedTransaction{To: router, Data: call.Data, Value: call.Value, ChainID: c.chain.ID},
		Quote:    q,
		Deadline: deadline,
	}, nil
}

func (c *Client) BuildSwapExactOut(ctx context.Context, params SwapExactOutParams) (model.SwapExactOutResult, error) {
	var q model.QuoteExactOut
	if params.Quote != nil {
		q = *params.Quote
	} else {
		var err error
		if q, err = c.engine.ExactOut(ctx, params.ExactOutRequest); err != nil {
			return model.SwapExactOutResult{}, err
		}
	}
	router, err := c.resolver.Resolve(ctx)
	if err != nil {
		return model.SwapExactOutResult{}, fmt.Errorf("resolve router: %w", err)
	}
	deadline := c.deadline(params.DeadlineSeconds)

	call, err := c.encoder.SwapExactOut(calldata.SwapArgs{
		AmountIn:     q.MaxAmountInAtomic,
		AmountOut:    q.AmountOutAtomic,
		Path:         q.Path,
		Recipient:    params.Recipient,
		Deadline:     deadline,
		UseNativeIn:  params.UseNativeIn,
		UseNativeOut: params.UseNativeOut,
	})
	if err != nil {
		return model.SwapExactOutResult{}, err
	}

	c.logger.Debug("built swap", zap.String("method", call.Method), zap.Int64("deadline", deadline))
	return model.SwapExactOutResult{
		Tx:       model.PreparedTransaction{To: router, Data: call.Data, Value: call.Value, ChainID: c.chain.ID},
		Quote:    q,
		Deadline: deadline,
	}, nil
}

func (c *Client) deadline(seconds int64) int64 {
	if seconds <= 0 {
		seconds = DefaultDeadlineSeconds
	}
	return c.now().Unix() + seconds
}

func approvalAmount(params BuildApproveParams) (*big.Int, error) {
	if params.Amount == nil {
		return new(big.Int).Set(units.MaxUint256), nil
	}
	if params.Decimals != nil {
		return units.ToAtomic(*params.Amount, *params.Decimals)
	}
	if params.Amount.IsAtomic() {
		return units.ToAtomic(*params.Amount, 0)
	}
	return units.ParseInteger(units.ToDecimalString(*params.Amount))
}
