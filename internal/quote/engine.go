package quote

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"gteKit/internal/dex"
	"gteKit/internal/model"
	"gteKit/internal/units"
)

// DefaultSlippageBps is 0.50%.
const DefaultSlippageBps uint32 = 50

const bpsDenominator = 10_000

var (
	ErrInvalidPath     = errors.New("quote path must include at least tokenIn and tokenOut")
	ErrInvalidSlippage = errors.New("slippage exceeds 10000 bps")
)

// RouterSource yields the router address to price against.
type RouterSource interface {
	Resolve(ctx context.Context) (common.Address, error)
}

// Request describes an exact-input trade.
type Request struct {
	TokenIn     model.Token
	TokenOut    model.Token
	AmountIn    units.Amount
	Path        []common.Address
	SlippageBps *uint32
}

// ExactOutRequest describes an exact-output trade.
type ExactOutRequest struct {
	TokenIn     model.Token
	TokenOut    model.Token
	AmountOut   units.Amount
	Path        []common.Address
	SlippageBps *uint32
}

// Engine prices trades by reading the router's getAmountsOut / getAmountsIn views.
type Engine struct {
	reader dex.ContractReader
	router RouterSource
	logger *zap.Logger
}

func NewEngine(reader dex.ContractReader, router RouterSource, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{reader: reader, router: router, logger: logger}
}

// ExactIn quotes a fixed input amount.
func (e *Engine) ExactIn(ctx context.Context, req Request) (model.QuoteExactIn, error) {
	slippage := slippageOrDefault(req.SlippageBps)
	if slippage > bpsDenominator {
		return model.QuoteExactIn{}, fmt.Errorf("%w: %d", ErrInvalidSlippage, slippage)
	}
	path, err := resolvePath(req.Path, req.TokenIn, req.TokenOut)
	if err != nil {
		return model.QuoteExactIn{}, err
	}
	amountIn, err := units.ToAtomic(req.AmountIn, req.TokenIn.Decimals)
	if err != nil {
		return model.QuoteExactIn{}, err
	}

	amounts, err := e.readAmounts(ctx, dex.MethodGetAmountsOut, amountIn, path)
	if err != nil {
		return model.QuoteExactIn{}, err
	}
	expectedOut := amounts[len(amounts)-1]
	minOut := MinAmountOut(expectedOut, slippage)

	amountInDecimal := units.ToDecimalString(req.AmountIn)
	expectedOutDecimal := units.FormatUnits(expectedOut, req.TokenOut.Decimals)

	e.logger.Debug("exact-in quote",
		zap.String("amount_in", amountIn.String()),
		zap.String("expected_out", expectedOut.String()),
		zap.Uint32("slippage_bps", slippage),
		zap.Int("hops", len(path)-1),
	)

	return model.QuoteExactIn{
		AmountIn:                amountInDecimal,
		AmountInAtomic:          amountIn,
		ExpectedAmountOut:       expectedOutDecimal,
		ExpectedAmountOutAtomic: expectedOut,
		MinAmountOut:            units.FormatUnits(minOut, req.TokenOut.Decimals),
		MinAmountOutAtomic:      minOut,
		Price:                   DisplayPrice(expectedOutDecimal, amountInDecimal),
		SlippageBps:             slippage,
		Path:                    path,
	}, nil
}

// ExactOut quotes a fixed output amount.
func (e *Engine) ExactOut(ctx context.Context, req ExactOutRequest) (model.QuoteExactOut, error) {
	slippage := slippageOrDefault(req.SlippageBps)
	path, err := resolvePath(req.Path, req.TokenIn, req.TokenOut)
	if err != nil {
		return model.QuoteExactOut{}, err
	}
	amountOut, err := units.ToAtomic(req.AmountOut, req.TokenOut.Decimals)
	if err != nil {
		return model.QuoteExactOut{}, err
	}

	amounts, err := e.readAmounts(ctx, dex.MethodGetAmountsIn, amountOut, path)
	if err != nil {
		return model.QuoteExactOut{}, err
	}
	expectedIn := amounts[0]
	maxIn := MaxAmountIn(expectedIn, slippage)

	amountOutDecimal := units.ToDecimalString(req.AmountOut)
	expectedInDecimal := units.FormatUnits(expectedIn, req.TokenIn.Decimals)

	e.logger.Debug("exact-out quote",
		zap.String("amount_out", amountOut.String()),
		zap.String("expected_in", expectedIn.String()),
		zap.Uint32("slippage_bps", slippage),
		zap.Int("hops", len(path)-1),
	)

	return model.QuoteExactOut{
		AmountOut:              amountOutDecimal,
		AmountOutAtomic:        amountOut,
		ExpectedAmountIn:       expectedInDecimal,
		ExpectedAmountInAtomic: expectedIn,
		MaxAmountIn:            units.FormatUnits(maxIn, req.TokenIn.Decimals),
		MaxAmountInAtomic:      maxIn,
		Price:                  DisplayPrice(amountOutDecimal, expectedInDecimal),
		SlippageBps:            slippage,
		Path:                   path,
	}, nil
}

func (e *Engine) readAmounts(ctx context.Context, method string, amount *big.Int, path []common.Address) ([]*big.Int, error) {
	if e.reader == nil {
		return nil, fmt.Errorf("contract reader is nil")
	}
	router, err := e.router.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve router: %w", err)
	}
	routerABI, err := dex.UniswapV2RouterABI()
	if err != nil {
		return nil, fmt.Errorf("load router abi: %w", err)
	}
	values, err := e.reader.ReadContract(ctx, router, routerABI, method, amount, path)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s returned no values", method)
	}
	amounts, err := dex.AsBigIntSlice(values[0])
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", method, err)
	}
	if len(amounts) == 0 {
		return nil, fmt.Errorf("%s returned an empty amounts list", method)
	}
	return amounts, nil
}

// MinAmountOut returns expected * (10000 - bps) / 10000, truncated toward zero.
func MinAmountOut(expected *big.Int, bps uint32) *big.Int {
	factor := big.NewInt(bpsDenominator - int64(bps))
	out := new(big.Int).Mul(expected, factor)
	return out.Quo(out, big.NewInt(bpsDenominator))
}

// MaxAmountIn returns expected * (10000 + bps) / 10000, truncated toward zero.
func MaxAmountIn(expected *big.Int, bps uint32) *big.Int {
	factor := big.NewInt(bpsDenominator + int64(bps))
	out := new(big.Int).Mul(expected, factor)
	return out.Quo(out, big.NewInt(bpsDenominator))
}

// DisplayPrice renders numerator/denominator as a float string, or "0" when
// the denominator is not positive or the ratio is not finite.
func DisplayPrice(numerator, denominator string) string {
	den, err := strconv.ParseFloat(denominator, 64)
	if err != nil || !(den > 0) {
		return "0"
	}
	num, err := strconv.ParseFloat(numerator, 64)
	if err != nil {
		return "0"
	}
	price := num / den
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return "0"
	}
	return strconv.FormatFloat(price, 'f', -1, 64)
}

func slippageOrDefault(bps *uint32) uint32 {
	if bps == nil {
		return DefaultSlippageBps
	}
	return *bps
}

func resolvePath(path []common.Address, tokenIn, tokenOut model.Token) ([]common.Address, error) {
	if path == nil {
		return []common.Address{tokenIn.Address, tokenOut.Address}, nil
	}
	if len(path) < 2 {
		return nil, ErrInvalidPath
	}
	out := make([]common.Address, len(path))
	copy(out, path)
	return out, nil
}
