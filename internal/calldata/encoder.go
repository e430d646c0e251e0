package calldata

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"gteKit/internal/dex"
)

var (
	ErrConflictingNativeFlags = errors.New("cannot use native token for both input and output")
	ErrInvalidNativePath      = errors.New("native swap path must use the wrapped native token")
)

// SwapArgs carries the bounds of a priced swap. For exact-in swaps AmountIn is
// exact and AmountOut is the minimum; for exact-out swaps AmountOut is exact
// and AmountIn is the maximum.
type SwapArgs struct {
	AmountIn     *big.Int
	AmountOut    *big.Int
	Path         []common.Address
	Recipient    common.Address
	Deadline     int64
	UseNativeIn  bool
	UseNativeOut bool
}

// Call is an encoded contract call plus the native value to attach.
type Call struct {
	Method string
	Data   []byte
	Value  *big.Int
}

// Encoder builds Uniswap V2 router and ERC20 calldata.
type Encoder struct {
	WrappedNative common.Address
}

func NewEncoder(wrappedNative common.Address) *Encoder {
	return &Encoder{WrappedNative: wrappedNative}
}

// SwapExactIn encodes one of swapExactTokensForTokens, swapExactETHForTokens or swapExactTokensForETH.
func (e *Encoder) SwapExactIn(args SwapArgs) (Call, error) {
	if err := e.validate(args); err != nil {
		return Call{}, err
	}
	deadline := big.NewInt(args.Deadline)

	switch {
	case args.UseNativeIn:
		return e.pack(dex.MethodSwapExactETHForTokens, args.AmountIn,
			args.AmountOut, args.Path, args.Recipient, deadline)
	case args.UseNativeOut:
		return e.pack(dex.MethodSwapExactTokensForETH, nil,
			args.AmountIn, args.AmountOut, args.Path, args.Recipient, deadline)
	default:
		return e.pack(dex.MethodSwapExactTokensForTokens, nil,
			args.AmountIn, args.AmountOut, args.Path, args.Recipient, deadline)
	}
}

// SwapExactOut encodes one of swapTokensForExactTokens, swapETHForExactTokens or swapTokensForExactETH.
// Native-in swaps attach the maximum input; the router refunds the excess.
func (e *Encoder) SwapExactOut(args SwapArgs) (Call, error) {
	if err := e.validate(args); err != nil {
		return Call{}, err
	}
	deadline := big.NewInt(args.Deadline)

	switch {
	case args.UseNativeIn:
		return e.pack(dex.MethodSwapETHForExactTokens, args.AmountIn,
			args.AmountOut, args.Path, args.Recipient, deadline)
	case args.UseNativeOut:
		return e.pack(dex.MethodSwapTokensForExactETH, nil,
			args.AmountOut, args.AmountIn, args.Path, args.Recipient, deadline)
	default:
		return e.pack(dex.MethodSwapTokensForExactTokens, nil,
			args.AmountOut, args.AmountIn, args.Path, args.Recipient, deadline)
	}
}

// Approve encodes ERC20 approve(spender, amount).
func (e *Encoder) Approve(spender common.Address, amount *big.Int) ([]byte, error) {
	if amount == nil {
		return nil, fmt.Errorf("approve amount is nil")
	}
	erc20, err := dex.ERC20ABI()
	if err != nil {
		return nil, fmt.Errorf("load erc20 abi: %w", err)
	}
	data, err := erc20.Pack(dex.MethodApprove, spender, amount)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", dex.MethodApprove, err)
	}
	return data, nil
}

func (e *Encoder) validate(args SwapArgs) error {
	if args.UseNativeIn && args.UseNativeOut {
		return ErrConflictingNativeFlags
	}
	n := len(args.Path)
	if args.UseNativeIn && (n == 0 || args.Path[0] != e.WrappedNative) {
		return fmt.Errorf("%w: input must start with %s", ErrInvalidNativePath, e.WrappedNative.Hex())
	}
	if args.UseNativeOut && (n == 0 || args.Path[n-1] != e.WrappedNative) {
		return fmt.Errorf("%w: output must end with %s", ErrInvalidNativePath, e.WrappedNative.Hex())
	}
	if n < 2 {
		return fmt.Errorf("swap path has %d tokens, need at least 2", n)
	}
	if args.AmountIn == nil || args.AmountOut == nil {
		return fmt.Errorf("swap amounts must be set")
	}
	return nil
}

func (e *Encoder) pack(method string, value *big.Int, args ...interface{}) (Call, error) {
	routerABI, err := dex.UniswapV2RouterABI()
	if err != nil {
		return Call{}, fmt.Errorf("load router abi: %w", err)
	}
	data, err := routerABI.Pack(method, args...)
	if err != nil {
		return Call{}, fmt.Errorf("pack %s: %w", method, err)
	}
	if value == nil {
		value = new(big.Int)
	} else {
		value = new(big.Int).Set(value)
	}
	return Call{Method: method, Data: data, Value: value}, nil
}
