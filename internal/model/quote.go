package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// QuoteExactIn is a priced exact-input trade.
// MinAmountOutAtomic = ExpectedAmountOutAtomic * (10000 - SlippageBps) / 10000, truncated.
type QuoteExactIn struct {
	AmountIn                string           `json:"amountIn"`
	AmountInAtomic          *big.Int         `json:"amountInAtomic"`
	ExpectedAmountOut       string           `json:"expectedAmountOut"`
	ExpectedAmountOutAtomic *big.Int         `json:"expectedAmountOutAtomic"`
	MinAmountOut            string           `json:"minAmountOut"`
	MinAmountOutAtomic      *big.Int         `json:"minAmountOutAtomic"`
	Price                   string           `json:"price"` // tokenOut per tokenIn
	SlippageBps             uint32           `json:"slippageBps"`
	Path                    []common.Address `json:"path"`
}

// QuoteExactOut is a priced exact-output trade.
// MaxAmountInAtomic = ExpectedAmountInAtomic * (10000 + SlippageBps) / 10000, truncated.
type QuoteExactOut struct {
	AmountOut              string           `json:"amountOut"`
	AmountOutAtomic        *big.Int         `json:"amountOutAtomic"`
	ExpectedAmountIn       string           `json:"expectedAmountIn"`
	ExpectedAmountInAtomic *big.Int         `json:"expectedAmountInAtomic"`
	MaxAmountIn            string           `json:"maxAmountIn"`
	MaxAmountInAtomic      *big.Int         `json:"maxAmountInAtomic"`
	Price                  string           `json:"price"`
	SlippageBps            uint32           `json:"slippageBps"`
	Path                   []common.Address `json:"path"`
}
