package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// PreparedTransaction is an unsigned call ready to hand to a wallet.
type PreparedTransaction struct {
	To      common.Address `json:"to"`
	Data    hexutil.Bytes  `json:"data"`
	Value   *big.Int       `json:"value"`
	ChainID uint64         `json:"chainId"`
}

// SwapExactInResult bundles a swap transaction with the quote it was built from.
type SwapExactInResult struct {
	Tx       PreparedTransaction `json:"tx"`
	Quote    QuoteExactIn        `json:"quote"`
	Deadline int64               `json:"deadline"`
}

// SwapExactOutResult bundles a swap transaction with the quote it was built from.
type SwapExactOutResult struct {
	Tx       PreparedTransaction `json:"tx"`
	Quote    QuoteExactOut       `json:"quote"`
	Deadline int64               `json:"deadline"`
}
