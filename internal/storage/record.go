package storage

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"gteKit/internal/model"
)

// Record kinds.
const (
	KindApprove      = "approve"
	KindSwapExactIn  = "swap_exact_in"
	KindSwapExactOut = "swap_exact_out"
)

func ApproveRecord(tx model.PreparedTransaction, at time.Time) model.TxRecord {
	return baseRecord(KindApprove, tx, at)
}

func SwapExactInRecord(res model.SwapExactInResult, at time.Time) model.TxRecord {
	rec := baseRecord(KindSwapExactIn, res.Tx, at)
	rec.Deadline = res.Deadline
	rec.Path = hexPath(res.Quote.Path)
	rec.AmountIn = bigString(res.Quote.AmountInAtomic)
	rec.AmountOut = bigString(res.Quote.MinAmountOutAtomic)
	rec.SlippageBps = res.Quote.SlippageBps
	return rec
}

func SwapExactOutRecord(res model.SwapExactOutResult, at time.Time) model.TxRecord {
	rec := baseRecord(KindSwapExactOut, res.Tx, at)
	rec.Deadline = res.Deadline
	rec.Path = hexPath(res.Quote.Path)
	rec.AmountIn = bigString(res.Quote.MaxAmountInAtomic)
	rec.AmountOut = bigString(res.Quote.AmountOutAtomic)
	rec.SlippageBps = res.Quote.SlippageBps
	return rec
}

func baseRecord(kind string, tx model.PreparedTransaction, at time.Time) model.TxRecord {
	return model.TxRecord{
		Kind:      kind,
		ChainID:   tx.ChainID,
		To:        tx.To.Hex(),
		Data:      tx.Data.String(),
		Value:     bigString(tx.Value),
		CreatedAt: at.UTC().Format(time.RFC3339),
	}
}

func hexPath(path []common.Address) []string {
	out := make([]string, len(path))
	for i, addr := range path {
		out[i] = addr.Hex()
	}
	return out
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
