package model

import "github.com/ethereum/go-ethereum/common"

// MarketType is the venue kind reported by the API.
type MarketType string

const (
	MarketAMM          MarketType = "amm"
	MarketBondingCurve MarketType = "bonding-curve"
	MarketCLOBSpot     MarketType = "clob-spot"
	MarketPerps        MarketType = "perps"
)

// MarketSummary is one entry of the market listing.
type MarketSummary struct {
	MarketType    MarketType     `json:"marketType"`
	Address       common.Address `json:"address"`
	BaseToken     Token          `json:"baseToken"`
	QuoteToken    Token          `json:"quoteToken"`
	Price         string         `json:"price"`
	PriceUSD      string         `json:"priceUsd"`
	Volume24HrUSD string         `json:"volume24HrUsd"`
	Volume1HrUSD  string         `json:"volume1HrUsd"`
	MarketCapUSD  string         `json:"marketCapUsd"`
	CreatedAt     int64          `json:"createdAt"`
	TVLUSD        *string        `json:"tvlUsd,omitempty"`
}

// MarketTrade is a single fill.
type MarketTrade struct {
	Price     string `json:"price"`
	Size      string `json:"size"`
	Side      string `json:"side"`
	Timestamp int64  `json:"timestamp"`
	TxHash    string `json:"txHash,omitempty"`
}

// OrderBookLevel is one aggregated price level.
type OrderBookLevel struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// OrderBookSnapshot is the current book for a market.
type OrderBookSnapshot struct {
	Bids []OrderBookLevel `json:"bids"`
	Asks []OrderBookLevel `json:"asks"`
}

// Candle is an OHLCV bar.
type Candle struct {
	Timestamp int64  `json:"timestamp"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
	NumTrades *int   `json:"numTrades,omitempty"`
}

// TokenBalance is one holding inside a portfolio.
type TokenBalance struct {
	Token            Token  `json:"token"`
	Balance          string `json:"balance"`
	BalanceUSD       string `json:"balanceUsd"`
	RealizedPnlUSD   string `json:"realizedPnlUsd"`
	UnrealizedPnlUSD string `json:"unrealizedPnlUsd"`
}

// UserPortfolio is the holdings summary for an address.
type UserPortfolio struct {
	Tokens          []TokenBalance `json:"tokens"`
	TotalUSDBalance string         `json:"totalUsdBalance"`
}
