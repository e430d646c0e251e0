package sdk

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"gteKit/internal/model"
)

// GetMarketsParams filters the market listing. Zero values are omitted.
type GetMarketsParams struct {
	Limit          int
	Offset         int
	MarketType     model.MarketType
	SortBy         string // marketCap, createdAt or volume
	TokenAddress   *common.Address
	NewlyGraduated *bool
}

// GetTokensParams filters the token listing. Zero values are omitted.
type GetTokensParams struct {
	Limit      int
	Offset     int
	MarketType model.MarketType
	Creator    *common.Address
	Metadata   *bool
}

type GetTradesParams struct {
	Limit  int
	Offset int
}

// GetCandlesParams selects a candle range. Interval and StartTime are required.
type GetCandlesParams struct {
	Interval  string
	StartTime int64
	EndTime   int64
	Limit     int
}

func (c *Client) GetMarkets(ctx context.Context, params GetMarketsParams) ([]model.MarketSummary, error) {
	q := url.Values{}
	setInt(q, "limit", params.Limit)
	setInt(q, "offset", params.Offset)
	setString(q, "marketType", string(params.MarketType))
	setString(q, "sortBy", params.SortBy)
	setAddress(q, "tokenAddress", params.TokenAddress)
	setBool(q, "newlyGraduated", params.NewlyGraduated)

	var out []model.MarketSummary
	if err := c.rest.Get(ctx, "/markets", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMarket returns nil when the API answers 204.
func (c *Client) GetMarket(ctx context.Context, market common.Address) (*model.MarketSummary, error) {
	var out *model.MarketSummary
	if err := c.rest.Get(ctx, "/markets/"+market.Hex(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTokens(ctx context.Context, params GetTokensParams) ([]model.Token, error) {
	q := url.Values{}
	setInt(q, "limit", params.Limit)
	setInt(q, "offset", params.Offset)
	setString(q, "marketType", string(params.MarketType))
	setAddress(q, "creator", params.Creator)
	setBool(q, "metadata", params.Metadata)

	var out []model.Token
	if err := c.rest.Get(ctx, "/tokens", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetToken(ctx context.Context, token common.Address) (*model.Token, error) {
	var out *model.Token
	if err := c.rest.Get(ctx, "/tokens/"+token.Hex(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTrades(ctx context.Context, market common.Address, params GetTradesParams) ([]model.MarketTrade, error) {
	q := url.Values{}
	setInt(q, "limit", params.Limit)
	setInt(q, "offset", params.Offset)

	var out []model.MarketTrade
	if err := c.rest.Get(ctx, "/markets/"+market.Hex()+"/trades", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrderBook returns the book snapshot; limit 0 leaves the depth to the server.
func (c *Client) GetOrderBook(ctx context.Context, market common.Address, limit int) (*model.OrderBookSnapshot, error) {
	q := url.Values{}
	setInt(q, "limit", limit)

	var out *model.OrderBookSnapshot
	if err := c.rest.Get(ctx, "/markets/"+market.Hex()+"/book", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCandles(ctx context.Context, market common.Address, params GetCandlesParams) ([]model.Candle, error) {
	if params.Interval == "" {
		return nil, fmt.Errorf("candle interval is required")
	}
	q := url.Values{}
	q.Set("interval", params.Interval)
	q.Set("startTime", strconv.FormatInt(params.StartTime, 10))
	if params.EndTime != 0 {
		q.Set("endTime", strconv.FormatInt(params.EndTime, 10))
	}
	setInt(q, "limit", params.Limit)

	var out []model.Candle
	if err := c.rest.Get(ctx, "/markets/"+market.Hex()+"/candles", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUserPortfolio(ctx context.Context, user common.Address) (*model.UserPortfolio, error) {
	var out *model.UserPortfolio
	if err := c.rest.Get(ctx, "/users/"+user.Hex()+"/portfolio", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func setInt(q url.Values, key string, v int) {
	if v != 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func setAddress(q url.Values, key string, v *common.Address) {
	if v != nil {
		q.Set(key, v.Hex())
	}
}

func setBool(q url.Values, key string, v *bool) {
	if v != nil {
		q.Set(key, strconv.FormatBool(*v))
	}
}
