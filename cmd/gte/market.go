package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gteKit/internal/config"
	"gteKit/internal/model"
	"gteKit/internal/sdk"
)

func marketCommands() []*cobra.Command {
	marketsCmd := &cobra.Command{
		Use:   "markets",
		Short: "List markets",
		Args:  cobra.NoArgs,
		RunE:  withApp(runMarkets),
	}
	marketsCmd.Flags().Int("limit", 0, "page size")
	marketsCmd.Flags().Int("offset", 0, "page offset")
	marketsCmd.Flags().String("market-type", "", "amm, bonding-curve, clob-spot or perps")
	marketsCmd.Flags().String("sort-by", "", "marketCap, createdAt or volume")
	marketsCmd.Flags().String("token", "", "only markets trading this token")
	marketsCmd.Flags().Bool("newly-graduated", false, "only newly graduated markets")

	marketCmd := &cobra.Command{
		Use:   "market <address>",
		Short: "Show one market",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(a *app, _ *cobra.Command, args []string) error {
			addr, err := config.ParseAddress(args[0])
			if err != nil {
				return err
			}
			market, err := a.sdk.GetMarket(a.ctx, addr)
			if err != nil {
				return err
			}
			return a.print(market)
		}),
	}

	tokensCmd := &cobra.Command{
		Use:   "tokens",
		Short: "List tokens",
		Args:  cobra.NoArgs,
		RunE:  withApp(runTokens),
	}
	tokensCmd.Flags().Int("limit", 0, "page size")
	tokensCmd.Flags().Int("offset", 0, "page offset")
	tokensCmd.Flags().String("market-type", "", "amm, bonding-curve, clob-spot or perps")
	tokensCmd.Flags().String("creator", "", "only tokens launched by this address")
	tokensCmd.Flags().Bool("metadata", false, "include token metadata")

	tokenCmd := &cobra.Command{
		Use:   "token <address>",
		Short: "Show one token",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
			addr, err := config.ParseAddress(args[0])
			if err != nil {
				return err
			}
			if onChain, _ := cmd.Flags().GetBool("on-chain"); onChain {
				meta, err := a.sdk.TokenMetadata(a.ctx, addr)
				if err != nil {
					return err
				}
				return a.print(meta)
			}
			token, err := a.sdk.GetToken(a.ctx, addr)
			if err != nil {
				return err
			}
			return a.print(token)
		}),
	}
	tokenCmd.Flags().Bool("on-chain", false, "read ERC20 metadata from the token contract instead of the API")

	tradesCmd := &cobra.Command{
		Use:   "trades <market>",
		Short: "List recent trades of a market",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
			addr, err := config.ParseAddress(args[0])
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")
			trades, err := a.sdk.GetTrades(a.ctx, addr, sdk.GetTradesParams{Limit: limit, Offset: offset})
			if err != nil {
				return err
			}
			return a.print(trades)
		}),
	}
	tradesCmd.Flags().Int("limit", 0, "page size")
	tradesCmd.Flags().Int("offset", 0, "page offset")

	bookCmd := &cobra.Command{
		Use:   "book <market>",
		Short: "Show the order book of a market",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
			addr, err := config.ParseAddress(args[0])
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			book, err := a.sdk.GetOrderBook(a.ctx, addr, limit)
			if err != nil {
				return err
			}
			return a.print(book)
		}),
	}
	bookCmd.Flags().Int("limit", 0, "levels per side")

	candlesCmd := &cobra.Command{
		Use:   "candles <market>",
		Short: "Show OHLCV candles of a market",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runCandles),
	}
	candlesCmd.Flags().String("interval", "1h", "candle interval (e.g. 1m, 5m, 1h)")
	candlesCmd.Flags().String("start", "", "start time (unix seconds or RFC3339)")
	candlesCmd.Flags().String("end", "", "end time (unix seconds or RFC3339)")
	candlesCmd.Flags().Int("limit", 0, "maximum candles")

	portfolioCmd := &cobra.Command{
		Use:   "portfolio <user>",
		Short: "Show token balances of a user",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(a *app, _ *cobra.Command, args []string) error {
			addr, err := config.ParseAddress(args[0])
			if err != nil {
				return err
			}
			portfolio, err := a.sdk.GetUserPortfolio(a.ctx, addr)
			if err != nil {
				return err
			}
			return a.print(portfolio)
		}),
	}

	return []*cobra.Command{marketsCmd, marketCmd, tokensCmd, tokenCmd, tradesCmd, bookCmd, candlesCmd, portfolioCmd}
}

func runMarkets(a *app, cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	params := sdk.GetMarketsParams{}
	params.Limit, _ = flags.GetInt("limit")
	params.Offset, _ = flags.GetInt("offset")
	marketType, _ := flags.GetString("market-type")
	params.MarketType = model.MarketType(marketType)
	params.SortBy, _ = flags.GetString("sort-by")

	if token, _ := flags.GetString("token"); token != "" {
		addr, err := config.ParseAddress(token)
		if err != nil {
			return err
		}
		params.TokenAddress = &addr
	}
	if flags.Changed("newly-graduated") {
		v, _ := flags.GetBool("newly-graduated")
		params.NewlyGraduated = &v
	}

	markets, err := a.sdk.GetMarkets(a.ctx, params)
	if err != nil {
		return err
	}
	return a.print(markets)
}

func runTokens(a *app, cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	params := sdk.GetTokensParams{}
	params.Limit, _ = flags.GetInt("limit")
	params.Offset, _ = flags.GetInt("offset")
	marketType, _ := flags.GetString("market-type")
	params.MarketType = model.MarketType(marketType)

	if creator, _ := flags.GetString("creator"); creator != "" {
		addr, err := config.ParseAddress(creator)
		if err != nil {
			return err
		}
		params.Creator = &addr
	}
	if flags.Changed("metadata") {
		v, _ := flags.GetBool("metadata")
		params.Metadata = &v
	}

	tokens, err := a.sdk.GetTokens(a.ctx, params)
	if err != nil {
		return err
	}
	return a.print(tokens)
}

func runCandles(a *app, cmd *cobra.Command, args []string) error {
	addr, err := config.ParseAddress(args[0])
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	interval, _ := flags.GetString("interval")
	startRaw, _ := flags.GetString("start")
	endRaw, _ := flags.GetString("end")
	limit, _ := flags.GetInt("limit")

	start, err := config.ParseTimestamp(startRaw)
	if err != nil {
		return fmt.Errorf("parse start: %w", err)
	}
	end, err := config.ParseTimestamp(endRaw)
	if err != nil {
		return fmt.Errorf("parse end: %w", err)
	}
	if start == 0 {
		return fmt.Errorf("start is required")
	}

	candles, err := a.sdk.GetCandles(a.ctx, addr, sdk.GetCandlesParams{
		Interval:  interval,
		StartTime: start,
		EndTime:   end,
		Limit:     limit,
	})
	if err != nil {
		return err
	}
	return a.print(candles)
}
