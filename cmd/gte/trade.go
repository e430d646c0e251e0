package main

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"gteKit/internal/config"
	"gteKit/internal/model"
	"gteKit/internal/quote"
	"gteKit/internal/sdk"
	"gteKit/internal/storage"
	"gteKit/internal/units"
)

func tradeCommands() []*cobra.Command {
	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote an exact-input swap",
		Args:  cobra.NoArgs,
		RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
			req, err := exactInRequest(a, cmd.Flags())
			if err != nil {
				return err
			}
			stop := a.spin("Quoting...")
			q, err := a.sdk.GetQuote(a.ctx, req)
			stop()
			if err != nil {
				return err
			}
			return a.print(q)
		}),
	}
	addPairFlags(quoteCmd.Flags())

	quoteOutCmd := &cobra.Command{
		Use:   "quote-out",
		Short: "Quote an exact-output swap",
		Args:  cobra.NoArgs,
		RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
			req, err := exactOutRequest(a, cmd.Flags())
			if err != nil {
				return err
			}
			stop := a.spin("Quoting...")
			q, err := a.sdk.GetQuoteExactOut(a.ctx, req)
			stop()
			if err != nil {
				return err
			}
			return a.print(q)
		}),
	}
	addPairFlags(quoteOutCmd.Flags())

	approveCmd := &cobra.Command{
		Use:   "approve",
		Short: "Build an ERC20 approve transaction for the router",
		Args:  cobra.NoArgs,
		RunE:  withApp(runApprove),
	}
	approveCmd.Flags().String("token", "", "token to approve")
	approveCmd.Flags().String("spender", "", "spender (defaults to the router)")
	approveCmd.Flags().String("amount", "", "allowance (defaults to unlimited)")
	approveCmd.Flags().Uint8("decimals", 0, "decimals of --amount; without it the amount is atomic")

	swapInCmd := &cobra.Command{
		Use:   "swap-in",
		Short: "Build an exact-input swap transaction",
		Args:  cobra.NoArgs,
		RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			req, err := exactInRequest(a, flags)
			if err != nil {
				return err
			}
			opts, err := readSwapFlags(flags)
			if err != nil {
				return err
			}
			stop := a.spin("Building swap...")
			res, err := a.sdk.BuildSwapExactIn(a.ctx, sdk.SwapExactInParams{
				Request:         req,
				Recipient:       opts.recipient,
				DeadlineSeconds: opts.deadlineSeconds,
				UseNativeIn:     opts.nativeIn,
				UseNativeOut:    opts.nativeOut,
			})
			stop()
			if err != nil {
				return err
			}
			if err := a.record(storage.SwapExactInRecord(res, time.Now())); err != nil {
				return err
			}
			return a.print(res)
		}),
	}
	addPairFlags(swapInCmd.Flags())
	addSwapFlags(swapInCmd.Flags())

	swapOutCmd := &cobra.Command{
		Use:   "swap-out",
		Short: "Build an exact-output swap transaction",
		Args:  cobra.NoArgs,
		RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			req, err := exactOutRequest(a, flags)
			if err != nil {
				return err
			}
			opts, err := readSwapFlags(flags)
			if err != nil {
				return err
			}
			stop := a.spin("Building swap...")
			res, err := a.sdk.BuildSwapExactOut(a.ctx, sdk.SwapExactOutParams{
				ExactOutRequest: req,
				Recipient:       opts.recipient,
				DeadlineSeconds: opts.deadlineSeconds,
				UseNativeIn:     opts.nativeIn,
				UseNativeOut:    opts.nativeOut,
			})
			stop()
			if err != nil {
				return err
			}
			if err := a.record(storage.SwapExactOutRecord(res, time.Now())); err != nil {
				return err
			}
			return a.print(res)
		}),
	}
	addPairFlags(swapOutCmd.Flags())
	addSwapFlags(swapOutCmd.Flags())

	return []*cobra.Command{quoteCmd, quoteOutCmd, approveCmd, swapInCmd, swapOutCmd}
}

func addPairFlags(flags *pflag.FlagSet) {
	flags.String("token-in", "", "input token address")
	flags.String("token-out", "", "output token address")
	flags.String("amount", "", "amount in human units (input for exact-in, output for exact-out)")
	flags.StringSlice("path", nil, "explicit swap path (comma-separated addresses)")
	flags.Uint32("slippage-bps", quote.DefaultSlippageBps, "slippage tolerance in basis points")
}

func addSwapFlags(flags *pflag.FlagSet) {
	flags.String("recipient", "", "address receiving the output")
	flags.Int64("deadline-seconds", sdk.DefaultDeadlineSeconds, "seconds until the swap expires")
	flags.Bool("native-in", false, "pay with the native asset (path must start with the wrapped native token)")
	flags.Bool("native-out", false, "receive the native asset (path must end with the wrapped native token)")
}

type pair struct {
	tokenIn  model.Token
	tokenOut model.Token
	amount   units.Amount
	path     []common.Address
	slippage *uint32
}

func readPair(a *app, flags *pflag.FlagSet) (pair, error) {
	var p pair
	inRaw, _ := flags.GetString("token-in")
	outRaw, _ := flags.GetString("token-out")
	amountRaw, _ := flags.GetString("amount")
	pathRaw, _ := flags.GetStringSlice("path")
	if inRaw == "" || outRaw == "" {
		return p, fmt.Errorf("token-in and token-out are required")
	}
	if amountRaw == "" {
		return p, fmt.Errorf("amount is required")
	}

	tokenIn, err := config.ParseAddress(inRaw)
	if err != nil {
		return p, fmt.Errorf("token-in: %w", err)
	}
	tokenOut, err := config.ParseAddress(outRaw)
	if err != nil {
		return p, fmt.Errorf("token-out: %w", err)
	}
	if len(pathRaw) > 0 {
		if p.path, err = config.ParseAddresses(pathRaw); err != nil {
			return p, fmt.Errorf("path: %w", err)
		}
	}
	if flags.Changed("slippage-bps") {
		v, _ := flags.GetUint32("slippage-bps")
		p.slippage = &v
	}

	if p.tokenIn, err = a.sdk.TokenMetadata(a.ctx, tokenIn); err != nil {
		return p, fmt.Errorf("token-in metadata: %w", err)
	}
	if p.tokenOut, err = a.sdk.TokenMetadata(a.ctx, tokenOut); err != nil {
		return p, fmt.Errorf("token-out metadata: %w", err)
	}
	p.amount = units.Decimal(amountRaw)
	return p, nil
}

func exactInRequest(a *app, flags *pflag.FlagSet) (quote.Request, error) {
	p, err := readPair(a, flags)
	if err != nil {
		return quote.Request{}, err
	}
	return quote.Request{
		TokenIn:     p.tokenIn,
		TokenOut:    p.tokenOut,
		AmountIn:    p.amount,
		Path:        p.path,
		SlippageBps: p.slippage,
	}, nil
}

func exactOutRequest(a *app, flags *pflag.FlagSet) (quote.ExactOutRequest, error) {
	p, err := readPair(a, flags)
	if err != nil {
		return quote.ExactOutRequest{}, err
	}
	return quote.ExactOutRequest{
		TokenIn:     p.tokenIn,
		TokenOut:    p.tokenOut,
		AmountOut:   p.amount,
		Path:        p.path,
		SlippageBps: p.slippage,
	}, nil
}

type swapFlags struct {
	recipient       common.Address
	deadlineSeconds int64
	nativeIn        bool
	nativeOut       bool
}

func readSwapFlags(flags *pflag.FlagSet) (swapFlags, error) {
	var s swapFlags
	recipientRaw, _ := flags.GetString("recipient")
	if recipientRaw == "" {
		return s, fmt.Errorf("recipient is required")
	}
	recipient, err := config.ParseAddress(recipientRaw)
	if err != nil {
		return s, fmt.Errorf("recipient: %w", err)
	}
	s.recipient = recipient
	s.deadlineSeconds, _ = flags.GetInt64("deadline-seconds")
	s.nativeIn, _ = flags.GetBool("native-in")
	s.nativeOut, _ = flags.GetBool("native-out")
	return s, nil
}

func runApprove(a *app, cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	tokenRaw, _ := flags.GetString("token")
	if tokenRaw == "" {
		return fmt.Errorf("token is required")
	}
	token, err := config.ParseAddress(tokenRaw)
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}

	params := sdk.BuildApproveParams{Token: token}
	if spenderRaw, _ := flags.GetString("spender"); spenderRaw != "" {
		spender, err := config.ParseAddress(spenderRaw)
		if err != nil {
			return fmt.Errorf("spender: %w", err)
		}
		params.Spender = &spender
	}
	if amountRaw, _ := flags.GetString("amount"); amountRaw != "" {
		amount := units.Decimal(amountRaw)
		params.Amount = &amount
	}
	if flags.Changed("decimals") {
		decimals, _ := flags.GetUint8("decimals")
		params.Decimals = &decimals
	}

	tx, err := a.sdk.BuildApprove(a.ctx, params)
	if err != nil {
		return err
	}
	if err := a.record(storage.ApproveRecord(tx, time.Now())); err != nil {
		return err
	}
	return a.print(tx)
}
