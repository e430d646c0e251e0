package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gte",
		Short:         "GTE market data and AMM router transaction builder",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file path")
	pf.String("chain", "megaeth-testnet", "chain preset")
	pf.String("rpc", "", "RPC URL (defaults to the chain preset)")
	pf.String("api-url", "", "REST API base URL (defaults to the chain preset)")
	pf.String("router-manager", "", "router manager contract (defaults to the chain preset)")
	pf.String("router", "", "AMM router address, skips the on-chain lookup")
	pf.String("api-key", "", "optional API key sent as X-API-Key")
	pf.Int("max-retries", 3, "REST retries after the first attempt (0 disables)")
	pf.Duration("retry-delay", 500*time.Millisecond, "REST linear backoff base")
	pf.Duration("rate-limit", 0, "minimum spacing between REST requests")
	pf.String("redis-addr", "", "Redis address for the REST response cache")
	pf.String("redis-password", "", "Redis password")
	pf.Int("redis-db", 0, "Redis database")
	pf.Duration("cache-ttl", 15*time.Second, "REST response cache TTL")
	pf.String("journal", "", "append built transactions to this JSONL file")
	pf.String("pg-dsn", "", "also journal built transactions to Postgres")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(marketCommands()...)
	root.AddCommand(tradeCommands()...)
	return root
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
