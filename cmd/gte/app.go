package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gteKit/internal/cache"
	"gteKit/internal/chain"
	"gteKit/internal/config"
	"gteKit/internal/model"
	"gteKit/internal/rest"
	"gteKit/internal/sdk"
	"gteKit/internal/storage"
	"gteKit/internal/storage/postgres"
)

// app holds the clients shared by every subcommand.
type app struct {
	ctx     context.Context
	cfg     config.Config
	chain   model.ChainConfig
	logger  *zap.Logger
	sdk     *sdk.Client
	journal storage.Storage
	out     io.Writer
	closers []func()
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	chainCfg, err := cfg.ChainConfig()
	if err != nil {
		return nil, err
	}
	router, err := cfg.RouterOverride()
	if err != nil {
		return nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := &app{
		ctx:     ctx,
		cfg:     cfg,
		chain:   chainCfg,
		logger:  logger,
		out:     cmd.OutOrStdout(),
		closers: []func(){stop, func() { _ = logger.Sync() }},
	}

	chainClient, err := chain.NewClient(ctx, chainCfg.RPCHTTPURL, logger.Named("chain"))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("connect rpc: %w", err)
	}
	a.closers = append(a.closers, chainClient.Close)

	restOpts := rest.Options{
		BaseURL:    chainCfg.APIURL,
		MaxRetries: cfg.RetryCount(),
		RetryDelay: cfg.RetryDelay,
		RateLimit:  cfg.RateLimit,
		CacheTTL:   cfg.CacheTTL,
	}
	if cfg.APIKey != "" {
		restOpts.Headers = map[string]string{"X-API-Key": cfg.APIKey}
	}
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			a.close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = redisCache.Close() })
		restOpts.Cache = redisCache
	}

	client, err := sdk.New(sdk.Options{
		Chain:         chainCfg,
		Reader:        chainClient,
		Rest:          restOpts,
		RouterAddress: router,
		Logger:        logger,
	})
	if err != nil {
		a.close()
		return nil, err
	}
	a.sdk = client

	if err := a.openJournal(); err != nil {
		a.close()
		return nil, err
	}

	logger.Debug("client ready",
		zap.String("chain", chainCfg.Name),
		zap.Uint64("chain_id", chainCfg.ID),
		zap.String("api", chainCfg.APIURL),
		zap.String("rpc", chainCfg.RPCHTTPURL),
	)
	return a, nil
}

func (a *app) openJournal() error {
	var sinks storage.Multi
	if a.cfg.Journal != "" {
		sinks = append(sinks, storage.NewJsonlStorage(a.cfg.Journal))
	}
	if a.cfg.PGDSN != "" {
		store, err := postgres.NewStore(a.ctx, a.cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		if err := store.EnsureSchema(a.ctx); err != nil {
			return fmt.Errorf("ensure journal schema: %w", err)
		}
		sinks = append(sinks, store)
	}
	if len(sinks) > 0 {
		a.journal = sinks
	}
	return nil
}

func (a *app) record(rec model.TxRecord) error {
	if a.journal == nil {
		return nil
	}
	if err := a.journal.PutTransactions(a.ctx, []model.TxRecord{rec}); err != nil {
		return fmt.Errorf("journal transaction: %w", err)
	}
	a.logger.Info("journaled transaction", zap.String("kind", rec.Kind), zap.String("to", rec.To))
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// spin shows a progress spinner on stderr until the returned func is called.
// It stays silent when stderr is not a terminal.
func (a *app) spin(msg string) func() {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}

func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// withApp wraps a command body with app setup and teardown.
func withApp(run func(a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		return run(a, cmd, args)
	}
}
