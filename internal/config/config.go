package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gteKit/internal/model"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	Chain         string
	RPCURL        string
	APIURL        string
	RouterManager string
	Router        string
	APIKey        string
	MaxRetries    int
	RetryDelay    time.Duration
	RateLimit     time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
	Journal       string
	PGDSN         string
	LogLevel      string
}

// Load merges config file, environment variables (GTE_*), and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GTE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("chain", DefaultChain)
	v.SetDefault("max-retries", 3)
	v.SetDefault("retry-delay", 500*time.Millisecond)
	v.SetDefault("rate-limit", time.Duration(0))
	v.SetDefault("cache-ttl", 15*time.Second)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		Chain:         v.GetString("chain"),
		RPCURL:        v.GetString("rpc"),
		APIURL:        v.GetString("api-url"),
		RouterManager: v.GetString("router-manager"),
		Router:        v.GetString("router"),
		APIKey:        v.GetString("api-key"),
		MaxRetries:    v.GetInt("max-retries"),
		RetryDelay:    v.GetDuration("retry-delay"),
		RateLimit:     v.GetDuration("rate-limit"),
		RedisAddr:     v.GetString("redis-addr"),
		RedisPassword: v.GetString("redis-password"),
		RedisDB:       v.GetInt("redis-db"),
		CacheTTL:      v.GetDuration("cache-ttl"),
		Journal:       v.GetString("journal"),
		PGDSN:         v.GetString("pg-dsn"),
		LogLevel:      v.GetString("log-level"),
	}

	return cfg, nil
}

// ChainConfig resolves the named preset and applies URL and address overrides.
func (c Config) ChainConfig() (model.ChainConfig, error) {
	chain, err := Preset(c.Chain)
	if err != nil {
		return model.ChainConfig{}, err
	}
	if c.RPCURL != "" {
		chain.RPCHTTPURL = c.RPCURL
	}
	if c.APIURL != "" {
		chain.APIURL = c.APIURL
	}
	if c.RouterManager != "" {
		addr, err := ParseAddress(c.RouterManager)
		if err != nil {
			return model.ChainConfig{}, fmt.Errorf("router-manager: %w", err)
		}
		chain.RouterAddress = addr
	}
	return chain, nil
}

// RouterOverride returns the explicit AMM router, if configured.
func (c Config) RouterOverride() (*common.Address, error) {
	if strings.TrimSpace(c.Router) == "" {
		return nil, nil
	}
	addr, err := ParseAddress(c.Router)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	return &addr, nil
}

// RetryCount maps the configured retry count onto rest.Options semantics,
// where zero selects the default and a negative value disables retries.
func (c Config) RetryCount() int {
	if c.MaxRetries <= 0 {
		return -1
	}
	return c.MaxRetries
}
