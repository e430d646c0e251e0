package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Chain != DefaultChain || cfg.MaxRetries != 3 || cfg.RetryDelay != 500*time.Millisecond || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gte.yaml")
	content := "rpc: https://file.example/rpc\nmax-retries: 7\njournal: ./file.jsonl\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GTE_API_URL", "https://env.example/v1")
	t.Setenv("GTE_MAX_RETRIES", "9")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("journal", "", "")
	flags.String("log-level", "info", "")
	if err := flags.Parse([]string{"--journal", "./flag.jsonl"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RPCURL != "https://file.example/rpc" {
		t.Fatalf("rpc = %q", cfg.RPCURL)
	}
	if cfg.APIURL != "https://env.example/v1" {
		t.Fatalf("api url = %q", cfg.APIURL)
	}
	if cfg.MaxRetries != 9 {
		t.Fatalf("env should override file, got max-retries %d", cfg.MaxRetries)
	}
	if cfg.Journal != "./flag.jsonl" {
		t.Fatalf("flag should override file, got journal %q", cfg.Journal)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestChainConfigOverrides(t *testing.T) {
	cfg := Config{
		Chain:         "MegaETH-Testnet",
		RPCURL:        "http://localhost:8545",
		RouterManager: "0x0000000000000000000000000000000000000def",
	}
	chain, err := cfg.ChainConfig()
	if err != nil {
		t.Fatalf("chain config: %v", err)
	}
	if chain.ID != 6342 || chain.RPCHTTPURL != "http://localhost:8545" {
		t.Fatalf("unexpected chain: %+v", chain)
	}
	if chain.APIURL != "https://api-testnet.gte.xyz/v1" {
		t.Fatalf("api url should keep preset, got %q", chain.APIURL)
	}
	if chain.RouterAddress != common.HexToAddress("0x0000000000000000000000000000000000000def") {
		t.Fatalf("router manager override ignored: %s", chain.RouterAddress.Hex())
	}

	if _, err := (Config{Chain: "mainnet-unknown"}).ChainConfig(); err == nil {
		t.Fatalf("expected unknown chain error")
	}
	if _, err := (Config{RouterManager: "nope"}).ChainConfig(); err == nil {
		t.Fatalf("expected invalid address error")
	}
}

func TestPresetReturnsFreshCopy(t *testing.T) {
	a, err := Preset(DefaultChain)
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	a.EIP1559.MaxBlockGas = 1
	b, _ := Preset(DefaultChain)
	if b.EIP1559.MaxBlockGas != 2_000_000_000 {
		t.Fatalf("preset was mutated: %d", b.EIP1559.MaxBlockGas)
	}
	if b.WETHAddress != common.HexToAddress("0x776401b9BC8aAe31A685731B7147D4445fD9FB19") {
		t.Fatalf("unexpected weth: %s", b.WETHAddress.Hex())
	}
}

func TestRouterOverrideAndRetryCount(t *testing.T) {
	addr, err := (Config{}).RouterOverride()
	if err != nil || addr != nil {
		t.Fatalf("expected no override, got %v %v", addr, err)
	}
	addr, err = (Config{Router: "0x86470efcEa37e50F94E74649463b737C87ada367"}).RouterOverride()
	if err != nil || addr == nil {
		t.Fatalf("expected override, got %v %v", addr, err)
	}
	if got := (Config{MaxRetries: 0}).RetryCount(); got != -1 {
		t.Fatalf("retry count = %d, want -1", got)
	}
	if got := (Config{MaxRetries: 4}).RetryCount(); got != 4 {
		t.Fatalf("retry count = %d, want 4", got)
	}
}

func TestParseHelpers(t *testing.T) {
	addrs, err := ParseAddresses([]string{" 0x0000000000000000000000000000000000000b01 ", "", "0x0000000000000000000000000000000000000c01"})
	if err != nil || len(addrs) != 2 {
		t.Fatalf("parse addresses: %v %v", addrs, err)
	}
	if _, err := ParseAddresses([]string{"0x123"}); err == nil {
		t.Fatalf("expected invalid address error")
	}

	ts, err := ParseTimestamp("2024-01-01T00:00:00Z")
	if err != nil || ts != 1704067200 {
		t.Fatalf("parse rfc3339: %d %v", ts, err)
	}
	ts, err = ParseTimestamp("1704067200")
	if err != nil || ts != 1704067200 {
		t.Fatalf("parse unix: %d %v", ts, err)
	}
	if ts, err := ParseTimestamp(""); err != nil || ts != 0 {
		t.Fatalf("parse empty: %d %v", ts, err)
	}
}
