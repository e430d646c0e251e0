package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"gteKit/internal/model"
)

// DefaultChain is the preset used when no chain is configured.
const DefaultChain = "megaeth-testnet"

var presets = map[string]func() model.ChainConfig{
	"megaeth-testnet": MegaETHTestnet,
}

// MegaETHTestnet returns the published MegaETH testnet deployment.
func MegaETHTestnet() model.ChainConfig {
	return model.ChainConfig{
		ID:                      6342,
		Name:                    "MegaETH Testnet",
		APIURL:                  "https://api-testnet.gte.xyz/v1",
		WSURL:                   "wss://api-testnet.gte.xyz/ws",
		RPCHTTPURL:              "https://api-testnet.gte.xyz/v1/exchange",
		RPCWSURL:                "wss://carrot.megaeth.com/ws",
		RouterAddress:           common.HexToAddress("0x86470efcEa37e50F94E74649463b737C87ada367"),
		WETHAddress:             common.HexToAddress("0x776401b9BC8aAe31A685731B7147D4445fD9FB19"),
		CLOBManagerAddress:      common.HexToAddress("0xD7310f8A0D569Dd0803D28BB29f4E0A471fA84F6"),
		LaunchpadAddress:        common.HexToAddress("0x0B6cD1DefCe3189Df60A210326E315383fbC14Ed"),
		ExplorerURL:             "https://megaexplorer.xyz",
		PerformanceDashboardURL: "https://uptime.megaeth.com",
		NativeSymbol:            "ETH",
		EIP1559: model.EIP1559Config{
			BaseFeeGwei:    0.0025,
			MaxBlockGas:    2_000_000_000,
			TargetBlockGas: 1_000_000_000,
		},
	}
}

// Preset returns a fresh copy of the named chain preset.
func Preset(name string) (model.ChainConfig, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultChain
	}
	build, ok := presets[key]
	if !ok {
		return model.ChainConfig{}, fmt.Errorf("unknown chain %q (known: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return build(), nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
