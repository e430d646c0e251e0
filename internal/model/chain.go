package model

import "github.com/ethereum/go-ethereum/common"

// ChainConfig identifies a network and the contracts the toolkit talks to on it.
type ChainConfig struct {
	ID                      uint64         `json:"id"`
	Name                    string         `json:"name"`
	APIURL                  string         `json:"apiUrl"`
	WSURL                   string         `json:"wsUrl"`
	RPCHTTPURL              string         `json:"rpcHttpUrl"`
	RPCWSURL                string         `json:"rpcWsUrl"`
	RouterAddress           common.Address `json:"routerAddress"`
	WETHAddress             common.Address `json:"wethAddress"`
	CLOBManagerAddress      common.Address `json:"clobManagerAddress"`
	LaunchpadAddress        common.Address `json:"launchpadAddress"`
	ExplorerURL             string         `json:"explorerUrl"`
	PerformanceDashboardURL string         `json:"performanceDashboardUrl"`
	NativeSymbol            string         `json:"nativeSymbol"`
	EIP1559                 EIP1559Config  `json:"eip1559"`
}

// EIP1559Config carries the fee-market parameters published for a chain.
type EIP1559Config struct {
	BaseFeeGwei    float64 `json:"baseFeeGwei"`
	MaxBlockGas    uint64  `json:"maxBlockGas"`
	TargetBlockGas uint64  `json:"targetBlockGas"`
}
