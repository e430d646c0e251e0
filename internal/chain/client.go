package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"gteKit/internal/metrics"
)

// Caller is the subset of ethclient used for reads.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// ContractReadError wraps any failure of a view call.
type ContractReadError struct {
	Contract common.Address
	Method   string
	Err      error
}

func (e *ContractReadError) Error() string {
	return fmt.Sprintf("read %s on %s: %v", e.Method, e.Contract.Hex(), e.Err)
}

func (e *ContractReadError) Unwrap() error {
	return e.Err
}

// Client wraps go-ethereum RPC and decodes view calls.
type Client struct {
	rpcClient *rpc.Client
	caller    Caller
	chainID   func(ctx context.Context) (*big.Int, error)
	logger    *zap.Logger
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(ctx context.Context, rpcURL string, logger *zap.Logger) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	ethClient := ethclient.NewClient(rpcClient)
	c := NewClientWithCaller(ethClient, logger)
	c.rpcClient = rpcClient
	c.chainID = ethClient.ChainID
	return c, nil
}

// NewClientWithCaller builds a Client on top of an existing caller, e.g. a simulated backend.
func NewClientWithCaller(caller Caller, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{caller: caller, logger: logger}
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// GetChainID returns the chain ID reported by the node.
func (c *Client) GetChainID(ctx context.Context) (*big.Int, error) {
	if c.chainID == nil {
		return nil, fmt.Errorf("chain id not available")
	}
	return c.chainID(ctx)
}

// CallContract performs an eth_call against the latest block.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return c.caller.CallContract(ctx, msg, blockNumber)
}

// ReadContract packs a view call, executes it and unpacks the outputs.
// Every failure is returned as a *ContractReadError and is not retried.
func (c *Client) ReadContract(ctx context.Context, contract common.Address, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	values, err := c.readContract(ctx, contract, contractABI, method, args...)
	if err != nil {
		metrics.ContractReads.WithLabelValues(method, "error").Inc()
		c.logger.Debug("contract read failed", zap.String("contract", contract.Hex()), zap.String("method", method), zap.Error(err))
		return nil, &ContractReadError{Contract: contract, Method: method, Err: err}
	}
	metrics.ContractReads.WithLabelValues(method, "ok").Inc()
	return values, nil
}

func (c *Client) readContract(ctx context.Context, contract common.Address, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &contract, Data: data}
	resp, err := c.caller.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := contractABI.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}
