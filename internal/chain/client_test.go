package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"gteKit/internal/dex"
	"gteKit/internal/metrics"
)

type stubCaller struct {
	resp []byte
	err  error
	msgs []ethereum.CallMsg
}

func (s *stubCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	s.msgs = append(s.msgs, msg)
	return s.resp, s.err
}

func TestReadContract(t *testing.T) {
	routerABI, err := dex.UniswapV2RouterABI()
	if err != nil {
		t.Fatalf("router abi: %v", err)
	}
	amounts := []*big.Int{big.NewInt(1000), big.NewInt(1990)}
	resp, err := routerABI.Methods[dex.MethodGetAmountsOut].Outputs.Pack(amounts)
	if err != nil {
		t.Fatalf("pack outputs: %v", err)
	}

	caller := &stubCaller{resp: resp}
	client := NewClientWithCaller(caller, nil)
	router := common.HexToAddress("0x86470efcEa37e50F94E74649463b737C87ada367")
	path := []common.Address{
		common.HexToAddress("0x0000000000000000000000000000000000000b01"),
		common.HexToAddress("0x0000000000000000000000000000000000000c01"),
	}

	before := testutil.ToFloat64(metrics.ContractReads.WithLabelValues(dex.MethodGetAmountsOut, "ok"))
	values, err := client.ReadContract(context.Background(), router, routerABI, dex.MethodGetAmountsOut, big.NewInt(1000), path)
	if err != nil {
		t.Fatalf("read contract: %v", err)
	}
	got, err := dex.AsBigIntSlice(values[0])
	if err != nil {
		t.Fatalf("decode amounts: %v", err)
	}
	if len(got) != 2 || got[1].Int64() != 1990 {
		t.Fatalf("unexpected amounts: %v", got)
	}
	if len(caller.msgs) != 1 || *caller.msgs[0].To != router {
		t.Fatalf("unexpected call target: %+v", caller.msgs)
	}
	wantSelector := routerABI.Methods[dex.MethodGetAmountsOut].ID
	if string(caller.msgs[0].Data[:4]) != string(wantSelector) {
		t.Fatalf("selector = %x, want %x", caller.msgs[0].Data[:4], wantSelector)
	}
	after := testutil.ToFloat64(metrics.ContractReads.WithLabelValues(dex.MethodGetAmountsOut, "ok"))
	if after-before != 1 {
		t.Fatalf("ok counter moved by %v", after-before)
	}
}

func TestReadContractWrapsCallFailure(t *testing.T) {
	managerABI, err := dex.RouterManagerABI()
	if err != nil {
		t.Fatalf("manager abi: %v", err)
	}
	rpcErr := errors.New("connection refused")
	client := NewClientWithCaller(&stubCaller{err: rpcErr}, nil)
	manager := common.HexToAddress("0x0000000000000000000000000000000000000def")

	_, err = client.ReadContract(context.Background(), manager, managerABI, dex.MethodUniV2Router)
	var readErr *ContractReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected ContractReadError, got %v", err)
	}
	if readErr.Contract != manager || readErr.Method != dex.MethodUniV2Router {
		t.Fatalf("unexpected error fields: %+v", readErr)
	}
	if !errors.Is(err, rpcErr) {
		t.Fatalf("expected wrapped rpc error, got %v", err)
	}
}

func TestReadContractWrapsDecodeFailure(t *testing.T) {
	managerABI, err := dex.RouterManagerABI()
	if err != nil {
		t.Fatalf("manager abi: %v", err)
	}
	client := NewClientWithCaller(&stubCaller{resp: []byte{0x01}}, nil)

	_, err = client.ReadContract(context.Background(), common.Address{}, managerABI, dex.MethodWETH)
	var readErr *ContractReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected ContractReadError, got %v", err)
	}
}

func TestGetChainIDWithoutRPC(t *testing.T) {
	client := NewClientWithCaller(&stubCaller{}, nil)
	if _, err := client.GetChainID(context.Background()); err == nil {
		t.Fatalf("expected error without rpc client")
	}
	client.Close()
}
