package dex

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

type fakeReader struct {
	calls   map[string]int
	results map[string][]interface{}
	bytes32 map[string][]interface{}
}

func (f *fakeReader) ReadContract(_ context.Context, _ common.Address, contractABI abi.ABI, method string, _ ...interface{}) ([]interface{}, error) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++

	out := contractABI.Methods[method].Outputs
	if len(out) == 1 && out[0].Type.T == abi.FixedBytesTy {
		if values, ok := f.bytes32[method]; ok {
			return values, nil
		}
		return nil, errors.New("execution reverted")
	}
	if values, ok := f.results[method]; ok {
		return values, nil
	}
	return nil, errors.New("execution reverted")
}

func TestFetchToken(t *testing.T) {
	reader := &fakeReader{results: map[string][]interface{}{
		"decimals": {uint8(6)},
		"symbol":   {"USDC"},
		"name":     {"USD Coin"},
	}}
	addr := common.HexToAddress("0x0000000000000000000000000000000000000c01")

	token, err := FetchToken(context.Background(), reader, addr, zap.NewNop())
	if err != nil {
		t.Fatalf("fetch token: %v", err)
	}
	if token.Address != addr || token.Decimals != 6 || token.Symbol != "USDC" || token.Name != "USD Coin" {
		t.Fatalf("unexpected token: %+v", token)
	}
}

func TestFetchTokenBytes32Fallback(t *testing.T) {
	var symbol [32]byte
	copy(symbol[:], "MKR")
	reader := &fakeReader{
		results: map[string][]interface{}{"decimals": {uint8(18)}},
		bytes32: map[string][]interface{}{"symbol": {symbol}},
	}

	token, err := FetchToken(context.Background(), reader, common.Address{}, nil)
	if err != nil {
		t.Fatalf("fetch token: %v", err)
	}
	if token.Symbol != "MKR" {
		t.Fatalf("symbol = %q, want MKR", token.Symbol)
	}
	if token.Name != "" {
		t.Fatalf("name should be empty, got %q", token.Name)
	}
}

func TestFetchTokenRequiresDecimals(t *testing.T) {
	reader := &fakeReader{results: map[string][]interface{}{}}
	if _, err := FetchToken(context.Background(), reader, common.Address{}, nil); err == nil {
		t.Fatalf("expected error when decimals call fails")
	}
}

func TestLookupTokenCaches(t *testing.T) {
	reader := &fakeReader{results: map[string][]interface{}{
		"decimals": {uint8(18)},
		"symbol":   {"WETH"},
		"name":     {"Wrapped Ether"},
	}}
	cache := NewTokenCache()
	addr := common.HexToAddress("0x776401b9BC8aAe31A685731B7147D4445fD9FB19")

	for i := 0; i < 3; i++ {
		if _, err := LookupToken(context.Background(), reader, cache, addr, nil); err != nil {
			t.Fatalf("lookup: %v", err)
		}
	}
	if reader.calls["decimals"] != 1 {
		t.Fatalf("decimals read %d times, want 1", reader.calls["decimals"])
	}
}
