package model

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestPreparedTransactionJSON(t *testing.T) {
	tx := PreparedTransaction{
		To:      common.HexToAddress("0x86470efcEa37e50F94E74649463b737C87ada367"),
		Data:    []byte{0x09, 0x5e, 0xa7, 0xb3},
		Value:   big.NewInt(0),
		ChainID: 6342,
	}

	b, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded["data"] != "0x095ea7b3" {
		t.Fatalf("data should be 0x-prefixed hex, got %v", decoded["data"])
	}
	if decoded["to"] != "0x86470efcea37e50f94e74649463b737c87ada367" {
		t.Fatalf("unexpected to: %v", decoded["to"])
	}
	if decoded["chainId"].(float64) != 6342 {
		t.Fatalf("unexpected chain id: %v", decoded["chainId"])
	}

	var back PreparedTransaction
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal into struct failed: %v", err)
	}
	if back.To != tx.To || back.Value.Sign() != 0 || len(back.Data) != 4 {
		t.Fatalf("round-trip mismatch: %+v", back)
	}
}
