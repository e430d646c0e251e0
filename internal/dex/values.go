package dex

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// AsAddress extracts an address from an unpacked ABI value.
func AsAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		if v == nil {
			return common.Address{}, fmt.Errorf("nil address")
		}
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

// AsBigIntSlice extracts a uint256[] from an unpacked ABI value.
func AsBigIntSlice(value interface{}) ([]*big.Int, error) {
	switch v := value.(type) {
	case []*big.Int:
		out := make([]*big.Int, len(v))
		for i, item := range v {
			if item == nil {
				return nil, fmt.Errorf("nil amount at index %d", i)
			}
			out[i] = new(big.Int).Set(item)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported amounts type %T", value)
	}
}
