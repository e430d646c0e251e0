package calldata

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gteKit/internal/dex"
)

var (
	weth      = common.HexToAddress("0x776401b9BC8aAe31A685731B7147D4445fD9FB19")
	tokenA    = common.HexToAddress("0x0000000000000000000000000000000000000b01")
	tokenB    = common.HexToAddress("0x0000000000000000000000000000000000000c01")
	recipient = common.HexToAddress("0x0000000000000000000000000000000000000f01")
)

const deadline = int64(1_700_001_200)

func decodeRouterCall(t *testing.T, data []byte) (string, []interface{}) {
	t.Helper()
	routerABI, err := dex.UniswapV2RouterABI()
	require.NoError(t, err)
	method, err := routerABI.MethodById(data[:4])
	require.NoError(t, err)
	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	return method.Name, args
}

func TestSwapEncoding(t *testing.T) {
	in := big.NewInt(1_000)
	out := big.NewInt(1_990)

	tests := []struct {
		name      string
		exactOut  bool
		nativeIn  bool
		nativeOut bool
		path      []common.Address
		method    string
		wantArgs  []interface{}
		wantValue *big.Int
	}{
		{
			name: "exact-in tokens", path: []common.Address{tokenA, tokenB},
			method:    dex.MethodSwapExactTokensForTokens,
			wantArgs:  []interface{}{in, out, []common.Address{tokenA, tokenB}, recipient, big.NewInt(deadline)},
			wantValue: big.NewInt(0),
		},
		{
			name: "exact-in native in", nativeIn: true, path: []common.Address{weth, tokenB},
			method:    dex.MethodSwapExactETHForTokens,
			wantArgs:  []interface{}{out, []common.Address{weth, tokenB}, recipient, big.NewInt(deadline)},
			wantValue: in,
		},
		{
			name: "exact-in native out", nativeOut: true, path: []common.Address{tokenA, weth},
			method:    dex.MethodSwapExactTokensForETH,
			wantArgs:  []interface{}{in, out, []common.Address{tokenA, weth}, recipient, big.NewInt(deadline)},
			wantValue: big.NewInt(0),
		},
		{
			name: "exact-out tokens", exactOut: true, path: []common.Address{tokenA, tokenB},
			method:    dex.MethodSwapTokensForExactTokens,
			wantArgs:  []interface{}{out, in, []common.Address{tokenA, tokenB}, recipient, big.NewInt(deadline)},
			wantValue: big.NewInt(0),
		},
		{
			name: "exact-out native in", exactOut: true, nativeIn: true, path: []common.Address{weth, tokenB},
			method:    dex.MethodSwapETHForExactTokens,
			wantArgs:  []interface{}{out, []common.Address{weth, tokenB}, recipient, big.NewInt(deadline)},
			wantValue: in,
		},
		{
			name: "exact-out native out", exactOut: true, nativeOut: true, path: []common.Address{tokenA, weth},
			method:    dex.MethodSwapTokensForExactETH,
			wantArgs:  []interface{}{out, in, []common.Address{tokenA, weth}, recipient, big.NewInt(deadline)},
			wantValue: big.NewInt(0),
		},
	}

	enc := NewEncoder(weth)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := SwapArgs{
				AmountIn:     in,
				AmountOut:    out,
				Path:         tt.path,
				Recipient:    recipient,
				Deadline:     deadline,
				UseNativeIn:  tt.nativeIn,
				UseNativeOut: tt.nativeOut,
			}
			var (
				call Call
				err  error
			)
			if tt.exactOut {
				call, err = enc.SwapExactOut(args)
			} else {
				call, err = enc.SwapExactIn(args)
			}
			require.NoError(t, err)
			assert.Equal(t, tt.method, call.Method)
			assert.Equal(t, 0, call.Value.Cmp(tt.wantValue), "value = %s, want %s", call.Value, tt.wantValue)

			name, decoded := decodeRouterCall(t, call.Data)
			assert.Equal(t, tt.method, name)
			require.Len(t, decoded, len(tt.wantArgs))
			for i, want := range tt.wantArgs {
				switch w := want.(type) {
				case *big.Int:
					got, ok := decoded[i].(*big.Int)
					require.True(t, ok, "arg %d is %T", i, decoded[i])
					assert.Equal(t, 0, got.Cmp(w), "arg %d = %s, want %s", i, got, w)
				default:
					assert.Equal(t, want, decoded[i], "arg %d", i)
				}
			}
		})
	}
}

func TestSwapNativeValidation(t *testing.T) {
	enc := NewEncoder(weth)
	base := SwapArgs{AmountIn: big.NewInt(1), AmountOut: big.NewInt(1), Recipient: recipient, Deadline: deadline}

	both := base
	both.Path = []common.Address{weth, tokenB}
	both.UseNativeIn, both.UseNativeOut = true, true
	_, err := enc.SwapExactIn(both)
	assert.ErrorIs(t, err, ErrConflictingNativeFlags)
	_, err = enc.SwapExactOut(both)
	assert.ErrorIs(t, err, ErrConflictingNativeFlags)

	badIn := base
	badIn.Path = []common.Address{tokenA, tokenB}
	badIn.UseNativeIn = true
	_, err = enc.SwapExactIn(badIn)
	assert.ErrorIs(t, err, ErrInvalidNativePath)

	badOut := base
	badOut.Path = []common.Address{weth, tokenB}
	badOut.UseNativeOut = true
	_, err = enc.SwapExactOut(badOut)
	assert.ErrorIs(t, err, ErrInvalidNativePath)

	empty := base
	empty.UseNativeIn = true
	_, err = enc.SwapExactIn(empty)
	assert.ErrorIs(t, err, ErrInvalidNativePath)
}

func TestNativeAddressComparisonIgnoresCase(t *testing.T) {
	lower := common.HexToAddress("0x776401b9bc8aae31a685731b7147d4445fd9fb19")
	enc := NewEncoder(weth)
	_, err := enc.SwapExactIn(SwapArgs{
		AmountIn: big.NewInt(1), AmountOut: big.NewInt(1),
		Path:        []common.Address{lower, tokenB},
		Recipient:   recipient,
		Deadline:    deadline,
		UseNativeIn: true,
	})
	require.NoError(t, err)
}

func TestApprove(t *testing.T) {
	spender := common.HexToAddress("0x86470efcEa37e50F94E74649463b737C87ada367")
	data, err := NewEncoder(weth).Approve(spender, big.NewInt(5))
	require.NoError(t, err)

	erc20, err := dex.ERC20ABI()
	require.NoError(t, err)
	method, err := erc20.MethodById(data[:4])
	require.NoError(t, err)
	assert.Equal(t, "approve", method.Name)
	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	assert.Equal(t, spender, args[0])
	assert.Equal(t, int64(5), args[1].(*big.Int).Int64())

	_, err = NewEncoder(weth).Approve(spender, nil)
	assert.Error(t, err)
}
