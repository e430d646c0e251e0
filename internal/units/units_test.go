package units

import (
	"errors"
	"math/big"
	"testing"
)

func TestToDecimalString(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		want   string
	}{
		{name: "decimal unchanged", amount: Decimal("0.100"), want: "0.100"},
		{name: "float", amount: Float(1.5), want: "1.5"},
		{name: "whole float", amount: Float(2), want: "2"},
		{name: "atomic", amount: Atomic(big.NewInt(12345)), want: "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToDecimalString(tt.amount); got != tt.want {
				t.Fatalf("ToDecimalString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToAtomic(t *testing.T) {
	tests := []struct {
		name     string
		amount   Amount
		decimals uint8
		want     string
	}{
		{name: "one ether", amount: Decimal("1"), decimals: 18, want: "1000000000000000000"},
		{name: "fractional usdc", amount: Decimal("12.345678"), decimals: 6, want: "12345678"},
		{name: "trailing zeros", amount: Decimal("1.50"), decimals: 1, want: "15"},
		{name: "float", amount: Float(0.25), decimals: 2, want: "25"},
		{name: "zero decimals", amount: Decimal("42"), decimals: 0, want: "42"},
		{name: "atomic passthrough", amount: Atomic(big.NewInt(7)), decimals: 18, want: "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToAtomic(tt.amount, tt.decimals)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("ToAtomic() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestToAtomicInvalid(t *testing.T) {
	tests := []struct {
		name     string
		amount   Amount
		decimals uint8
	}{
		{name: "too many fractional digits", amount: Decimal("1.1234567"), decimals: 6},
		{name: "fraction with zero decimals", amount: Decimal("0.5"), decimals: 0},
		{name: "garbage", amount: Decimal("abc"), decimals: 18},
		{name: "empty", amount: Decimal(""), decimals: 18},
		{name: "negative", amount: Decimal("-1"), decimals: 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToAtomic(tt.amount, tt.decimals)
			if !errors.Is(err, ErrInvalidAmountFormat) {
				t.Fatalf("expected ErrInvalidAmountFormat, got %v", err)
			}
		})
	}
}

func TestAtomicIsCopied(t *testing.T) {
	src := big.NewInt(10)
	a := Atomic(src)
	src.SetInt64(99)

	got, err := ToAtomic(a, 18)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Int64() != 10 {
		t.Fatalf("atomic amount aliased caller value: %s", got)
	}
}

func TestFormatUnits(t *testing.T) {
	two := new(big.Int).Mul(big.NewInt(2), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
	tests := []struct {
		name     string
		value    *big.Int
		decimals uint8
		want     string
	}{
		{name: "whole", value: two, decimals: 18, want: "2"},
		{name: "fraction", value: big.NewInt(1990000), decimals: 6, want: "1.99"},
		{name: "small", value: big.NewInt(1), decimals: 18, want: "0.000000000000000001"},
		{name: "zero decimals", value: big.NewInt(15), decimals: 0, want: "15"},
		{name: "nil", value: nil, decimals: 6, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatUnits(tt.value, tt.decimals); got != tt.want {
				t.Fatalf("FormatUnits() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseInteger(t *testing.T) {
	got, err := ParseInteger("5000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Int64() != 5000 {
		t.Fatalf("ParseInteger() = %s", got)
	}
	if _, err := ParseInteger("1.5"); !errors.Is(err, ErrInvalidAmountFormat) {
		t.Fatalf("expected ErrInvalidAmountFormat, got %v", err)
	}
}

func TestMaxUint256(t *testing.T) {
	want, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	if MaxUint256.Cmp(want) != 0 {
		t.Fatalf("MaxUint256 = %s", MaxUint256)
	}
}
