package units

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmountFormat is returned when an amount cannot be represented in atomic units.
var ErrInvalidAmountFormat = errors.New("invalid amount format")

// MaxUint256 is 2^256 - 1, used as the "infinite" approval amount.
var MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

type amountKind uint8

const (
	kindDecimal amountKind = iota
	kindFloat
	kindAtomic
)

// Amount is a token quantity given either in human decimal form or already in atomic units.
type Amount struct {
	kind    amountKind
	decimal string
	float   float64
	atomic  *big.Int
}

// Decimal wraps a human-readable decimal string such as "0.25".
func Decimal(s string) Amount {
	return Amount{kind: kindDecimal, decimal: s}
}

// Float wraps a human-readable floating point quantity.
func Float(f float64) Amount {
	return Amount{kind: kindFloat, float: f}
}

// Atomic wraps an amount that is already scaled by 10^decimals.
func Atomic(v *big.Int) Amount {
	if v == nil {
		v = new(big.Int)
	}
	return Amount{kind: kindAtomic, atomic: new(big.Int).Set(v)}
}

// IsAtomic reports whether the amount was supplied in atomic units.
func (a Amount) IsAtomic() bool {
	return a.kind == kindAtomic
}

func (a Amount) String() string {
	return ToDecimalString(a)
}

// ToDecimalString returns decimal strings unchanged and the base-10 representation of anything else.
func ToDecimalString(a Amount) string {
	switch a.kind {
	case kindFloat:
		return strconv.FormatFloat(a.float, 'f', -1, 64)
	case kindAtomic:
		return a.atomic.String()
	default:
		return a.decimal
	}
}

// ToAtomic converts an amount into atomic units for a token with the given decimals.
// Atomic amounts are returned as-is.
func ToAtomic(a Amount, decimals uint8) (*big.Int, error) {
	if a.kind == kindAtomic {
		return new(big.Int).Set(a.atomic), nil
	}
	return ParseUnits(ToDecimalString(a), decimals)
}

// ParseUnits parses a decimal string and scales it by 10^decimals.
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty amount", ErrInvalidAmountFormat)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmountFormat, s)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: negative amount %q", ErrInvalidAmountFormat, s)
	}
	shifted := d.Shift(int32(decimals))
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidAmountFormat, s, decimals)
	}
	return shifted.BigInt(), nil
}

// ParseInteger parses a base-10 integer string that is already in atomic units.
func ParseInteger(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidAmountFormat, s)
	}
	return v, nil
}

// FormatUnits renders an atomic amount as the shortest decimal string.
func FormatUnits(v *big.Int, decimals uint8) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -int32(decimals)).String()
}
