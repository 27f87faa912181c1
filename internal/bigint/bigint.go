// Package bigint provides fixed-width big-endian conversions between
// byte buffers and math/big integers, plus modular exponentiation.
// SRP exchanges every value big-endian and sized exactly to the
// group's key width (384 bytes for the 3072-bit group), so all
// conversions here are width-exact: they pad, never truncate, and
// fail loudly if a value does not fit.
package bigint

import (
	"math/big"

	"github.com/harsha509/ios-pair-core/pairingerr"
)

// ToBuffer renders n as a width-byte big-endian buffer, left-zero-padded.
// It returns pairingerr.ErrOverflow if n does not fit in width bytes or
// is negative.
func ToBuffer(n *big.Int, width int) ([]byte, error) {
	if n.Sign() < 0 {
		return nil, pairingerr.Newf(pairingerr.ErrOverflow, "bigint: negative value cannot be encoded")
	}
	b := n.Bytes()
	if len(b) > width {
		return nil, pairingerr.Newf(pairingerr.ErrOverflow, "bigint: value needs %d bytes, width is %d", len(b), width)
	}
	out := make([]byte, width)
	copy(out[width-len(b):], b)
	return out, nil
}

// FromBuffer interprets buf as a non-negative big-endian integer.
func FromBuffer(buf []byte) *big.Int {
	return new(big.Int).SetBytes(buf)
}

// ModPow returns base^exp mod mod. exp is used as-is (not reduced before
// exponentiation); callers that need the textbook reduced exponent must
// reduce it themselves. math/big's Exp already implements a windowed
// algorithm suitable for 3072-bit operands.
func ModPow(base, exp, mod *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, mod)
}
