// Package srphash wraps the hash primitives the pairing core depends
// on: a fixed SHA-512 hash used throughout SRP, and HKDF-SHA512 for
// outer pairing code that needs to derive additional key material from
// the SRP session key. HKDF is not used internally by the SRP math
// (SRP always calls Hash directly); it is exposed for the surrounding
// pairing state machine that derives encryption keys from K.
package srphash

import (
	"crypto/sha512"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"

	"github.com/harsha509/ios-pair-core/internal/bigint"
)

// Size is the output length of Hash in bytes.
const Size = sha512.Size

// Hash computes SHA-512 over the concatenation of parts.
func Hash(parts ...[]byte) [Size]byte {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// HashInt computes Hash over parts and interprets the digest as a
// non-negative big-endian integer, the shape SRP's k/u/x derivations
// need.
func HashInt(parts ...[]byte) *big.Int {
	h := Hash(parts...)
	return bigint.FromBuffer(h[:])
}

// Pad renders n as a width-byte big-endian buffer — the PAD(n)
// operation SRP's hash inputs require. width is the group's key size
// in bytes (384 for the fixed 3072-bit group).
func Pad(n *big.Int, width int) []byte {
	buf, err := bigint.ToBuffer(n, width)
	if err != nil {
		// PAD is only ever called with values already range-checked to
		// fit the group (B, A, S); a width violation here means a
		// caller bypassed those checks.
		panic(err)
	}
	return buf
}

// DeriveHKDF runs HKDF-SHA512 (RFC 5869) over secret, producing length
// bytes of output keying material using salt and info as the extract
// and expand parameters.
func DeriveHKDF(secret, salt, info []byte, length int) ([]byte, error) {
	r := hkdf.New(sha512.New, secret, salt, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}
