// Copyright 2013-2017 Sudhi Herle <sudhi.herle-at-gmail-dot-com>
// License: MIT
//

package srp

import (
	"math/big"

	"github.com/harsha509/ios-pair-core/internal/srphash"
)

// computeK computes the SRP-6a multiplier k = H(PAD(N) || PAD(g)).
func computeK() *big.Int {
	return srphash.HashInt(srphash.Pad(N, KeyBytes), srphash.Pad(g, KeyBytes))
}

// calculateU computes the scrambling parameter u = H(PAD(A) || PAD(B)).
func calculateU(A, B *big.Int) *big.Int {
	return srphash.HashInt(srphash.Pad(A, KeyBytes), srphash.Pad(B, KeyBytes))
}

// calculateX derives the private key x = H(salt || H(username || ":" || password)).
// The inner hash runs over the ASCII bytes of username, a literal ":",
// and the raw bytes of password.
func calculateX(salt []byte, username, password string) *big.Int {
	inner := srphash.Hash([]byte(username), []byte(":"), []byte(password))
	return srphash.HashInt(salt, inner[:])
}

// calculateM1 computes Apple's Pair-Setup client proof:
//
//	M1 = H( H(PAD(N)) xor H(PAD(g)) || H(username) || salt || PAD(A) || PAD(B) || K )
//
// This uses K directly, not S — the textbook SRP form that hashes S is
// not used here; substituting it produces a proof Apple's devices
// reject.
func calculateM1(username string, salt []byte, A, B *big.Int, K []byte) [srphash.Size]byte {
	hN := srphash.Hash(srphash.Pad(N, KeyBytes))
	hg := srphash.Hash(srphash.Pad(g, KeyBytes))
	xored := make([]byte, len(hN))
	for i := range hN {
		xored[i] = hN[i] ^ hg[i]
	}
	hUser := srphash.Hash([]byte(username))
	return srphash.Hash(xored, hUser[:], salt, srphash.Pad(A, KeyBytes), srphash.Pad(B, KeyBytes), K)
}
