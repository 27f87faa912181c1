// Copyright 2013-2017 Sudhi Herle <sudhi.herle-at-gmail-dot-com>
// License: MIT
//

package srp

import "math/big"

// Modulus, Generator, and Multiplier expose the fixed Pair-Setup group
// parameters (N, g, k) read-only, copied out of the package's
// immutable internal big.Ints. They exist for test doubles and
// documentation/tooling that need to reproduce the group's arithmetic
// outside a Client — for example a local reference verifier used only
// to demonstrate the client against something, since this package
// itself never implements the server side of SRP.
func Modulus() *big.Int { return new(big.Int).Set(N) }

// Generator returns the fixed generator g = 5.
func Generator() *big.Int { return new(big.Int).Set(g) }

// Multiplier returns the fixed multiplier k = H(PAD(N) || PAD(g)).
func Multiplier() *big.Int { return new(big.Int).Set(k) }

// DeriveX exposes calculateX for callers outside this package (such as
// a local test-double verifier) that need to derive the same private
// key x an SRP client would, from the same salt/username/password.
func DeriveX(salt []byte, username, password string) *big.Int {
	return calculateX(salt, username, password)
}
