// Copyright 2013-2017 Sudhi Herle <sudhi.herle-at-gmail-dot-com>
// License: MIT
//

// Package srp implements the client half of SRP-6a (RFC 5054) fixed to
// Apple's Pair-Setup 3072-bit group, using the non-textbook M1
// construction Apple's Pair-Setup protocol requires (see client.go).
//
// Conventions:
//
//	N    the 3072-bit safe prime from RFC 5054 Appendix A
//	g    generator modulo N (5, per Pair-Setup)
//	k    multiplier parameter, k = H(N, PAD(g))
//	s    user's salt
//	I    username ("Pair-Setup" by default)
//	p    cleartext password
//	H()  SHA-512
//	a,A  client ephemeral private/public values
//	B    server ephemeral public value
//	x    private key derived from p and s
//	u    random scrambling parameter
//	S    shared secret
//	K    session key, K = H(PAD(S))
//
// The client computes:
//
//	u = H(PAD(A), PAD(B))
//	x = H(s, H(I, ":", p))
//	S = (B - k*g^x mod N)^(a + u*x) mod N      // negative-modulo corrected
//	K = H(PAD(S))
//	M1 = H(H(PAD(N)) xor H(PAD(g)), H(I), s, PAD(A), PAD(B), K)
//
// This is Apple's Pair-Setup variant of the client proof: it hashes K
// directly rather than the textbook form that hashes S.
package srp

import "math/big"

// KeyBytes is the fixed width (in bytes) of N, and therefore of every
// PAD()ed value exchanged over the wire (A, B, S).
const KeyBytes = 384

// PrivateKeyBits is the number of bits of entropy sampled for the
// client's ephemeral private value a.
const PrivateKeyBits = 256

// DefaultUsername is the standard Pair-Setup identity. Client does not
// apply it on its own; it takes effect only when passed to SetIdentity.
const DefaultUsername = "Pair-Setup"

// maxKeyGenAttempts bounds the ephemeral-keypair rejection loop: abort
// after 100 rejected candidates rather than folding a bad candidate
// back into range with modulo, which would bias the distribution.
const maxKeyGenAttempts = 100

// N is the 3072-bit safe prime from RFC 5054 Appendix A.
var N = mustParseHex(
	"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3BE39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF6955817183995497CEA956AE515D2261898FA051015728E5A8AAAC42DAD33170D04507A33A85521ABDF1CBA64ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6BF12FFA06D98A0864D87602733EC86A64521F2B18177B200CBBE117577A615D6C770988C0BAD946E208E24FA074E5AB3143DB5BFCE0FD108E4B82D120A93AD2CAFFFFFFFFFFFFFFFF")

// g is the fixed generator for Apple's Pair-Setup group.
var g = big.NewInt(5)

// k is the multiplier parameter, computed once at package init time:
// k = H(PAD(N) || PAD(g)).
var k = computeK()

func mustParseHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("srp: failed to parse fixed group parameter")
	}
	return n
}
