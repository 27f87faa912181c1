// Copyright 2013-2017 Sudhi Herle <sudhi.herle-at-gmail-dot-com>
// License: MIT
//

package srp

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/harsha509/ios-pair-core/internal/bigint"
	"github.com/harsha509/ios-pair-core/internal/srphash"
	"github.com/harsha509/ios-pair-core/pairingerr"
)

// Client is a single-use, single-threaded SRP-6a client session for
// Apple's Pair-Setup handshake. One Client corresponds to one pairing
// attempt; it is not safe for concurrent use, and every method that
// returns an error fails with pairingerr.ErrDisposed once Dispose has
// been called (IsReady and HasSessionKey report false instead).
//
// States progress Fresh -> IdentitySet -> KeysGenerated -> SessionReady
// -> Disposed. KeysGenerated is entered lazily as soon as both salt and
// the server's public key B are present, regardless of the order they
// arrived in. SessionReady (K computed) is entered lazily on the first
// call to ComputeProof or SessionKey.
type Client struct {
	username string
	password string

	salt []byte
	B    *big.Int

	a *big.Int
	A *big.Int

	S *big.Int
	K []byte

	identitySet   bool
	keysGenerated bool
	disposed      bool
}

// NewClient creates a fresh Client with no identity set yet.
func NewClient() *Client {
	return &Client{}
}

// KeySizeBits reports the fixed group size in bits (always 3072).
func (c *Client) KeySizeBits() int {
	return KeyBytes * 8
}

// SetIdentity sets the username and password for this session. The
// username is trimmed and must be non-empty afterwards; the password is
// stored as given and must be non-empty. No username is applied by
// default, so callers that want DefaultUsername must pass it explicitly.
func (c *Client) SetIdentity(username, password string) error {
	if c.disposed {
		return pairingerr.New(pairingerr.ErrDisposed, "srp: client is disposed")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return pairingerr.New(pairingerr.ErrSRPValidation, "srp: username must not be empty")
	}
	if password == "" {
		return pairingerr.New(pairingerr.ErrSRPValidation, "srp: password must not be empty")
	}
	c.username = username
	c.password = password
	c.identitySet = true
	return nil
}

// SetSalt stores the server-provided salt. If the server's public key
// has already been set, this triggers ephemeral keypair generation.
func (c *Client) SetSalt(salt []byte) error {
	if c.disposed {
		return pairingerr.New(pairingerr.ErrDisposed, "srp: client is disposed")
	}
	if len(salt) == 0 {
		return pairingerr.New(pairingerr.ErrSRPValidation, "srp: salt must not be empty")
	}
	c.salt = append([]byte(nil), salt...)
	return c.maybeGenerateKeys()
}

// SetServerPublicKey stores the server's public key B, a 384-byte
// big-endian buffer satisfying 1 < B < N-1 and B mod N != 0. If the
// salt has already been set, this triggers ephemeral keypair
// generation.
func (c *Client) SetServerPublicKey(buf []byte) error {
	if c.disposed {
		return pairingerr.New(pairingerr.ErrDisposed, "srp: client is disposed")
	}
	if len(buf) != KeyBytes {
		return pairingerr.Newf(pairingerr.ErrSRPValidation, "srp: server public key must be %d bytes, got %d", KeyBytes, len(buf))
	}
	B := bigint.FromBuffer(buf)
	if err := validatePublicValue(B); err != nil {
		return err
	}
	c.B = B
	return c.maybeGenerateKeys()
}

// validatePublicValue checks 1 < v < N-1 and v mod N != 0, the range
// required of both B (checked here) and A (checked after generation in
// generateEphemeralKeypair).
func validatePublicValue(v *big.Int) error {
	one := big.NewInt(1)
	nMinus1 := new(big.Int).Sub(N, one)
	if v.Cmp(one) <= 0 || v.Cmp(nMinus1) >= 0 {
		return pairingerr.New(pairingerr.ErrSRPValidation, "srp: public value out of range")
	}
	if new(big.Int).Mod(v, N).Sign() == 0 {
		return pairingerr.New(pairingerr.ErrSRPValidation, "srp: public value is congruent to 0 mod N")
	}
	return nil
}

// maybeGenerateKeys generates (a, A) once both salt and B are present.
func (c *Client) maybeGenerateKeys() error {
	if c.keysGenerated || c.salt == nil || c.B == nil {
		return nil
	}
	a, A, err := generateEphemeralKeypair()
	if err != nil {
		return err
	}
	c.a = a
	c.A = A
	c.keysGenerated = true
	return nil
}

// generateEphemeralKeypair samples a uniformly random 256-bit a by
// rejection sampling: candidates with a == 0, a >= N, or A = g^a mod N
// outside (1, N-1) are discarded and resampled, never folded back into
// range with modulo. It aborts with pairingerr.ErrSRPExhausted after
// maxKeyGenAttempts rejections.
func generateEphemeralKeypair() (a, A *big.Int, err error) {
	zero := big.NewInt(0)
	for attempt := 0; attempt < maxKeyGenAttempts; attempt++ {
		buf := make([]byte, PrivateKeyBits/8)
		if _, err := rand.Read(buf); err != nil {
			return nil, nil, pairingerr.Wrap(pairingerr.ErrSRPValidation, "srp: failed to read random bytes", err)
		}
		candidate := bigint.FromBuffer(buf)
		if candidate.Cmp(zero) == 0 || candidate.Cmp(N) >= 0 {
			continue
		}
		pub := bigint.ModPow(g, candidate, N)
		if err := validatePublicValue(pub); err != nil {
			continue
		}
		return candidate, pub, nil
	}
	return nil, nil, pairingerr.Newf(pairingerr.ErrSRPExhausted, "srp: failed to generate ephemeral keypair after %d attempts", maxKeyGenAttempts)
}

// PublicKey returns PAD(A), the client's 384-byte public value, once
// the ephemeral keypair has been generated.
func (c *Client) PublicKey() ([]byte, error) {
	if c.disposed {
		return nil, pairingerr.New(pairingerr.ErrDisposed, "srp: client is disposed")
	}
	if !c.keysGenerated {
		return nil, pairingerr.New(pairingerr.ErrSRPValidation, "srp: ephemeral keypair not yet generated")
	}
	return srphash.Pad(c.A, KeyBytes), nil
}

// ComputeProof lazily computes the shared secret S and session key K
// if needed, and returns the 64-byte client proof M1.
func (c *Client) ComputeProof() ([]byte, error) {
	if c.disposed {
		return nil, pairingerr.New(pairingerr.ErrDisposed, "srp: client is disposed")
	}
	if err := c.ensureSessionKey(); err != nil {
		return nil, err
	}
	m1 := calculateM1(c.username, c.salt, c.A, c.B, c.K)
	return m1[:], nil
}

// SessionKey lazily computes S and K if needed, and returns K.
func (c *Client) SessionKey() ([]byte, error) {
	if c.disposed {
		return nil, pairingerr.New(pairingerr.ErrDisposed, "srp: client is disposed")
	}
	if err := c.ensureSessionKey(); err != nil {
		return nil, err
	}
	return append([]byte(nil), c.K...), nil
}

// ensureSessionKey computes S and K at most once, the first time
// either is needed.
func (c *Client) ensureSessionKey() error {
	if c.K != nil {
		return nil
	}
	if !c.identitySet {
		return pairingerr.New(pairingerr.ErrSRPValidation, "srp: identity not set")
	}
	if !c.keysGenerated {
		return pairingerr.New(pairingerr.ErrSRPValidation, "srp: salt and server public key required")
	}

	u := calculateU(c.A, c.B)
	x := calculateX(c.salt, c.username, c.password)

	// base = (B - k*g^x mod N) mod N. B - k*g^x is frequently negative;
	// big.Int.Mod (unlike Go's % operator) always returns the
	// Euclidean, non-negative residue for a positive modulus, so no
	// extra correction is needed after the call.
	gx := bigint.ModPow(g, x, N)
	kgx := new(big.Int).Mul(k, gx)
	kgx.Mod(kgx, N)
	base := new(big.Int).Sub(c.B, kgx)
	base.Mod(base, N)

	// exponent = a + u*x, full width, not reduced mod anything before
	// exponentiation — Apple's M1 variant depends on this.
	ux := new(big.Int).Mul(u, x)
	exponent := new(big.Int).Add(c.a, ux)

	c.S = bigint.ModPow(base, exponent, N)

	padded := srphash.Pad(c.S, KeyBytes)
	k512 := srphash.Hash(padded)
	c.K = k512[:]
	return nil
}

// IsReady reports whether salt, B, and the ephemeral keypair are all
// present and the client is not disposed.
func (c *Client) IsReady() bool {
	return !c.disposed && c.salt != nil && c.B != nil && c.keysGenerated
}

// HasSessionKey reports whether K has been computed and the client is
// not disposed.
func (c *Client) HasSessionKey() bool {
	return !c.disposed && c.K != nil
}

// Dispose zeroes sensitive buffers (K, a, salt) and clears the
// password, marking the client terminally disposed. It is idempotent
// and never fails, even when called on an already-disposed or
// never-used client.
func (c *Client) Dispose() {
	if c.disposed {
		return
	}
	c.password = ""
	if c.a != nil {
		c.a.SetInt64(0)
		c.a = nil
	}
	if c.S != nil {
		c.S.SetInt64(0)
		c.S = nil
	}
	zero(c.salt)
	c.salt = nil
	zero(c.K)
	c.K = nil
	c.B = nil
	c.A = nil
	c.disposed = true
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
