package srp

import (
	"bytes"
	"crypto/rand"
	"errors"
	"math/big"
	"testing"

	"github.com/harsha509/ios-pair-core/internal/bigint"
	"github.com/harsha509/ios-pair-core/internal/srphash"
	"github.com/harsha509/ios-pair-core/pairingerr"
)

// referenceServerStep computes a server's salt, verifier v, private b
// and public B, so tests can derive the server-side S/K/M1 from the
// client's A themselves and check the client against an independently
// derived value without depending on the client's own code paths for
// the server side.
func referenceServerStep(t *testing.T, username, password string) (salt []byte, B *big.Int, b *big.Int, v *big.Int) {
	t.Helper()
	salt = make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		t.Fatal(err)
	}
	x := calculateX(salt, username, password)
	v = bigint.ModPow(g, x, N)

	bBuf := make([]byte, 32)
	if _, err := rand.Read(bBuf); err != nil {
		t.Fatal(err)
	}
	b = bigint.FromBuffer(bBuf)

	kv := new(big.Int).Mul(k, v)
	kv.Mod(kv, N)
	gb := bigint.ModPow(g, b, N)
	B = new(big.Int).Add(kv, gb)
	B.Mod(B, N)
	return salt, B, b, v
}

func TestFullHandshakeAgreesWithReferenceServer(t *testing.T) {
	username := "Pair-Setup"
	password := "swordfish"

	salt, B, b, v := referenceServerStep(t, username, password)

	c := NewClient()
	if err := c.SetIdentity(username, password); err != nil {
		t.Fatal(err)
	}
	if err := c.SetSalt(salt); err != nil {
		t.Fatal(err)
	}
	Bbuf, err := bigint.ToBuffer(B, KeyBytes)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetServerPublicKey(Bbuf); err != nil {
		t.Fatal(err)
	}

	pub, err := c.PublicKey()
	if err != nil {
		t.Fatal(err)
	}
	if len(pub) != KeyBytes {
		t.Fatalf("PublicKey length = %d, want %d", len(pub), KeyBytes)
	}
	A := bigint.FromBuffer(pub)
	if err := validatePublicValue(A); err != nil {
		t.Fatalf("generated A failed range check: %v", err)
	}

	// Server-side shared secret: S = (A * v^u)^b mod N.
	u := calculateU(A, B)
	vu := bigint.ModPow(v, u, N)
	avu := new(big.Int).Mul(A, vu)
	avu.Mod(avu, N)
	serverS := bigint.ModPow(avu, b, N)
	serverK := srphash.Hash(srphash.Pad(serverS, KeyBytes))

	clientK, err := c.SessionKey()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(clientK, serverK[:]) {
		t.Fatalf("client K = %x, server K = %x: shared secret disagreement", clientK, serverK)
	}

	m1, err := c.ComputeProof()
	if err != nil {
		t.Fatal(err)
	}
	if len(m1) != srphash.Size {
		t.Fatalf("M1 length = %d, want %d", len(m1), srphash.Size)
	}
	wantM1 := calculateM1(username, salt, A, B, serverK[:])
	if !bytes.Equal(m1, wantM1[:]) {
		t.Fatal("client M1 does not match independently computed M1")
	}
}

func TestPublicKeyInvariant(t *testing.T) {
	c := NewClient()
	if err := c.SetIdentity("Pair-Setup", "hunter2"); err != nil {
		t.Fatal(err)
	}
	salt, B, _, _ := referenceServerStep(t, "Pair-Setup", "hunter2")
	if err := c.SetSalt(salt); err != nil {
		t.Fatal(err)
	}
	Bbuf, _ := bigint.ToBuffer(B, KeyBytes)
	if err := c.SetServerPublicKey(Bbuf); err != nil {
		t.Fatal(err)
	}
	pub, err := c.PublicKey()
	if err != nil {
		t.Fatal(err)
	}
	if len(pub) != KeyBytes {
		t.Fatalf("PublicKey length = %d, want %d", len(pub), KeyBytes)
	}
	A := bigint.FromBuffer(pub)
	one := big.NewInt(1)
	nMinus1 := new(big.Int).Sub(N, one)
	if A.Cmp(one) <= 0 || A.Cmp(nMinus1) >= 0 {
		t.Fatalf("A out of range (1, N-1)")
	}
}

func TestOrderOfSaltAndBDoesNotMatter(t *testing.T) {
	salt, B, _, _ := referenceServerStep(t, "Pair-Setup", "pw")
	Bbuf, _ := bigint.ToBuffer(B, KeyBytes)

	saltFirst := NewClient()
	_ = saltFirst.SetIdentity("Pair-Setup", "pw")
	_ = saltFirst.SetSalt(salt)
	if saltFirst.IsReady() {
		t.Fatal("should not be ready with only salt set")
	}
	_ = saltFirst.SetServerPublicKey(Bbuf)
	if !saltFirst.IsReady() {
		t.Fatal("should be ready once both salt and B are set")
	}

	bFirst := NewClient()
	_ = bFirst.SetIdentity("Pair-Setup", "pw")
	_ = bFirst.SetServerPublicKey(Bbuf)
	if bFirst.IsReady() {
		t.Fatal("should not be ready with only B set")
	}
	_ = bFirst.SetSalt(salt)
	if !bFirst.IsReady() {
		t.Fatal("should be ready once both salt and B are set")
	}
}

func TestRejectBadServerPublicKey(t *testing.T) {
	bad := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		new(big.Int).Sub(N, big.NewInt(1)),
		N,
	}
	for _, B := range bad {
		c := NewClient()
		buf := make([]byte, KeyBytes)
		Bbytes := B.Bytes()
		copy(buf[KeyBytes-len(Bbytes):], Bbytes)
		err := c.SetServerPublicKey(buf)
		if err == nil {
			t.Fatalf("expected validation error for B=%s", B.String())
		}
		if !errors.Is(err, pairingerr.ErrSRPValidation) {
			t.Fatalf("expected ErrSRPValidation for B=%s, got %v", B.String(), err)
		}
	}
}

func TestSetServerPublicKeyWrongSize(t *testing.T) {
	c := NewClient()
	if err := c.SetServerPublicKey(make([]byte, 10)); err == nil {
		t.Fatal("expected error for wrong-size server public key")
	}
}

func TestUseAfterDispose(t *testing.T) {
	salt, B, _, _ := referenceServerStep(t, "Pair-Setup", "pw")
	Bbuf, _ := bigint.ToBuffer(B, KeyBytes)

	c := NewClient()
	_ = c.SetIdentity("Pair-Setup", "pw")
	_ = c.SetSalt(salt)
	_ = c.SetServerPublicKey(Bbuf)
	_, _ = c.ComputeProof()

	c.Dispose()

	if err := c.SetIdentity("x", "y"); !errors.Is(err, pairingerr.ErrDisposed) {
		t.Fatalf("SetIdentity after dispose: got %v, want ErrDisposed", err)
	}
	if err := c.SetSalt([]byte("s")); !errors.Is(err, pairingerr.ErrDisposed) {
		t.Fatalf("SetSalt after dispose: got %v, want ErrDisposed", err)
	}
	if err := c.SetServerPublicKey(make([]byte, KeyBytes)); !errors.Is(err, pairingerr.ErrDisposed) {
		t.Fatalf("SetServerPublicKey after dispose: got %v, want ErrDisposed", err)
	}
	if _, err := c.PublicKey(); !errors.Is(err, pairingerr.ErrDisposed) {
		t.Fatalf("PublicKey after dispose: got %v, want ErrDisposed", err)
	}
	if _, err := c.ComputeProof(); !errors.Is(err, pairingerr.ErrDisposed) {
		t.Fatalf("ComputeProof after dispose: got %v, want ErrDisposed", err)
	}
	if _, err := c.SessionKey(); !errors.Is(err, pairingerr.ErrDisposed) {
		t.Fatalf("SessionKey after dispose: got %v, want ErrDisposed", err)
	}

	// isReady/hasSessionKey never error; they just report false once disposed.
	if c.IsReady() {
		t.Fatal("IsReady should be false after dispose")
	}
	if c.HasSessionKey() {
		t.Fatal("HasSessionKey should be false after dispose")
	}
}

func TestDisposeTwiceIsNoop(t *testing.T) {
	c := NewClient()
	_ = c.SetIdentity("Pair-Setup", "pw")
	c.Dispose()
	c.Dispose() // must not panic
}

func TestComputeProofMissingPrerequisites(t *testing.T) {
	c := NewClient()
	if _, err := c.ComputeProof(); !errors.Is(err, pairingerr.ErrSRPValidation) {
		t.Fatalf("expected ErrSRPValidation with no identity/salt/B, got %v", err)
	}

	c2 := NewClient()
	_ = c2.SetIdentity("Pair-Setup", "pw")
	if _, err := c2.ComputeProof(); !errors.Is(err, pairingerr.ErrSRPValidation) {
		t.Fatalf("expected ErrSRPValidation with identity only, got %v", err)
	}
}

func TestSetIdentityEmptyArgsRejected(t *testing.T) {
	c := NewClient()
	if err := c.SetIdentity("", "pw"); err == nil {
		t.Fatal("expected error for empty username")
	}
	if err := c.SetIdentity("user", ""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestSetSaltEmptyRejected(t *testing.T) {
	c := NewClient()
	if err := c.SetSalt(nil); err == nil {
		t.Fatal("expected error for empty salt")
	}
}

func TestKeySizeBits(t *testing.T) {
	c := NewClient()
	if got := c.KeySizeBits(); got != 3072 {
		t.Fatalf("KeySizeBits() = %d, want 3072", got)
	}
}
