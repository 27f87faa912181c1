package bigint

import (
	"math/big"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		n     int64
		width int
	}{
		{0, 1},
		{0, 16},
		{1, 1},
		{255, 1},
		{256, 2},
		{65535, 2},
		{1 << 20, 4},
	}
	for _, c := range cases {
		n := big.NewInt(c.n)
		buf, err := ToBuffer(n, c.width)
		if err != nil {
			t.Fatalf("ToBuffer(%d, %d): %v", c.n, c.width, err)
		}
		if len(buf) != c.width {
			t.Fatalf("ToBuffer(%d, %d): got %d bytes, want %d", c.n, c.width, len(buf), c.width)
		}
		got := FromBuffer(buf)
		if got.Cmp(n) != 0 {
			t.Fatalf("FromBuffer(ToBuffer(%d)) = %s, want %d", c.n, got.String(), c.n)
		}
	}
}

func TestToBufferOverflow(t *testing.T) {
	n := big.NewInt(256)
	if _, err := ToBuffer(n, 1); err == nil {
		t.Fatal("expected overflow error for 256 into 1 byte")
	}
}

func TestToBufferNegative(t *testing.T) {
	n := big.NewInt(-1)
	if _, err := ToBuffer(n, 4); err == nil {
		t.Fatal("expected error encoding negative value")
	}
}

func TestToBufferPadding(t *testing.T) {
	n := big.NewInt(1)
	buf, err := ToBuffer(n, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0, 0, 0, 1}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("ToBuffer(1,4) = %v, want %v", buf, want)
		}
	}
}

func TestModPow(t *testing.T) {
	base := big.NewInt(5)
	exp := big.NewInt(117)
	mod := big.NewInt(19)
	got := ModPow(base, exp, mod)
	want := new(big.Int).Exp(base, exp, mod)
	if got.Cmp(want) != 0 {
		t.Fatalf("ModPow mismatch: got %s want %s", got, want)
	}
}
