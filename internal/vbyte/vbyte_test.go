package vbyte

import (
	"testing"

	"github.com/wizenheimer/blazecore/internal/bitvector"
)

func TestTightRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16384, 1 << 40}
	var buf []byte
	for _, v := range values {
		buf = AppendTight(buf, v)
	}
	for _, want := range values {
		got, n := DecodeTight(buf)
		if got != want {
			t.Fatalf("DecodeTight = %d, want %d", got, want)
		}
		buf = buf[n:]
	}
}

func gammaRoundTrip(t *testing.T, values []uint64) {
	t.Helper()
	b := bitvector.NewBuilder()
	for _, v := range values {
		WriteGamma(b, v)
	}
	b.ZeroExtend(128)
	bv := b.Freeze()

	e := bitvector.NewEnumerator(bv, 0)
	for _, want := range values {
		if got := ReadGamma(e); got != want {
			t.Errorf("ReadGamma = %d, want %d", got, want)
		}
	}
}

func TestGammaRoundTrip(t *testing.T) {
	gammaRoundTrip(t, []uint64{0, 1, 2, 3, 7, 8, 255, 256, 1000000})
}

func deltaRoundTrip(t *testing.T, values []uint64) {
	t.Helper()
	b := bitvector.NewBuilder()
	for _, v := range values {
		WriteDelta(b, v)
	}
	b.ZeroExtend(128)
	bv := b.Freeze()

	e := bitvector.NewEnumerator(bv, 0)
	for _, want := range values {
		if got := ReadDelta(e); got != want {
			t.Errorf("ReadDelta = %d, want %d", got, want)
		}
	}
}

func TestDeltaRoundTrip(t *testing.T) {
	deltaRoundTrip(t, []uint64{0, 1, 2, 3, 7, 8, 255, 256, 1000000, 1 << 30})
}

func TestWriteGammaNonzeroPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for n=0")
		}
	}()
	b := bitvector.NewBuilder()
	WriteGammaNonzero(b, 0)
}
