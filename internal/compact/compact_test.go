package compact

import (
	"testing"

	"github.com/wizenheimer/blazecore/internal/bitvector"
)

func roundTrip(t *testing.T, values []uint64, universe uint64, p Params) Enumerator {
	t.Helper()
	b := bitvector.NewBuilder()
	Write(b, values, universe, p)
	b.ZeroExtend(128)
	bv := b.Freeze()
	return NewEnumerator(bv, 0, uint64(len(values)), universe, p)
}

func checkSequence(t *testing.T, values []uint64, universe uint64, p Params) {
	t.Helper()
	enum := roundTrip(t, values, universe, p)

	if enum.Size() != uint64(len(values)) {
		t.Fatalf("Size() = %d, want %d", enum.Size(), len(values))
	}
	for i, want := range values {
		if _, v := enum.Move(uint64(i)); v != want {
			t.Errorf("Move(%d) = %d, want %d", i, v, want)
		}
	}

	// A fresh enumerator already sits on index 0; Next moves to index 1.
	enum = roundTrip(t, values, universe, p)
	for i, want := range values {
		var v uint64
		if i == 0 {
			_, v = enum.Move(0)
		} else {
			_, v = enum.Next()
		}
		if v != want {
			t.Errorf("Next() = %d, want %d", v, want)
		}
	}

	for _, want := range values {
		enum := roundTrip(t, values, universe, p)
		_, v := enum.NextGeq(want)
		if v != want {
			t.Errorf("NextGeq(%d) = %d, want %d", want, v, want)
		}
	}
}

func TestElasticFanoChosenForSparseSequence(t *testing.T) {
	// Sparse relative to a huge universe: EF should win the cost comparison.
	values := []uint64{10, 5000, 1000000, 5000000, 9999999}
	checkSequence(t, values, 10000000, DefaultParams())
}

func TestRankedBitvectorChosenForDenseSequence(t *testing.T) {
	// Dense relative to a small universe: ranked bitvector should win.
	var values []uint64
	for i := uint64(0); i < 90; i++ {
		values = append(values, i)
	}
	checkSequence(t, values, 100, DefaultParams())
}

func TestAllOnesSequence(t *testing.T) {
	values := []uint64{0, 1, 2, 3, 4}
	checkSequence(t, values, uint64(len(values)), DefaultParams())
}
