package compact

import "github.com/wizenheimer/blazecore/internal/bitvector"

// Enumerator is the common cursor surface over any of the three monotone
// sequence representations: move to an arbitrary index, step forward, or
// seek to the first value >= a lower bound.
type Enumerator interface {
	Move(i uint64) (uint64, uint64)
	Next() (uint64, uint64)
	NextGeq(lb uint64) (uint64, uint64)
	Size() uint64
}

// Write encodes values (strictly increasing, each < universe) onto b,
// picking whichever of Elias-Fano or ranked-bitvector is cheaper and
// prefixing a one-bit discriminator — unless universe == len(values), in
// which case the all-ones representation applies, costs zero bits, and no
// discriminator is written at all.
func Write(b *bitvector.Builder, values []uint64, universe uint64, p Params) {
	n := uint64(len(values))
	if n == universe {
		return
	}
	efCost := efCostBits(n, universe, p.EF)
	rankedCost := rankedCostBits(n, universe, p.Ranked)
	if efCost <= rankedCost {
		b.PushBack(false)
		writeEF(b, values, n, universe, p.EF)
	} else {
		b.PushBack(true)
		writeRankedBitvector(b, values, n, universe, p.Ranked)
	}
}

// NewEnumerator constructs an Enumerator over a sequence of n values drawn
// from [0, universe) written at bit offset base by Write.
func NewEnumerator(bv *bitvector.BitVector, base, n, universe uint64, p Params) Enumerator {
	if n == universe {
		return NewAllOnesEnumerator(n)
	}
	if bv.Get(base) {
		return NewRankedBitvectorEnumerator(bv, base+1, n, universe, p.Ranked)
	}
	return NewEFEnumerator(bv, base+1, n, universe, p.EF)
}
