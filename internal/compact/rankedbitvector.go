package compact

import (
	"github.com/wizenheimer/blazecore/internal/bitvector"
	"github.com/wizenheimer/blazecore/internal/broadword"
)

// writeRankedBitvector lays out: the explicit universe-bit bitmap (one bit
// set per value), rank1 samples (cumulative ones at each block boundary),
// then position samples (every 2^LogSamplingPos-th one-bit's position).
func writeRankedBitvector(b *bitvector.Builder, values []uint64, n, universe uint64, p RankedParams) {
	bitmap := bitvector.NewBuilder()
	bitmap.ZeroExtend(universe)
	for _, v := range values {
		bitmap.SetBits(v, 1, 1)
	}

	rankWidth := broadword.CeilLog2(n + 1)
	rankSamples := universe/p.BlockBits + 2
	posWidth := broadword.CeilLog2(universe)
	posSamples := n >> p.LogSamplingPos
	step := uint64(1) << p.LogSamplingPos

	b.Append(bitmap)

	frozen := bitmap.Freeze()
	var rank uint64
	for block := uint64(0); block < rankSamples; block++ {
		b.AppendBits(rank, rankWidth)
		blockStart := block * p.BlockBits
		blockEnd := blockStart + p.BlockBits
		if blockEnd > universe {
			blockEnd = universe
		}
		if blockStart < universe {
			rank += popcountRange(frozen, blockStart, blockEnd)
		}
	}

	var onesSoFar uint64
	positions := make([]uint64, posSamples)
	for _, v := range values {
		if onesSoFar%step == 0 {
			k := onesSoFar / step
			if k < posSamples {
				positions[k] = v
			}
		}
		onesSoFar++
	}
	for _, pos := range positions {
		b.AppendBits(pos, posWidth)
	}
}

func popcountRange(bv *bitvector.BitVector, start, end uint64) uint64 {
	var count uint64
	pos := start
	for pos < end {
		width := end - pos
		if width > 64 {
			width = 64
		}
		count += broadword.Popcount(bv.GetBits(pos, width))
		pos += width
	}
	return count
}

// RankedBitvectorEnumerator is a stateful cursor over a compact ranked
// bitvector sequence.
type RankedBitvectorEnumerator struct {
	bv       *bitvector.BitVector
	n        uint64
	universe uint64
	bitmapOff,
	rankOff,
	posOff uint64
	rankWidth, posWidth uint64
	blockBits           uint64
	posCount            uint64
	step                uint64

	i     uint64
	v     uint64
	unary *bitvector.UnaryEnumerator
}

// NewRankedBitvectorEnumerator constructs an enumerator over the sequence
// written at bit offset base.
func NewRankedBitvectorEnumerator(bv *bitvector.BitVector, base, n, universe uint64, p RankedParams) *RankedBitvectorEnumerator {
	rankWidth := broadword.CeilLog2(n + 1)
	posWidth := broadword.CeilLog2(universe)
	posCount := n >> p.LogSamplingPos

	e := &RankedBitvectorEnumerator{
		bv:        bv,
		n:         n,
		universe:  universe,
		bitmapOff: base,
		rankOff:   base + universe,
		rankWidth: rankWidth,
		posWidth:  posWidth,
		blockBits: p.BlockBits,
		posCount:  posCount,
		step:      uint64(1) << p.LogSamplingPos,
	}
	rankSamples := universe/p.BlockBits + 2
	e.posOff = e.rankOff + rankSamples*rankWidth
	e.Move(0)
	return e
}

// Size returns n.
func (e *RankedBitvectorEnumerator) Size() uint64 { return e.n }

func (e *RankedBitvectorEnumerator) readPos(k uint64) uint64 {
	return e.bv.GetBits(e.posOff+k*e.posWidth, e.posWidth)
}

func (e *RankedBitvectorEnumerator) rankAt(pos uint64) uint64 {
	block := pos / e.blockBits
	base := e.bv.GetBits(e.rankOff+block*e.rankWidth, e.rankWidth)
	return base + popcountRange(e.bv, e.bitmapOff+block*e.blockBits, e.bitmapOff+pos)
}

// Move positions the enumerator at index i and returns (i, value(i)).
func (e *RankedBitvectorEnumerator) Move(i uint64) (uint64, uint64) {
	if i >= e.n {
		e.i, e.v, e.unary = e.n, e.universe, nil
		return e.i, e.v
	}
	var ue *bitvector.UnaryEnumerator
	var count uint64
	if e.posCount == 0 {
		ue = bitvector.NewUnaryEnumerator(e.bv, e.bitmapOff)
		count = i + 1
	} else {
		k := i / e.step
		if k >= e.posCount {
			k = e.posCount - 1
		}
		ue = bitvector.NewUnaryEnumerator(e.bv, e.bitmapOff+e.readPos(k))
		count = i - k*e.step + 1
	}
	pos := ue.Skip(count) - e.bitmapOff
	e.unary = ue
	e.i = i
	e.v = pos
	return e.i, e.v
}

// Next advances to index i+1 and returns (i+1, value(i+1)).
func (e *RankedBitvectorEnumerator) Next() (uint64, uint64) {
	if e.unary == nil || e.i >= e.n {
		return e.Move(e.i + 1)
	}
	ni := e.i + 1
	if ni >= e.n {
		e.i, e.v, e.unary = e.n, e.universe, nil
		return e.i, e.v
	}
	pos := e.unary.Next() - e.bitmapOff
	e.i, e.v = ni, pos
	return e.i, e.v
}

// NextGeq positions the enumerator at the first index i with value(i) >= lb,
// using the rank samples to land in the right word and popcount to finish,
// per the component design.
func (e *RankedBitvectorEnumerator) NextGeq(lb uint64) (uint64, uint64) {
	if lb >= e.universe {
		e.i, e.v, e.unary = e.n, e.universe, nil
		return e.i, e.v
	}
	pos := lb
	if !e.bv.Get(e.bitmapOff + pos) {
		pos = e.bv.Successor1(e.bitmapOff+pos) - e.bitmapOff
	}
	if pos >= e.universe {
		e.i, e.v, e.unary = e.n, e.universe, nil
		return e.i, e.v
	}
	i := e.rankAt(pos)
	e.i, e.v = i, pos
	e.unary = bitvector.NewUnaryEnumerator(e.bv, e.bitmapOff+pos+1)
	return e.i, e.v
}
