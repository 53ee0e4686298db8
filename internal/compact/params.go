// Package compact implements the monotone-sequence encoding dispatcher:
// compact Elias-Fano, compact ranked bitvector, and the zero-payload
// all-ones representation, chosen per sequence by comparing their bit
// costs the way the reference picks the cheapest of the three.
package compact

import "github.com/wizenheimer/blazecore/internal/broadword"

// EFParams controls Elias-Fano pointer-table sampling density.
type EFParams struct {
	LogSampling0 uint64 // pointers0: one sample per 2^LogSampling0 zero-bits
	LogSampling1 uint64 // pointers1: one sample per 2^LogSampling1 one-bits
}

// RankedParams controls ranked-bitvector sampling density.
type RankedParams struct {
	LogSamplingPos uint64 // position samples: one per 2^LogSamplingPos one-bits
	BlockBits      uint64 // rank samples: one per BlockBits bits of the bitmap
}

// Params bundles both representations' tuning knobs for the dispatcher.
type Params struct {
	EF     EFParams
	Ranked RankedParams
}

// DefaultParams mirrors the reference's sampling defaults.
func DefaultParams() Params {
	return Params{
		EF:     EFParams{LogSampling0: 10, LogSampling1: 8},
		Ranked: RankedParams{LogSamplingPos: 8, BlockBits: 512},
	}
}

func lowerBitsFor(n, universe uint64) uint64 {
	if universe > n && n > 0 {
		p, _ := broadword.Msb(universe / n)
		return p
	}
	return 0
}

// efCostBits returns the bit cost of the Elias-Fano body (discriminator
// bit not included).
func efCostBits(n, universe uint64, p EFParams) uint64 {
	lowerBits := lowerBitsFor(n, universe)
	higherBitsLength := n + (universe >> lowerBits) + 2
	pointerWidth := broadword.CeilLog2(higherBitsLength)
	pointers0Count := (higherBitsLength - n) >> p.LogSampling0
	pointers1Count := n >> p.LogSampling1
	return pointers0Count*pointerWidth + pointers1Count*pointerWidth + higherBitsLength + n*lowerBits
}

// rankedCostBits returns the bit cost of the ranked-bitvector body
// (discriminator bit not included).
func rankedCostBits(n, universe uint64, p RankedParams) uint64 {
	rankSamples := universe/p.BlockBits + 2
	rankWidth := broadword.CeilLog2(n + 1)
	posSamples := n >> p.LogSamplingPos
	posWidth := broadword.CeilLog2(universe)
	if universe == 0 {
		posWidth = 0
	}
	return universe + rankSamples*rankWidth + posSamples*posWidth
}
