// Package vbyte implements the universal integer codes used outside the
// fixed-size block codec: tight variable-byte (the per-list length header
// of a block posting list) and the gamma/delta bit codes. No other package
// calls the gamma/delta codes; only this package's tests exercise them.
package vbyte

import (
	"github.com/wizenheimer/blazecore/internal/bitvector"
	"github.com/wizenheimer/blazecore/internal/broadword"
)

// AppendTight writes n as a tight variable-byte integer onto out: 7 data
// bits per byte, low-endian, MSB-terminated (the final byte has its high
// bit set, earlier bytes do not).
func AppendTight(out []byte, n uint64) []byte {
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			out = append(out, b|0x80)
			return out
		}
		out = append(out, b)
	}
}

// DecodeTight reads a tight variable-byte integer starting at buf[0],
// returning the decoded value and the number of bytes consumed.
func DecodeTight(buf []byte) (uint64, int) {
	var n uint64
	var shift uint
	for i, b := range buf {
		n |= uint64(b&0x7f) << shift
		if b&0x80 != 0 {
			return n, i + 1
		}
		shift += 7
	}
	panic("vbyte: truncated tight variable-byte integer")
}

// WriteGamma appends the gamma code of n: the unary length of n+1 (that
// many 0-bits followed by a 1-bit) followed by the low bits of n+1 below
// its highest set bit.
func WriteGamma(b *bitvector.Builder, n uint64) {
	v := n + 1
	msb := highBit(v)
	b.ZeroExtend(uint64(msb))
	b.PushBack(true)
	if msb > 0 {
		b.AppendBits(v&(uint64(1)<<msb-1), uint64(msb))
	}
}

// WriteGammaNonzero specializes WriteGamma for n >= 1, matching the
// reference's separate entry point used when the caller already knows the
// value cannot be zero (no behavioral difference in this port).
func WriteGammaNonzero(b *bitvector.Builder, n uint64) {
	if n == 0 {
		panic("vbyte: WriteGammaNonzero requires n >= 1")
	}
	WriteGamma(b, n)
}

// ReadGamma decodes a gamma-coded value from e, returning n.
func ReadGamma(e *bitvector.Enumerator) uint64 {
	msb := e.SkipZeros()
	if msb == 0 {
		return 0
	}
	low := e.Take(msb)
	return (uint64(1)<<msb | low) - 1
}

// WriteDelta appends the delta code of n: a gamma-coded length prefix
// (msb(n+1)) followed by the remaining low bits written directly (not
// gamma-coded again).
func WriteDelta(b *bitvector.Builder, n uint64) {
	v := n + 1
	msb := highBit(v)
	WriteGamma(b, uint64(msb))
	if msb > 0 {
		b.AppendBits(v&(uint64(1)<<msb-1), uint64(msb))
	}
}

// ReadDelta decodes a delta-coded value from e.
func ReadDelta(e *bitvector.Enumerator) uint64 {
	msb := ReadGamma(e)
	if msb == 0 {
		return 0
	}
	low := e.Take(msb)
	return (uint64(1)<<msb | low) - 1
}

// highBit returns the position of the highest set bit of v (v must be >= 1).
func highBit(v uint64) uint {
	p, _ := broadword.Msb(v)
	return uint(p)
}
