// ═══════════════════════════════════════════════════════════════════════════════
// BLOCK POSTING LIST LAYOUT
// ═══════════════════════════════════════════════════════════════════════════════
// One term's on-disk posting list, laid out so a cursor can skip whole
// blocks before decoding any of them:
//
//	[n:vbyte] [max_0 max_1 ... max_{nb-1}] [end_0 end_1 ... end_{nb-2}] [block_0] [block_1] ... [block_{nb-1}]
//	           \-- block-max docids --/     \-- block byte endpoints --/ \----- block-encoded bytes -----/
//
// Each block_i holds BlockSize (or fewer, in the final block) postings: a
// docid run coded by blockcodec (bit-packed against a universe derived
// algebraically from max_i and max_{i-1}, no extra metadata needed, when
// the block is full; variable-byte when it is a short final block),
// followed by that many
// frequencies, coded one at a time.
//
// AdvanceToGeq(lb) uses the block-max array to find, without touching any
// block bytes, the first block that could possibly contain lb — only that
// block (and nothing before it) ever gets decoded.
// ═══════════════════════════════════════════════════════════════════════════════
package postings

import (
	"encoding/binary"

	"github.com/wizenheimer/blazecore/internal/blockcodec"
	"github.com/wizenheimer/blazecore/internal/vbyte"
)

// BlockSize is the number of postings per block (B).
const BlockSize = blockcodec.BlockSize

func numBlocks(n uint64) uint64 {
	return (n + BlockSize - 1) / BlockSize
}

// Write encodes one term's posting list (strictly increasing docids, each
// with a frequency >= 1) into a fresh byte slice: a tight-variable-byte
// length header, the block-max docid array, the block-byte-endpoint
// array, then the concatenated per-block bytes.
//
// Each full block's docid gaps are bit-packed by blockcodec using a
// universe derived algebraically from the block-max array, per the
// component design, so no extra metadata is needed to decode them; a
// short final block is variable-byte coded by blockcodec instead. Frequencies have
// no such natural per-block bound, so they are tight-variable-byte coded
// one value at a time instead of bit-packed.
func Write(docs []uint32, freqs []uint32) []byte {
	n := uint64(len(docs))
	nb := numBlocks(n)

	out := vbyte.AppendTight(nil, n)

	maxes := make([]uint32, nb)
	for b := uint64(0); b < nb; b++ {
		_, end := blockRange(b, n)
		maxes[b] = docs[end-1]
	}

	var blockData []byte
	endpoints := make([]uint32, 0, nb)
	var prevMax int64 = -1
	for b := uint64(0); b < nb; b++ {
		start, end := blockRange(b, n)
		count := end - start

		base := uint32(prevMax + 1)
		vals := make([]uint32, count)
		vals[0] = docs[start] - base
		for j := uint64(1); j < count; j++ {
			vals[j] = docs[start+j] - docs[start+j-1] - 1
		}
		budget := maxes[b] - base - uint32(count-1)
		universe := budget + 1
		blockData = blockcodec.Encode(vals, universe, int(count), blockData)

		for j := uint64(0); j < count; j++ {
			blockData = vbyte.AppendTight(blockData, uint64(freqs[start+j]-1))
		}

		if b+1 < nb {
			endpoints = append(endpoints, uint32(len(blockData)))
		}
		prevMax = int64(maxes[b])
	}

	for _, m := range maxes {
		out = appendU32(out, m)
	}
	for _, e := range endpoints {
		out = appendU32(out, e)
	}
	out = append(out, blockData...)
	return out
}

func blockRange(b, n uint64) (uint64, uint64) {
	start := b * BlockSize
	end := start + BlockSize
	if end > n {
		end = n
	}
	return start, end
}

func appendU32(out []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(out, buf[:]...)
}
