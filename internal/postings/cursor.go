package postings

import (
	"encoding/binary"

	"github.com/wizenheimer/blazecore/internal/blockcodec"
	"github.com/wizenheimer/blazecore/internal/vbyte"
)

// Cursor walks one term's block posting list, decoding blocks lazily:
// docid blocks are decoded on the block transition, frequency blocks only
// on the first payload()/freq() call for that block.
type Cursor struct {
	data     []byte
	n        uint64
	sentinel uint64 // N, the collection's document count
	nb       uint64

	maxesOff      int
	endpointsOff  int
	blockDataOff  int

	block     uint64
	blockDocs []uint32
	freqsOff  int // byte offset (within data) where this block's freq bytes start
	freqs     []uint32
	freqsDone bool

	pos   uint64 // position within the current block
	value uint64 // current absolute docid
}

// NewCursor constructs a Cursor over the byte region of a single term's
// posting list. sentinel is the collection's document count N, returned
// by Value() once the cursor has advanced past the last posting.
func NewCursor(data []byte, sentinel uint64) *Cursor {
	n, consumed := vbyte.DecodeTight(data)
	nb := numBlocks(n)
	c := &Cursor{
		data:         data,
		n:            n,
		sentinel:     sentinel,
		nb:           nb,
		maxesOff:     consumed,
		endpointsOff: consumed + int(nb)*4,
	}
	endpointsCount := 0
	if nb > 1 {
		endpointsCount = int(nb - 1)
	}
	c.blockDataOff = c.endpointsOff + endpointsCount*4
	c.decodeBlock(0)
	return c
}

func (c *Cursor) readMax(b uint64) uint32 {
	return binary.LittleEndian.Uint32(c.data[c.maxesOff+int(b)*4:])
}

func (c *Cursor) blockByteStart(b uint64) int {
	if b == 0 {
		return c.blockDataOff
	}
	return c.blockDataOff + int(binary.LittleEndian.Uint32(c.data[c.endpointsOff+int(b-1)*4:]))
}

func (c *Cursor) decodeBlock(b uint64) {
	start, end := blockRange(b, c.n)
	count := int(end - start)

	var base uint32
	if b > 0 {
		base = c.readMax(b-1) + 1
	}
	budget := c.readMax(b) - base - uint32(count-1)
	universe := budget + 1

	blockStart := c.blockByteStart(b)
	buf := c.data[blockStart:]
	docs := make([]uint32, count)
	consumed := blockcodec.Decode(buf, docs, universe, count)

	docs[0] += base
	for j := 1; j < count; j++ {
		docs[j] += docs[j-1] + 1
	}

	c.block = b
	c.blockDocs = docs
	c.freqsOff = blockStart + consumed
	c.freqs = nil
	c.freqsDone = false
	c.pos = 0
	c.value = uint64(docs[0])
}

func (c *Cursor) decodeFreqsBlock() {
	count := len(c.blockDocs)
	freqs := make([]uint32, count)
	pos := c.freqsOff
	for i := 0; i < count; i++ {
		v, consumed := vbyte.DecodeTight(c.data[pos:])
		freqs[i] = uint32(v) + 1
		pos += consumed
	}
	c.freqs = freqs
	c.freqsDone = true
}

// Value returns the current docid, or the sentinel N once exhausted.
func (c *Cursor) Value() uint64 { return c.value }

// Size returns n, the number of postings in this list.
func (c *Cursor) Size() uint64 { return c.n }

// NumBlocks returns ceil(n / BlockSize).
func (c *Cursor) NumBlocks() uint64 { return c.nb }

// Sentinel returns N.
func (c *Cursor) Sentinel() uint64 { return c.sentinel }

// Advance steps to the next posting, decoding the next block if the
// current one is exhausted. Once past the final posting, Value clamps to
// the sentinel.
func (c *Cursor) Advance() uint64 {
	if c.pos+1 < uint64(len(c.blockDocs)) {
		c.pos++
		c.value = uint64(c.blockDocs[c.pos])
		return c.value
	}
	if c.block+1 >= c.nb {
		c.block = c.nb
		c.value = c.sentinel
		return c.value
	}
	c.decodeBlock(c.block + 1)
	return c.value
}

// AdvanceToGeq seeks to the first posting with docid >= lb.
func (c *Cursor) AdvanceToGeq(lb uint64) uint64 {
	if lb <= c.value {
		return c.value
	}
	if lb > uint64(c.readMax(c.block)) {
		b := c.block + 1
		for b < c.nb && uint64(c.readMax(b)) < lb {
			b++
		}
		if b >= c.nb {
			c.block = c.nb
			c.value = c.sentinel
			return c.value
		}
		c.decodeBlock(b)
	}
	for c.pos < uint64(len(c.blockDocs)) && uint64(c.blockDocs[c.pos]) < lb {
		c.pos++
	}
	c.value = uint64(c.blockDocs[c.pos])
	return c.value
}

// AdvanceToPosition seeks to the p-th posting, counted across the whole
// list.
func (c *Cursor) AdvanceToPosition(p uint64) uint64 {
	b := p / BlockSize
	if b != c.block {
		c.decodeBlock(b)
	}
	c.pos = p - b*BlockSize
	c.value = uint64(c.blockDocs[c.pos])
	return c.value
}

// Freq (a.k.a. payload) returns the frequency of the current posting,
// decoding this block's frequency bytes on first use.
func (c *Cursor) Freq() uint32 {
	if !c.freqsDone {
		c.decodeFreqsBlock()
	}
	return c.freqs[c.pos]
}

// Payload is an alias for Freq, matching the generic cursor protocol name.
func (c *Cursor) Payload() uint32 { return c.Freq() }
