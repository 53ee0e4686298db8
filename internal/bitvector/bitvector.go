package bitvector

import "github.com/wizenheimer/blazecore/internal/broadword"

// BitVector is an immutable, word-aligned bit sequence produced by
// Builder.Freeze. It supports random single-bit and multi-bit reads plus
// the predecessor/successor rank-adjacent primitives used by the
// Elias-Fano and ranked-bitvector decoders.
type BitVector struct {
	words []uint64
	size  uint64
}

// FromWords wraps an already-built word slice (e.g. decoded from an
// on-disk index) as a BitVector of the given bit size.
func FromWords(words []uint64, size uint64) *BitVector {
	return &BitVector{words: words, size: size}
}

// Size returns the number of bits in the vector.
func (v *BitVector) Size() uint64 { return v.size }

// Words returns the backing word slice.
func (v *BitVector) Words() []uint64 { return v.words }

// Get returns the bit at pos.
func (v *BitVector) Get(pos uint64) bool {
	word := pos / 64
	shift := pos % 64
	return (v.words[word]>>shift)&1 != 0
}

// GetBits returns len bits starting at pos, 0 <= len <= 64, possibly
// straddling a word boundary.
func (v *BitVector) GetBits(pos uint64, length uint64) uint64 {
	if length == 0 {
		return 0
	}
	word := pos / 64
	shift := pos % 64
	mask := ^uint64(0)
	if length < 64 {
		mask = uint64(1)<<length - 1
	}
	if shift+length <= 64 {
		return (v.words[word] >> shift) & mask
	}
	return (v.words[word] >> shift) | (v.words[word+1] << (64 - shift) & mask)
}

// GetWord returns the 64 bits starting at pos, as if the vector were
// zero-padded past its logical end.
func (v *BitVector) GetWord(pos uint64) uint64 {
	word := pos / 64
	shift := pos % 64
	w := v.words[word] >> shift
	if shift != 0 && word+1 < uint64(len(v.words)) {
		w |= v.words[word+1] << (64 - shift)
	}
	return w
}

// Predecessor0 returns the position of the nearest 0-bit at or before pos.
func (v *BitVector) Predecessor0(pos uint64) uint64 {
	block := pos / 64
	shift := 64 - pos%64 - 1
	word := ^v.words[block]
	word = (word << shift) >> shift
	for {
		if p, ok := broadword.Msb(word); ok {
			return block*64 + p
		}
		block--
		word = ^v.words[block]
	}
}

// Successor0 returns the position of the nearest 0-bit at or after pos.
func (v *BitVector) Successor0(pos uint64) uint64 {
	block := pos / 64
	shift := pos % 64
	word := (^v.words[block] >> shift) << shift
	for {
		if p, ok := broadword.Lsb(word); ok {
			return block*64 + p
		}
		block++
		word = ^v.words[block]
	}
}

// Predecessor1 returns the position of the nearest 1-bit at or before pos.
func (v *BitVector) Predecessor1(pos uint64) uint64 {
	block := pos / 64
	shift := 64 - pos%64 - 1
	word := v.words[block]
	word = (word << shift) >> shift
	for {
		if p, ok := broadword.Msb(word); ok {
			return block*64 + p
		}
		block--
		word = v.words[block]
	}
}

// Successor1 returns the position of the nearest 1-bit at or after pos.
func (v *BitVector) Successor1(pos uint64) uint64 {
	block := pos / 64
	shift := pos % 64
	word := (v.words[block] >> shift) << shift
	for {
		if p, ok := broadword.Lsb(word); ok {
			return block*64 + p
		}
		block++
		word = v.words[block]
	}
}

// Enumerator is a general forward bit reader: it buffers one word at a
// time and serves next()/take(l)/skip_zeros() off of it, the way gamma and
// delta decoding need.
type Enumerator struct {
	bv    *BitVector
	pos   uint64
	buf   uint64
	avail uint64
}

// NewEnumerator returns an Enumerator positioned at pos.
func NewEnumerator(bv *BitVector, pos uint64) *Enumerator {
	return &Enumerator{bv: bv, pos: pos}
}

func (e *Enumerator) fill() {
	e.buf = e.bv.GetWord(e.pos)
	e.avail = 64
}

// Position returns the enumerator's current bit position.
func (e *Enumerator) Position() uint64 { return e.pos }

// Next returns the next single bit.
func (e *Enumerator) Next() bool {
	if e.avail == 0 {
		e.fill()
	}
	b := e.buf&1 != 0
	e.buf >>= 1
	e.avail--
	e.pos++
	return b
}

// Take returns the next l bits, 0 <= l <= 64.
func (e *Enumerator) Take(l uint64) uint64 {
	if e.avail < l {
		e.fill()
	}
	var val uint64
	if l != 64 {
		val = e.buf & (uint64(1)<<l - 1)
		e.buf >>= l
	} else {
		val = e.buf
	}
	e.avail -= l
	e.pos += l
	return val
}

// SkipZeros advances past the next run of 0-bits and its terminating 1-bit,
// returning the run length. Used by gamma/delta decoding.
func (e *Enumerator) SkipZeros() uint64 {
	var zeros uint64
	for e.buf == 0 {
		e.pos += e.avail
		zeros += e.avail
		e.avail = 0
		e.fill()
	}
	l, _ := broadword.Lsb(e.buf)
	e.buf >>= l
	e.buf >>= 1
	e.avail -= l + 1
	e.pos += l + 1
	return zeros + l
}

// UnaryEnumerator walks the 1-bits (or, via Skip0, the 0-bits) of a
// bitmap starting from a given position, the primitive behind the
// Elias-Fano high-bitmap traversal.
type UnaryEnumerator struct {
	bv       *BitVector
	position uint64
	buf      uint64
}

// NewUnaryEnumerator returns a UnaryEnumerator positioned so that the next
// call to Next() finds the first 1-bit at or after pos.
func NewUnaryEnumerator(bv *BitVector, pos uint64) *UnaryEnumerator {
	e := &UnaryEnumerator{bv: bv, position: pos}
	e.buf = bv.GetWord(pos)
	return e
}

// Next advances to, and returns the position of, the next 1-bit.
func (e *UnaryEnumerator) Next() uint64 {
	for e.buf == 0 {
		e.buf = e.bv.GetWord(e.position)
		if e.buf == 0 {
			e.position += 64
		}
	}
	p, _ := broadword.Lsb(e.buf)
	e.position += p
	e.buf >>= p
	// consume the found bit and set up the next search to start past it
	e.buf >>= 1
	result := e.position
	e.position++
	return result
}

// Skip advances past the next k 1-bits (not counting the bit the enumerator
// currently sits on).
func (e *UnaryEnumerator) Skip(k uint64) uint64 {
	var pos uint64
	for i := uint64(0); i < k; i++ {
		pos = e.Next()
	}
	return pos
}

// SkipNoMove peeks at the position of the k-th next 1-bit without mutating
// enumerator state.
func (e *UnaryEnumerator) SkipNoMove(k uint64) uint64 {
	clone := *e
	return clone.Skip(k)
}

// Skip0 advances past the next k 0-bits, returning the position just past
// the last one skipped.
func (e *UnaryEnumerator) Skip0(k uint64) uint64 {
	pos := e.position
	var seen uint64
	for seen < k {
		if !e.bv.Get(pos) {
			seen++
		}
		pos++
	}
	e.position = pos
	e.buf = e.bv.GetWord(pos)
	return pos
}

// Position returns the bit position the enumerator's next search starts
// from (one past the last 1-bit returned by Next).
func (e *UnaryEnumerator) Position() uint64 { return e.position }
