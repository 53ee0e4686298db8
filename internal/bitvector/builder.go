// Package bitvector implements the fixed-size bit substrate that every
// higher layer of the index (monotone-sequence codecs, Elias-Fano, ranked
// bitvectors) is built on: a growable builder, an immutable read view, and
// the forward/unary enumerators used by the hot decode paths.
//
// The layout mirrors the reference bit_vector_builder/bit_vector split: a
// builder accumulates bits into u64 words LSB-first, and is later frozen
// into a read-only BitVector that borrows (or owns, in the Go port) the
// finished word slice.
package bitvector

// Builder accumulates bits into a growing slice of 64-bit words.
type Builder struct {
	words []uint64
	size  uint64 // number of valid bits
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Size returns the number of bits appended so far.
func (b *Builder) Size() uint64 { return b.size }

// Words exposes the backing word slice (read-only use by callers that
// freeze the builder into a BitVector).
func (b *Builder) Words() []uint64 { return b.words }

func (b *Builder) ensureCapacity(bit uint64) {
	word := bit / 64
	for uint64(len(b.words)) <= word {
		b.words = append(b.words, 0)
	}
}

// PushBack appends a single bit.
func (b *Builder) PushBack(bit bool) {
	b.ensureCapacity(b.size)
	if bit {
		b.words[b.size/64] |= uint64(1) << (b.size % 64)
	}
	b.size++
}

// AppendBits appends the low len bits of value, LSB-first. It panics if
// value has bits set above bit len-1 (when len < 64), matching the
// reference's "spurious bits" assertion.
func (b *Builder) AppendBits(value uint64, length uint64) {
	if length == 0 {
		return
	}
	if length > 64 {
		panic("bitvector: AppendBits length must be <= 64")
	}
	if length < 64 && (value>>length) != 0 {
		panic("bitvector: AppendBits spurious bits set above length")
	}

	pos := b.size
	b.ensureCapacity(pos + length - 1)
	shift := pos % 64
	word := pos / 64
	b.words[word] |= value << shift
	if shift+length > 64 {
		b.words[word+1] |= value >> (64 - shift)
	}
	b.size += length
}

// SetBits overwrites length bits at pos with the low bits of value. Requires
// pos+length <= Size().
func (b *Builder) SetBits(pos uint64, value uint64, length uint64) {
	if length == 0 {
		return
	}
	if pos+length > b.size {
		panic("bitvector: SetBits out of range")
	}
	if length < 64 && (value>>length) != 0 {
		panic("bitvector: SetBits spurious bits set above length")
	}

	mask := uint64(1)<<length - 1
	if length == 64 {
		mask = ^uint64(0)
	}
	word := pos / 64
	shift := pos % 64

	b.words[word] &^= mask << shift
	b.words[word] |= value << shift

	if shift+length > 64 {
		remaining := shift + length - 64
		remMask := uint64(1)<<remaining - 1
		b.words[word+1] &^= remMask
		b.words[word+1] |= value >> (64 - shift)
	}
}

// ZeroExtend appends n zero bits.
func (b *Builder) ZeroExtend(n uint64) {
	if n == 0 {
		return
	}
	b.ensureCapacity(b.size + n - 1)
	b.size += n
}

// OneExtend appends n one bits.
func (b *Builder) OneExtend(n uint64) {
	for n > 64 {
		b.AppendBits(^uint64(0), 64)
		n -= 64
	}
	if n > 0 {
		b.AppendBits(uint64(1)<<n-1, n)
	}
}

// Append concatenates other onto b. Uses a word-aligned fast path when b's
// current size is a multiple of 64.
func (b *Builder) Append(other *Builder) {
	if other.size == 0 {
		return
	}
	if b.size%64 == 0 {
		b.words = append(b.words, other.words...)
		b.size += other.size
		// trim any padding words beyond the logical size
		want := (b.size + 63) / 64
		b.words = b.words[:want]
		return
	}
	full := other.size / 64
	var i uint64
	for ; i < full; i++ {
		b.AppendBits(other.words[i], 64)
	}
	if rem := other.size % 64; rem > 0 {
		last := other.words[i] & (uint64(1)<<rem - 1)
		b.AppendBits(last, rem)
	}
}

// Reverse reverses the entire bit order of the builder in place.
func (b *Builder) Reverse() {
	if b.size == 0 {
		return
	}
	nb := NewBuilder()
	nb.ensureCapacity(b.size - 1)
	nb.size = b.size
	for i := uint64(0); i < b.size; i++ {
		word := i / 64
		shift := i % 64
		bit := (b.words[word] >> shift) & 1
		if bit != 0 {
			dst := b.size - 1 - i
			nb.words[dst/64] |= uint64(1) << (dst % 64)
		}
	}
	b.words = nb.words
}

// Freeze produces an immutable BitVector snapshot of the builder's content.
func (b *Builder) Freeze() *BitVector {
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return &BitVector{words: words, size: b.size}
}
