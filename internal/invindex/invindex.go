// Package invindex implements the block inverted index: a memory-mapped
// byte region holding one block posting list per term, addressed through
// a single compact monotone sequence of per-term byte endpoints, encoded
// by compact.Write as Elias-Fano, ranked bitvector or all-ones, whichever
// costs fewest bits.
package invindex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wizenheimer/blazecore/internal/bitvector"
	"github.com/wizenheimer/blazecore/internal/compact"
	"github.com/wizenheimer/blazecore/internal/postings"
)

// TrailerSize is the length of the zero trailer appended after the
// posting-data region, sized to make SIMD overreads safe.
const TrailerSize = 15

// GlobalParameters mirrors the five-byte header controlling the monotone
// sequence sampling rates used throughout the index.
type GlobalParameters struct {
	EFLogSampling0       uint8
	EFLogSampling1       uint8
	RBLogRank1Sampling   uint8
	RBLogSampling1       uint8
	LogPartitionSize     uint8
}

// DefaultGlobalParameters mirrors the reference defaults.
func DefaultGlobalParameters() GlobalParameters {
	return GlobalParameters{
		EFLogSampling0:     10,
		EFLogSampling1:     8,
		RBLogRank1Sampling: 9,
		RBLogSampling1:     8,
		LogPartitionSize:   7,
	}
}

func (p GlobalParameters) compactParams() compact.Params {
	return compact.Params{
		EF: compact.EFParams{
			LogSampling0: uint64(p.EFLogSampling0),
			LogSampling1: uint64(p.EFLogSampling1),
		},
		Ranked: compact.RankedParams{
			LogSamplingPos: uint64(p.RBLogSampling1),
			BlockBits:      uint64(1) << p.RBLogRank1Sampling,
		},
	}
}

// ErrTermOutOfRange is returned when a term id >= T is requested.
var ErrTermOutOfRange = errors.New("invindex: term id out of range")

// FormatError reports a malformed on-disk header field.
type FormatError struct {
	Field string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invindex: malformed header field %q", e.Field)
}

// Index is a read-only, memory-mapped block inverted index.
type Index struct {
	params          GlobalParameters
	numTerms        uint64
	numDocs         uint64
	endpoints       *bitvector.BitVector
	postingUniverse uint64 // size, in bytes, of the posting-data region
	postingsBytes   []byte
}

// Open parses a block-compressed index image already resident in memory
// (typically an mmap'd file — see internal/collection for the read-only
// mapping helper). It validates the minimal header shape before use.
func Open(data []byte) (*Index, error) {
	if len(data) < 5+8+8+TrailerSize {
		return nil, &FormatError{Field: "header"}
	}
	params := GlobalParameters{
		EFLogSampling0:     data[0],
		EFLogSampling1:     data[1],
		RBLogRank1Sampling: data[2],
		RBLogSampling1:     data[3],
		LogPartitionSize:   data[4],
	}
	off := 5
	numTerms := binary.LittleEndian.Uint64(data[off:])
	off += 8
	numDocs := binary.LittleEndian.Uint64(data[off:])
	off += 8

	bv, consumed, err := decodeEndpoints(data[off:])
	if err != nil {
		return nil, err
	}
	off += consumed

	postingUniverse := uint64(len(data) - off - TrailerSize)

	slog.Info("index open", slog.Uint64("term_count", numTerms), slog.Uint64("doc_count", numDocs))

	return &Index{
		params:          params,
		numTerms:        numTerms,
		numDocs:         numDocs,
		endpoints:       bv,
		postingUniverse: postingUniverse,
		postingsBytes:   data[off:],
	}, nil
}

// decodeEndpoints reads the T+1-entry compact monotone sequence of byte
// endpoints, which is itself serialized as a bit vector prefixed with its
// own bit length (a little-endian uint64, to let the caller know how many
// bytes of the stream it consumed). The sequence always starts at bit 0
// of the returned bit vector — each index gets its own bit vector, there
// is no shared backing store to offset into.
func decodeEndpoints(data []byte) (*bitvector.BitVector, int, error) {
	if len(data) < 8 {
		return nil, 0, &FormatError{Field: "endpoints length"}
	}
	bitLen := binary.LittleEndian.Uint64(data)
	byteLen := int((bitLen + 7) / 8)
	if len(data) < 8+byteLen {
		return nil, 0, &FormatError{Field: "endpoints body"}
	}
	words := bytesToWords(data[8 : 8+byteLen])
	bv := bitvector.FromWords(words, bitLen)
	return bv, 8 + byteLen, nil
}

func bytesToWords(b []byte) []uint64 {
	nw := (len(b) + 7) / 8
	words := make([]uint64, nw)
	for i := 0; i < len(b); i++ {
		words[i/8] |= uint64(b[i]) << (8 * uint(i%8))
	}
	return words
}

// NumDocs returns N.
func (idx *Index) NumDocs() uint64 { return idx.numDocs }

// NumTerms returns T.
func (idx *Index) NumTerms() uint64 { return idx.numTerms }

func (idx *Index) termEndpoint(t uint64) uint64 {
	enum := compact.NewEnumerator(idx.endpoints, 0, idx.numTerms+1, idx.postingUniverse+1, idx.params.compactParams())
	_, v := enum.Move(t)
	return v
}

// Cursor returns a forward cursor over term t's posting list.
func (idx *Index) Cursor(t uint64) (*postings.Cursor, error) {
	if t >= idx.numTerms {
		return nil, ErrTermOutOfRange
	}
	start := idx.termEndpoint(t)
	end := idx.termEndpoint(t + 1)
	return postings.NewCursor(idx.postingsBytes[start:end], idx.numDocs), nil
}

// Warmup touches every byte of term t's posting bytes to prefault the
// backing mapping. It has no observable result beyond latency.
func (idx *Index) Warmup(t uint64) error {
	if t >= idx.numTerms {
		return ErrTermOutOfRange
	}
	start := idx.termEndpoint(t)
	end := idx.termEndpoint(t + 1)
	slog.Debug("warmup", slog.Uint64("term_id", t), slog.Uint64("byte_count", end-start))
	var sink byte
	for _, b := range idx.postingsBytes[start:end] {
		sink += b
	}
	_ = sink
	return nil
}
