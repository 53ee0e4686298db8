// Package wand implements WAND metadata: per-term maximum scores and
// per-block (last-docid, max-score) pairs used to upper-bound a term's
// contribution during MaxScore and Block-Max WAND retrieval.
package wand

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrTermOutOfRange is returned when a term id >= T is requested.
var ErrTermOutOfRange = errors.New("wand: term id out of range")

// FormatError reports a malformed on-disk header field.
type FormatError struct {
	Field string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("wand: malformed header field %q", e.Field)
}

// TermRecord is one term's WAND metadata: its overall maximum score and
// its block partition.
type TermRecord struct {
	MaxTermWeight float64
	Blocks        []Block
}

// Build serializes per-term WAND records (already computed by the
// caller — precomputing scores over a whole collection is outside the
// core's scope, per the component design) into the on-disk byte format:
// a five-byte header placeholder, T, N, a table of T+1 byte offsets, and
// the concatenated per-term records.
func Build(records []TermRecord, numDocs uint64, globalParams [5]byte) []byte {
	numTerms := uint64(len(records))

	var body []byte
	offsets := make([]uint64, numTerms+1)
	for i, r := range records {
		offsets[i] = uint64(len(body))
		body = appendF64(body, r.MaxTermWeight)
		body = appendU32(body, uint32(len(r.Blocks)))
		for _, b := range r.Blocks {
			body = appendU32(body, b.LastDocID)
			body = appendF64(body, b.MaxScore)
		}
	}
	offsets[numTerms] = uint64(len(body))

	var out []byte
	out = append(out, globalParams[:]...)
	out = appendU64(out, numTerms)
	out = appendU64(out, numDocs)
	for _, off := range offsets {
		out = appendU64(out, off)
	}
	out = append(out, body...)
	return out
}

// WandData is a read-only view over a serialized WAND metadata image.
type WandData struct {
	numTerms uint64
	numDocs  uint64
	offsets  []uint64
	body     []byte
}

// Open parses a WAND metadata image already resident in memory.
func Open(data []byte) (*WandData, error) {
	if len(data) < 5+8+8 {
		return nil, &FormatError{Field: "header"}
	}
	off := 5
	numTerms := binary.LittleEndian.Uint64(data[off:])
	off += 8
	numDocs := binary.LittleEndian.Uint64(data[off:])
	off += 8

	if len(data) < off+int(numTerms+1)*8 {
		return nil, &FormatError{Field: "offsets"}
	}
	offsets := make([]uint64, numTerms+1)
	for i := range offsets {
		offsets[i] = binary.LittleEndian.Uint64(data[off:])
		off += 8
	}

	return &WandData{
		numTerms: numTerms,
		numDocs:  numDocs,
		offsets:  offsets,
		body:     data[off:],
	}, nil
}

// NumTerms returns T.
func (w *WandData) NumTerms() uint64 { return w.numTerms }

// MaxTermWeight returns the precomputed maximum score for term t over its
// entire posting list.
func (w *WandData) MaxTermWeight(t uint64) (float64, error) {
	if t >= w.numTerms {
		return 0, ErrTermOutOfRange
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(w.body[w.offsets[t]:])), nil
}

// Cursor returns a block enumerator over term t's WAND blocks.
func (w *WandData) Cursor(t uint64) (*Cursor, error) {
	if t >= w.numTerms {
		return nil, ErrTermOutOfRange
	}
	rec := w.body[w.offsets[t]:w.offsets[t+1]]
	maxWeight := math.Float64frombits(binary.LittleEndian.Uint64(rec))
	numBlocks := binary.LittleEndian.Uint32(rec[8:])
	blocks := make([]Block, numBlocks)
	pos := 12
	for i := range blocks {
		blocks[i].LastDocID = binary.LittleEndian.Uint32(rec[pos:])
		blocks[i].MaxScore = math.Float64frombits(binary.LittleEndian.Uint64(rec[pos+4:]))
		pos += 12
	}
	return &Cursor{maxWeight: maxWeight, blocks: blocks}, nil
}

// Cursor walks a term's WAND blocks in order, exposing next_geq(d): the
// first block whose last docid is >= d.
type Cursor struct {
	maxWeight float64
	blocks    []Block
	pos       int
}

// MaxWeight returns the term's overall maximum score.
func (c *Cursor) MaxWeight() float64 { return c.maxWeight }

// DocID returns the current block's last docid.
func (c *Cursor) DocID() uint32 {
	if c.pos >= len(c.blocks) {
		return math.MaxUint32
	}
	return c.blocks[c.pos].LastDocID
}

// Score returns the current block's maximum score.
func (c *Cursor) Score() float64 {
	if c.pos >= len(c.blocks) {
		return 0
	}
	return c.blocks[c.pos].MaxScore
}

// NextGeq advances to the first block whose last docid is >= d.
func (c *Cursor) NextGeq(d uint32) {
	for c.pos < len(c.blocks) && c.blocks[c.pos].LastDocID < d {
		c.pos++
	}
}

func appendU32(out []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(out, buf[:]...)
}

func appendU64(out []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(out, buf[:]...)
}

func appendF64(out []byte, v float64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	return append(out, buf[:]...)
}
