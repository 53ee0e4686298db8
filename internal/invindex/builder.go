package invindex

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/wizenheimer/blazecore/internal/bitvector"
	"github.com/wizenheimer/blazecore/internal/compact"
	"github.com/wizenheimer/blazecore/internal/postings"
)

// TermPostings is one term's raw posting list: strictly increasing docids
// paired with frequencies >= 1.
type TermPostings struct {
	Docs  []uint32
	Freqs []uint32
}

// LengthMismatchError reports a docs/freqs length mismatch for one term.
type LengthMismatchError struct {
	TermID uint64
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("invindex: term %d: docs/freqs length mismatch", e.TermID)
}

// NonMonotoneError reports a non-increasing docid sequence.
type NonMonotoneError struct {
	TermID         uint64
	Position       int
	Prev, Current  uint32
}

func (e *NonMonotoneError) Error() string {
	return fmt.Sprintf("invindex: term %d at position %d: docid %d does not follow %d",
		e.TermID, e.Position, e.Current, e.Prev)
}

// ErrEmptyPostingList is returned when a term's posting list is empty.
type ErrEmptyPostingList struct {
	TermID uint64
}

func (e *ErrEmptyPostingList) Error() string {
	return fmt.Sprintf("invindex: term %d: list must be non-empty", e.TermID)
}

func validate(termID uint64, p TermPostings) error {
	if len(p.Docs) != len(p.Freqs) {
		return &LengthMismatchError{TermID: termID}
	}
	if len(p.Docs) == 0 {
		return &ErrEmptyPostingList{TermID: termID}
	}
	for i := 1; i < len(p.Docs); i++ {
		if p.Docs[i] <= p.Docs[i-1] {
			return &NonMonotoneError{TermID: termID, Position: i, Prev: p.Docs[i-1], Current: p.Docs[i]}
		}
	}
	return nil
}

// Build serializes terms (in term-id order, terms[i] is term i) and N
// documents into a block-compressed index image, per the §6.2 file
// layout: header, compact-EF endpoints, posting bytes, zero trailer.
func Build(terms []TermPostings, numDocs uint64, params GlobalParameters) ([]byte, error) {
	shards, err := buildShardsSequential(terms)
	if err != nil {
		return nil, err
	}
	return assemble(shards, numDocs, params)
}

// BuildParallel shards terms by contiguous term-id range across workers
// (golang.org/x/sync/errgroup), encoding each term's posting bytes
// concurrently; the final endpoint-shifted merge runs single-threaded, as
// required by the concurrency model (builder merges are not themselves
// parallelised).
func BuildParallel(ctx context.Context, terms []TermPostings, numDocs uint64, params GlobalParameters, workers int) ([]byte, error) {
	if workers < 1 {
		workers = 1
	}
	shardBytes := make([][]byte, len(terms))
	g, _ := errgroup.WithContext(ctx)
	chunk := (len(terms) + workers - 1) / workers
	if chunk == 0 {
		chunk = 1
	}
	for start := 0; start < len(terms); start += chunk {
		start := start
		end := start + chunk
		if end > len(terms) {
			end = len(terms)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := validate(uint64(i), terms[i]); err != nil {
					return err
				}
				shardBytes[i] = postings.Write(terms[i].Docs, terms[i].Freqs)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assemble(shardBytes, numDocs, params)
}

func buildShardsSequential(terms []TermPostings) ([][]byte, error) {
	out := make([][]byte, len(terms))
	for i, t := range terms {
		if err := validate(uint64(i), t); err != nil {
			return nil, err
		}
		out[i] = postings.Write(t.Docs, t.Freqs)
	}
	return out, nil
}

// assemble performs the single-threaded final merge: concatenate each
// term's posting bytes and compute the T+1 cumulative byte endpoints.
func assemble(shardBytes [][]byte, numDocs uint64, params GlobalParameters) ([]byte, error) {
	numTerms := uint64(len(shardBytes))

	endpoints := make([]uint64, numTerms+1)
	var postingData []byte
	for i, b := range shardBytes {
		endpoints[i] = uint64(len(postingData))
		postingData = append(postingData, b...)
	}
	endpoints[numTerms] = uint64(len(postingData))

	cp := params.compactParams()
	eb := bitvector.NewBuilder()
	compact.Write(eb, endpoints, uint64(len(postingData))+1, cp)
	endpointBV := eb.Freeze()

	var out []byte
	out = append(out, params.EFLogSampling0, params.EFLogSampling1, params.RBLogRank1Sampling, params.RBLogSampling1, params.LogPartitionSize)
	out = appendU64(out, numTerms)
	out = appendU64(out, numDocs)

	bitLen := endpointBV.Size()
	out = appendU64(out, bitLen)
	out = append(out, wordsToBytes(endpointBV.Words(), bitLen)...)

	out = append(out, postingData...)
	out = append(out, make([]byte, TrailerSize)...)

	slog.Info("builder flush",
		slog.Uint64("term_count", numTerms),
		slog.Uint64("doc_count", numDocs),
		slog.Int("byte_count", len(out)),
	)

	return out, nil
}

func appendU64(out []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(out, buf[:]...)
}

func wordsToBytes(words []uint64, bitLen uint64) []byte {
	byteLen := (bitLen + 7) / 8
	out := make([]byte, byteLen)
	for i := uint64(0); i < byteLen; i++ {
		out[i] = byte(words[i/8] >> (8 * (i % 8)))
	}
	return out
}
