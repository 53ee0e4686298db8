// Package blaze is a block-compressed inverted-index search core: a bit
// vector substrate, monotone-sequence and block posting codecs, a
// compact on-disk index format, and three disjunctive top-k retrieval
// algorithms (exhaustive term-at-a-time, MaxScore, and Block-Max WAND)
// sharing one BM25 scorer and WAND metadata file.
//
// The package is a thin composition over internal/*: Index and WandData
// own the on-disk formats, Cursor walks a term's postings, and
// QueryTAAT/QueryMaxScore/QueryBMW run a disjunctive query to its top k
// results. BooleanQuery, in boolean.go, is a separate, optional
// term-id-level AND/OR/NOT layer built on roaring bitmaps; it does not
// sit on the scored retrieval path.
package blaze

import (
	"github.com/wizenheimer/blazecore/internal/invindex"
	"github.com/wizenheimer/blazecore/internal/postings"
	"github.com/wizenheimer/blazecore/internal/scorer"
	"github.com/wizenheimer/blazecore/internal/wand"
)

// Index is a read-only view over a block inverted index image.
type Index = invindex.Index

// GlobalParameters controls the monotone-sequence encoding parameters an
// Index is built and opened with.
type GlobalParameters = invindex.GlobalParameters

// Cursor walks one term's block-compressed posting list.
type Cursor = postings.Cursor

// WandData is a read-only view over a serialized WAND metadata image.
type WandData = wand.WandData

// TermScorer scores one query term's postings against a document's
// length.
type TermScorer = scorer.TermScorer

// Quantizer maps BM25 scores onto fixed-width integers. WandData stores
// float64 scores and does not use it.
type Quantizer = scorer.Quantizer

// OpenIndex parses a block inverted index image already resident in
// memory.
func OpenIndex(data []byte) (*Index, error) { return invindex.Open(data) }

// OpenWandData parses a WAND metadata image already resident in memory.
func OpenWandData(data []byte) (*WandData, error) { return wand.Open(data) }

// DefaultGlobalParameters returns the reference monotone-sequence
// encoding parameters.
func DefaultGlobalParameters() GlobalParameters { return invindex.DefaultGlobalParameters() }

// ScorerForTerm builds a TermScorer for a term with document frequency
// df and query frequency qf, against a collection of numDocs documents
// with average document length avgLength.
func ScorerForTerm(qf float64, df, numDocs uint64, avgLength float64) TermScorer {
	return scorer.ForTerm(qf, df, numDocs, avgLength)
}
