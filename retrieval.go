package blaze

import (
	"fmt"

	"github.com/wizenheimer/blazecore/internal/retrieval"
	"github.com/wizenheimer/blazecore/internal/topk"
)

// Result is one (score, docid) pair returned by a query.
type Result = topk.Entry

// QueryTerm names one disjunctive query term: its id, how many times it
// appears in the query (qf, used both for BM25's query-side weight and
// to scale the term's WAND bound back up from its qf=1 baseline), and
// the document-frequency statistic BM25 needs.
type QueryTerm struct {
	TermID    uint64
	QueryFreq float64
	DocFreq   uint64
}

// buildTerms resolves each QueryTerm against idx (and wd, if provided)
// into the cursors and scorers internal/retrieval operates on.
func buildTerms(idx *Index, wd *WandData, terms []QueryTerm, avgLength float64) ([]retrieval.Term, error) {
	out := make([]retrieval.Term, 0, len(terms))
	for _, qt := range terms {
		cursor, err := idx.Cursor(qt.TermID)
		if err != nil {
			return nil, fmt.Errorf("blaze: term %d: %w", qt.TermID, err)
		}
		qf := qt.QueryFreq
		if qf == 0 {
			qf = 1
		}
		t := retrieval.Term{
			Cursor:    cursor,
			Scorer:    ScorerForTerm(qf, qt.DocFreq, idx.NumDocs(), avgLength),
			QueryFreq: qf,
		}
		if wd != nil {
			wc, err := wd.Cursor(qt.TermID)
			if err != nil {
				return nil, fmt.Errorf("blaze: wand term %d: %w", qt.TermID, err)
			}
			t.Wand = wc
		}
		out = append(out, t)
	}
	return out, nil
}

// QueryTAAT evaluates a disjunctive query by the exhaustive term-at-a-time
// accumulator sweep.
func QueryTAAT(idx *Index, terms []QueryTerm, docLengths []float64, avgLength float64, k int) ([]Result, error) {
	rt, err := buildTerms(idx, nil, terms, avgLength)
	if err != nil {
		return nil, err
	}
	return retrieval.QueryTAAT(rt, docLengths, idx.NumDocs(), k), nil
}

// QueryTAATBlocked evaluates a disjunctive query with the blocked
// accumulator optimization over the exhaustive sweep.
func QueryTAATBlocked(idx *Index, terms []QueryTerm, docLengths []float64, avgLength float64, k int, blockSize uint64) ([]Result, error) {
	rt, err := buildTerms(idx, nil, terms, avgLength)
	if err != nil {
		return nil, err
	}
	return retrieval.QueryTAATBlocked(rt, docLengths, idx.NumDocs(), k, blockSize), nil
}

// QueryMaxScore evaluates a disjunctive query by the MaxScore algorithm,
// requiring wd's precomputed per-term maximum scores.
func QueryMaxScore(idx *Index, wd *WandData, terms []QueryTerm, docLengths []float64, avgLength float64, k int) ([]Result, error) {
	rt, err := buildTerms(idx, wd, terms, avgLength)
	if err != nil {
		return nil, err
	}
	return retrieval.QueryMaxScore(rt, docLengths, k), nil
}

// QueryBMW evaluates a disjunctive query by Block-Max WAND, requiring
// wd's per-term block-max partitions.
func QueryBMW(idx *Index, wd *WandData, terms []QueryTerm, docLengths []float64, avgLength float64, k int) ([]Result, error) {
	rt, err := buildTerms(idx, wd, terms, avgLength)
	if err != nil {
		return nil, err
	}
	return retrieval.QueryBMW(rt, docLengths, k), nil
}
