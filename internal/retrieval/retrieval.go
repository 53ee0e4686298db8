// Package retrieval implements the three disjunctive top-k evaluators —
// exhaustive term-at-a-time, MaxScore, and Block-Max WAND — which must
// return identical top-k document sets (up to quantization error) for
// the same query, scorer, and k.
package retrieval

import (
	"github.com/wizenheimer/blazecore/internal/postings"
	"github.com/wizenheimer/blazecore/internal/scorer"
	"github.com/wizenheimer/blazecore/internal/wand"
)

// Term is one query term's evaluation context: its posting cursor, its
// BM25 scorer, and (for MaxScore/BMW) its WAND block cursor.
//
// WAND data is stored as a query-independent quantity (score(d, f) with
// query frequency qf = 1, i.e. just query_term_weight(1, df, N) folded
// into doc_term_weight's maximum); QueryFreq scales that baseline back up
// to the actual per-query term multiplicity when comparing against true
// scores, which already include the full qf-scaled query weight via
// Scorer.
type Term struct {
	Cursor    *postings.Cursor
	Scorer    scorer.TermScorer
	Wand      *wand.Cursor
	QueryFreq float64
}

// maxWeight returns the term's overall maximum achievable true score.
func (t Term) maxWeight() float64 {
	qf := t.QueryFreq
	if qf == 0 {
		qf = 1
	}
	return qf * t.Wand.MaxWeight()
}

// blockScore returns the current block's maximum achievable true score,
// after the term's WAND cursor has been positioned via NextGeq.
func (t Term) blockScore() float64 {
	qf := t.QueryFreq
	if qf == 0 {
		qf = 1
	}
	return qf * t.Wand.Score()
}
