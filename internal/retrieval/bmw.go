package retrieval

import (
	"log/slog"
	"sort"

	"github.com/wizenheimer/blazecore/internal/topk"
)

// QueryBMW evaluates a disjunctive query by Block-Max WAND.
//
// Each round, cursors are sorted by current docid and a pivot index p is
// found: the smallest prefix (in docid order) whose cumulative maximum
// weight exceeds the current threshold. The candidate document is the
// pivot cursor's docid, d.
//
//  1. If the lowest-docid cursor is already sitting at d, every cursor
//     that could contribute already does; score it exactly.
//  2. Otherwise, tighten the bound using per-block maxima (by seeking
//     each pivot-prefix cursor's WAND cursor to d) before committing to
//     a full evaluation.
//  3. If the tightened bound still clears the threshold, align one
//     lagging cursor to d — the cursor with the largest index below p
//     that is still positioned before d — and retry.
//  4. If it doesn't, the pivot prefix cannot produce a winning document
//     at d; skip past the whole block, not just d, by advancing the
//     cursor with the largest overall max weight among indices <= p to
//     one past the barrier (the smallest block-last-docid among the
//     pivot-prefix WAND cursors, all just seeked to d above) — this is
//     the range-skip that distinguishes Block-Max WAND from plain WAND.
func QueryBMW(terms []Term, docLengths []float64, k int) []topk.Entry {
	slog.Debug("query bmw", slog.Int("term_count", len(terms)), slog.Int("k", k))
	n := len(terms)
	q := topk.New(k)
	if n == 0 {
		return q.Finalize()
	}

	cursors := append([]Term(nil), terms...)
	sentinel := cursors[0].Cursor.Sentinel()

	for {
		sort.Slice(cursors, func(i, j int) bool { return cursors[i].Cursor.Value() < cursors[j].Cursor.Value() })
		if cursors[0].Cursor.Value() >= sentinel {
			break
		}

		tau := q.Threshold()
		p := -1
		var ub float64
		for i := 0; i < n; i++ {
			ub += cursors[i].maxWeight()
			if ub > tau {
				p = i
				break
			}
		}
		if p == -1 {
			break
		}

		d := cursors[p].Cursor.Value()
		if d >= sentinel {
			break
		}

		if cursors[0].Cursor.Value() == d {
			var score float64
			for i := 0; i < n; i++ {
				c := cursors[i].Cursor
				if c.Value() == d {
					score += cursors[i].Scorer.Score(float64(c.Freq()), docLengths[d])
					c.Advance()
				}
			}
			q.Insert(score, d)
			continue
		}

		var blockUB float64
		for i := 0; i <= p; i++ {
			cursors[i].Wand.NextGeq(uint32(d))
			blockUB += cursors[i].blockScore()
		}

		if blockUB > tau {
			idx := 0
			for i := p - 1; i >= 0; i-- {
				if cursors[i].Cursor.Value() < d {
					idx = i
					break
				}
			}
			cursors[idx].Cursor.AdvanceToGeq(d)
			continue
		}

		best := 0
		barrier := uint64(cursors[0].Wand.DocID())
		for i := 1; i <= p; i++ {
			if cursors[i].maxWeight() > cursors[best].maxWeight() {
				best = i
			}
			if bd := uint64(cursors[i].Wand.DocID()); bd < barrier {
				barrier = bd
			}
		}
		cursors[best].Cursor.AdvanceToGeq(barrier + 1)
	}

	return q.Finalize()
}
