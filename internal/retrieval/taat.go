package retrieval

import (
	"log/slog"

	"github.com/wizenheimer/blazecore/internal/topk"
)

// QueryTAAT evaluates a disjunctive query by the exhaustive term-at-a-time
// accumulator sweep: walk every posting of every term, add its partial
// score into a dense per-document accumulator array, then take the top k
// non-zero accumulators.
func QueryTAAT(terms []Term, docLengths []float64, numDocs uint64, k int) []topk.Entry {
	slog.Debug("query taat", slog.Int("term_count", len(terms)), slog.Int("k", k))
	acc := make([]float64, numDocs)
	for _, t := range terms {
		c := t.Cursor
		for c.Value() < c.Sentinel() {
			d := c.Value()
			acc[d] += t.Scorer.Score(float64(c.Freq()), docLengths[d])
			c.Advance()
		}
	}

	q := topk.New(k)
	for d := uint64(0); d < numDocs; d++ {
		if acc[d] > 0 {
			q.Insert(acc[d], d)
		}
	}
	return q.Finalize()
}

// QueryTAATBlocked is the blocked-accumulator variant: documents are
// grouped into fixed-size blocks, each tracking its own running maximum,
// and a block is skipped entirely once its maximum can no longer enter
// the top-k queue. It returns the same results as QueryTAAT, only faster
// once the queue has filled and raised its threshold.
func QueryTAATBlocked(terms []Term, docLengths []float64, numDocs uint64, k int, blockSize uint64) []topk.Entry {
	slog.Debug("query taat blocked", slog.Int("term_count", len(terms)), slog.Int("k", k), slog.Uint64("block", blockSize))
	if blockSize == 0 {
		blockSize = 1
	}
	acc := make([]float64, numDocs)
	nb := (numDocs + blockSize - 1) / blockSize
	accMax := make([]float64, nb)

	for _, t := range terms {
		c := t.Cursor
		for c.Value() < c.Sentinel() {
			d := c.Value()
			s := t.Scorer.Score(float64(c.Freq()), docLengths[d])
			acc[d] += s
			b := d / blockSize
			if acc[d] > accMax[b] {
				accMax[b] = acc[d]
			}
			c.Advance()
		}
	}

	q := topk.New(k)
	for b := uint64(0); b < nb; b++ {
		if !q.WouldEnter(accMax[b]) {
			continue
		}
		start := b * blockSize
		end := start + blockSize
		if end > numDocs {
			end = numDocs
		}
		for d := start; d < end; d++ {
			if acc[d] > 0 {
				q.Insert(acc[d], d)
			}
		}
	}
	return q.Finalize()
}
