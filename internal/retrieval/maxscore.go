package retrieval

import (
	"log/slog"
	"sort"

	"github.com/wizenheimer/blazecore/internal/topk"
)

// QueryMaxScore evaluates a disjunctive query by the MaxScore algorithm.
//
// Terms are sorted ascending by their maximum achievable score. At any
// point the current threshold tau splits them into a non-essential
// prefix and an essential suffix: prefixSum[p] is the combined maximum
// of the p smallest-weight terms, and p is taken as large as possible
// while prefixSum[p] <= tau. That choice is exactly what the algorithm's
// invariant requires — a document touching only non-essential cursors
// has a score bounded by prefixSum[p] <= tau, so it can never enter the
// queue, and the essential suffix alone is enough to find every document
// that could. (A literal reading of "smallest p with suffix-sum(p) > tau"
// does not by itself satisfy that invariant, since the suffix sum is
// monotonically decreasing in p; the prefix-sum formulation here is the
// one that does.)
//
// The essential cursors are walked in lockstep to find the next
// candidate document d; non-essential cursors are then probed, in
// decreasing order of maximum weight, only as long as the running
// estimate (accumulated real score plus the remaining unprobed upper
// bound) could still clear the queue.
func QueryMaxScore(terms []Term, docLengths []float64, k int) []topk.Entry {
	slog.Debug("query maxscore", slog.Int("term_count", len(terms)), slog.Int("k", k))
	n := len(terms)
	q := topk.New(k)
	if n == 0 {
		return q.Finalize()
	}

	sorted := append([]Term(nil), terms...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].maxWeight() < sorted[j].maxWeight() })

	prefixSum := make([]float64, n+1)
	for i := 0; i < n; i++ {
		prefixSum[i+1] = prefixSum[i] + sorted[i].maxWeight()
	}

	sentinel := sorted[0].Cursor.Sentinel()

	partitionFor := func(tau float64) int {
		p := 0
		for p < n && prefixSum[p+1] <= tau {
			p++
		}
		return p
	}

	p := partitionFor(q.Threshold())

	for p < n {
		d := sentinel
		for i := p; i < n; i++ {
			if v := sorted[i].Cursor.Value(); v < d {
				d = v
			}
		}
		if d >= sentinel {
			break
		}

		var score float64
		for i := p; i < n; i++ {
			c := sorted[i].Cursor
			if c.Value() == d {
				score += sorted[i].Scorer.Score(float64(c.Freq()), docLengths[d])
				c.Advance()
			}
		}

		remainingUB := prefixSum[p]
		estimate := score + remainingUB
		for i := p - 1; i >= 0; i-- {
			if !q.WouldEnter(estimate) {
				break
			}
			c := sorted[i].Cursor
			v := c.AdvanceToGeq(d)
			remainingUB -= sorted[i].maxWeight()
			if v == d {
				score += sorted[i].Scorer.Score(float64(c.Freq()), docLengths[d])
			}
			estimate = score + remainingUB
		}

		if q.Insert(score, d) {
			p = partitionFor(q.Threshold())
		}
	}

	return q.Finalize()
}
