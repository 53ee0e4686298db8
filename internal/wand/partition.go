package wand

// Entry pairs a docid with its precomputed per-posting score, the raw
// input to both block-partitioning strategies.
type Entry struct {
	DocID uint32
	Score float64
}

// Block is one WAND metadata block: the last docid it covers and the
// maximum score among its postings.
type Block struct {
	LastDocID uint32
	MaxScore  float64
}

// FixedBlockPartition groups entries into blocks of exactly blockSize
// consecutive postings (the final block may be shorter), the B_w
// constant-block strategy.
func FixedBlockPartition(entries []Entry, blockSize uint64) []Block {
	if len(entries) == 0 {
		return nil
	}
	n := uint64(len(entries))
	nb := (n + blockSize - 1) / blockSize
	blocks := make([]Block, 0, nb)
	for start := uint64(0); start < n; start += blockSize {
		end := start + blockSize
		if end > n {
			end = n
		}
		max := entries[start].Score
		for i := start + 1; i < end; i++ {
			if entries[i].Score > max {
				max = entries[i].Score
			}
		}
		blocks = append(blocks, Block{LastDocID: entries[end-1].DocID, MaxScore: max})
	}
	return blocks
}

// scoreWindow tracks the cost of the half-open interval [start, end) over
// entries, maintaining a running sum and a monotone deque giving the
// window's maximum score in O(1).
type scoreWindow struct {
	entries  []Entry
	start    uint64
	end      uint64
	costUB   float64
	fixedCost float64
	queue    []float64 // front = queue[0], back = queue[len-1]; decreasing
	sum      float64
}

func newScoreWindow(entries []Entry, costUB, fixedCost float64) *scoreWindow {
	return &scoreWindow{entries: entries, costUB: costUB, fixedCost: fixedCost}
}

func (w *scoreWindow) size() uint64 { return w.end - w.start }

func (w *scoreWindow) advanceStart() {
	v := w.entries[w.start].Score
	if len(w.queue) > 0 && w.queue[0] == v {
		w.queue = w.queue[1:]
	}
	w.sum -= v
	w.start++
}

func (w *scoreWindow) advanceEnd() {
	v := w.entries[w.end].Score
	w.sum += v
	for len(w.queue) > 0 && w.queue[len(w.queue)-1] < v {
		w.queue = w.queue[:len(w.queue)-1]
	}
	w.queue = append(w.queue, v)
	w.end++
}

func (w *scoreWindow) max() float64 { return w.queue[0] }

func (w *scoreWindow) cost() float64 {
	if w.size() < 2 {
		return w.fixedCost
	}
	return float64(w.size())*w.max() - w.sum + w.fixedCost
}

// VariableBlockPartition chooses a minimum-cost partition of entries via
// the dynamic program over a geometrically-growing family of cost
// windows, ported directly from the reference's score_opt_partition: the
// cost of a candidate block is block_size*block_max - sum_of_scores, plus
// a fixed per-block cost; eps1/eps2 bound how many window sizes are
// tried and how coarsely they grow.
func VariableBlockPartition(entries []Entry, eps1, eps2, fixedCost float64) []Block {
	size := uint64(len(entries))
	if size == 0 {
		return nil
	}

	var maxScore, sum float64
	maxScore = entries[0].Score
	for _, e := range entries {
		if e.Score > maxScore {
			maxScore = e.Score
		}
		sum += e.Score
	}
	singleBlockCost := float64(size)*maxScore - sum

	minCost := make([]float64, size+1)
	for i := range minCost {
		minCost[i] = singleBlockCost
	}
	minCost[0] = 0

	var windows []*scoreWindow
	costBound := fixedCost
	for eps1 == 0 || costBound < fixedCost/eps1 {
		windows = append(windows, newScoreWindow(entries, costBound, fixedCost))
		if costBound >= singleBlockCost {
			break
		}
		costBound *= 1 + eps2
	}

	path := make([]uint64, size+1)
	maxs := make([]float64, size+1)
	maxs[size] = maxScore

	for i := uint64(0); i < size; i++ {
		lastEnd := i + 1
		for _, w := range windows {
			for w.end < lastEnd {
				w.advanceEnd()
			}
			var windowCost float64
			for {
				windowCost = w.cost()
				if minCost[i]+windowCost < minCost[w.end] {
					minCost[w.end] = minCost[i] + windowCost
					path[w.end] = w.start
					maxs[w.end] = w.max()
				}
				lastEnd = w.end
				if w.end == size {
					break
				}
				if windowCost >= w.costUB {
					break
				}
				w.advanceEnd()
			}
			w.advanceStart()
		}
	}

	var partition []uint64
	var maxValuesTemp []float64
	currPos := size
	for currPos != 0 {
		partition = append(partition, currPos)
		maxValuesTemp = append(maxValuesTemp, maxs[currPos])
		currPos = path[currPos]
	}
	reverseU64(partition)
	reverseF64(maxValuesTemp)

	blocks := make([]Block, 0, len(partition))
	for i, end := range partition {
		blocks = append(blocks, Block{
			LastDocID: entries[end-1].DocID,
			MaxScore:  maxValuesTemp[i],
		})
	}
	return blocks
}

func reverseU64(s []uint64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseF64(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
