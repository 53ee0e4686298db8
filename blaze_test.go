package blaze

import (
	"testing"

	"github.com/wizenheimer/blazecore/internal/invindex"
	"github.com/wizenheimer/blazecore/internal/wand"
)

func buildTestIndex(t *testing.T) (*Index, *WandData, []float64) {
	t.Helper()

	const numDocs = 16
	termPostings := []invindex.TermPostings{
		{Docs: []uint32{0, 2, 4, 6, 8, 10, 12, 14}, Freqs: []uint32{1, 1, 2, 1, 3, 1, 1, 2}},
		{Docs: []uint32{1, 2, 5, 6, 9, 10, 13, 14}, Freqs: []uint32{2, 1, 1, 3, 1, 1, 2, 1}},
	}
	docLengths := make([]float64, numDocs)
	for i := range docLengths {
		docLengths[i] = 20
	}

	indexData, err := invindex.Build(termPostings, numDocs, DefaultGlobalParameters())
	if err != nil {
		t.Fatalf("invindex.Build: %v", err)
	}
	idx, err := OpenIndex(indexData)
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}

	var records []wand.TermRecord
	for _, tp := range termPostings {
		ts := ScorerForTerm(1, uint64(len(tp.Docs)), numDocs, 20)
		entries := make([]wand.Entry, len(tp.Docs))
		var maxWeight float64
		for i, d := range tp.Docs {
			s := ts.Score(float64(tp.Freqs[i]), docLengths[d])
			entries[i] = wand.Entry{DocID: d, Score: s}
			if s > maxWeight {
				maxWeight = s
			}
		}
		records = append(records, wand.TermRecord{MaxTermWeight: maxWeight, Blocks: wand.FixedBlockPartition(entries, 4)})
	}
	wandData := wand.Build(records, numDocs, [5]byte{})
	wd, err := OpenWandData(wandData)
	if err != nil {
		t.Fatalf("OpenWandData: %v", err)
	}

	return idx, wd, docLengths
}

func TestQueryTAATAgainstMaxScore(t *testing.T) {
	idx, wd, docLengths := buildTestIndex(t)
	terms := []QueryTerm{
		{TermID: 0, QueryFreq: 1, DocFreq: 8},
		{TermID: 1, QueryFreq: 1, DocFreq: 8},
	}

	taat, err := QueryTAAT(idx, terms, docLengths, 20, 3)
	if err != nil {
		t.Fatalf("QueryTAAT: %v", err)
	}
	maxscore, err := QueryMaxScore(idx, wd, terms, docLengths, 20, 3)
	if err != nil {
		t.Fatalf("QueryMaxScore: %v", err)
	}
	bmw, err := QueryBMW(idx, wd, terms, docLengths, 20, 3)
	if err != nil {
		t.Fatalf("QueryBMW: %v", err)
	}

	if len(taat) != 3 || len(maxscore) != 3 || len(bmw) != 3 {
		t.Fatalf("expected 3 results each, got %d/%d/%d", len(taat), len(maxscore), len(bmw))
	}
	for i := range taat {
		if taat[i].DocID != maxscore[i].DocID || taat[i].DocID != bmw[i].DocID {
			t.Errorf("result %d docid mismatch: taat=%d maxscore=%d bmw=%d", i, taat[i].DocID, maxscore[i].DocID, bmw[i].DocID)
		}
	}
}

func TestQueryTermOutOfRange(t *testing.T) {
	idx, _, docLengths := buildTestIndex(t)
	_, err := QueryTAAT(idx, []QueryTerm{{TermID: 99, QueryFreq: 1, DocFreq: 1}}, docLengths, 20, 3)
	if err == nil {
		t.Fatal("expected error for out-of-range term id")
	}
}
