package wand

import "testing"

func TestFixedBlockPartition(t *testing.T) {
	entries := []Entry{
		{DocID: 0, Score: 1.0},
		{DocID: 1, Score: 3.0},
		{DocID: 2, Score: 2.0},
		{DocID: 3, Score: 0.5},
		{DocID: 4, Score: 4.0},
	}

	blocks := FixedBlockPartition(entries, 2)
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}
	want := []Block{
		{LastDocID: 1, MaxScore: 3.0},
		{LastDocID: 3, MaxScore: 2.0},
		{LastDocID: 4, MaxScore: 4.0},
	}
	for i, b := range blocks {
		if b != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, b, want[i])
		}
	}
}

func TestFixedBlockPartitionEmpty(t *testing.T) {
	if got := FixedBlockPartition(nil, 4); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestVariableBlockPartitionCoversAllDocs(t *testing.T) {
	entries := make([]Entry, 37)
	for i := range entries {
		entries[i] = Entry{DocID: uint32(i), Score: float64((i%7)+1) * 0.3}
	}

	blocks := VariableBlockPartition(entries, 0.01, 0.3, 1.0)
	if len(blocks) == 0 {
		t.Fatal("expected at least one block")
	}
	if blocks[len(blocks)-1].LastDocID != entries[len(entries)-1].DocID {
		t.Fatalf("last block docid = %d, want %d", blocks[len(blocks)-1].LastDocID, entries[len(entries)-1].DocID)
	}

	// Every block's max score must actually bound the entries it covers.
	lo := uint32(0)
	for _, b := range blocks {
		var max float64
		for _, e := range entries {
			if e.DocID >= lo && e.DocID <= b.LastDocID {
				if e.Score > max {
					max = e.Score
				}
			}
		}
		if max > b.MaxScore+1e-9 {
			t.Errorf("block [%d,%d] true max %f exceeds stored max %f", lo, b.LastDocID, max, b.MaxScore)
		}
		lo = b.LastDocID + 1
	}
}

func TestBuildOpenRoundTrip(t *testing.T) {
	records := []TermRecord{
		{MaxTermWeight: 2.5, Blocks: []Block{{LastDocID: 3, MaxScore: 2.5}, {LastDocID: 9, MaxScore: 1.1}}},
		{MaxTermWeight: 0.9, Blocks: []Block{{LastDocID: 9, MaxScore: 0.9}}},
	}
	data := Build(records, 10, [5]byte{1, 2, 3, 4, 5})

	wd, err := Open(data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if wd.NumTerms() != 2 {
		t.Fatalf("NumTerms() = %d, want 2", wd.NumTerms())
	}

	for i, r := range records {
		got, err := wd.MaxTermWeight(uint64(i))
		if err != nil {
			t.Fatalf("MaxTermWeight(%d): %v", i, err)
		}
		if got != r.MaxTermWeight {
			t.Errorf("MaxTermWeight(%d) = %f, want %f", i, got, r.MaxTermWeight)
		}

		cur, err := wd.Cursor(uint64(i))
		if err != nil {
			t.Fatalf("Cursor(%d): %v", i, err)
		}
		for _, b := range r.Blocks {
			if cur.DocID() != b.LastDocID {
				t.Fatalf("term %d: DocID() = %d, want %d", i, cur.DocID(), b.LastDocID)
			}
			if cur.Score() != b.MaxScore {
				t.Fatalf("term %d: Score() = %f, want %f", i, cur.Score(), b.MaxScore)
			}
			cur.NextGeq(b.LastDocID + 1)
		}
	}

	if _, err := wd.MaxTermWeight(2); err != ErrTermOutOfRange {
		t.Fatalf("MaxTermWeight(2) err = %v, want ErrTermOutOfRange", err)
	}
}

func TestCursorNextGeqSkipsBlocks(t *testing.T) {
	data := Build([]TermRecord{
		{MaxTermWeight: 5, Blocks: []Block{
			{LastDocID: 10, MaxScore: 5},
			{LastDocID: 20, MaxScore: 3},
			{LastDocID: 30, MaxScore: 1},
		}},
	}, 31, [5]byte{})

	wd, err := Open(data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	cur, err := wd.Cursor(0)
	if err != nil {
		t.Fatalf("Cursor: %v", err)
	}
	cur.NextGeq(25)
	if cur.DocID() != 30 || cur.Score() != 1 {
		t.Fatalf("got (%d, %f), want (30, 1)", cur.DocID(), cur.Score())
	}
}
