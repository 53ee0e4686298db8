package postings

import "testing"

func syntheticPostings(n int) ([]uint32, []uint32) {
	docs := make([]uint32, n)
	freqs := make([]uint32, n)
	var d uint32
	for i := 0; i < n; i++ {
		d += uint32(1 + i%5)
		docs[i] = d
		freqs[i] = uint32(1 + i%7)
	}
	return docs, freqs
}

func TestCursorWalksAllPostings(t *testing.T) {
	for _, n := range []int{1, 5, 127, 128, 129, 300} {
		docs, freqs := syntheticPostings(n)
		data := Write(docs, freqs)
		c := NewCursor(data, uint64(docs[len(docs)-1])+100)

		if c.Size() != uint64(n) {
			t.Fatalf("n=%d: Size() = %d, want %d", n, c.Size(), n)
		}
		for i := 0; i < n; i++ {
			if c.Value() != uint64(docs[i]) {
				t.Fatalf("n=%d: posting %d docid = %d, want %d", n, i, c.Value(), docs[i])
			}
			if c.Freq() != freqs[i] {
				t.Fatalf("n=%d: posting %d freq = %d, want %d", n, i, c.Freq(), freqs[i])
			}
			if i < n-1 {
				c.Advance()
			}
		}
		if v := c.Advance(); v != c.Sentinel() {
			t.Fatalf("n=%d: Advance() past end = %d, want sentinel %d", n, v, c.Sentinel())
		}
	}
}

func TestAdvanceToGeq(t *testing.T) {
	docs, freqs := syntheticPostings(300)
	data := Write(docs, freqs)
	c := NewCursor(data, uint64(docs[len(docs)-1])+1)

	for _, target := range []int{0, 50, 150, len(docs) - 1} {
		c2 := NewCursor(data, c.Sentinel())
		lb := docs[target]
		got := c2.AdvanceToGeq(uint64(lb))
		if got != uint64(lb) {
			t.Errorf("AdvanceToGeq(%d) = %d, want %d", lb, got, lb)
		}
	}

	c3 := NewCursor(data, c.Sentinel())
	if got := c3.AdvanceToGeq(uint64(docs[len(docs)-1]) + 1); got != c3.Sentinel() {
		t.Errorf("AdvanceToGeq past end = %d, want sentinel %d", got, c3.Sentinel())
	}
}

func TestAdvanceToPosition(t *testing.T) {
	docs, freqs := syntheticPostings(300)
	data := Write(docs, freqs)
	c := NewCursor(data, uint64(docs[len(docs)-1])+1)

	for _, p := range []uint64{0, 127, 128, 200, 299} {
		if got := c.AdvanceToPosition(p); got != uint64(docs[p]) {
			t.Errorf("AdvanceToPosition(%d) = %d, want %d", p, got, docs[p])
		}
	}
}
