package topk

import "testing"

func TestInsertKeepsTopK(t *testing.T) {
	q := New(3)
	scores := []float64{1, 5, 3, 9, 2, 7}
	for i, s := range scores {
		q.Insert(s, uint64(i))
	}
	got := q.Finalize()
	if len(got) != 3 {
		t.Fatalf("Finalize() len = %d, want 3", len(got))
	}
	want := []float64{9, 7, 5}
	for i, w := range want {
		if got[i].Score != w {
			t.Errorf("result[%d].Score = %v, want %v", i, got[i].Score, w)
		}
	}
}

func TestInsertRejectsBelowThreshold(t *testing.T) {
	q := New(2)
	q.Insert(10, 0)
	q.Insert(20, 1)
	// queue is now full, threshold = 10
	if q.Insert(5, 2) {
		t.Error("Insert(5) should have been rejected: below threshold")
	}
	if !q.Insert(15, 3) {
		t.Error("Insert(15) should have been admitted: above threshold")
	}
}

func TestWouldEnterBeforeFull(t *testing.T) {
	q := New(2)
	if !q.WouldEnter(-1000) {
		t.Error("WouldEnter should be true while under capacity, regardless of score")
	}
	q.Insert(1, 0)
	q.Insert(2, 1)
	if q.WouldEnter(0.5) {
		t.Error("WouldEnter should be false once full and below threshold")
	}
}

func TestSetThreshold(t *testing.T) {
	q := New(5)
	q.SetThreshold(100)
	if q.WouldEnter(50) {
		t.Error("WouldEnter should respect a seeded threshold even under capacity")
	}
	if !q.WouldEnter(150) {
		t.Error("WouldEnter should admit scores above the seeded threshold")
	}
}

func TestFinalizeBreaksTiesByDocID(t *testing.T) {
	q := New(3)
	q.Insert(5, 10)
	q.Insert(5, 2)
	q.Insert(5, 7)
	got := q.Finalize()
	for i := 1; i < len(got); i++ {
		if got[i-1].DocID > got[i].DocID {
			t.Errorf("tie-break order violated: %v before %v", got[i-1], got[i])
		}
	}
}
