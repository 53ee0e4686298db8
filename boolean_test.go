package blaze

import (
	"testing"

	"github.com/wizenheimer/blazecore/internal/invindex"
)

func buildBooleanTestIndex(t *testing.T) *Index {
	t.Helper()
	const numDocs = 10
	termPostings := []invindex.TermPostings{
		{Docs: []uint32{0, 1, 2, 3}, Freqs: []uint32{1, 1, 1, 1}}, // term 0: "cat"
		{Docs: []uint32{2, 3, 4, 5}, Freqs: []uint32{1, 1, 1, 1}}, // term 1: "dog"
		{Docs: []uint32{6, 7}, Freqs: []uint32{1, 1}},             // term 2: "snake"
	}
	data, err := invindex.Build(termPostings, numDocs, DefaultGlobalParameters())
	if err != nil {
		t.Fatalf("invindex.Build: %v", err)
	}
	idx, err := OpenIndex(data)
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	return idx
}

func TestBooleanAnd(t *testing.T) {
	idx := buildBooleanTestIndex(t)
	got := AllOf(idx, 0, 1).ToArray()
	want := []uint32{2, 3}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("AllOf(0,1) = %v, want %v", got, want)
	}
}

func TestBooleanOr(t *testing.T) {
	idx := buildBooleanTestIndex(t)
	got := AnyOf(idx, 0, 2).ToArray()
	want := []uint32{0, 1, 2, 3, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("AnyOf(0,2) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AnyOf(0,2)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBooleanAndNot(t *testing.T) {
	idx := buildBooleanTestIndex(t)
	// cat AND NOT dog => docs 0, 1
	got := NewBooleanQuery(idx).Term(0).And().Not().Term(1).Execute().ToArray()
	want := []uint32{0, 1}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("cat AND NOT dog = %v, want %v", got, want)
	}
}

func TestBooleanGroup(t *testing.T) {
	idx := buildBooleanTestIndex(t)
	// (cat OR snake) AND NOT dog => docs 0, 1, 6, 7
	got := NewBooleanQuery(idx).
		Group(func(q *BooleanQuery) { q.Term(0).Or().Term(2) }).
		And().Not().Term(1).
		Execute().ToArray()
	want := []uint32{0, 1, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
