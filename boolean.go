package blaze

import (
	"github.com/RoaringBitmap/roaring"
)

// BooleanQuery is a fluent AND/OR/NOT query builder over an Index's term
// ids, adapted from the teacher's string-keyed QueryBuilder: term
// resolution now walks a term's Cursor into a roaring bitmap instead of
// a precomputed DocBitmaps map, since the core never holds a full
// term-text index in memory. It composes with the core's cursor
// protocol rather than with BM25 scoring directly — scoring a
// BooleanQuery's result set is the caller's job (e.g. via QueryTAAT
// restricted to the matched docs).
type BooleanQuery struct {
	index *Index
	stack []*roaring.Bitmap
	ops   []queryOp
	terms []uint64
	negate bool
}

type queryOp int

const (
	opNone queryOp = iota
	opAnd
	opOr
)

// NewBooleanQuery starts a new query over idx.
func NewBooleanQuery(idx *Index) *BooleanQuery {
	return &BooleanQuery{index: idx}
}

// Term adds termID to the query, applying any pending Not.
func (q *BooleanQuery) Term(termID uint64) *BooleanQuery {
	bitmap, err := q.termBitmap(termID)
	if err != nil {
		bitmap = roaring.NewBitmap()
	} else if !q.negate {
		q.terms = append(q.terms, termID)
	}

	if q.negate {
		bitmap = q.negateBitmap(bitmap)
		q.negate = false
	}

	q.stack = append(q.stack, bitmap)
	return q
}

// And combines the next term/group with the running result via
// intersection.
func (q *BooleanQuery) And() *BooleanQuery {
	q.ops = append(q.ops, opAnd)
	return q
}

// Or combines the next term/group with the running result via union.
func (q *BooleanQuery) Or() *BooleanQuery {
	q.ops = append(q.ops, opOr)
	return q
}

// Not negates the next Term or Group.
func (q *BooleanQuery) Not() *BooleanQuery {
	q.negate = true
	return q
}

// Group evaluates fn as an independent sub-query and folds its result in
// as a single operand, for controlling operator precedence.
func (q *BooleanQuery) Group(fn func(*BooleanQuery)) *BooleanQuery {
	sub := NewBooleanQuery(q.index)
	fn(sub)
	result := sub.Execute()

	if q.negate {
		result = q.negateBitmap(result)
		q.negate = false
	}

	q.stack = append(q.stack, result)
	return q
}

// Execute folds the operand stack left to right through its pending
// AND/OR operations and returns the matching docid bitmap.
func (q *BooleanQuery) Execute() *roaring.Bitmap {
	if len(q.stack) == 0 {
		return roaring.NewBitmap()
	}
	result := q.stack[0]
	for i := 1; i < len(q.stack); i++ {
		if i-1 >= len(q.ops) {
			break
		}
		switch q.ops[i-1] {
		case opAnd:
			result = roaring.And(result, q.stack[i])
		case opOr:
			result = roaring.Or(result, q.stack[i])
		}
	}
	return result
}

// Terms returns the (non-negated) term ids seen by this query, in the
// order they were added — useful for handing the result to a scored
// query alongside Execute's matched docid set.
func (q *BooleanQuery) Terms() []uint64 {
	return append([]uint64(nil), q.terms...)
}

func (q *BooleanQuery) termBitmap(termID uint64) (*roaring.Bitmap, error) {
	cursor, err := q.index.Cursor(termID)
	if err != nil {
		return nil, err
	}
	bitmap := roaring.NewBitmap()
	for cursor.Value() < cursor.Sentinel() {
		bitmap.Add(uint32(cursor.Value()))
		cursor.Advance()
	}
	return bitmap, nil
}

func (q *BooleanQuery) negateBitmap(bitmap *roaring.Bitmap) *roaring.Bitmap {
	allDocs := roaring.NewBitmap()
	allDocs.AddRange(0, q.index.NumDocs())
	return roaring.AndNot(allDocs, bitmap)
}

// AllOf returns the documents containing every given term (AND).
func AllOf(idx *Index, termIDs ...uint64) *roaring.Bitmap {
	if len(termIDs) == 0 {
		return roaring.NewBitmap()
	}
	q := NewBooleanQuery(idx).Term(termIDs[0])
	for _, t := range termIDs[1:] {
		q.And().Term(t)
	}
	return q.Execute()
}

// AnyOf returns the documents containing any given term (OR).
func AnyOf(idx *Index, termIDs ...uint64) *roaring.Bitmap {
	if len(termIDs) == 0 {
		return roaring.NewBitmap()
	}
	q := NewBooleanQuery(idx).Term(termIDs[0])
	for _, t := range termIDs[1:] {
		q.Or().Term(t)
	}
	return q.Execute()
}
