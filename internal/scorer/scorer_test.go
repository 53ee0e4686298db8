package scorer

import (
	"math"
	"testing"
)

func TestDocTermWeightMonotonicInFreq(t *testing.T) {
	low := DocTermWeight(1, 1.0)
	high := DocTermWeight(5, 1.0)
	if !(low < high) {
		t.Errorf("DocTermWeight should increase with freq: low=%v high=%v", low, high)
	}
}

func TestDocTermWeightPenalizesLongDocs(t *testing.T) {
	short := DocTermWeight(2, 0.5)
	long := DocTermWeight(2, 2.0)
	if !(short > long) {
		t.Errorf("DocTermWeight should decrease as normalized length grows: short=%v long=%v", short, long)
	}
}

func TestQueryTermWeightRareTermsScoreHigher(t *testing.T) {
	rare := QueryTermWeight(1, 2, 1000)
	common := QueryTermWeight(1, 500, 1000)
	if !(rare > common) {
		t.Errorf("rare term weight (%v) should exceed common term weight (%v)", rare, common)
	}
}

func TestQueryTermWeightLinearInQF(t *testing.T) {
	w1 := QueryTermWeight(1, 10, 1000)
	w3 := QueryTermWeight(3, 10, 1000)
	if math.Abs(w3-3*w1) > 1e-9 {
		t.Errorf("QueryTermWeight(3,...) = %v, want 3*%v = %v", w3, w1, 3*w1)
	}
}

func TestNormLen(t *testing.T) {
	if got := NormLen(50, 100); got != 0.5 {
		t.Errorf("NormLen(50,100) = %v, want 0.5", got)
	}
}

func TestTermScorerScore(t *testing.T) {
	ts := ForTerm(1, 5, 1000, 100)
	got := ts.Score(3, 120)
	want := ts.QueryWeight * DocTermWeight(3, NormLen(120, 100))
	if got != want {
		t.Errorf("Score() = %v, want %v", got, want)
	}
}

func TestQuantizeDequantizeRoundTrip(t *testing.T) {
	q := Quantizer{SMax: 10, Bits: 8}
	for _, s := range []float64{0, 2.5, 5, 7.3, 10} {
		qv := q.Quantize(s)
		back := q.Dequantize(qv)
		if math.Abs(back-s) > q.SMax/float64(uint64(1)<<q.Bits-1)+1e-9 {
			t.Errorf("Quantize/Dequantize(%v) round-tripped to %v, too far off", s, back)
		}
	}
}

func TestQuantizeClampsOutOfRange(t *testing.T) {
	q := Quantizer{SMax: 10, Bits: 4}
	if got := q.Quantize(-5); got != 0 {
		t.Errorf("Quantize(-5) = %d, want 0", got)
	}
	if got := q.Quantize(100); got != 15 {
		t.Errorf("Quantize(100) = %d, want 15 (max level)", got)
	}
}

func TestQuantizerZeroSMax(t *testing.T) {
	q := Quantizer{SMax: 0, Bits: 8}
	if q.Quantize(5) != 0 {
		t.Errorf("Quantize with SMax=0 should be 0")
	}
	if q.Dequantize(200) != 0 {
		t.Errorf("Dequantize with SMax=0 should be 0")
	}
}
