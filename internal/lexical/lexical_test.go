package lexical

import (
	"reflect"
	"testing"
)

func TestAnalyzeDropsStopwordsAndStems(t *testing.T) {
	got := Analyze("The Quick Brown Fox Jumps!")
	want := []string{"quick", "brown", "fox", "jump"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Analyze() = %v, want %v", got, want)
	}
}

func TestAnalyzeWithConfigNoStemming(t *testing.T) {
	cfg := Config{MinTokenLength: 2, EnableStemming: false, EnableStopwords: true}
	got := AnalyzeWithConfig("Running dogs", cfg)
	want := []string{"running", "dogs"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AnalyzeWithConfig() = %v, want %v", got, want)
	}
}

func TestAnalyzeMinTokenLength(t *testing.T) {
	cfg := Config{MinTokenLength: 3, EnableStemming: false, EnableStopwords: false}
	got := AnalyzeWithConfig("a go cat i", cfg)
	want := []string{"cat"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AnalyzeWithConfig() = %v, want %v", got, want)
	}
}

func TestVocabularyInternIsStable(t *testing.T) {
	v := NewVocabulary()
	ids1 := v.AnalyzeToTermIDs("quick brown fox")
	ids2 := v.AnalyzeToTermIDs("quick fox jumps")

	if ids1[0] != ids2[0] {
		t.Errorf("term %q got different ids across calls: %d vs %d", "quick", ids1[0], ids2[0])
	}
	if v.Term(ids1[0]) != "quick" {
		t.Errorf("Term(%d) = %q, want %q", ids1[0], v.Term(ids1[0]), "quick")
	}
	if v.Len() != 4 {
		t.Errorf("Len() = %d, want 4 (quick, brown, fox, jump)", v.Len())
	}
}
