// ═══════════════════════════════════════════════════════════════════════════════
// TEXT ANALYSIS OVERVIEW
// ═══════════════════════════════════════════════════════════════════════════════
// This package turns raw document text into term-id streams for toy and test
// collections, through the same multi-stage pipeline the core's ancestor used:
//
// ANALYSIS PIPELINE:
// ------------------
//  1. Tokenization      → Split text into words
//  2. Lowercasing       → Normalize case ("Quick" → "quick")
//  3. Stop word removal → Remove common words ("the", "a", etc.)
//  4. Length filtering  → Remove very short tokens (< MinTokenLength)
//  5. Stemming          → Reduce words to root form ("running" → "run")
//
// It is demoted out of the query-serving path: the core (Index, Cursor,
// internal/retrieval) never imports this package — it speaks TermId only.
// No other package in this module imports lexical, internal/collection's
// tests included; only its own tests exercise it, text in, term ids out.
// ═══════════════════════════════════════════════════════════════════════════════
package lexical

import (
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

// Config controls the analysis pipeline.
//
// This allows customization of the pipeline without touching the functions
// below. MinTokenLength, EnableStemming and EnableStopwords each gate one
// pipeline stage independently.
type Config struct {
	MinTokenLength  int  // minimum token length to keep (default: 2)
	EnableStemming  bool // whether to apply stemming (default: true)
	EnableStopwords bool // whether to remove stopwords (default: true)
}

// DefaultConfig mirrors the reference English pipeline: drop stopwords,
// drop tokens under two characters, stem what remains.
func DefaultConfig() Config {
	return Config{MinTokenLength: 2, EnableStemming: true, EnableStopwords: true}
}

// Analyze tokenizes text with the default configuration.
func Analyze(text string) []string {
	return AnalyzeWithConfig(text, DefaultConfig())
}

// AnalyzeWithConfig runs the tokenize -> lowercase -> stopword ->
// length -> stem pipeline.
func AnalyzeWithConfig(text string, cfg Config) []string {
	tokens := tokenize(text)
	tokens = lowercaseFilter(tokens)
	if cfg.EnableStopwords {
		tokens = stopwordFilter(tokens)
	}
	tokens = lengthFilter(tokens, cfg.MinTokenLength)
	if cfg.EnableStemming {
		tokens = stemmerFilter(tokens)
	}
	return tokens
}

// tokenize splits on any rune that isn't a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func lowercaseFilter(tokens []string) []string {
	r := make([]string, len(tokens))
	for i, t := range tokens {
		r[i] = strings.ToLower(t)
	}
	return r
}

func stopwordFilter(tokens []string) []string {
	r := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !isStopword(t) {
			r = append(r, t)
		}
	}
	return r
}

func lengthFilter(tokens []string, minLength int) []string {
	r := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len(t) >= minLength {
			r = append(r, t)
		}
	}
	return r
}

func stemmerFilter(tokens []string) []string {
	r := make([]string, len(tokens))
	for i, t := range tokens {
		r[i] = snowballeng.Stem(t, false)
	}
	return r
}

func isStopword(token string) bool {
	_, ok := englishStopwords[token]
	return ok
}

var englishStopwords = map[string]struct{}{
	"a":            {},
	"about":        {},
	"above":        {},
	"across":       {},
	"after":        {},
	"afterwards":   {},
	"again":        {},
	"against":      {},
	"all":          {},
	"almost":       {},
	"alone":        {},
	"along":        {},
	"already":      {},
	"also":         {},
	"although":     {},
	"always":       {},
	"am":           {},
	"among":        {},
	"amongst":      {},
	"amoungst":     {},
	"amount":       {},
	"an":           {},
	"and":          {},
	"another":      {},
	"any":          {},
	"anyhow":       {},
	"anyone":       {},
	"anything":     {},
	"anyway":       {},
	"anywhere":     {},
	"are":          {},
	"around":       {},
	"as":           {},
	"at":           {},
	"back":         {},
	"be":           {},
	"became":       {},
	"because":      {},
	"become":       {},
	"becomes":      {},
	"becoming":     {},
	"been":         {},
	"before":       {},
	"beforehand":   {},
	"behind":       {},
	"being":        {},
	"below":        {},
	"beside":       {},
	"besides":      {},
	"between":      {},
	"beyond":       {},
	"bill":         {},
	"both":         {},
	"bottom":       {},
	"but":          {},
	"by":           {},
	"call":         {},
	"can":          {},
	"cannot":       {},
	"cant":         {},
	"co":           {},
	"con":          {},
	"could":        {},
	"couldnt":      {},
	"cry":          {},
	"de":           {},
	"describe":     {},
	"detail":       {},
	"do":           {},
	"done":         {},
	"down":         {},
	"due":          {},
	"during":       {},
	"each":         {},
	"eg":           {},
	"eight":        {},
	"either":       {},
	"eleven":       {},
	"else":         {},
	"elsewhere":    {},
	"empty":        {},
	"enough":       {},
	"etc":          {},
	"even":         {},
	"ever":         {},
	"every":        {},
	"everyone":     {},
	"everything":   {},
	"everywhere":   {},
	"except":       {},
	"few":          {},
	"fifteen":      {},
	"fify":         {},
	"fill":         {},
	"find":         {},
	"fire":         {},
	"first":        {},
	"five":         {},
	"for":          {},
	"former":       {},
	"formerly":     {},
	"forty":        {},
	"found":        {},
	"four":         {},
	"from":         {},
	"front":        {},
	"full":         {},
	"further":      {},
	"get":          {},
	"give":         {},
	"go":           {},
	"had":          {},
	"has":          {},
	"hasnt":        {},
	"have":         {},
	"he":           {},
	"hence":        {},
	"her":          {},
	"here":         {},
	"hereafter":    {},
	"hereby":       {},
	"herein":       {},
	"hereupon":     {},
	"hers":         {},
	"herself":      {},
	"him":          {},
	"himself":      {},
	"his":          {},
	"how":          {},
	"however":      {},
	"hundred":      {},
	"ie":           {},
	"if":           {},
	"in":           {},
	"inc":          {},
	"indeed":       {},
	"interest":     {},
	"into":         {},
	"is":           {},
	"it":           {},
	"its":          {},
	"itself":       {},
	"keep":         {},
	"last":         {},
	"latter":       {},
	"latterly":     {},
	"least":        {},
	"less":         {},
	"ltd":          {},
	"made":         {},
	"many":         {},
	"may":          {},
	"me":           {},
	"meanwhile":    {},
	"might":        {},
	"mill":         {},
	"mine":         {},
	"more":         {},
	"moreover":     {},
	"most":         {},
	"mostly":       {},
	"move":         {},
	"much":         {},
	"must":         {},
	"my":           {},
	"myself":       {},
	"name":         {},
	"namely":       {},
	"neither":      {},
	"never":        {},
	"nevertheless": {},
	"next":         {},
	"nine":         {},
	"no":           {},
	"nobody":       {},
	"none":         {},
	"noone":        {},
	"nor":          {},
	"not":          {},
	"nothing":      {},
	"now":          {},
	"nowhere":      {},
	"of":           {},
	"off":          {},
	"often":        {},
	"on":           {},
	"once":         {},
	"one":          {},
	"only":         {},
	"onto":         {},
	"or":           {},
	"other":        {},
	"others":       {},
	"otherwise":    {},
	"our":          {},
	"ours":         {},
	"ourselves":    {},
	"out":          {},
	"over":         {},
	"own":          {},
	"part":         {},
	"per":          {},
	"perhaps":      {},
	"please":       {},
	"put":          {},
	"rather":       {},
	"re":           {},
	"same":         {},
	"see":          {},
	"seem":         {},
	"seemed":       {},
	"seeming":      {},
	"seems":        {},
	"serious":      {},
	"several":      {},
	"she":          {},
	"should":       {},
	"show":         {},
	"side":         {},
	"since":        {},
	"sincere":      {},
	"six":          {},
	"sixty":        {},
	"so":           {},
	"some":         {},
	"somehow":      {},
	"someone":      {},
	"something":    {},
	"sometime":     {},
	"sometimes":    {},
	"somewhere":    {},
	"still":        {},
	"such":         {},
	"system":       {},
	"take":         {},
	"ten":          {},
	"than":         {},
	"that":         {},
	"the":          {},
	"their":        {},
	"them":         {},
	"themselves":   {},
	"then":         {},
	"thence":       {},
	"there":        {},
	"thereafter":   {},
	"thereby":      {},
	"therefore":    {},
	"therein":      {},
	"thereupon":    {},
	"these":        {},
	"they":         {},
	"thickv":       {},
	"thin":         {},
	"third":        {},
	"this":         {},
	"those":        {},
	"though":       {},
	"three":        {},
	"through":      {},
	"throughout":   {},
	"thru":         {},
	"thus":         {},
	"to":           {},
	"together":     {},
	"too":          {},
	"top":          {},
	"toward":       {},
	"towards":      {},
	"twelve":       {},
	"twenty":       {},
	"two":          {},
	"un":           {},
	"under":        {},
	"until":        {},
	"up":           {},
	"upon":         {},
	"us":           {},
	"very":         {},
	"via":          {},
	"was":          {},
	"we":           {},
	"well":         {},
	"were":         {},
	"what":         {},
	"whatever":     {},
	"when":         {},
	"whence":       {},
	"whenever":     {},
	"where":        {},
	"whereafter":   {},
	"whereas":      {},
	"whereby":      {},
	"wherein":      {},
	"whereupon":    {},
	"wherever":     {},
	"whether":      {},
	"which":        {},
	"while":        {},
	"whither":      {},
	"who":          {},
	"whoever":      {},
	"whole":        {},
	"whom":         {},
	"whose":        {},
	"why":          {},
	"will":         {},
	"with":         {},
	"within":       {},
	"without":      {},
	"would":        {},
	"yet":          {},
	"you":          {},
	"your":         {},
	"yours":        {},
	"yourself":     {},
	"yourselves":   {}}

// Vocabulary assigns stable, increasing term ids to tokens as they are
// first seen, so a toy corpus can be handed to the builder as TermId
// streams.
type Vocabulary struct {
	ids   map[string]uint64
	terms []string
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{ids: make(map[string]uint64)}
}

// Intern returns token's term id, assigning the next free id on first
// sight.
func (v *Vocabulary) Intern(token string) uint64 {
	if id, ok := v.ids[token]; ok {
		return id
	}
	id := uint64(len(v.terms))
	v.ids[token] = id
	v.terms = append(v.terms, token)
	return id
}

// Len returns the number of distinct terms interned so far.
func (v *Vocabulary) Len() int { return len(v.terms) }

// Term returns the token for a term id, or "" if out of range.
func (v *Vocabulary) Term(id uint64) string {
	if id >= uint64(len(v.terms)) {
		return ""
	}
	return v.terms[id]
}

// AnalyzeToTermIDs runs the default pipeline over text and interns each
// resulting token, returning the term-id stream in document order.
func (v *Vocabulary) AnalyzeToTermIDs(text string) []uint64 {
	tokens := Analyze(text)
	ids := make([]uint64, len(tokens))
	for i, t := range tokens {
		ids[i] = v.Intern(t)
	}
	return ids
}
