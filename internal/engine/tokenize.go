package engine

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/AnechkaShv/wordcloud-generator/internal/params"
)

// Tokenize splits text on whitespace and trims punctuation around each word.
// Case is left untouched; Count folds it.
func Tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		word := strings.TrimFunc(field, isTrimmable)
		word = trimPossessive(word)
		if word != "" {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func isTrimmable(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func trimPossessive(word string) string {
	for _, suffix := range []string{"'s", "’s", "'S", "’S"} {
		if trimmed, ok := strings.CutSuffix(word, suffix); ok && trimmed != "" {
			return trimmed
		}
	}
	return word
}

func isNumeric(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// WordCount is one entry of a frequency table.
type WordCount struct {
	Word  string
	Count int
}

// Frequencies is sorted by descending count, ties alphabetically.
type Frequencies []WordCount

// Count builds the frequency table for tokens. Words are grouped and matched
// against stopwords case-insensitively; each entry is shown in its most common
// spelling. Tokens shorter than minLen runes and pure numbers are skipped.
func Count(tokens []string, stopwords params.StopwordSet, minLen int) Frequencies {
	fold := cases.Fold()

	folded := make(params.StopwordSet, len(stopwords))
	for w := range stopwords {
		folded.Add(fold.String(w))
	}

	variants := make(map[string]map[string]int)
	for _, token := range tokens {
		if len([]rune(token)) < minLen || isNumeric(token) {
			continue
		}
		key := fold.String(token)
		if folded.Contains(key) {
			continue
		}
		if variants[key] == nil {
			variants[key] = make(map[string]int)
		}
		variants[key][token]++
	}

	freqs := make(Frequencies, 0, len(variants))
	for _, spellings := range variants {
		var (
			total    int
			best     string
			bestSeen int
		)
		for spelling, n := range spellings {
			total += n
			if n > bestSeen || (n == bestSeen && spelling < best) {
				best, bestSeen = spelling, n
			}
		}
		freqs = append(freqs, WordCount{Word: best, Count: total})
	}

	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Count != freqs[j].Count {
			return freqs[i].Count > freqs[j].Count
		}
		return freqs[i].Word < freqs[j].Word
	})
	return freqs
}

// Top keeps the n most frequent words. n <= 0 keeps everything.
func (f Frequencies) Top(n int) Frequencies {
	if n <= 0 || n >= len(f) {
		return f
	}
	return f[:n]
}

func (f Frequencies) Map() map[string]int {
	m := make(map[string]int, len(f))
	for _, wc := range f {
		m[wc.Word] = wc.Count
	}
	return m
}

// MaxCount returns the count of the most frequent word.
func (f Frequencies) MaxCount() int {
	if len(f) == 0 {
		return 0
	}
	return f[0].Count
}
