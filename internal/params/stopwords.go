package params

import (
	"sort"
	"strings"
)

// StopwordSet holds words excluded from the cloud.
type StopwordSet map[string]struct{}

// Italian articles and articulated prepositions.
var italianStopwords = [...]string{
	"il", "lo", "la", "i", "gli", "le", // articoli determinativi
	"un", "uno", "una", // articoli indeterminativi
	"del", "dello", "della", "dei", "degli", "delle", // preposizioni articolate
	"al", "allo", "alla", "ai", "agli", "alle",
	"dal", "dallo", "dalla", "dai", "dagli", "dalle",
	"nel", "nello", "nella", "nei", "negli", "nelle",
	"sul", "sullo", "sulla", "sui", "sugli", "sulle",
}

// BaseStopwords returns a fresh copy of the built-in Italian stoplist.
func BaseStopwords() StopwordSet {
	return NewStopwordSet(italianStopwords[:]...)
}

func NewStopwordSet(words ...string) StopwordSet {
	s := make(StopwordSet, len(words))
	s.Add(words...)
	return s
}

func (s StopwordSet) Add(words ...string) {
	for _, w := range words {
		if w == "" {
			continue
		}
		s[w] = struct{}{}
	}
}

func (s StopwordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

func (s StopwordSet) Clone() StopwordSet {
	c := make(StopwordSet, len(s))
	for w := range s {
		c[w] = struct{}{}
	}
	return c
}

// Sorted returns the words in lexical order.
func (s StopwordSet) Sorted() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// ParseExtra splits a comma-separated list of user stopwords. Tokens are
// trimmed and empty ones (trailing or doubled commas) are dropped.
func ParseExtra(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var words []string
	for _, part := range strings.Split(raw, ",") {
		word := strings.TrimSpace(part)
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}

// Merge returns the union of base and the parsed extra words. base is not modified.
func Merge(base StopwordSet, raw string) StopwordSet {
	merged := base.Clone()
	merged.Add(ParseExtra(raw)...)
	return merged
}
