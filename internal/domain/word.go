package domain

import "strings"

// WordType is the heuristic part of speech of an extracted word
type WordType string

const (
	WordTypeUnclassified WordType = ""
	WordTypeNoun         WordType = "noun"
	WordTypeVerb         WordType = "verb"
	WordTypeAdjective    WordType = "adjective"
)

// Word represents a German word with its English translation
type Word struct {
	German  string   `json:"german"`
	English string   `json:"english"`
	Type    WordType `json:"type"`
	Example string   `json:"example"`
	Context string   `json:"context,omitempty"`
}

// Key returns the dictionary key of the word (lowercased German form)
func (w Word) Key() string {
	return strings.ToLower(w.German)
}

// WordCandidate is a classified token waiting for translation
type WordCandidate struct {
	Word     string
	Type     WordType
	Context  string
	Sentence string
}

// Dictionary maps lowercased German forms to extracted words
type Dictionary map[string]Word

// NewDictionary indexes words by their key, first occurrence wins
func NewDictionary(words []Word) Dictionary {
	dict := make(Dictionary, len(words))
	for _, w := range words {
		if _, exists := dict[w.Key()]; !exists {
			dict[w.Key()] = w
		}
	}
	return dict
}
