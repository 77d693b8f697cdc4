// Package extract pulls German vocabulary and example sentences out of plain
// text and attaches English translations.
package extract

import (
	"context"
	"regexp"
	"strings"

	"vokabel/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultWordLimit caps the number of words translated per pass.
	DefaultWordLimit = 50

	snippetRadius    = 2
	snippetMaxLength = 50

	minTokenLength    = 2  // exclusive
	maxTokenLength    = 20 // exclusive
	minCleanLength    = 3
	minSentenceLength = 10  // exclusive
	maxSentenceLength = 500 // exclusive
)

var (
	naiveSentenceBoundary = regexp.MustCompile(`[.!?]+`)
	// RE2 \s is ASCII-only, PDF text layers often carry no-break and other
	// Unicode spaces after the terminator
	sentenceBoundary = regexp.MustCompile(`[.!?]+[\s\p{Zs}\x{2028}\x{2029}\x{FEFF}]|\n{2,}`)
)

// Translator translates single words and whole sentences. Implementations
// must not fail; they return a fallback value instead.
type Translator interface {
	TranslateWord(ctx context.Context, word string) string
	TranslateSentence(ctx context.Context, sentence string) string
}

// Extractor turns text into translated words and sentences.
type Extractor struct {
	translator  Translator
	logger      *zap.Logger
	wordLimit   int
	concurrency int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithWordLimit sets the maximum number of words returned by ExtractWords.
func WithWordLimit(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.wordLimit = n
		}
	}
}

// WithConcurrency sets how many translation requests may be in flight.
// Output order does not depend on it.
func WithConcurrency(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewExtractor creates an extractor translating through translator.
func NewExtractor(translator Translator, logger *zap.Logger, opts ...Option) *Extractor {
	e := &Extractor{
		translator:  translator,
		logger:      logger,
		wordLimit:   DefaultWordLimit,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractWords classifies the words of text and translates the first
// wordLimit unique ones.
func (e *Extractor) ExtractWords(ctx context.Context, text string) []domain.Word {
	candidates := CollectCandidates(text)
	if len(candidates) > e.wordLimit {
		candidates = candidates[:e.wordLimit]
	}

	e.logger.Debug("Collected word candidates", zap.Int("count", len(candidates)))

	words := make([]domain.Word, len(candidates))
	e.each(ctx, len(candidates), func(ctx context.Context, i int) {
		c := candidates[i]
		words[i] = domain.Word{
			German:  c.Word,
			English: e.translator.TranslateWord(ctx, c.Word),
			Type:    c.Type,
			Example: c.Sentence,
			Context: c.Context,
		}
	})

	return words
}

// CollectCandidates returns every classified, unique word of text in order of
// first occurrence.
func CollectCandidates(text string) []domain.WordCandidate {
	seen := make(map[string]bool)
	candidates := []domain.WordCandidate{}

	for _, sentence := range naiveSentences(text) {
		for _, token := range strings.Fields(sentence) {
			if n := runeLen(token); n <= minTokenLength || n >= maxTokenLength {
				continue
			}

			clean := CleanToken(token)
			if runeLen(clean) < minCleanLength {
				continue
			}

			wordType := Classify(clean)
			if wordType == domain.WordTypeUnclassified {
				continue
			}

			key := strings.ToLower(clean)
			if seen[key] {
				continue
			}
			seen[key] = true

			candidates = append(candidates, domain.WordCandidate{
				Word:     clean,
				Type:     wordType,
				Context:  sentence,
				Sentence: shortSentence(sentence, token),
			})
		}
	}

	return candidates
}

// naiveSentences replaces punctuation with spaces and splits on sentence
// terminators. Since the terminators are replaced first, the split only
// separates anything when the input survived normalization with them.
func naiveSentences(text string) []string {
	normalized := nonTextChars.ReplaceAllString(text, " ")

	var sentences []string
	for _, s := range naiveSentenceBoundary.Split(normalized, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// shortSentence returns up to two words either side of word, cut to 50 characters.
func shortSentence(sentence, word string) string {
	words := strings.Fields(sentence)
	lowerWord := strings.ToLower(word)

	idx := -1
	for i, w := range words {
		if strings.Contains(strings.ToLower(w), lowerWord) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return truncateRunes(sentence, snippetMaxLength)
	}

	start := max(0, idx-snippetRadius)
	end := min(len(words), idx+snippetRadius+1)
	snippet := strings.Join(words[start:end], " ")

	if runeLen(snippet) > snippetMaxLength {
		return truncateRunes(snippet, snippetMaxLength-3) + "..."
	}
	return snippet
}

// ExtractSentences splits text into sentences, links the dictionary words each
// one contains and translates it.
func (e *Extractor) ExtractSentences(ctx context.Context, text string, dict domain.Dictionary) []domain.Sentence {
	pieces := SplitSentences(text)

	e.logger.Debug("Split sentences", zap.Int("count", len(pieces)))

	sentences := make([]domain.Sentence, len(pieces))
	e.each(ctx, len(pieces), func(ctx context.Context, i int) {
		sentences[i] = domain.Sentence{
			Original:    pieces[i],
			Translation: e.translator.TranslateSentence(ctx, pieces[i]),
			Words:       WordsInSentence(pieces[i], dict),
			Index:       i,
		}
	})

	return sentences
}

// SplitSentences splits on terminator runs followed by whitespace or on blank
// lines and keeps pieces longer than 10 and shorter than 500 characters.
func SplitSentences(text string) []string {
	sentences := []string{}
	for _, piece := range sentenceBoundary.Split(text, -1) {
		piece = strings.TrimSpace(piece)
		n := runeLen(piece)
		if n <= minSentenceLength || n >= maxSentenceLength {
			continue
		}
		sentences = append(sentences, piece)
	}
	return sentences
}

// WordsInSentence returns the dictionary words found in sentence, each once,
// in order of first appearance.
func WordsInSentence(sentence string, dict domain.Dictionary) []domain.Word {
	words := []domain.Word{}
	found := make(map[string]bool)

	for _, token := range strings.Fields(sentence) {
		clean := strings.ToLower(CleanToken(token))
		if runeLen(clean) < minCleanLength || found[clean] {
			continue
		}
		if word, ok := dict[clean]; ok {
			words = append(words, word)
			found[clean] = true
		}
	}

	return words
}

// each calls fn for 0..n-1, at most e.concurrency at a time. fn writes its
// result by index, so the caller's output order is the input order.
func (e *Extractor) each(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	if e.concurrency <= 1 {
		for i := 0; i < n; i++ {
			fn(ctx, i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
}
