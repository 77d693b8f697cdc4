package extract

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"vokabel/internal/domain"
	"vokabel/internal/testutil"
	"vokabel/internal/translate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offlineTranslator behaves like a client whose providers are all unreachable
func offlineTranslator() *translate.Client {
	return translate.NewClient(testutil.NewTestLogger(), nil)
}

type prefixTranslator struct {
	mu    sync.Mutex
	calls int
}

func (p *prefixTranslator) TranslateWord(_ context.Context, word string) string {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	return "en:" + word
}

func (p *prefixTranslator) TranslateSentence(_ context.Context, sentence string) string {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	return "en:" + sentence
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected domain.WordType
	}{
		{name: "capitalized noun", token: "Hund", expected: domain.WordTypeNoun},
		{name: "capitalized umlaut", token: "Äpfel", expected: domain.WordTypeNoun},
		{name: "capitalized with verb ending", token: "Laufen", expected: domain.WordTypeNoun},
		{name: "capitalized with adjective ending", token: "Freundlich", expected: domain.WordTypeNoun},
		{name: "infinitive", token: "laufen", expected: domain.WordTypeVerb},
		{name: "third person", token: "läuft", expected: domain.WordTypeVerb},
		{name: "past tense", token: "spielte", expected: domain.WordTypeVerb},
		{name: "ending n", token: "schön", expected: domain.WordTypeVerb},
		{name: "adjective lich", token: "freundlich", expected: domain.WordTypeAdjective},
		{name: "adjective ig", token: "wichtig", expected: domain.WordTypeAdjective},
		{name: "adjective bar", token: "fahrbar", expected: domain.WordTypeAdjective},
		{name: "adjective isch", token: "typisch", expected: domain.WordTypeAdjective},
		{name: "no pattern", token: "schnell", expected: domain.WordTypeUnclassified},
		{name: "lowercase umlaut start", token: "über", expected: domain.WordTypeUnclassified},
		{name: "digits", token: "123", expected: domain.WordTypeUnclassified},
		{name: "sharp s start", token: "ßab", expected: domain.WordTypeUnclassified},
		{name: "empty", token: "", expected: domain.WordTypeUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.token))
		})
	}
}

func TestCleanToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "trailing punctuation", input: "schläft.", expected: "schläft"},
		{name: "quotes and comma", input: `"Hund",`, expected: "Hund"},
		{name: "umlauts and sharp s", input: "Straße!", expected: "Straße"},
		{name: "accented letter removed", input: "Café", expected: "Caf"},
		{name: "only punctuation", input: "...", expected: ""},
		{name: "digits and underscore kept", input: "a_1", expected: "a_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanToken(tt.input))
		})
	}
}

func TestExtractWords_Scenario(t *testing.T) {
	e := NewExtractor(offlineTranslator(), testutil.NewTestLogger())

	words := e.ExtractWords(context.Background(), "Der Hund läuft schnell. Die Katze schläft.")

	require.Len(t, words, 6)

	byGerman := make(map[string]domain.Word)
	for _, w := range words {
		byGerman[w.German] = w
	}

	hund, ok := byGerman["Hund"]
	require.True(t, ok)
	assert.Equal(t, domain.WordTypeNoun, hund.Type)
	assert.Equal(t, "Hund", hund.English)
	assert.Equal(t, "Der Hund läuft schnell", hund.Example)

	verb, ok := byGerman["läuft"]
	require.True(t, ok)
	assert.Equal(t, domain.WordTypeVerb, verb.Type)
	assert.Equal(t, "Läuft", verb.English)

	_, ok = byGerman["schnell"]
	assert.False(t, ok)

	assert.Equal(t, []string{"Der", "Hund", "läuft", "Die", "Katze", "schläft"}, germanForms(words))
	assert.Equal(t, "Der Hund läuft schnell  Die Katze schläft", words[0].Context)
}

func TestExtractWords_Deduplicates(t *testing.T) {
	e := NewExtractor(offlineTranslator(), testutil.NewTestLogger())

	words := e.ExtractWords(context.Background(), "laufen Hund hund HUND Laufen laufen")

	require.Len(t, words, 2)
	assert.Equal(t, "laufen", words[0].German)
	assert.Equal(t, domain.WordTypeVerb, words[0].Type)
	assert.Equal(t, "Hund", words[1].German)
	assert.Equal(t, domain.WordTypeNoun, words[1].Type)
}

func TestExtractWords_Limit(t *testing.T) {
	var tokens []string
	for i := 0; i < 80; i++ {
		tokens = append(tokens, fmt.Sprintf("Wort%c%c", 'a'+i/26, 'a'+i%26))
	}
	text := strings.Join(tokens, " ")

	translator := &prefixTranslator{}
	e := NewExtractor(translator, testutil.NewTestLogger())

	words := e.ExtractWords(context.Background(), text)

	require.Len(t, words, DefaultWordLimit)
	assert.Equal(t, "Wortaa", words[0].German)
	assert.Equal(t, tokens[49], words[49].German)
	assert.Equal(t, DefaultWordLimit, translator.calls)
}

func TestExtractWords_CustomLimit(t *testing.T) {
	e := NewExtractor(offlineTranslator(), testutil.NewTestLogger(), WithWordLimit(2))

	words := e.ExtractWords(context.Background(), "Hund Katze Maus Vogel")

	assert.Equal(t, []string{"Hund", "Katze"}, germanForms(words))
}

func TestExtractWords_Properties(t *testing.T) {
	text := `Am Morgen spielte das Kind fröhlich im Garten. Danach aß es einen Apfel!
Die Mutter rief: "Komm rein, das Essen wartet." Das Kind lief schnell nach Hause,
wo der Vater freundlich lachte und die Zeitung las. Später spielten sie zusammen
ein lustiges Spiel, das wirklich spannend und unvergesslich war.`

	e := NewExtractor(offlineTranslator(), testutil.NewTestLogger())

	words := e.ExtractWords(context.Background(), text)

	assert.NotEmpty(t, words)
	assert.LessOrEqual(t, len(words), DefaultWordLimit)

	seen := make(map[string]bool)
	for _, w := range words {
		assert.False(t, seen[w.Key()], "duplicate word %q", w.German)
		seen[w.Key()] = true

		assert.NotEqual(t, domain.WordTypeUnclassified, w.Type)
		assert.GreaterOrEqual(t, runeLen(w.German), minCleanLength)
		assert.Equal(t, translate.Fallback(w.German), w.English)
		assert.LessOrEqual(t, runeLen(w.Example), snippetMaxLength)
		if w.Type == domain.WordTypeNoun {
			assert.True(t, isCapitalized(w.German))
		} else {
			assert.False(t, isCapitalized(w.German))
		}
	}
}

func TestExtractWords_TokenLengthBounds(t *testing.T) {
	e := NewExtractor(offlineTranslator(), testutil.NewTestLogger())

	nineteen := "A" + strings.Repeat("b", 18)
	twenty := "C" + strings.Repeat("d", 19)

	words := e.ExtractWords(context.Background(), "Ab "+nineteen+" "+twenty+" ... a-b-c")

	assert.Equal(t, []string{nineteen}, germanForms(words))
}

func TestExtractWords_EmptyInput(t *testing.T) {
	e := NewExtractor(offlineTranslator(), testutil.NewTestLogger())

	assert.Empty(t, e.ExtractWords(context.Background(), ""))
	assert.Empty(t, e.ExtractWords(context.Background(), "... !!! ???"))
}

func TestExtractWords_ConcurrencyKeepsOrder(t *testing.T) {
	var tokens []string
	for i := 0; i < 40; i++ {
		tokens = append(tokens, fmt.Sprintf("Nomen%c%c", 'a'+i/26, 'a'+i%26))
	}

	sequential := NewExtractor(&prefixTranslator{}, testutil.NewTestLogger())
	parallel := NewExtractor(&prefixTranslator{}, testutil.NewTestLogger(), WithConcurrency(8))

	text := strings.Join(tokens, " ")
	want := sequential.ExtractWords(context.Background(), text)
	got := parallel.ExtractWords(context.Background(), text)

	assert.Equal(t, want, got)
	assert.Equal(t, tokens, germanForms(got))
}

func TestShortSentence(t *testing.T) {
	long := "Donaudampfschiff Kapitänsmütze Straßenbahnhaltestelle Geschwindigkeit Verantwortung"

	tests := []struct {
		name     string
		sentence string
		word     string
		expected string
	}{
		{
			name:     "middle of sentence",
			sentence: "eins zwei drei vier fünf sechs sieben",
			word:     "vier",
			expected: "zwei drei vier fünf sechs",
		},
		{
			name:     "start clamps",
			sentence: "eins zwei drei vier fünf",
			word:     "eins",
			expected: "eins zwei drei",
		},
		{
			name:     "end clamps",
			sentence: "eins zwei drei vier fünf",
			word:     "fünf",
			expected: "drei vier fünf",
		},
		{
			name:     "case insensitive substring",
			sentence: "Der Hundehalter geht",
			word:     "hund",
			expected: "Der Hundehalter geht",
		},
		{
			name:     "truncated with ellipsis",
			sentence: long,
			word:     "Straßenbahnhaltestelle",
			expected: "Donaudampfschiff Kapitänsmütze Straßenbahnhalte...",
		},
		{
			name:     "no match returns prefix",
			sentence: long,
			word:     "xyz",
			expected: "Donaudampfschiff Kapitänsmütze Straßenbahnhalteste",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shortSentence(tt.sentence, tt.word))
		})
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "scenario",
			text:     "Der Hund läuft schnell. Die Katze schläft.",
			expected: []string{"Der Hund läuft schnell", "Die Katze schläft."},
		},
		{
			name:     "short fragments dropped",
			text:     "Kurz. Dies ist ein längerer Satz!\nNoch ein Absatz mit Text",
			expected: []string{"Dies ist ein längerer Satz", "Noch ein Absatz mit Text"},
		},
		{
			name:     "blank lines split",
			text:     "Erster Absatz ohne Punkt\n\n\nZweiter Absatz ohne Punkt",
			expected: []string{"Erster Absatz ohne Punkt", "Zweiter Absatz ohne Punkt"},
		},
		{
			name:     "punctuation runs",
			text:     "Wirklich wahr?!?! Ja, wirklich wahr...  Gut",
			expected: []string{"Wirklich wahr", "Ja, wirklich wahr"},
		},
		{
			name:     "exactly ten characters dropped",
			text:     "abcdefghij. abcdefghijk.",
			expected: []string{"abcdefghijk."},
		},
		{
			name:     "no-break space after terminator",
			text:     "Das ist Satz eins.\u00a0Das ist Satz zwei.",
			expected: []string{"Das ist Satz eins", "Das ist Satz zwei."},
		},
		{
			name:     "unicode spaces after terminator",
			text:     "Das ist Satz eins!\u2009Das ist Satz zwei?\u3000Das ist Satz drei.",
			expected: []string{"Das ist Satz eins", "Das ist Satz zwei", "Das ist Satz drei."},
		},
		{
			name:     "empty",
			text:     "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitSentences(tt.text))
		})
	}
}

func TestSplitSentences_LengthBounds(t *testing.T) {
	text := strings.Repeat("a", 499) + ". " + strings.Repeat("b", 500) + ". " + strings.Repeat("c", 11)

	sentences := SplitSentences(text)

	require.Len(t, sentences, 2)
	assert.Equal(t, strings.Repeat("a", 499), sentences[0])
	assert.Equal(t, strings.Repeat("c", 11), sentences[1])
}

func TestWordsInSentence(t *testing.T) {
	dict := domain.NewDictionary([]domain.Word{
		{German: "Hund", English: "dog", Type: domain.WordTypeNoun},
		{German: "läuft", English: "runs", Type: domain.WordTypeVerb},
		{German: "Der", English: "The", Type: domain.WordTypeNoun},
	})

	words := WordsInSentence("Der Hund läuft, der Hund läuft! Die Katze.", dict)

	require.Len(t, words, 3)
	assert.Equal(t, []string{"Der", "Hund", "läuft"}, germanForms(words))
	assert.Empty(t, WordsInSentence("Die Katze schläft.", dict))
	assert.Empty(t, WordsInSentence("Der Hund", nil))
}

func TestExtractSentences_Scenario(t *testing.T) {
	e := NewExtractor(offlineTranslator(), testutil.NewTestLogger())
	text := "Der Hund läuft schnell. Die Katze schläft."

	words := e.ExtractWords(context.Background(), text)
	sentences := e.ExtractSentences(context.Background(), text, domain.NewDictionary(words))

	require.Len(t, sentences, 2)

	assert.Equal(t, 0, sentences[0].Index)
	assert.Equal(t, "Der Hund läuft schnell", sentences[0].Original)
	assert.Equal(t, sentences[0].Original, sentences[0].Translation)
	assert.Equal(t, []string{"Der", "Hund", "läuft"}, germanForms(sentences[0].Words))

	assert.Equal(t, 1, sentences[1].Index)
	assert.Equal(t, "Die Katze schläft.", sentences[1].Original)
	assert.Equal(t, sentences[1].Original, sentences[1].Translation)
	assert.Equal(t, []string{"Die", "Katze", "schläft"}, germanForms(sentences[1].Words))
}

func TestExtractSentences_IndexIsCompacted(t *testing.T) {
	e := NewExtractor(&prefixTranslator{}, testutil.NewTestLogger(), WithConcurrency(3))
	text := "Ja. Das ist der erste Satz. Ok. Das ist der zweite Satz. Nein. Das ist der dritte Satz."

	sentences := e.ExtractSentences(context.Background(), text, nil)

	require.Len(t, sentences, 3)
	for i, s := range sentences {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, "en:"+s.Original, s.Translation)
		assert.Empty(t, s.Words)
	}
	assert.Equal(t, "Das ist der dritte Satz.", sentences[2].Original)
}

func TestExtractSentences_NoQualifyingSentences(t *testing.T) {
	translator := &prefixTranslator{}
	e := NewExtractor(translator, testutil.NewTestLogger())

	sentences := e.ExtractSentences(context.Background(), "Kurz. Zu kurz.", nil)

	assert.Empty(t, sentences)
	assert.Equal(t, 0, translator.calls)
}

func germanForms(words []domain.Word) []string {
	forms := make([]string, 0, len(words))
	for _, w := range words {
		forms = append(forms, w.German)
	}
	return forms
}
