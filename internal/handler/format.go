package handler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"vokabel/internal/domain"

	tele "gopkg.in/telebot.v3"
)

const (
	wordsPagePrefix     = "wpage_"
	sentencesPagePrefix = "spage_"
)

func wordTypeLabel(t domain.WordType) string {
	switch t {
	case domain.WordTypeNoun:
		return "noun"
	case domain.WordTypeVerb:
		return "verb"
	case domain.WordTypeAdjective:
		return "adjective"
	default:
		return "other"
	}
}

func formatSummary(s *domain.Summary, source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Done with %s\n\n", source)
	fmt.Fprintf(&b, "📚 Words: %d\n", s.Words)
	fmt.Fprintf(&b, "   nouns %d, verbs %d, adjectives %d\n",
		s.ByType[domain.WordTypeNoun],
		s.ByType[domain.WordTypeVerb],
		s.ByType[domain.WordTypeAdjective],
	)
	fmt.Fprintf(&b, "📖 Sentences: %d\n", s.Sentences)
	if s.UntranslatedWords > 0 {
		fmt.Fprintf(&b, "\n⚠️ %d words could not be translated and are shown as is.", s.UntranslatedWords)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatWord(w domain.Word) string {
	return fmt.Sprintf("🎲 Random word\n\n🇩🇪 %s\n🇬🇧 %s\n🏷 %s\n\n💬 %s",
		w.German, w.English, wordTypeLabel(w.Type), w.Example)
}

func formatWordsPage(words []domain.Word, page, totalPages int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 Words (page %d/%d)\n\n", page, totalPages)
	offset := (page - 1) * wordsPageSize
	for i, w := range words {
		fmt.Fprintf(&b, "%d. %s → %s (%s)\n", offset+i+1, w.German, w.English, wordTypeLabel(w.Type))
	}
	return clip(strings.TrimRight(b.String(), "\n"))
}

func formatSentencesPage(sentences []domain.Sentence, page, totalPages int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📖 Sentences (page %d/%d)\n\n", page, totalPages)
	for _, s := range sentences {
		fmt.Fprintf(&b, "%d. %s\n↳ %s\n", s.Index+1, s.Original, s.Translation)
		if len(s.Words) > 0 {
			german := make([]string, len(s.Words))
			for i, w := range s.Words {
				german[i] = w.German
			}
			fmt.Fprintf(&b, "🔑 %s\n", strings.Join(german, ", "))
		}
		b.WriteString("\n")
	}
	return clip(strings.TrimRight(b.String(), "\n"))
}

// clip keeps a message under the Telegram length limit
func clip(text string) string {
	if utf8.RuneCountInString(text) <= maxMessageLength {
		return text
	}
	return string([]rune(text)[:maxMessageLength-1]) + "…"
}

// pageMarkup builds previous/next navigation plus a menu button
func pageMarkup(prefix string, page, totalPages int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", fmt.Sprintf("%s%d", prefix, page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", fmt.Sprintf("%s%d", prefix, page+1)))
		}
		rows = append(rows, navRow)
	}

	rows = append(rows, markup.Row(btnBack))
	markup.Inline(rows...)
	return markup
}

func parsePage(data, prefix string) (int, error) {
	page, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(data), prefix))
	if err != nil {
		return 0, fmt.Errorf("invalid page %q: %w", data, err)
	}
	if page < 1 {
		return 0, fmt.Errorf("invalid page %d", page)
	}
	return page, nil
}
