package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"vokabel/internal/domain"
	"vokabel/internal/extract"
	"vokabel/internal/store"
	"vokabel/internal/translate"

	"go.uber.org/zap"
)

// TextSource converts a document payload into plain text
type TextSource interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// StudyService runs the extraction pipeline and serves the stored results
type StudyService struct {
	source    TextSource
	extractor *extract.Extractor
	store     *store.Store
	logger    *zap.Logger
}

// NewStudyService creates a new study service
func NewStudyService(source TextSource, extractor *extract.Extractor, st *store.Store, logger *zap.Logger) *StudyService {
	return &StudyService{
		source:    source,
		extractor: extractor,
		store:     st,
		logger:    logger,
	}
}

// ProcessDocument extracts the text of a document and processes it
func (s *StudyService) ProcessDocument(ctx context.Context, userID int64, data []byte) (*domain.Summary, error) {
	text, err := s.source.Extract(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract document text: %w", err)
	}
	return s.ProcessText(ctx, userID, text), nil
}

// ProcessText extracts words and sentences from text, replacing whatever the
// learner had stored before. Text without usable content yields empty lists.
func (s *StudyService) ProcessText(ctx context.Context, userID int64, text string) *domain.Summary {
	text = strings.TrimSpace(text)

	s.logger.Info("Processing text",
		zap.Int64("user_id", userID),
		zap.Int("length", len(text)),
	)

	words := s.extractor.ExtractWords(ctx, text)
	sentences := s.extractor.ExtractSentences(ctx, text, domain.NewDictionary(words))

	s.store.SaveSourceText(userID, text)
	s.store.SaveWords(userID, words)
	s.store.SaveSentences(userID, sentences)

	summary := summarize(text, words, sentences)

	s.logger.Info("Text processed",
		zap.Int64("user_id", userID),
		zap.Int("words", summary.Words),
		zap.Int("sentences", summary.Sentences),
		zap.Int("untranslated_words", summary.UntranslatedWords),
	)

	return summary
}

func summarize(text string, words []domain.Word, sentences []domain.Sentence) *domain.Summary {
	summary := &domain.Summary{
		Words:        len(words),
		Sentences:    len(sentences),
		ByType:       make(map[domain.WordType]int),
		SourceLength: len([]rune(text)),
	}
	for _, w := range words {
		summary.ByType[w.Type]++
		if w.English == translate.Fallback(w.German) {
			summary.UntranslatedWords++
		}
	}
	return summary
}

// Words returns the stored word list
func (s *StudyService) Words(userID int64) ([]domain.Word, bool) {
	return s.store.LoadWords(userID)
}

// Sentences returns the stored sentence list
func (s *StudyService) Sentences(userID int64) ([]domain.Sentence, bool) {
	return s.store.LoadSentences(userID)
}

// SourceText returns the stored raw text
func (s *StudyService) SourceText(userID int64) (string, bool) {
	return s.store.LoadSourceText(userID)
}

// WordsPage returns one page of stored words and the total page count
func (s *StudyService) WordsPage(userID int64, page, pageSize int) ([]domain.Word, int) {
	words, _ := s.store.LoadWords(userID)
	return paginate(words, page, pageSize)
}

// SentencesPage returns one page of stored sentences and the total page count
func (s *StudyService) SentencesPage(userID int64, page, pageSize int) ([]domain.Sentence, int) {
	sentences, _ := s.store.LoadSentences(userID)
	return paginate(sentences, page, pageSize)
}

// RandomWord returns a random stored word, nil if there are none
func (s *StudyService) RandomWord(userID int64) *domain.Word {
	words, ok := s.store.LoadWords(userID)
	if !ok || len(words) == 0 {
		return nil
	}
	w := words[rand.Intn(len(words))]
	return &w
}

// Clear removes every stored bucket of the learner
func (s *StudyService) Clear(userID int64) {
	s.logger.Info("Clearing study data", zap.Int64("user_id", userID))
	s.store.ClearAll(userID)
}

func paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	if start >= end {
		return nil, totalPages
	}
	return items[start:end], totalPages
}
