// Package store persists extraction results per learner. Every operation is
// best-effort: failures are logged and reported as missing data.
package store

import (
	"encoding/json"

	"vokabel/internal/domain"
	"vokabel/internal/repository"

	"go.uber.org/zap"
)

// Fixed storage keys, one per bucket
const (
	WordsKey      = "german-words"
	SentencesKey  = "german-sentences"
	SourceTextKey = "german-source-text"
)

// Store reads and writes the word, sentence and source text buckets
type Store struct {
	kv     repository.KVRepository
	logger *zap.Logger
}

// New creates a new store
func New(kv repository.KVRepository, logger *zap.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger,
	}
}

// SaveWords overwrites the word list
func (s *Store) SaveWords(userID int64, words []domain.Word) {
	s.saveJSON(userID, WordsKey, words)
}

// LoadWords returns the stored word list, false if absent or unreadable
func (s *Store) LoadWords(userID int64) ([]domain.Word, bool) {
	var words []domain.Word
	if !s.loadJSON(userID, WordsKey, &words) {
		return nil, false
	}
	return words, true
}

// ClearWords removes the word list
func (s *Store) ClearWords(userID int64) {
	s.remove(userID, WordsKey)
}

// SaveSentences overwrites the sentence list
func (s *Store) SaveSentences(userID int64, sentences []domain.Sentence) {
	s.saveJSON(userID, SentencesKey, sentences)
}

// LoadSentences returns the stored sentence list, false if absent or unreadable
func (s *Store) LoadSentences(userID int64) ([]domain.Sentence, bool) {
	var sentences []domain.Sentence
	if !s.loadJSON(userID, SentencesKey, &sentences) {
		return nil, false
	}
	return sentences, true
}

// ClearSentences removes the sentence list
func (s *Store) ClearSentences(userID int64) {
	s.remove(userID, SentencesKey)
}

// SaveSourceText stores the raw text as is
func (s *Store) SaveSourceText(userID int64, text string) {
	if err := s.kv.Set(userID, SourceTextKey, text); err != nil {
		s.logger.Error("Failed to save source text", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// LoadSourceText returns the stored raw text, false if absent or unreadable
func (s *Store) LoadSourceText(userID int64) (string, bool) {
	text, found, err := s.kv.Get(userID, SourceTextKey)
	if err != nil {
		s.logger.Error("Failed to load source text", zap.Int64("user_id", userID), zap.Error(err))
		return "", false
	}
	return text, found && text != ""
}

// ClearSourceText removes the raw text
func (s *Store) ClearSourceText(userID int64) {
	s.remove(userID, SourceTextKey)
}

// ClearAll removes words, sentences and source text together
func (s *Store) ClearAll(userID int64) {
	s.remove(userID, WordsKey, SentencesKey, SourceTextKey)
}

func (s *Store) saveJSON(userID int64, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("Failed to encode value", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.kv.Set(userID, key, string(data)); err != nil {
		s.logger.Error("Failed to save value",
			zap.Int64("user_id", userID),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func (s *Store) loadJSON(userID int64, key string, v any) bool {
	data, found, err := s.kv.Get(userID, key)
	if err != nil {
		s.logger.Error("Failed to load value",
			zap.Int64("user_id", userID),
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	if !found || data == "" {
		return false
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		s.logger.Error("Failed to decode value",
			zap.Int64("user_id", userID),
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (s *Store) remove(userID int64, keys ...string) {
	if err := s.kv.Delete(userID, keys...); err != nil {
		s.logger.Error("Failed to clear values",
			zap.Int64("user_id", userID),
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
}
