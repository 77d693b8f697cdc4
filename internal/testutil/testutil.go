package testutil

import (
	"sync"
	"time"

	"vokabel/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestLearner creates a test learner, unlocked an hour ago when authorized
func NewTestLearner(userID int64, authorized bool) *domain.Learner {
	learner := &domain.Learner{
		UserID:    userID,
		CreatedAt: time.Now().Add(-24 * time.Hour),
	}
	if authorized {
		at := time.Now().Add(-time.Hour)
		learner.AuthorizedAt = &at
	}
	return learner
}

// NewTestWord creates a test word
func NewTestWord(german, english string, wordType domain.WordType) domain.Word {
	return domain.Word{
		German:  german,
		English: english,
		Type:    wordType,
		Example: german,
	}
}

// NewTestSentence creates a test sentence
func NewTestSentence(index int, original, translation string, words ...domain.Word) domain.Sentence {
	if words == nil {
		words = []domain.Word{}
	}
	return domain.Sentence{
		Original:    original,
		Translation: translation,
		Words:       words,
		Index:       index,
	}
}

// MemoryKV is an in-memory KVRepository
type MemoryKV struct {
	mu   sync.Mutex
	data map[int64]map[string]string
}

// NewMemoryKV creates an empty in-memory KV repository
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[int64]map[string]string)}
}

func (m *MemoryKV) Get(userID int64, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[userID][key]
	return value, ok, nil
}

func (m *MemoryKV) Set(userID int64, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[userID] == nil {
		m.data[userID] = make(map[string]string)
	}
	m.data[userID][key] = value
	return nil
}

func (m *MemoryKV) Delete(userID int64, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data[userID], key)
	}
	return nil
}

func (m *MemoryKV) DeleteStale(days int) (int64, error) {
	return 0, nil
}
