package testutil

import (
	"context"

	"vokabel/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockLearnerRepository is a mock for LearnerRepository
type MockLearnerRepository struct {
	mock.Mock
}

func (m *MockLearnerRepository) GetLearner(userID int64) (*domain.Learner, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Learner), args.Error(1)
}

func (m *MockLearnerRepository) AuthorizeLearner(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockLearnerRepository) EnsureLearnerExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockKVRepository is a mock for KVRepository
type MockKVRepository struct {
	mock.Mock
}

func (m *MockKVRepository) Get(userID int64, key string) (string, bool, error) {
	args := m.Called(userID, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKVRepository) Set(userID int64, key, value string) error {
	args := m.Called(userID, key, value)
	return args.Error(0)
}

func (m *MockKVRepository) Delete(userID int64, keys ...string) error {
	args := m.Called(userID, keys)
	return args.Error(0)
}

func (m *MockKVRepository) DeleteStale(days int) (int64, error) {
	args := m.Called(days)
	return args.Get(0).(int64), args.Error(1)
}

// MockProvider is a mock translation provider. The context argument is not
// recorded so expectations only name the text.
type MockProvider struct {
	mock.Mock
	name string
}

// NewMockProvider creates a mock provider reporting name
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{name: name}
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Translate(_ context.Context, text string) (string, error) {
	args := m.Called(text)
	return args.String(0), args.Error(1)
}

// MockTextSource is a mock for the document text extractor
type MockTextSource struct {
	mock.Mock
}

func (m *MockTextSource) Extract(_ context.Context, data []byte) (string, error) {
	args := m.Called(data)
	return args.String(0), args.Error(1)
}
