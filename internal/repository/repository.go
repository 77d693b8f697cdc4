package repository

import "vokabel/internal/domain"

// LearnerRepository defines learner access operations.
// GetLearner returns nil without error for an unknown user.
type LearnerRepository interface {
	GetLearner(userID int64) (*domain.Learner, error)
	AuthorizeLearner(userID int64) error
	EnsureLearnerExists(userID int64) error
}

// KVRepository defines string-keyed storage scoped per user.
// Get reports false for a key that was never set or has been deleted.
type KVRepository interface {
	Get(userID int64, key string) (string, bool, error)
	Set(userID int64, key, value string) error
	Delete(userID int64, keys ...string) error
	DeleteStale(days int) (int64, error)
}
