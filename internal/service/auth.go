package service

import (
	"crypto/subtle"
	"fmt"

	"vokabel/internal/repository"
)

// AuthService handles the bot password gate
type AuthService struct {
	learnerRepo repository.LearnerRepository
	botPassword string
}

// NewAuthService creates a new auth service
func NewAuthService(learnerRepo repository.LearnerRepository, botPassword string) *AuthService {
	return &AuthService{
		learnerRepo: learnerRepo,
		botPassword: botPassword,
	}
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.botPassword)) == 1
}

// IsAuthorized checks if learner is authorized
func (s *AuthService) IsAuthorized(userID int64) (bool, error) {
	learner, err := s.learnerRepo.GetLearner(userID)
	if err != nil {
		return false, fmt.Errorf("failed to get learner: %w", err)
	}
	return learner.Authorized(), nil
}

// Unlock authorizes the learner when password is correct
func (s *AuthService) Unlock(userID int64, password string) (bool, error) {
	if !s.CheckPassword(password) {
		return false, nil
	}
	if err := s.learnerRepo.AuthorizeLearner(userID); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureLearnerExists creates learner record if doesn't exist
func (s *AuthService) EnsureLearnerExists(userID int64) error {
	return s.learnerRepo.EnsureLearnerExists(userID)
}
