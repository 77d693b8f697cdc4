package service

import (
	"vokabel/internal/repository"

	"go.uber.org/zap"
)

// StatsService handles retention cleanup of stored study material
type StatsService struct {
	kvRepo        repository.KVRepository
	retentionDays int
	logger        *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(kvRepo repository.KVRepository, retentionDays int, logger *zap.Logger) *StatsService {
	return &StatsService{
		kvRepo:        kvRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// CleanupOldData removes stored buckets not updated within the retention window
func (s *StatsService) CleanupOldData() error {
	s.logger.Info("Starting cleanup of stale study data", zap.Int("retention_days", s.retentionDays))

	deleted, err := s.kvRepo.DeleteStale(s.retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup stale study data", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully", zap.Int64("deleted", deleted))
	return nil
}
