package postgres

import (
	"database/sql"

	"vokabel/internal/domain"
)

// LearnerRepo implements repository.LearnerRepository
type LearnerRepo struct {
	db *sql.DB
}

// NewLearnerRepo creates a new learner repository
func NewLearnerRepo(db *sql.DB) *LearnerRepo {
	return &LearnerRepo{db: db}
}

// GetLearner loads a learner, nil if the user never talked to the bot
func (r *LearnerRepo) GetLearner(userID int64) (*domain.Learner, error) {
	var (
		learner      = domain.Learner{UserID: userID}
		authorizedAt sql.NullTime
	)
	query := `SELECT authorized_at, created_at FROM learners WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&authorizedAt, &learner.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if authorizedAt.Valid {
		learner.AuthorizedAt = &authorizedAt.Time
	}
	return &learner, nil
}

// AuthorizeLearner records the first successful unlock. Repeated unlocks keep
// the original timestamp.
func (r *LearnerRepo) AuthorizeLearner(userID int64) error {
	query := `
		INSERT INTO learners (user_id, authorized_at)
		VALUES ($1, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET authorized_at = COALESCE(learners.authorized_at, EXCLUDED.authorized_at)
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// EnsureLearnerExists creates a locked learner row if not exists
func (r *LearnerRepo) EnsureLearnerExists(userID int64) error {
	query := `
		INSERT INTO learners (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID)
	return err
}
