package postgres

import (
	"database/sql"

	"github.com/lib/pq"
)

// KVRepo implements repository.KVRepository on the kv_store table
type KVRepo struct {
	db *sql.DB
}

// NewKVRepo creates a new key-value repository
func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the value stored under key, false if there is none
func (r *KVRepo) Get(userID int64, key string) (string, bool, error) {
	var value string
	query := `SELECT value FROM kv_store WHERE user_id = $1 AND key = $2`
	err := r.db.QueryRow(query, userID, key).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// Set stores value under key, overwriting any previous value
func (r *KVRepo) Set(userID int64, key, value string) error {
	query := `
		INSERT INTO kv_store (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	_, err := r.db.Exec(query, userID, key, value)
	return err
}

// Delete removes all given keys in one statement
func (r *KVRepo) Delete(userID int64, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query := `DELETE FROM kv_store WHERE user_id = $1 AND key = ANY($2)`
	_, err := r.db.Exec(query, userID, pq.Array(keys))
	return err
}

// DeleteStale removes entries not updated for the given number of days
func (r *KVRepo) DeleteStale(days int) (int64, error) {
	query := `
		DELETE FROM kv_store
		WHERE updated_at < NOW() - INTERVAL '1 day' * $1
	`
	res, err := r.db.Exec(query, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
