package domain

import "time"

// Learner represents a bot user
type Learner struct {
	UserID       int64
	AuthorizedAt *time.Time // nil until the password was accepted
	CreatedAt    time.Time
}

// Authorized reports whether the learner has unlocked the bot
func (l *Learner) Authorized() bool {
	return l != nil && l.AuthorizedAt != nil
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle       UserState = "idle"
	StateProcessing UserState = "processing"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State     UserState
	Source    string // file name or "text" while processing
	StartedAt time.Time
}
