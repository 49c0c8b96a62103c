package repository

import (
	"alcyxob/loadx/internal/domain" // Import our defined domain models
	"context"                       // Standard for request-scoped deadlines, cancellation signals, etc.
)

// Error constants for repository layer
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("conflict")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Keys of the five persisted documents.
const (
	KeyAccounts        = "accounts"
	KeyExerciseLogs    = "exercise-logs"
	KeySessionHistory  = "session-history"
	KeyCoachRosters    = "coach-rosters"
	KeyGuidedExercises = "guided-exercises"
)

// BlobStore is the key-value persistence collaborator. Each key holds one full JSON document.
type BlobStore interface {
	// Get returns ErrNotFound when nothing was ever written under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the whole document stored under key.
	Put(ctx context.Context, key string, data []byte) error
}

// AccountRepository defines the interface for interacting with account data.
// Email and serial number are immutable, so the photo is the only updatable field.
type AccountRepository interface {
	List(ctx context.Context) ([]domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetBySerial(ctx context.Context, serial string) (*domain.Account, error)
	SerialExists(ctx context.Context, serial string) (bool, error)
	Create(ctx context.Context, account domain.Account) error // ErrConflict on duplicate email or serial
	UpdatePhoto(ctx context.Context, email, photo string) (*domain.Account, error)
}

// ExerciseLogRepository defines the interface for the live exercise logs,
// keyed by account email and training style.
type ExerciseLogRepository interface {
	List(ctx context.Context, email, style string) ([]domain.LoggedExercise, error)
	Append(ctx context.Context, email, style string, entry domain.LoggedExercise) error
	// Update applies fn to the entry with the given id; false when no such entry exists.
	Update(ctx context.Context, email, style, id string, fn func(*domain.LoggedExercise)) (bool, error)
	Delete(ctx context.Context, email, style, id string) (bool, error)
	Replace(ctx context.Context, email, style string, entries []domain.LoggedExercise) error
}

// HistoryRepository defines the interface for archived workout sessions (newest first).
type HistoryRepository interface {
	List(ctx context.Context, email, style string) ([]domain.WorkoutSession, error)
	Prepend(ctx context.Context, email, style string, session domain.WorkoutSession) error
	Delete(ctx context.Context, email, style, id string) (bool, error)
	Clear(ctx context.Context, email, style string) error
}

// RosterRepository defines the interface for coach rosters.
type RosterRepository interface {
	List(ctx context.Context, coachEmail string) ([]domain.RosterEntry, error)
	Append(ctx context.Context, coachEmail string, entry domain.RosterEntry) error // ErrConflict on duplicate serial
}

// GuidedRepository defines the interface for coach-assigned exercises per athlete.
type GuidedRepository interface {
	List(ctx context.Context, athleteEmail string) ([]domain.GuidedExercise, error)
	Replace(ctx context.Context, athleteEmail string, exercises []domain.GuidedExercise) error
	Update(ctx context.Context, athleteEmail, id string, fn func(*domain.GuidedExercise)) (bool, error)
}
