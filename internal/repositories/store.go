package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/nudge/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// Store persists one user record per email together with its tasks and
// interactions. Implementations never filter on encrypted columns.
type Store interface {
	// GetUserByEmail returns the user with tasks ordered by creation and
	// interactions ordered by date, or ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateUser inserts a new user, returning ErrConflict if the email is taken.
	CreateUser(ctx context.Context, u *models.User) error

	ClearInitial(ctx context.Context, userID uuid.UUID) error

	// AcquireLease sets field to now only if it is unset or at least window
	// old. It reports whether this caller won the lease.
	AcquireLease(ctx context.Context, userID uuid.UUID, field models.LeaseField, now time.Time, window time.Duration) (bool, error)

	AddTask(ctx context.Context, t *models.Task) error
	AddInteraction(ctx context.Context, i *models.Interaction) error

	// SetSurvey fills the survey of an unanswered interaction. It reports
	// false when the interaction is missing or already answered.
	SetSurvey(ctx context.Context, interactionID uuid.UUID, survey string) (bool, error)

	Close() error
}
