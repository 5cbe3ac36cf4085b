package repositories

import (
	"context"
	"errors"

	"github.com/chrisdamba/cafesim/internal/models"
)

// ErrSessionNotFound is returned when a named session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores game snapshots between runs. Saving under an
// existing name overwrites that session.
type SessionRepository interface {
	Save(ctx context.Context, snapshot *models.SessionSnapshot) error
	Load(ctx context.Context, name string) (*models.SessionSnapshot, error)
	List(ctx context.Context) ([]*models.SessionSnapshot, error)
	Delete(ctx context.Context, name string) error
}
