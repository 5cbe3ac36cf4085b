package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/chrisdamba/cafesim/internal/equipment"
	"github.com/chrisdamba/cafesim/internal/memory"
	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/chrisdamba/cafesim/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *SessionRepository {
	t.Helper()
	repo, err := NewSessionRepository(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleSnapshot(name string, day int) *models.SessionSnapshot {
	state := memory.NewState()
	state = memory.RecordVisit(state, "Ana Reyes", memory.Visit{
		Drink:        "latte",
		Milk:         "oat",
		Quality:      91,
		Satisfaction: 4.7,
		Payment:      5.67,
		Tip:          1.10,
		Timestamp:    time.Date(2024, 6, 3, 9, 15, 0, 0, time.UTC),
	})

	return &models.SessionSnapshot{
		Name:       name,
		Day:        day,
		Clock:      time.Date(2024, 6, 3, 21, 0, 0, 0, time.UTC).AddDate(0, 0, day-1),
		Money:      640.25,
		Reputation: 3.8,
		Equipment:  equipment.StarterState(),
		Memory:     state,
		Customers: []*models.Customer{
			{
				ID:             "c1",
				Name:           "Ana Reyes",
				Persona:        "novelist",
				FavoriteDrink:  "latte",
				PreferredMilk:  "oat",
				VisitFrequency: 1.2,
				TipGenerosity:  0.18,
				JoinDate:       time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
			},
		},
		SavedAt: time.Date(2024, 6, 3, 21, 5, 0, 0, time.UTC).AddDate(0, 0, day-1),
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	saved := sampleSnapshot("weekday-trial", 3)
	require.NoError(t, repo.Save(ctx, saved))

	loaded, err := repo.Load(ctx, "weekday-trial")
	require.NoError(t, err)

	assert.Equal(t, "weekday-trial", loaded.Name)
	assert.Equal(t, 3, loaded.Day)
	assert.True(t, saved.Clock.Equal(loaded.Clock), "clock came back as %s", loaded.Clock)
	assert.True(t, saved.SavedAt.Equal(loaded.SavedAt))
	assert.Equal(t, 640.25, loaded.Money)
	assert.Equal(t, 3.8, loaded.Reputation)
	assert.Equal(t, saved.Equipment.Owned, loaded.Equipment.Owned)

	require.NotNil(t, loaded.Memory)
	profile, ok := loaded.Memory.Customers["Ana Reyes"]
	require.True(t, ok, "the regulars ledger survives the round trip")
	assert.Equal(t, 1, profile.VisitCount)
	require.Len(t, profile.Visits, 1)
	assert.Equal(t, "latte", profile.Visits[0].Drink)
	assert.InDelta(t, 6.77, profile.TotalSpent, 1e-9)

	require.Len(t, loaded.Customers, 1)
	assert.Equal(t, "c1", loaded.Customers[0].ID)
	assert.Equal(t, "novelist", loaded.Customers[0].Persona)
	assert.Equal(t, 0.18, loaded.Customers[0].TipGenerosity)
}

func TestSaveOverwritesSameName(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleSnapshot("default", 3)))
	require.NoError(t, repo.Save(ctx, sampleSnapshot("default", 7)))

	loaded, err := repo.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Day)

	sessions, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1, "saving under the same name replaces the session")
}

func TestLoadMissingSession(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Load(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repositories.ErrSessionNotFound))
}

func TestListOrdersByMostRecentSave(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	older := sampleSnapshot("monday", 1)
	older.SavedAt = time.Date(2024, 6, 3, 21, 0, 0, 0, time.UTC)
	newer := sampleSnapshot("tuesday", 2)
	newer.SavedAt = time.Date(2024, 6, 4, 21, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	sessions, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "tuesday", sessions[0].Name)
	assert.Equal(t, "monday", sessions[1].Name)
}

func TestDeleteSession(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleSnapshot("short-lived", 1)))
	require.NoError(t, repo.Delete(ctx, "short-lived"))

	_, err := repo.Load(ctx, "short-lived")
	assert.True(t, errors.Is(err, repositories.ErrSessionNotFound))

	err = repo.Delete(ctx, "short-lived")
	assert.True(t, errors.Is(err, repositories.ErrSessionNotFound), "deleting twice reports the miss")
}

func TestSaveWithoutCustomers(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	snapshot := sampleSnapshot("bare", 1)
	snapshot.Customers = nil
	require.NoError(t, repo.Save(ctx, snapshot))

	loaded, err := repo.Load(ctx, "bare")
	require.NoError(t, err)
	assert.Empty(t, loaded.Customers)
}