// Package sqlite persists game sessions in a single-file database, so a
// café can be closed tonight and reopened tomorrow on another machine by
// copying one file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chrisdamba/cafesim/internal/equipment"
	"github.com/chrisdamba/cafesim/internal/memory"
	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/chrisdamba/cafesim/internal/repositories"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    name TEXT PRIMARY KEY,
    day INTEGER NOT NULL,
    clock TEXT NOT NULL,
    money REAL NOT NULL,
    reputation REAL NOT NULL,
    equipment TEXT NOT NULL,
    memory TEXT NOT NULL,
    customers TEXT,
    saved_at TEXT NOT NULL
);`

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(path string) (*SessionRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening session database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating sessions table: %w", err)
	}

	return &SessionRepository{db: db}, nil
}

func (r *SessionRepository) Save(ctx context.Context, snapshot *models.SessionSnapshot) error {
	equipmentJSON, err := json.Marshal(snapshot.Equipment)
	if err != nil {
		return fmt.Errorf("error encoding equipment state: %w", err)
	}
	memoryJSON, err := json.Marshal(snapshot.Memory)
	if err != nil {
		return fmt.Errorf("error encoding memory state: %w", err)
	}
	customersJSON, err := json.Marshal(snapshot.Customers)
	if err != nil {
		return fmt.Errorf("error encoding customers: %w", err)
	}

	query := `
        INSERT INTO sessions (
            name, day, clock, money, reputation, equipment, memory, customers, saved_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET
            day = excluded.day,
            clock = excluded.clock,
            money = excluded.money,
            reputation = excluded.reputation,
            equipment = excluded.equipment,
            memory = excluded.memory,
            customers = excluded.customers,
            saved_at = excluded.saved_at`

	_, err = r.db.ExecContext(ctx, query,
		snapshot.Name,
		snapshot.Day,
		snapshot.Clock.Format(time.RFC3339Nano),
		snapshot.Money,
		snapshot.Reputation,
		string(equipmentJSON),
		string(memoryJSON),
		string(customersJSON),
		snapshot.SavedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (r *SessionRepository) Load(ctx context.Context, name string) (*models.SessionSnapshot, error) {
	query := `
        SELECT name, day, clock, money, reputation, equipment, memory, customers, saved_at
        FROM sessions
        WHERE name = ?`

	snapshot, err := scanSession(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", repositories.ErrSessionNotFound, name)
	}
	return snapshot, err
}

func (r *SessionRepository) List(ctx context.Context) ([]*models.SessionSnapshot, error) {
	query := `
        SELECT name, day, clock, money, reputation, equipment, memory, customers, saved_at
        FROM sessions
        ORDER BY saved_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*models.SessionSnapshot
	for rows.Next() {
		snapshot, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

func (r *SessionRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE name = ?", name)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", repositories.ErrSessionNotFound, name)
	}
	return nil
}

func (r *SessionRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*models.SessionSnapshot, error) {
	var (
		snapshot      models.SessionSnapshot
		clock         string
		savedAt       string
		equipmentJSON string
		memoryJSON    string
		customersJSON sql.NullString
	)

	err := row.Scan(
		&snapshot.Name,
		&snapshot.Day,
		&clock,
		&snapshot.Money,
		&snapshot.Reputation,
		&equipmentJSON,
		&memoryJSON,
		&customersJSON,
		&savedAt,
	)
	if err != nil {
		return nil, err
	}

	if snapshot.Clock, err = time.Parse(time.RFC3339Nano, clock); err != nil {
		return nil, fmt.Errorf("error parsing session clock: %w", err)
	}
	if snapshot.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
		return nil, fmt.Errorf("error parsing saved_at: %w", err)
	}

	snapshot.Equipment = equipment.State{}
	if err := json.Unmarshal([]byte(equipmentJSON), &snapshot.Equipment); err != nil {
		return nil, fmt.Errorf("error decoding equipment state: %w", err)
	}
	snapshot.Memory = memory.NewState()
	if err := json.Unmarshal([]byte(memoryJSON), snapshot.Memory); err != nil {
		return nil, fmt.Errorf("error decoding memory state: %w", err)
	}
	if customersJSON.Valid && customersJSON.String != "" && customersJSON.String != "null" {
		if err := json.Unmarshal([]byte(customersJSON.String), &snapshot.Customers); err != nil {
			return nil, fmt.Errorf("error decoding customers: %w", err)
		}
	}

	return &snapshot, nil
}
