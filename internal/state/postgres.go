package state

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// counterName identifies the batch counter row in tournament_state.
const counterName = "last_tournament_day_num"

// PostgresStore keeps the counter as a named row in Postgres.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects through the pgx stdlib driver, checks health and
// applies the embedded migrations.
func OpenPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return NewPostgresStore(db), nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}

func (p *PostgresStore) Load(ctx context.Context) (State, error) {
	var value int
	err := p.db.QueryRowContext(ctx, `
SELECT value
  FROM tournament_state
 WHERE name = $1
`, counterName).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("failed to read tournament_state: %w", err)
	}
	if value < 0 {
		return State{}, fmt.Errorf("%w: negative lastTournamentDayNum %d", ErrUnreadable, value)
	}
	return State{LastTournamentDayNum: value}, nil
}

func (p *PostgresStore) Save(ctx context.Context, s State) error {
	_, err := p.db.ExecContext(ctx, `
INSERT INTO tournament_state (name, value)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE
SET value      = EXCLUDED.value,
    updated_at = now()
`, counterName, s.LastTournamentDayNum)
	if err != nil {
		return fmt.Errorf("failed to write tournament_state: %w", err)
	}
	log.Printf("Saved state to postgres: lastTournamentDayNum=%d", s.LastTournamentDayNum)
	return nil
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}
