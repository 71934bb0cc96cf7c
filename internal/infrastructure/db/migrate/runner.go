// Package migrate applies the embedded SQL migrations with golang-migrate.
package migrate

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"trackify.backend/internal/infrastructure/db"
)

// Direction selects whether migrations are applied or rolled back
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ErrNoChange means the database already sits at the target version
var ErrNoChange = migrate.ErrNoChange

var newMigrator = func(dsn string) (migrator, error) {
	source, err := iofs.New(db.MigrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrate source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return m, nil
}

type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Close() (error, error)
}

// Run applies (up) or rolls back (down) all migrations against dsn.
// Already being at the target version is not an error.
func Run(dsn string, direction Direction) error {
	return run(dsn, direction, 0)
}

// Step moves n migrations; a negative n rolls back
func Step(dsn string, n int) error {
	if n == 0 {
		return errors.New("step count must not be zero")
	}
	return run(dsn, "", n)
}

func run(dsn string, direction Direction, steps int) error {
	if dsn == "" {
		return errors.New("database url is empty")
	}
	if steps == 0 && direction != Up && direction != Down {
		return fmt.Errorf("direction must be up or down, got %q", direction)
	}

	m, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	switch {
	case steps != 0:
		err = m.Steps(steps)
	case direction == Up:
		err = m.Up()
	default:
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
