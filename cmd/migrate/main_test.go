package main

import (
	"errors"
	"io"
	"os"
	"testing"

	"trackify.backend/internal/config"
	"trackify.backend/internal/infrastructure/db/migrate"
)

func withHooks(t *testing.T) {
	t.Helper()
	origDotenv, origCfg, origAll, origSteps, origExit := loadDotenv, loadCfg, runAll, runSteps, exitFn
	t.Cleanup(func() {
		loadDotenv, loadCfg, runAll, runSteps, exitFn = origDotenv, origCfg, origAll, origSteps, origExit
	})
	loadDotenv = func(...string) error { return nil }
	loadCfg = func() *config.Config {
		return &config.Config{Database: config.DatabaseConfig{
			Host: "db", Port: 5432, User: "u", Password: "p", DBName: "trackify", SSLMode: "disable",
		}}
	}
}

func TestRun_Directions(t *testing.T) {
	withHooks(t)

	var gotDSN string
	var gotDir migrate.Direction
	runAll = func(dsn string, d migrate.Direction) error {
		gotDSN, gotDir = dsn, d
		return nil
	}

	if err := run(nil, io.Discard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotDir != migrate.Up || gotDSN != "postgres://u:p@db:5432/trackify?sslmode=disable" {
		t.Fatalf("unexpected call: %s %s", gotDSN, gotDir)
	}

	if err := run([]string{"-direction", "down"}, io.Discard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotDir != migrate.Down {
		t.Fatalf("expected down, got %s", gotDir)
	}
}

func TestRun_StepsAndNoChange(t *testing.T) {
	withHooks(t)

	var gotSteps int
	runSteps = func(_ string, n int) error {
		gotSteps = n
		return migrate.ErrNoChange
	}
	runAll = func(string, migrate.Direction) error {
		t.Fatal("full run must not be called with -steps")
		return nil
	}

	if err := run([]string{"-steps", "-1"}, io.Discard); err != nil {
		t.Fatalf("no change must not be an error: %v", err)
	}
	if gotSteps != -1 {
		t.Fatalf("expected -1 steps, got %d", gotSteps)
	}
}

func TestRun_Failures(t *testing.T) {
	withHooks(t)
	runAll = func(string, migrate.Direction) error { return errors.New("dirty database") }

	if err := run(nil, io.Discard); err == nil {
		t.Fatal("expected migrate error")
	}
	if err := run([]string{"-bogus"}, io.Discard); err == nil {
		t.Fatal("expected flag error")
	}
}

func TestMain_ExitsOnError(t *testing.T) {
	withHooks(t)
	runAll = func(string, migrate.Direction) error { return errors.New("boom") }

	origArgs := os.Args
	os.Args = []string{"migrate"}
	t.Cleanup(func() { os.Args = origArgs })

	code := 0
	exitFn = func(c int) { code = c }
	main()
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
