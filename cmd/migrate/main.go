// migrate applies the embedded SQL migrations: go run ./cmd/migrate -direction up
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"trackify.backend/internal/config"
	"trackify.backend/internal/infrastructure/db/migrate"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	runAll     = migrate.Run
	runSteps   = migrate.Step
	exitFn     = os.Exit
)

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	direction := fs.String("direction", "up", "Migration direction: up or down")
	steps := fs.Int("steps", 0, "Apply n steps instead (negative rolls back)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	dsn := loadCfg().Database.URL()

	var err error
	if *steps != 0 {
		err = runSteps(dsn, *steps)
	} else {
		err = runAll(dsn, migrate.Direction(*direction))
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFn(1)
	}
}
