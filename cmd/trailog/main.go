package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/trailog/internal/cli"
	"github.com/alexanderramin/trailog/internal/config"
	"github.com/alexanderramin/trailog/internal/db"
	"github.com/alexanderramin/trailog/internal/domain"
	"github.com/alexanderramin/trailog/internal/repository"
	"github.com/alexanderramin/trailog/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	// Open database (creates the parent directory and applies migrations)
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogEvents {
		observer = service.NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	factory := domain.NewFactory()
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Workouts: service.NewWorkoutService(uow, factory, cfg.StorageKey, observer),
		KV:       repository.NewSQLiteKVStore(database),
		Factory:  factory,
		Config:   cfg,
		Observer: observer,
	}

	// The map session needs a terminal; subcommands don't.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
