package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/facility-attendance-go/internal/config"
	"github.com/cmlabs-hris/facility-attendance-go/internal/pkg/database"
	flag "github.com/spf13/pflag"
)

func main() {
	list := flag.BoolP("list", "l", false, "print embedded migrations and exit")
	dsn := flag.String("dsn", "", "database URL, defaults to the DB_* environment")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall migration timeout")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if *list {
		names, err := database.Migrations()
		if err != nil {
			slog.Error("Failed to read migrations", "error", err)
			os.Exit(1)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	url := *dsn
	if url == "" {
		cfg, err := config.Load()
		if err != nil {
			slog.Error("Error loading config", "error", err)
			os.Exit(1)
		}
		url = cfg.DatabaseURL()
	}

	db, err := database.NewPostgreSQLDB(url)
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	applied, err := db.Migrate(ctx)
	if err != nil {
		slog.Error("Migration failed", "applied", applied, "error", err)
		os.Exit(1)
	}
	slog.Info("Migrations complete", "applied", len(applied))
}
