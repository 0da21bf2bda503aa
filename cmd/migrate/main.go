package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres/migrations"

	_ "github.com/lib/pq"
)

func main() {
	command := flag.String("cmd", "up", "migration command: up|down|status|redo|reset|version")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	cfg, err := cmd.LoadDatabaseConfig()
	if err != nil {
		fail("config", err)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		fail("database", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		fail("database", err)
	}

	switch *command {
	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "missing -version for version command")
			os.Exit(1)
		}
		err = migrations.MigrateToVersion(ctx, db, *version)
	case "up", "down", "status", "redo", "reset":
		err = migrations.Run(ctx, db, *command)
	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *command)
		os.Exit(1)
	}
	if err != nil {
		fail("migrate", err)
	}
}

func fail(stage string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", stage, err)
	os.Exit(1)
}
