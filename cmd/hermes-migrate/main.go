package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	// The sqlite driver is registered by golang-migrate's sqlite database
	// package (modernc.org/sqlite), so only the postgres driver is imported.
	_ "github.com/lib/pq"

	"github.com/hashicorp-forge/hermes-oai/internal/migrate"
)

func main() {
	driver := flag.String("driver", "postgres", "Database driver (postgres|sqlite)")
	dsn := flag.String("dsn", "", "Database connection string")
	showVersion := flag.Bool("version", false, "Print the current migration version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "hermes-oai database migration tool\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEXAMPLES:\n\n")
		fmt.Fprintf(os.Stderr, "  PostgreSQL:\n")
		fmt.Fprintf(os.Stderr, "    %s -driver=postgres -dsn=\"host=localhost user=postgres password=postgres dbname=hermes_oai port=5432 sslmode=disable\"\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  SQLite:\n")
		fmt.Fprintf(os.Stderr, "    %s -driver=sqlite -dsn=\"hermes-oai.db\"\n\n", os.Args[0])
	}

	flag.Parse()

	log := hclog.New(&hclog.LoggerOptions{
		Name: "hermes-migrate",
	})

	if *dsn == "" {
		log.Error("-dsn flag is required; run with -help for usage information")
		os.Exit(1)
	}
	if *driver != "postgres" && *driver != "sqlite" {
		log.Error("unsupported driver (must be 'postgres' or 'sqlite')", "driver", *driver)
		os.Exit(1)
	}

	sqlDB, err := sql.Open(*driver, *dsn)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	log.Info("connected to database", "driver", *driver)

	if *showVersion {
		version, dirty, err := migrate.GetMigrationVersion(sqlDB, *driver)
		if err != nil {
			log.Error("failed to get migration version", "error", err)
			os.Exit(1)
		}
		log.Info("migration version", "version", version, "dirty", dirty)
		return
	}

	log.Info("running migrations")
	if err := migrate.RunMigrations(sqlDB, *driver); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	log.Info("all migrations completed successfully")
}
