package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"alerta360-backend/config"
	"alerta360-backend/pkg/database"
)

const usage = `
Alerta360 - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up        Run all migrations (GORM + SQL)
  status    Show database connection status

Flags:
  -migrations string   Path to migrations directory (default "migrations")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
`

func main() {
	migrationsDir := flag.String("migrations", "migrations", "Path to migrations directory")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch flag.Arg(0) {
	case "up":
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply GORM migrations: %v", err)
		}
		if err := database.ApplyRawMigrations(db, *migrationsDir); err != nil {
			log.Fatalf("Failed to apply raw migrations: %v", err)
		}
		log.Println("Migrations applied")
	case "status":
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			log.Fatalf("Database unreachable: %v", err)
		}
		log.Println("Database connection OK")
	default:
		flag.Usage()
		os.Exit(1)
	}
}
