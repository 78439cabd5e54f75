package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"path/filepath"

	"claimsync-service/internal/app/config"
	"claimsync-service/internal/app/drivers/database"

	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying")
	steps := flag.Int("steps", 0, "maximum number of migrations to apply or roll back, 0 for all")
	dir := flag.String("dir", "", "directory holding the migration files (default internal/migration)")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	db := database.NewPostgresDB(driverConfig)
	defer db.Close()

	direction := migrate.Up
	if *down {
		direction = migrate.Down
	}
	Run(db, *dir, direction, *steps)
}

func Run(db *sql.DB, dir string, direction migrate.MigrationDirection, steps int) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Error getting working directory: %v", err)
		}
		dir = filepath.Join(wd, "internal/migration")
	}

	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	n, err := migrate.ExecMax(db, "postgres", migrations, direction, steps)
	if err != nil {
		log.Fatalf("Error executing migration: %v", err)
	}

	log.Printf("Applied %d migrations!\n", n)
}
