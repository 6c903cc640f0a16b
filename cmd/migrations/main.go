package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"

	"github.com/vncsmyrnk/tarotstamp/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/tarotstamp/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.DatabaseConfig{
		URL:      os.Getenv("DATABASE_URL"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Name:     os.Getenv("POSTGRES_DB"),
	}

	var (
		action string
		steps  int
	)
	flag.StringVar(&action, "action", "up", "Migration action: up, down, force, version")
	flag.IntVar(&steps, "steps", 0, "Number of steps for up/down, or the version for force")
	flag.StringVar(&db.URL, "db-url", db.URL, "Database URL, overrides the other db flags")
	flag.StringVar(&db.Host, "db-host", db.Host, "Database host")
	flag.StringVar(&db.Port, "db-port", db.Port, "Database port")
	flag.StringVar(&db.User, "db-user", db.User, "Database user")
	flag.StringVar(&db.Password, "db-pass", db.Password, "Database password")
	flag.StringVar(&db.Name, "db-name", db.Name, "Database name")
	flag.Parse()

	m, err := postgres.NewMigrator(db.ConnectionString())
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	switch action {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "force":
		err = m.Force(steps)
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal(err)
		}
		fmt.Printf("Version: %d, Dirty: %v\n", version, dirty)
		return
	default:
		log.Fatalf("unknown action: %s", action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(err)
	}

	fmt.Println("Migration executed successfully.")
}
