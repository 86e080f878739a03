package test_utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/farmledger/farmledger/internal/config"
	"github.com/farmledger/farmledger/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func preparePostgresContainer() (*postgres.PostgresContainer, error) {
	ctx := context.Background()

	dbName := "farmledger"
	dbUser := "test_farmledger"
	dbPassword := "test_farmledger"

	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %v", err)
	}

	pgContainer, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithInitScripts(filepath.Join(projectRoot, "dev", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return nil, err
	}
	return pgContainer, nil
}

// TestWithPostgres sets up a Postgres instance, applies all migrations and
// returns the container together with a connection factory.
func TestWithPostgres() (*postgres.PostgresContainer, func() *database.DB) {
	ctx := context.Background()

	container, err := preparePostgresContainer()
	if err != nil {
		log.Printf("Failed to start postgres container: %v", err)
		os.Exit(1)
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432/tcp")

	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Driver: database.DriverPostgres,
		Host:   host,
		Port:   port.Int(),
		User:   "test_farmledger",
		Pass:   "test_farmledger",
		Name:   "farmledger",
		Schema: "farmledger",
	}

	if err := database.Migrate(cfg); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	if err := container.Snapshot(ctx, postgres.WithSnapshotName("postgres-test-snapshot")); err != nil {
		log.Fatalf("Failed to snapshot postgres container: %v", err)
	}

	return container, func() *database.DB {
		db, err := database.Open(cfg)
		if err != nil {
			log.Fatalf("Failed to open database connection: %v", err)
		}
		return db
	}
}
