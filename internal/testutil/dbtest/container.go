//go:build integration

package dbtest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"qr-coupon-server/internal/infra/db"
	"qr-coupon-server/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "test"
	testPassword = "testpass"
)

var (
	postgresContainerOnce sync.Once
	postgresContainer     testcontainers.Container
	postgresContainerErr  error
)

var migrationFiles = []string{
	"migrations/001_initial_schema.sql",
}

// NewPool starts (or reuses) the shared postgres container and returns a pool on a fresh database
// with the schema applied. The database is dropped when the test finishes.
func NewPool(t *testing.T) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()

	host, port := startPostgres(t)
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", testUser, testPassword, host, port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "failed to connect as admin")
	defer adminPool.Close()

	var createErr error
	for attempt := range 5 {
		if attempt > 0 {
			time.Sleep(min(time.Duration(500+attempt*500)*time.Millisecond, 3*time.Second))
		}
		if _, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+dbName); createErr == nil {
			break
		}
		slog.Warn("retrying test database creation", "attempt", attempt+1, "error", createErr.Error())
	}
	require.NoError(t, createErr, "failed to create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("failed to connect for test database cleanup", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()

		if _, err := cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 40,
	}

	pool, cleanup, err := db.Connect(context.Background(), dbConfig)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(cleanup)

	require.NoError(t, applyMigrations(pool), "failed to apply migrations")
	return pool, dbConfig
}

func applyMigrations(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	for _, file := range migrationFiles {
		sqlContent, err := readFromRepoRoot(file)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}
	return nil
}

// go test runs inside the package directory, so walk up until the file is found
func readFromRepoRoot(file string) ([]byte, error) {
	var (
		cand    = file
		readErr error
	)
	for range 6 {
		content, err := os.ReadFile(cand)
		if err == nil {
			return content, nil
		}
		readErr = err
		cand = filepath.Join("..", cand)
	}
	return nil, fmt.Errorf("failed to read migration file %s: %w", file, readErr)
}

func startPostgres(t *testing.T) (string, nat.Port) {
	t.Helper()

	postgresContainerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
		defer cancel()

		postgresContainer, postgresContainerErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{"5432/tcp"},
				Env: map[string]string{
					"POSTGRES_USER":     testUser,
					"POSTGRES_PASSWORD": testPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{
					"/var/lib/postgresql/data": "rw,size=512m",
				},
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "full_page_writes=off",
					"-c", "synchronous_commit=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
					return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
						testUser, testPassword, host, port.Port())
				}).WithStartupTimeout(60 * time.Second),
				Labels: map[string]string{"purpose": "integration-tests"},
			},
			Started: true,
		})
	})
	require.NoError(t, postgresContainerErr, "failed to start postgres container")

	ctx := context.Background()
	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	return host, port
}
