// Package containers starts throwaway backing services for integration tests.
package containers

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver used by the wait strategy
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// EnableEnv must be set for integration tests to run.
const EnableEnv = "TRIPQUEST_INTEGRATION"

const (
	postgresImage    = "postgres:16-alpine"
	postgresDB       = "tripquest"
	postgresUser     = "testuser"
	postgresPassword = "testpass"
)

// SkipUnlessEnabled skips t in -short mode or when EnableEnv is unset.
func SkipUnlessEnabled(t testing.TB) {
	t.Helper()
	if testing.Short() || os.Getenv(EnableEnv) == "" {
		t.Skipf("set %s=1 to run integration tests", EnableEnv)
	}
}

// SetupPostgresContainer starts Postgres and returns the container and a DSN
// with sslmode disabled. The caller terminates the container.
func SetupPostgresContainer(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	pgContainer, err := postgres.Run(ctx,
		postgresImage,
		postgres.WithDatabase(postgresDB),
		postgres.WithUsername(postgresUser),
		postgres.WithPassword(postgresPassword),
		testcontainers.WithWaitStrategy(
			wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
					postgresUser, postgresPassword, host, port.Port(), postgresDB)
			}).WithStartupTimeout(45*time.Second),
		),
	)
	if err != nil {
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, "", fmt.Errorf("failed to get postgres connection string: %w", err)
	}

	log.Printf("Postgres container ready at %s", dsn)
	return pgContainer, dsn, nil
}

// Postgres starts a container for the duration of t and returns its DSN.
func Postgres(t testing.TB) string {
	t.Helper()
	ctx := context.Background()
	c, dsn, err := SetupPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})
	return dsn
}
