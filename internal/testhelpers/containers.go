//go:build container

package testhelpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16-alpine"
	redisImage    = "redis:7-alpine"
)

// StartPostgres levanta un PostgreSQL 16 descartable y devuelve su DSN.
// El contenedor se elimina al terminar el test.
//
//	dsn := testhelpers.StartPostgres(t)
//	pool, err := postgres.NewPool(ctx, dsn)
func StartPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("tests con contenedores deshabilitados en modo -short")
	}
	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "brickapp",
			"POSTGRES_PASSWORD": "brickapp",
			"POSTGRES_DB":       "brickapp_test",
		},
		// postgres reinicia una vez tras el initdb: el log aparece dos veces.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(90 * time.Second),
	}
	c := start(ctx, t, req)
	host := containerHost(ctx, t, c)
	port, err := c.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("puerto del contenedor: %v", err)
	}
	return fmt.Sprintf("postgres://brickapp:brickapp@%s:%s/brickapp_test?sslmode=disable", host, port.Port())
}

// StartRedis levanta un Redis 7 descartable y devuelve su URL.
func StartRedis(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("tests con contenedores deshabilitados en modo -short")
	}
	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        redisImage,
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	}
	c := start(ctx, t, req)
	host := containerHost(ctx, t, c)
	port, err := c.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("puerto del contenedor: %v", err)
	}
	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func start(ctx context.Context, t *testing.T, req testcontainers.ContainerRequest) testcontainers.Container {
	t.Helper()
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("no se pudo iniciar %s: %v", req.Image, err)
	}
	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := c.Terminate(cleanupCtx); err != nil {
			t.Logf("terminar %s: %v", req.Image, err)
		}
	})
	return c
}

func containerHost(ctx context.Context, t *testing.T, c testcontainers.Container) string {
	t.Helper()
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host del contenedor: %v", err)
	}
	return h
}
