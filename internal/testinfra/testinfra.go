package testinfra

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var Pool *pgxpool.Pool

func init() {
	Pool = SetupDB()
}

func SetupDB() *pgxpool.Pool {

	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:17.2-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "password",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections"),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	if err != nil {
		log.Panicf("start postgres: %v", err)
	}

	pgHostPort, err := pgC.Endpoint(ctx, "")
	if err != nil {
		log.Panicf("postgres endpoint: %v", err)
	}
	pgDSN := fmt.Sprintf("postgres://postgres:password@%s/testdb?sslmode=disable", pgHostPort)

	pool, err := pgxpool.New(ctx, pgDSN)
	if err != nil {
		log.Panicf("pgxpool connect: %v", err)
	}

	ok := false
	for i := 0; i < 20; i++ {
		slog.Info("ping db", "try", i)
		ctxPing, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		err = pool.Ping(ctxPing)
		cancel()
		if err == nil {
			ok = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !ok {
		log.Panic("db did not respond after 20 attempts")
	}

	_, err = pool.Exec(ctx, `
		CREATE SCHEMA IF NOT EXISTS builder;
		CREATE TABLE IF NOT EXISTS builder.websites (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL,
			title TEXT NOT NULL,
			slug TEXT NOT NULL,
			custom_domain TEXT,
			domain_status VARCHAR(20) NOT NULL DEFAULT 'not_added',
			provider_domain_id TEXT,
			template VARCHAR(20) NOT NULL,
			content JSONB NOT NULL DEFAULT '{}',
			is_published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS websites_slug_key
			ON builder.websites (lower(slug));
		CREATE UNIQUE INDEX IF NOT EXISTS websites_custom_domain_published_idx
			ON builder.websites (lower(custom_domain)) WHERE is_published;
	`)
	if err != nil {
		log.Panicf("create tables: %v", err)
	}

	return pool
}
