//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/tutordash-web/internal/model"
	"github.com/dtroode/tutordash-web/internal/storage"
	repo "github.com/dtroode/tutordash-web/internal/storage/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "tutordash_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/tutordash_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.Ping(ctx))

	kv := storage.Namespace(repo.NewStore(conn.DB()), storage.BrowserPrefix("it"))

	require.NoError(t, kv.Set(ctx, model.KeyToken, "t1"))
	require.NoError(t, kv.Set(ctx, model.KeyToken, "t2"))
	require.NoError(t, kv.Set(ctx, model.KeyStudent, `{"id":3}`))

	got, err := kv.Get(ctx, model.KeyToken)
	require.NoError(t, err)
	require.Equal(t, "t2", got)

	require.NoError(t, kv.Remove(ctx, model.KeyToken, model.KeyUser, model.KeyStudent))

	_, err = kv.Get(ctx, model.KeyToken)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = kv.Get(ctx, model.KeyStudent)
	require.ErrorIs(t, err, model.ErrNotFound)
}
