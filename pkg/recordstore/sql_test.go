package recordstore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/northbeam-studio/studio-admin/pkg/config"
	"github.com/northbeam-studio/studio-admin/pkg/db"
	"github.com/northbeam-studio/studio-admin/pkg/migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteBackend(t *testing.T) *SQLBackend {
	t.Helper()
	ctx := context.Background()
	client, err := db.New(ctx, "sqlite://file:"+uuid.NewString()+"?mode=memory&cache=shared", config.DBConfig{}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.SQL()
	require.NoError(t, err)
	require.NoError(t, migrate.Up(ctx, sqlDB, client.Dialect()))
	return NewSQLBackend(client)
}

func TestSQLBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := newSQLiteBackend(t)

	data, err := backend.Load(ctx, "assignments")
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, backend.Replace(ctx, "assignments", []byte(`[{"id":"a1"}]`)))
	require.NoError(t, backend.Replace(ctx, "assignments", []byte(`[{"id":"a2"}]`)))

	data, err = backend.Load(ctx, "assignments")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a2"}]`, string(data))

	version, err := backend.Version(ctx, "assignments")
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestSQLBackendCollectionsAreSeparateRows(t *testing.T) {
	ctx := context.Background()
	store, err := New(Options{Backend: newSQLiteBackend(t)})
	require.NoError(t, err)

	_, err = NewCollection[item](store, "leads").Mutate(ctx, func(records []item) ([]item, error) {
		return append(records, item{ID: "l1"}), nil
	})
	require.NoError(t, err)

	templates, err := NewCollection[item](store, "templates").All(ctx)
	require.NoError(t, err)
	assert.Empty(t, templates)

	leads, err := NewCollection[item](store, "leads").All(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.NoError(t, store.Ping(ctx))
}
