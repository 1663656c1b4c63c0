package migrate

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/northbeam-studio/studio-admin/pkg/config"
	"github.com/northbeam-studio/studio-admin/pkg/db"
)

func TestUpCreatesRecordCollections(t *testing.T) {
	ctx := context.Background()
	client, err := db.New(ctx, "sqlite://file:"+uuid.NewString()+"?mode=memory&cache=shared", config.DBConfig{}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.SQL()
	require.NoError(t, err)

	require.NoError(t, Up(ctx, sqlDB, client.Dialect()))
	// second run is a no-op
	require.NoError(t, Up(ctx, sqlDB, client.Dialect()))

	require.True(t, client.DB().Migrator().HasTable("record_collections"))

	require.NoError(t, Run(ctx, sqlDB, client.Dialect(), "down"))
	require.False(t, client.DB().Migrator().HasTable("record_collections"))
}

func TestRunRequiresDB(t *testing.T) {
	require.Error(t, Run(context.Background(), nil, db.DialectSQLite, "up"))
	require.Error(t, MigrateToVersion(context.Background(), nil, db.DialectSQLite, "abc"))
}
