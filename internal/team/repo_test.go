package team

import (
	"context"
	"testing"

	"github.com/northbeam-studio/studio-admin/pkg/enums"
	"github.com/northbeam-studio/studio-admin/pkg/ids"
	"github.com/northbeam-studio/studio-admin/pkg/recordstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCreateAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(recordstore.NewMemory(), ids.Sequence("m"))

	out, err := repo.Create(ctx, CreateInput{Name: "Ada", Role: "Engineer"})
	require.NoError(t, err)
	require.Len(t, out, 1)

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, Member{
		ID:           "m-1",
		Name:         "Ada",
		Role:         "Engineer",
		Status:       enums.MemberStatusActive,
		MemberPhotos: []string{},
	}, listed[0])
}

func TestCreateIgnoresCallerID(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(recordstore.NewMemory(), ids.Sequence("m"))

	out, err := repo.Create(ctx, CreateInput{ID: "chosen", Name: "Ada"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "m-1", out[0].ID)
}

func TestCreatePreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(recordstore.NewMemory(), nil)

	for _, name := range []string{"A", "B", "C"} {
		_, err := repo.Create(ctx, CreateInput{Name: name, Status: enums.MemberStatusStandby})
		require.NoError(t, err)
	}

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "A", listed[0].Name)
	assert.Equal(t, "C", listed[2].Name)
	assert.Equal(t, enums.MemberStatusStandby, listed[1].Status)
	assert.NotEqual(t, listed[0].ID, listed[1].ID)
}

func TestUpdateMergesOnlySetFields(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(recordstore.NewMemory(), ids.Sequence("m"))
	_, err := repo.Create(ctx, CreateInput{Name: "Ada", Role: "Engineer", Bio: "first"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, CreateInput{Name: "Grace"})
	require.NoError(t, err)

	out, matched, err := repo.Update(ctx, "m-1", Patch{
		Role:         ptr("Lead"),
		Status:       ptr(enums.MemberStatusDeploying),
		MemberPhotos: []string{"https://cdn.example.com/a.jpg"},
	})
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Equal(t, "Ada", out[0].Name)
	assert.Equal(t, "first", out[0].Bio)
	assert.Equal(t, "Lead", out[0].Role)
	assert.Equal(t, enums.MemberStatusDeploying, out[0].Status)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, out[0].MemberPhotos)
	assert.Equal(t, "Grace", out[1].Name)
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(recordstore.NewMemory(), ids.Sequence("m"))
	before, err := repo.Create(ctx, CreateInput{Name: "Ada"})
	require.NoError(t, err)

	after, matched, err := repo.Update(ctx, "ghost", Patch{Name: ptr("Nope")})
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Equal(t, before, after)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(recordstore.NewMemory(), ids.Sequence("m"))
	_, err := repo.Create(ctx, CreateInput{Name: "Ada"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, CreateInput{Name: "Grace"})
	require.NoError(t, err)

	out, removed, err := repo.Delete(ctx, "m-1")
	require.NoError(t, err)
	assert.True(t, removed)
	require.Len(t, out, 1)
	assert.Equal(t, "m-2", out[0].ID)

	again, removed, err := repo.Delete(ctx, "m-1")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, out, again)
}

func TestMissingAndExists(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(recordstore.NewMemory(), ids.Sequence("m"))
	_, err := repo.Create(ctx, CreateInput{Name: "Ada"})
	require.NoError(t, err)

	missing, err := repo.Missing(ctx, []string{"m-1", "m-7", "m-9"})
	require.NoError(t, err)
	assert.Equal(t, []string{"m-7", "m-9"}, missing)

	ok, err := repo.Exists(ctx, "m-1")
	require.NoError(t, err)
	assert.True(t, ok)
}
