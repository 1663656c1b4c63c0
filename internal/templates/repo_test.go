package templates

import (
	"context"
	"testing"

	"github.com/northbeam-studio/studio-admin/pkg/enums"
	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
	"github.com/northbeam-studio/studio-admin/pkg/ids"
	"github.com/northbeam-studio/studio-admin/pkg/recordstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCreateAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(recordstore.NewMemory(), ids.Sequence("t"))

	_, err := repo.Create(ctx, CreateInput{
		CodeName:  "Atlas",
		Category:  "commerce",
		Status:    enums.TemplateStatusBeta,
		TechStack: []string{"go", "postgres"},
	})
	require.NoError(t, err)

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, Template{
		ID:               "t-1",
		CodeName:         "Atlas",
		Category:         "commerce",
		Status:           enums.TemplateStatusBeta,
		Version:          "1.0.0",
		TechStack:        []string{"go", "postgres"},
		PerformanceScore: 100,
		TemplatePhotos:   []string{},
	}, listed[0])
}

func TestCreateKeepsExplicitValues(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(recordstore.NewMemory(), ids.Sequence("t"))

	out, err := repo.Create(ctx, CreateInput{
		ID:               "atlas",
		CodeName:         "Atlas",
		Version:          "2.3.1",
		PerformanceScore: ptr(0),
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "atlas", out[0].ID)
	assert.Equal(t, "2.3.1", out[0].Version)
	assert.Equal(t, 0, out[0].PerformanceScore)
}

func TestCreateDuplicateIDConflicts(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(recordstore.NewMemory(), nil)

	_, err := repo.Create(ctx, CreateInput{ID: "atlas", CodeName: "Atlas"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, CreateInput{ID: "atlas", CodeName: "Other"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Atlas", listed[0].CodeName)
}

func TestUpdateMergesAndIgnoresUnknown(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(recordstore.NewMemory(), ids.Sequence("t"))
	_, err := repo.Create(ctx, CreateInput{CodeName: "Atlas", TechStack: []string{"go"}})
	require.NoError(t, err)

	out, matched, err := repo.Update(ctx, "t-1", Patch{
		Status:           ptr(enums.TemplateStatusDeployed),
		PerformanceScore: ptr(87),
		TechStack:        []string{},
	})
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Equal(t, enums.TemplateStatusDeployed, out[0].Status)
	assert.Equal(t, 87, out[0].PerformanceScore)
	assert.Equal(t, "1.0.0", out[0].Version)
	assert.Empty(t, out[0].TechStack)

	same, matched, err := repo.Update(ctx, "t-9", Patch{CodeName: ptr("ghost")})
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Equal(t, out, same)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(recordstore.NewMemory(), ids.Sequence("t"))
	_, err := repo.Create(ctx, CreateInput{CodeName: "Atlas"})
	require.NoError(t, err)

	out, removed, err := repo.Delete(ctx, "t-1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, out)

	out, removed, err = repo.Delete(ctx, "t-1")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, out)
}
