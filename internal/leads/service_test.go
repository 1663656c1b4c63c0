package leads

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

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(recordstore.NewMemory(), ids.Sequence("l")), nil)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil, nil)
	require.Error(t, err)
}

func TestCreateHasNoDefaults(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.Create(context.Background(), CreateInput{ClientName: "Acme", ProjectType: "web"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, Lead{ID: "l-1", ClientName: "Acme", ProjectType: "web"}, out[0])
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{ClientName: "Acme", Email: "not-an-email"})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.Create(ctx, CreateInput{ClientName: "Acme", Status: enums.LeadStatusNew})
	require.NoError(t, err)

	qualified := enums.LeadStatusQualified
	out, err := svc.Update(ctx, "l-1", Patch{Status: &qualified})
	require.NoError(t, err)
	assert.Equal(t, enums.LeadStatusQualified, out[0].Status)
	assert.Equal(t, "Acme", out[0].ClientName)

	bogus := enums.LeadStatus("Won")
	_, err = svc.Update(ctx, "l-1", Patch{Status: &bogus})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestUpdateUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	before, err := svc.Create(ctx, CreateInput{ClientName: "Acme"})
	require.NoError(t, err)

	contacted := enums.LeadStatusContacted
	after, err := svc.Update(ctx, "l-9", Patch{Status: &contacted})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, err := svc.Create(ctx, CreateInput{ClientName: "Acme"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{ClientName: "Globex"})
	require.NoError(t, err)

	out, err := svc.Delete(ctx, "l-1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Globex", out[0].ClientName)

	again, err := svc.Delete(ctx, "l-1")
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, err = svc.Delete(ctx, " ")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}
