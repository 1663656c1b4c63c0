package reconcile

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/northbeam-studio/studio-admin/internal/assignments"
	"github.com/northbeam-studio/studio-admin/pkg/enums"
	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
	"github.com/northbeam-studio/studio-admin/pkg/ids"
	"github.com/northbeam-studio/studio-admin/pkg/metrics"
	"github.com/northbeam-studio/studio-admin/pkg/recordstore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo wraps the real repository and counts write calls.
type countingRepo struct {
	*assignments.Repository
	creates   int
	deletes   int
	failAfter int
	failErr   error
}

func (c *countingRepo) Create(ctx context.Context, templateID, memberID, role string) ([]assignments.Assignment, error) {
	if c.failErr != nil && c.creates+c.deletes >= c.failAfter {
		return nil, c.failErr
	}
	c.creates++
	return c.Repository.Create(ctx, templateID, memberID, role)
}

func (c *countingRepo) Delete(ctx context.Context, templateID, memberID string) ([]assignments.Assignment, error) {
	if c.failErr != nil && c.creates+c.deletes >= c.failAfter {
		return nil, c.failErr
	}
	c.deletes++
	return c.Repository.Delete(ctx, templateID, memberID)
}

type knownIDs map[string]bool

func (k knownIDs) Missing(_ context.Context, ids []string) ([]string, error) {
	var missing []string
	for _, id := range ids {
		if !k[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

type fixture struct {
	repo   *countingRepo
	engine *Engine
	clock  *time.Time
}

func newFixture(t *testing.T, members, templates CounterpartChecker) *fixture {
	t.Helper()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &now
	base := assignments.NewRepository(recordstore.NewMemory(), ids.Sequence("a"), func() time.Time { return *clock })
	repo := &countingRepo{Repository: base}
	engine, err := NewEngine(Params{
		Assignments: repo,
		Members:     members,
		Templates:   templates,
	})
	require.NoError(t, err)
	return &fixture{repo: repo, engine: engine, clock: clock}
}

func (f *fixture) link(t *testing.T, templateID, memberID string) {
	t.Helper()
	_, err := f.repo.Repository.Create(context.Background(), templateID, memberID, "Lead Operator")
	require.NoError(t, err)
}

func (f *fixture) templatesOf(t *testing.T, memberID string) []string {
	t.Helper()
	links, err := f.repo.ListByMember(context.Background(), memberID)
	require.NoError(t, err)
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.TemplateID)
	}
	sort.Strings(out)
	return out
}

func TestNewEngineRequiresRepository(t *testing.T) {
	_, err := NewEngine(Params{})
	require.Error(t, err)
}

func TestMemberEditScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, knownIDs{"T1": true, "T2": true, "T3": true})
	f.link(t, "T1", "M")
	f.link(t, "T2", "M")

	before, err := f.repo.ListByMember(ctx, "M")
	require.NoError(t, err)
	var t2 assignments.Assignment
	for _, l := range before {
		if l.TemplateID == "T2" {
			t2 = l
		}
	}

	*f.clock = f.clock.Add(time.Hour)
	result, err := f.engine.Reconcile(ctx, enums.AnchorMember, "M", []string{"T2", "T3"}, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"T3"}, result.Added)
	assert.Equal(t, []string{"T1"}, result.Removed)
	assert.Equal(t, []string{"T2"}, result.Unchanged)
	assert.Equal(t, []string{"T2", "T3"}, f.templatesOf(t, "M"))

	after, err := f.repo.ListByMember(ctx, "M")
	require.NoError(t, err)
	for _, l := range after {
		switch l.TemplateID {
		case "T2":
			assert.Equal(t, t2, l, "unchanged link must not be rewritten")
		case "T3":
			assert.Equal(t, assignments.DefaultRole, l.RoleInProject)
			assert.Equal(t, *f.clock, l.JoinedAt)
		}
	}
}

func TestTemplateAnchorLinksMembers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, knownIDs{"m1": true, "m2": true}, nil)
	f.link(t, "T", "m1")

	result, err := f.engine.Reconcile(ctx, enums.AnchorTemplate, "T", []string{"m2"}, "Reviewer")
	require.NoError(t, err)
	assert.Equal(t, []string{"m2"}, result.Added)
	assert.Equal(t, []string{"m1"}, result.Removed)

	links, err := f.repo.ListByTemplate(ctx, "T")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "m2", links[0].MemberID)
	assert.Equal(t, "Reviewer", links[0].RoleInProject)
}

func TestConvergenceAndMinimality(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))
	universe := []string{"T1", "T2", "T3", "T4", "T5", "T6"}

	for round := 0; round < 50; round++ {
		f := newFixture(t, nil, nil)
		current := map[string]bool{}
		for _, id := range universe {
			if rng.Intn(2) == 0 {
				f.link(t, id, "M")
				current[id] = true
			}
		}
		desired := []string{}
		wantSet := map[string]bool{}
		for _, id := range universe {
			if rng.Intn(2) == 0 {
				desired = append(desired, id)
				wantSet[id] = true
			}
		}

		expectedCalls := 0
		for _, id := range universe {
			if current[id] != wantSet[id] {
				expectedCalls++
			}
		}

		_, err := f.engine.Reconcile(ctx, enums.AnchorMember, "M", desired, "")
		require.NoError(t, err)
		assert.Equal(t, expectedCalls, f.repo.creates+f.repo.deletes, "round %d", round)

		got := f.templatesOf(t, "M")
		want := append([]string{}, desired...)
		sort.Strings(want)
		assert.Equal(t, want, got, "round %d", round)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	_, err := f.engine.Reconcile(ctx, enums.AnchorMember, "M", []string{"T1", "T2"}, "")
	require.NoError(t, err)
	calls := f.repo.creates + f.repo.deletes

	result, err := f.engine.Reconcile(ctx, enums.AnchorMember, "M", []string{"T2", "T1"}, "")
	require.NoError(t, err)
	assert.Equal(t, calls, f.repo.creates+f.repo.deletes)
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
}

func TestDesiredIDsAreNormalized(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	result, err := f.engine.Reconcile(ctx, enums.AnchorMember, "M", []string{" T1", "T1", "T2 "}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2"}, result.Added)
	assert.Equal(t, 2, f.repo.creates)

	_, err = f.engine.Reconcile(ctx, enums.AnchorMember, "M", []string{"T1", "  "}, "")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestInvalidAnchor(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.engine.Reconcile(context.Background(), enums.Anchor("project"), "X", nil, "")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = f.engine.Reconcile(context.Background(), enums.AnchorMember, "", nil, "")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestMissingCounterpartsWriteNothing(t *testing.T) {
	f := newFixture(t, nil, knownIDs{"T1": true})

	_, err := f.engine.Reconcile(context.Background(), enums.AnchorMember, "M", []string{"T1", "T9"}, "")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, map[string][]string{"missing": {"T9"}}, typed.Details())
	assert.Zero(t, f.repo.creates+f.repo.deletes)
}

func TestPartialFailureKeepsAppliedLinks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	f := newFixture(t, nil, nil)
	f.engine.metrics = metrics.NewReconcileMetrics(reg)
	f.link(t, "T1", "M")

	f.repo.failAfter = 1
	f.repo.failErr = &recordstore.OpError{Op: "replace", Collection: "assignments", Err: errors.New("disk full")}

	result, err := f.engine.Reconcile(ctx, enums.AnchorMember, "M", []string{"T2", "T3"}, "")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStoreUnavailable, pkgerrors.CodeOf(err))
	assert.Equal(t, []string{"T2"}, result.Added)
	assert.Empty(t, result.Removed)
	assert.Equal(t, []string{"T1", "T2"}, f.templatesOf(t, "M"))
	failures, err := testutil.GatherAndCount(reg, "assignment_reconcile_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 1, failures)

	f.repo.failErr = nil
	_, err = f.engine.Reconcile(ctx, enums.AnchorMember, "M", []string{"T2", "T3"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"T2", "T3"}, f.templatesOf(t, "M"))
}
