// Package reconcile brings the assignment set of one anchor (a template or a
// team member) to a desired set of counterpart ids with the fewest link
// creations and deletions.
package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/northbeam-studio/studio-admin/internal/assignments"
	"github.com/northbeam-studio/studio-admin/pkg/enums"
	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
	"github.com/northbeam-studio/studio-admin/pkg/logger"
	"github.com/northbeam-studio/studio-admin/pkg/metrics"
	"github.com/northbeam-studio/studio-admin/pkg/recordstore"
)

const (
	actionAdded   = "added"
	actionRemoved = "removed"
)

// AssignmentRepository is the write path the engine drives.
type AssignmentRepository interface {
	ListByTemplate(ctx context.Context, templateID string) ([]assignments.Assignment, error)
	ListByMember(ctx context.Context, memberID string) ([]assignments.Assignment, error)
	Create(ctx context.Context, templateID, memberID, role string) ([]assignments.Assignment, error)
	Delete(ctx context.Context, templateID, memberID string) ([]assignments.Assignment, error)
}

// CounterpartChecker reports which ids have no stored record.
type CounterpartChecker interface {
	Missing(ctx context.Context, ids []string) ([]string, error)
}

// Result lists the counterpart ids touched by one reconcile.
type Result struct {
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
	Unchanged []string `json:"unchanged"`
}

type Params struct {
	Assignments AssignmentRepository
	// Members checks desired ids when the anchor is a template.
	Members CounterpartChecker
	// Templates checks desired ids when the anchor is a member.
	Templates CounterpartChecker
	Metrics   *metrics.ReconcileMetrics
	Logger    *logger.Logger
}

// Engine reconciles anchors against the assignment collection. It never
// writes team or template records.
type Engine struct {
	repo      AssignmentRepository
	members   CounterpartChecker
	templates CounterpartChecker
	metrics   *metrics.ReconcileMetrics
	logg      *logger.Logger
}

func NewEngine(params Params) (*Engine, error) {
	if params.Assignments == nil {
		return nil, fmt.Errorf("assignment repository required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Engine{
		repo:      params.Assignments,
		members:   params.Members,
		templates: params.Templates,
		metrics:   params.Metrics,
		logg:      logg,
	}, nil
}

// Reconcile makes the counterparts linked to anchorID equal desired. Missing
// links are created with role (DefaultRole when blank) first, then stale links
// are deleted, one call per id. Unchanged links keep their joinedAt and
// contribution level.
//
// There is no rollback: when a call fails the links applied so far stay, and
// the partial Result is returned with the error. Calling Reconcile again with
// the same desired set converges.
func (e *Engine) Reconcile(ctx context.Context, anchor enums.Anchor, anchorID string, desired []string, role string) (Result, error) {
	if !anchor.IsValid() {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid anchor type").
			WithDetails(map[string]string{"anchorType": string(anchor)})
	}
	anchorID = strings.TrimSpace(anchorID)
	if anchorID == "" {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "anchor id is required")
	}
	want, err := normalizeIDs(desired)
	if err != nil {
		return Result{}, err
	}
	role = strings.TrimSpace(role)
	if role == "" {
		role = assignments.DefaultRole
	}

	ctx = e.logg.WithAnchor(ctx, string(anchor), anchorID)

	current, err := e.current(ctx, anchor, anchorID)
	if err != nil {
		e.metrics.IncFailure(string(anchor))
		return Result{}, recordstore.AppError(err, "list current assignments")
	}

	toAdd, toRemove, unchanged := diff(current, want)
	result := Result{
		Added:     []string{},
		Removed:   []string{},
		Unchanged: unchanged,
	}

	if len(toAdd) > 0 {
		if err := e.checkCounterparts(ctx, anchor, toAdd); err != nil {
			e.metrics.IncFailure(string(anchor))
			return result, err
		}
	}

	for _, id := range toAdd {
		templateID, memberID := pair(anchor, anchorID, id)
		if _, err := e.repo.Create(ctx, templateID, memberID, role); err != nil {
			return e.fail(ctx, anchor, result, err, "create assignment")
		}
		result.Added = append(result.Added, id)
	}
	for _, id := range toRemove {
		templateID, memberID := pair(anchor, anchorID, id)
		if _, err := e.repo.Delete(ctx, templateID, memberID); err != nil {
			return e.fail(ctx, anchor, result, err, "delete assignment")
		}
		result.Removed = append(result.Removed, id)
	}

	e.record(anchor, result)
	if len(result.Added)+len(result.Removed) > 0 {
		e.logg.Info(e.logg.WithFields(ctx, map[string]any{
			"added":   len(result.Added),
			"removed": len(result.Removed),
		}), "assignments reconciled")
	}
	return result, nil
}

func (e *Engine) current(ctx context.Context, anchor enums.Anchor, anchorID string) ([]string, error) {
	var (
		links []assignments.Assignment
		err   error
	)
	if anchor == enums.AnchorTemplate {
		links, err = e.repo.ListByTemplate(ctx, anchorID)
	} else {
		links, err = e.repo.ListByMember(ctx, anchorID)
	}
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(links))
	for _, link := range links {
		if anchor == enums.AnchorTemplate {
			ids = append(ids, link.MemberID)
		} else {
			ids = append(ids, link.TemplateID)
		}
	}
	return ids, nil
}

func (e *Engine) checkCounterparts(ctx context.Context, anchor enums.Anchor, ids []string) error {
	checker, kind := e.members, "team members"
	if anchor == enums.AnchorMember {
		checker, kind = e.templates, "templates"
	}
	if checker == nil {
		return nil
	}
	missing, err := checker.Missing(ctx, ids)
	if err != nil {
		return recordstore.AppError(err, "look up "+kind)
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, kind+" not found").
			WithDetails(map[string][]string{"missing": missing})
	}
	return nil
}

func (e *Engine) fail(ctx context.Context, anchor enums.Anchor, result Result, err error, msg string) (Result, error) {
	e.record(anchor, result)
	e.metrics.IncFailure(string(anchor))
	e.logg.Error(e.logg.WithFields(ctx, map[string]any{
		"added":   len(result.Added),
		"removed": len(result.Removed),
	}), "reconcile stopped partway", err)
	return result, recordstore.AppError(err, msg)
}

func (e *Engine) record(anchor enums.Anchor, result Result) {
	e.metrics.AddLinks(string(anchor), actionAdded, len(result.Added))
	e.metrics.AddLinks(string(anchor), actionRemoved, len(result.Removed))
}

// diff splits the ids into links to create, links to delete and links to keep.
// Order follows desired for additions and current for removals.
func diff(current, desired []string) (toAdd, toRemove, unchanged []string) {
	have := make(map[string]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}
	want := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}

	toAdd, toRemove, unchanged = []string{}, []string{}, []string{}
	for _, id := range desired {
		if _, ok := have[id]; ok {
			unchanged = append(unchanged, id)
		} else {
			toAdd = append(toAdd, id)
		}
	}
	seen := make(map[string]struct{}, len(current))
	for _, id := range current {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := want[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove, unchanged
}

func normalizeIDs(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "counterpart ids must not be empty")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

func pair(anchor enums.Anchor, anchorID, counterpartID string) (templateID, memberID string) {
	if anchor == enums.AnchorTemplate {
		return anchorID, counterpartID
	}
	return counterpartID, anchorID
}
