package assignments

import (
	"context"
	"strings"
	"time"

	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
	"github.com/northbeam-studio/studio-admin/pkg/ids"
	"github.com/northbeam-studio/studio-admin/pkg/recordstore"
)

// CollectionName is the record-store collection holding assignments.
const CollectionName = "assignments"

// Repository owns writes to the assignment collection and enforces the
// one-link-per-pair rule.
type Repository struct {
	records *recordstore.Collection[Assignment]
	newID   ids.Generator
	now     func() time.Time
}

// NewRepository binds the repository to store. Nil generator and clock fall
// back to ids.New and time.Now.
func NewRepository(store *recordstore.Store, newID ids.Generator, now func() time.Time) *Repository {
	if newID == nil {
		newID = ids.New
	}
	if now == nil {
		now = time.Now
	}
	return &Repository{
		records: recordstore.NewCollection[Assignment](store, CollectionName),
		newID:   newID,
		now:     now,
	}
}

func (r *Repository) List(ctx context.Context) ([]Assignment, error) {
	return r.records.All(ctx)
}

func (r *Repository) ListByTemplate(ctx context.Context, templateID string) ([]Assignment, error) {
	return r.Find(ctx, Filter{TemplateID: templateID})
}

func (r *Repository) ListByMember(ctx context.Context, memberID string) ([]Assignment, error) {
	return r.Find(ctx, Filter{MemberID: memberID})
}

// Find returns the assignments matching filter in stored order.
func (r *Repository) Find(ctx context.Context, filter Filter) ([]Assignment, error) {
	all, err := r.records.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]Assignment, 0, len(all))
	for _, a := range all {
		if filter.matches(a) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// Create links memberID to templateID. If the pair is already linked the
// collection is returned unchanged and the existing role is kept.
func (r *Repository) Create(ctx context.Context, templateID, memberID, role string) ([]Assignment, error) {
	templateID, memberID, err := pairIDs(templateID, memberID)
	if err != nil {
		return nil, err
	}
	return r.records.Mutate(ctx, func(current []Assignment) ([]Assignment, error) {
		for _, a := range current {
			if a.TemplateID == templateID && a.MemberID == memberID {
				return current, recordstore.ErrNoChange
			}
		}
		return append(current, Assignment{
			ID:                r.newID(),
			TemplateID:        templateID,
			MemberID:          memberID,
			RoleInProject:     role,
			JoinedAt:          r.now().UTC(),
			ContributionLevel: 0,
		}), nil
	})
}

// Delete removes every assignment for the pair. Unknown pairs are a no-op.
func (r *Repository) Delete(ctx context.Context, templateID, memberID string) ([]Assignment, error) {
	templateID, memberID, err := pairIDs(templateID, memberID)
	if err != nil {
		return nil, err
	}
	return r.records.Mutate(ctx, func(current []Assignment) ([]Assignment, error) {
		kept := make([]Assignment, 0, len(current))
		for _, a := range current {
			if a.TemplateID == templateID && a.MemberID == memberID {
				continue
			}
			kept = append(kept, a)
		}
		if len(kept) == len(current) {
			return current, recordstore.ErrNoChange
		}
		return kept, nil
	})
}

func pairIDs(templateID, memberID string) (string, string, error) {
	templateID = strings.TrimSpace(templateID)
	memberID = strings.TrimSpace(memberID)
	details := map[string]string{}
	if templateID == "" {
		details["templateId"] = "is required"
	}
	if memberID == "" {
		details["memberId"] = "is required"
	}
	if len(details) > 0 {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "template and member ids are required").WithDetails(details)
	}
	return templateID, memberID, nil
}
