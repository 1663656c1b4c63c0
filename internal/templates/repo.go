package templates

import (
	"context"
	"strings"

	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
	"github.com/northbeam-studio/studio-admin/pkg/ids"
	"github.com/northbeam-studio/studio-admin/pkg/recordstore"
)

// CollectionName is the record-store collection holding templates.
const CollectionName = "templates"

// Repository owns writes to the template collection.
type Repository struct {
	records *recordstore.Collection[Template]
	newID   ids.Generator
}

func NewRepository(store *recordstore.Store, newID ids.Generator) *Repository {
	if newID == nil {
		newID = ids.New
	}
	return &Repository{
		records: recordstore.NewCollection[Template](store, CollectionName),
		newID:   newID,
	}
}

func (r *Repository) List(ctx context.Context) ([]Template, error) {
	return r.records.All(ctx)
}

// Create appends a template. A caller supplied id is kept; reusing an existing
// id fails with CONFLICT.
func (r *Repository) Create(ctx context.Context, input CreateInput) ([]Template, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = r.newID()
	}
	tmpl := input.toTemplate(id)
	return r.records.Mutate(ctx, func(current []Template) ([]Template, error) {
		for _, existing := range current {
			if existing.ID == id {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "template id already exists").
					WithDetails(map[string]string{"id": id})
			}
		}
		return append(current, tmpl), nil
	})
}

// Update merges patch into the template with id; matched reports whether it
// exists.
func (r *Repository) Update(ctx context.Context, id string, patch Patch) (out []Template, matched bool, err error) {
	out, err = r.records.Mutate(ctx, func(current []Template) ([]Template, error) {
		for i := range current {
			if current[i].ID == id {
				patch.apply(&current[i])
				matched = true
				return current, nil
			}
		}
		return current, recordstore.ErrNoChange
	})
	return out, matched, err
}

func (r *Repository) Delete(ctx context.Context, id string) (out []Template, removed bool, err error) {
	out, err = r.records.Mutate(ctx, func(current []Template) ([]Template, error) {
		kept := make([]Template, 0, len(current))
		for _, t := range current {
			if t.ID == id {
				removed = true
				continue
			}
			kept = append(kept, t)
		}
		if !removed {
			return current, recordstore.ErrNoChange
		}
		return kept, nil
	})
	return out, removed, err
}

func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	missing, err := r.Missing(ctx, []string{id})
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

// Missing returns the ids with no stored template, in input order.
func (r *Repository) Missing(ctx context.Context, candidates []string) ([]string, error) {
	all, err := r.records.All(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(all))
	for _, t := range all {
		known[t.ID] = struct{}{}
	}
	var missing []string
	for _, id := range candidates {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func requireID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "id is required")
	}
	return id, nil
}
