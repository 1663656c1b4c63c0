package leads

import (
	"context"

	"github.com/northbeam-studio/studio-admin/pkg/ids"
	"github.com/northbeam-studio/studio-admin/pkg/recordstore"
)

// CollectionName is the record-store collection holding leads.
const CollectionName = "leads"

type Repository struct {
	records *recordstore.Collection[Lead]
	newID   ids.Generator
}

func NewRepository(store *recordstore.Store, newID ids.Generator) *Repository {
	if newID == nil {
		newID = ids.New
	}
	return &Repository{
		records: recordstore.NewCollection[Lead](store, CollectionName),
		newID:   newID,
	}
}

func (r *Repository) List(ctx context.Context) ([]Lead, error) {
	return r.records.All(ctx)
}

func (r *Repository) Create(ctx context.Context, input CreateInput) ([]Lead, error) {
	lead := input.toLead(r.newID())
	return r.records.Mutate(ctx, func(current []Lead) ([]Lead, error) {
		return append(current, lead), nil
	})
}

func (r *Repository) Update(ctx context.Context, id string, patch Patch) (out []Lead, matched bool, err error) {
	out, err = r.records.Mutate(ctx, func(current []Lead) ([]Lead, error) {
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

// Delete purges the lead with id. Unknown ids are a no-op.
func (r *Repository) Delete(ctx context.Context, id string) (out []Lead, removed bool, err error) {
	out, err = r.records.Mutate(ctx, func(current []Lead) ([]Lead, error) {
		kept := make([]Lead, 0, len(current))
		for _, l := range current {
			if l.ID == id {
				removed = true
				continue
			}
			kept = append(kept, l)
		}
		if !removed {
			return current, recordstore.ErrNoChange
		}
		return kept, nil
	})
	return out, removed, err
}
