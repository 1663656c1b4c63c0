package team

import (
	"context"
	"strings"

	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
	"github.com/northbeam-studio/studio-admin/pkg/ids"
	"github.com/northbeam-studio/studio-admin/pkg/recordstore"
)

// CollectionName is the record-store collection holding team members.
const CollectionName = "team"

// Repository owns writes to the team collection.
type Repository struct {
	records *recordstore.Collection[Member]
	newID   ids.Generator
}

// NewRepository binds the repository to store. A nil generator uses ids.New.
func NewRepository(store *recordstore.Store, newID ids.Generator) *Repository {
	if newID == nil {
		newID = ids.New
	}
	return &Repository{
		records: recordstore.NewCollection[Member](store, CollectionName),
		newID:   newID,
	}
}

// List returns every member in insertion order.
func (r *Repository) List(ctx context.Context) ([]Member, error) {
	return r.records.All(ctx)
}

// Create appends a new member with defaults applied and returns the full
// collection.
func (r *Repository) Create(ctx context.Context, input CreateInput) ([]Member, error) {
	member := input.toMember(r.newID())
	return r.records.Mutate(ctx, func(members []Member) ([]Member, error) {
		return append(members, member), nil
	})
}

// Update merges patch into the member with id. matched is false when no
// member has that id, in which case the collection is left as is.
func (r *Repository) Update(ctx context.Context, id string, patch Patch) (members []Member, matched bool, err error) {
	members, err = r.records.Mutate(ctx, func(current []Member) ([]Member, error) {
		for i := range current {
			if current[i].ID == id {
				patch.apply(&current[i])
				matched = true
				return current, nil
			}
		}
		return current, recordstore.ErrNoChange
	})
	return members, matched, err
}

// Delete removes the member with id. Deleting an unknown id is a no-op.
func (r *Repository) Delete(ctx context.Context, id string) (members []Member, removed bool, err error) {
	members, err = r.records.Mutate(ctx, func(current []Member) ([]Member, error) {
		kept := current[:0]
		for _, m := range current {
			if m.ID == id {
				removed = true
				continue
			}
			kept = append(kept, m)
		}
		if !removed {
			return current, recordstore.ErrNoChange
		}
		return kept, nil
	})
	return members, removed, err
}

// Exists reports whether a member with id is stored.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	missing, err := r.Missing(ctx, []string{id})
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

// Missing returns the subset of ids with no stored member, in input order.
func (r *Repository) Missing(ctx context.Context, candidates []string) ([]string, error) {
	members, err := r.records.All(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(members))
	for _, m := range members {
		known[m.ID] = struct{}{}
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
