package controllers

import (
	"context"
	"net/http"

	"github.com/northbeam-studio/studio-admin/api/responses"
	"github.com/northbeam-studio/studio-admin/api/validators"
	"github.com/northbeam-studio/studio-admin/internal/assignments"
	"github.com/northbeam-studio/studio-admin/internal/reconcile"
	"github.com/northbeam-studio/studio-admin/pkg/enums"
	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
	"github.com/northbeam-studio/studio-admin/pkg/logger"
)

// Reconciler drives one anchor's links to a desired set.
type Reconciler interface {
	Reconcile(ctx context.Context, anchor enums.Anchor, anchorID string, desired []string, role string) (reconcile.Result, error)
}

type syncAssignmentsRequest struct {
	AnchorType     string   `json:"anchorType" validate:"required"`
	AnchorID       string   `json:"anchorId" validate:"required"`
	CounterpartIDs []string `json:"counterpartIds" validate:"required,dive,required"`
	Role           string   `json:"role" validate:"max=120"`
}

// ListAssignments returns all assignments, narrowed by the optional
// templateId and memberId query parameters.
func ListAssignments(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), assignments.Filter{
			TemplateID: validators.OptionalQuery(r, "templateId"),
			MemberID:   validators.OptionalQuery(r, "memberId"),
		})
		if err != nil {
			responses.WriteListError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCollection(w, http.StatusOK, items)
	}
}

func CreateAssignment(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input assignments.CreateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCollection(w, http.StatusOK, items)
	}
}

func DeleteAssignment(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := validators.RequireQuery(r, "templateId", "memberId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.Delete(r.Context(), query["templateId"], query["memberId"])
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCollection(w, http.StatusOK, items)
	}
}

// SyncAssignments reconciles one anchor to counterpartIds and answers with
// the full assignment collection. A failure part way leaves the applied links
// in place; the client retries with the same body.
func SyncAssignments(engine Reconciler, svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req syncAssignmentsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		anchor, err := enums.ParseAnchor(req.AnchorType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "anchorType must be template or member"))
			return
		}
		result, err := engine.Reconcile(r.Context(), anchor, req.AnchorID, req.CounterpartIDs, req.Role)
		if err != nil {
			if logg != nil {
				logg.Warn(logg.WithFields(r.Context(), map[string]any{
					"applied_added":   len(result.Added),
					"applied_removed": len(result.Removed),
				}), "assignment sync stopped early")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.List(r.Context(), assignments.Filter{})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCollection(w, http.StatusOK, items)
	}
}
