package controllers

import (
	"net/http"

	"github.com/northbeam-studio/studio-admin/api/responses"
	"github.com/northbeam-studio/studio-admin/api/validators"
	"github.com/northbeam-studio/studio-admin/internal/templates"
	"github.com/northbeam-studio/studio-admin/pkg/logger"
)

type updateTemplateRequest struct {
	ID string `json:"id" validate:"required"`
	templates.Patch
	MemberIDs      []string `json:"memberIds,omitempty" validate:"omitempty,dive,required"`
	AssignmentRole string   `json:"assignmentRole,omitempty" validate:"max=120"`
}

func ListTemplates(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteListError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCollection(w, http.StatusOK, items)
	}
}

// CreateTemplate honours an id supplied by the caller.
func CreateTemplate(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input templates.CreateInput
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

func UpdateTemplate(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateTemplateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.Update(r.Context(), templates.UpdateInput{
			ID:             req.ID,
			Patch:          req.Patch,
			MemberIDs:      req.MemberIDs,
			AssignmentRole: req.AssignmentRole,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCollection(w, http.StatusOK, items)
	}
}

func DeleteTemplate(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := validators.RequireQuery(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.Delete(r.Context(), query["id"])
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCollection(w, http.StatusOK, items)
	}
}
