package controllers

import (
	"net/http"

	"github.com/northbeam-studio/studio-admin/api/responses"
	"github.com/northbeam-studio/studio-admin/api/validators"
	"github.com/northbeam-studio/studio-admin/internal/leads"
	"github.com/northbeam-studio/studio-admin/pkg/logger"
)

type updateLeadRequest struct {
	ID string `json:"id" validate:"required"`
	leads.Patch
}

func ListLeads(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteListError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCollection(w, http.StatusOK, items)
	}
}

// CreateLead is the ingestion path for the public contact form.
func CreateLead(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input leads.CreateInput
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

// UpdateLead applies a status transition (and optional contact edits).
func UpdateLead(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateLeadRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.Update(r.Context(), req.ID, req.Patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCollection(w, http.StatusOK, items)
	}
}

func DeleteLead(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
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
