package controllers

import (
	"net/http"

	"github.com/northbeam-studio/studio-admin/api/responses"
	"github.com/northbeam-studio/studio-admin/api/validators"
	"github.com/northbeam-studio/studio-admin/internal/team"
	"github.com/northbeam-studio/studio-admin/pkg/logger"
)

type updateMemberRequest struct {
	ID string `json:"id" validate:"required"`
	team.Patch
	// TemplateIDs, when present, is the full desired set of linked templates.
	TemplateIDs    []string `json:"templateIds,omitempty" validate:"omitempty,dive,required"`
	AssignmentRole string   `json:"assignmentRole,omitempty" validate:"max=120"`
}

// ListTeam returns every team member. Failures degrade to an empty array.
func ListTeam(svc team.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := svc.List(r.Context())
		if err != nil {
			responses.WriteListError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCollection(w, http.StatusOK, members)
	}
}

func CreateTeamMember(svc team.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input team.CreateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		members, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCollection(w, http.StatusOK, members)
	}
}

// UpdateTeamMember merges the patch into one member and, when templateIds is
// sent, reconciles that member's template links.
func UpdateTeamMember(svc team.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateMemberRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		members, err := svc.Update(r.Context(), team.UpdateInput{
			ID:             req.ID,
			Patch:          req.Patch,
			TemplateIDs:    req.TemplateIDs,
			AssignmentRole: req.AssignmentRole,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCollection(w, http.StatusOK, members)
	}
}

func DeleteTeamMember(svc team.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := validators.RequireQuery(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		members, err := svc.Delete(r.Context(), query["id"])
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCollection(w, http.StatusOK, members)
	}
}
