package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/parksense/parksense-backend/api/responses"
	"github.com/parksense/parksense-backend/api/validators"
	"github.com/parksense/parksense-backend/internal/users"
	"github.com/parksense/parksense-backend/pkg/logger"
)

func UsersList(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := validators.ParseListQuery(r, []string{"email"})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), users.ListParams{
			Email:  query.Filter["email"],
			SortBy: query.SortBy,
			Order:  query.Order,
			Skip:   query.Skip,
			Limit:  query.Limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func UserPatch(svc *users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in users.PatchInput
		if err := validators.DecodeJSONBody(r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Patch(r.Context(), chi.URLParam(r, "userId"), in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}
