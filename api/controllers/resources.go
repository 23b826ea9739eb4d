package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/parksense/parksense-backend/api/responses"
	"github.com/parksense/parksense-backend/api/validators"
	"github.com/parksense/parksense-backend/internal/resource"
	"github.com/parksense/parksense-backend/pkg/logger"
)

// The six resource kinds expose the same lifecycle over HTTP. These handlers
// are instantiated once per kind with its bound service; nothing here knows
// which kind it is serving.

func ResourceCreate[C any, T any](svc *resource.Service[C, T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in C
		if err := validators.DecodeJSONBody(r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Create(r.Context(), in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

func ResourceCreateBulk[C any, T any](svc *resource.Service[C, T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ins, err := validators.DecodeJSONSlice[C](r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.CreateBulk(r.Context(), ins)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, records)
	}
}

func ResourceList[C any, T any](svc *resource.Service[C, T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := validators.ParseListQuery(r, svc.FilterKeys())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func ResourceGet[C any, T any](svc *resource.Service[C, T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := svc.Get(r.Context(), chi.URLParam(r, "resourceId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

func ResourceReplace[C any, T any](svc *resource.Service[C, T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in C
		if err := validators.DecodeJSONBody(r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Replace(r.Context(), chi.URLParam(r, "resourceId"), in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

func ResourceDelete[C any, T any](svc *resource.Service[C, T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "resourceId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
