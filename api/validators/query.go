package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/parksense/parksense-backend/internal/resource"
	pkgerrors "github.com/parksense/parksense-backend/pkg/errors"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	maxSkip          = 1_000_000
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseListQuery assembles the uniform list query from the request: skip and
// limit pagination, sort_by with order 1 (ascending) or -1 (descending), and
// exact-match filters restricted to the allowed keys.
func ParseListQuery(r *http.Request, filterKeys []string) (resource.ListQuery, error) {
	skip, err := ParseQueryInt(r, "skip", 0, 0, maxSkip)
	if err != nil {
		return resource.ListQuery{}, err
	}
	limit, err := ParseQueryInt(r, "limit", defaultPageLimit, 1, maxPageLimit)
	if err != nil {
		return resource.ListQuery{}, err
	}
	order, err := ParseQueryInt(r, "order", -1, -1, 1)
	if err != nil {
		return resource.ListQuery{}, err
	}
	if order == 0 {
		return resource.ListQuery{}, pkgerrors.New(pkgerrors.CodeValidation, "order must be 1 or -1").WithDetails(map[string]any{"field": "order"})
	}

	filter := map[string]string{}
	for _, key := range filterKeys {
		if value := strings.TrimSpace(r.URL.Query().Get(key)); value != "" {
			filter[key] = value
		}
	}

	return resource.ListQuery{
		Filter: filter,
		SortBy: strings.TrimSpace(r.URL.Query().Get("sort_by")),
		Order:  order,
		Skip:   skip,
		Limit:  limit,
	}, nil
}
