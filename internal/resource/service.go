package resource

import (
	"context"

	"github.com/google/uuid"
	"github.com/parksense/parksense-backend/internal/repo"
	pkgerrors "github.com/parksense/parksense-backend/pkg/errors"
)

// ListQuery mirrors the uniform list surface exposed over HTTP: exact-match
// filters, skip/limit pagination, and sort_by/order overrides.
type ListQuery struct {
	Filter map[string]string
	SortBy string
	Order  int
	Skip   int
	Limit  int
}

// Binding declares how one resource kind plugs into the uniform lifecycle
// protocol: how create-input becomes a fresh record, how it becomes a
// replacement patch, which query params are filterable, and which extra
// columns stay immutable on update.
type Binding[C any, T any] struct {
	Repo      *repo.Resource[T]
	New       func(C) *T
	Patch     func(C) map[string]any
	Filters   []string
	Immutable []string
}

// Service applies the shared field-level rules for a bound resource kind.
// The six kinds differ only in their Binding; every policy decision lives
// here or in the repository.
type Service[C any, T any] struct {
	binding Binding[C, T]
}

func NewService[C any, T any](binding Binding[C, T]) *Service[C, T] {
	return &Service[C, T]{binding: binding}
}

// FilterKeys lists the query parameters accepted as exact-match filters.
func (s *Service[C, T]) FilterKeys() []string {
	return s.binding.Filters
}

func (s *Service[C, T]) Create(ctx context.Context, in C) (*T, error) {
	return s.binding.Repo.Create(ctx, s.binding.New(in))
}

func (s *Service[C, T]) CreateBulk(ctx context.Context, ins []C) ([]T, error) {
	records := make([]T, 0, len(ins))
	for _, in := range ins {
		records = append(records, *s.binding.New(in))
	}
	return s.binding.Repo.CreateBulk(ctx, records)
}

func (s *Service[C, T]) List(ctx context.Context, q ListQuery) (*repo.Page[T], error) {
	return s.binding.Repo.List(ctx, repo.ListParams{
		Filter: q.Filter,
		SortBy: q.SortBy,
		Order:  q.Order,
		Skip:   q.Skip,
		Limit:  q.Limit,
	})
}

func (s *Service[C, T]) Get(ctx context.Context, id string) (*T, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.binding.Repo.GetByID(ctx, parsed)
}

// Replace applies a full replacement of the create-fields to a live record.
func (s *Service[C, T]) Replace(ctx context.Context, id string, in C) (*T, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.binding.Repo.Update(ctx, parsed, s.binding.Patch(in), s.binding.Immutable...)
}

func (s *Service[C, T]) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}
	return s.binding.Repo.SoftDelete(ctx, parsed)
}

// parseID canonicalizes the identifier once at the boundary. An unparseable
// id is reported as NotFound, never as a validation error or a fallback
// lookup by some other representation.
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
	}
	return parsed, nil
}
