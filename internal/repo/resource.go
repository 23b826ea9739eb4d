package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	pkgerrors "github.com/parksense/parksense-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sort directions follow the wire convention: 1 ascending, -1 descending.
const (
	OrderAscending  = 1
	OrderDescending = -1
)

// Columns that clients can never set through create or update payloads.
var protectedColumns = []string{"id", "is_deleted", "created_at"}

// ListParams carries filtering, sorting, and pagination inputs for List.
type ListParams struct {
	// Filter holds exact-match conjuncts keyed by column name. An implicit
	// is_deleted = false conjunct is always applied on top.
	Filter map[string]string

	// SortBy falls back to the resource's default sort column when empty. An
	// unrecognized column leaves ordering store-defined rather than erroring.
	SortBy string
	Order  int

	Skip  int
	Limit int
}

// Page is the uniform list result: one page of records plus the total number
// of non-deleted records matching the filter regardless of skip/limit.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// Options bind a Resource to its kind-specific behavior.
type Options struct {
	// DefaultSort is the column ordered on (descending by default) when the
	// caller does not override sorting.
	DefaultSort string

	// Columns is the set of column names accepted for filtering and sorting.
	Columns []string
}

// Resource implements the uniform lifecycle protocol - create, bulk create,
// filtered pagination, get, patch with protected-field stripping, and soft
// delete - for one logical collection of records of type T. Every resource
// kind shares this exact policy; only the record type and options vary.
type Resource[T any] struct {
	base        Base
	defaultSort string
	columns     map[string]struct{}
}

// NewResource builds a Resource repository for T backed by the provided GORM
// connection.
func NewResource[T any](db *gorm.DB, opts Options) *Resource[T] {
	columns := make(map[string]struct{}, len(opts.Columns))
	for _, c := range opts.Columns {
		columns[c] = struct{}{}
	}
	return &Resource[T]{
		base:        NewBase(db),
		defaultSort: opts.DefaultSort,
		columns:     columns,
	}
}

// Create inserts the record, letting the store assign its identifier and any
// auto-populated fields.
func (r *Resource[T]) Create(ctx context.Context, record *T) (*T, error) {
	if err := r.base.DB(ctx).Create(record).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert record")
	}
	return record, nil
}

// CreateBulk inserts all records in one transaction, preserving input order.
// Partial failure is not modeled: either every record lands or none do.
func (r *Resource[T]) CreateBulk(ctx context.Context, records []T) ([]T, error) {
	if len(records) == 0 {
		return []T{}, nil
	}
	err := r.base.DB(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bulk insert records")
	}
	return records, nil
}

// List returns one page of non-deleted records plus the total match count.
func (r *Resource[T]) List(ctx context.Context, params ListParams) (*Page[T], error) {
	var total int64
	if err := r.filtered(ctx, params.Filter).Count(&total).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count records")
	}

	query := r.filtered(ctx, params.Filter)

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = r.defaultSort
	}
	if _, ok := r.columns[sortBy]; ok {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: sortBy},
			Desc:   params.Order != OrderAscending,
		})
	}

	if params.Skip > 0 {
		query = query.Offset(params.Skip)
	}
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}

	items := []T{}
	if err := query.Find(&items).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list records")
	}

	return &Page[T]{Items: items, Total: total}, nil
}

// filtered applies the implicit is_deleted restriction plus the caller's
// exact-match conjuncts. Unrecognized filter columns are ignored.
func (r *Resource[T]) filtered(ctx context.Context, filter map[string]string) *gorm.DB {
	query := r.base.DB(ctx).Model(new(T)).Where("is_deleted = ?", false)
	for column, value := range filter {
		if _, ok := r.columns[column]; !ok {
			continue
		}
		query = query.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	}
	return query
}

// GetByID loads a single non-deleted record. Soft-deleted records are
// indistinguishable from never-existing ones.
func (r *Resource[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	err := r.base.DB(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load record")
	}
	return &record, nil
}

// Update applies the patch to a non-deleted record and returns the updated
// row. Protected columns and any extra immutable columns are stripped first,
// so a patch can never resurrect or soft-delete a record. The match predicate
// requires is_deleted = false, making updates to deleted records a NotFound.
func (r *Resource[T]) Update(ctx context.Context, id uuid.UUID, patch map[string]any, immutable ...string) (*T, error) {
	patch = stripColumns(patch, immutable)
	if len(patch) == 0 {
		return r.GetByID(ctx, id)
	}

	result := r.base.DB(ctx).Model(new(T)).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(patch)
	if result.Error != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "update record")
	}
	if result.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
	}

	return r.GetByID(ctx, id)
}

// SoftDelete flips is_deleted on a live record in a single conditional write.
// A second delete of the same record fails with NotFound rather than silently
// succeeding, and two concurrent deletes cannot both report success.
func (r *Resource[T]) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.base.DB(ctx).Model(new(T)).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true})
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "soft delete record")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
	}
	return nil
}

func stripColumns(patch map[string]any, immutable []string) map[string]any {
	if patch == nil {
		return nil
	}
	cleaned := make(map[string]any, len(patch))
	for k, v := range patch {
		cleaned[k] = v
	}
	for _, column := range protectedColumns {
		delete(cleaned, column)
	}
	for _, column := range immutable {
		delete(cleaned, column)
	}
	return cleaned
}
