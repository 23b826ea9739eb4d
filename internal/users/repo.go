package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/parksense/parksense-backend/internal/repo"
	"github.com/parksense/parksense-backend/pkg/db"
	"github.com/parksense/parksense-backend/pkg/db/models"
	pkgerrors "github.com/parksense/parksense-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListParams carries the account listing inputs. Accounts support a single
// exact-match filter on email; other account fields are not queryable.
type ListParams struct {
	Email string

	// SortBy falls back to created_at when empty. An unrecognized column
	// leaves ordering store-defined rather than erroring.
	SortBy string
	Order  int

	Skip  int
	Limit int
}

// Columns accounts can be sorted on.
var sortableColumns = map[string]struct{}{
	"email":      {},
	"created_at": {},
	"updated_at": {},
}

// Page is one page of accounts plus the total match count.
type Page struct {
	Items []models.User `json:"items"`
	Total int64         `json:"total"`
}

// Repo persists accounts. Accounts are never soft-deleted, so none of the
// is_deleted machinery of the resource repositories applies here.
type Repo struct {
	base repo.Base
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{base: repo.NewBase(db)}
}

// Create inserts the account. A duplicate email surfaces as a Conflict.
func (r *Repo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.base.DB(ctx).Create(user).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert account")
	}
	return user, nil
}

func (r *Repo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.base.DB(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account by email")
	}
	return &user, nil
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.base.DB(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}
	return &user, nil
}

// List returns one page of accounts plus the total match count. The default
// ordering is creation time, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) (*Page, error) {
	filtered := func() *gorm.DB {
		query := r.base.DB(ctx).Model(&models.User{})
		if params.Email != "" {
			query = query.Where("email = ?", params.Email)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count accounts")
	}

	query := filtered()

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	if _, ok := sortableColumns[sortBy]; ok {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: sortBy},
			Desc:   params.Order != repo.OrderAscending,
		})
	}
	if params.Skip > 0 {
		query = query.Offset(params.Skip)
	}
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}

	items := []models.User{}
	if err := query.Find(&items).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list accounts")
	}
	return &Page{Items: items, Total: total}, nil
}

// Patch applies the column patch and stamps updated_at. The email, id, and
// password hash columns are never patchable through this path.
func (r *Repo) Patch(ctx context.Context, id uuid.UUID, patch map[string]any) (*models.User, error) {
	for _, column := range []string{"id", "email", "password_hash", "created_at"} {
		delete(patch, column)
	}
	if len(patch) == 0 {
		return r.FindByID(ctx, id)
	}
	patch["updated_at"] = time.Now().UTC()

	result := r.base.DB(ctx).Model(&models.User{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "patch account")
	}
	if result.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}
	return r.FindByID(ctx, id)
}
