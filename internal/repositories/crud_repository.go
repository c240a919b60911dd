package repositories

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"

	"busbooking/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// Scope narrows a query, e.g. to the rows one company owns.
type Scope = func(*gorm.DB) *gorm.DB

// ListOptions configures how a resource answers ListFilter.
type ListOptions struct {
	SearchColumns    []string
	ActiveColumn     string
	ActiveScope      func(active bool) Scope // overrides ActiveColumn
	TypeOrCityColumn string
	Preloads         []string
	Order            string
}

// CrudRepository is the gorm-backed store behind one REST resource.
type CrudRepository[T any] struct {
	DB       *gorm.DB
	Resource string
	Opts     ListOptions
}

func NewCrudRepository[T any](db *gorm.DB, resource string, opts ListOptions) CrudRepository[T] {
	if opts.Order == "" {
		opts.Order = "id DESC"
	}
	return CrudRepository[T]{DB: db, Resource: resource, Opts: opts}
}

func (r CrudRepository[T]) preload(q *gorm.DB) *gorm.DB {
	for _, p := range r.Opts.Preloads {
		q = q.Preload(p)
	}
	return q
}

func (r CrudRepository[T]) filter(q *gorm.DB, f domain.ListFilter) *gorm.DB {
	if f.IsActive != nil {
		switch {
		case r.Opts.ActiveScope != nil:
			q = q.Scopes(r.Opts.ActiveScope(*f.IsActive))
		case r.Opts.ActiveColumn != "":
			q = q.Where(r.Opts.ActiveColumn+" = ?", *f.IsActive)
		}
	}
	if f.Search != "" && len(r.Opts.SearchColumns) > 0 {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		conds := make([]string, 0, len(r.Opts.SearchColumns))
		args := make([]any, 0, len(r.Opts.SearchColumns))
		for _, col := range r.Opts.SearchColumns {
			conds = append(conds, "LOWER("+col+") LIKE ?")
			args = append(args, pattern)
		}
		q = q.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	if f.TypeOrCityID != "" && r.Opts.TypeOrCityColumn != "" {
		q = q.Where(r.Opts.TypeOrCityColumn+" = ?", f.TypeOrCityID)
	}
	return q
}

// List returns one page of rows matching f.
func (r CrudRepository[T]) List(ctx context.Context, f domain.ListFilter, scopes ...Scope) (domain.Page[T], error) {
	f = f.Normalize()
	q := r.filter(r.DB.WithContext(ctx).Model(new(T)).Scopes(scopes...), f).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return domain.Page[T]{}, translateError(r.Resource, err)
	}
	var items []T
	if err := r.preload(q).Order(r.Opts.Order).Limit(f.PageSize).Offset(f.Offset()).Find(&items).Error; err != nil {
		return domain.Page[T]{}, translateError(r.Resource, err)
	}
	return domain.NewPage(items, total, f), nil
}

func (r CrudRepository[T]) GetByID(ctx context.Context, id domain.ID, scopes ...Scope) (*T, error) {
	item := new(T)
	if err := r.preload(r.DB.WithContext(ctx).Scopes(scopes...)).First(item, id).Error; err != nil {
		return nil, translateError(r.Resource, err)
	}
	return item, nil
}

// Create inserts item without touching its associations. A client-sent id
// is ignored.
func (r CrudRepository[T]) Create(ctx context.Context, item *T) error {
	db := r.DB.WithContext(ctx)
	if err := setPrimaryKey(db, item, 0); err != nil {
		return translateError(r.Resource, err)
	}
	return translateError(r.Resource, db.Omit(clause.Associations).Create(item).Error)
}

// Patch merges the JSON object raw onto the stored row and writes back
// only the columns whose keys are present in raw.
func (r CrudRepository[T]) Patch(ctx context.Context, id domain.ID, raw []byte, scopes ...Scope) (*T, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing := new(T)
		if err := tx.Scopes(scopes...).First(existing, id).Error; err != nil {
			return err
		}
		cols, err := PresentColumns(tx, existing, raw)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, existing); err != nil {
			return domain.ValidationError{Msg: "payload không hợp lệ", Err: err}
		}
		if err := setPrimaryKey(tx, existing, id); err != nil {
			return err
		}
		if len(cols) > 0 {
			if err := tx.Model(existing).Select(cols).Omit(clause.Associations).Updates(existing).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateError(r.Resource, err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes the row; foreign keys decide what cascades.
func (r CrudRepository[T]) Delete(ctx context.Context, id domain.ID, scopes ...Scope) error {
	res := r.DB.WithContext(ctx).Scopes(scopes...).Delete(new(T), id)
	if res.Error != nil {
		return translateError(r.Resource, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: r.Resource}
	}
	return nil
}

func parseSchema(db *gorm.DB, model any) (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, err
	}
	return stmt.Schema, nil
}

func setPrimaryKey(db *gorm.DB, model any, id domain.ID) error {
	sch, err := parseSchema(db, model)
	if err != nil {
		return err
	}
	pk := sch.PrioritizedPrimaryField
	if pk == nil {
		return nil
	}
	return pk.Set(db.Statement.Context, reflect.ValueOf(model), id)
}

// PresentColumns lists the writable columns of model whose JSON keys appear
// in raw. Primary keys, relations and timestamps are never writable.
func PresentColumns(db *gorm.DB, model any, raw []byte) ([]string, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, domain.ValidationError{Msg: "payload không hợp lệ", Err: err}
	}
	sch, err := parseSchema(db, model)
	if err != nil {
		return nil, err
	}
	var cols []string
	for _, field := range sch.Fields {
		if field.DBName == "" || field.PrimaryKey || field.AutoCreateTime > 0 || field.AutoUpdateTime > 0 {
			continue
		}
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if _, ok := keys[name]; ok {
			cols = append(cols, field.DBName)
		}
	}
	return cols, nil
}
