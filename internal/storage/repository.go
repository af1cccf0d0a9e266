// Package storage provides the read-only repository executing the fixed
// query catalog the import core is bulk-loaded from.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates a single-row lookup matched no row.
var ErrNotFound = errors.New("record not found")

// DB represents a database connection interface.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Repository executes the fixed catalog of reference data queries. It issues
// reads only; writing imported entities is not its concern.
type Repository struct {
	db DB
}

// NewRepository creates a new repository on top of the passed connection.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// Categories loads all categories with admin scoped name and url_path.
func (r *Repository) Categories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, QueryCategories)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.EntityID, &c.AttributeSetID, &c.ParentID, &c.Path,
			&c.Position, &c.ChildrenCount, &c.Name, &c.URLPath); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// RootCategories loads the root category of every store view.
func (r *Repository) RootCategories(ctx context.Context) ([]RootCategory, error) {
	rows, err := r.db.QueryContext(ctx, QueryRootCategories)
	if err != nil {
		return nil, fmt.Errorf("load root categories: %w", err)
	}
	defer rows.Close()

	var out []RootCategory
	for rows.Next() {
		var c RootCategory
		if err := rows.Scan(&c.StoreCode, &c.EntityID, &c.AttributeSetID,
			&c.ParentID, &c.Path, &c.Position, &c.ChildrenCount); err != nil {
			return nil, fmt.Errorf("scan root category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CategoryVarcharsByEntityIDs loads the admin scoped category name values
// for the passed entity IDs.
func (r *Repository) CategoryVarcharsByEntityIDs(ctx context.Context, entityIDs []int64) ([]CategoryVarchar, error) {
	if len(entityIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(entityIDs))
	args := make([]interface{}, len(entityIDs))
	for i, id := range entityIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(queryCategoryVarcharsByEntityIDs, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load category varchars: %w", err)
	}
	defer rows.Close()

	var out []CategoryVarchar
	for rows.Next() {
		var v CategoryVarchar
		if err := rows.Scan(&v.ValueID, &v.AttributeID, &v.StoreID, &v.EntityID, &v.Value); err != nil {
			return nil, fmt.Errorf("scan category varchar: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Stores loads all store views.
func (r *Repository) Stores(ctx context.Context) ([]Store, error) {
	return r.scanStores(ctx, QueryStores)
}

// DefaultStores loads the default store candidates. The scope resolver
// enforces the exactly-one expectation.
func (r *Repository) DefaultStores(ctx context.Context) ([]Store, error) {
	return r.scanStores(ctx, QueryStoreDefault)
}

func (r *Repository) scanStores(ctx context.Context, query string) ([]Store, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load stores: %w", err)
	}
	defer rows.Close()

	var out []Store
	for rows.Next() {
		var s Store
		if err := rows.Scan(&s.StoreID, &s.Code, &s.WebsiteID, &s.GroupID,
			&s.Name, &s.SortOrder, &s.IsActive); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// StoreWebsites loads all websites.
func (r *Repository) StoreWebsites(ctx context.Context) ([]StoreWebsite, error) {
	rows, err := r.db.QueryContext(ctx, QueryStoreWebsites)
	if err != nil {
		return nil, fmt.Errorf("load store websites: %w", err)
	}
	defer rows.Close()

	var out []StoreWebsite
	for rows.Next() {
		var w StoreWebsite
		if err := rows.Scan(&w.WebsiteID, &w.Code, &w.Name, &w.SortOrder,
			&w.DefaultGroupID, &w.IsDefault); err != nil {
			return nil, fmt.Errorf("scan store website: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// TaxClasses loads all tax classes.
func (r *Repository) TaxClasses(ctx context.Context) ([]TaxClass, error) {
	rows, err := r.db.QueryContext(ctx, QueryTaxClasses)
	if err != nil {
		return nil, fmt.Errorf("load tax classes: %w", err)
	}
	defer rows.Close()

	var out []TaxClass
	for rows.Next() {
		var t TaxClass
		if err := rows.Scan(&t.ClassID, &t.ClassName, &t.ClassType); err != nil {
			return nil, fmt.Errorf("scan tax class: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// LinkTypes loads all product link types.
func (r *Repository) LinkTypes(ctx context.Context) ([]LinkType, error) {
	rows, err := r.db.QueryContext(ctx, QueryLinkTypes)
	if err != nil {
		return nil, fmt.Errorf("load link types: %w", err)
	}
	defer rows.Close()

	var out []LinkType
	for rows.Next() {
		var l LinkType
		if err := rows.Scan(&l.LinkTypeID, &l.Code); err != nil {
			return nil, fmt.Errorf("scan link type: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// LinkAttributes loads all product link attributes.
func (r *Repository) LinkAttributes(ctx context.Context) ([]LinkAttribute, error) {
	rows, err := r.db.QueryContext(ctx, QueryLinkAttributes)
	if err != nil {
		return nil, fmt.Errorf("load link attributes: %w", err)
	}
	defer rows.Close()

	var out []LinkAttribute
	for rows.Next() {
		var l LinkAttribute
		if err := rows.Scan(&l.LinkAttributeID, &l.LinkTypeID, &l.Code, &l.DataType); err != nil {
			return nil, fmt.Errorf("scan link attribute: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// EavEntityTypes loads all EAV entity types.
func (r *Repository) EavEntityTypes(ctx context.Context) ([]EavEntityType, error) {
	rows, err := r.db.QueryContext(ctx, QueryEavEntityTypes)
	if err != nil {
		return nil, fmt.Errorf("load entity types: %w", err)
	}
	defer rows.Close()

	var out []EavEntityType
	for rows.Next() {
		var t EavEntityType
		if err := rows.Scan(&t.EntityTypeID, &t.EntityTypeCode); err != nil {
			return nil, fmt.Errorf("scan entity type: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// EavAttributeSet loads a single attribute set by ID.
func (r *Repository) EavAttributeSet(ctx context.Context, attributeSetID int64) (*EavAttributeSet, error) {
	var s EavAttributeSet
	err := r.db.QueryRowContext(ctx, QueryEavAttributeSet, attributeSetID).Scan(
		&s.AttributeSetID, &s.EntityTypeID, &s.AttributeSetName, &s.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load attribute set %d: %w", attributeSetID, err)
	}
	return &s, nil
}

// EavAttributeSetsByEntityTypeID loads the attribute sets of an entity type.
func (r *Repository) EavAttributeSetsByEntityTypeID(ctx context.Context, entityTypeID int64) ([]EavAttributeSet, error) {
	rows, err := r.db.QueryContext(ctx, QueryEavAttributeSetsByEntityTypeID, entityTypeID)
	if err != nil {
		return nil, fmt.Errorf("load attribute sets: %w", err)
	}
	defer rows.Close()

	var out []EavAttributeSet
	for rows.Next() {
		var s EavAttributeSet
		if err := rows.Scan(&s.AttributeSetID, &s.EntityTypeID, &s.AttributeSetName, &s.SortOrder); err != nil {
			return nil, fmt.Errorf("scan attribute set: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// EavAttributesByEntityTypeIDAndAttributeSetName loads the attributes of the
// named set of an entity type.
func (r *Repository) EavAttributesByEntityTypeIDAndAttributeSetName(ctx context.Context, entityTypeID int64, attributeSetName string) ([]EavAttribute, error) {
	return r.scanAttributes(ctx, QueryEavAttributesByEntityTypeIDAndAttributeSetName, entityTypeID, attributeSetName)
}

// EavAttributesByOptionValueAndStoreID loads the attributes owning an option
// with the passed value in the passed store.
func (r *Repository) EavAttributesByOptionValueAndStoreID(ctx context.Context, value string, storeID int64) ([]EavAttribute, error) {
	return r.scanAttributes(ctx, QueryEavAttributesByOptionValueAndStoreID, value, storeID)
}

// EavAttributesByIsUserDefined loads the attributes with the passed user
// defined flag.
func (r *Repository) EavAttributesByIsUserDefined(ctx context.Context, isUserDefined bool) ([]EavAttribute, error) {
	flag := int64(0)
	if isUserDefined {
		flag = 1
	}
	return r.scanAttributes(ctx, QueryEavAttributesByIsUserDefined, flag)
}

func (r *Repository) scanAttributes(ctx context.Context, query string, args ...interface{}) ([]EavAttribute, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load attributes: %w", err)
	}
	defer rows.Close()

	var out []EavAttribute
	for rows.Next() {
		var a EavAttribute
		if err := rows.Scan(&a.AttributeID, &a.EntityTypeID, &a.AttributeCode,
			&a.BackendType, &a.FrontendInput, &a.IsUserDefined); err != nil {
			return nil, fmt.Errorf("scan attribute: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// EavAttributeOptionValue loads a single option value by value and store ID.
func (r *Repository) EavAttributeOptionValue(ctx context.Context, value string, storeID int64) (*AttributeOptionValue, error) {
	var v AttributeOptionValue
	err := r.db.QueryRowContext(ctx, QueryEavAttributeOptionValue, value, storeID).Scan(
		&v.ValueID, &v.OptionID, &v.StoreID, &v.Value, &v.AttributeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load option value %q: %w", value, err)
	}
	return &v, nil
}

// EavAttributeOptionValues loads all option values for the snapshot index.
func (r *Repository) EavAttributeOptionValues(ctx context.Context) ([]AttributeOptionValue, error) {
	rows, err := r.db.QueryContext(ctx, QueryEavAttributeOptionValues)
	if err != nil {
		return nil, fmt.Errorf("load option values: %w", err)
	}
	defer rows.Close()

	var out []AttributeOptionValue
	for rows.Next() {
		var v AttributeOptionValue
		if err := rows.Scan(&v.ValueID, &v.OptionID, &v.StoreID, &v.Value, &v.AttributeID); err != nil {
			return nil, fmt.Errorf("scan option value: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// CoreConfigData loads the system configuration.
func (r *Repository) CoreConfigData(ctx context.Context) ([]ConfigEntry, error) {
	rows, err := r.db.QueryContext(ctx, QueryCoreConfigData)
	if err != nil {
		return nil, fmt.Errorf("load core config data: %w", err)
	}
	defer rows.Close()

	var out []ConfigEntry
	for rows.Next() {
		var e ConfigEntry
		if err := rows.Scan(&e.ConfigID, &e.Scope, &e.ScopeID, &e.Path, &e.Value); err != nil {
			return nil, fmt.Errorf("scan config entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
