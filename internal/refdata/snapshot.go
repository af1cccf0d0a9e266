// Package refdata provides the immutable reference data snapshot the import
// core resolves scopes and attributes against. The snapshot is bulk-loaded
// exactly once per run and is read-only afterwards, so subjects can share it
// without locking.
package refdata

import (
	"context"
	"fmt"

	"github.com/catalogtools/eav-import/internal/storage"
)

// ScopeDefault is the configuration scope with no store override.
const ScopeDefault = "default"

// Source is the repository capability the snapshot is loaded from.
type Source interface {
	Categories(ctx context.Context) ([]storage.Category, error)
	RootCategories(ctx context.Context) ([]storage.RootCategory, error)
	CategoryVarcharsByEntityIDs(ctx context.Context, entityIDs []int64) ([]storage.CategoryVarchar, error)
	Stores(ctx context.Context) ([]storage.Store, error)
	DefaultStores(ctx context.Context) ([]storage.Store, error)
	StoreWebsites(ctx context.Context) ([]storage.StoreWebsite, error)
	TaxClasses(ctx context.Context) ([]storage.TaxClass, error)
	LinkTypes(ctx context.Context) ([]storage.LinkType, error)
	LinkAttributes(ctx context.Context) ([]storage.LinkAttribute, error)
	EavEntityTypes(ctx context.Context) ([]storage.EavEntityType, error)
	EavAttributeSetsByEntityTypeID(ctx context.Context, entityTypeID int64) ([]storage.EavAttributeSet, error)
	EavAttributesByEntityTypeIDAndAttributeSetName(ctx context.Context, entityTypeID int64, attributeSetName string) ([]storage.EavAttribute, error)
	EavAttributesByIsUserDefined(ctx context.Context, isUserDefined bool) ([]storage.EavAttribute, error)
	EavAttributeOptionValues(ctx context.Context) ([]storage.AttributeOptionValue, error)
	CoreConfigData(ctx context.Context) ([]storage.ConfigEntry, error)
}

type setKey struct {
	entityTypeID int64
	setName      string
}

type optionKey struct {
	value   string
	storeID int64
}

type configKey struct {
	scope   string
	scopeID int64
	path    string
}

// Snapshot holds the keyed reference data lookup tables. All maps are
// populated by Load and never written afterwards.
type Snapshot struct {
	categories        map[int64]storage.Category
	rootCategories    map[string]storage.Category
	storesByCode      map[string]storage.Store
	storesByID        map[int64]storage.Store
	defaultStores     []storage.Store
	websites          map[string]storage.StoreWebsite
	taxClasses        map[string]storage.TaxClass
	linkTypes         map[string]storage.LinkType
	linkAttributes    []storage.LinkAttribute
	entityTypesByCode map[string]storage.EavEntityType
	setsByID          map[int64]storage.EavAttributeSet
	setsByEntityType  map[int64][]storage.EavAttributeSet
	attributesBySet   map[setKey]map[string]storage.EavAttribute
	attributesByID    map[int64]storage.EavAttribute
	userDefined       []storage.EavAttribute
	optionValues      map[optionKey]storage.AttributeOptionValue
	config            map[configKey]storage.ConfigEntry
}

// Load bulk-loads the snapshot from the passed source. It is the
// synchronization barrier of a run: no subject may process rows before it
// returns.
func Load(ctx context.Context, src Source) (*Snapshot, error) {
	s := &Snapshot{
		categories:        make(map[int64]storage.Category),
		rootCategories:    make(map[string]storage.Category),
		storesByCode:      make(map[string]storage.Store),
		storesByID:        make(map[int64]storage.Store),
		websites:          make(map[string]storage.StoreWebsite),
		taxClasses:        make(map[string]storage.TaxClass),
		linkTypes:         make(map[string]storage.LinkType),
		entityTypesByCode: make(map[string]storage.EavEntityType),
		setsByID:          make(map[int64]storage.EavAttributeSet),
		setsByEntityType:  make(map[int64][]storage.EavAttributeSet),
		attributesBySet:   make(map[setKey]map[string]storage.EavAttribute),
		attributesByID:    make(map[int64]storage.EavAttribute),
		optionValues:      make(map[optionKey]storage.AttributeOptionValue),
		config:            make(map[configKey]storage.ConfigEntry),
	}

	categories, err := src.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot categories: %w", err)
	}
	for _, c := range categories {
		s.categories[c.EntityID] = c
	}

	roots, err := src.RootCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot root categories: %w", err)
	}
	rootIDs := make([]int64, 0, len(roots))
	for _, r := range roots {
		rootIDs = append(rootIDs, r.EntityID)
	}
	varchars, err := src.CategoryVarcharsByEntityIDs(ctx, rootIDs)
	if err != nil {
		return nil, fmt.Errorf("snapshot root category names: %w", err)
	}
	names := make(map[int64]storage.CategoryVarchar, len(varchars))
	for _, v := range varchars {
		names[v.EntityID] = v
	}
	for _, r := range roots {
		cat := r.Category
		if v, ok := names[cat.EntityID]; ok {
			cat.Name = v.Value
		}
		s.rootCategories[r.StoreCode] = cat
	}

	stores, err := src.Stores(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot stores: %w", err)
	}
	for _, st := range stores {
		s.storesByCode[st.Code] = st
		s.storesByID[st.StoreID] = st
	}

	if s.defaultStores, err = src.DefaultStores(ctx); err != nil {
		return nil, fmt.Errorf("snapshot default store: %w", err)
	}

	websites, err := src.StoreWebsites(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot websites: %w", err)
	}
	for _, w := range websites {
		s.websites[w.Code] = w
	}

	taxClasses, err := src.TaxClasses(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot tax classes: %w", err)
	}
	for _, tc := range taxClasses {
		s.taxClasses[tc.ClassName] = tc
	}

	linkTypes, err := src.LinkTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot link types: %w", err)
	}
	for _, lt := range linkTypes {
		s.linkTypes[lt.Code] = lt
	}

	if s.linkAttributes, err = src.LinkAttributes(ctx); err != nil {
		return nil, fmt.Errorf("snapshot link attributes: %w", err)
	}

	entityTypes, err := src.EavEntityTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot entity types: %w", err)
	}
	for _, et := range entityTypes {
		s.entityTypesByCode[et.EntityTypeCode] = et

		sets, err := src.EavAttributeSetsByEntityTypeID(ctx, et.EntityTypeID)
		if err != nil {
			return nil, fmt.Errorf("snapshot attribute sets of %s: %w", et.EntityTypeCode, err)
		}
		s.setsByEntityType[et.EntityTypeID] = sets

		for _, set := range sets {
			s.setsByID[set.AttributeSetID] = set

			attrs, err := src.EavAttributesByEntityTypeIDAndAttributeSetName(ctx, et.EntityTypeID, set.AttributeSetName)
			if err != nil {
				return nil, fmt.Errorf("snapshot attributes of set %s: %w", set.AttributeSetName, err)
			}
			byCode := make(map[string]storage.EavAttribute, len(attrs))
			for _, a := range attrs {
				byCode[a.AttributeCode] = a
			}
			s.attributesBySet[setKey{et.EntityTypeID, set.AttributeSetName}] = byCode
		}
	}

	if s.userDefined, err = src.EavAttributesByIsUserDefined(ctx, true); err != nil {
		return nil, fmt.Errorf("snapshot user defined attributes: %w", err)
	}
	system, err := src.EavAttributesByIsUserDefined(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("snapshot system attributes: %w", err)
	}
	for _, a := range s.userDefined {
		s.attributesByID[a.AttributeID] = a
	}
	for _, a := range system {
		s.attributesByID[a.AttributeID] = a
	}

	optionValues, err := src.EavAttributeOptionValues(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot option values: %w", err)
	}
	for _, v := range optionValues {
		s.optionValues[optionKey{v.Value, v.StoreID}] = v
	}

	config, err := src.CoreConfigData(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot core config: %w", err)
	}
	for _, e := range config {
		s.config[configKey{e.Scope, e.ScopeID, e.Path}] = e
	}

	return s, nil
}

// CategoryByID returns the category with the passed entity ID.
func (s *Snapshot) CategoryByID(entityID int64) (storage.Category, bool) {
	c, ok := s.categories[entityID]
	return c, ok
}

// RootCategoryByStoreCode returns the root category of the passed store view.
func (s *Snapshot) RootCategoryByStoreCode(code string) (storage.Category, bool) {
	c, ok := s.rootCategories[code]
	return c, ok
}

// StoreByCode returns the store view with the passed code.
func (s *Snapshot) StoreByCode(code string) (storage.Store, bool) {
	st, ok := s.storesByCode[code]
	return st, ok
}

// StoreByID returns the store view with the passed ID.
func (s *Snapshot) StoreByID(id int64) (storage.Store, bool) {
	st, ok := s.storesByID[id]
	return st, ok
}

// DefaultStores returns the default store candidates loaded at run start.
func (s *Snapshot) DefaultStores() []storage.Store {
	return s.defaultStores
}

// WebsiteByCode returns the website with the passed code.
func (s *Snapshot) WebsiteByCode(code string) (storage.StoreWebsite, bool) {
	w, ok := s.websites[code]
	return w, ok
}

// TaxClassByName returns the tax class with the passed name.
func (s *Snapshot) TaxClassByName(name string) (storage.TaxClass, bool) {
	tc, ok := s.taxClasses[name]
	return tc, ok
}

// LinkTypeByCode returns the product link type with the passed code.
func (s *Snapshot) LinkTypeByCode(code string) (storage.LinkType, bool) {
	lt, ok := s.linkTypes[code]
	return lt, ok
}

// LinkAttributes returns all product link attributes.
func (s *Snapshot) LinkAttributes() []storage.LinkAttribute {
	return s.linkAttributes
}

// EntityTypeByCode returns the EAV entity type with the passed code.
func (s *Snapshot) EntityTypeByCode(code string) (storage.EavEntityType, bool) {
	et, ok := s.entityTypesByCode[code]
	return et, ok
}

// AttributeSetByID returns the attribute set with the passed ID.
func (s *Snapshot) AttributeSetByID(id int64) (storage.EavAttributeSet, bool) {
	set, ok := s.setsByID[id]
	return set, ok
}

// AttributeSetsByEntityTypeID returns the attribute sets of an entity type.
func (s *Snapshot) AttributeSetsByEntityTypeID(entityTypeID int64) []storage.EavAttributeSet {
	return s.setsByEntityType[entityTypeID]
}

// AttributeSetByName returns the named attribute set of an entity type.
func (s *Snapshot) AttributeSetByName(entityTypeID int64, name string) (storage.EavAttributeSet, bool) {
	for _, set := range s.setsByEntityType[entityTypeID] {
		if set.AttributeSetName == name {
			return set, true
		}
	}
	return storage.EavAttributeSet{}, false
}

// AttributesBySetName returns the attributes of the named set of an entity
// type, keyed by attribute code.
func (s *Snapshot) AttributesBySetName(entityTypeID int64, setName string) (map[string]storage.EavAttribute, bool) {
	attrs, ok := s.attributesBySet[setKey{entityTypeID, setName}]
	return attrs, ok
}

// AttributeByOptionValue returns the attribute owning an option with the
// passed value in the passed store.
func (s *Snapshot) AttributeByOptionValue(value string, storeID int64) (storage.EavAttribute, bool) {
	v, ok := s.optionValues[optionKey{value, storeID}]
	if !ok {
		return storage.EavAttribute{}, false
	}
	a, ok := s.attributesByID[v.AttributeID]
	return a, ok
}

// OptionValue returns the attribute option value with the passed value and
// store ID.
func (s *Snapshot) OptionValue(value string, storeID int64) (storage.AttributeOptionValue, bool) {
	v, ok := s.optionValues[optionKey{value, storeID}]
	return v, ok
}

// UserDefinedAttributes returns all user defined attributes.
func (s *Snapshot) UserDefinedAttributes() []storage.EavAttribute {
	return s.userDefined
}

// CoreConfig returns the configuration value at the passed path for the
// passed scope, falling back to the default scope when the scoped value is
// not set.
func (s *Snapshot) CoreConfig(scope string, scopeID int64, path string) (string, bool) {
	if e, ok := s.config[configKey{scope, scopeID, path}]; ok && e.Value.Valid {
		return e.Value.String, true
	}
	if scope != ScopeDefault || scopeID != 0 {
		if e, ok := s.config[configKey{ScopeDefault, 0, path}]; ok && e.Value.Valid {
			return e.Value.String, true
		}
	}
	return "", false
}
