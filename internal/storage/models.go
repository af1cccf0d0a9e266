package storage

import "database/sql"

// Store is one row of the store table. A store (store view) belongs to a
// store group which belongs to a website.
type Store struct {
	StoreID   int64
	Code      string
	WebsiteID int64
	GroupID   int64
	Name      string
	SortOrder int64
	IsActive  int64
}

// StoreWebsite is one row of the store_website table.
type StoreWebsite struct {
	WebsiteID      int64
	Code           string
	Name           string
	SortOrder      int64
	DefaultGroupID int64
	IsDefault      int64
}

// Category is one row of the category entity table with the name and
// url_path values resolved at the admin scope.
type Category struct {
	EntityID       int64
	AttributeSetID int64
	ParentID       int64
	Path           string
	Position       int64
	ChildrenCount  int64
	Name           sql.NullString
	URLPath        sql.NullString
}

// RootCategory is a category joined with the store it is the root of.
type RootCategory struct {
	StoreCode string
	Category
}

// CategoryVarchar is one varchar attribute value row of a category.
type CategoryVarchar struct {
	ValueID     int64
	AttributeID int64
	StoreID     int64
	EntityID    int64
	Value       sql.NullString
}

// TaxClass is one row of the tax_class table.
type TaxClass struct {
	ClassID   int64
	ClassName string
	ClassType string
}

// LinkType is one row of the product link type table.
type LinkType struct {
	LinkTypeID int64
	Code       string
}

// LinkAttribute is one row of the product link attribute table.
type LinkAttribute struct {
	LinkAttributeID int64
	LinkTypeID      int64
	Code            string
	DataType        string
}

// EavEntityType is one row of the eav_entity_type table.
type EavEntityType struct {
	EntityTypeID   int64
	EntityTypeCode string
}

// EavAttributeSet is one row of the eav_attribute_set table.
type EavAttributeSet struct {
	AttributeSetID   int64
	EntityTypeID     int64
	AttributeSetName string
	SortOrder        int64
}

// EavAttribute is one row of the eav_attribute table.
type EavAttribute struct {
	AttributeID   int64
	EntityTypeID  int64
	AttributeCode string
	BackendType   string
	FrontendInput sql.NullString
	IsUserDefined int64
}

// AttributeOptionValue is one row of the eav_attribute_option_value table,
// joined with the attribute the option belongs to.
type AttributeOptionValue struct {
	ValueID     int64
	OptionID    int64
	StoreID     int64
	Value       string
	AttributeID int64
}

// ConfigEntry is one row of the core_config_data table.
type ConfigEntry struct {
	ConfigID int64
	Scope    string
	ScopeID  int64
	Path     string
	Value    sql.NullString
}
