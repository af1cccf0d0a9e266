package storage

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// schema is a minimal rendition of the reference tables the query catalog
// reads from.
var schema = []string{
	`CREATE TABLE store (
		store_id INTEGER PRIMARY KEY,
		code TEXT NOT NULL,
		website_id INTEGER NOT NULL,
		group_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		is_active INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE store_group (
		group_id INTEGER PRIMARY KEY,
		website_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		root_category_id INTEGER NOT NULL,
		default_store_id INTEGER NOT NULL
	)`,
	`CREATE TABLE store_website (
		website_id INTEGER PRIMARY KEY,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		default_group_id INTEGER NOT NULL DEFAULT 0,
		is_default INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE catalog_category_entity (
		entity_id INTEGER PRIMARY KEY,
		attribute_set_id INTEGER NOT NULL,
		parent_id INTEGER NOT NULL,
		path TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		children_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE catalog_category_entity_varchar (
		value_id INTEGER PRIMARY KEY,
		attribute_id INTEGER NOT NULL,
		store_id INTEGER NOT NULL,
		entity_id INTEGER NOT NULL,
		value TEXT
	)`,
	`CREATE TABLE tax_class (
		class_id INTEGER PRIMARY KEY,
		class_name TEXT NOT NULL,
		class_type TEXT NOT NULL
	)`,
	`CREATE TABLE catalog_product_link_type (
		link_type_id INTEGER PRIMARY KEY,
		code TEXT NOT NULL
	)`,
	`CREATE TABLE catalog_product_link_attribute (
		product_link_attribute_id INTEGER PRIMARY KEY,
		link_type_id INTEGER NOT NULL,
		product_link_attribute_code TEXT NOT NULL,
		data_type TEXT NOT NULL
	)`,
	`CREATE TABLE eav_entity_type (
		entity_type_id INTEGER PRIMARY KEY,
		entity_type_code TEXT NOT NULL
	)`,
	`CREATE TABLE eav_attribute_set (
		attribute_set_id INTEGER PRIMARY KEY,
		entity_type_id INTEGER NOT NULL,
		attribute_set_name TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE eav_attribute (
		attribute_id INTEGER PRIMARY KEY,
		entity_type_id INTEGER NOT NULL,
		attribute_code TEXT NOT NULL,
		backend_type TEXT NOT NULL,
		frontend_input TEXT,
		is_user_defined INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE eav_entity_attribute (
		entity_attribute_id INTEGER PRIMARY KEY,
		entity_type_id INTEGER NOT NULL,
		attribute_set_id INTEGER NOT NULL,
		attribute_id INTEGER NOT NULL
	)`,
	`CREATE TABLE eav_attribute_option (
		option_id INTEGER PRIMARY KEY,
		attribute_id INTEGER NOT NULL
	)`,
	`CREATE TABLE eav_attribute_option_value (
		value_id INTEGER PRIMARY KEY,
		option_id INTEGER NOT NULL,
		store_id INTEGER NOT NULL,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE core_config_data (
		config_id INTEGER PRIMARY KEY,
		scope TEXT NOT NULL DEFAULT 'default',
		scope_id INTEGER NOT NULL DEFAULT 0,
		path TEXT NOT NULL,
		value TEXT
	)`,
}

var seed = []string{
	`INSERT INTO store_website (website_id, code, name, default_group_id, is_default)
	 VALUES (0, 'admin', 'Admin', 0, 0), (1, 'base', 'Main Website', 1, 1)`,
	`INSERT INTO store_group (group_id, website_id, name, root_category_id, default_store_id)
	 VALUES (0, 0, 'Default', 0, 0), (1, 1, 'Main Website Store', 2, 1)`,
	`INSERT INTO store (store_id, code, website_id, group_id, name)
	 VALUES (0, 'admin', 0, 0, 'Admin'), (1, 'default', 1, 1, 'Default Store View')`,
	`INSERT INTO catalog_category_entity (entity_id, attribute_set_id, parent_id, path, position, children_count)
	 VALUES (1, 3, 0, '1', 0, 1), (2, 3, 1, '1/2', 1, 0)`,
	`INSERT INTO eav_entity_type (entity_type_id, entity_type_code)
	 VALUES (3, 'catalog_category'), (4, 'catalog_product')`,
	`INSERT INTO eav_attribute (attribute_id, entity_type_id, attribute_code, backend_type, frontend_input, is_user_defined)
	 VALUES (45, 3, 'name', 'varchar', 'text', 0),
	        (117, 3, 'url_path', 'varchar', 'text', 0),
	        (73, 4, 'name', 'varchar', 'text', 0),
	        (77, 4, 'price', 'decimal', 'price', 0),
	        (93, 4, 'color', 'int', 'select', 1)`,
	`INSERT INTO catalog_category_entity_varchar (value_id, attribute_id, store_id, entity_id, value)
	 VALUES (1, 45, 0, 1, 'Root Catalog'),
	        (2, 45, 0, 2, 'Default Category'),
	        (3, 117, 0, 2, 'default-category.html')`,
	`INSERT INTO eav_attribute_set (attribute_set_id, entity_type_id, attribute_set_name)
	 VALUES (3, 3, 'Default'), (4, 4, 'Default')`,
	`INSERT INTO eav_entity_attribute (entity_attribute_id, entity_type_id, attribute_set_id, attribute_id)
	 VALUES (1, 4, 4, 73), (2, 4, 4, 77), (3, 4, 4, 93)`,
	`INSERT INTO eav_attribute_option (option_id, attribute_id) VALUES (10, 93), (11, 93)`,
	`INSERT INTO eav_attribute_option_value (value_id, option_id, store_id, value)
	 VALUES (100, 10, 0, 'red'), (101, 11, 0, 'blue')`,
	`INSERT INTO tax_class (class_id, class_name, class_type)
	 VALUES (2, 'Taxable Goods', 'PRODUCT'), (3, 'Retail Customer', 'CUSTOMER')`,
	`INSERT INTO catalog_product_link_type (link_type_id, code)
	 VALUES (1, 'relation'), (4, 'upsell'), (5, 'crosssell')`,
	`INSERT INTO catalog_product_link_attribute (product_link_attribute_id, link_type_id, product_link_attribute_code, data_type)
	 VALUES (1, 1, 'position', 'int'), (2, 4, 'position', 'int')`,
	`INSERT INTO core_config_data (config_id, scope, scope_id, path, value)
	 VALUES (1, 'default', 0, 'web/seo/use_rewrites', '1'),
	        (2, 'stores', 1, 'general/locale/code', 'en_US')`,
}

// newTestRepository opens an in-memory sqlite database loaded with the
// reference schema and a small catalog fixture.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	for _, stmt := range schema {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
	for _, stmt := range seed {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	return NewRepository(db)
}
