package storage

// The fixed catalog of read queries the import core depends on. Every query
// is executed exactly once per run during the reference data load, except
// the parameterized single-row lookups which remain available to external
// collaborators. Placeholders use the $n form understood by both the
// postgres and sqlite3 drivers.

// QueryCategories loads all categories with their name and url_path values
// resolved at the admin scope (store_id 0).
const QueryCategories = `
	SELECT t0.entity_id, t0.attribute_set_id, t0.parent_id, t0.path,
	       t0.position, t0.children_count,
	       (SELECT t2.value
	          FROM eav_attribute t1, catalog_category_entity_varchar t2
	         WHERE t1.attribute_code = 'name'
	           AND t1.entity_type_id = 3
	           AND t2.attribute_id = t1.attribute_id
	           AND t2.store_id = 0
	           AND t2.entity_id = t0.entity_id) AS name,
	       (SELECT t2.value
	          FROM eav_attribute t1, catalog_category_entity_varchar t2
	         WHERE t1.attribute_code = 'url_path'
	           AND t1.entity_type_id = 3
	           AND t2.attribute_id = t1.attribute_id
	           AND t2.store_id = 0
	           AND t2.entity_id = t0.entity_id) AS url_path
	  FROM catalog_category_entity AS t0`

// QueryRootCategories loads the root category of every store view.
const QueryRootCategories = `
	SELECT t2.code, t0.entity_id, t0.attribute_set_id, t0.parent_id,
	       t0.path, t0.position, t0.children_count
	  FROM catalog_category_entity t0
	 INNER JOIN store_group t1 ON t1.root_category_id = t0.entity_id
	 INNER JOIN store t2 ON t2.group_id = t1.group_id`

// queryCategoryVarcharsByEntityIDs loads the admin scoped name values for a
// list of category entity IDs; the IN list is expanded per call.
const queryCategoryVarcharsByEntityIDs = `
	SELECT t1.value_id, t1.attribute_id, t1.store_id, t1.entity_id, t1.value
	  FROM catalog_category_entity_varchar AS t1
	 INNER JOIN eav_attribute AS t2
	         ON t2.entity_type_id = 3
	        AND t2.attribute_code = 'name'
	        AND t1.attribute_id = t2.attribute_id
	        AND t1.store_id = 0
	 WHERE t1.entity_id IN (%s)`

// QueryStores loads all store views.
const QueryStores = `
	SELECT t1.store_id, t1.code, t1.website_id, t1.group_id, t1.name,
	       t1.sort_order, t1.is_active
	  FROM store AS t1`

// QueryStoreDefault loads the default store view: the default store of the
// store group that belongs to the default website. Exactly one row is
// expected.
const QueryStoreDefault = `
	SELECT t0.store_id, t0.code, t0.website_id, t0.group_id, t0.name,
	       t0.sort_order, t0.is_active
	  FROM store t0
	 INNER JOIN store_group t1 ON t1.default_store_id = t0.store_id
	 INNER JOIN store_website t2 ON t1.website_id = t2.website_id
	                            AND t2.is_default = 1`

// QueryStoreWebsites loads all websites.
const QueryStoreWebsites = `
	SELECT t1.website_id, t1.code, t1.name, t1.sort_order,
	       t1.default_group_id, t1.is_default
	  FROM store_website AS t1`

// QueryTaxClasses loads all tax classes.
const QueryTaxClasses = `
	SELECT t1.class_id, t1.class_name, t1.class_type
	  FROM tax_class AS t1`

// QueryLinkTypes loads all product link types.
const QueryLinkTypes = `
	SELECT t1.link_type_id, t1.code
	  FROM catalog_product_link_type AS t1`

// QueryLinkAttributes loads all product link attributes.
const QueryLinkAttributes = `
	SELECT t1.product_link_attribute_id, t1.link_type_id,
	       t1.product_link_attribute_code, t1.data_type
	  FROM catalog_product_link_attribute AS t1`

// QueryEavEntityTypes loads all EAV entity types.
const QueryEavEntityTypes = `
	SELECT t1.entity_type_id, t1.entity_type_code
	  FROM eav_entity_type AS t1`

// QueryEavAttributeSet loads a single attribute set by its ID.
const QueryEavAttributeSet = `
	SELECT t1.attribute_set_id, t1.entity_type_id, t1.attribute_set_name,
	       t1.sort_order
	  FROM eav_attribute_set AS t1
	 WHERE t1.attribute_set_id = $1`

// QueryEavAttributeSetsByEntityTypeID loads the attribute sets of an entity
// type.
const QueryEavAttributeSetsByEntityTypeID = `
	SELECT t1.attribute_set_id, t1.entity_type_id, t1.attribute_set_name,
	       t1.sort_order
	  FROM eav_attribute_set AS t1
	 WHERE t1.entity_type_id = $1`

// QueryEavAttributesByEntityTypeIDAndAttributeSetName loads the attributes
// assigned to the named attribute set of an entity type.
const QueryEavAttributesByEntityTypeIDAndAttributeSetName = `
	SELECT t3.attribute_id, t3.entity_type_id, t3.attribute_code,
	       t3.backend_type, t3.frontend_input, t3.is_user_defined
	  FROM eav_attribute AS t3
	 INNER JOIN eav_entity_type AS t0
	         ON t0.entity_type_id = $1
	 INNER JOIN eav_attribute_set AS t1
	         ON t1.attribute_set_name = $2
	        AND t1.entity_type_id = t0.entity_type_id
	 INNER JOIN eav_entity_attribute AS t2
	         ON t2.attribute_set_id = t1.attribute_set_id
	        AND t3.attribute_id = t2.attribute_id`

// QueryEavAttributesByOptionValueAndStoreID loads the attributes owning an
// option with the passed value in the passed store.
const QueryEavAttributesByOptionValueAndStoreID = `
	SELECT t1.attribute_id, t1.entity_type_id, t1.attribute_code,
	       t1.backend_type, t1.frontend_input, t1.is_user_defined
	  FROM eav_attribute AS t1
	 INNER JOIN eav_attribute_option_value AS t2
	         ON t2.value = $1
	        AND t2.store_id = $2
	 INNER JOIN eav_attribute_option AS t3
	         ON t3.option_id = t2.option_id
	        AND t1.attribute_id = t3.attribute_id`

// QueryEavAttributesByIsUserDefined loads the attributes with the passed
// user defined flag.
const QueryEavAttributesByIsUserDefined = `
	SELECT t1.attribute_id, t1.entity_type_id, t1.attribute_code,
	       t1.backend_type, t1.frontend_input, t1.is_user_defined
	  FROM eav_attribute AS t1
	 WHERE t1.is_user_defined = $1`

// QueryEavAttributeOptionValue loads a single attribute option value by its
// value and store ID.
const QueryEavAttributeOptionValue = `
	SELECT t1.value_id, t1.option_id, t1.store_id, t1.value, t2.attribute_id
	  FROM eav_attribute_option_value AS t1
	 INNER JOIN eav_attribute_option AS t2 ON t2.option_id = t1.option_id
	 WHERE t1.value = $1
	   AND t1.store_id = $2`

// QueryEavAttributeOptionValues loads all attribute option values. The
// snapshot indexes them by (value, store_id) so option lookups never hit
// the database after the bulk load.
const QueryEavAttributeOptionValues = `
	SELECT t1.value_id, t1.option_id, t1.store_id, t1.value, t2.attribute_id
	  FROM eav_attribute_option_value AS t1
	 INNER JOIN eav_attribute_option AS t2 ON t2.option_id = t1.option_id`

// QueryCoreConfigData loads the system configuration.
const QueryCoreConfigData = `
	SELECT t1.config_id, t1.scope, t1.scope_id, t1.path, t1.value
	  FROM core_config_data AS t1`
