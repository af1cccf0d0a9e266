// Package observer provides the concrete row transformation steps that make
// up an import chain. Each observer is a single-purpose step consuming a
// narrow slice of the subject's surface.
package observer

import "github.com/catalogtools/eav-import/internal/entity"

// Columns the concrete observers read from the source files.
const (
	ColumnSKU              = "sku"
	ColumnName             = "name"
	ColumnAttributeSetCode = "attribute_set_code"
)

// MemberStoreID is the entity member carrying the resolved store scope.
const MemberStoreID = "store_id"

// MemberAttributeSetID is the entity member carrying the resolved
// attribute set.
const MemberAttributeSetID = "attribute_set_id"

// entityWriter is the working entity slice of the subject's surface.
type entityWriter interface {
	Entity() entity.Entity
	SetEntity(e entity.Entity)
}

// merge folds attrs into the row's working entity, initializing it when no
// earlier step has touched the row yet.
func merge(row entityWriter, attrs entity.Entity) {
	if e := row.Entity(); e != nil {
		row.SetEntity(entity.Merge(e, attrs))
		return
	}
	row.SetEntity(entity.Initialize(attrs))
}
