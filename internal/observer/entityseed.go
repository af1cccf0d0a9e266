package observer

import (
	"github.com/catalogtools/eav-import/internal/entity"
	"github.com/catalogtools/eav-import/internal/subject"
)

// entityContext is the slice of the subject an entity seeding step needs.
type entityContext interface {
	subject.ValueAccess
	subject.ScopeAccess
	WrapError(column string, cause error) error
	SkipRow()
	Entity() entity.Entity
	SetEntity(e entity.Entity)
}

// EntitySeed initializes the working entity of a row from the identifying
// columns and the resolved store scope. It is expected to run first in the
// chain; later steps merge into the entity it seeded.
type EntitySeed struct{}

// NewEntitySeed creates an entity seeding step.
func NewEntitySeed() *EntitySeed {
	return &EntitySeed{}
}

func (o *EntitySeed) Handle(s *subject.Subject) error {
	return o.process(s)
}

func (o *EntitySeed) process(row entityContext) error {
	sku, err := row.MustValue(ColumnSKU)
	if err != nil {
		return err
	}
	// Rows without an identifier carry nothing to import.
	if sku == "" {
		row.SkipRow()
		return nil
	}

	storeID, err := row.RowStoreID("")
	if err != nil {
		return row.WrapError(subject.ColumnStoreViewCode, err)
	}

	attrs := entity.Entity{
		ColumnSKU:     sku,
		MemberStoreID: storeID,
	}
	if name, ok := row.Value(ColumnName); ok && name != "" {
		attrs[ColumnName] = name
	}

	merge(row, attrs)
	return nil
}
