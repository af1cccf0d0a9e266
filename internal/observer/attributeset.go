package observer

import (
	"fmt"

	"github.com/catalogtools/eav-import/internal/entity"
	"github.com/catalogtools/eav-import/internal/refdata"
	"github.com/catalogtools/eav-import/internal/subject"
)

// attributeSetContext is the slice of the subject the set resolution step
// needs.
type attributeSetContext interface {
	subject.ValueAccess
	WrapError(column string, cause error) error
	Entity() entity.Entity
	SetEntity(e entity.Entity)
	Snapshot() *refdata.Snapshot
}

// AttributeSet resolves the attribute_set_code column of the current row
// against the loaded sets of the configured entity type and records the set
// ID on the working entity.
type AttributeSet struct {
	entityTypeCode string
}

// NewAttributeSet creates a set resolution step for the passed entity type.
func NewAttributeSet(entityTypeCode string) *AttributeSet {
	return &AttributeSet{entityTypeCode: entityTypeCode}
}

func (o *AttributeSet) Handle(s *subject.Subject) error {
	return o.process(s)
}

func (o *AttributeSet) process(row attributeSetContext) error {
	code, ok := row.Value(ColumnAttributeSetCode)
	if !ok || code == "" {
		return nil
	}

	et, ok := row.Snapshot().EntityTypeByCode(o.entityTypeCode)
	if !ok {
		return fmt.Errorf("unknown entity type %q", o.entityTypeCode)
	}
	set, ok := row.Snapshot().AttributeSetByName(et.EntityTypeID, code)
	if !ok {
		return row.WrapError(ColumnAttributeSetCode,
			fmt.Errorf("found invalid attribute set %q for entity type %q", code, o.entityTypeCode))
	}

	merge(row, entity.Entity{MemberAttributeSetID: set.AttributeSetID})
	return nil
}
