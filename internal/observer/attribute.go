package observer

import (
	"fmt"

	"github.com/catalogtools/eav-import/internal/entity"
	"github.com/catalogtools/eav-import/internal/refdata"
	"github.com/catalogtools/eav-import/internal/subject"
)

// Frontend inputs whose raw values are option labels instead of scalars.
const (
	frontendInputSelect      = "select"
	frontendInputMultiselect = "multiselect"
)

// attributeContext is the slice of the subject the generic attribute step
// needs.
type attributeContext interface {
	subject.ValueAccess
	subject.ScopeAccess
	subject.FormattingAccess
	WrapError(column string, cause error) error
	Entity() entity.Entity
	SetEntity(e entity.Entity)
	Snapshot() *refdata.Snapshot
}

// Attribute casts the user defined attribute columns of the current row by
// the backend type of the matching attribute and merges the typed values
// into the working entity. Select and multiselect labels are resolved to
// their option IDs through the snapshot.
type Attribute struct {
	entityTypeCode string
}

// NewAttribute creates a generic attribute casting step for the passed
// entity type.
func NewAttribute(entityTypeCode string) *Attribute {
	return &Attribute{entityTypeCode: entityTypeCode}
}

func (o *Attribute) Handle(s *subject.Subject) error {
	return o.process(s)
}

func (o *Attribute) process(row attributeContext) error {
	setCode, ok := row.Value(ColumnAttributeSetCode)
	if !ok || setCode == "" {
		return nil
	}

	et, ok := row.Snapshot().EntityTypeByCode(o.entityTypeCode)
	if !ok {
		return fmt.Errorf("unknown entity type %q", o.entityTypeCode)
	}
	attributes, ok := row.Snapshot().AttributesBySetName(et.EntityTypeID, setCode)
	if !ok {
		return row.WrapError(ColumnAttributeSetCode,
			fmt.Errorf("found invalid attribute set %q for entity type %q", setCode, o.entityTypeCode))
	}

	storeID, err := row.RowStoreID("")
	if err != nil {
		return row.WrapError(subject.ColumnStoreViewCode, err)
	}

	attrs := entity.Entity{}
	for code, attr := range attributes {
		if attr.IsUserDefined == 0 {
			continue
		}
		raw, ok := row.Value(code)
		if !ok || raw == "" {
			continue
		}

		value, err := o.castValue(row, attr.FrontendInput.String, attr.BackendType, raw, storeID)
		if err != nil {
			return row.WrapError(code, err)
		}
		if value == nil {
			continue
		}
		attrs[code] = value
	}

	if len(attrs) == 0 {
		return nil
	}
	merge(row, attrs)
	return nil
}

func (o *Attribute) castValue(row attributeContext, frontendInput, backendType, raw string, storeID int64) (any, error) {
	switch frontendInput {
	case frontendInputSelect:
		return o.optionID(row, raw, storeID)
	case frontendInputMultiselect:
		values := row.Explode(raw)
		ids := make([]int64, 0, len(values))
		for _, v := range values {
			id, err := o.optionID(row, v, storeID)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		return ids, nil
	default:
		return row.CastValue(backendType, raw)
	}
}

// optionID resolves an option label within the row's store scope, falling
// back to the admin scope where the label has no store override.
func (o *Attribute) optionID(row attributeContext, label string, storeID int64) (int64, error) {
	if ov, ok := row.Snapshot().OptionValue(label, storeID); ok {
		return ov.OptionID, nil
	}
	if ov, ok := row.Snapshot().OptionValue(label, 0); ok {
		return ov.OptionID, nil
	}
	return 0, fmt.Errorf("can't find option with value %q", label)
}
