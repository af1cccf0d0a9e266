package observer

import (
	"github.com/catalogtools/eav-import/internal/subject"
)

// storeViewContext is the slice of the subject the store view step needs.
type storeViewContext interface {
	subject.ScopeAccess
	WrapError(column string, cause error) error
}

// StoreView picks the store view code up from the current row and verifies
// it resolves to a known store before any later step depends on the scope.
type StoreView struct{}

// NewStoreView creates a store view resolution step.
func NewStoreView() *StoreView {
	return &StoreView{}
}

func (o *StoreView) Handle(s *subject.Subject) error {
	return o.process(s)
}

func (o *StoreView) process(row storeViewContext) error {
	row.PrepareStoreViewCode()

	code := row.StoreViewCode("")
	if code == "" {
		return nil
	}
	if _, err := row.StoreID(code); err != nil {
		return row.WrapError(subject.ColumnStoreViewCode, err)
	}
	return nil
}
