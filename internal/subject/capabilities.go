package subject

import "github.com/catalogtools/eav-import/internal/observability"

// The subject's surface is split into narrow capabilities so an observer
// can depend on exactly what it needs instead of the whole row context.

// HeaderAccess is the header registry capability.
type HeaderAccess interface {
	AddHeader(name string) int
	HasHeader(name string) bool
	Header(name string) (int, error)
}

// ValueAccess is the row cell capability.
type ValueAccess interface {
	Value(column string) (string, bool)
	MustValue(column string) (string, error)
	Row() []string
}

// ScopeAccess is the store scope capability.
type ScopeAccess interface {
	SetStoreViewCode(code string)
	StoreViewCode(defaultCode string) string
	PrepareStoreViewCode()
	StoreID(code string) (int64, error)
	RowStoreID(defaultCode string) (int64, error)
}

// FormattingAccess is the value conversion capability.
type FormattingAccess interface {
	CastValue(backendType, value string) (any, error)
	FormatDate(value string) (string, bool)
	Explode(value string) []string
	ExplodeBy(value, delimiter string) []string
}

// LoggerAccess is the named logger capability.
type LoggerAccess interface {
	Logger(name string) *observability.Logger
	SystemLogger() *observability.Logger
}

var (
	_ HeaderAccess     = (*Subject)(nil)
	_ ValueAccess      = (*Subject)(nil)
	_ ScopeAccess      = (*Subject)(nil)
	_ FormattingAccess = (*Subject)(nil)
	_ LoggerAccess     = (*Subject)(nil)
)
