// Package subject provides the per-file row processing context. A subject
// owns the header registry, the row cursor and the working entity of the
// file it processes, and drives its observer chain row by row.
package subject

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/catalogtools/eav-import/internal/entity"
	"github.com/catalogtools/eav-import/internal/observability"
	"github.com/catalogtools/eav-import/internal/refdata"
	"github.com/catalogtools/eav-import/internal/scope"
)

// ColumnStoreViewCode is the well-known column carrying the row's store
// view code.
const ColumnStoreViewCode = "store_view_code"

// dateOutputLayout is the canonical layout every date is re-emitted in.
const dateOutputLayout = "2006-01-02 15:04:05"

// Attribute backend types governing value casting.
const (
	BackendTypeInt      = "int"
	BackendTypeDecimal  = "decimal"
	BackendTypeVarchar  = "varchar"
	BackendTypeText     = "text"
	BackendTypeDatetime = "datetime"
)

// Observer is a single-purpose transformation step in the per-row chain.
// Observers operate on the subject's current row and working entity and may
// not retain state across rows beyond what the subject exposes.
type Observer interface {
	Handle(s *Subject) error
}

// Settings holds the row processing configuration shared by all subjects of
// a run.
type Settings struct {
	FieldDelimiter      string // cell separator of the source files
	MultiValueDelimiter string // separator inside multi-value cells
	SourceDateLayout    string // Go reference layout of source dates
	Debug               bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		FieldDelimiter:      ",",
		MultiValueDelimiter: "|",
		SourceDateLayout:    "2006-01-02",
		Debug:               true,
	}
}

// Options bundles the collaborators a subject is created with.
type Options struct {
	Filename  string
	Settings  Settings
	Snapshot  *refdata.Snapshot
	Resolver  *scope.Resolver
	Loggers   *observability.Registry
	Observers []Observer
}

// Subject is the row processing context of one file. It is owned by a
// single worker; rows are processed strictly sequentially.
type Subject struct {
	filename  string
	settings  Settings
	snapshot  *refdata.Snapshot
	resolver  *scope.Resolver
	loggers   *observability.Registry
	observers []Observer

	headers       *Headers
	row           []string
	line          int
	storeViewCode string
	entity        entity.Entity
	skip          bool
}

// New creates a subject for one file.
func New(o Options) *Subject {
	if o.Settings == (Settings{}) {
		o.Settings = DefaultSettings()
	}
	if o.Loggers == nil {
		o.Loggers = observability.NewRegistry(observability.LogConfig{
			Level:       "info",
			ServiceName: "eav-import",
		})
	}
	return &Subject{
		filename:  o.Filename,
		settings:  o.Settings,
		snapshot:  o.Snapshot,
		resolver:  o.Resolver,
		loggers:   o.Loggers,
		observers: o.Observers,
		headers:   NewHeaders(),
	}
}

// Attach appends an observer to the chain.
func (s *Subject) Attach(o Observer) {
	s.observers = append(s.observers, o)
}

// ImportHeaders registers the header row. The line counter advances so data
// row numbers match the source file.
func (s *Subject) ImportHeaders(names []string) {
	s.line++
	for _, name := range names {
		s.headers.Add(strings.TrimSpace(name))
	}
}

// ProcessRow runs the observer chain over one data row and returns the
// finished entity. A cooperatively skipped row yields a nil entity and no
// error. Errors abort the chain for this row and carry the full source
// position when they originate from a cell.
func (s *Subject) ProcessRow(row []string) (entity.Entity, error) {
	s.line++
	s.row = row
	s.skip = false
	s.storeViewCode = ""
	s.entity = nil

	for _, o := range s.observers {
		if err := o.Handle(s); err != nil {
			return nil, err
		}
		if s.skip {
			return nil, nil
		}
	}

	return s.entity, nil
}

// SkipRow stops observer execution for the current row only. Mutations
// already applied by earlier observers are kept.
func (s *Subject) SkipRow() {
	s.skip = true
}

// WrapError embeds the current source position into a new error wrapping
// the passed cause.
func (s *Subject) WrapError(column string, cause error) error {
	return &ColumnError{
		Filename: s.filename,
		Line:     s.line,
		Column:   column,
		Cause:    cause,
	}
}

// Filename returns the name of the file being imported.
func (s *Subject) Filename() string {
	return s.filename
}

// LineNumber returns the current line number within the file.
func (s *Subject) LineNumber() int {
	return s.line
}

// Debug reports whether debug mode is enabled, default is true.
func (s *Subject) Debug() bool {
	return s.settings.Debug
}

// Row returns the cells of the current row.
func (s *Subject) Row() []string {
	return s.row
}

// AddHeader registers a header for the current file and returns its
// position.
func (s *Subject) AddHeader(name string) int {
	return s.headers.Add(name)
}

// HasHeader reports whether the header with the passed name is available.
func (s *Subject) HasHeader(name string) bool {
	return s.headers.Has(name)
}

// Header returns the position of the header with the passed name.
func (s *Subject) Header(name string) (int, error) {
	return s.headers.Get(name)
}

// Headers returns the header registry of the current file.
func (s *Subject) Headers() *Headers {
	return s.headers
}

// Value returns the cell of the current row in the named column. The second
// return is false when the header is unknown or the row is too short.
func (s *Subject) Value(column string) (string, bool) {
	pos, err := s.headers.Get(column)
	if err != nil || pos >= len(s.row) {
		return "", false
	}
	return s.row[pos], true
}

// MustValue returns the cell of the current row in the named column, or a
// column error carrying the source position when the column is missing.
func (s *Subject) MustValue(column string) (string, error) {
	pos, err := s.headers.Get(column)
	if err != nil {
		return "", s.WrapError(column, err)
	}
	if pos >= len(s.row) {
		return "", s.WrapError(column, fmt.Errorf("row has only %d columns", len(s.row)))
	}
	return s.row[pos], nil
}

// Entity returns the working entity of the current row, nil before the
// first observer initialized it.
func (s *Subject) Entity() entity.Entity {
	return s.entity
}

// SetEntity replaces the working entity of the current row.
func (s *Subject) SetEntity(e entity.Entity) {
	s.entity = e
}

// Snapshot returns the shared reference data snapshot.
func (s *Subject) Snapshot() *refdata.Snapshot {
	return s.snapshot
}

// Logger returns the named logger, the system logger for an empty name.
func (s *Subject) Logger(name string) *observability.Logger {
	return s.loggers.Logger(name)
}

// SystemLogger returns the default system logger.
func (s *Subject) SystemLogger() *observability.Logger {
	return s.loggers.System()
}

// SetStoreViewCode sets the store view code the current row is processed
// for.
func (s *Subject) SetStoreViewCode(code string) {
	s.storeViewCode = code
}

// StoreViewCode returns the store view code of the current row, or the
// passed default when the row has none.
func (s *Subject) StoreViewCode(defaultCode string) string {
	if s.storeViewCode != "" {
		return s.storeViewCode
	}
	return defaultCode
}

// PrepareStoreViewCode picks the store view code up from the current row
// when the file carries the column.
func (s *Subject) PrepareStoreViewCode() {
	if v, ok := s.Value(ColumnStoreViewCode); ok && v != "" {
		s.SetStoreViewCode(v)
	}
}

// StoreID returns the ID of the store view with the passed code.
func (s *Subject) StoreID(code string) (int64, error) {
	return s.resolver.StoreID(code)
}

// RowStoreID returns the store ID of the current row. Rows without a store
// view code fall back to the passed default code, and with none to the
// default store of the instance.
func (s *Subject) RowStoreID(defaultCode string) (int64, error) {
	if code := s.StoreViewCode(defaultCode); code != "" {
		return s.resolver.StoreID(code)
	}
	st, err := s.resolver.DefaultStore()
	if err != nil {
		return 0, err
	}
	return st.StoreID, nil
}

// CoreConfig returns the configuration value at the passed path and scope,
// falling back to the passed default. A missing value without a default is
// an error.
func (s *Subject) CoreConfig(scopeName string, scopeID int64, path, defaultValue string) (string, error) {
	if v, ok := s.snapshot.CoreConfig(scopeName, scopeID, path); ok {
		return v, nil
	}
	if defaultValue != "" {
		return defaultValue, nil
	}
	return "", fmt.Errorf("can't find a configuration value for %s", path)
}

// FormatDate parses the passed value against the configured source date
// layout and re-emits it in the canonical output layout. Malformed dates
// are expected in free-form input and degrade to no value instead of an
// error.
func (s *Subject) FormatDate(value string) (string, bool) {
	t, err := time.Parse(s.settings.SourceDateLayout, strings.TrimSpace(value))
	if err != nil {
		return "", false
	}
	return t.Format(dateOutputLayout), true
}

// CastValue casts the passed raw value based on the backend type of its
// attribute. Unknown backend types pass the raw value through unchanged;
// malformed datetimes degrade to a nil value.
func (s *Subject) CastValue(backendType, value string) (any, error) {
	switch backendType {
	case BackendTypeInt:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, &CastError{BackendType: backendType, Value: value, Cause: err}
		}
		return n, nil
	case BackendTypeDecimal:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, &CastError{BackendType: backendType, Value: value, Cause: err}
		}
		return f, nil
	case BackendTypeVarchar, BackendTypeText:
		return value, nil
	case BackendTypeDatetime:
		formatted, ok := s.FormatDate(value)
		if !ok {
			return nil, nil
		}
		return formatted, nil
	default:
		return value, nil
	}
}

// Explode splits the passed value on the configured multi value delimiter.
func (s *Subject) Explode(value string) []string {
	return s.ExplodeBy(value, s.settings.MultiValueDelimiter)
}

// ExplodeBy splits the passed value on the passed delimiter. Empty input
// yields an empty slice; consecutive delimiters yield empty elements.
func (s *Subject) ExplodeBy(value, delimiter string) []string {
	return Explode(value, delimiter)
}

// MultiValueDelimiter returns the configured multi value delimiter.
func (s *Subject) MultiValueDelimiter() string {
	return s.settings.MultiValueDelimiter
}

// FieldDelimiter returns the configured field delimiter.
func (s *Subject) FieldDelimiter() string {
	return s.settings.FieldDelimiter
}

// Explode splits the passed value on the passed delimiter without
// collapsing consecutive delimiters. Empty input yields an empty slice.
func Explode(value, delimiter string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, delimiter)
}
