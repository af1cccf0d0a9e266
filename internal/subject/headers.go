package subject

import "fmt"

// MissingHeaderError indicates a column name that was never registered for
// the current file.
type MissingHeaderError struct {
	Name string
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("header %q is not available", e.Name)
}

// Headers is the insertion-ordered mapping of column name to position for
// one file. It is owned by a single subject and not safe for concurrent use.
type Headers struct {
	positions map[string]int
	names     []string
}

// NewHeaders creates an empty header registry.
func NewHeaders() *Headers {
	return &Headers{positions: make(map[string]int)}
}

// Add registers the header with the passed name and returns its position.
// Adding an already registered name is idempotent and returns the existing
// position; new names are appended at the current count.
func (h *Headers) Add(name string) int {
	if pos, ok := h.positions[name]; ok {
		return pos
	}
	pos := len(h.names)
	h.positions[name] = pos
	h.names = append(h.names, name)
	return pos
}

// Has reports whether the header with the passed name is registered.
func (h *Headers) Has(name string) bool {
	_, ok := h.positions[name]
	return ok
}

// Get returns the position of the header with the passed name.
func (h *Headers) Get(name string) (int, error) {
	pos, ok := h.positions[name]
	if !ok {
		return 0, &MissingHeaderError{Name: name}
	}
	return pos, nil
}

// Names returns the registered header names in position order.
func (h *Headers) Names() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Len returns the number of registered headers.
func (h *Headers) Len() int {
	return len(h.names)
}
