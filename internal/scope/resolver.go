// Package scope resolves store view codes against the store/website
// hierarchy of the reference data snapshot.
package scope

import (
	"fmt"

	"github.com/catalogtools/eav-import/internal/refdata"
	"github.com/catalogtools/eav-import/internal/storage"
)

// UnknownStoreError indicates a store view code that is not present in the
// snapshot.
type UnknownStoreError struct {
	Code string
}

func (e *UnknownStoreError) Error() string {
	return fmt.Sprintf("store view with code %q not available", e.Code)
}

// NoDefaultStoreError indicates the default store join produced zero or more
// than one candidate.
type NoDefaultStoreError struct {
	Candidates int
}

func (e *NoDefaultStoreError) Error() string {
	return fmt.Sprintf("expected exactly one default store, found %d", e.Candidates)
}

// Resolver answers store scope questions from the immutable snapshot. It is
// safe for concurrent use by multiple subjects.
type Resolver struct {
	snap *refdata.Snapshot
}

// NewResolver creates a resolver on top of the passed snapshot.
func NewResolver(snap *refdata.Snapshot) *Resolver {
	return &Resolver{snap: snap}
}

// StoreID returns the ID of the store view with the passed code.
func (r *Resolver) StoreID(code string) (int64, error) {
	st, ok := r.snap.StoreByCode(code)
	if !ok {
		return 0, &UnknownStoreError{Code: code}
	}
	return st.StoreID, nil
}

// DefaultStore returns the default store view: the default store of the
// store group belonging to the default website. Exactly one candidate is
// expected; anything else is a configuration fault of the source system.
func (r *Resolver) DefaultStore() (storage.Store, error) {
	candidates := r.snap.DefaultStores()
	if len(candidates) != 1 {
		return storage.Store{}, &NoDefaultStoreError{Candidates: len(candidates)}
	}
	return candidates[0], nil
}
