// Package entity provides the attribute map representation of an import
// entity and the builder functions used by observers to assemble it.
package entity

// MemberStatus is the reserved entity member holding the lifecycle status.
const MemberStatus = "entity_status"

// Lifecycle status values.
const (
	StatusCreate = "create"
	StatusUpdate = "update"
)

// Entity is the working attribute map built up across an observer chain.
type Entity map[string]any

// Initialize returns a new entity containing the passed attributes with the
// status set to create. The status member always wins over a status key in
// attrs. The input map is not modified.
func Initialize(attrs Entity) Entity {
	e := make(Entity, len(attrs)+1)
	for k, v := range attrs {
		e[k] = v
	}
	e[MemberStatus] = StatusCreate
	return e
}

// Merge returns a new entity equal to the passed entity overlaid with attrs,
// rightmost wins, with the status forced to update. The status is forced even
// when the entity was initialized in the same row; downstream persistence
// relies on that contract. Neither input map is modified.
func Merge(e Entity, attrs Entity) Entity {
	out := make(Entity, len(e)+len(attrs)+1)
	for k, v := range e {
		out[k] = v
	}
	for k, v := range attrs {
		out[k] = v
	}
	out[MemberStatus] = StatusUpdate
	return out
}

// Status returns the entity's lifecycle status, or an empty string when the
// status member is missing or not a string.
func (e Entity) Status() string {
	s, _ := e[MemberStatus].(string)
	return s
}

// Clone returns a shallow copy of the entity.
func (e Entity) Clone() Entity {
	out := make(Entity, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
