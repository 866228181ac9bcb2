package flow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotObjectRole is returned when a non-object role is used to attach an object
	ErrNotObjectRole = errors.New("role is not an object role")
	// ErrUnknownRole is returned for a Role value outside the defined set
	ErrUnknownRole = errors.New("unknown role")
)

// ActionError provides structured error information for action operations.
type ActionError struct {
	Op       string // Operation that failed (e.g., "AddObject")
	ActionID int
	Cause    error
}

// Error implements the error interface.
func (e *ActionError) Error() string {
	return fmt.Sprintf("%s action %d: %v", e.Op, e.ActionID, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ActionError) Unwrap() error {
	return e.Cause
}

// Action is one recipe step: a verb token plus the objects it acts on.
// The id orders actions by their position in the recipe and is the only
// identity an action has; two actions with equal text remain distinct.
type Action struct {
	ID              int
	Description     Token
	DirectObjects   []TaggedWord
	IndirectObjects []TaggedWord
}

// AddObject attaches a mention under the given object role
func (a *Action) AddObject(word TaggedWord, role Role) error {
	switch role {
	case RoleDirectObject:
		a.DirectObjects = append(a.DirectObjects, word)
	case RoleIndirectObject:
		a.IndirectObjects = append(a.IndirectObjects, word)
	case RoleAction, RoleOther:
		return &ActionError{Op: "AddObject", ActionID: a.ID, Cause: fmt.Errorf("%w: %s", ErrNotObjectRole, role)}
	default:
		return &ActionError{Op: "AddObject", ActionID: a.ID, Cause: fmt.Errorf("%w: %s", ErrUnknownRole, role)}
	}
	return nil
}

// Objects returns direct objects followed by indirect objects
func (a *Action) Objects() []TaggedWord {
	objects := make([]TaggedWord, 0, len(a.DirectObjects)+len(a.IndirectObjects))
	objects = append(objects, a.DirectObjects...)
	return append(objects, a.IndirectObjects...)
}

// ObjectLemmas returns the lemma of every object token, in order, with repeats
func (a *Action) ObjectLemmas() []string {
	var lemmas []string
	for _, w := range a.Objects() {
		lemmas = append(lemmas, w.Lemmas()...)
	}
	return lemmas
}

// SharesObjectLemma reports whether any object token of a has the same lemma
// as any object token of other.
func (a *Action) SharesObjectLemma(other *Action) bool {
	lemmas := make(map[string]struct{})
	for _, l := range a.ObjectLemmas() {
		lemmas[l] = struct{}{}
	}
	for _, l := range other.ObjectLemmas() {
		if _, ok := lemmas[l]; ok {
			return true
		}
	}
	return false
}

// Label is the text an action carries into comparisons and DOT output:
// the description lemma followed by the object lemmas.
func (a *Action) Label() string {
	parts := append([]string{a.Description.NormalizedLemma()}, a.ObjectLemmas()...)
	return strings.Join(parts, " ")
}

func (a *Action) String() string {
	objects := make([]string, 0, len(a.DirectObjects)+len(a.IndirectObjects))
	for _, w := range a.Objects() {
		objects = append(objects, w.String())
	}
	return fmt.Sprintf("%d:%s(%s)", a.ID, a.Description.Text, strings.Join(objects, ", "))
}

// Registry hands out action ids for one construction session. It replaces
// any global id counter: each parse gets its own registry, so independent
// sessions (and tests) never share identity state.
type Registry struct {
	actions []*Action
}

// NewRegistry creates an empty registry whose first action gets id 0
func NewRegistry() *Registry {
	return &Registry{}
}

// Next returns the id the next NewAction call will assign
func (r *Registry) Next() int {
	return len(r.actions)
}

// NewAction creates and records an action with the next id
func (r *Registry) NewAction(description Token) *Action {
	a := &Action{ID: len(r.actions), Description: description}
	r.actions = append(r.actions, a)
	return a
}

// Get returns the action with the given id
func (r *Registry) Get(id int) (*Action, bool) {
	if id < 0 || id >= len(r.actions) {
		return nil, false
	}
	return r.actions[id], true
}

// Len returns the number of actions created so far
func (r *Registry) Len() int {
	return len(r.actions)
}

// Actions returns every action in id order
func (r *Registry) Actions() []*Action {
	return append([]*Action(nil), r.actions...)
}
