package statemachine

import (
	"fmt"
	"slices"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/pkg/errs"
)

// Rule is one edge of a transition table: an actor in Role may apply Action
// to an entity in From, moving it to To.
type Rule[S comparable] struct {
	From   S
	Action Action
	Role   kernel.Role
	To     S
}

type edge[S comparable] struct {
	from   S
	action Action
	role   kernel.Role
}

// Table is an immutable (status, action, role) -> status lookup for one
// entity kind. Combinations it does not list are invalid transitions.
type Table[S comparable] struct {
	entity string
	rules  []Rule[S]
	index  map[edge[S]]S
}

// NewTable builds a table. Listing the same (from, action, role) twice is a
// programming error and panics at package initialisation.
func NewTable[S comparable](entity string, rules ...Rule[S]) *Table[S] {
	t := &Table[S]{
		entity: entity,
		rules:  slices.Clone(rules),
		index:  make(map[edge[S]]S, len(rules)),
	}
	for _, r := range rules {
		k := edge[S]{from: r.From, action: r.Action, role: r.Role}
		if _, dup := t.index[k]; dup {
			panic(fmt.Sprintf("statemachine: duplicate %s rule %v --%s/%s-->", entity, r.From, r.Action, r.Role))
		}
		t.index[k] = r.To
	}
	return t
}

// Entity returns the entity name used in transition errors.
func (t *Table[S]) Entity() string {
	return t.entity
}

// Next returns the status reached by applying action as role from status
// from, or an InvalidTransitionError.
func (t *Table[S]) Next(from S, action Action, role kernel.Role) (S, error) {
	to, ok := t.index[edge[S]{from: from, action: action, role: role}]
	if !ok {
		var zero S
		return zero, errs.NewInvalidTransitionError(t.entity, fmt.Sprint(from), action.String(), role.String())
	}
	return to, nil
}

// Allows reports whether Next would succeed.
func (t *Table[S]) Allows(from S, action Action, role kernel.Role) bool {
	_, ok := t.index[edge[S]{from: from, action: action, role: role}]
	return ok
}

// Outgoing lists the rules leaving from, in declaration order.
func (t *Table[S]) Outgoing(from S) []Rule[S] {
	var out []Rule[S]
	for _, r := range t.rules {
		if r.From == from {
			out = append(out, r)
		}
	}
	return out
}

// IsTerminal reports whether no rule leaves status s.
func (t *Table[S]) IsTerminal(s S) bool {
	return len(t.Outgoing(s)) == 0
}

// Rules returns a copy of every rule in declaration order.
func (t *Table[S]) Rules() []Rule[S] {
	return slices.Clone(t.rules)
}
