// Package authz carries the identity of the calling browser session and
// translates it into SQL filter partials that scope store queries.
package authz

import (
	"strings"

	"github.com/gofrs/uuid/v5"
)

type ID struct{ uuid.UUID }

// Principal identifies the caller. The demo service has no user accounts;
// a principal is the anonymous browser session from the session cookie.
type Principal interface {
	ID() ID
}

type session struct {
	id ID
}

func (s session) ID() ID {
	return s.id
}

func New(id ID) Principal {
	return session{id: id}
}

// Partial is an optional SQL where-clause fragment appended to store
// queries to scope results.
type Partial interface {
	SQL() (string, []any)
}

var NilPartial Partial = nilPartial{}

type nilPartial struct{}

func (p nilPartial) SQL() (string, []any) {
	return "", nil
}

type filterPartial struct {
	filterBy []string
	values   []any
}

func (p filterPartial) SQL() (string, []any) {
	if len(p.filterBy) == 0 || len(p.filterBy) != len(p.values) {
		return "", nil
	}
	clauses := make([]string, 0, len(p.filterBy))
	args := make([]any, 0, len(p.values))
	for i, field := range p.filterBy {
		clauses = append(clauses, field+" = ?")
		args = append(args, p.values[i])
	}
	return "(" + strings.Join(clauses, " AND ") + ")", args
}

func FilterBy(key string, value any) filterPartial {
	return filterPartial{filterBy: []string{key}, values: []any{value}}
}

func (p filterPartial) And(key string, value any) Partial {
	p.filterBy = append(p.filterBy, key)
	p.values = append(p.values, value)
	return p
}
