package docstratum

import (
	"errors"
	"time"

	"github.com/southpawriter02/docstratum/pkg/authz"
)

var ErrNotFound = errors.New("not found")

type clock func() time.Time

type docStratum struct {
	parser            Parser
	generative        GenerativeModel
	sessions          SessionStore
	store             Store
	validator         *Validator
	now               clock
	examples          []string
	maxContextSources int
}

const defaultMaxContextSources = 3

type Option func(*docStratum)

func WithExampleQuestions(questions []string) Option {
	return func(ds *docStratum) {
		ds.examples = questions
	}
}

func WithMaxContextSources(n int) Option {
	return func(ds *docStratum) {
		ds.maxContextSources = n
	}
}

func WithClock(now clock) Option {
	return func(ds *docStratum) {
		ds.now = now
	}
}

func New(parser Parser, gm GenerativeModel, validator *Validator, sessions SessionStore, storeAdapter Store, options ...Option) *docStratum {
	ds := &docStratum{
		parser:            parser,
		generative:        gm,
		validator:         validator,
		sessions:          sessions,
		store:             storeAdapter,
		now:               func() time.Time { return time.Now().UTC() },
		examples:          defaultExampleQuestions,
		maxContextSources: defaultMaxContextSources,
	}

	for _, o := range options {
		o(ds)
	}

	return ds
}

// comparisonPartial scopes comparison queries to the caller's session so
// one session never observes another session's history.
func (ds *docStratum) comparisonPartial(principal authz.Principal) authz.Partial {
	return authz.FilterBy("session", principal.ID().String())
}
