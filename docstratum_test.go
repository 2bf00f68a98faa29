package docstratum

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/southpawriter02/docstratum/pkg/authz"
)

// fakeParser returns a canned parse result.
type fakeParser struct {
	file *LlmsFile
	err  error
}

func (p *fakeParser) Parse(ctx context.Context, contents []byte) (*LlmsFile, error) {
	return p.file, p.err
}

// fakeGenerative answers from a canned map keyed by whether context
// documents were supplied.
type fakeGenerative struct {
	baseline Answer
	enhanced Answer
	err      error

	calls []int // number of documents per Generate call
}

func (g *fakeGenerative) Name() string {
	return "fake"
}

func (g *fakeGenerative) Generate(ctx context.Context, question Question, documents []ContextDocument) (Answer, error) {
	g.calls = append(g.calls, len(documents))
	if g.err != nil {
		return Answer{}, g.err
	}
	if len(documents) == 0 {
		return g.baseline, nil
	}
	return g.enhanced, nil
}

type fakeSessionStore struct {
	sessions map[SessionID]*Session
	saves    int
	err      error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[SessionID]*Session{}}
}

func (s *fakeSessionStore) FindSession(ctx context.Context, id SessionID) (*Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	aSession, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *aSession
	return &copied, nil
}

func (s *fakeSessionStore) SaveSession(ctx context.Context, session *Session) error {
	if s.err != nil {
		return s.err
	}
	copied := *session
	s.sessions[session.ID] = &copied
	s.saves++
	return nil
}

func (s *fakeSessionStore) DeleteSession(ctx context.Context, id SessionID) error {
	delete(s.sessions, id)
	return nil
}

type fakeStore struct {
	principals  map[authz.ID]struct{}
	sources     map[SourceID]*Source
	diagnostics map[SourceID][]Diagnostic
	comparisons map[ComparisonID]*Comparison
	err         error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		principals:  map[authz.ID]struct{}{},
		sources:     map[SourceID]*Source{},
		diagnostics: map[SourceID][]Diagnostic{},
		comparisons: map[ComparisonID]*Comparison{},
	}
}

func (s *fakeStore) Transactional(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *fakeStore) SavePrincipal(ctx context.Context, principal authz.Principal) error {
	if s.err != nil {
		return s.err
	}
	s.principals[principal.ID()] = struct{}{}
	return nil
}

func (s *fakeStore) SaveSources(ctx context.Context, sources ...*Source) error {
	if s.err != nil {
		return s.err
	}
	for _, aSource := range sources {
		copied := *aSource
		s.sources[aSource.ID] = &copied
	}
	return nil
}

func (s *fakeStore) SaveDiagnostics(ctx context.Context, id SourceID, diags []Diagnostic) error {
	if s.err != nil {
		return s.err
	}
	s.diagnostics[id] = diags
	return nil
}

func (s *fakeStore) ListSources(ctx context.Context, filter SourceFilter, partial authz.Partial, params SortParams) ([]*Source, error) {
	if s.err != nil {
		return nil, s.err
	}
	var sources []*Source
	for _, aSource := range s.sources {
		if filter.Status != "" && aSource.Status != filter.Status {
			continue
		}
		if filter.Grade != "" && aSource.Grade != filter.Grade {
			continue
		}
		sources = append(sources, aSource)
	}
	if params.By == "composite_score" && params.Order == SortOrderDesc {
		sort.Slice(sources, func(i, j int) bool {
			return sources[i].Composite > sources[j].Composite
		})
	}
	if params.Limit > 0 && len(sources) > params.Limit {
		sources = sources[:params.Limit]
	}
	return sources, nil
}

func (s *fakeStore) FindSource(ctx context.Context, id SourceID, partial authz.Partial) (*Source, error) {
	if s.err != nil {
		return nil, s.err
	}
	aSource, ok := s.sources[id]
	if !ok {
		return nil, ErrNotFound
	}
	return aSource, nil
}

func (s *fakeStore) ListDiagnostics(ctx context.Context, id SourceID) ([]Diagnostic, error) {
	return s.diagnostics[id], s.err
}

func (s *fakeStore) DeleteSources(ctx context.Context, sources ...*Source) error {
	if s.err != nil {
		return s.err
	}
	for _, aSource := range sources {
		delete(s.sources, aSource.ID)
		delete(s.diagnostics, aSource.ID)
	}
	return nil
}

func (s *fakeStore) SaveComparisons(ctx context.Context, comparisons ...*Comparison) error {
	if s.err != nil {
		return s.err
	}
	for _, aComparison := range comparisons {
		copied := *aComparison
		s.comparisons[aComparison.ID] = &copied
	}
	return nil
}

func (s *fakeStore) ListComparisons(ctx context.Context, filter ComparisonFilter, partial authz.Partial, params SortParams) ([]*Comparison, error) {
	if s.err != nil {
		return nil, s.err
	}
	var comparisons []*Comparison
	for _, aComparison := range s.comparisons {
		if filter.Status != "" && aComparison.Status != filter.Status {
			continue
		}
		comparisons = append(comparisons, aComparison)
	}
	return comparisons, nil
}

func (s *fakeStore) FindComparison(ctx context.Context, id ComparisonID, partial authz.Partial) (*Comparison, error) {
	if s.err != nil {
		return nil, s.err
	}
	aComparison, ok := s.comparisons[id]
	if !ok {
		return nil, ErrNotFound
	}
	return aComparison, nil
}

func fixedClock(at time.Time) clock {
	return func() time.Time { return at }
}

var errBoom = fmt.Errorf("boom")
