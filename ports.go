package docstratum

import (
	"context"
	"database/sql"

	"github.com/southpawriter02/docstratum/pkg/authz"
)

// Parser turns raw llms.txt contents into the parsed model. A parse error
// means the contents are not recognizable Markdown.
type Parser interface {
	Parse(ctx context.Context, contents []byte) (*LlmsFile, error)
}

// GenerativeModel answers a question, optionally grounded in llms.txt
// context documents. With no documents the answer is the baseline; with
// documents it is the enhanced answer and carries citations.
type GenerativeModel interface {
	Name() string
	Generate(ctx context.Context, question Question, documents []ContextDocument) (Answer, error)
}

// SessionStore holds per-session demo page state. Implementations must
// persist a session with a single atomic write.
type SessionStore interface {
	FindSession(ctx context.Context, id SessionID) (*Session, error)
	SaveSession(ctx context.Context, session *Session) error
	DeleteSession(ctx context.Context, id SessionID) error
}

type Store interface {
	Transactional
	SourceStore
	ComparisonStore
}

type Transactional interface {
	Transactional(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error
}

type SourceStore interface {
	SavePrincipal(ctx context.Context, principal authz.Principal) error
	SaveSources(ctx context.Context, sources ...*Source) error
	SaveDiagnostics(ctx context.Context, id SourceID, diags []Diagnostic) error
	ListSources(ctx context.Context, filter SourceFilter, partial authz.Partial, params SortParams) ([]*Source, error)
	FindSource(ctx context.Context, id SourceID, partial authz.Partial) (*Source, error)
	ListDiagnostics(ctx context.Context, id SourceID) ([]Diagnostic, error)
	DeleteSources(ctx context.Context, sources ...*Source) error
}

type ComparisonStore interface {
	SaveComparisons(ctx context.Context, comparisons ...*Comparison) error
	ListComparisons(ctx context.Context, filter ComparisonFilter, partial authz.Partial, params SortParams) ([]*Comparison, error)
	FindComparison(ctx context.Context, id ComparisonID, partial authz.Partial) (*Comparison, error)
}
