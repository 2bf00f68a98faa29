// Package rest exposes the document registry and the resolution gateway
// over a JSON HTTP API.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/southpawriter02/docstratum"
	"github.com/southpawriter02/docstratum/pkg/authz"
)

type DocStratum interface {
	RegisterSource(ctx context.Context, principal authz.Principal, name string, contents []byte) (*docstratum.Source, error)
	ListSources(ctx context.Context, principal authz.Principal) ([]*docstratum.Source, error)
	FindSource(ctx context.Context, principal authz.Principal, id docstratum.SourceID) (*docstratum.Source, error)
	ListSourceDiagnostics(ctx context.Context, principal authz.Principal, id docstratum.SourceID) ([]docstratum.Diagnostic, error)
	DeleteSource(ctx context.Context, principal authz.Principal, id docstratum.SourceID) error
	Resolve(ctx context.Context, principal authz.Principal, content string) (*docstratum.Comparison, error)
	ListComparisons(ctx context.Context, principal authz.Principal) ([]*docstratum.Comparison, error)
	FindComparison(ctx context.Context, principal authz.Principal, id docstratum.ComparisonID) (*docstratum.Comparison, error)
	CurrentSession(ctx context.Context, principal authz.Principal) (*docstratum.Session, error)
	UpdateSessionToggles(ctx context.Context, principal authz.Principal, showMetrics, showCitations bool) (*docstratum.Session, error)
	ExampleQuestions() []string
}

type Adapter struct {
	docStratum DocStratum
	logger     *zap.Logger
}

type Option func(*Adapter)

func New(docStratum DocStratum, options ...Option) *Adapter {
	a := &Adapter{
		docStratum: docStratum,
		logger:     zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	return a
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

const (
	defaultTimeout = 3 * time.Second

	// SessionCookie carries the anonymous browser session identity.
	SessionCookie = "docstratum_session"
)

func (a *Adapter) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /sources", a.RegisterSource)
	mux.HandleFunc("GET /sources", a.ListSources)
	mux.HandleFunc("GET /sources/{id}", a.GetSourceById)
	mux.HandleFunc("GET /sources/{id}/diagnostics", a.ListSourceDiagnostics)
	mux.HandleFunc("DELETE /sources/{id}", a.DeleteSourceById)
	mux.HandleFunc("POST /comparisons", a.CreateComparison)
	mux.HandleFunc("GET /comparisons", a.ListComparisons)
	mux.HandleFunc("GET /comparisons/{id}", a.GetComparisonById)
	mux.HandleFunc("GET /examples", a.ListExamples)
	mux.HandleFunc("GET /session", a.GetSession)
	mux.HandleFunc("PUT /session", a.UpdateSession)
}

// principalFromRequest derives the caller identity from the session cookie,
// minting a new session and setting the cookie on first contact.
func (a *Adapter) principalFromRequest(w http.ResponseWriter, r *http.Request) authz.Principal {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.FromString(cookie.Value); err == nil {
			return authz.New(authz.ID{UUID: id})
		}
	}

	id := uuid.Must(uuid.NewV4())
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return authz.New(authz.ID{UUID: id})
}
