// Package web serves the single-page comparison demo. The page is rendered
// entirely from session state, so a reload after submitting a question
// shows the same result pair.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/southpawriter02/docstratum"
	"github.com/southpawriter02/docstratum/pkg/authz"
)

//go:embed templates/*.html
var templatesFS embed.FS

type DocStratum interface {
	CurrentSession(ctx context.Context, principal authz.Principal) (*docstratum.Session, error)
	UpdateSessionToggles(ctx context.Context, principal authz.Principal, showMetrics, showCitations bool) (*docstratum.Session, error)
	Resolve(ctx context.Context, principal authz.Principal, content string) (*docstratum.Comparison, error)
	ListSources(ctx context.Context, principal authz.Principal) ([]*docstratum.Source, error)
	ExampleQuestions() []string
}

type Adapter struct {
	docStratum DocStratum
	templates  *template.Template
	logger     *zap.Logger
}

type Option func(*Adapter)

func New(docStratum DocStratum, options ...Option) (*Adapter, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	a := &Adapter{
		docStratum: docStratum,
		templates:  templates,
		logger:     zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	return a, nil
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

const (
	renderTimeout = 3 * time.Second
	askTimeout    = 60 * time.Second

	sessionCookie = "docstratum_session"
)

func (a *Adapter) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", a.Index)
	mux.HandleFunc("POST /ask", a.Ask)
	mux.HandleFunc("POST /toggles", a.Toggles)
}

func (a *Adapter) principalFromRequest(w http.ResponseWriter, r *http.Request) authz.Principal {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if id, err := uuid.FromString(cookie.Value); err == nil {
			return authz.New(authz.ID{UUID: id})
		}
	}

	id := uuid.Must(uuid.NewV4())
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return authz.New(authz.ID{UUID: id})
}
