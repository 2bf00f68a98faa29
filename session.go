package docstratum

import (
	"context"
	"errors"
	"log"

	"github.com/gofrs/uuid/v5"

	"github.com/southpawriter02/docstratum/pkg/authz"
)

type SessionID struct{ uuid.UUID }

func NewSessionID() SessionID {
	return SessionID{uuid.Must(uuid.NewV4())}
}

// Session is the per-browser-session state the demo page re-reads on every
// render pass: the last submitted question, the latest result pair, and the
// UI toggles. It is overwritten as a whole on each new submission and never
// shared across sessions.
type Session struct {
	ID            SessionID   `json:"id"`
	Question      string      `json:"question,omitempty"`
	Comparison    *Comparison `json:"comparison,omitempty"`
	ShowMetrics   bool        `json:"show_metrics"`
	ShowCitations bool        `json:"show_citations"`
	Created       Time        `json:"created"`
	Updated       Time        `json:"updated"`
}

func newSession(id SessionID, now Time) *Session {
	return &Session{
		ID:            id,
		ShowMetrics:   true,
		ShowCitations: true,
		Created:       now,
		Updated:       now,
	}
}

// CurrentSession returns the caller's session state, creating a fresh one
// on first contact.
func (ds *docStratum) CurrentSession(ctx context.Context, principal authz.Principal) (*Session, error) {
	id := SessionID{principal.ID().UUID}

	aSession, err := ds.sessions.FindSession(ctx, id)
	if err == nil {
		return aSession, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	aSession = newSession(id, Time{T: ds.now()})
	if err := ds.sessions.SaveSession(ctx, aSession); err != nil {
		return nil, err
	}
	return aSession, nil
}

// UpdateSessionToggles persists the sidebar toggle state.
func (ds *docStratum) UpdateSessionToggles(ctx context.Context, principal authz.Principal, showMetrics, showCitations bool) (*Session, error) {
	aSession := ds.sessionForWrite(ctx, principal)
	aSession.ShowMetrics = showMetrics
	aSession.ShowCitations = showCitations
	aSession.Updated = Time{T: ds.now()}

	if err := ds.sessions.SaveSession(ctx, aSession); err != nil {
		return nil, err
	}
	return aSession, nil
}

func (ds *docStratum) sessionForWrite(ctx context.Context, principal authz.Principal) *Session {
	id := SessionID{principal.ID().UUID}
	aSession, err := ds.sessions.FindSession(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("error finding session %s: %v", id, err)
		}
		return newSession(id, Time{T: ds.now()})
	}
	return aSession
}

var defaultExampleQuestions = []string{
	"How do I get started with this project?",
	"What are the core concepts I need to understand?",
	"Which configuration options control authentication?",
	"Show me an example of a typical API call.",
	"What should I check when requests start failing?",
}

// ExampleQuestions are the sidebar suggestions of the demo page.
func (ds *docStratum) ExampleQuestions() []string {
	return ds.examples
}
