package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/southpawriter02/docstratum"
	"github.com/southpawriter02/docstratum/api"
)

// Get the current session state
// (GET /session)
func (a *Adapter) GetSession(w http.ResponseWriter, r *http.Request) {
	var (
		ctx, cancel = context.WithTimeout(r.Context(), defaultTimeout)
		principal   = a.principalFromRequest(w, r)
	)
	defer cancel()

	aSession, err := a.docStratum.CurrentSession(ctx, principal)
	if err != nil {
		a.logger.Sugar().With("error", err).Error("error finding session")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error finding session: %w", err))
		return
	}

	renderJSON(w, mapSession(aSession))
}

// Update the session display toggles
// (PUT /session)
func (a *Adapter) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var (
		ctx, cancel = context.WithTimeout(r.Context(), defaultTimeout)
		principal   = a.principalFromRequest(w, r)
	)
	defer cancel()

	apiRequest := api.SessionToggles{}
	if err := readRequestJSON(r, &apiRequest); err != nil {
		renderJSONError(w, http.StatusBadRequest, err)
		return
	}

	aSession, err := a.docStratum.UpdateSessionToggles(ctx, principal, apiRequest.ShowMetrics, apiRequest.ShowCitations)
	if err != nil {
		a.logger.Sugar().With("error", err).Error("error updating session")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error updating session: %w", err))
		return
	}

	renderJSON(w, mapSession(aSession))
}

func mapSession(session *docstratum.Session) api.Session {
	apiSession := api.Session{
		Id:            session.ID.String(),
		Question:      session.Question,
		ShowMetrics:   session.ShowMetrics,
		ShowCitations: session.ShowCitations,
	}
	if session.Comparison != nil {
		aComparison := mapComparison(session.Comparison)
		apiSession.Comparison = &aComparison
	}
	return apiSession
}
