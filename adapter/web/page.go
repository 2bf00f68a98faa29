package web

import (
	"context"
	"net/http"

	"github.com/southpawriter02/docstratum"
)

// pageData is everything the demo page template renders: the sidebar
// state, the submitted question, and the latest result pair.
type pageData struct {
	Session  *docstratum.Session
	Sources  []*docstratum.Source
	Examples []string
	Error    string
}

// Render the demo page from session state
// (GET /)
func (a *Adapter) Index(w http.ResponseWriter, r *http.Request) {
	var (
		ctx, cancel = context.WithTimeout(r.Context(), renderTimeout)
		principal   = a.principalFromRequest(w, r)
	)
	defer cancel()

	aSession, err := a.docStratum.CurrentSession(ctx, principal)
	if err != nil {
		a.logger.Sugar().With("error", err).Error("error finding session")
		http.Error(w, "error finding session", http.StatusInternalServerError)
		return
	}

	sources, err := a.docStratum.ListSources(ctx, principal)
	if err != nil {
		a.logger.Sugar().With("error", err).Error("error listing sources")
		http.Error(w, "error listing sources", http.StatusInternalServerError)
		return
	}

	a.render(w, pageData{
		Session:  aSession,
		Sources:  sources,
		Examples: a.docStratum.ExampleQuestions(),
		Error:    r.URL.Query().Get("error"),
	})
}

func (a *Adapter) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		a.logger.Sugar().With("error", err).Error("error rendering page")
	}
}

// Submit a question and redirect back to the page
// (POST /ask)
func (a *Adapter) Ask(w http.ResponseWriter, r *http.Request) {
	var (
		ctx, cancel = context.WithTimeout(r.Context(), askTimeout)
		principal   = a.principalFromRequest(w, r)
	)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	question := r.PostFormValue("question")
	if question == "" {
		http.Redirect(w, r, "/?error=Please+enter+a+question", http.StatusSeeOther)
		return
	}

	if _, err := a.docStratum.Resolve(ctx, principal, question); err != nil {
		a.logger.Sugar().With("error", err).Error("error resolving question")
		http.Redirect(w, r, "/?error=Could+not+generate+an+answer+pair", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Update the sidebar toggles and redirect back to the page
// (POST /toggles)
func (a *Adapter) Toggles(w http.ResponseWriter, r *http.Request) {
	var (
		ctx, cancel = context.WithTimeout(r.Context(), renderTimeout)
		principal   = a.principalFromRequest(w, r)
	)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var (
		showMetrics   = r.PostFormValue("show_metrics") == "on"
		showCitations = r.PostFormValue("show_citations") == "on"
	)

	if _, err := a.docStratum.UpdateSessionToggles(ctx, principal, showMetrics, showCitations); err != nil {
		a.logger.Sugar().With("error", err).Error("error updating toggles")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
