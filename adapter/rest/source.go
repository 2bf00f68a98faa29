package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/southpawriter02/docstratum"
	"github.com/southpawriter02/docstratum/api"
)

const registerTimeout = 30 * time.Second

// Register an llms.txt document and validate it
// (POST /sources)
func (a *Adapter) RegisterSource(w http.ResponseWriter, r *http.Request) {
	var (
		ctx, cancel = context.WithTimeout(r.Context(), registerTimeout)
		principal   = a.principalFromRequest(w, r)
	)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, docstratum.MaxSourceSize)

	apiRequest := api.RegisterSourceParams{}
	if err := readRequestJSON(r, &apiRequest); err != nil {
		renderJSONError(w, http.StatusBadRequest, err)
		return
	}

	if apiRequest.Name == "" || apiRequest.Contents == "" {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("name and contents are required"))
		return
	}

	aSource, err := a.docStratum.RegisterSource(ctx, principal, apiRequest.Name, []byte(apiRequest.Contents))
	if err != nil {
		a.logger.Sugar().With("error", err).Error("error registering source")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error registering source: %w", err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	renderJSON(w, mapSource(aSource))
}

func mapSource(source *docstratum.Source) api.Source {
	return api.Source{
		Id:             source.ID.String(),
		Name:           source.Name,
		Title:          source.Title,
		Description:    source.Description,
		Size:           source.Size,
		Hash:           source.Hash,
		TokenEstimate:  source.TokenEstimate,
		Tier:           source.Tier,
		CompositeScore: source.Composite,
		Grade:          string(source.Grade),
		Status:         string(source.Status),
		StatusMessage:  source.StatusMessage,
		CreatedAt:      source.Created.T,
		UpdatedAt:      source.Updated.T,
	}
}

// List registered sources
// (GET /sources)
func (a *Adapter) ListSources(w http.ResponseWriter, r *http.Request) {
	var (
		ctx, cancel = context.WithTimeout(r.Context(), defaultTimeout)
		principal   = a.principalFromRequest(w, r)
	)
	defer cancel()

	sources, err := a.docStratum.ListSources(ctx, principal)
	if err != nil {
		a.logger.Sugar().With("error", err).Error("error listing sources")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error listing sources: %w", err))
		return
	}

	renderJSON(w, mapSources(sources))
}

func mapSources(sources []*docstratum.Source) api.Sources {
	apiResponse := api.Sources{
		Sources: make([]api.Source, 0, len(sources)),
	}
	for _, source := range sources {
		apiResponse.Sources = append(apiResponse.Sources, mapSource(source))
	}
	return apiResponse
}

// Get a single source by ID
// (GET /sources/{id})
func (a *Adapter) GetSourceById(w http.ResponseWriter, r *http.Request) {
	var (
		ctx, cancel = context.WithTimeout(r.Context(), defaultTimeout)
		principal   = a.principalFromRequest(w, r)
	)
	defer cancel()

	sourceID, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("invalid source ID: %w", err))
		return
	}

	aSource, err := a.docStratum.FindSource(ctx, principal, docstratum.SourceID{UUID: sourceID})
	if err != nil {
		if errors.Is(err, docstratum.ErrNotFound) {
			renderJSONError(w, http.StatusNotFound, fmt.Errorf("source not found"))
			return
		}
		a.logger.Sugar().With("error", err).Error("error finding source")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error finding source: %w", err))
		return
	}

	renderJSON(w, mapSource(aSource))
}

// List validation findings for a source
// (GET /sources/{id}/diagnostics)
func (a *Adapter) ListSourceDiagnostics(w http.ResponseWriter, r *http.Request) {
	var (
		ctx, cancel = context.WithTimeout(r.Context(), defaultTimeout)
		principal   = a.principalFromRequest(w, r)
	)
	defer cancel()

	sourceID, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("invalid source ID: %w", err))
		return
	}

	diags, err := a.docStratum.ListSourceDiagnostics(ctx, principal, docstratum.SourceID{UUID: sourceID})
	if err != nil {
		if errors.Is(err, docstratum.ErrNotFound) {
			renderJSONError(w, http.StatusNotFound, fmt.Errorf("source not found"))
			return
		}
		a.logger.Sugar().With("error", err).Error("error listing source diagnostics")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error listing source diagnostics: %w", err))
		return
	}

	renderJSON(w, mapDiagnostics(diags))
}

func mapDiagnostic(diag docstratum.Diagnostic) api.Diagnostic {
	return api.Diagnostic{
		Code:        string(diag.Code),
		Severity:    string(diag.Severity),
		Message:     diag.Message,
		Remediation: diag.Remediation,
		Line:        diag.Line,
	}
}

func mapDiagnostics(diags []docstratum.Diagnostic) api.Diagnostics {
	apiResponse := api.Diagnostics{
		Diagnostics: make([]api.Diagnostic, 0, len(diags)),
	}
	for _, diag := range diags {
		apiResponse.Diagnostics = append(apiResponse.Diagnostics, mapDiagnostic(diag))
	}
	return apiResponse
}

// Delete a source
// (DELETE /sources/{id})
func (a *Adapter) DeleteSourceById(w http.ResponseWriter, r *http.Request) {
	var (
		ctx, cancel = context.WithTimeout(r.Context(), defaultTimeout)
		principal   = a.principalFromRequest(w, r)
	)
	defer cancel()

	sourceID, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("invalid source ID: %w", err))
		return
	}

	if err := a.docStratum.DeleteSource(ctx, principal, docstratum.SourceID{UUID: sourceID}); err != nil {
		if errors.Is(err, docstratum.ErrNotFound) {
			renderJSONError(w, http.StatusNotFound, fmt.Errorf("source not found"))
			return
		}
		a.logger.Sugar().With("error", err).Error("error deleting source")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error deleting source: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
