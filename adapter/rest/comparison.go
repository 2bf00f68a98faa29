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

// Both answers are generated before the handler returns.
const resolveTimeout = 60 * time.Second

// Ask a question and generate a baseline/enhanced answer pair
// (POST /comparisons)
func (a *Adapter) CreateComparison(w http.ResponseWriter, r *http.Request) {
	var (
		ctx, cancel = context.WithTimeout(r.Context(), resolveTimeout)
		principal   = a.principalFromRequest(w, r)
	)
	defer cancel()

	apiRequest := api.ComparisonParams{}
	if err := readRequestJSON(r, &apiRequest); err != nil {
		renderJSONError(w, http.StatusBadRequest, err)
		return
	}

	if apiRequest.Question == "" {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("question is required"))
		return
	}

	aComparison, err := a.docStratum.Resolve(ctx, principal, apiRequest.Question)
	if err != nil {
		a.logger.Sugar().With("error", err).Error("error resolving question")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error resolving question: %w", err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	renderJSON(w, mapComparison(aComparison))
}

func mapComparison(comparison *docstratum.Comparison) api.Comparison {
	return api.Comparison{
		Id:            comparison.ID.String(),
		Question:      comparison.Question.Content,
		Baseline:      mapAnswer(comparison.Pair.Baseline),
		Enhanced:      mapAnswer(comparison.Pair.Enhanced),
		Metrics:       mapMetrics(comparison.Pair.Metrics),
		Status:        string(comparison.Status),
		StatusMessage: comparison.StatusMessage,
		CreatedAt:     comparison.Created.T,
		UpdatedAt:     comparison.Updated.T,
	}
}

func mapAnswer(answer docstratum.Answer) api.Answer {
	apiAnswer := api.Answer{
		Text:         answer.Text,
		Tokens:       answer.Tokens,
		PromptTokens: answer.PromptTokens,
	}
	for _, citation := range answer.Citations {
		apiAnswer.Citations = append(apiAnswer.Citations, api.Citation{
			SourceId: citation.SourceID.String(),
			Section:  citation.Section,
			Snippet:  citation.Snippet,
		})
	}
	return apiAnswer
}

func mapMetrics(metrics docstratum.Metrics) api.Metrics {
	return api.Metrics{
		BaselineTokens: metrics.BaselineTokens,
		EnhancedTokens: metrics.EnhancedTokens,
		CitationCount:  metrics.CitationCount,
		QualityScore:   metrics.QualityScore,
		DurationMs:     metrics.DurationMS,
	}
}

// List comparisons for the current session
// (GET /comparisons)
func (a *Adapter) ListComparisons(w http.ResponseWriter, r *http.Request) {
	var (
		ctx, cancel = context.WithTimeout(r.Context(), defaultTimeout)
		principal   = a.principalFromRequest(w, r)
	)
	defer cancel()

	comparisons, err := a.docStratum.ListComparisons(ctx, principal)
	if err != nil {
		a.logger.Sugar().With("error", err).Error("error listing comparisons")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error listing comparisons: %w", err))
		return
	}

	renderJSON(w, mapComparisons(comparisons))
}

func mapComparisons(comparisons []*docstratum.Comparison) api.Comparisons {
	apiResponse := api.Comparisons{
		Comparisons: make([]api.Comparison, 0, len(comparisons)),
	}
	for _, comparison := range comparisons {
		apiResponse.Comparisons = append(apiResponse.Comparisons, mapComparison(comparison))
	}
	return apiResponse
}

// Get a single comparison by ID
// (GET /comparisons/{id})
func (a *Adapter) GetComparisonById(w http.ResponseWriter, r *http.Request) {
	var (
		ctx, cancel = context.WithTimeout(r.Context(), defaultTimeout)
		principal   = a.principalFromRequest(w, r)
	)
	defer cancel()

	comparisonID, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("invalid comparison ID: %w", err))
		return
	}

	aComparison, err := a.docStratum.FindComparison(ctx, principal, docstratum.ComparisonID{UUID: comparisonID})
	if err != nil {
		if errors.Is(err, docstratum.ErrNotFound) {
			renderJSONError(w, http.StatusNotFound, fmt.Errorf("comparison not found"))
			return
		}
		a.logger.Sugar().With("error", err).Error("error finding comparison")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error finding comparison: %w", err))
		return
	}

	renderJSON(w, mapComparison(aComparison))
}

// List example questions
// (GET /examples)
func (a *Adapter) ListExamples(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, api.Examples{Questions: a.docStratum.ExampleQuestions()})
}
