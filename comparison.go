package docstratum

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/southpawriter02/docstratum/pkg/authz"
)

type ComparisonStatus string

const (
	ComparisonStatusRequested  ComparisonStatus = "REQUESTED"
	ComparisonStatusGenerating ComparisonStatus = "GENERATING"
	ComparisonStatusCompleted  ComparisonStatus = "COMPLETED"
	ComparisonStatusFailed     ComparisonStatus = "FAILED"
)

type ComparisonID struct{ uuid.UUID }

func NewComparisonID() ComparisonID {
	return ComparisonID{uuid.Must(uuid.NewV4())}
}

type Question struct {
	Content string `json:"content"`
	Created Time   `json:"created"`
}

// Citation points at the llms.txt context that grounded part of an
// enhanced answer.
type Citation struct {
	SourceID SourceID `json:"source_id"`
	Section  string   `json:"section"`
	Snippet  string   `json:"snippet"`
}

// Answer is one side of a result pair.
type Answer struct {
	Text         string     `json:"text"`
	Tokens       int        `json:"tokens"`
	PromptTokens int        `json:"prompt_tokens"`
	Citations    []Citation `json:"citations,omitempty"`
}

// Metrics summarizes a result pair for the comparison table.
type Metrics struct {
	BaselineTokens int   `json:"baseline_tokens"`
	EnhancedTokens int   `json:"enhanced_tokens"`
	CitationCount  int   `json:"citation_count"`
	QualityScore   int   `json:"quality_score"`
	DurationMS     int64 `json:"duration_ms"`
}

// ResultPair holds the baseline and enhanced answers for one question.
// A pair is always produced and stored atomically: either both answers and
// the metrics exist, or the comparison failed and carries none.
type ResultPair struct {
	Baseline Answer  `json:"baseline"`
	Enhanced Answer  `json:"enhanced"`
	Metrics  Metrics `json:"metrics"`
}

type Comparison struct {
	ID            ComparisonID
	SessionID     SessionID
	Question      Question
	Pair          ResultPair
	Status        ComparisonStatus
	StatusMessage string
	Created       Time
	Updated       Time
}

// CompleteWithStatus changes the status of a comparison to a completion
// status, either ComparisonStatusCompleted or ComparisonStatusFailed.
func (c *Comparison) CompleteWithStatus(newStatus ComparisonStatus, message string, updatedAt time.Time) error {
	if c.Status != ComparisonStatusGenerating {
		return fmt.Errorf("cannot change status from %s to %s", c.Status, newStatus)
	}
	switch newStatus {
	case ComparisonStatusCompleted, ComparisonStatusFailed:
	default:
		return fmt.Errorf("not a completion status: %s", newStatus)
	}

	c.Status = newStatus
	c.StatusMessage = message
	c.Updated = Time{T: updatedAt}

	return nil
}

type ComparisonFilter struct {
	SessionID SessionID
	Status    ComparisonStatus
}

// Resolve is the resolution gateway: it answers the question twice, once
// without context (baseline) and once grounded in validated llms.txt
// sources (enhanced), computes the comparison metrics, persists the
// comparison, and writes the result pair into the session in one atomic
// session write. On error the previous session state is left intact.
func (ds *docStratum) Resolve(ctx context.Context, principal authz.Principal, content string) (*Comparison, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty question")
	}

	log.Printf("resolving question: %s", content)

	var sources []*Source
	if err := ds.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		var err error
		sources, err = ds.store.ListSources(ctx, SourceFilter{Status: SourceStatusValidated}, authz.NilPartial, SortParams{
			By:    "composite_score",
			Order: SortOrderDesc,
			Limit: ds.maxContextSources,
		})
		return err
	}); err != nil {
		return nil, fmt.Errorf("listing validated sources: %w", err)
	}

	var (
		documents    []ContextDocument
		qualityScore int
	)
	for i, s := range sources {
		if i == 0 {
			qualityScore = s.Composite
		}
		documents = append(documents, contextDocumentsFromText(s.ID, s.ContextText)...)
	}

	aComparison := &Comparison{
		ID:        NewComparisonID(),
		SessionID: SessionID{principal.ID().UUID},
		Question:  Question{Content: content, Created: Time{T: ds.now()}},
		Status:    ComparisonStatusGenerating,
		Created:   Time{T: ds.now()},
		Updated:   Time{T: ds.now()},
	}

	started := ds.now()

	baseline, err := ds.generative.Generate(ctx, aComparison.Question, nil)
	if err != nil {
		return nil, fmt.Errorf("baseline generation: %w", err)
	}

	enhanced, err := ds.generative.Generate(ctx, aComparison.Question, documents)
	if err != nil {
		return nil, fmt.Errorf("enhanced generation: %w", err)
	}

	aComparison.Pair = ResultPair{
		Baseline: baseline,
		Enhanced: enhanced,
		Metrics: Metrics{
			BaselineTokens: baseline.Tokens,
			EnhancedTokens: enhanced.Tokens,
			CitationCount:  len(enhanced.Citations),
			QualityScore:   qualityScore,
			DurationMS:     ds.now().Sub(started).Milliseconds(),
		},
	}
	if err := aComparison.CompleteWithStatus(ComparisonStatusCompleted, "", ds.now()); err != nil {
		return nil, err
	}

	if err := ds.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		if err := ds.store.SavePrincipal(ctx, principal); err != nil {
			return fmt.Errorf("error saving principal: %w", err)
		}
		if err := ds.store.SaveComparisons(ctx, aComparison); err != nil {
			return fmt.Errorf("error saving comparison: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	// Single write carries question, pair, and metrics together so a page
	// re-render never observes a half-updated pair.
	aSession := ds.sessionForWrite(ctx, principal)
	aSession.Question = content
	aSession.Comparison = aComparison
	aSession.Updated = Time{T: ds.now()}
	if err := ds.sessions.SaveSession(ctx, aSession); err != nil {
		return nil, fmt.Errorf("error saving session: %w", err)
	}

	return aComparison, nil
}

func (ds *docStratum) ListComparisons(ctx context.Context, principal authz.Principal) ([]*Comparison, error) {
	var comparisons []*Comparison
	if err := ds.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		var err error
		comparisons, err = ds.store.ListComparisons(ctx, ComparisonFilter{}, ds.comparisonPartial(principal), SortParams{
			By:    "created",
			Order: SortOrderDesc,
		})
		return err
	}); err != nil {
		return nil, err
	}
	return comparisons, nil
}

func (ds *docStratum) FindComparison(ctx context.Context, principal authz.Principal, id ComparisonID) (*Comparison, error) {
	var aComparison *Comparison
	if err := ds.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		var err error
		aComparison, err = ds.store.FindComparison(ctx, id, ds.comparisonPartial(principal))
		return err
	}); err != nil {
		return nil, err
	}
	return aComparison, nil
}

// contextDocumentsFromText reverses renderContextText: the stored flattened
// context splits back into per-section documents for citation matching.
func contextDocumentsFromText(id SourceID, text string) []ContextDocument {
	var docs []ContextDocument
	for _, block := range strings.Split(text, "## ") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		section, content, found := strings.Cut(block, "\n")
		if !found || strings.TrimSpace(content) == "" {
			continue
		}
		docs = append(docs, ContextDocument{
			SourceID: id,
			Section:  strings.TrimSpace(section),
			Content:  strings.TrimSpace(content),
		})
	}
	return docs
}
