package docstratum

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/southpawriter02/docstratum/pkg/authz"
)

const (
	MB            = 1 << 20
	MaxSourceSize = 2 * MB
)

type SourceID struct{ uuid.UUID }

func NewSourceID() SourceID {
	return SourceID{uuid.Must(uuid.NewV4())}
}

type AuthorID struct{ uuid.UUID }

func NewAuthorID() AuthorID {
	return AuthorID{uuid.Must(uuid.NewV4())}
}

type SourceStatus string

const (
	SourceStatusRegistered SourceStatus = "REGISTERED"
	SourceStatusValidating SourceStatus = "VALIDATING"
	SourceStatusValidated  SourceStatus = "VALIDATED"
	SourceStatusInvalid    SourceStatus = "INVALID"
)

// Source is a registered llms.txt document together with its validation
// outcome. Contents are retained so the resolution gateway can derive
// enhanced-answer context from validated sources.
type Source struct {
	ID            SourceID
	AuthorID      AuthorID
	Name          string
	Size          int64
	Hash          string
	Title         string
	Description   string
	TokenEstimate int
	Tier          string
	Composite     int
	Grade         Grade
	ContextText   string
	Status        SourceStatus
	StatusMessage string
	Created       Time
	Updated       Time
	Diagnostics   []Diagnostic
}

// CompleteWithStatus changes the status of a source to a completion status,
// either SourceStatusValidated or SourceStatusInvalid.
func (s *Source) CompleteWithStatus(newStatus SourceStatus, message string, updatedAt time.Time) error {
	if s.Status != SourceStatusValidating {
		return fmt.Errorf("cannot change status from %s to %s", s.Status, newStatus)
	}
	switch newStatus {
	case SourceStatusValidated, SourceStatusInvalid:
	default:
		return fmt.Errorf("not a completion status: %s", newStatus)
	}

	s.Status = newStatus
	s.StatusMessage = message
	s.Updated = Time{T: updatedAt}

	log.Printf("state change for source: %s status: %s", s.ID, s.Status)

	return nil
}

type SourceFilter struct {
	Status SourceStatus
	Grade  Grade
}

// RegisterSource parses, validates, and scores an llms.txt document, then
// persists the source with its diagnostics. Sources with error-level
// findings complete as INVALID and are excluded from enhanced-answer
// context.
func (ds *docStratum) RegisterSource(ctx context.Context, principal authz.Principal, name string, contents []byte) (*Source, error) {
	if len(contents) > MaxSourceSize {
		return nil, fmt.Errorf("source exceeds maximum size of %d bytes", MaxSourceSize)
	}

	log.Printf("registering source: %s, size: %d", name, len(contents))

	hash := sha256.Sum256(contents)

	aSource := &Source{
		ID:       NewSourceID(),
		AuthorID: AuthorID{principal.ID().UUID},
		Name:     name,
		Size:     int64(len(contents)),
		Hash:     hex.EncodeToString(hash[:]),
		Status:   SourceStatusValidating,
		Created:  Time{T: ds.now()},
		Updated:  Time{T: ds.now()},
	}

	parsed, parseErr := ds.parser.Parse(ctx, contents)
	if parseErr != nil {
		log.Printf("source %s did not parse: %v", aSource.ID, parseErr)
	}

	diags := ds.validator.Validate(contents, parsed)
	card := Score(diags)

	aSource.Diagnostics = diags
	aSource.TokenEstimate = EstimateTokens(contents)
	aSource.Tier = TierForTokens(aSource.TokenEstimate)
	aSource.Composite = card.Composite
	aSource.Grade = card.Grade

	if parsed != nil {
		aSource.Title = parsed.Title
		aSource.Description = parsed.Description
		aSource.ContextText = renderContextText(parsed.ContextDocuments(aSource.ID))
	}

	var errorCount int
	for _, d := range diags {
		if d.Severity == SeverityError {
			errorCount++
		}
	}

	completion := SourceStatusValidated
	message := ""
	if errorCount > 0 {
		completion = SourceStatusInvalid
		message = fmt.Sprintf("%d error-level findings", errorCount)
	}
	if err := aSource.CompleteWithStatus(completion, message, ds.now()); err != nil {
		return nil, err
	}

	if err := ds.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		if err := ds.store.SavePrincipal(ctx, principal); err != nil {
			return fmt.Errorf("error saving principal: %w", err)
		}
		if err := ds.store.SaveSources(ctx, aSource); err != nil {
			return fmt.Errorf("error saving source: %w", err)
		}
		if err := ds.store.SaveDiagnostics(ctx, aSource.ID, diags); err != nil {
			return fmt.Errorf("error saving diagnostics: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return aSource, nil
}

func (ds *docStratum) ListSources(ctx context.Context, principal authz.Principal) ([]*Source, error) {
	var sources []*Source
	if err := ds.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		var err error
		sources, err = ds.store.ListSources(ctx, SourceFilter{}, authz.NilPartial, SortParams{By: "created", Order: SortOrderDesc})
		return err
	}); err != nil {
		return nil, err
	}
	return sources, nil
}

func (ds *docStratum) FindSource(ctx context.Context, principal authz.Principal, id SourceID) (*Source, error) {
	var aSource *Source
	if err := ds.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		var err error
		aSource, err = ds.store.FindSource(ctx, id, authz.NilPartial)
		return err
	}); err != nil {
		return nil, err
	}
	return aSource, nil
}

func (ds *docStratum) ListSourceDiagnostics(ctx context.Context, principal authz.Principal, id SourceID) ([]Diagnostic, error) {
	var diags []Diagnostic
	if err := ds.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		if _, err := ds.store.FindSource(ctx, id, authz.NilPartial); err != nil {
			return err
		}
		var err error
		diags, err = ds.store.ListDiagnostics(ctx, id)
		return err
	}); err != nil {
		return nil, err
	}
	return diags, nil
}

func (ds *docStratum) DeleteSource(ctx context.Context, principal authz.Principal, id SourceID) error {
	return ds.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		aSource, err := ds.store.FindSource(ctx, id, authz.NilPartial)
		if err != nil {
			return err
		}
		return ds.store.DeleteSources(ctx, aSource)
	})
}

// renderContextText flattens context documents into the stored plain-text
// form handed to the generative model.
func renderContextText(docs []ContextDocument) string {
	var out string
	for _, d := range docs {
		out += "## " + d.Section + "\n" + d.Content + "\n\n"
	}
	return out
}
