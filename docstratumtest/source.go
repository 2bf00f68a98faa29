package docstratumtest

import (
	"time"

	"github.com/southpawriter02/docstratum"
)

type SourceOption func(*docstratum.Source)

func WithSourceAuthorID(id docstratum.AuthorID) SourceOption {
	return func(s *docstratum.Source) {
		s.AuthorID = id
	}
}

func WithSourceName(name string) SourceOption {
	return func(s *docstratum.Source) {
		s.Name = name
	}
}

func WithSourceStatus(status docstratum.SourceStatus) SourceOption {
	return func(s *docstratum.Source) {
		s.Status = status
	}
}

func WithSourceGrade(grade docstratum.Grade) SourceOption {
	return func(s *docstratum.Source) {
		s.Grade = grade
	}
}

func WithSourceComposite(composite int) SourceOption {
	return func(s *docstratum.Source) {
		s.Composite = composite
	}
}

func WithSourceContextText(text string) SourceOption {
	return func(s *docstratum.Source) {
		s.ContextText = text
	}
}

func WithSourceCreated(created time.Time) SourceOption {
	return func(s *docstratum.Source) {
		s.Created = docstratum.Time{T: created}
	}
}

func WithSourceUpdated(updated time.Time) SourceOption {
	return func(s *docstratum.Source) {
		s.Updated = docstratum.Time{T: updated}
	}
}

var sourceStates = []docstratum.SourceStatus{
	docstratum.SourceStatusRegistered,
	docstratum.SourceStatusValidating,
	docstratum.SourceStatusValidated,
	docstratum.SourceStatusInvalid,
}

func (g *DataGen) Source(options ...SourceOption) *docstratum.Source {
	g.ShuffleAnySlice(sourceStates)

	aSource := docstratum.Source{
		ID:            docstratum.NewSourceID(),
		AuthorID:      docstratum.NewAuthorID(),
		Name:          g.Word() + "-llms.txt",
		Size:          g.Int64(),
		Hash:          g.LetterN(25),
		Title:         g.Name(),
		Description:   g.Sentence(8),
		TokenEstimate: g.Number(100, 50000),
		Tier:          "standard",
		Composite:     g.Number(0, 100),
		Grade:         docstratum.GradeC,
		Status:        sourceStates[0],
		Created:       docstratum.Time{T: g.now},
		Updated:       docstratum.Time{T: g.now},
	}

	for _, o := range options {
		o(&aSource)
	}

	return &aSource
}
