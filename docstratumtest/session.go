package docstratumtest

import (
	"github.com/southpawriter02/docstratum"
)

type SessionOption func(*docstratum.Session)

func WithSessionID(id docstratum.SessionID) SessionOption {
	return func(s *docstratum.Session) {
		s.ID = id
	}
}

func WithSessionQuestion(question string) SessionOption {
	return func(s *docstratum.Session) {
		s.Question = question
	}
}

func WithSessionComparison(comparison *docstratum.Comparison) SessionOption {
	return func(s *docstratum.Session) {
		s.Comparison = comparison
	}
}

func WithSessionToggles(showMetrics, showCitations bool) SessionOption {
	return func(s *docstratum.Session) {
		s.ShowMetrics = showMetrics
		s.ShowCitations = showCitations
	}
}

func (g *DataGen) Session(options ...SessionOption) *docstratum.Session {
	aSession := docstratum.Session{
		ID:            docstratum.NewSessionID(),
		ShowMetrics:   true,
		ShowCitations: true,
		Created:       docstratum.Time{T: g.now},
		Updated:       docstratum.Time{T: g.now},
	}

	for _, o := range options {
		o(&aSession)
	}

	return &aSession
}
