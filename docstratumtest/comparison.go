package docstratumtest

import (
	"time"

	"github.com/southpawriter02/docstratum"
)

type ComparisonOption func(*docstratum.Comparison)

func WithComparisonSessionID(id docstratum.SessionID) ComparisonOption {
	return func(c *docstratum.Comparison) {
		c.SessionID = id
	}
}

func WithComparisonQuestion(content string) ComparisonOption {
	return func(c *docstratum.Comparison) {
		c.Question.Content = content
	}
}

func WithComparisonStatus(status docstratum.ComparisonStatus) ComparisonOption {
	return func(c *docstratum.Comparison) {
		c.Status = status
	}
}

func WithComparisonPair(pair docstratum.ResultPair) ComparisonOption {
	return func(c *docstratum.Comparison) {
		c.Pair = pair
	}
}

func WithComparisonCreated(created time.Time) ComparisonOption {
	return func(c *docstratum.Comparison) {
		c.Created = docstratum.Time{T: created}
	}
}

func (g *DataGen) Comparison(options ...ComparisonOption) *docstratum.Comparison {
	var (
		baselineTokens = g.Number(50, 500)
		enhancedTokens = g.Number(50, 500)
		citations      = []docstratum.Citation{
			{Section: g.Word(), Snippet: g.Sentence(6)},
		}
	)

	aComparison := docstratum.Comparison{
		ID:        docstratum.NewComparisonID(),
		SessionID: docstratum.NewSessionID(),
		Question: docstratum.Question{
			Content: g.Question(),
			Created: docstratum.Time{T: g.now},
		},
		Pair: docstratum.ResultPair{
			Baseline: docstratum.Answer{
				Text:   g.Paragraph(1, 3, 8, " "),
				Tokens: baselineTokens,
			},
			Enhanced: docstratum.Answer{
				Text:      g.Paragraph(1, 3, 8, " "),
				Tokens:    enhancedTokens,
				Citations: citations,
			},
			Metrics: docstratum.Metrics{
				BaselineTokens: baselineTokens,
				EnhancedTokens: enhancedTokens,
				CitationCount:  len(citations),
				QualityScore:   g.Number(0, 100),
				DurationMS:     int64(g.Number(200, 5000)),
			},
		},
		Status:  docstratum.ComparisonStatusCompleted,
		Created: docstratum.Time{T: g.now},
		Updated: docstratum.Time{T: g.now},
	}

	for _, o := range options {
		o(&aComparison)
	}

	return &aComparison
}
