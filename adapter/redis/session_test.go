package redis

import (
	"time"

	"github.com/southpawriter02/docstratum"
	"github.com/southpawriter02/docstratum/docstratumtest"
)

var (
	testNow = time.Now().UTC()
	gen     = docstratumtest.New(testNow.UnixNano(), testNow)
)

func (s *RedisTestSuite) TestSaveAndFindSession() {
	ctx, cancel := testContext()
	defer cancel()

	aSession := gen.Session(
		docstratumtest.WithSessionQuestion("How do I get started with this project?"),
		docstratumtest.WithSessionToggles(true, false),
	)

	err := s.adapter.SaveSession(ctx, aSession)
	s.Require().NoError(err)

	found, err := s.adapter.FindSession(ctx, aSession.ID)
	s.Require().NoError(err)
	s.Equal(aSession.ID, found.ID)
	s.Equal(aSession.Question, found.Question)
	s.True(found.ShowMetrics)
	s.False(found.ShowCitations)
	s.Nil(found.Comparison)
}

func (s *RedisTestSuite) TestSaveSessionWithComparison() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		sessionID   = docstratum.NewSessionID()
		aComparison = gen.Comparison(docstratumtest.WithComparisonSessionID(sessionID))
		aSession    = gen.Session(
			docstratumtest.WithSessionID(sessionID),
			docstratumtest.WithSessionQuestion(aComparison.Question.Content),
			docstratumtest.WithSessionComparison(aComparison),
		)
	)

	err := s.adapter.SaveSession(ctx, aSession)
	s.Require().NoError(err)

	found, err := s.adapter.FindSession(ctx, sessionID)
	s.Require().NoError(err)
	s.Require().NotNil(found.Comparison)
	s.Equal(aComparison.ID, found.Comparison.ID)
	s.Equal(aComparison.Pair.Baseline.Text, found.Comparison.Pair.Baseline.Text)
	s.Equal(aComparison.Pair.Enhanced.Text, found.Comparison.Pair.Enhanced.Text)
	s.Require().Len(found.Comparison.Pair.Enhanced.Citations, 1)
	s.Equal(1, found.Comparison.Pair.Metrics.CitationCount)
}

func (s *RedisTestSuite) TestFindSessionNotFound() {
	ctx, cancel := testContext()
	defer cancel()

	_, err := s.adapter.FindSession(ctx, docstratum.NewSessionID())
	s.Require().ErrorIs(err, docstratum.ErrNotFound)
}

func (s *RedisTestSuite) TestDeleteSession() {
	ctx, cancel := testContext()
	defer cancel()

	aSession := gen.Session()

	err := s.adapter.SaveSession(ctx, aSession)
	s.Require().NoError(err)

	err = s.adapter.DeleteSession(ctx, aSession.ID)
	s.Require().NoError(err)

	_, err = s.adapter.FindSession(ctx, aSession.ID)
	s.Require().ErrorIs(err, docstratum.ErrNotFound)
}
