package store

import (
	_ "github.com/mattn/go-sqlite3"

	"github.com/southpawriter02/docstratum"
	"github.com/southpawriter02/docstratum/docstratumtest"
	"github.com/southpawriter02/docstratum/pkg/authz"
)

func (s *StoreTestSuite) TestFindComparison() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		sessionID   = docstratum.NewSessionID()
		aComparison = gen.Comparison(docstratumtest.WithComparisonSessionID(sessionID))
	)

	_, err := s.adapter.FindComparison(ctx, aComparison.ID, authz.NilPartial)
	s.Require().ErrorIs(err, docstratum.ErrNotFound)

	err = s.adapter.SaveComparisons(ctx, aComparison)
	s.Require().NoError(err)

	savedComparison, err := s.adapter.FindComparison(ctx, aComparison.ID, authz.NilPartial)
	s.Require().NoError(err)
	s.Equal(aComparison, savedComparison)
}

func (s *StoreTestSuite) TestFindComparisonScopedToSession() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		sessionID    = docstratum.NewSessionID()
		otherSession = docstratum.NewSessionID()
		aComparison  = gen.Comparison(docstratumtest.WithComparisonSessionID(sessionID))
	)

	err := s.adapter.SaveComparisons(ctx, aComparison)
	s.Require().NoError(err)

	// A different session must not see the comparison
	_, err = s.adapter.FindComparison(ctx, aComparison.ID, authz.FilterBy("session", otherSession.String()))
	s.Require().ErrorIs(err, docstratum.ErrNotFound)

	savedComparison, err := s.adapter.FindComparison(ctx, aComparison.ID, authz.FilterBy("session", sessionID.String()))
	s.Require().NoError(err)
	s.Equal(aComparison.ID, savedComparison.ID)
}

func (s *StoreTestSuite) TestListComparisons() {
	ctx, cancel := testContext()
	defer cancel()

	comparisons, err := s.adapter.ListComparisons(ctx, docstratum.ComparisonFilter{}, authz.NilPartial, docstratum.SortParams{})
	s.Require().NoError(err)
	s.Empty(comparisons)

	var (
		sessionID    = docstratum.NewSessionID()
		otherSession = docstratum.NewSessionID()
		comparison1  = gen.Comparison(docstratumtest.WithComparisonSessionID(sessionID))
		comparison2  = gen.Comparison(
			docstratumtest.WithComparisonSessionID(sessionID),
			docstratumtest.WithComparisonStatus(docstratum.ComparisonStatusFailed),
		)
		comparison3 = gen.Comparison(docstratumtest.WithComparisonSessionID(otherSession))
	)
	comparison2.StatusMessage = "generation timed out"

	err = s.adapter.SaveComparisons(ctx, comparison1, comparison2, comparison3)
	s.Require().NoError(err)

	comparisons, err = s.adapter.ListComparisons(ctx, docstratum.ComparisonFilter{}, authz.FilterBy("session", sessionID.String()), docstratum.SortParams{})
	s.Require().NoError(err)
	s.Len(comparisons, 2)
	s.Contains(comparisons, comparison1)
	s.Contains(comparisons, comparison2)

	// Filter by status
	comparisons, err = s.adapter.ListComparisons(ctx, docstratum.ComparisonFilter{Status: docstratum.ComparisonStatusFailed}, authz.NilPartial, docstratum.SortParams{})
	s.Require().NoError(err)
	s.Len(comparisons, 1)
	s.Equal(comparison2.ID, comparisons[0].ID)
}

func (s *StoreTestSuite) TestSaveComparisonsUpsert() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		sessionID   = docstratum.NewSessionID()
		aComparison = gen.Comparison(
			docstratumtest.WithComparisonSessionID(sessionID),
			docstratumtest.WithComparisonStatus(docstratum.ComparisonStatusGenerating),
			docstratumtest.WithComparisonPair(docstratum.ResultPair{}),
		)
		completedPair = gen.Comparison().Pair
	)

	err := s.adapter.SaveComparisons(ctx, aComparison)
	s.Require().NoError(err)

	aComparison.Status = docstratum.ComparisonStatusCompleted
	aComparison.Pair = completedPair
	aComparison.Updated = testTime()

	err = s.adapter.SaveComparisons(ctx, aComparison)
	s.Require().NoError(err)

	savedComparison, err := s.adapter.FindComparison(ctx, aComparison.ID, authz.NilPartial)
	s.Require().NoError(err)
	s.Equal(docstratum.ComparisonStatusCompleted, savedComparison.Status)
	s.Equal(completedPair, savedComparison.Pair)
}
