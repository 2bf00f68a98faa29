package store

import (
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/southpawriter02/docstratum"
	"github.com/southpawriter02/docstratum/docstratumtest"
	"github.com/southpawriter02/docstratum/pkg/authz"
)

var (
	testNow = time.Now().UTC()
	gen     = docstratumtest.New(testNow.UnixNano(), testNow)
)

func testTime() docstratum.Time {
	return docstratum.Time{T: time.Now().UTC().Truncate(time.Millisecond)}
}

func testPrincipal() authz.Principal {
	return authz.New(authz.ID{UUID: docstratum.NewAuthorID().UUID})
}

func authorOf(principal authz.Principal) docstratum.AuthorID {
	return docstratum.AuthorID{UUID: principal.ID().UUID}
}

func (s *StoreTestSuite) TestFindSource() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		principal = testPrincipal()
		aSource   = gen.Source(
			docstratumtest.WithSourceAuthorID(authorOf(principal)),
			docstratumtest.WithSourceContextText("## Docs\nSome docs content\n\n"),
		)
	)

	_, err := s.adapter.FindSource(ctx, aSource.ID, authz.NilPartial)
	s.Require().ErrorIs(err, docstratum.ErrNotFound)

	s.Require().NoError(s.adapter.SavePrincipal(ctx, principal))

	err = s.adapter.SaveSources(ctx, aSource)
	s.Require().NoError(err)

	savedSource, err := s.adapter.FindSource(ctx, aSource.ID, authz.NilPartial)
	s.Require().NoError(err)
	s.Equal(aSource, savedSource)
}

func (s *StoreTestSuite) TestListSources() {
	ctx, cancel := testContext()
	defer cancel()

	sources, err := s.adapter.ListSources(ctx, docstratum.SourceFilter{}, authz.NilPartial, docstratum.SortParams{})
	s.Require().NoError(err)
	s.Empty(sources)

	var (
		principal = testPrincipal()
		source1   = gen.Source(
			docstratumtest.WithSourceAuthorID(authorOf(principal)),
			docstratumtest.WithSourceStatus(docstratum.SourceStatusValidated),
			docstratumtest.WithSourceGrade(docstratum.GradeB),
		)
		source2 = gen.Source(
			docstratumtest.WithSourceAuthorID(authorOf(principal)),
			docstratumtest.WithSourceName("llms-full.txt"),
			docstratumtest.WithSourceStatus(docstratum.SourceStatusInvalid),
			docstratumtest.WithSourceGrade(docstratum.GradeF),
			docstratumtest.WithSourceComposite(12),
		)
	)

	s.Require().NoError(s.adapter.SavePrincipal(ctx, principal))

	err = s.adapter.SaveSources(ctx, source1, source2)
	s.Require().NoError(err)

	sources, err = s.adapter.ListSources(ctx, docstratum.SourceFilter{}, authz.NilPartial, docstratum.SortParams{})
	s.Require().NoError(err)
	s.Len(sources, 2)
	s.Contains(sources, source1)
	s.Contains(sources, source2)

	// Filter by status
	sources, err = s.adapter.ListSources(ctx, docstratum.SourceFilter{Status: docstratum.SourceStatusValidated}, authz.NilPartial, docstratum.SortParams{})
	s.Require().NoError(err)
	s.Len(sources, 1)
	s.Equal(source1.ID, sources[0].ID)

	// Filter by grade
	sources, err = s.adapter.ListSources(ctx, docstratum.SourceFilter{Grade: docstratum.GradeF}, authz.NilPartial, docstratum.SortParams{})
	s.Require().NoError(err)
	s.Len(sources, 1)
	s.Equal(source2.ID, sources[0].ID)
}

func (s *StoreTestSuite) TestListSourcesSortedByScore() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		principal = testPrincipal()
		source1   = gen.Source(
			docstratumtest.WithSourceAuthorID(authorOf(principal)),
			docstratumtest.WithSourceComposite(42),
		)
		source2 = gen.Source(
			docstratumtest.WithSourceAuthorID(authorOf(principal)),
			docstratumtest.WithSourceComposite(91),
		)
		source3 = gen.Source(
			docstratumtest.WithSourceAuthorID(authorOf(principal)),
			docstratumtest.WithSourceComposite(67),
		)
	)

	s.Require().NoError(s.adapter.SavePrincipal(ctx, principal))
	s.Require().NoError(s.adapter.SaveSources(ctx, source1, source2, source3))

	sources, err := s.adapter.ListSources(ctx, docstratum.SourceFilter{}, authz.NilPartial, docstratum.SortParams{
		By:    "composite_score",
		Order: docstratum.SortOrderDesc,
		Limit: 2,
	})
	s.Require().NoError(err)
	s.Require().Len(sources, 2)
	s.Equal(source2.ID, sources[0].ID)
	s.Equal(source3.ID, sources[1].ID)
}

func (s *StoreTestSuite) TestListSourcesInvalidSortParams() {
	ctx, cancel := testContext()
	defer cancel()

	_, err := s.adapter.ListSources(ctx, docstratum.SourceFilter{}, authz.NilPartial, docstratum.SortParams{
		By: "file_hash; drop table source",
	})
	s.Require().Error(err)
}

func (s *StoreTestSuite) TestSaveSourcesUpsert() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		principal = testPrincipal()
		aSource   = gen.Source(
			docstratumtest.WithSourceAuthorID(authorOf(principal)),
			docstratumtest.WithSourceStatus(docstratum.SourceStatusValidating),
		)
	)

	s.Require().NoError(s.adapter.SavePrincipal(ctx, principal))
	s.Require().NoError(s.adapter.SaveSources(ctx, aSource))

	aSource.Status = docstratum.SourceStatusValidated
	aSource.Composite = 95
	aSource.Grade = docstratum.GradeA
	aSource.Updated = testTime()

	s.Require().NoError(s.adapter.SaveSources(ctx, aSource))

	savedSource, err := s.adapter.FindSource(ctx, aSource.ID, authz.NilPartial)
	s.Require().NoError(err)
	s.Equal(docstratum.SourceStatusValidated, savedSource.Status)
	s.Equal(95, savedSource.Composite)
	s.Equal(docstratum.GradeA, savedSource.Grade)
}

func (s *StoreTestSuite) TestSaveAndListDiagnostics() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		principal = testPrincipal()
		aSource   = gen.Source(docstratumtest.WithSourceAuthorID(authorOf(principal)))
		diags     = []docstratum.Diagnostic{
			docstratum.NewDiagnostic(docstratum.CodeNoH1Title, 0),
			docstratum.NewDiagnostic(docstratum.CodeMissingBlockquote, 3),
		}
	)

	s.Require().NoError(s.adapter.SavePrincipal(ctx, principal))
	s.Require().NoError(s.adapter.SaveSources(ctx, aSource))

	err := s.adapter.SaveDiagnostics(ctx, aSource.ID, diags)
	s.Require().NoError(err)

	saved, err := s.adapter.ListDiagnostics(ctx, aSource.ID)
	s.Require().NoError(err)
	s.Equal(diags, saved)

	// Saving again replaces rather than appends
	err = s.adapter.SaveDiagnostics(ctx, aSource.ID, diags[:1])
	s.Require().NoError(err)

	saved, err = s.adapter.ListDiagnostics(ctx, aSource.ID)
	s.Require().NoError(err)
	s.Equal(diags[:1], saved)
}

func (s *StoreTestSuite) TestDeleteSources() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		principal = testPrincipal()
		aSource   = gen.Source(docstratumtest.WithSourceAuthorID(authorOf(principal)))
	)

	s.Require().NoError(s.adapter.SavePrincipal(ctx, principal))
	s.Require().NoError(s.adapter.SaveSources(ctx, aSource))
	s.Require().NoError(s.adapter.SaveDiagnostics(ctx, aSource.ID, []docstratum.Diagnostic{
		docstratum.NewDiagnostic(docstratum.CodeNoH1Title, 0),
	}))

	err := s.adapter.DeleteSources(ctx, aSource)
	s.Require().NoError(err)

	_, err = s.adapter.FindSource(ctx, aSource.ID, authz.NilPartial)
	s.Require().ErrorIs(err, docstratum.ErrNotFound)

	diags, err := s.adapter.ListDiagnostics(ctx, aSource.ID)
	s.Require().NoError(err)
	s.Empty(diags)
}
