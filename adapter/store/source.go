package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/southpawriter02/docstratum"
	"github.com/southpawriter02/docstratum/pkg/authz"
)

var sourceSortableBy = []string{"created", "updated", "composite_score", "token_estimate"}

func (a *Adapter) SaveSources(ctx context.Context, sources ...*docstratum.Source) error {
	if len(sources) < 1 {
		return nil
	}

	if err := a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		if err := execQueryCheckRowsAffected(ctx, tx, insertSourcesQuery{sources: sources}); err != nil {
			return fmt.Errorf("exec insert sources query failed: %w", err)
		}

		if err := execQueryCheckRowsAffected(ctx, tx, insertSourceStatusEventsQuery{sources: sources}); err != nil {
			return fmt.Errorf("exec insert source status events query failed: %w", err)
		}

		return nil
	}); err != nil {
		return err
	}

	return nil
}

type insertSourcesQuery struct {
	sources []*docstratum.Source
}

func sourceArgs(s *docstratum.Source) []any {
	return []any{
		s.ID,
		s.AuthorID,
		s.Name,
		s.Size,
		s.Hash,
		s.Title,
		s.Description,
		s.TokenEstimate,
		s.Tier,
		s.Composite,
		s.Grade,
		s.ContextText,
		s.Status,
		s.StatusMessage,
		s.Created,
		s.Updated,
	}
}

func (q insertSourcesQuery) SQL() (string, []any) {
	if len(q.sources) == 0 {
		return "", nil
	}

	query := `
		with cte as (
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	args := make([]any, 0, len(q.sources)*16)
	args = append(args, sourceArgs(q.sources[0])...)
	for i := range q.sources[1:] {
		query += `, (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		args = append(args, sourceArgs(q.sources[i+1])...)
	}
	query += `
		)
		insert into "source" (
			"id",
			"author",
			"name",
			"file_size",
			"file_hash",
			"title",
			"description",
			"token_estimate",
			"tier",
			"composite_score",
			"grade",
			"context_text",
			"status",
			"status_message",
			"created",
			"updated"
		)
		select *
		from cte
		where 1
		on conflict("id") do update set
			"author"=excluded."author",
			"name"=excluded."name",
			"file_size"=excluded."file_size",
			"file_hash"=excluded."file_hash",
			"title"=excluded."title",
			"description"=excluded."description",
			"token_estimate"=excluded."token_estimate",
			"tier"=excluded."tier",
			"composite_score"=excluded."composite_score",
			"grade"=excluded."grade",
			"context_text"=excluded."context_text",
			"status"=excluded."status",
			"status_message"=excluded."status_message",
			"updated"=excluded."updated"
	`

	return query, args
}

type insertSourceStatusEventsQuery struct {
	sources []*docstratum.Source
}

func (q insertSourceStatusEventsQuery) SQL() (string, []any) {
	if len(q.sources) == 0 {
		return "", nil
	}

	query := `
		with cte as (
			values (?, ?, ?, ?)
	`
	args := make([]any, 0, len(q.sources)*4)
	args = append(
		args,
		q.sources[0].ID,
		q.sources[0].Status,
		sql.NullString{String: q.sources[0].StatusMessage, Valid: q.sources[0].StatusMessage != ""},
		q.sources[0].Updated,
	)
	for i := range q.sources[1:] {
		query += `, (?, ?, ?, ?)`
		args = append(
			args,
			q.sources[i+1].ID,
			q.sources[i+1].Status,
			sql.NullString{String: q.sources[i+1].StatusMessage, Valid: q.sources[i+1].StatusMessage != ""},
			q.sources[i+1].Updated,
		)
	}
	query += `
		)
		insert into "source_status_evt" (
			"source",
			"status",
			"message",
			"created"
		)
		select *
		from cte
		where 1
	`

	return query, args
}

func (a *Adapter) ListSources(ctx context.Context, filter docstratum.SourceFilter, partial authz.Partial, params docstratum.SortParams) ([]*docstratum.Source, error) {
	if !params.Valid(sourceSortableBy) {
		return nil, fmt.Errorf("invalid sort params: %v", params)
	}

	var sources []*docstratum.Source

	if err := a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		sql, args := selectSourcesQuery{
			filter:  filter,
			partial: partial,
		}.SQL()

		sql += params.SQL()

		rows, err := tx.QueryContext(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("select sources query failed: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			aSource, err := scanSource(rows)
			if err != nil {
				return fmt.Errorf("scan source failed: %w", err)
			}
			sources = append(sources, aSource)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return sources, nil
}

const selectSourceColumns = `
	select
		"id",
		"author",
		"name",
		"file_size",
		"file_hash",
		"title",
		"description",
		"token_estimate",
		"tier",
		"composite_score",
		"grade",
		"context_text",
		"status",
		"status_message",
		"created",
		"updated"
	from "source"
`

type selectSourcesQuery struct {
	filter  docstratum.SourceFilter
	partial authz.Partial
}

func (q selectSourcesQuery) SQL() (string, []any) {
	query := selectSourceColumns
	args := []any{}

	// Add where clauses from the filter and/or partial if any
	where, whereArgs := sourceFilterClauses(q.filter)
	partialClauses, partialArgs := q.partial.SQL()
	if partialClauses != "" {
		if where == "" {
			where += partialClauses
		} else {
			where += " and " + partialClauses
		}

		whereArgs = append(whereArgs, partialArgs...)
	}
	if where != "" {
		query += " where " + where
		args = append(args, whereArgs...)
	}

	return query, args
}

func sourceFilterClauses(filter docstratum.SourceFilter) (string, []any) {
	var (
		clauses = []string{}
		args    = []any{}
	)

	if filter.Status != "" {
		clauses = append(clauses, `"status" = ?`)
		args = append(args, filter.Status)
	}

	if filter.Grade != "" {
		clauses = append(clauses, `"grade" = ?`)
		args = append(args, filter.Grade)
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return strings.Join(clauses, " AND "), args
}

func (a *Adapter) FindSource(ctx context.Context, id docstratum.SourceID, partial authz.Partial) (*docstratum.Source, error) {
	var source *docstratum.Source
	if err := a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		query, args := findSourceQuery{
			id:      id,
			partial: partial,
		}.SQL()

		stmt, err := tx.Prepare(query)
		if err != nil {
			return fmt.Errorf("prepare find source statement failed: %w", err)
		}
		defer stmt.Close()

		row := stmt.QueryRowContext(ctx, args...)
		source, err = scanSource(row)
		if err != nil {
			return err
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return source, nil
}

type findSourceQuery struct {
	id      docstratum.SourceID
	partial authz.Partial
}

func (q findSourceQuery) SQL() (string, []any) {
	query := selectSourceColumns + ` where "id" = ?`
	args := []any{q.id}

	// Add where clauses from the partial if any
	partialClauses, partialArgs := q.partial.SQL()
	if partialClauses != "" {
		query += " and " + partialClauses

		args = append(args, partialArgs...)
	}

	return query, args
}

func scanSource(row Scannable) (*docstratum.Source, error) {
	var aSource = new(docstratum.Source)

	if err := row.Scan(
		&aSource.ID,
		&aSource.AuthorID,
		&aSource.Name,
		&aSource.Size,
		&aSource.Hash,
		&aSource.Title,
		&aSource.Description,
		&aSource.TokenEstimate,
		&aSource.Tier,
		&aSource.Composite,
		&aSource.Grade,
		&aSource.ContextText,
		&aSource.Status,
		&aSource.StatusMessage,
		&aSource.Created,
		&aSource.Updated,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, docstratum.ErrNotFound
		}
		return nil, fmt.Errorf("scan source failed: %w", err)
	}

	return aSource, nil
}

func (a *Adapter) SaveDiagnostics(ctx context.Context, id docstratum.SourceID, diags []docstratum.Diagnostic) error {
	if err := a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		if err := exec(ctx, tx, `delete from "diagnostic" where "source" = ?`, id); err != nil {
			return fmt.Errorf("exec delete diagnostics query failed: %w", err)
		}

		if len(diags) == 0 {
			return nil
		}

		if err := execQueryCheckRowsAffected(ctx, tx, insertDiagnosticsQuery{id: id, diags: diags}); err != nil {
			return fmt.Errorf("exec insert diagnostics query failed: %w", err)
		}

		return nil
	}); err != nil {
		return err
	}

	return nil
}

type insertDiagnosticsQuery struct {
	id    docstratum.SourceID
	diags []docstratum.Diagnostic
}

func (q insertDiagnosticsQuery) SQL() (string, []any) {
	if len(q.diags) == 0 {
		return "", nil
	}

	query := `
		with cte as (
			values (?, ?, ?, ?, ?, ?)
	`
	args := make([]any, 0, len(q.diags)*6)
	args = append(
		args,
		q.id,
		q.diags[0].Code,
		q.diags[0].Severity,
		q.diags[0].Message,
		q.diags[0].Remediation,
		q.diags[0].Line,
	)
	for i := range q.diags[1:] {
		query += `, (?, ?, ?, ?, ?, ?)`
		args = append(
			args,
			q.id,
			q.diags[i+1].Code,
			q.diags[i+1].Severity,
			q.diags[i+1].Message,
			q.diags[i+1].Remediation,
			q.diags[i+1].Line,
		)
	}
	query += `
		)
		insert into "diagnostic" (
			"source",
			"code",
			"severity",
			"message",
			"remediation",
			"line"
		)
		select *
		from cte
		where 1
	`

	return query, args
}

func (a *Adapter) ListDiagnostics(ctx context.Context, id docstratum.SourceID) ([]docstratum.Diagnostic, error) {
	var diags []docstratum.Diagnostic

	if err := a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		query := `
			select
				"code",
				"severity",
				"message",
				"remediation",
				"line"
			from "diagnostic"
			where "source" = ?
			order by "id" asc
		`

		rows, err := tx.QueryContext(ctx, query, id)
		if err != nil {
			return fmt.Errorf("select diagnostics query failed: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var aDiag docstratum.Diagnostic
			if err := rows.Scan(
				&aDiag.Code,
				&aDiag.Severity,
				&aDiag.Message,
				&aDiag.Remediation,
				&aDiag.Line,
			); err != nil {
				return fmt.Errorf("scan diagnostic failed: %w", err)
			}
			diags = append(diags, aDiag)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return diags, nil
}

func (a *Adapter) DeleteSources(ctx context.Context, sources ...*docstratum.Source) error {
	if len(sources) < 1 {
		return nil
	}

	if err := a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		if err := execQuery(ctx, tx, deleteSourceChildrenQuery{table: "diagnostic", sources: sources}); err != nil {
			return fmt.Errorf("exec delete diagnostics query failed: %w", err)
		}

		if err := execQuery(ctx, tx, deleteSourceChildrenQuery{table: "source_status_evt", sources: sources}); err != nil {
			return fmt.Errorf("exec delete source status events query failed: %w", err)
		}

		if err := execQuery(ctx, tx, deleteSourcesQuery{sources: sources}); err != nil {
			return fmt.Errorf("exec delete sources query failed: %w", err)
		}

		return nil
	}); err != nil {
		return err
	}

	return nil
}

type deleteSourceChildrenQuery struct {
	table   string
	sources []*docstratum.Source
}

func (q deleteSourceChildrenQuery) SQL() (string, []any) {
	if len(q.sources) == 0 {
		return "", nil
	}

	sql := `delete from "` + q.table + `" where "source" in (?`
	args := make([]any, 0, len(q.sources))
	args = append(args, q.sources[0].ID)
	for i := range q.sources[1:] {
		sql += `, ?`
		args = append(args, q.sources[i+1].ID)
	}
	sql += `)`

	return sql, args
}

type deleteSourcesQuery struct {
	sources []*docstratum.Source
}

func (q deleteSourcesQuery) SQL() (string, []any) {
	if len(q.sources) == 0 {
		return "", nil
	}

	sql := `delete from "source" where "id" in (?`
	args := make([]any, 0, len(q.sources))
	args = append(args, q.sources[0].ID)
	for i := range q.sources[1:] {
		sql += `, ?`
		args = append(args, q.sources[i+1].ID)
	}
	sql += `)`

	return sql, args
}
