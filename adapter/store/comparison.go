package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/southpawriter02/docstratum"
	"github.com/southpawriter02/docstratum/pkg/authz"
)

var comparisonSortableBy = []string{"created", "updated", "duration_ms"}

func (a *Adapter) SaveComparisons(ctx context.Context, comparisons ...*docstratum.Comparison) error {
	if len(comparisons) < 1 {
		return nil
	}

	if err := a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		q, err := newInsertComparisonsQuery(comparisons)
		if err != nil {
			return err
		}

		if err := execQueryCheckRowsAffected(ctx, tx, q); err != nil {
			return fmt.Errorf("exec insert comparisons query failed: %w", err)
		}

		return nil
	}); err != nil {
		return err
	}

	return nil
}

type insertComparisonsQuery struct {
	comparisons []*docstratum.Comparison
	citations   [][]byte
}

func newInsertComparisonsQuery(comparisons []*docstratum.Comparison) (insertComparisonsQuery, error) {
	q := insertComparisonsQuery{
		comparisons: comparisons,
		citations:   make([][]byte, 0, len(comparisons)),
	}
	for _, c := range comparisons {
		citations := c.Pair.Enhanced.Citations
		if citations == nil {
			citations = []docstratum.Citation{}
		}
		payload, err := json.Marshal(citations)
		if err != nil {
			return q, fmt.Errorf("marshal citations failed: %w", err)
		}
		q.citations = append(q.citations, payload)
	}
	return q, nil
}

func (q insertComparisonsQuery) args(i int) []any {
	c := q.comparisons[i]
	return []any{
		c.ID,
		c.SessionID,
		c.Question.Content,
		c.Question.Created,
		c.Status,
		c.StatusMessage,
		c.Pair.Baseline.Text,
		c.Pair.Baseline.Tokens,
		c.Pair.Baseline.PromptTokens,
		c.Pair.Enhanced.Text,
		c.Pair.Enhanced.Tokens,
		c.Pair.Enhanced.PromptTokens,
		string(q.citations[i]),
		c.Pair.Metrics.CitationCount,
		c.Pair.Metrics.QualityScore,
		c.Pair.Metrics.DurationMS,
		c.Created,
		c.Updated,
	}
}

func (q insertComparisonsQuery) SQL() (string, []any) {
	if len(q.comparisons) == 0 {
		return "", nil
	}

	query := `
		with cte as (
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	args := make([]any, 0, len(q.comparisons)*18)
	args = append(args, q.args(0)...)
	for i := range q.comparisons[1:] {
		query += `, (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		args = append(args, q.args(i+1)...)
	}
	query += `
		)
		insert into "comparison" (
			"id",
			"session",
			"question",
			"question_created",
			"status",
			"status_message",
			"baseline_text",
			"baseline_tokens",
			"baseline_prompt_tokens",
			"enhanced_text",
			"enhanced_tokens",
			"enhanced_prompt_tokens",
			"enhanced_citations",
			"citation_count",
			"quality_score",
			"duration_ms",
			"created",
			"updated"
		)
		select *
		from cte
		where 1
		on conflict("id") do update set
			"status"=excluded."status",
			"status_message"=excluded."status_message",
			"baseline_text"=excluded."baseline_text",
			"baseline_tokens"=excluded."baseline_tokens",
			"baseline_prompt_tokens"=excluded."baseline_prompt_tokens",
			"enhanced_text"=excluded."enhanced_text",
			"enhanced_tokens"=excluded."enhanced_tokens",
			"enhanced_prompt_tokens"=excluded."enhanced_prompt_tokens",
			"enhanced_citations"=excluded."enhanced_citations",
			"citation_count"=excluded."citation_count",
			"quality_score"=excluded."quality_score",
			"duration_ms"=excluded."duration_ms",
			"updated"=excluded."updated"
	`

	return query, args
}

func (a *Adapter) ListComparisons(ctx context.Context, filter docstratum.ComparisonFilter, partial authz.Partial, params docstratum.SortParams) ([]*docstratum.Comparison, error) {
	if !params.Valid(comparisonSortableBy) {
		return nil, fmt.Errorf("invalid sort params: %v", params)
	}

	var comparisons []*docstratum.Comparison

	if err := a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		sql, args := selectComparisonsQuery{
			filter:  filter,
			partial: partial,
		}.SQL()

		sql += params.SQL()

		rows, err := tx.QueryContext(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("select comparisons query failed: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			aComparison, err := scanComparison(rows)
			if err != nil {
				return fmt.Errorf("scan comparison failed: %w", err)
			}
			comparisons = append(comparisons, aComparison)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return comparisons, nil
}

const selectComparisonColumns = `
	select
		"id",
		"session",
		"question",
		"question_created",
		"status",
		"status_message",
		"baseline_text",
		"baseline_tokens",
		"baseline_prompt_tokens",
		"enhanced_text",
		"enhanced_tokens",
		"enhanced_prompt_tokens",
		"enhanced_citations",
		"citation_count",
		"quality_score",
		"duration_ms",
		"created",
		"updated"
	from "comparison"
`

type selectComparisonsQuery struct {
	filter  docstratum.ComparisonFilter
	partial authz.Partial
}

func (q selectComparisonsQuery) SQL() (string, []any) {
	query := selectComparisonColumns
	args := []any{}

	// Add where clauses from the filter and/or partial if any
	where, whereArgs := comparisonFilterClauses(q.filter)
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

func comparisonFilterClauses(filter docstratum.ComparisonFilter) (string, []any) {
	var (
		clauses = []string{}
		args    = []any{}
	)

	if !filter.SessionID.UUID.IsNil() {
		clauses = append(clauses, `"session" = ?`)
		args = append(args, filter.SessionID)
	}

	if filter.Status != "" {
		clauses = append(clauses, `"status" = ?`)
		args = append(args, filter.Status)
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return strings.Join(clauses, " AND "), args
}

func (a *Adapter) FindComparison(ctx context.Context, id docstratum.ComparisonID, partial authz.Partial) (*docstratum.Comparison, error) {
	var comparison *docstratum.Comparison
	if err := a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		query, args := findComparisonQuery{
			id:      id,
			partial: partial,
		}.SQL()

		stmt, err := tx.Prepare(query)
		if err != nil {
			return fmt.Errorf("prepare find comparison statement failed: %w", err)
		}
		defer stmt.Close()

		row := stmt.QueryRowContext(ctx, args...)
		comparison, err = scanComparison(row)
		if err != nil {
			return err
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return comparison, nil
}

type findComparisonQuery struct {
	id      docstratum.ComparisonID
	partial authz.Partial
}

func (q findComparisonQuery) SQL() (string, []any) {
	query := selectComparisonColumns + ` where "id" = ?`
	args := []any{q.id}

	// Add where clauses from the partial if any
	partialClauses, partialArgs := q.partial.SQL()
	if partialClauses != "" {
		query += " and " + partialClauses

		args = append(args, partialArgs...)
	}

	return query, args
}

func scanComparison(row Scannable) (*docstratum.Comparison, error) {
	var (
		aComparison = new(docstratum.Comparison)
		citations   string
	)

	if err := row.Scan(
		&aComparison.ID,
		&aComparison.SessionID,
		&aComparison.Question.Content,
		&aComparison.Question.Created,
		&aComparison.Status,
		&aComparison.StatusMessage,
		&aComparison.Pair.Baseline.Text,
		&aComparison.Pair.Baseline.Tokens,
		&aComparison.Pair.Baseline.PromptTokens,
		&aComparison.Pair.Enhanced.Text,
		&aComparison.Pair.Enhanced.Tokens,
		&aComparison.Pair.Enhanced.PromptTokens,
		&citations,
		&aComparison.Pair.Metrics.CitationCount,
		&aComparison.Pair.Metrics.QualityScore,
		&aComparison.Pair.Metrics.DurationMS,
		&aComparison.Created,
		&aComparison.Updated,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, docstratum.ErrNotFound
		}
		return nil, fmt.Errorf("scan comparison failed: %w", err)
	}

	if err := json.Unmarshal([]byte(citations), &aComparison.Pair.Enhanced.Citations); err != nil {
		return nil, fmt.Errorf("unmarshal citations failed: %w", err)
	}
	if len(aComparison.Pair.Enhanced.Citations) == 0 {
		aComparison.Pair.Enhanced.Citations = nil
	}

	aComparison.Pair.Metrics.BaselineTokens = aComparison.Pair.Baseline.Tokens
	aComparison.Pair.Metrics.EnhancedTokens = aComparison.Pair.Enhanced.Tokens

	return aComparison, nil
}
