// Package api defines the JSON types exchanged over the REST surface.
package api

import "time"

type Error struct {
	Error string `json:"error"`
}

type RegisterSourceParams struct {
	Name     string `json:"name"`
	Contents string `json:"contents"`
}

type Source struct {
	Id             string    `json:"id"`
	Name           string    `json:"name"`
	Title          string    `json:"title,omitempty"`
	Description    string    `json:"description,omitempty"`
	Size           int64     `json:"size"`
	Hash           string    `json:"hash"`
	TokenEstimate  int       `json:"token_estimate"`
	Tier           string    `json:"tier"`
	CompositeScore int       `json:"composite_score"`
	Grade          string    `json:"grade"`
	Status         string    `json:"status"`
	StatusMessage  string    `json:"status_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Sources struct {
	Sources []Source `json:"sources"`
}

type Diagnostic struct {
	Code        string `json:"code"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Remediation string `json:"remediation"`
	Line        int    `json:"line"`
}

type Diagnostics struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
}

type ComparisonParams struct {
	Question string `json:"question"`
}

type Citation struct {
	SourceId string `json:"source_id"`
	Section  string `json:"section"`
	Snippet  string `json:"snippet,omitempty"`
}

type Answer struct {
	Text         string     `json:"text"`
	Tokens       int        `json:"tokens"`
	PromptTokens int        `json:"prompt_tokens"`
	Citations    []Citation `json:"citations,omitempty"`
}

type Metrics struct {
	BaselineTokens int   `json:"baseline_tokens"`
	EnhancedTokens int   `json:"enhanced_tokens"`
	CitationCount  int   `json:"citation_count"`
	QualityScore   int   `json:"quality_score"`
	DurationMs     int64 `json:"duration_ms"`
}

type Comparison struct {
	Id            string    `json:"id"`
	Question      string    `json:"question"`
	Baseline      Answer    `json:"baseline"`
	Enhanced      Answer    `json:"enhanced"`
	Metrics       Metrics   `json:"metrics"`
	Status        string    `json:"status"`
	StatusMessage string    `json:"status_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Comparisons struct {
	Comparisons []Comparison `json:"comparisons"`
}

type Examples struct {
	Questions []string `json:"questions"`
}

type SessionToggles struct {
	ShowMetrics   bool `json:"show_metrics"`
	ShowCitations bool `json:"show_citations"`
}

type Session struct {
	Id            string      `json:"id"`
	Question      string      `json:"question,omitempty"`
	Comparison    *Comparison `json:"comparison,omitempty"`
	ShowMetrics   bool        `json:"show_metrics"`
	ShowCitations bool        `json:"show_citations"`
}
