package docstratum

import "strconv"

// Severity of a validation finding. The code prefix determines severity:
// E = Error, W = Warning, I = Info.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// Code identifies one diagnostic in the validation catalog.
//
//	E001-E008: structural failures that prevent valid parsing
//	W001-W011: deviations from best practices
//	I001-I007: observations and suggestions, non-blocking
type Code string

const (
	CodeNoH1Title          Code = "E001"
	CodeMultipleH1         Code = "E002"
	CodeInvalidEncoding    Code = "E003"
	CodeInvalidLineEndings Code = "E004"
	CodeInvalidMarkdown    Code = "E005"
	CodeBrokenLinks        Code = "E006"
	CodeEmptyFile          Code = "E007"
	CodeExceedsSizeLimit   Code = "E008"

	CodeMissingBlockquote       Code = "W001"
	CodeNonCanonicalSectionName Code = "W002"
	CodeLinkMissingDescription  Code = "W003"
	CodeNoCodeExamples          Code = "W004"
	CodeCodeNoLanguage          Code = "W005"
	CodeFormulaicDescriptions   Code = "W006"
	CodeMissingVersionMetadata  Code = "W007"
	CodeSectionOrderNonCanon    Code = "W008"
	CodeNoMasterIndex           Code = "W009"
	CodeTokenBudgetExceeded     Code = "W010"
	CodeEmptySections           Code = "W011"

	CodeNoLLMInstructions       Code = "I001"
	CodeNoConceptDefinitions    Code = "I002"
	CodeNoFewShotExamples       Code = "I003"
	CodeRelativeURLsDetected    Code = "I004"
	CodeType2FullDetected       Code = "I005"
	CodeOptionalSectionsUnmark  Code = "I006"
	CodeJargonWithoutDefinition Code = "I007"
)

// Codes lists the complete catalog in code order.
var Codes = []Code{
	CodeNoH1Title, CodeMultipleH1, CodeInvalidEncoding, CodeInvalidLineEndings,
	CodeInvalidMarkdown, CodeBrokenLinks, CodeEmptyFile, CodeExceedsSizeLimit,
	CodeMissingBlockquote, CodeNonCanonicalSectionName, CodeLinkMissingDescription,
	CodeNoCodeExamples, CodeCodeNoLanguage, CodeFormulaicDescriptions,
	CodeMissingVersionMetadata, CodeSectionOrderNonCanon, CodeNoMasterIndex,
	CodeTokenBudgetExceeded, CodeEmptySections,
	CodeNoLLMInstructions, CodeNoConceptDefinitions, CodeNoFewShotExamples,
	CodeRelativeURLsDetected, CodeType2FullDetected, CodeOptionalSectionsUnmark,
	CodeJargonWithoutDefinition,
}

type codeDetail struct {
	message     string
	remediation string
}

var codeCatalog = map[Code]codeDetail{
	CodeNoH1Title: {
		"No H1 title found. Every llms.txt file MUST begin with exactly one H1 title.",
		"Add a single '# Title' as the first line of the file.",
	},
	CodeMultipleH1: {
		"Multiple H1 titles found. An llms.txt file must have exactly one H1.",
		"Remove all but the first H1 title. Use H2 for section headers.",
	},
	CodeInvalidEncoding: {
		"File is not valid UTF-8 encoding.",
		"Convert the file to UTF-8 encoding. Remove any BOM markers.",
	},
	CodeInvalidLineEndings: {
		"File uses non-LF line endings (CR or CRLF detected).",
		"Convert line endings to LF (Unix-style). Most editors have this option.",
	},
	CodeInvalidMarkdown: {
		"File contains invalid Markdown syntax that prevents parsing.",
		"Fix Markdown syntax errors. Use a Markdown linter to identify issues.",
	},
	CodeBrokenLinks: {
		"Section contains links with empty or malformed URLs.",
		"Fix or remove links with empty href values. Ensure all URLs are well-formed.",
	},
	CodeEmptyFile: {
		"File is empty or contains only whitespace.",
		"Add content to the file. At minimum: H1 title, blockquote, one H2 section.",
	},
	CodeExceedsSizeLimit: {
		"File exceeds the maximum recommended size (>100K tokens).",
		"Decompose into a tiered file strategy (index + full + per-section files).",
	},
	CodeMissingBlockquote: {
		"No blockquote description found after the H1 title.",
		"Add a '> description' blockquote immediately after the H1 title.",
	},
	CodeNonCanonicalSectionName: {
		"Section name does not match any of the 11 canonical names.",
		"Use canonical names where possible (see CanonicalSections).",
	},
	CodeLinkMissingDescription: {
		"Link entry has no description text (bare URL only).",
		"Add a description after the link: '- [Title](url): Description of the page'.",
	},
	CodeNoCodeExamples: {
		"File contains no code examples (no fenced code blocks found).",
		"Add code examples with language specifiers (```python, ```bash, etc.).",
	},
	CodeCodeNoLanguage: {
		"Code block found without a language specifier.",
		"Add a language identifier after the opening triple backticks.",
	},
	CodeFormulaicDescriptions: {
		"Multiple sections use identical or near-identical description patterns.",
		"Write unique, specific descriptions for each section.",
	},
	CodeMissingVersionMetadata: {
		"No version or last-updated metadata found in the file.",
		"Add version metadata (e.g., 'Last updated: 2026-02-06').",
	},
	CodeSectionOrderNonCanon: {
		"Sections do not follow the canonical 10-step ordering.",
		"Reorder sections to match the canonical sequence.",
	},
	CodeNoMasterIndex: {
		"No Master Index found as the first H2 section.",
		"Add a Master Index as the first H2 section with navigation links.",
	},
	CodeTokenBudgetExceeded: {
		"File exceeds the recommended token budget for its tier.",
		"Trim content to stay within the tier's token budget.",
	},
	CodeEmptySections: {
		"One or more sections contain no meaningful content (placeholder text only).",
		"Add content or remove empty sections. Placeholder sections waste tokens.",
	},
	CodeNoLLMInstructions: {
		"No LLM Instructions section found.",
		"Add an LLM Instructions section with positive/negative directives.",
	},
	CodeNoConceptDefinitions: {
		"No structured concept definitions found.",
		"Add concept definitions with IDs, relationships, and aliases.",
	},
	CodeNoFewShotExamples: {
		"No few-shot Q&A examples found.",
		"Add intent-tagged Q&A pairs linked to concepts.",
	},
	CodeRelativeURLsDetected: {
		"Relative URLs found in link entries (may need resolution).",
		"Convert relative URLs to absolute or document the base URL.",
	},
	CodeType2FullDetected: {
		"File classified as Type 2 Full (inline documentation dump, >250 KB).",
		"Consider creating a Type 1 Index companion file.",
	},
	CodeOptionalSectionsUnmark: {
		"Optional sections not explicitly marked with token estimates.",
		"Mark optional sections so consumers can skip them to save context.",
	},
	CodeJargonWithoutDefinition: {
		"Domain-specific jargon used without inline definition.",
		"Define jargon inline or link to a concept definition.",
	},
}

// Severity derives the severity level from the code prefix.
func (c Code) Severity() Severity {
	switch c[0] {
	case 'E':
		return SeverityError
	case 'W':
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// Number extracts the numeric portion of the code, e.g. E001 -> 1.
func (c Code) Number() int {
	n, _ := strconv.Atoi(string(c)[1:])
	return n
}

// Message returns the human-readable message template for the code.
func (c Code) Message() string {
	return codeCatalog[c].message
}

// Remediation returns the remediation hint for the code.
func (c Code) Remediation() string {
	return codeCatalog[c].remediation
}

// Diagnostic is a single validation finding attached to a source.
type Diagnostic struct {
	Code        Code     `json:"code"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	Remediation string   `json:"remediation"`
	Line        int      `json:"line"`
}

// NewDiagnostic builds a finding for a catalog code at a given line.
// Line 0 means the finding applies to the file as a whole.
func NewDiagnostic(code Code, line int) Diagnostic {
	return Diagnostic{
		Code:        code,
		Severity:    code.Severity(),
		Message:     code.Message(),
		Remediation: code.Remediation(),
		Line:        line,
	}
}
