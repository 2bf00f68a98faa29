package docstratum

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Type 2 Full classification threshold: inline documentation dumps larger
// than 250 KB are not spec-conformant but are valid in MCP contexts.
const type2FullBytes = 250 * 1024

type Validator struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

type ValidatorOption func(*Validator)

// WithSentenceTraining overrides the default English sentence tokenizer
// training data.
func WithSentenceTraining(training *sentences.Storage) ValidatorOption {
	return func(v *Validator) {
		v.tokenizer = sentences.NewSentenceTokenizer(training)
	}
}

func NewValidator(options ...ValidatorOption) (*Validator, error) {
	v := &Validator{}

	for _, o := range options {
		o(v)
	}

	if v.tokenizer == nil {
		tokenizer, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			return nil, err
		}
		v.tokenizer = tokenizer
	}

	return v, nil
}

// Validate runs the full diagnostic catalog against raw file contents and
// the parsed model. A nil parsed file means the Markdown could not be
// parsed at all; only byte-level checks and E005 are reported in that case.
// Findings come back in catalog order: errors, then warnings, then infos.
func (v *Validator) Validate(raw []byte, f *LlmsFile) []Diagnostic {
	var diags []Diagnostic

	if len(bytes.TrimSpace(raw)) == 0 {
		return []Diagnostic{NewDiagnostic(CodeEmptyFile, 0)}
	}

	if !utf8.Valid(raw) {
		diags = append(diags, NewDiagnostic(CodeInvalidEncoding, 0))
	}
	if bytes.ContainsRune(raw, '\r') {
		diags = append(diags, NewDiagnostic(CodeInvalidLineEndings, 0))
	}

	if f == nil {
		return append(diags, NewDiagnostic(CodeInvalidMarkdown, 0))
	}

	tokens := EstimateTokens(raw)

	diags = append(diags, v.structuralChecks(f, tokens)...)
	diags = append(diags, v.qualityChecks(raw, f, tokens)...)
	diags = append(diags, v.extendedChecks(raw, f)...)

	return diags
}

func (v *Validator) structuralChecks(f *LlmsFile, tokens int) []Diagnostic {
	var diags []Diagnostic

	if f.H1Count == 0 {
		diags = append(diags, NewDiagnostic(CodeNoH1Title, 0))
	}
	if f.H1Count > 1 {
		diags = append(diags, NewDiagnostic(CodeMultipleH1, 0))
	}

	for _, s := range f.Sections {
		for _, l := range s.Links {
			if brokenURL(l.URL) {
				diags = append(diags, NewDiagnostic(CodeBrokenLinks, l.Line))
			}
		}
	}

	if tokens > TokenZoneDegradation {
		diags = append(diags, NewDiagnostic(CodeExceedsSizeLimit, 0))
	}

	return diags
}

func (v *Validator) qualityChecks(raw []byte, f *LlmsFile, tokens int) []Diagnostic {
	var diags []Diagnostic

	if strings.TrimSpace(f.Description) == "" {
		diags = append(diags, NewDiagnostic(CodeMissingBlockquote, 0))
	}

	for _, s := range f.Sections {
		if s.Canonical == "" {
			diags = append(diags, NewDiagnostic(CodeNonCanonicalSectionName, s.Line))
		}
	}

	for _, s := range f.Sections {
		for _, l := range s.Links {
			if strings.TrimSpace(l.Description) == "" {
				diags = append(diags, NewDiagnostic(CodeLinkMissingDescription, l.Line))
			}
		}
	}

	var codeBlocks, unlabelled int
	for _, s := range f.Sections {
		for _, cb := range s.CodeBlocks {
			codeBlocks++
			if cb.Language == "" {
				unlabelled++
			}
		}
	}
	if codeBlocks == 0 {
		diags = append(diags, NewDiagnostic(CodeNoCodeExamples, 0))
	} else if unlabelled > 0 {
		diags = append(diags, NewDiagnostic(CodeCodeNoLanguage, 0))
	}

	if v.formulaicDescriptions(f) {
		diags = append(diags, NewDiagnostic(CodeFormulaicDescriptions, 0))
	}

	if !hasVersionMetadata(raw) {
		diags = append(diags, NewDiagnostic(CodeMissingVersionMetadata, 0))
	}

	if !canonicalOrder(f.Sections) {
		diags = append(diags, NewDiagnostic(CodeSectionOrderNonCanon, 0))
	}

	if len(f.Sections) == 0 || f.Sections[0].Canonical != SectionMasterIndex {
		diags = append(diags, NewDiagnostic(CodeNoMasterIndex, 0))
	}

	// The hard size limit (E008) fires at the degradation zone; anything
	// between the Full tier budget and that zone is a warning.
	if tokens > TokenBudgetTiers["full"].MaxTokens && tokens <= TokenZoneDegradation {
		diags = append(diags, NewDiagnostic(CodeTokenBudgetExceeded, 0))
	}

	for _, s := range f.Sections {
		if s.Empty() {
			diags = append(diags, NewDiagnostic(CodeEmptySections, s.Line))
		}
	}

	return diags
}

func (v *Validator) extendedChecks(raw []byte, f *LlmsFile) []Diagnostic {
	var diags []Diagnostic

	if _, ok := f.FindSection(SectionLLMInstructions); !ok {
		diags = append(diags, NewDiagnostic(CodeNoLLMInstructions, 0))
	}
	if _, ok := f.FindSection(SectionCoreConcepts); !ok {
		diags = append(diags, NewDiagnostic(CodeNoConceptDefinitions, 0))
	}
	if _, ok := f.FindSection(SectionExamples); !ok {
		diags = append(diags, NewDiagnostic(CodeNoFewShotExamples, 0))
	}

	relative := false
	for _, l := range f.Links() {
		if l.URL != "" && !brokenURL(l.URL) && !strings.Contains(l.URL, "://") {
			relative = true
			break
		}
	}
	if relative {
		diags = append(diags, NewDiagnostic(CodeRelativeURLsDetected, 0))
	}

	if len(raw) > type2FullBytes {
		diags = append(diags, NewDiagnostic(CodeType2FullDetected, 0))
	}

	if s, ok := f.FindSection(SectionOptional); ok {
		if !strings.Contains(strings.ToLower(s.Text), "token") {
			diags = append(diags, NewDiagnostic(CodeOptionalSectionsUnmark, s.Line))
		}
	}

	if v.jargonWithoutDefinition(f) {
		diags = append(diags, NewDiagnostic(CodeJargonWithoutDefinition, 0))
	}

	return diags
}

// formulaicDescriptions reports whether three or more link descriptions open
// with an identical sentence stem, a telltale of auto-generated content.
func (v *Validator) formulaicDescriptions(f *LlmsFile) bool {
	stems := map[string]int{}
	for _, l := range f.Links() {
		desc := strings.TrimSpace(l.Description)
		if desc == "" {
			continue
		}
		first := desc
		if parts := v.tokenizer.Tokenize(desc); len(parts) > 0 {
			first = parts[0].Text
		}
		words := strings.Fields(strings.ToLower(first))
		if len(words) < 3 {
			continue
		}
		stem := strings.Join(words[:3], " ")
		stems[stem]++
		if stems[stem] >= 3 {
			return true
		}
	}
	return false
}

var acronymPattern = regexp.MustCompile(`\b[A-Z]{3,}\b`)

// jargonWithoutDefinition flags acronyms of three or more capitals that never
// appear next to a parenthesized expansion anywhere in the file.
func (v *Validator) jargonWithoutDefinition(f *LlmsFile) bool {
	var all strings.Builder
	all.WriteString(f.Description)
	for _, s := range f.Sections {
		all.WriteString("\n")
		all.WriteString(s.Text)
		for _, l := range s.Links {
			all.WriteString("\n")
			all.WriteString(l.Description)
		}
	}
	text := all.String()

	for _, acronym := range acronymPattern.FindAllString(text, -1) {
		if acronym == "FAQ" || acronym == "API" || acronym == "LLM" {
			continue
		}
		if !strings.Contains(text, acronym+" (") {
			return true
		}
	}
	return false
}

func brokenURL(url string) bool {
	url = strings.TrimSpace(url)
	return url == "" || strings.ContainsAny(url, " \t")
}

var versionPattern = regexp.MustCompile(`(?i)(last updated|version|updated:|\d{4}-\d{2}-\d{2})`)

func hasVersionMetadata(raw []byte) bool {
	return versionPattern.Match(raw)
}

// canonicalOrder reports whether the canonical sections appear in
// non-decreasing order of the 10-step sequence. Non-canonical sections and
// Optional are ignored; Optional must come last if present.
func canonicalOrder(sections []Section) bool {
	last := 0
	seenOptional := false
	for _, s := range sections {
		if s.Canonical == "" {
			continue
		}
		if s.Canonical == SectionOptional {
			seenOptional = true
			continue
		}
		if seenOptional {
			return false
		}
		pos := CanonicalSectionOrder[s.Canonical]
		if pos < last {
			return false
		}
		last = pos
	}
	return true
}
