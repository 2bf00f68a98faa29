package docstratum

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()

	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

// wellFormedFile builds a parsed model that passes the full catalog clean.
func wellFormedFile() *LlmsFile {
	return &LlmsFile{
		Title:       "FastAPI",
		H1Count:     1,
		Description: "Modern web framework for building APIs with Python.",
		Sections: []Section{
			{
				Name:      "Master Index",
				Canonical: SectionMasterIndex,
				Links: []Link{
					{Title: "Docs", URL: "https://fastapi.tiangolo.com/", Description: "Full documentation.", Line: 5},
				},
				Line: 4,
			},
			{
				Name:      "LLM Instructions",
				Canonical: SectionLLMInstructions,
				Text:      "Prefer code examples over prose when answering.",
				Line:      7,
			},
			{
				Name:      "Core Concepts",
				Canonical: SectionCoreConcepts,
				Text:      "Path operations map request paths to handler functions.",
				Line:      10,
			},
			{
				Name:       "Examples",
				Canonical:  SectionExamples,
				Text:       "Install and run a minimal app.",
				CodeBlocks: []CodeBlock{{Language: "python", Line: 15}},
				Line:       13,
			},
		},
	}
}

func wellFormedRaw() []byte {
	return []byte("# FastAPI\n\n> Modern web framework.\n\nLast updated: 2026-08-01\n")
}

func codesOf(diags []Diagnostic) []Code {
	codes := make([]Code, 0, len(diags))
	for _, d := range diags {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestValidate_WellFormedFileIsClean(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)
	diags := v.Validate(wellFormedRaw(), wellFormedFile())
	assert.Empty(t, diags)
}

func TestValidate_EmptyFile(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	for _, raw := range [][]byte{nil, []byte(""), []byte("  \n\t\n")} {
		diags := v.Validate(raw, nil)
		require.Len(t, diags, 1)
		assert.Equal(t, CodeEmptyFile, diags[0].Code)
		assert.Equal(t, SeverityError, diags[0].Severity)
	}
}

func TestValidate_InvalidEncoding(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)
	diags := v.Validate([]byte{'#', ' ', 0xff, 0xfe, 'x'}, nil)
	assert.Contains(t, codesOf(diags), CodeInvalidEncoding)
}

func TestValidate_InvalidLineEndings(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)
	diags := v.Validate([]byte("# Title\r\n> desc\r\n"), wellFormedFile())
	assert.Contains(t, codesOf(diags), CodeInvalidLineEndings)
}

func TestValidate_UnparseableMarkdown(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)
	diags := v.Validate([]byte("some bytes"), nil)
	require.Len(t, diags, 1)
	assert.Equal(t, CodeInvalidMarkdown, diags[0].Code)
}

func TestValidate_H1Title(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	f := wellFormedFile()
	f.H1Count = 0
	assert.Contains(t, codesOf(v.Validate(wellFormedRaw(), f)), CodeNoH1Title)

	f = wellFormedFile()
	f.H1Count = 3
	assert.Contains(t, codesOf(v.Validate(wellFormedRaw(), f)), CodeMultipleH1)
}

func TestValidate_BrokenLinks(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	f := wellFormedFile()
	f.Sections[0].Links = append(f.Sections[0].Links,
		Link{Title: "Broken", URL: "", Description: "Empty href.", Line: 6},
		Link{Title: "Spaced", URL: "https://example.com/a b", Description: "Whitespace in URL.", Line: 7},
	)

	diags := v.Validate(wellFormedRaw(), f)

	var lines []int
	for _, d := range diags {
		if d.Code == CodeBrokenLinks {
			lines = append(lines, d.Line)
		}
	}
	assert.Equal(t, []int{6, 7}, lines)
}

func TestValidate_SizeLimit(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	// Past the degradation zone the hard error fires, not the budget warning.
	raw := []byte(strings.Repeat("a", (TokenZoneDegradation+1)*4))
	diags := v.Validate(raw, wellFormedFile())
	codes := codesOf(diags)
	assert.Contains(t, codes, CodeExceedsSizeLimit)
	assert.NotContains(t, codes, CodeTokenBudgetExceeded)
}

func TestValidate_TokenBudgetExceeded(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	// Between the Full tier budget and the degradation zone only the
	// warning fires.
	raw := []byte(strings.Repeat("a", (TokenBudgetTiers["full"].MaxTokens+1)*4))
	diags := v.Validate(raw, wellFormedFile())
	codes := codesOf(diags)
	assert.Contains(t, codes, CodeTokenBudgetExceeded)
	assert.NotContains(t, codes, CodeExceedsSizeLimit)
}

func TestValidate_MissingBlockquote(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	f := wellFormedFile()
	f.Description = "   "
	assert.Contains(t, codesOf(v.Validate(wellFormedRaw(), f)), CodeMissingBlockquote)
}

func TestValidate_NonCanonicalSectionName(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	f := wellFormedFile()
	f.Sections = append(f.Sections, Section{Name: "Random Stuff", Text: "content", Line: 20})

	diags := v.Validate(wellFormedRaw(), f)
	var found bool
	for _, d := range diags {
		if d.Code == CodeNonCanonicalSectionName {
			found = true
			assert.Equal(t, 20, d.Line)
		}
	}
	assert.True(t, found)
}

func TestValidate_LinkMissingDescription(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	f := wellFormedFile()
	f.Sections[0].Links = append(f.Sections[0].Links,
		Link{Title: "Bare", URL: "https://example.com/", Line: 6})

	assert.Contains(t, codesOf(v.Validate(wellFormedRaw(), f)), CodeLinkMissingDescription)
}

func TestValidate_CodeExamples(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	f := wellFormedFile()
	f.Sections[3].CodeBlocks = nil
	assert.Contains(t, codesOf(v.Validate(wellFormedRaw(), f)), CodeNoCodeExamples)

	f = wellFormedFile()
	f.Sections[3].CodeBlocks = []CodeBlock{{Language: "", Line: 15}}
	codes := codesOf(v.Validate(wellFormedRaw(), f))
	assert.Contains(t, codes, CodeCodeNoLanguage)
	assert.NotContains(t, codes, CodeNoCodeExamples)
}

func TestValidate_FormulaicDescriptions(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	f := wellFormedFile()
	f.Sections[0].Links = []Link{
		{Title: "A", URL: "https://example.com/a", Description: "Learn more about routing here.", Line: 5},
		{Title: "B", URL: "https://example.com/b", Description: "Learn more about testing here.", Line: 6},
		{Title: "C", URL: "https://example.com/c", Description: "Learn more about deployment here.", Line: 7},
	}

	assert.Contains(t, codesOf(v.Validate(wellFormedRaw(), f)), CodeFormulaicDescriptions)
}

func TestValidate_MissingVersionMetadata(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	raw := []byte("# FastAPI\n\n> Modern web framework.\n")
	assert.Contains(t, codesOf(v.Validate(raw, wellFormedFile())), CodeMissingVersionMetadata)
}

func TestValidate_SectionOrder(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	f := wellFormedFile()
	// Swap Examples before Core Concepts.
	f.Sections[2], f.Sections[3] = f.Sections[3], f.Sections[2]
	assert.Contains(t, codesOf(v.Validate(wellFormedRaw(), f)), CodeSectionOrderNonCanon)
}

func TestValidate_OptionalMustComeLast(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	f := wellFormedFile()
	f.Sections = append(f.Sections[:1], append([]Section{{
		Name:      "Optional",
		Canonical: SectionOptional,
		Text:      "Skippable, roughly 2000 tokens.",
		Line:      6,
	}}, f.Sections[1:]...)...)

	assert.Contains(t, codesOf(v.Validate(wellFormedRaw(), f)), CodeSectionOrderNonCanon)
}

func TestValidate_NoMasterIndex(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	f := wellFormedFile()
	f.Sections = f.Sections[1:]
	assert.Contains(t, codesOf(v.Validate(wellFormedRaw(), f)), CodeNoMasterIndex)
}

func TestValidate_EmptySections(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	f := wellFormedFile()
	f.Sections = append(f.Sections, Section{
		Name:      "Troubleshooting",
		Canonical: SectionTroubleshooting,
		Text:      "   ",
		Line:      30,
	})

	diags := v.Validate(wellFormedRaw(), f)
	var found bool
	for _, d := range diags {
		if d.Code == CodeEmptySections {
			found = true
			assert.Equal(t, 30, d.Line)
			assert.Equal(t, SeverityWarning, d.Severity)
		}
	}
	assert.True(t, found)
}

func TestValidate_ExtendedSectionHints(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	tests := []struct {
		name    string
		drop    CanonicalSection
		expects Code
	}{
		{"missing LLM instructions", SectionLLMInstructions, CodeNoLLMInstructions},
		{"missing concept definitions", SectionCoreConcepts, CodeNoConceptDefinitions},
		{"missing few-shot examples", SectionExamples, CodeNoFewShotExamples},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := wellFormedFile()
			kept := f.Sections[:0:0]
			for _, s := range f.Sections {
				if s.Canonical != tt.drop {
					kept = append(kept, s)
				}
			}
			f.Sections = kept

			assert.Contains(t, codesOf(v.Validate(wellFormedRaw(), f)), tt.expects)
		})
	}
}

func TestValidate_RelativeURLs(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	f := wellFormedFile()
	f.Sections[0].Links = append(f.Sections[0].Links,
		Link{Title: "Local", URL: "docs/index.html", Description: "Relative path.", Line: 6})

	assert.Contains(t, codesOf(v.Validate(wellFormedRaw(), f)), CodeRelativeURLsDetected)
}

func TestValidate_Type2FullDetected(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	// Larger than the Type 2 byte threshold but below the degradation zone.
	raw := []byte(strings.Repeat("a", type2FullBytes+1))
	codes := codesOf(v.Validate(raw, wellFormedFile()))
	assert.Contains(t, codes, CodeType2FullDetected)
	assert.NotContains(t, codes, CodeExceedsSizeLimit)
}

func TestValidate_OptionalSectionsUnmarked(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	f := wellFormedFile()
	f.Sections = append(f.Sections, Section{
		Name:      "Optional",
		Canonical: SectionOptional,
		Text:      "Extra reading material.",
		Line:      40,
	})
	assert.Contains(t, codesOf(v.Validate(wellFormedRaw(), f)), CodeOptionalSectionsUnmark)

	f = wellFormedFile()
	f.Sections = append(f.Sections, Section{
		Name:      "Optional",
		Canonical: SectionOptional,
		Text:      "Extra reading, around 3000 tokens.",
		Line:      40,
	})
	assert.NotContains(t, codesOf(v.Validate(wellFormedRaw(), f)), CodeOptionalSectionsUnmark)
}

func TestValidate_JargonWithoutDefinition(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	f := wellFormedFile()
	f.Sections[2].Text = "Servers negotiate via SCRAM before authenticating."
	assert.Contains(t, codesOf(v.Validate(wellFormedRaw(), f)), CodeJargonWithoutDefinition)

	f = wellFormedFile()
	f.Sections[2].Text = "Servers negotiate via SCRAM (salted challenge response) before authenticating. SCRAM is standard."
	assert.NotContains(t, codesOf(v.Validate(wellFormedRaw(), f)), CodeJargonWithoutDefinition)
}
