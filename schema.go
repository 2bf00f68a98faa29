package docstratum

import "strings"

// Canonical llms.txt section names validated across 450+ projects.
// Some names are aliases or variants of the same logical section; the
// validator normalizes to the primary name via CanonicalSectionFromName.
type CanonicalSection string

const (
	SectionMasterIndex     CanonicalSection = "Master Index"
	SectionLLMInstructions CanonicalSection = "LLM Instructions"
	SectionGettingStarted  CanonicalSection = "Getting Started"
	SectionCoreConcepts    CanonicalSection = "Core Concepts"
	SectionAPIReference    CanonicalSection = "API Reference"
	SectionExamples        CanonicalSection = "Examples"
	SectionConfiguration   CanonicalSection = "Configuration"
	SectionAdvancedTopics  CanonicalSection = "Advanced Topics"
	SectionTroubleshooting CanonicalSection = "Troubleshooting"
	SectionFAQ             CanonicalSection = "FAQ"
	SectionOptional        CanonicalSection = "Optional"
)

// CanonicalSections lists all canonical names in their canonical ordering
// sequence, with Optional last.
var CanonicalSections = []CanonicalSection{
	SectionMasterIndex,
	SectionLLMInstructions,
	SectionGettingStarted,
	SectionCoreConcepts,
	SectionAPIReference,
	SectionExamples,
	SectionConfiguration,
	SectionAdvancedTopics,
	SectionTroubleshooting,
	SectionFAQ,
	SectionOptional,
}

// SectionNameAliases maps common lowercase section heading variants to
// their canonical name. The validator uses this to recognize non-standard
// but equivalent names before emitting W002.
var SectionNameAliases = map[string]CanonicalSection{
	"table of contents":          SectionMasterIndex,
	"toc":                        SectionMasterIndex,
	"index":                      SectionMasterIndex,
	"docs":                       SectionMasterIndex,
	"documentation":              SectionMasterIndex,
	"instructions":               SectionLLMInstructions,
	"agent instructions":         SectionLLMInstructions,
	"quickstart":                 SectionGettingStarted,
	"quick start":                SectionGettingStarted,
	"installation":               SectionGettingStarted,
	"setup":                      SectionGettingStarted,
	"concepts":                   SectionCoreConcepts,
	"key concepts":               SectionCoreConcepts,
	"fundamentals":               SectionCoreConcepts,
	"api":                        SectionAPIReference,
	"reference":                  SectionAPIReference,
	"endpoints":                  SectionAPIReference,
	"usage":                      SectionExamples,
	"use cases":                  SectionExamples,
	"tutorials":                  SectionExamples,
	"recipes":                    SectionExamples,
	"config":                     SectionConfiguration,
	"settings":                   SectionConfiguration,
	"options":                    SectionConfiguration,
	"advanced":                   SectionAdvancedTopics,
	"internals":                  SectionAdvancedTopics,
	"debugging":                  SectionTroubleshooting,
	"common issues":              SectionTroubleshooting,
	"known issues":               SectionTroubleshooting,
	"frequently asked questions": SectionFAQ,
	"supplementary":              SectionOptional,
	"appendix":                   SectionOptional,
	"extras":                     SectionOptional,
}

// CanonicalSectionOrder assigns each canonical section its position in the
// 10-step ordering sequence. Optional has no fixed position, it is always
// last and therefore absent from this map.
var CanonicalSectionOrder = map[CanonicalSection]int{
	SectionMasterIndex:     1,
	SectionLLMInstructions: 2,
	SectionGettingStarted:  3,
	SectionCoreConcepts:    4,
	SectionAPIReference:    5,
	SectionExamples:        6,
	SectionConfiguration:   7,
	SectionAdvancedTopics:  8,
	SectionTroubleshooting: 9,
	SectionFAQ:             10,
}

// CanonicalSectionFromName normalizes a section heading to a canonical name.
// Matching is case-insensitive and falls back to the alias table.
func CanonicalSectionFromName(name string) (CanonicalSection, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	for _, s := range CanonicalSections {
		if strings.ToLower(string(s)) == trimmed {
			return s, true
		}
	}
	if s, ok := SectionNameAliases[trimmed]; ok {
		return s, true
	}
	return "", false
}

// TokenBudgetTier defines one of the three enforced token budget ranges.
type TokenBudgetTier struct {
	Name         string
	MinTokens    int
	MaxTokens    int
	UseCase      string
	FileStrategy string
}

var TokenBudgetTiers = map[string]TokenBudgetTier{
	"standard": {
		Name:         "Standard",
		MinTokens:    1_500,
		MaxTokens:    4_500,
		UseCase:      "Small projects, <100 pages, <5 features",
		FileStrategy: "single",
	},
	"comprehensive": {
		Name:         "Comprehensive",
		MinTokens:    4_500,
		MaxTokens:    12_000,
		UseCase:      "Medium projects, 100-500 pages, 5-20 features",
		FileStrategy: "dual (index + full)",
	},
	"full": {
		Name:         "Full",
		MinTokens:    12_000,
		MaxTokens:    50_000,
		UseCase:      "Large projects, 500+ pages, 20+ features",
		FileStrategy: "multi (master + per-service)",
	},
}

// TierForTokens picks the budget tier whose range covers the given token
// estimate. Estimates above the Full tier still report "full", they are
// flagged by the validator instead.
func TierForTokens(tokens int) string {
	switch {
	case tokens <= TokenBudgetTiers["standard"].MaxTokens:
		return "standard"
	case tokens <= TokenBudgetTiers["comprehensive"].MaxTokens:
		return "comprehensive"
	default:
		return "full"
	}
}

// Token zone thresholds. These define zones where decomposition of the
// file into a tiered strategy is recommended.
const (
	TokenZoneOptimal     = 20_000  // no decomposition needed
	TokenZoneGood        = 50_000  // consider dual-file strategy
	TokenZoneDegradation = 100_000 // tiering strongly recommended
	TokenZoneAntiPattern = 500_000 // exceeds all current context windows
)

// AntiPatternCategory groups anti-patterns by how they feed the composite
// scoring pipeline: critical findings gate the composite score, structural
// and content findings reduce their respective dimensions, strategic
// findings are flat deductions.
type AntiPatternCategory string

const (
	AntiPatternCritical   AntiPatternCategory = "critical"
	AntiPatternStructural AntiPatternCategory = "structural"
	AntiPatternContent    AntiPatternCategory = "content"
	AntiPatternStrategic  AntiPatternCategory = "strategic"
)

var AntiPatternCategories = []AntiPatternCategory{
	AntiPatternCritical,
	AntiPatternStructural,
	AntiPatternContent,
	AntiPatternStrategic,
}

// AntiPatternID identifies one of the 22 cataloged anti-patterns.
// Format: AP-{CATEGORY}-{NUMBER}. Each maps to a CHECK-NNN detection rule.
type AntiPatternID string

const (
	APCrit001 AntiPatternID = "AP-CRIT-001" // Ghost File
	APCrit002 AntiPatternID = "AP-CRIT-002" // Structure Chaos
	APCrit003 AntiPatternID = "AP-CRIT-003" // Encoding Disaster
	APCrit004 AntiPatternID = "AP-CRIT-004" // Link Void

	APStruct001 AntiPatternID = "AP-STRUCT-001" // Sitemap Dump
	APStruct002 AntiPatternID = "AP-STRUCT-002" // Orphaned Sections
	APStruct003 AntiPatternID = "AP-STRUCT-003" // Duplicate Identity
	APStruct004 AntiPatternID = "AP-STRUCT-004" // Section Shuffle
	APStruct005 AntiPatternID = "AP-STRUCT-005" // Naming Nebula

	APCont001 AntiPatternID = "AP-CONT-001" // Copy-Paste Plague
	APCont002 AntiPatternID = "AP-CONT-002" // Blank Canvas
	APCont003 AntiPatternID = "AP-CONT-003" // Jargon Jungle
	APCont004 AntiPatternID = "AP-CONT-004" // Link Desert
	APCont005 AntiPatternID = "AP-CONT-005" // Outdated Oracle
	APCont006 AntiPatternID = "AP-CONT-006" // Example Void
	APCont007 AntiPatternID = "AP-CONT-007" // Formulaic Description
	APCont008 AntiPatternID = "AP-CONT-008" // Silent Agent
	APCont009 AntiPatternID = "AP-CONT-009" // Versionless Drift

	APStrat001 AntiPatternID = "AP-STRAT-001" // Automation Obsession
	APStrat002 AntiPatternID = "AP-STRAT-002" // Monolith Monster
	APStrat003 AntiPatternID = "AP-STRAT-003" // Meta-Documentation Spiral
	APStrat004 AntiPatternID = "AP-STRAT-004" // Preference Trap
)

// AntiPatternEntry is a registry entry for a single anti-pattern.
type AntiPatternEntry struct {
	ID          AntiPatternID
	Name        string
	Category    AntiPatternCategory
	CheckID     string
	Description string
}

// AntiPatternRegistry catalogs all 22 anti-patterns across the four
// severity categories.
var AntiPatternRegistry = []AntiPatternEntry{
	// Critical (4), prevent LLM consumption entirely.
	{APCrit001, "Ghost File", AntiPatternCritical, "CHECK-001",
		"Empty or near-empty file that exists but provides no value"},
	{APCrit002, "Structure Chaos", AntiPatternCritical, "CHECK-002",
		"File lacks recognizable Markdown structure (no headers, no sections)"},
	{APCrit003, "Encoding Disaster", AntiPatternCritical, "CHECK-003",
		"Non-UTF-8 encoding or mixed line endings that break parsers"},
	{APCrit004, "Link Void", AntiPatternCritical, "CHECK-004",
		"All or most links are broken, empty, or malformed"},

	// Structural (5), break navigation.
	{APStruct001, "Sitemap Dump", AntiPatternStructural, "CHECK-005",
		"Entire sitemap dumped as flat link list with no organization"},
	{APStruct002, "Orphaned Sections", AntiPatternStructural, "CHECK-006",
		"Sections with headers but no links or content"},
	{APStruct003, "Duplicate Identity", AntiPatternStructural, "CHECK-007",
		"Multiple sections with identical or near-identical names"},
	{APStruct004, "Section Shuffle", AntiPatternStructural, "CHECK-008",
		"Sections in illogical order (e.g., Advanced before Getting Started)"},
	{APStruct005, "Naming Nebula", AntiPatternStructural, "CHECK-009",
		"Section names that are vague, inconsistent, or non-standard"},

	// Content (9), degrade quality.
	{APCont001, "Copy-Paste Plague", AntiPatternContent, "CHECK-010",
		"Large blocks of content duplicated from other sources without curation"},
	{APCont002, "Blank Canvas", AntiPatternContent, "CHECK-011",
		"Sections with placeholder text or no meaningful content"},
	{APCont003, "Jargon Jungle", AntiPatternContent, "CHECK-012",
		"Heavy use of domain jargon without definitions"},
	{APCont004, "Link Desert", AntiPatternContent, "CHECK-013",
		"Links without descriptions (bare URL lists)"},
	{APCont005, "Outdated Oracle", AntiPatternContent, "CHECK-014",
		"Content references deprecated or outdated information"},
	{APCont006, "Example Void", AntiPatternContent, "CHECK-015",
		"No code examples despite being a technical project"},
	{APCont007, "Formulaic Description", AntiPatternContent, "CHECK-019",
		"Auto-generated descriptions with identical patterns (Mintlify risk)"},
	{APCont008, "Silent Agent", AntiPatternContent, "CHECK-020",
		"No LLM-facing guidance despite being an AI documentation file"},
	{APCont009, "Versionless Drift", AntiPatternContent, "CHECK-021",
		"No version or date metadata, impossible to assess freshness"},

	// Strategic (4), undermine long-term value.
	{APStrat001, "Automation Obsession", AntiPatternStrategic, "CHECK-016",
		"Fully auto-generated with no human curation or review"},
	{APStrat002, "Monolith Monster", AntiPatternStrategic, "CHECK-017",
		"Single file exceeding 100K tokens with no decomposition"},
	{APStrat003, "Meta-Documentation Spiral", AntiPatternStrategic, "CHECK-018",
		"File documents itself or the llms.txt standard rather than the project"},
	{APStrat004, "Preference Trap", AntiPatternStrategic, "CHECK-022",
		"Content crafted to manipulate LLM behavior (trust laundering)"},
}

// EstimateTokens approximates the token count of raw contents. Uses the
// common chars/4 heuristic so budget checks do not need a model tokenizer.
func EstimateTokens(contents []byte) int {
	return len([]rune(string(contents))) / 4
}
