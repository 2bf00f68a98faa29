package docstratum

// Grade bands for the composite quality score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Composite scoring weights. Structural and content health carry 40 points
// each, strategic health the remaining 20. A critical anti-pattern hit gates
// the composite at criticalCap regardless of the dimension scores.
const (
	structuralWeight = 40
	contentWeight    = 40
	strategicWeight  = 20
	criticalCap      = 29

	structuralDeduction = 8
	contentDeduction    = 5
	strategicDeduction  = 10
)

// ScoreCard is the quality assessment of a validated source.
type ScoreCard struct {
	Structural   int             `json:"structural"`
	Content      int             `json:"content"`
	Strategic    int             `json:"strategic"`
	Composite    int             `json:"composite"`
	Grade        Grade           `json:"grade"`
	AntiPatterns []AntiPatternID `json:"anti_patterns,omitempty"`
}

// codeAntiPatterns maps diagnostic codes to the anti-pattern they evidence.
// Codes without an entry affect no scoring dimension on their own.
var codeAntiPatterns = map[Code]AntiPatternID{
	CodeEmptyFile:               APCrit001,
	CodeInvalidMarkdown:         APCrit002,
	CodeInvalidEncoding:         APCrit003,
	CodeInvalidLineEndings:      APCrit003,
	CodeBrokenLinks:             APCrit004,
	CodeNonCanonicalSectionName: APStruct005,
	CodeSectionOrderNonCanon:    APStruct004,
	CodeNoMasterIndex:           APStruct002,
	CodeEmptySections:           APCont002,
	CodeLinkMissingDescription:  APCont004,
	CodeNoCodeExamples:          APCont006,
	CodeFormulaicDescriptions:   APCont007,
	CodeNoLLMInstructions:       APCont008,
	CodeMissingVersionMetadata:  APCont009,
	CodeExceedsSizeLimit:        APStrat002,
	CodeType2FullDetected:       APStrat002,
}

var antiPatternIndex = func() map[AntiPatternID]AntiPatternEntry {
	m := make(map[AntiPatternID]AntiPatternEntry, len(AntiPatternRegistry))
	for _, e := range AntiPatternRegistry {
		m[e.ID] = e
	}
	return m
}()

// Score runs the composite scoring pipeline over validation findings.
// Each distinct anti-pattern is counted once no matter how many findings
// evidence it.
func Score(diags []Diagnostic) ScoreCard {
	var (
		hits = make([]AntiPatternID, 0, len(diags))
		seen = map[AntiPatternID]struct{}{}
	)
	for _, d := range diags {
		id, ok := codeAntiPatterns[d.Code]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		hits = append(hits, id)
	}

	card := ScoreCard{
		Structural:   structuralWeight,
		Content:      contentWeight,
		Strategic:    strategicWeight,
		AntiPatterns: hits,
	}

	critical := false
	for _, id := range hits {
		switch antiPatternIndex[id].Category {
		case AntiPatternCritical:
			critical = true
		case AntiPatternStructural:
			card.Structural -= structuralDeduction
		case AntiPatternContent:
			card.Content -= contentDeduction
		case AntiPatternStrategic:
			card.Strategic -= strategicDeduction
		}
	}

	card.Structural = max(card.Structural, 0)
	card.Content = max(card.Content, 0)
	card.Strategic = max(card.Strategic, 0)

	card.Composite = card.Structural + card.Content + card.Strategic
	if critical && card.Composite > criticalCap {
		card.Composite = criticalCap
	}
	card.Grade = gradeFor(card.Composite)

	return card
}

func gradeFor(composite int) Grade {
	switch {
	case composite >= 90:
		return GradeA
	case composite >= 75:
		return GradeB
	case composite >= 60:
		return GradeC
	case composite >= 45:
		return GradeD
	default:
		return GradeF
	}
}
