package extract

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mindforge-ai/noesis/internal/domain"
)

// Extraction is the shared front end output every engine consumes: premises
// with certainty, detected connectives, abstract concepts, and a bounded
// complexity score. All scores are deterministic functions of the input
// text; proposition IDs are the only non-reproducible field.
type Extraction struct {
	Premises    []domain.Proposition `json:"premises"`
	Connectives []string             `json:"connectives,omitempty"`
	Concepts    []string             `json:"concepts,omitempty"`
	Complexity  float64              `json:"complexity"`
}

var connectiveWords = []string{"and", "or", "not", "if", "then", "iff", "all", "some"}

var abstractConcepts = []string{
	"consciousness", "intelligence", "knowledge", "truth", "reality",
	"existence", "mind", "meaning", "causality", "freedom", "justice",
	"beauty", "infinity", "emergence", "complexity",
}

// Extract splits input into premises and scores them. It performs no I/O
// and uses no randomness, so identical input always yields identical
// certainty and complexity values.
func Extract(input string) Extraction {
	sentences := SplitSentences(input)

	premises := make([]domain.Proposition, 0, len(sentences))
	for _, s := range sentences {
		kind := classifyPremise(s)
		premises = append(premises, domain.Proposition{
			ID:        uuid.New(),
			Text:      s,
			Certainty: premiseCertainty(s, kind),
			Kind:      kind,
			Source:    "extraction",
		})
	}

	connectives := detectConnectives(input)
	concepts := detectConcepts(input)

	return Extraction{
		Premises:    premises,
		Connectives: connectives,
		Concepts:    concepts,
		Complexity:  complexityScore(input, len(connectives), len(concepts)),
	}
}

// SplitSentences breaks text on sentence boundaries and trims the fragments.
func SplitSentences(input string) []string {
	parts := strings.FieldsFunc(input, func(r rune) bool {
		return r == '.' || r == ';' || r == '!' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func classifyPremise(sentence string) domain.PremiseKind {
	lower := strings.ToLower(sentence)
	switch {
	case hasAnyWord(lower, "all", "every"):
		return domain.PremiseFact
	case hasAnyWord(lower, "if", "when"):
		return domain.PremiseHypothesis
	case hasAnyWord(lower, "some", "many"):
		return domain.PremiseObservation
	default:
		return domain.PremiseAssumption
	}
}

// premiseCertainty derives certainty from specificity cues: the premise
// kind's baseline, a copula bonus, a length bonus, and a question penalty.
func premiseCertainty(sentence string, kind domain.PremiseKind) float64 {
	c := kind.InitialCertainty()

	lower := strings.ToLower(sentence)
	if hasAnyWord(lower, "is", "are") {
		c += 0.1
	}
	if strings.Contains(sentence, "?") {
		c -= 0.2
	}

	words := len(strings.Fields(sentence))
	lengthBonus := float64(words) / 100
	if lengthBonus > 0.1 {
		lengthBonus = 0.1
	}
	c += lengthBonus

	return domain.Clamp01(c)
}

func detectConnectives(input string) []string {
	lower := strings.ToLower(input)
	var found []string
	for _, w := range connectiveWords {
		if hasWord(lower, w) {
			found = append(found, w)
		}
	}
	return found
}

func detectConcepts(input string) []string {
	lower := strings.ToLower(input)
	var found []string
	for _, c := range abstractConcepts {
		if strings.Contains(lower, c) {
			found = append(found, c)
		}
	}
	return found
}

// complexityScore blends input length, connective count and abstract-concept
// count into a bounded score.
func complexityScore(input string, connectives, concepts int) float64 {
	if strings.TrimSpace(input) == "" {
		return 0
	}
	lengthTerm := float64(len(input)) / 500
	if lengthTerm > 0.4 {
		lengthTerm = 0.4
	}
	return domain.Clamp01(0.1 + lengthTerm + 0.08*float64(connectives) + 0.1*float64(concepts))
}

// KeywordRelevance scores how strongly the input touches a keyword set:
// matched keywords over total, with a floor bump per match so short keyword
// lists still register. Used for domain selection in cross-domain reasoning.
func KeywordRelevance(input string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(input)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	return domain.Clamp01(0.25 + float64(matched)/float64(len(keywords)))
}

func hasWord(lower, word string) bool {
	for _, f := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	}) {
		if f == word {
			return true
		}
	}
	return false
}

func hasAnyWord(lower string, words ...string) bool {
	for _, w := range words {
		if hasWord(lower, w) {
			return true
		}
	}
	return false
}
