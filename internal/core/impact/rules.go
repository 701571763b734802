package impact

import "strings"

// Valence is the classified direction of a strategy or reaction.
type Valence string

const (
	Positive Valence = "positive"
	Negative Valence = "negative"
	Neutral  Valence = "neutral"
)

// Tag families used by the classification rules.
const (
	FamilyEngagement  = "ENGAGEMENT"
	FamilyOpening     = "OPENING"
	FamilyExplanation = "EXPLANATION"
	FamilyReflection  = "REFLECTION"
	FamilyClient      = "CLIENT"
	FamilyOther       = "OTHER"
)

// Specific labels that override their family's default valence.
const (
	LabelRefletJe       = "reflet-je"
	LabelRefletVous     = "reflet-vous"
	LabelClientPositive = "client positive"
	LabelClientNegative = "client negative"
)

// Speaker identifiers carried by tag definitions.
const (
	SpeakerConseiller = "conseiller"
	SpeakerClient     = "client"
)

// strategyFamilies is the allow-list of families that carry a conseiller
// communication strategy.
var strategyFamilies = map[string]bool{
	FamilyEngagement:  true,
	FamilyOpening:     true,
	FamilyExplanation: true,
	FamilyReflection:  true,
}

// strategyRule matches one step of the strategy classification. The rules
// are evaluated in slice order and the first match wins; the ordering is
// handed down from the product rule list and must not be reordered without
// product sign-off.
type strategyRule struct {
	family  string
	label   string
	valence Valence
}

var strategyRules = []strategyRule{
	{family: FamilyExplanation, valence: Negative},
	{label: LabelRefletJe, valence: Negative},
	{family: FamilyEngagement, valence: Positive},
	{family: FamilyOpening, valence: Positive},
	{label: LabelRefletVous, valence: Positive},
}

// classifyStrategy returns the valence of a conseiller tag.
func classifyStrategy(def TagDefinition) Valence {
	label := normalizeLabel(def.Label)
	for _, rule := range strategyRules {
		if rule.family != "" && def.Family == rule.family {
			return rule.valence
		}
		if rule.label != "" && label == rule.label {
			return rule.valence
		}
	}
	return Neutral
}

// classifyReaction returns the valence of a client tag.
func classifyReaction(def TagDefinition) Valence {
	switch normalizeLabel(def.Label) {
	case LabelClientPositive:
		return Positive
	case LabelClientNegative:
		return Negative
	default:
		return Neutral
	}
}

// isCoherent reports whether a strategy produced its intended reaction.
// Neutral on either side never counts as coherent.
func isCoherent(strategy, reaction Valence) bool {
	return (strategy == Positive && reaction == Positive) ||
		(strategy == Negative && reaction == Negative)
}

// normalizeLabel makes label comparison robust to the case and whitespace
// differences between the tag editor and the store.
func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
