// internal/recommendation/engine.go
package recommendation

// Label is one of the fixed career categories a Recommender can produce.
type Label string

const (
	LabelSoftwareDeveloper Label = "Software Developer"
	LabelUIUXDesigner      Label = "UI/UX Designer"
	LabelEducator          Label = "Educator"
	LabelGeneralAnalyst    Label = "General Analyst"
)

// Labels lists every label in rule order.
var Labels = []Label{
	LabelSoftwareDeveloper,
	LabelUIUXDesigner,
	LabelEducator,
	LabelGeneralAnalyst,
}

func (l Label) String() string {
	return string(l)
}

// Recommender maps a profile to a single label. Implementations must be safe
// for concurrent use.
type Recommender interface {
	Recommend(profile Profile) Label
}

// RecommenderFunc adapts a plain function to the Recommender interface.
type RecommenderFunc func(profile Profile) Label

func (f RecommenderFunc) Recommend(profile Profile) Label {
	return f(profile)
}

// RuleEngine is the placeholder decision chain used until a scoring model
// replaces it. First match wins; qualification is not consulted.
type RuleEngine struct{}

func NewRuleEngine() *RuleEngine {
	return &RuleEngine{}
}

func (RuleEngine) Recommend(profile Profile) Label {
	switch {
	case contains(profile.Interests, "coding") || contains(profile.Skills, "programming"):
		return LabelSoftwareDeveloper
	case contains(profile.Interests, "design"):
		return LabelUIUXDesigner
	case contains(profile.Interests, "teaching"):
		return LabelEducator
	default:
		return LabelGeneralAnalyst
	}
}

// contains is exact, case-sensitive element equality.
func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
