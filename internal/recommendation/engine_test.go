// internal/recommendation/engine_test.go
package recommendation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Decision Table Tests
// ==========================

func TestRuleEngine_Recommend_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		vars     map[string]interface{}
		expected Label
	}{
		{
			name:     "empty record",
			vars:     map[string]interface{}{},
			expected: LabelGeneralAnalyst,
		},
		{
			name:     "coding interest",
			vars:     map[string]interface{}{"interests": []interface{}{"coding"}},
			expected: LabelSoftwareDeveloper,
		},
		{
			name:     "programming skill",
			vars:     map[string]interface{}{"skills": []interface{}{"programming"}},
			expected: LabelSoftwareDeveloper,
		},
		{
			name:     "design interest",
			vars:     map[string]interface{}{"interests": []interface{}{"design"}},
			expected: LabelUIUXDesigner,
		},
		{
			name:     "design checked before teaching",
			vars:     map[string]interface{}{"interests": []interface{}{"teaching", "design"}},
			expected: LabelUIUXDesigner,
		},
		{
			name:     "qualification only",
			vars:     map[string]interface{}{"qualification": "PhD"},
			expected: LabelGeneralAnalyst,
		},
		{
			name:     "teaching interest",
			vars:     map[string]interface{}{"interests": []interface{}{"teaching"}},
			expected: LabelEducator,
		},
		{
			name: "coding wins over design",
			vars: map[string]interface{}{
				"interests": []interface{}{"design", "coding"},
			},
			expected: LabelSoftwareDeveloper,
		},
		{
			name: "programming wins over teaching",
			vars: map[string]interface{}{
				"skills":    []interface{}{"programming"},
				"interests": []interface{}{"teaching"},
			},
			expected: LabelSoftwareDeveloper,
		},
	}

	engine := NewRuleEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := ProfileFromMap(tt.vars)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, engine.Recommend(profile))
		})
	}
}

func TestRuleEngine_Recommend_ExactMatchOnly(t *testing.T) {
	engine := NewRuleEngine()

	tests := []struct {
		name    string
		profile Profile
	}{
		{"uppercase interest", NewProfile(nil, []string{"Coding"}, "")},
		{"substring interest", NewProfile(nil, []string{"codings"}, "")},
		{"padded skill", NewProfile([]string{" programming"}, nil, "")},
		{"coding as skill", NewProfile([]string{"coding"}, nil, "")},
		{"programming as interest", NewProfile(nil, []string{"programming"}, "")},
		{"design as skill", NewProfile([]string{"design"}, nil, "")},
		{"teaching as skill", NewProfile([]string{"teaching"}, nil, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, LabelGeneralAnalyst, engine.Recommend(tt.profile))
		})
	}
}

func TestRuleEngine_Recommend_QualificationHasNoEffect(t *testing.T) {
	engine := NewRuleEngine()
	profiles := []Profile{
		NewProfile(nil, nil, ""),
		NewProfile([]string{"programming"}, nil, ""),
		NewProfile(nil, []string{"design"}, ""),
		NewProfile(nil, []string{"teaching"}, ""),
		NewProfile([]string{"excel"}, []string{"finance"}, ""),
	}
	qualifications := []string{"", "PhD", "High School", "coding", "design"}

	for _, p := range profiles {
		baseline := engine.Recommend(p)
		for _, q := range qualifications {
			p.Qualification = q
			assert.Equal(t, baseline, engine.Recommend(p), "qualification %q changed result", q)
		}
	}
}

func TestRuleEngine_Recommend_ZeroValueProfile(t *testing.T) {
	assert.Equal(t, LabelGeneralAnalyst, RuleEngine{}.Recommend(Profile{}))
}

func TestRuleEngine_Recommend_Concurrent(t *testing.T) {
	engine := NewRuleEngine()
	profile := NewProfile([]string{"programming"}, []string{"design"}, "BSc")

	var wg sync.WaitGroup
	results := make([]Label, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Recommend(profile)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, LabelSoftwareDeveloper, r)
	}
}

func TestRecommenderFunc(t *testing.T) {
	var rec Recommender = RecommenderFunc(func(Profile) Label { return LabelEducator })
	assert.Equal(t, LabelEducator, rec.Recommend(Profile{}))
}
