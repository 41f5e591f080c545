// internal/recommendation/profile_test.go
package recommendation

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFromMap_Defaults(t *testing.T) {
	profile, err := ProfileFromMap(map[string]interface{}{})
	require.NoError(t, err)

	assert.NotNil(t, profile.Skills)
	assert.NotNil(t, profile.Interests)
	assert.Empty(t, profile.Skills)
	assert.Empty(t, profile.Interests)
	assert.Equal(t, "", profile.Qualification)
}

func TestProfileFromMap_NullFieldsTreatedAsAbsent(t *testing.T) {
	profile, err := ProfileFromMap(map[string]interface{}{
		"skills":        nil,
		"interests":     nil,
		"qualification": nil,
	})
	require.NoError(t, err)
	assert.Equal(t, NewProfile(nil, nil, ""), profile)
}

func TestProfileFromMap_FromJSON(t *testing.T) {
	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"skills": ["programming", "sql"],
		"interests": ["design"],
		"qualification": "BSc",
		"userId": "user-1"
	}`), &vars))

	profile, err := ProfileFromMap(vars)
	require.NoError(t, err)
	assert.Equal(t, []string{"programming", "sql"}, profile.Skills)
	assert.Equal(t, []string{"design"}, profile.Interests)
	assert.Equal(t, "BSc", profile.Qualification)
}

func TestProfileFromMap_TypedStringSlices(t *testing.T) {
	skills := []string{"programming"}
	profile, err := ProfileFromMap(map[string]interface{}{"skills": skills})
	require.NoError(t, err)

	skills[0] = "mutated"
	assert.Equal(t, []string{"programming"}, profile.Skills)
}

func TestProfileFromMap_ShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		vars  map[string]interface{}
		field string
	}{
		{"skills as bare string", map[string]interface{}{"skills": "programming"}, "skills"},
		{"interests as number", map[string]interface{}{"interests": 42.0}, "interests"},
		{"interests as object", map[string]interface{}{"interests": map[string]interface{}{"a": "b"}}, "interests"},
		{"non-string element", map[string]interface{}{"interests": []interface{}{"coding", 1.0}}, "interests[1]"},
		{"qualification as list", map[string]interface{}{"qualification": []interface{}{"PhD"}}, "qualification"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProfileFromMap(tt.vars)
			require.Error(t, err)

			var shapeErr *ShapeError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, tt.field, shapeErr.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestProfileFromForm(t *testing.T) {
	values := url.Values{
		"skills":        {"programming, SQL ,, "},
		"interests":     {"Design", "teaching"},
		"qualification": {"  MSc  "},
	}

	profile := ProfileFromForm(values)
	assert.Equal(t, []string{"programming", "SQL"}, profile.Skills)
	assert.Equal(t, []string{"Design", "teaching"}, profile.Interests)
	assert.Equal(t, "MSc", profile.Qualification)
}

func TestProfileFromForm_Empty(t *testing.T) {
	profile := ProfileFromForm(url.Values{})
	assert.Equal(t, NewProfile(nil, nil, ""), profile)
	assert.Equal(t, LabelGeneralAnalyst, NewRuleEngine().Recommend(profile))
}

func TestProfile_WithSkills(t *testing.T) {
	base := NewProfile([]string{"sql"}, []string{"design"}, "BSc")
	merged := base.WithSkills("programming", "sql", "go")

	assert.Equal(t, []string{"sql", "programming", "go"}, merged.Skills)
	assert.Equal(t, []string{"sql"}, base.Skills)
	assert.Equal(t, base.Interests, merged.Interests)
	assert.Equal(t, "BSc", merged.Qualification)
}

func TestProfile_Fingerprint(t *testing.T) {
	a := NewProfile([]string{"programming"}, []string{"design"}, "BSc")
	b := Profile{Skills: []string{"programming"}, Interests: []string{"design"}, Qualification: "BSc"}
	c := NewProfile([]string{"programming"}, []string{"design"}, "PhD")

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)

	assert.Equal(t, Profile{}.Fingerprint(), NewProfile(nil, nil, "").Fingerprint())
}
