// internal/recommendation/profile.go
package recommendation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const (
	FieldSkills        = "skills"
	FieldInterests     = "interests"
	FieldQualification = "qualification"
)

// Profile is the self-reported input to a Recommender. Absent fields are
// represented by empty values, never nil-vs-empty distinctions.
type Profile struct {
	Skills        []string `json:"skills"`
	Interests     []string `json:"interests"`
	Qualification string   `json:"qualification"`
}

// NewProfile builds a Profile with nil slices normalised to empty ones.
func NewProfile(skills, interests []string, qualification string) Profile {
	if skills == nil {
		skills = []string{}
	}
	if interests == nil {
		interests = []string{}
	}
	return Profile{
		Skills:        skills,
		Interests:     interests,
		Qualification: qualification,
	}
}

// ShapeError reports a field whose value is present but of the wrong type.
type ShapeError struct {
	Field    string
	Expected string
	Got      string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("field %q: expected %s, got %s", e.Field, e.Expected, e.Got)
}

// ProfileFromMap decodes loosely typed input such as job variables or a JSON
// object. Missing or null keys default to empty; a bare string where a list is
// expected is rejected rather than matched as a substring.
func ProfileFromMap(vars map[string]interface{}) (Profile, error) {
	skills, err := stringList(vars, FieldSkills)
	if err != nil {
		return Profile{}, err
	}
	interests, err := stringList(vars, FieldInterests)
	if err != nil {
		return Profile{}, err
	}

	var qualification string
	if raw, ok := vars[FieldQualification]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return Profile{}, &ShapeError{Field: FieldQualification, Expected: "string", Got: fmt.Sprintf("%T", raw)}
		}
		qualification = s
	}

	return NewProfile(skills, interests, qualification), nil
}

func stringList(vars map[string]interface{}, field string) ([]string, error) {
	raw, ok := vars[field]
	if !ok || raw == nil {
		return []string{}, nil
	}

	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &ShapeError{
					Field:    fmt.Sprintf("%s[%d]", field, i),
					Expected: "string",
					Got:      fmt.Sprintf("%T", item),
				}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &ShapeError{Field: field, Expected: "array of strings", Got: fmt.Sprintf("%T", raw)}
	}
}

// ProfileFromForm decodes the comma-separated text fields posted by the career
// form. Items are trimmed and empty items dropped; case is preserved.
func ProfileFromForm(values url.Values) Profile {
	return NewProfile(
		splitFormList(values[FieldSkills]),
		splitFormList(values[FieldInterests]),
		strings.TrimSpace(values.Get(FieldQualification)),
	)
}

func splitFormList(raw []string) []string {
	out := []string{}
	for _, entry := range raw {
		for _, item := range strings.Split(entry, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// WithSkills returns a copy of p with extra skills appended, skipping ones
// already present.
func (p Profile) WithSkills(extra ...string) Profile {
	skills := make([]string, 0, len(p.Skills)+len(extra))
	skills = append(skills, p.Skills...)
	for _, s := range extra {
		if !contains(skills, s) {
			skills = append(skills, s)
		}
	}
	return NewProfile(skills, append([]string{}, p.Interests...), p.Qualification)
}

// Fingerprint is a stable digest of the profile used for cache keys.
func (p Profile) Fingerprint() string {
	data, _ := json.Marshal(NewProfile(p.Skills, p.Interests, p.Qualification))
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
