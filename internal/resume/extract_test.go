// internal/resume/extract_test.go
package resume

import (
	"testing"

	"career-workers/internal/resume/resumetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"lower cases", "Programming DESIGN", []string{"programming", "design"}},
		{"splits on punctuation and digits", "go,python;c++ 2019-teaching", []string{"go", "python", "c", "teaching"}},
		{"dedupes in order", "coding design Coding design", []string{"coding", "design"}},
		{"keeps non ascii letters", "Café réseau", []string{"café", "réseau"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokens(tt.text))
		})
	}
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.4\n")))
	assert.False(t, IsPDF([]byte("PK\x03\x04")))
	assert.False(t, IsPDF(nil))
}

func TestExtractText_Errors(t *testing.T) {
	_, err := ExtractText(nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = ExtractText([]byte("plain text resume"))
	assert.ErrorIs(t, err, ErrNotPDF)

	_, err = ExtractText([]byte("%PDF-1.4\nthis is not a real pdf body"))
	assert.Error(t, err)
}

func TestSkills_PropagatesErrors(t *testing.T) {
	skills, err := Skills([]byte("not a pdf"))
	require.Error(t, err)
	assert.Nil(t, skills)
}

func TestExtractText_ValidDocument(t *testing.T) {
	text, err := ExtractText(resumetest.PDF("Jane Doe", "Skills: programming, Design (UI)"))
	require.NoError(t, err)
	assert.Contains(t, text, "programming")
	assert.Contains(t, text, "Design (UI)")
}

func TestSkills_ValidDocument(t *testing.T) {
	skills, err := Skills(resumetest.PDF("Skills: programming, Design"))
	require.NoError(t, err)
	assert.Equal(t, []string{"skills", "programming", "design"}, skills)
}
