// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ContainsRecommendCareer(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	activity, err := reg.Find("recommend-career")
	require.NoError(t, err)
	assert.Equal(t, "career.recommendation.recommend", activity.ID)
	assert.Equal(t, "object", activity.InputSchema["type"])
	assert.Contains(t, activity.ErrorCodes, "INPUT_SHAPE_INVALID")
}

func TestFind_Unknown(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	_, err = reg.Find("calculate-match-score")
	assert.Error(t, err)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"2","activities":[{"id":"a.b.c","taskType":"x"}]}`), 0o600))

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2", reg.Version)

	_, err = reg.Find("x")
	assert.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
