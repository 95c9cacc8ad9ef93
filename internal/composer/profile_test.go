package composer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/syclitgo/internal/config"
	"github.com/vk/syclitgo/internal/testutil"
)

func TestProfile_MarshalJSON(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context(t)

	c := newTestComposer("linux", NewVitisFlow(), NewAieFlow())
	profile, err := c.Compose(ctx, testSite(), config.DefaultParams(), baseAmbient())
	require.NoError(t, err)

	data, err := json.Marshal(profile)
	require.NoError(t, err)

	var decoded struct {
		Suffixes         []string          `json:"suffixes"`
		Excludes         []string          `json:"excludes"`
		Features         []string          `json:"features"`
		Substitutions    map[string]string `json:"substitutions"`
		Env              []string          `json:"env"`
		MaxTestTimeSecs  int64             `json:"max_test_time_secs"`
		RequiresCompiler bool              `json:"requires_compiler"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, profile.Suffixes, decoded.Suffixes)
	assert.Contains(t, decoded.Features, "linux")
	assert.Contains(t, decoded.Substitutions, "%sycl_triple")
	assert.Equal(t, int64(600), decoded.MaxTestTimeSecs)
	assert.True(t, decoded.RequiresCompiler)
	assert.NotEmpty(t, decoded.Env)
}
