package composer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/syclitgo/internal/config"
	"github.com/vk/syclitgo/internal/testutil"
)

// aieAmbient returns an ambient snapshot satisfying both sub-flows' required
// variables.
func aieAmbient() map[string]string {
	env := baseAmbient()
	env["XILINXD_LICENSE_FILE"] = "2100@licenses"
	env["LM_LICENSE_FILE"] = "2100@licenses"
	env["RDI_INTERNAL_ALLOW_PARTIAL_DATA"] = "yes"
	env["AIE_ROOT"] = "/opt/xilinx/aie"
	env["CHESSROOT"] = "/opt/xilinx/chess"
	env["AIE_MAKE_SH"] = "/opt/scripts/aie_make.sh"
	env["ACAP_MAKE_SH"] = "/opt/scripts/acap_make.sh"
	return env
}

func TestAie_Off_ExcludesBothSubFlows(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context(t)

	c := newTestComposer("linux", newTestVitisFlow(t), NewAieFlow())
	profile, err := c.Compose(ctx, testSite(), config.DefaultParams(), baseAmbient())
	require.NoError(t, err)

	assert.Contains(t, profile.Excludes, "aie")
	assert.Contains(t, profile.Excludes, "acap")
}

func TestAie_MissingEnvIsFatal(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context(t)

	params := config.DefaultParams()
	params.Aie = "aie"

	c := newTestComposer("linux", newTestVitisFlow(t), NewAieFlow())
	_, err := c.Compose(ctx, testSite(), params, baseAmbient())
	require.Error(t, err)

	for _, name := range []string{"XILINXD_LICENSE_FILE", "LM_LICENSE_FILE", "RDI_INTERNAL_ALLOW_PARTIAL_DATA", "AIE_ROOT", "CHESSROOT", "AIE_MAKE_SH"} {
		assert.Contains(t, err.Error(), name)
	}
}

func TestAie_SubFlow(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context(t)

	params := config.DefaultParams()
	params.Aie = "aie"

	c := newTestComposer("linux", newTestVitisFlow(t), NewAieFlow())
	profile, err := c.Compose(ctx, testSite(), params, aieAmbient())
	require.NoError(t, err)

	assert.True(t, profile.Features.Has("aie"))
	assert.False(t, profile.Features.Has("acap"))
	assert.Contains(t, profile.Excludes, "acap")
	assert.NotContains(t, profile.Excludes, "aie")

	clang, ok := profile.Substitutions.Get("%aie_clang")
	require.True(t, ok)
	assert.Equal(t, "/opt/scripts/aie_make.sh /build/bin/clang++", clang)

	// The non-AIE suites are skipped wholesale.
	for _, dir := range aieExcludes {
		assert.Contains(t, profile.Excludes, dir)
	}

	value, ok := profile.Env.Value("ACAP_MAKE_IN_PARALLEL")
	require.True(t, ok)
	assert.Equal(t, "1", value)

	gate, ok := profile.Substitutions.Get("%if_run_on_device")
	require.True(t, ok)
	assert.Equal(t, " ", gate)
}

func TestAie_NoDeviceMode(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context(t)

	params := config.DefaultParams()
	params.Aie = "aie_no_device"

	c := newTestComposer("linux", newTestVitisFlow(t), NewAieFlow())
	profile, err := c.Compose(ctx, testSite(), params, aieAmbient())
	require.NoError(t, err)

	assert.True(t, profile.Features.Has("no_device"))
	gate, _ := profile.Substitutions.Get("%if_run_on_device")
	assert.Equal(t, "true ", gate)
}

func TestAie_RunOnDeviceScript(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context(t)

	ambient := aieAmbient()
	ambient["AIE_RUN_ON_DEVICE_SH"] = "/opt/scripts/run_on_device.sh"
	params := config.DefaultParams()
	params.Aie = "aie"

	c := newTestComposer("linux", newTestVitisFlow(t), NewAieFlow())
	profile, err := c.Compose(ctx, testSite(), params, ambient)
	require.NoError(t, err)

	script, ok := profile.Substitutions.Get("%run_on_device")
	require.True(t, ok)
	assert.Equal(t, "/opt/scripts/run_on_device.sh", script)
}

func TestAcap_SubFlow(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context(t)

	params := config.DefaultParams()
	params.Aie = "acap"

	c := newTestComposer("linux", newTestVitisFlow(t), NewAieFlow())
	profile, err := c.Compose(ctx, testSite(), params, aieAmbient())
	require.NoError(t, err)

	assert.True(t, profile.Features.Has("acap"))
	assert.False(t, profile.Features.Has("aie"))
	assert.Contains(t, profile.Excludes, "aie")
	assert.NotContains(t, profile.Excludes, "acap")

	clang, ok := profile.Substitutions.Get("%acap_clang")
	require.True(t, ok)
	assert.Equal(t, "/opt/scripts/acap_make.sh /build/bin/clang++", clang)

	// Collection is disabled, so the placeholder is a no-op print.
	addResult, ok := profile.Substitutions.Get("%add_acap_result")
	require.True(t, ok)
	assert.Equal(t, "echo", addResult)
}

func TestAcap_ResultCollection(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context(t)

	collectDir := filepath.Join(t.TempDir(), "results")
	// Pre-populate so the flow has something to clear.
	require.NoError(t, os.MkdirAll(collectDir, 0o755))
	stale := filepath.Join(collectDir, "stale.bin")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	ambient := aieAmbient()
	ambient["ACAP_COLLECT_TEST_BIN_PATH"] = collectDir
	params := config.DefaultParams()
	params.Aie = "acap"

	c := newTestComposer("linux", newTestVitisFlow(t), NewAieFlow())
	profile, err := c.Compose(ctx, testSite(), params, ambient)
	require.NoError(t, err)

	addResult, ok := profile.Substitutions.Get("%add_acap_result")
	require.True(t, ok)
	assert.Equal(t, "cp --target-directory="+collectDir+" ", addResult)

	// The directory was cleared and recreated.
	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	info, err := os.Stat(collectDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFlows_DisjointExclusions(t *testing.T) {
	t.Parallel()

	// Enabling one flow must exclude the other flow's directories and keep
	// its own out of the exclusion list.
	t.Run("vitis on", func(t *testing.T) {
		t.Parallel()
		ctx := testutil.Context(t)

		params := config.DefaultParams()
		params.Vitis = "cpu"

		c := newTestComposer("linux", newTestVitisFlow(t), NewAieFlow())
		profile, err := c.Compose(ctx, testSite(), params, vitisAmbient())
		require.NoError(t, err)

		assert.NotContains(t, profile.Excludes, "vitis")
		assert.Contains(t, profile.Excludes, "aie")
		assert.Contains(t, profile.Excludes, "acap")
	})

	t.Run("aie on", func(t *testing.T) {
		t.Parallel()
		ctx := testutil.Context(t)

		params := config.DefaultParams()
		params.Aie = "aie"

		c := newTestComposer("linux", newTestVitisFlow(t), NewAieFlow())
		profile, err := c.Compose(ctx, testSite(), params, aieAmbient())
		require.NoError(t, err)

		assert.NotContains(t, profile.Excludes, "aie")
		assert.Contains(t, profile.Excludes, "vitis")
		assert.Contains(t, profile.Excludes, "acap")
	})
}
