package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NoSitePrintsUsage(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse([]string{}, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Help(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	_, shouldExit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse([]string{"--site", "site.hcl"}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "site.hcl", cfg.SitePath)
	assert.Equal(t, "PI_OPENCL", cfg.Params.Backend)
	assert.Equal(t, "spir64-unknown-unknown", cfg.Params.Triple)
	assert.Equal(t, "off", cfg.Params.Vitis)
	assert.Equal(t, "off", cfg.Params.Aie)
	assert.Equal(t, "opencl", cfg.Params.Filter)
	assert.False(t, cfg.Params.DumpOnly)
	assert.Equal(t, "-", cfg.OutPath)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_ShorthandSite(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"-s", "site.hcl"}, out)
	require.NoError(t, err)
	assert.Equal(t, "site.hcl", cfg.SitePath)
}

func TestParse_ParamPairs(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"--site", "site.hcl", "-p", "vitis=cpu", "-p", "dump_only=1"}, out)
	require.NoError(t, err)

	assert.Equal(t, "cpu", cfg.Params.Vitis)
	assert.True(t, cfg.Params.DumpOnly)
}

func TestParse_ExplicitFlagBeatsPair(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"--site", "site.hcl", "-p", "triple=spir64-unknown-unknown", "--triple", "amdgcn-amd-amdhsa"}, out)
	require.NoError(t, err)
	assert.Equal(t, "amdgcn-amd-amdhsa", cfg.Params.Triple)
}

func TestParse_TestRootArgument(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"--site", "site.hcl", "/work/sycl/test"}, out)
	require.NoError(t, err)
	assert.Equal(t, "/work/sycl/test", cfg.TestRoot)
}

func TestParse_InvalidLogFormat(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	_, _, err := Parse([]string{"--site", "site.hcl", "--log-format", "xml"}, out)
	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	_, _, err := Parse([]string{"--site", "site.hcl", "--log-level", "verbose"}, out)
	require.Error(t, err)
}

func TestParse_MalformedParam(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	_, _, err := Parse([]string{"--site", "site.hcl", "-p", "vitis"}, out)
	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_UnknownParamKey(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	_, _, err := Parse([]string{"--site", "site.hcl", "-p", "bogus=1"}, out)
	require.Error(t, err)
}
