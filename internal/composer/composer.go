package composer

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/vk/syclitgo/internal/config"
	"github.com/vk/syclitgo/internal/ctxlog"
)

// defaultTimeout is the per-test wall clock limit outside the Vitis phase
// tiers.
const defaultTimeout = 10 * time.Minute

// dumpSuffix is the only suffix recognized in dump-only mode.
const dumpSuffix = ".dump"

// testSuffixes are the file extensions treated as tests in a full run.
var testSuffixes = []string{".c", ".cpp", ".dump", ".test"}

// baselineExcludes are helper and vendor-internal directories skipped in
// every mode.
var baselineExcludes = []string{"Inputs", "feature-tests", "disabled", "_x", ".Xil", ".run", "span"}

// propagatedEnv are the ambient variables every test process inherits when
// present.
var propagatedEnv = []string{
	"PATH",
	"OCL_ICD_FILENAMES",
	"SYCL_DEVICE_ALLOWLIST",
	"SYCL_CONFIG_FILE_NAME",
	"SYCL_PI_TRACE",
	"XILINX_XRT",
}

// testModeEnv pins the compilation wrapper into its test behavior for every
// spawned process.
var testModeEnv = []struct{ name, value string }{
	{"SYCL_VXX_PRINT_CMD", "True"},
	{"SYCL_VXX_SERIALIZE_VITIS_COMP", "True"},
	{"XRT_PCIE_HW_EMU_FORCE_SHUTDOWN", "True"},
	{"SYCL_VXX_TEST_MODE", "True"},
}

// Composer runs the compose pass over a fixed, ordered list of accelerator
// flows.
type Composer struct {
	flows    []Flow
	goos     string
	lookPath func(file string) (string, error)
}

// New creates a Composer for the current host. The flows are configured in
// the order given.
func New(goos string, flows ...Flow) *Composer {
	return &Composer{
		flows:    flows,
		goos:     goos,
		lookPath: exec.LookPath,
	}
}

// Compose evaluates the decision tree once and freezes the result. It never
// mutates site or ambient; all side effects (stale artifact cleanup, result
// directory recreation) belong to the flows.
func (c *Composer) Compose(ctx context.Context, site *config.Site, params config.Params, ambient map[string]string) (*Profile, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Composing test environment.", "backend", params.Backend, "triple", params.Triple)

	st := &State{
		Site:             site,
		Params:           params,
		Ambient:          ambient,
		Features:         NewFeatures(),
		Subs:             NewSubstitutions(),
		Env:              NewOverlay(ambient),
		Timeout:          defaultTimeout,
		RequiresCompiler: !params.DumpOnly,
	}

	if params.DumpOnly {
		st.Suffixes = []string{dumpSuffix}
		logger.Info("Dump-only mode: compiler not required.")
	} else {
		st.Suffixes = append([]string(nil), testSuffixes...)
	}

	st.Exclude(baselineExcludes...)

	st.Env.Propagate(propagatedEnv...)
	if err := applyExtraEnvironment(ctx, st); err != nil {
		return nil, err
	}
	for _, e := range testModeEnv {
		st.Env.Set(e.name, e.value)
	}

	configurePlatform(st, c.goos)
	st.Env.AppendPath("PATH", site.Toolchain.ToolsDir)
	st.Env.Set("LLVM_SYMBOLIZER_PATH", symbolizerPath(site.Toolchain.LlvmBuildBinDir))

	if err := addPathSubstitutions(st); err != nil {
		return nil, err
	}

	st.ExtraClangFlags = strings.Fields(site.Sycl.ExtraClangFlags)
	configureBackends(ctx, st)

	if err := addCompilerSubstitutions(st); err != nil {
		return nil, err
	}

	st.AccRunPrefix = fmt.Sprintf("env SYCL_DEVICE_FILTER=%s ", params.Filter)

	for _, flow := range c.flows {
		if err := flow.Configure(ctx, st); err != nil {
			return nil, fmt.Errorf("failed to configure %s flow: %w", flow.Name(), err)
		}
	}

	if err := st.Subs.Add("%ACC_RUN_PLACEHOLDER", st.AccRunPrefix); err != nil {
		return nil, err
	}
	if err := st.Subs.Add("%EXTRA_COMPILE_FLAGS", st.ExtraCompileFlags); err != nil {
		return nil, err
	}

	profile := &Profile{
		Suffixes:         st.Suffixes,
		Excludes:         st.Excludes,
		Features:         st.Features,
		Substitutions:    st.Subs,
		Env:              st.Env,
		RequiresCompiler: st.RequiresCompiler,
	}

	// The limit is only recorded when the host can actually enforce it.
	if _, err := c.lookPath("timeout"); err == nil {
		profile.MaxTestTime = st.Timeout
	} else {
		logger.Debug("No timeout binary on PATH, per-test wall clock limit disabled.")
	}

	logger.Info("Compose pass finished.",
		"features", st.Features.List(),
		"excludes", len(st.Excludes),
		"substitutions", st.Subs.Len(),
	)
	return profile, nil
}

// applyExtraEnvironment applies the site's VAR=value entries. An empty value
// unsets the variable for every test process.
func applyExtraEnvironment(ctx context.Context, st *State) error {
	logger := ctxlog.FromContext(ctx)
	if len(st.Site.ExtraEnvironment) > 0 {
		logger.Info("Applying extra environment variables.", "count", len(st.Site.ExtraEnvironment))
	}
	for _, entry := range st.Site.ExtraEnvironment {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return fmt.Errorf("malformed extra_environment entry %q: want VAR=value", entry)
		}
		if value == "" {
			logger.Info("Unsetting variable for tests.", "name", name)
			st.Env.Unset(name)
			continue
		}
		logger.Info("Setting variable for tests.", "name", name, "value", value)
		st.Env.Set(name, value)
	}
	return nil
}

// addPathSubstitutions registers the fixed placeholder table derived from
// the site description.
func addPathSubstitutions(st *State) error {
	site := st.Site
	hostOnly := fmt.Sprintf(
		"-std=c++17 -Xclang -fsycl-is-host -isystem %s -isystem %s -isystem %s -isystem %s",
		site.Sycl.Include,
		site.IncludeDirs.LevelZero,
		site.IncludeDirs.Opencl,
		site.Sycl.Include+"/sycl/",
	)
	syclLib := "-lsycl"
	if st.Features.Has("windows") {
		syclLib = " -lsycl6"
	}

	subs := []struct{ token, value string }{
		{"%threads_lib", site.Sycl.ThreadsLib},
		{"%sycl_libs_dir", site.Sycl.LibsDir},
		{"%sycl_include", site.Sycl.Include},
		{"%sycl_source_dir", site.Sycl.SourceDir},
		{"%opencl_libs_dir", site.IncludeDirs.OpenclLibsDir},
		{"%level_zero_include_dir", site.IncludeDirs.LevelZero},
		{"%opencl_include_dir", site.IncludeDirs.Opencl},
		{"%cuda_toolkit_include", site.IncludeDirs.CudaToolkit},
		{"%sycl_tools_src_dir", site.Toolchain.ToolsSrcDir},
		{"%llvm_build_lib_dir", site.Toolchain.LlvmBuildLibDir},
		{"%llvm_build_bin_dir", site.Toolchain.LlvmBuildBinDir},
		{"%clang_offload_bundler", filepath.Join(site.Toolchain.LlvmBuildBinDir, "clang-offload-bundler")},
		{"%llvm-spirv", filepath.Join(site.Toolchain.ToolsDir, "llvm-spirv")},
		{"%fsycl-host-only", hostOnly},
		{"%sycl_lib", syclLib},
		{"%sycl_be", st.Params.Backend},
		{"%sycl_triple", st.Params.Triple},
	}
	for _, sub := range subs {
		if err := st.Subs.Add(sub.token, sub.value); err != nil {
			return err
		}
	}
	return nil
}

// addCompilerSubstitutions binds the compiler placeholders, carrying any
// extra clang flags (including injected backend defaults). Dump-only mode
// has no compiler to bind.
func addCompilerSubstitutions(st *State) error {
	if !st.RequiresCompiler {
		return nil
	}
	clang := st.Site.Toolchain.Clang
	flags := ""
	if len(st.ExtraClangFlags) > 0 {
		flags = " " + strings.Join(st.ExtraClangFlags, " ")
	}
	if err := st.Subs.Add("%clang", clang+flags); err != nil {
		return err
	}
	return st.Subs.Add("%clangxx", clang+"++"+flags)
}
