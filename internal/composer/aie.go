package composer

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/syclitgo/internal/ctxlog"
)

// aieRequiredEnv are the license and tooling locations both AI-engine
// sub-flows need. The sub-flow's build-script variable is validated together
// with these so one error names everything that is missing.
var aieRequiredEnv = []string{
	"HOME",
	"USER",
	"XILINXD_LICENSE_FILE",
	"LM_LICENSE_FILE",
	"RDI_INTERNAL_ALLOW_PARTIAL_DATA",
	"AIE_ROOT",
	"CHESSROOT",
}

// aieExcludes are the device-independent suites that make no sense under the
// AI-engine toolchain; they are skipped wholesale in any AIE/ACAP mode.
var aieExcludes = []string{
	"abi", "basic_tests", "CMakeLists.txt", "extensions", "gdb",
	"invoke_simd", "matrix", "optional_kernel_features", "scheduler",
	"type_traits", "vitis", "check_device_code", "esimd", "fpga_tests",
	"kernel_param", "multi_ptr", "regression", "tools", "Unit", "warnings",
}

// AieFlow configures the AI-engine accelerator pipeline, covering the two
// mutually exclusive sub-flows: single-tile AIE and full-array ACAP.
type AieFlow struct{}

// NewAieFlow creates the flow.
func NewAieFlow() *AieFlow { return &AieFlow{} }

// Name implements Flow.
func (f *AieFlow) Name() string { return "aie" }

// Configure implements Flow.
func (f *AieFlow) Configure(ctx context.Context, st *State) error {
	logger := ctxlog.FromContext(ctx)

	if !st.Params.AieEnabled() {
		st.Exclude("aie", "acap")
		return nil
	}
	mode := st.Params.Aie
	logger.Info("AI-engine mode active.", "mode", mode)

	st.Exclude(aieExcludes...)

	// The mode string picks the sub-flow; each references its own external
	// build script.
	scriptVar := "ACAP_MAKE_SH"
	if strings.Contains(mode, "aie") {
		scriptVar = "AIE_MAKE_SH"
	}
	required := make([]string, 0, len(aieRequiredEnv)+1)
	required = append(required, aieRequiredEnv...)
	required = append(required, scriptVar)
	if err := requireEnv(st, "AIE or ACAP", required); err != nil {
		return err
	}

	var err error
	if scriptVar == "AIE_MAKE_SH" {
		err = f.configureAie(ctx, st)
	} else {
		err = f.configureAcap(ctx, st)
	}
	if err != nil {
		return err
	}

	if runScript, ok := st.Ambient["AIE_RUN_ON_DEVICE_SH"]; ok {
		logger.Info("Using device run script.", "path", runScript)
		if err := st.Subs.Add("%run_on_device", runScript); err != nil {
			return err
		}
	}

	ifRunOnDevice := " "
	if mode == "aie_no_device" {
		st.Features.Add("no_device")
		ifRunOnDevice = "true "
	}
	if err := st.Subs.Add("%if_run_on_device", ifRunOnDevice); err != nil {
		return err
	}

	st.Env.Set("ACAP_MAKE_IN_PARALLEL", "1")
	return nil
}

// configureAie sets up the single-tile sub-flow.
func (f *AieFlow) configureAie(ctx context.Context, st *State) error {
	logger := ctxlog.FromContext(ctx)
	makeSh := st.Ambient["AIE_MAKE_SH"]
	logger.Info("Using AIE make script.", "path", makeSh)

	st.Features.Add("aie")
	st.Exclude("acap")
	return st.Subs.Add("%aie_clang", fmt.Sprintf("%s %s++", makeSh, st.Site.Toolchain.Clang))
}

// configureAcap sets up the full-array sub-flow, optionally wiring result
// collection into a fresh output directory.
func (f *AieFlow) configureAcap(ctx context.Context, st *State) error {
	logger := ctxlog.FromContext(ctx)
	makeSh := st.Ambient["ACAP_MAKE_SH"]
	logger.Info("Using ACAP make script.", "path", makeSh)

	st.Features.Add("acap")
	st.Exclude("aie")
	if err := st.Subs.Add("%acap_clang", fmt.Sprintf("%s %s++", makeSh, st.Site.Toolchain.Clang)); err != nil {
		return err
	}

	// Result collection is a no-op print unless a destination is configured.
	addResult := "echo"
	if dir, ok := st.Ambient["ACAP_COLLECT_TEST_BIN_PATH"]; ok {
		logger.Info("Collecting test binaries.", "dir", dir)
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to clear collection dir %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create collection dir %s: %w", dir, err)
		}
		addResult = fmt.Sprintf("cp --target-directory=%s ", dir)
	}
	return st.Subs.Add("%add_acap_result", addResult)
}
