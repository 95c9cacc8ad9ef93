package composer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vk/syclitgo/internal/ctxlog"
	"github.com/vk/syclitgo/internal/pkgconfig"
)

// vitisRequiredEnv must all be present before any Vitis mode can run.
var vitisRequiredEnv = []string{
	"HOME",
	"USER",
	"XILINX_XRT",
	"XILINX_PLATFORM",
	"EMCONFIG_PATH",
	"LIBRARY_PATH",
	"XILINX_VITIS",
}

// vitisOnlyExcludes are the non-FPGA suites skipped when only the Vitis flow
// is of interest.
var vitisOnlyExcludes = []string{"basic_tests", "extentions", "online_compiler", "plugins"}

// Per-phase wall clock tiers. Hardware synthesis is glacial; emulation less
// so.
const (
	vitisHwTimeout    = 9 * time.Hour
	vitisHwEmuTimeout = time.Hour
	vitisSwEmuTimeout = 20 * time.Minute
)

// VitisFlow configures the FPGA accelerator pipeline. The XRT runtime does
// not tolerate concurrent users of the device, so hardware modes wrap every
// test invocation in an exclusive cross-process file lock plus a PID
// namespace and an inner timeout.
type VitisFlow struct {
	probe         func(ctx context.Context, pkg string) (string, error)
	lockDir       string
	semaphorePath string
}

// NewVitisFlow creates the flow with its production probe and lock paths.
func NewVitisFlow() *VitisFlow {
	return &VitisFlow{
		probe:         pkgconfig.Flags,
		lockDir:       os.TempDir(),
		semaphorePath: "/dev/shm/sem.sycl_vxx.py",
	}
}

// Name implements Flow.
func (f *VitisFlow) Name() string { return "vitis" }

// Configure implements Flow.
func (f *VitisFlow) Configure(ctx context.Context, st *State) error {
	logger := ctxlog.FromContext(ctx)

	if !st.Params.VitisEnabled() {
		st.Exclude("vitis")
		return nil
	}
	mode := st.Params.Vitis
	logger.Info("Vitis mode active.", "mode", mode)

	// Validate the shell setup before emitting any run prefix, reporting
	// every missing variable in one error.
	if err := requireEnv(st, "Vitis", vitisRequiredEnv); err != nil {
		return err
	}

	st.Features.Add("vitis")
	if mode == "cpu" {
		st.Features.Add("vitis_cpu")
	}
	logger.Debug("Vitis features registered.", "features", st.Features.List())

	if err := f.probeOpencv(ctx, st); err != nil {
		return err
	}

	if mode == "only" {
		st.Exclude(vitisOnlyExcludes...)
	}

	switch mode {
	case "cpu":
		// Nothing is fully compiled, so nothing must be executed: the run
		// prefix prints the command and the compile is syntax-check only.
		st.AccRunPrefix = "echo "
		st.ExtraCompileFlags = " -fsyntax-only "
	default:
		if err := f.hardwareRunPrefix(ctx, st); err != nil {
			return err
		}
	}

	return f.phaseGates(st)
}

// probeOpencv asks pkg-config for an optional image-processing library. A
// missing library silently disables the dependent tests.
func (f *VitisFlow) probeOpencv(ctx context.Context, st *State) error {
	logger := ctxlog.FromContext(ctx)
	flags, err := f.probe(ctx, "opencv4")
	if err != nil {
		logger.Info("opencv4 not found, image tests disabled.", "error", err)
		return nil
	}
	st.Features.Add("opencv4")
	return st.Subs.Add("%opencv4_flags", flags)
}

// hardwareRunPrefix builds the serialized, namespaced, time-limited command
// prefix used by the hardware and emulation modes, cleaning up artifacts a
// crashed previous run may have left behind.
func (f *VitisFlow) hardwareRunPrefix(ctx context.Context, st *State) error {
	logger := ctxlog.FromContext(ctx)

	// The compilation wrapper leaves a named semaphore behind when a test is
	// killed; a stale one deadlocks the next run.
	if err := os.Remove(f.semaphorePath); err == nil {
		logger.Warn("Removed stale compile semaphore.", "path", f.semaphorePath)
	}

	lock := filepath.Join(f.lockDir, fmt.Sprintf("xrt-%s.lock", st.Ambient["USER"]))
	if err := os.Remove(lock); err == nil {
		logger.Warn("Removed stale device lock.", "path", lock)
	}

	// hw_emu is very slow, so it gets the longer inner timeout.
	inner := 300
	if strings.Contains(st.Params.Triple, "hw_emu") {
		inner = 600
	}

	st.AccRunPrefix = "env --unset=XCL_EMULATION_MODE " +
		st.AccRunPrefix +
		"flock --exclusive " + lock + " " +
		"unshare --pid --map-current-user --kill-child " +
		fmt.Sprintf("timeout %d env ", inner)
	return nil
}

// phaseGates binds the per-phase run gates and the matching wall clock tier.
// A gate is empty when its phase is active and a no-op print otherwise.
func (f *VitisFlow) phaseGates(st *State) error {
	runIfHw := "echo"
	runIfHwEmu := "echo"
	runIfSwEmu := "echo"

	switch {
	case strings.Contains(st.Params.Triple, "_hw-"):
		st.Timeout = vitisHwTimeout
		runIfHw = ""
	case strings.Contains(st.Params.Triple, "_hw_emu"):
		st.Timeout = vitisHwEmuTimeout
		runIfHwEmu = ""
	case strings.Contains(st.Params.Triple, "_sw_emu"):
		st.Timeout = vitisSwEmuTimeout
		runIfSwEmu = ""
	}

	runIfNotCpu := ""
	if st.Params.Vitis == "cpu" {
		runIfNotCpu = "echo"
	}

	for _, sub := range []struct{ token, value string }{
		{"%run_if_hw", runIfHw},
		{"%run_if_hw_emu", runIfHwEmu},
		{"%run_if_sw_emu", runIfSwEmu},
		{"%run_if_not_cpu", runIfNotCpu},
	} {
		if err := st.Subs.Add(sub.token, sub.value); err != nil {
			return err
		}
	}
	return nil
}
