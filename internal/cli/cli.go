package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/syclitgo/internal/app"
	"github.com/vk/syclitgo/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList collects repeated flag occurrences.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("syclitgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
syclitgo - Composes the execution environment for a SYCL conformance suite.

Usage:
  syclitgo [options] [TEST_ROOT]

Arguments:
  TEST_ROOT
    Root of the test tree. Overrides the site file's test_root.

Options:
`)
		flagSet.PrintDefaults()
	}

	siteFlag := flagSet.String("site", "", "Path to the HCL site description file.")
	sFlag := flagSet.String("s", "", "Path to the HCL site description file (shorthand).")
	var paramFlags stringList
	flagSet.Var(&paramFlags, "p", "Run parameter as key=value. May be repeated.")
	backendFlag := flagSet.String("backend", "", "Device runtime plugin tests compile against.")
	tripleFlag := flagSet.String("triple", "", "Target triple passed to the compiler.")
	vitisFlag := flagSet.String("vitis", "", "FPGA flow mode: 'off', 'cpu', 'only', or any other value for hardware modes.")
	aieFlag := flagSet.String("aie", "", "AI-engine flow mode: 'off', a mode containing 'aie', or an ACAP mode.")
	filterFlag := flagSet.String("filter", "", "Device filter exported to every test.")
	dumpOnlyFlag := flagSet.Bool("dump-only", false, "Only recognize IR-dump tests; the compiler need not be present.")
	outFlag := flagSet.String("out", "-", "Where to write the profile JSON. '-' is stdout.")
	listTestsFlag := flagSet.Bool("list-tests", false, "Discover and print the test files the profile selects.")
	describeFlag := flagSet.Bool("describe", false, "Print human-readable tables instead of JSON.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	sitePath := *siteFlag
	if sitePath == "" {
		sitePath = *sFlag
	}
	if sitePath == "" {
		slog.Debug("No site path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	params, err := resolveParams(flagSet, paramFlags, *backendFlag, *tripleFlag, *vitisFlag, *aieFlag, *filterFlag, *dumpOnlyFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	appConfig, err := app.NewConfig(app.Config{
		SitePath:  sitePath,
		TestRoot:  flagSet.Arg(0),
		Params:    params,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		OutPath:   *outFlag,
		ListTests: *listTestsFlag,
		Describe:  *describeFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", appConfig)
	return appConfig, false, nil
}

// resolveParams layers the three parameter sources: defaults, repeated -p
// pairs, then explicit flags. Explicit flags win.
func resolveParams(flagSet *flag.FlagSet, pairs []string, backend, triple, vitis, aie, filter string, dumpOnly bool) (config.Params, error) {
	raw, err := config.ParsePairs(pairs)
	if err != nil {
		return config.Params{}, err
	}
	params, err := config.DecodeParams(config.DefaultParams(), raw)
	if err != nil {
		return config.Params{}, err
	}

	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["backend"] {
		params.Backend = backend
	}
	if set["triple"] {
		params.Triple = triple
	}
	if set["vitis"] {
		params.Vitis = vitis
	}
	if set["aie"] {
		params.Aie = aie
	}
	if set["filter"] {
		params.Filter = filter
	}
	if set["dump-only"] {
		params.DumpOnly = dumpOnly
	}
	return params, nil
}
