package config

// Site is the unified, format-agnostic representation of a toolchain site
// description: where the compiler, runtimes, and headers under test live, and
// which optional backends the build enabled. It is immutable for the duration
// of one compose pass.
type Site struct {
	Toolchain   Toolchain
	Sycl        Sycl
	IncludeDirs IncludeDirs
	Backends    Backends

	// TestRoot is the root of the test tree that discovery walks.
	TestRoot string

	// ExtraEnvironment holds "VAR=value" entries applied to every spawned
	// test process. An empty value means the variable is explicitly unset.
	ExtraEnvironment []string
}

// Toolchain locates the compiler binaries under test.
type Toolchain struct {
	Clang           string
	ToolsDir        string
	ToolsSrcDir     string
	LlvmBuildBinDir string
	LlvmBuildLibDir string
}

// Sycl locates the SYCL runtime artifacts of the build.
type Sycl struct {
	ObjRoot         string
	SourceDir       string
	Include         string
	LibsDir         string
	ThreadsLib      string
	UseLibcxx       bool
	ExtraClangFlags string
}

// IncludeDirs locates the per-backend header trees.
type IncludeDirs struct {
	Opencl        string
	LevelZero     string
	CudaToolkit   string
	OpenclLibsDir string
}

// Backends records which optional device backends the toolchain build
// enabled. Each enabled backend contributes a feature tag.
type Backends struct {
	Cuda          bool
	Hip           bool
	EsimdEmulator bool
}
