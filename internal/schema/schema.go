// Package schema defines the HCL shapes of a site file. These structs are
// decode targets only; the hcl package translates them into the agnostic
// config model.
package schema

// SiteFile represents the top-level structure of a site description file.
type SiteFile struct {
	TestRoot         string        `hcl:"test_root"`
	ExtraEnvironment []string      `hcl:"extra_environment,optional"`
	Toolchain        *Toolchain    `hcl:"toolchain,block"`
	Sycl             *Sycl         `hcl:"sycl,block"`
	IncludeDirs      *IncludeDirs  `hcl:"include_dirs,block"`
	Backends         *Backends     `hcl:"backends,block"`
}

// Toolchain is the `toolchain` block: compiler and LLVM build locations.
type Toolchain struct {
	Clang           string `hcl:"clang"`
	ToolsDir        string `hcl:"tools_dir"`
	ToolsSrcDir     string `hcl:"tools_src_dir,optional"`
	LlvmBuildBinDir string `hcl:"llvm_build_bin_dir"`
	LlvmBuildLibDir string `hcl:"llvm_build_lib_dir"`
}

// Sycl is the `sycl` block: runtime artifacts of the build under test.
type Sycl struct {
	ObjRoot         string `hcl:"obj_root"`
	SourceDir       string `hcl:"source_dir,optional"`
	Include         string `hcl:"include"`
	LibsDir         string `hcl:"libs_dir"`
	ThreadsLib      string `hcl:"threads_lib,optional"`
	UseLibcxx       bool   `hcl:"use_libcxx,optional"`
	ExtraClangFlags string `hcl:"extra_clang_flags,optional"`
}

// IncludeDirs is the `include_dirs` block: per-backend header trees.
type IncludeDirs struct {
	Opencl        string `hcl:"opencl,optional"`
	LevelZero     string `hcl:"level_zero,optional"`
	CudaToolkit   string `hcl:"cuda_toolkit,optional"`
	OpenclLibsDir string `hcl:"opencl_libs_dir,optional"`
}

// Backends is the `backends` block: which optional device backends the
// toolchain build enabled.
type Backends struct {
	Cuda          bool `hcl:"cuda,optional"`
	Hip           bool `hcl:"hip,optional"`
	EsimdEmulator bool `hcl:"esimd_emulator,optional"`
}
