package hcl

import (
	"errors"

	"github.com/vk/syclitgo/internal/config"
	"github.com/vk/syclitgo/internal/schema"
)

// translateSite converts the HCL-specific site schema into the agnostic
// model, filling defaults for the optional blocks.
func translateSite(s *schema.SiteFile) (*config.Site, error) {
	if s.Toolchain == nil {
		return nil, errors.New("missing required 'toolchain' block")
	}
	if s.Sycl == nil {
		return nil, errors.New("missing required 'sycl' block")
	}

	site := &config.Site{
		TestRoot:         s.TestRoot,
		ExtraEnvironment: s.ExtraEnvironment,
		Toolchain: config.Toolchain{
			Clang:           s.Toolchain.Clang,
			ToolsDir:        s.Toolchain.ToolsDir,
			ToolsSrcDir:     s.Toolchain.ToolsSrcDir,
			LlvmBuildBinDir: s.Toolchain.LlvmBuildBinDir,
			LlvmBuildLibDir: s.Toolchain.LlvmBuildLibDir,
		},
		Sycl: config.Sycl{
			ObjRoot:         s.Sycl.ObjRoot,
			SourceDir:       s.Sycl.SourceDir,
			Include:         s.Sycl.Include,
			LibsDir:         s.Sycl.LibsDir,
			ThreadsLib:      s.Sycl.ThreadsLib,
			UseLibcxx:       s.Sycl.UseLibcxx,
			ExtraClangFlags: s.Sycl.ExtraClangFlags,
		},
	}

	if s.IncludeDirs != nil {
		site.IncludeDirs = config.IncludeDirs{
			Opencl:        s.IncludeDirs.Opencl,
			LevelZero:     s.IncludeDirs.LevelZero,
			CudaToolkit:   s.IncludeDirs.CudaToolkit,
			OpenclLibsDir: s.IncludeDirs.OpenclLibsDir,
		}
	}
	if s.Backends != nil {
		site.Backends = config.Backends{
			Cuda:          s.Backends.Cuda,
			Hip:           s.Backends.Hip,
			EsimdEmulator: s.Backends.EsimdEmulator,
		}
	}
	return site, nil
}
