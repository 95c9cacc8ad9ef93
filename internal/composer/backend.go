package composer

import (
	"context"
	"strings"

	"github.com/vk/syclitgo/internal/ctxlog"
)

// tripleSpec is one GPU-vendor configuration record, keyed by the exact
// target triple. A matching record propagates the vendor's toolkit location
// and registers a vendor feature tag; the AMD record also injects a default
// offload architecture when the caller supplied none.
type tripleSpec struct {
	envVar       string
	feature      string
	defaultFlags []string
}

var triples = map[string]tripleSpec{
	"nvptx64-nvidia-cuda": {
		envVar:  "CUDA_PATH",
		feature: "cuda",
	},
	"amdgcn-amd-amdhsa": {
		envVar:  "ROCM_PATH",
		feature: "hip_amd",
		// Compiler-only tests, so any concrete arch works; gfx906 is the
		// suite's fixed default.
		defaultFlags: []string{
			"-Xsycl-target-backend=amdgcn-amd-amdhsa",
			"--offload-arch=gfx906",
		},
	},
}

// configureBackends registers feature tags for the backends the build
// enabled and applies the vendor record matching the target triple.
func configureBackends(ctx context.Context, st *State) {
	logger := ctxlog.FromContext(ctx)

	if st.Site.Backends.Cuda {
		st.Features.Add("cuda_be")
	}
	if st.Site.Backends.Hip {
		st.Features.Add("hip_be")
	}
	if st.Site.Backends.EsimdEmulator {
		st.Features.Add("esimd_emulator_be")
	}

	spec, ok := triples[st.Params.Triple]
	if !ok {
		return
	}
	st.Env.Propagate(spec.envVar)
	st.Features.Add(spec.feature)

	if len(spec.defaultFlags) > 0 && !hasOffloadArch(st.ExtraClangFlags) {
		st.ExtraClangFlags = append(st.ExtraClangFlags, spec.defaultFlags...)
		logger.Debug("Injected default offload arch.", "triple", st.Params.Triple, "flags", spec.defaultFlags)
	}
}

// hasOffloadArch reports whether the caller already picked an offload
// architecture in the extra compiler flags.
func hasOffloadArch(flags []string) bool {
	for _, f := range flags {
		if strings.HasPrefix(f, "--offload-arch") {
			return true
		}
	}
	return false
}
