package composer

import "path/filepath"

// platformSpec is one host-platform configuration record. Exactly one record
// applies per compose pass, keyed by GOOS; there is no fallthrough between
// records.
type platformSpec struct {
	feature string
	apply   func(st *State)
}

// Header trees the system compiler needs on macOS hosts.
const (
	xcodeCxxInclude = "/Applications/Xcode.app/Contents/Developer/Toolchains/XcodeDefault.xctoolchain/usr/include/c++/v1"
	xcodeSdkInclude = "/Applications/Xcode.app/Contents/Developer/Platforms/MacOSX.platform/Developer/SDKs/MacOSX.sdk/usr/include/"
)

// platforms enumerates the supported host operating systems. Each record
// extends exactly one library-search variable with the SYCL libs dir.
var platforms = map[string]platformSpec{
	"linux": {
		feature: "linux",
		apply: func(st *State) {
			if st.Site.Sycl.UseLibcxx {
				st.Features.Add("libcxx")
			}
			st.Env.Propagate("LD_LIBRARY_PATH")
			st.Env.AppendPath("LD_LIBRARY_PATH", st.Site.Sycl.LibsDir)
		},
	},
	"windows": {
		feature: "windows",
		apply: func(st *State) {
			st.Env.Propagate("LIB")
			st.Env.AppendPath("LIB", st.Site.Sycl.LibsDir)
		},
	},
	"darwin": {
		feature: "darwin",
		apply: func(st *State) {
			st.Env.Propagate("CPATH")
			st.Env.AppendPath("CPATH", xcodeCxxInclude)
			st.Env.AppendPath("CPATH", xcodeSdkInclude)
			st.Env.Set("DYLD_LIBRARY_PATH", st.Site.Sycl.LibsDir)
		},
	},
}

// configurePlatform applies the record for the given GOOS and registers its
// feature tag. Unknown platforms get no tag and no library-search edit; the
// suite simply runs without platform-gated tests.
func configurePlatform(st *State, goos string) {
	spec, ok := platforms[goos]
	if !ok {
		return
	}
	st.Features.Add(spec.feature)
	spec.apply(st)
}

// symbolizerPath locates llvm-symbolizer inside the LLVM build bin dir.
func symbolizerPath(binDir string) string {
	return filepath.Join(binDir, "llvm-symbolizer")
}
