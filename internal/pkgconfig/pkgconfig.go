// Package pkgconfig shells out to pkg-config for optional library probes.
package pkgconfig

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Flags queries pkg-config for the link and compile flags of a package. A
// non-zero exit (package absent, tool missing) is returned as an error; the
// caller decides whether that is fatal. Output is the raw flag line with the
// trailing newline stripped.
func Flags(ctx context.Context, pkg string) (string, error) {
	out, err := exec.CommandContext(ctx, "pkg-config", "--libs", "--cflags", pkg).Output()
	if err != nil {
		return "", fmt.Errorf("pkg-config probe for %s failed: %w", pkg, err)
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}
