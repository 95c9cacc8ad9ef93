package composer

import (
	"context"
	"time"

	"github.com/vk/syclitgo/internal/config"
)

// State is the mutable working set of one compose pass. The composer and the
// accelerator flows fill it in; Compose freezes it into a Profile at the end.
type State struct {
	Site    *config.Site
	Params  config.Params
	Ambient map[string]string

	Suffixes []string
	Excludes []string
	Features *Features
	Subs     *Substitutions
	Env      *Overlay

	// ExtraClangFlags is the split form of the site's extra compiler flags,
	// possibly extended with injected defaults (e.g. an offload arch).
	ExtraClangFlags []string

	// AccRunPrefix is the command fragment prepended to every device-test
	// invocation. CPU-only modes replace it with a non-executing print.
	AccRunPrefix string

	// ExtraCompileFlags is the fragment bound to the extra-compile-flags
	// placeholder. CPU-only modes force a syntax-check-only flag here.
	ExtraCompileFlags string

	// Timeout is the per-test wall clock limit chosen so far. Flows override
	// it with their phase tiers.
	Timeout time.Duration

	// RequiresCompiler is false only in dump-only mode, where the external
	// compiler does not have to be present.
	RequiresCompiler bool
}

// Exclude appends directory patterns to the exclusion list.
func (st *State) Exclude(dirs ...string) {
	st.Excludes = append(st.Excludes, dirs...)
}

// Flow configures one accelerator pipeline (or records its absence). Each
// flow sees the full state and must handle its own "off" case, so toggling a
// flow on and off stays localized to one implementation.
type Flow interface {
	// Name identifies the flow in logs and registry errors.
	Name() string

	// Configure applies the flow's feature tags, exclusions, substitutions,
	// and environment edits to the state. A missing-environment condition is
	// a fatal configuration error, not a per-test failure.
	Configure(ctx context.Context, st *State) error
}
