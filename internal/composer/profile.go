package composer

import (
	"encoding/json"
	"time"
)

// Profile is the frozen result of a compose pass: everything the test
// framework needs to discover, gate, and spawn tests. It is built once and
// never mutated afterwards.
type Profile struct {
	Suffixes      []string
	Excludes      []string
	Features      *Features
	Substitutions *Substitutions

	// Env is the overlay applied to every spawned test process.
	Env *Overlay

	// MaxTestTime is the per-test wall clock limit. Zero means the host
	// cannot enforce one and the framework should not try.
	MaxTestTime time.Duration

	// RequiresCompiler is false in dump-only mode.
	RequiresCompiler bool
}

// profileJSON is the wire shape of a Profile.
type profileJSON struct {
	Suffixes         []string          `json:"suffixes"`
	Excludes         []string          `json:"excludes"`
	Features         []string          `json:"features"`
	Substitutions    map[string]string `json:"substitutions"`
	Env              []string          `json:"env"`
	EnvUnset         []string          `json:"env_unset"`
	MaxTestTimeSecs  int64             `json:"max_test_time_secs"`
	RequiresCompiler bool              `json:"requires_compiler"`
}

// MarshalJSON renders the profile for consumption by the test framework.
func (p *Profile) MarshalJSON() ([]byte, error) {
	subs := make(map[string]string, p.Substitutions.Len())
	for _, token := range p.Substitutions.Placeholders() {
		v, _ := p.Substitutions.Get(token)
		subs[token] = v
	}
	return json.Marshal(profileJSON{
		Suffixes:         p.Suffixes,
		Excludes:         p.Excludes,
		Features:         p.Features.List(),
		Substitutions:    subs,
		Env:              p.Env.Environ(),
		EnvUnset:         p.Env.Unsets(),
		MaxTestTimeSecs:  int64(p.MaxTestTime / time.Second),
		RequiresCompiler: p.RequiresCompiler,
	})
}
