package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Params are the per-invocation knobs that select what the suite targets.
// They come from CLI flags and repeated "-p key=value" pairs.
type Params struct {
	// Backend names the device runtime plugin tests compile against.
	Backend string `mapstructure:"backend"`

	// Triple is the target triple passed to the compiler.
	Triple string `mapstructure:"triple"`

	// Vitis selects the FPGA flow: "off", "cpu", "only", or any other
	// non-off value for the hardware and emulation modes.
	Vitis string `mapstructure:"vitis"`

	// Aie selects the AI-engine flow: "off", a mode containing "aie"
	// (including "aie_no_device"), or anything else for the ACAP sub-flow.
	Aie string `mapstructure:"aie"`

	// Filter is the device filter exported to every executed test.
	Filter string `mapstructure:"filter"`

	// DumpOnly restricts the suite to IR-dump tests that do not need the
	// compiler to be present.
	DumpOnly bool `mapstructure:"dump_only"`
}

// DefaultParams returns the params used when no flag or pair overrides them.
func DefaultParams() Params {
	return Params{
		Backend: "PI_OPENCL",
		Triple:  "spir64-unknown-unknown",
		Vitis:   "off",
		Aie:     "off",
		Filter:  "opencl",
	}
}

// ParsePairs splits repeated "key=value" arguments into a map, rejecting
// malformed entries and duplicate keys.
func ParsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed param %q: want key=value", pair)
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("duplicate param %q", key)
		}
		out[key] = val
	}
	return out, nil
}

// DecodeParams overlays raw key=value pairs onto base. Decoding is weakly
// typed so "dump_only=1" and "dump_only=true" both work, matching how the
// pairs arrive from shell wrappers.
func DecodeParams(base Params, raw map[string]string) (Params, error) {
	params := base
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &params,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Params{}, fmt.Errorf("failed to build param decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Params{}, fmt.Errorf("failed to decode params: %w", err)
	}
	return params, nil
}

// VitisEnabled reports whether any Vitis mode is active.
func (p Params) VitisEnabled() bool { return p.Vitis != "off" }

// AieEnabled reports whether any AI-engine mode is active.
func (p Params) AieEnabled() bool { return p.Aie != "off" }
