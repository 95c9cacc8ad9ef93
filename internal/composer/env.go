package composer

import (
	"fmt"
	"os"
	"sort"
)

// Overlay is the ordered set of environment edits applied to every spawned
// test process. It is built against a snapshot of the ambient environment so
// a compose pass never reads the live process environment directly.
type Overlay struct {
	ambient map[string]string
	values  map[string]string
	unset   map[string]struct{}
	order   []string
}

// NewOverlay creates an overlay over the given ambient snapshot.
func NewOverlay(ambient map[string]string) *Overlay {
	return &Overlay{
		ambient: ambient,
		values:  make(map[string]string),
		unset:   make(map[string]struct{}),
	}
}

// Set assigns a variable, replacing any earlier edit.
func (o *Overlay) Set(name, value string) {
	if _, seen := o.values[name]; !seen {
		o.order = append(o.order, name)
	}
	o.values[name] = value
	delete(o.unset, name)
}

// Unset marks a variable for explicit removal from the test environment.
func (o *Overlay) Unset(name string) {
	delete(o.values, name)
	o.unset[name] = struct{}{}
}

// Propagate copies the named variables from the ambient snapshot into the
// overlay. Absent variables are skipped.
func (o *Overlay) Propagate(names ...string) {
	for _, name := range names {
		if v, ok := o.ambient[name]; ok {
			o.Set(name, v)
		}
	}
}

// AppendPath extends a list-valued variable (PATH and friends) with dir,
// using the host's list separator. The base value is the overlay's current
// entry, falling back to the ambient snapshot.
func (o *Overlay) AppendPath(name, dir string) {
	base, ok := o.values[name]
	if !ok {
		base = o.ambient[name]
	}
	if base == "" {
		o.Set(name, dir)
		return
	}
	o.Set(name, base+string(os.PathListSeparator)+dir)
}

// Value returns the overlay's current entry for a variable.
func (o *Overlay) Value(name string) (string, bool) {
	v, ok := o.values[name]
	return v, ok
}

// IsUnset reports whether the variable is marked for explicit removal.
func (o *Overlay) IsUnset(name string) bool {
	_, ok := o.unset[name]
	return ok
}

// Environ renders the overlay as "KEY=value" pairs in first-set order, the
// shape exec.Cmd.Env and the test framework expect.
func (o *Overlay) Environ() []string {
	out := make([]string, 0, len(o.values))
	for _, name := range o.order {
		if v, ok := o.values[name]; ok {
			out = append(out, fmt.Sprintf("%s=%s", name, v))
		}
	}
	return out
}

// Unsets returns the variables marked for removal, sorted.
func (o *Overlay) Unsets() []string {
	out := make([]string, 0, len(o.unset))
	for name := range o.unset {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
