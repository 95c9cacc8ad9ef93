package composer

import "fmt"

// Substitutions maps placeholder tokens (e.g. "%sycl_triple") to the literal
// command-line fragments they expand to. Placeholders are unique: a second
// Add of the same token is a configuration bug and fails loudly rather than
// silently shadowing the first value.
type Substitutions struct {
	order  []string
	values map[string]string
}

// NewSubstitutions creates an empty substitution table.
func NewSubstitutions() *Substitutions {
	return &Substitutions{values: make(map[string]string)}
}

// Add registers a placeholder. It returns an error on a duplicate token.
func (s *Substitutions) Add(placeholder, value string) error {
	if _, dup := s.values[placeholder]; dup {
		return fmt.Errorf("duplicate substitution %q", placeholder)
	}
	s.order = append(s.order, placeholder)
	s.values[placeholder] = value
	return nil
}

// Get returns the value for a placeholder.
func (s *Substitutions) Get(placeholder string) (string, bool) {
	v, ok := s.values[placeholder]
	return v, ok
}

// Placeholders returns all tokens in insertion order.
func (s *Substitutions) Placeholders() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of registered placeholders.
func (s *Substitutions) Len() int {
	return len(s.order)
}
