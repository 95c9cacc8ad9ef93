package composer

import (
	"fmt"
	"strings"
)

// MissingEnv returns the names from required that are absent from env, in
// the order they were required. An empty result means validation passed.
func MissingEnv(env map[string]string, required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := env[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// requireEnv validates that every required variable is present in the
// ambient snapshot and propagates them into the overlay. The returned error
// names every missing variable at once so an operator can fix a broken shell
// setup in one round trip.
func requireEnv(st *State, flow string, required []string) error {
	if missing := MissingEnv(st.Ambient, required); len(missing) > 0 {
		return fmt.Errorf("cannot configure tests for %s: missing environment variables: %s",
			flow, strings.Join(missing, ", "))
	}
	st.Env.Propagate(required...)
	return nil
}
