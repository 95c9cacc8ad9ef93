// Package composer builds the execution environment for one invocation of
// the conformance suite: which file suffixes are tests, which directories are
// skipped, which feature tags gate individual tests, the placeholder
// substitution table, and the environment overlay applied to every spawned
// test process.
//
// A compose pass is a single deterministic decision tree over the site
// description, the run params, and a snapshot of the ambient environment. The
// resulting Profile is immutable; the surrounding framework owns it after
// Compose returns.
package composer
