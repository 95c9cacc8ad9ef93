// Package config defines the format-agnostic site model and run parameters
// consumed by the composer, plus the Loader interface implemented by
// format-specific loaders (currently HCL).
package config
