// Package app wires the application together: logger construction, site
// loading, flow registration, the compose pass, and output emission.
package app
