// internal/version/version.go
package version

// Version is the toolkit release, overridable at build time via
// -ldflags "-X taxoncheck/internal/version.Version=...".
var Version = "0.2.0"
