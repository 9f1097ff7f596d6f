// Package config holds source-file conventions and the optional per-project
// build configuration (spec §6: source files end in `.rl`; a production
// driver "additionally emits a .wat file alongside the source" and a "web"
// profile may swap the WASI imports for a single env.js_print). Grounded on
// the teacher's internal/config/constants.go (source-extension constants,
// package-level name constants).
package config

// SourceFileExt is the canonical source extension (spec §6).
const SourceFileExt = ".rl"

// TrimSourceExt removes the .rl extension from a filename, if present.
func TrimSourceExt(name string) string {
	if len(name) >= len(SourceFileExt) && name[len(name)-len(SourceFileExt):] == SourceFileExt {
		return name[:len(name)-len(SourceFileExt)]
	}
	return name
}

// HasSourceExt reports whether path ends with the recognized source
// extension.
func HasSourceExt(path string) bool {
	return len(path) >= len(SourceFileExt) && path[len(path)-len(SourceFileExt):] == SourceFileExt
}

// Built-in context name, usable with `with` regardless of a program's own
// context declarations (spec §4.3.9).
const ArenaContextName = "Arena"
