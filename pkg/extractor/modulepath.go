package extractor

import (
	"path/filepath"
	"strings"

	"github.com/gnana997/callgraph/pkg/parser"
)

// resolveModulePath converts an import/use source string into the
// project file path it most likely refers to, so resolve.Record.
// SourceModule lines up with the FilePath keys FileInput/FileContext are
// indexed by project-wide.
//
// Builds on a relative-join-plus-first-matching-extension guess, extended
// with a known-file-set membership check (when known is non-nil) so the
// guess only "succeeds" against a file that actually exists in the
// project, plus Python/Rust module-path conventions.
func resolveModulePath(fromFile, src string, known map[string]bool, lang parser.Language) string {
	switch lang {
	case parser.LanguagePython:
		return resolvePythonModule(fromFile, src, known)
	case parser.LanguageRust:
		return resolveRustModule(fromFile, src, known)
	default:
		return resolveRelativeModule(fromFile, src, known, jsExtensions)
	}
}

var jsExtensions = []string{".ts", ".tsx", ".d.ts", ".js", ".jsx", ".mjs", ".cjs"}

// resolveRelativeModule handles JS/TS-style "./foo" or "../foo/bar"
// specifiers. Non-relative specifiers (bare package names) are returned
// unresolved, since they name an external package, not a project file.
func resolveRelativeModule(fromFile, src string, known map[string]bool, exts []string) string {
	if !strings.HasPrefix(src, ".") {
		return src
	}
	dir := filepath.Dir(fromFile)
	base := filepath.Clean(filepath.Join(dir, src))

	if known != nil {
		if known[base] {
			return base
		}
		for _, ext := range exts {
			if c := base + ext; known[c] {
				return c
			}
			if c := filepath.Join(base, "index"+ext); known[c] {
				return c
			}
		}
	}
	if filepath.Ext(base) != "" {
		return base
	}
	if len(exts) > 0 {
		return base + exts[0]
	}
	return base
}

// resolvePythonModule handles both relative ("." / ".." prefixed) and
// absolute dotted module paths ("pkg.sub.mod").
func resolvePythonModule(fromFile, src string, known map[string]bool) string {
	dots := 0
	for dots < len(src) && src[dots] == '.' {
		dots++
	}
	rest := src[dots:]
	segments := strings.Split(rest, ".")
	if len(segments) == 1 && segments[0] == "" {
		segments = nil
	}

	var base string
	if dots > 0 {
		dir := filepath.Dir(fromFile)
		for i := 1; i < dots; i++ {
			dir = filepath.Dir(dir)
		}
		base = filepath.Join(append([]string{dir}, segments...)...)
	} else {
		base = filepath.Join(segments...)
	}
	base = filepath.Clean(base)

	if known != nil {
		if c := base + ".py"; known[c] {
			return c
		}
		if c := filepath.Join(base, "__init__.py"); known[c] {
			return c
		}
	}
	return base + ".py"
}

// resolveRustModule handles `crate::`, `self::`, `super::`, and bare
// module-relative `use` paths, mapping `::` separators onto directory
// components and trying both `mod.rs` and `mod_name.rs` layouts.
func resolveRustModule(fromFile, src string, known map[string]bool) string {
	segments := strings.Split(src, "::")
	dir := filepath.Dir(fromFile)

	switch {
	case len(segments) > 0 && segments[0] == "crate":
		segments = segments[1:]
		for d := dir; d != "." && d != "/"; d = filepath.Dir(d) {
			if known != nil && known[filepath.Join(d, "lib.rs")] {
				dir = d
				break
			}
		}
	case len(segments) > 0 && segments[0] == "self":
		segments = segments[1:]
	case len(segments) > 0 && segments[0] == "super":
		for len(segments) > 0 && segments[0] == "super" {
			dir = filepath.Dir(dir)
			segments = segments[1:]
		}
	}
	if len(segments) == 0 {
		return filepath.Clean(dir) + ".rs"
	}

	base := filepath.Join(append([]string{dir}, segments...)...)
	base = filepath.Clean(base)
	if known != nil {
		if c := base + ".rs"; known[c] {
			return c
		}
		if c := filepath.Join(base, "mod.rs"); known[c] {
			return c
		}
	}
	return base + ".rs"
}
