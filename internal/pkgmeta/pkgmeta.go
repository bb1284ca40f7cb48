// Package pkgmeta resolves an import specifier to the published package that
// supplies it, for moniker/packageInformation construction (spec §4.4.1).
// It is the domain analogue of the teacher's internal/gomod: it reads an
// already-resolved dependency manifest and never talks to a package
// registry itself (spec.md Non-goals: "does not resolve packages from a
// registry").
package pkgmeta

import "strings"

// Manager names the dependency manager whose lockfile format the versions
// map was read from. "npm" covers npm/yarn/pnpm-compatible lockfiles.
const Manager = "npm"

// Resolver answers whether an import path belongs to a known external
// package, and if so, which one and at what version.
type Resolver interface {
	Resolve(importPath string) (name, version string, ok bool)
}

// Manifest is a Resolver backed by a fixed map from package name to version,
// typically populated from a project's package.json + lockfile at driver
// start-up (mirrors internal/gomod.ListModules reading an already-resolved
// go.mod/go.sum rather than invoking `go mod download` mid-run).
type Manifest struct {
	// Self is this project's own package name, used for export monikers.
	Self string
	// SelfVersion is this project's own published version, used for export
	// packageInformation.
	SelfVersion string
	// Dependencies maps a dependency's package name to its resolved version.
	Dependencies map[string]string
}

// NewManifest returns a Manifest with an initialized Dependencies map.
func NewManifest(self, selfVersion string, dependencies map[string]string) *Manifest {
	if dependencies == nil {
		dependencies = map[string]string{}
	}
	return &Manifest{Self: self, SelfVersion: selfVersion, Dependencies: dependencies}
}

// Resolve walks importPath's package-name prefixes from most to least
// specific (mirroring npm's nested-scope resolution: "@scope/pkg/sub" falls
// back to "@scope/pkg") until one matches a known dependency.
func (m *Manifest) Resolve(importPath string) (string, string, bool) {
	for _, candidate := range packagePrefixes(importPath) {
		if version, ok := m.Dependencies[candidate]; ok {
			return candidate, version, true
		}
	}
	return "", "", false
}

// packagePrefixes returns importPath's candidate package-name prefixes, most
// specific first, honoring npm scoped packages ("@scope/name/...").
func packagePrefixes(importPath string) []string {
	parts := strings.Split(importPath, "/")
	if len(parts) == 0 {
		return nil
	}

	scoped := strings.HasPrefix(parts[0], "@")
	minLen := 1
	if scoped {
		minLen = 2
	}
	if len(parts) < minLen {
		return []string{importPath}
	}

	var prefixes []string
	for n := len(parts); n >= minLen; n-- {
		prefixes = append(prefixes, strings.Join(parts[:n], "/"))
	}
	return prefixes
}
