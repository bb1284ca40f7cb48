package pkgmeta

import "testing"

func TestResolveExactMatch(t *testing.T) {
	m := NewManifest("my-app", "1.0.0", map[string]string{"lodash": "4.17.21"})

	name, version, ok := m.Resolve("lodash")
	if !ok || name != "lodash" || version != "4.17.21" {
		t.Errorf("Resolve(lodash) = (%q, %q, %v), want (lodash, 4.17.21, true)", name, version, ok)
	}
}

func TestResolveFallsBackToPackagePrefix(t *testing.T) {
	m := NewManifest("my-app", "1.0.0", map[string]string{"lodash": "4.17.21"})

	name, version, ok := m.Resolve("lodash/fp")
	if !ok || name != "lodash" || version != "4.17.21" {
		t.Errorf("Resolve(lodash/fp) = (%q, %q, %v), want (lodash, 4.17.21, true)", name, version, ok)
	}
}

func TestResolveScopedPackage(t *testing.T) {
	m := NewManifest("my-app", "1.0.0", map[string]string{"@types/node": "18.0.0"})

	name, version, ok := m.Resolve("@types/node/fs")
	if !ok || name != "@types/node" || version != "18.0.0" {
		t.Errorf("Resolve(@types/node/fs) = (%q, %q, %v), want (@types/node, 18.0.0, true)", name, version, ok)
	}

	if _, _, ok := m.Resolve("@types"); ok {
		t.Errorf("Resolve(@types) should not match: a scoped package needs at least scope/name")
	}
}

func TestResolveUnknownPackage(t *testing.T) {
	m := NewManifest("my-app", "1.0.0", map[string]string{"lodash": "4.17.21"})

	if _, _, ok := m.Resolve("left-pad"); ok {
		t.Errorf("Resolve(left-pad) should fail: not a dependency")
	}
}

func TestNewManifestNilDependencies(t *testing.T) {
	m := NewManifest("my-app", "1.0.0", nil)
	if m.Dependencies == nil {
		t.Fatalf("NewManifest should initialize a nil Dependencies map")
	}
	if _, _, ok := m.Resolve("anything"); ok {
		t.Errorf("Resolve against an empty manifest should never match")
	}
}
