package lockfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeNpmPath(t *testing.T) {
	withVersion := func(v string) *Object {
		return ObjectFromMap(map[string]any{"version": v})
	}

	tests := []struct {
		name  string
		key   string
		value any
		want  Record
		ok    bool
	}{
		{"top level", "node_modules/x", withVersion("1.0.0"), Record{"x", "1.0.0"}, true},
		{"nested", "node_modules/y/node_modules/x", withVersion("2.0.0"), Record{"x", "2.0.0"}, true},
		{"scoped", "node_modules/@scope/pkg", withVersion("1.0.0"), Record{"@scope/pkg", "1.0.0"}, true},
		{"nested scoped", "node_modules/a/node_modules/@s/b", withVersion("3.1.0"), Record{"@s/b", "3.1.0"}, true},
		{"root entry", "", withVersion("1.0.0"), Record{}, false},
		{"workspace path", "packages/app", withVersion("1.0.0"), Record{}, false},
		{"missing version", "node_modules/x", NewObject(), Record{}, false},
		{"value not an object", "node_modules/x", "1.0.0", Record{}, false},
		{"bare scope", "node_modules/@scope", withVersion("1.0.0"), Record{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeNpmPath(tt.key, tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeBunEntry(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  Record
		ok    bool
	}{
		{"plain", "foo", []any{"foo@1.0.0", "", NewObject(), "sha512-a"}, Record{"foo", "1.0.0"}, true},
		{"nested", "bar/foo", []any{"foo@2.0.0"}, Record{"foo", "2.0.0"}, true},
		{"scoped", "@scope/pkg", []any{"@scope/pkg@1.0.0"}, Record{"@scope/pkg", "1.0.0"}, true},
		{"nested scoped", "parent/@scope/child", []any{"@scope/child@2.0.0"}, Record{"@scope/child", "2.0.0"}, true},
		{"empty array", "foo", []any{}, Record{}, false},
		{"first element not a string", "foo", []any{42}, Record{}, false},
		{"identifier without version", "foo", []any{"foo"}, Record{}, false},
		{"not an array", "foo", NewObject(), Record{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeBunEntry(tt.key, tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitNameSpec(t *testing.T) {
	tests := []struct {
		in   string
		name string
		spec string
		ok   bool
	}{
		{"foo@^1.0.0", "foo", "^1.0.0", true},
		{"@scope/name@1.0.0", "@scope/name", "1.0.0", true},
		{"foo@npm:bar@1.0.0", "foo", "npm:bar@1.0.0", true},
		{"@scope/name", "", "", false},
		{"foo", "", "", false},
		{"@", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, spec, ok := SplitNameSpec(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.spec, spec)
		})
	}
}

func TestDecodeCompositeKey(t *testing.T) {
	tests := []struct {
		key     string
		name    string
		version string
		ok      bool
	}{
		{"/foo@1.0.0", "foo", "1.0.0", true},
		{"foo@1.0.0(react@18.2.0)", "foo", "1.0.0", true},
		{"/@babel/core@7.0.0(supports-color@8.1.1)", "@babel/core", "7.0.0", true},
		{"'@scope/foo@1.0.0'", "@scope/foo", "1.0.0", true},
		{`"foo@^1.0.0", "foo@^1.1.0"`, "foo", "^1.0.0", true},
		{"foo@^1.0.0, foo@^1.1.0", "foo", "^1.0.0", true},
		{"foo@npm:^1.0.0", "foo", "npm", true},
		{"__metadata", "", "", false},
		{"foo@", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			name, version, ok := DecodeCompositeKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.version, version)
		})
	}
}

func TestDecodePnpmEntry(t *testing.T) {
	tests := []struct {
		line    string
		name    string
		version string
		ok      bool
	}{
		{"  /foo@1.0.0:", "foo", "1.0.0", true},
		{"  foo@1.0.0(bar@2.0.0):", "foo", "1.0.0", true},
		{"  '@scope/foo@1.0.0':", "@scope/foo", "1.0.0", true},
		{"  /foo@1.0.0:  ", "foo", "1.0.0", true},
		{"    resolution: {integrity: sha512-abc}", "", "", false},
		{"  foo@1.0.0", "", "", false},
		{"packages:", "", "", false},
		{"  ", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, version, ok := DecodePnpmEntry(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.version, version)
		})
	}
}

func TestDecodeYarnHeader(t *testing.T) {
	tests := []struct {
		line string
		name string
		ok   bool
	}{
		{`"foo@^1.0.0":`, "foo", true},
		{`foo@^1.0.0:`, "foo", true},
		{`"@babel/core@^7.0.0", "@babel/core@^7.1.0":`, "@babel/core", true},
		{`"foo@npm:^1.0.0":`, "foo", true},
		{`__metadata:`, "", false},
		{`# yarn lockfile v1`, "", false},
		{`  version "1.0.0"`, "", false},
		{``, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, ok := DecodeYarnHeader(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestDecodeYarnVersion(t *testing.T) {
	tests := []struct {
		line    string
		version string
		ok      bool
	}{
		{`  version "1.0.0"`, "1.0.0", true},
		{`  version: "2.0.0"`, "2.0.0", true},
		{`  version: 2.0.0`, "2.0.0", true},
		{`  resolved "https://registry.yarnpkg.com/foo/-/foo-1.0.0.tgz"`, "", false},
		{`  versions "1.0.0"`, "", false},
		{`  version`, "", false},
		{`  version ""`, "", false},
		{``, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			version, ok := DecodeYarnVersion(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.version, version)
		})
	}
}

func TestIsResolvedVersion(t *testing.T) {
	assert.True(t, IsResolvedVersion("1.0.0"))
	assert.True(t, IsResolvedVersion("1.0.0-beta.1"))
	assert.False(t, IsResolvedVersion("^1.0.0"))
	assert.False(t, IsResolvedVersion("npm"))
	assert.False(t, IsResolvedVersion("1.0"))
	assert.False(t, IsResolvedVersion(""))
}
