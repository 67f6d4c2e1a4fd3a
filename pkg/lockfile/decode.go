package lockfile

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	nodeModules     = "node_modules/"
	versionField    = "version"
	yarnVersionLine = "  version"
	keyTerminators  = `'",(:`
)

// DecodeNpmPath decodes a package-lock.json entry. The key must be a
// "node_modules/" path; the name is the package directory after the last
// "node_modules/" and the version comes from the entry's "version" field.
func DecodeNpmPath(key string, value any) (Record, bool) {
	if !strings.HasPrefix(key, nodeModules) {
		return Record{}, false
	}
	name, ok := packageNameFromPath(key[strings.LastIndex(key, nodeModules)+len(nodeModules):])
	if !ok {
		return Record{}, false
	}
	version, ok := versionOf(value)
	if !ok {
		return Record{}, false
	}
	return Record{Name: name, Version: version}, true
}

// DecodeBunEntry decodes a bun.lock entry such as
//
//	"parent/@scope/child": ["@scope/child@1.2.3", "", {...}, "sha512-..."]
//
// The name comes from the key, the version from the first array element.
func DecodeBunEntry(key string, value any) (Record, bool) {
	arr, ok := value.([]any)
	if !ok || len(arr) == 0 {
		return Record{}, false
	}
	ident, ok := arr[0].(string)
	if !ok {
		return Record{}, false
	}
	_, version, ok := SplitNameSpec(ident)
	if !ok || version == "" {
		return Record{}, false
	}
	name, ok := packageNameFromPath(key)
	if !ok {
		return Record{}, false
	}
	return Record{Name: name, Version: version}, true
}

// SplitNameSpec splits "name@spec" at the first "@" after the first
// character, so "@scope/name@1.0.0" yields "@scope/name" and "1.0.0".
func SplitNameSpec(s string) (name, spec string, ok bool) {
	if len(s) < 2 {
		return "", "", false
	}
	i := strings.IndexByte(s[1:], '@')
	if i < 0 {
		return "", "", false
	}
	i++
	return s[:i], s[i+1:], true
}

// DecodeCompositeKey decodes a pnpm or Yarn key like "/foo@1.0.0",
// "foo@1.0.0(react@18.2.0)", "'@scope/foo@1.0.0'" or
// "foo@^1.0.0, foo@^1.1.0". The returned version may be a specifier.
func DecodeCompositeKey(key string) (name, version string, ok bool) {
	if key != "" && (key[0] == '"' || key[0] == '\'') {
		key = key[1:]
	}
	key = strings.TrimPrefix(key, "/")
	name, rest, ok := SplitNameSpec(key)
	if !ok {
		return "", "", false
	}
	if i := strings.IndexAny(rest, keyTerminators); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "", "", false
	}
	return name, rest, true
}

// DecodePnpmEntry decodes an entry header of the packages section of
// pnpm-lock.yaml. Only lines indented by exactly two spaces and ending in
// ":" are headers.
func DecodePnpmEntry(line string) (name, version string, ok bool) {
	if len(line) < 3 || !strings.HasPrefix(line, "  ") || line[2] == ' ' {
		return "", "", false
	}
	key := strings.TrimRight(line[2:], " ")
	if !strings.HasSuffix(key, ":") {
		return "", "", false
	}
	return DecodeCompositeKey(strings.TrimSuffix(key, ":"))
}

// DecodeYarnHeader returns the package name of a yarn.lock entry header such
// as `"@babel/core@^7.0.0", "@babel/core@^7.1.0":`. Indented lines, comments
// and keys without a spec (like __metadata) are not headers.
func DecodeYarnHeader(line string) (string, bool) {
	if line == "" || line[0] == ' ' || line[0] == '#' {
		return "", false
	}
	if line[0] == '"' {
		line = line[1:]
	}
	name, _, ok := SplitNameSpec(line)
	return name, ok
}

// DecodeYarnVersion reads the version field that follows a yarn.lock entry
// header. Classic files write `  version "1.0.0"`, berry writes
// `  version: 1.0.0`.
func DecodeYarnVersion(line string) (string, bool) {
	if len(line) <= len(yarnVersionLine) || !strings.HasPrefix(line, yarnVersionLine) {
		return "", false
	}
	if sep := line[len(yarnVersionLine)]; sep != ' ' && sep != ':' {
		return "", false
	}
	v := strings.TrimSpace(line[len(yarnVersionLine)+1:])
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
	}
	return v, v != ""
}

// IsResolvedVersion reports whether v is an exact version rather than a
// dependency specifier such as "^1.0.0" or "npm".
func IsResolvedVersion(v string) bool {
	_, err := semver.StrictNewVersion(v)
	return err == nil
}

// packageNameFromPath returns the last package name of a slash separated
// path, joining a scope segment with the segment after it.
func packageNameFromPath(p string) (string, bool) {
	segs := strings.Split(strings.Trim(p, "/"), "/")
	n := len(segs)
	last := segs[n-1]
	if last == "" || strings.HasPrefix(last, "@") {
		return "", false
	}
	if n >= 2 && strings.HasPrefix(segs[n-2], "@") {
		return segs[n-2] + "/" + last, true
	}
	return last, true
}

func versionOf(value any) (string, bool) {
	entry, ok := value.(*Object)
	if !ok {
		return "", false
	}
	v, ok := entry.String(versionField)
	return v, ok && v != ""
}
