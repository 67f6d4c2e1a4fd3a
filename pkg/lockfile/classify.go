package lockfile

import "strings"

// Format identifies which lock file convention an input follows.
type Format int

const (
	FormatUnknown       Format = iota
	FormatNpm                  // package-lock.json: "node_modules/<path>" keys, "" is the root
	FormatBun                  // bun.lock: array-valued entries
	FormatComposite            // pnpm or Yarn "name@version" keys inside a versioned object
	FormatPackagesTable        // an object that is itself the packages table
	FormatPnpmText             // pnpm-lock.yaml
	FormatYarnText             // yarn.lock, classic or berry
	FormatObjectText           // JSON or JSONC text
)

var formatNames = map[Format]string{
	FormatUnknown:       "unknown",
	FormatNpm:           "npm",
	FormatBun:           "bun",
	FormatComposite:     "composite",
	FormatPackagesTable: "packages-table",
	FormatPnpmText:      "pnpm",
	FormatYarnText:      "yarn",
	FormatObjectText:    "object-text",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

// Markers used to tell lock file formats apart. Nothing outside this file
// looks for them.
const (
	markerLockfileVersion = "lockfileVersion"
	markerPackages        = "packages"
	markerNpmRoot         = ""
	markerYarnBanner      = "yarn lockfile"
	markerYarnMetadata    = "__metadata"
	markerObjectStart     = "{"
	byteOrderMark         = "\ufeff"
)

// Classify decides which convention applies to in without decoding its
// entries.
func Classify(in Input) Format {
	switch in.kind {
	case KindObject:
		return classifyObject(in.object)
	case KindText:
		return classifyText(in.text)
	}
	return FormatUnknown
}

func classifyObject(obj *Object) Format {
	if !isVersioned(obj) {
		return FormatPackagesTable
	}
	table := Table(obj)
	if table == nil {
		return FormatUnknown
	}
	if table.Has(markerNpmRoot) {
		return FormatNpm
	}
	for _, key := range table.Keys() {
		if v, _ := table.Get(key); isArray(v) {
			return FormatBun
		}
	}
	return FormatComposite
}

func classifyText(text string) Format {
	text = strings.TrimPrefix(text, byteOrderMark)
	switch {
	case strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), markerObjectStart):
		return FormatObjectText
	case strings.HasPrefix(text, markerLockfileVersion):
		return FormatPnpmText
	case strings.Contains(text, markerYarnBanner), strings.Contains(text, markerYarnMetadata):
		return FormatYarnText
	}
	return FormatUnknown
}

// Table returns the packages table of a parsed lock file: the "packages"
// object when the file carries a lockfileVersion, otherwise the object
// itself. It returns nil when a versioned file has no packages object.
func Table(obj *Object) *Object {
	if !isVersioned(obj) {
		return obj
	}
	table, ok := obj.Object(markerPackages)
	if !ok {
		return nil
	}
	return table
}

func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

// isVersioned reports whether obj carries a lockfileVersion key. The value
// is not inspected: bun.lock writes 0.
func isVersioned(obj *Object) bool {
	return obj.Has(markerLockfileVersion)
}
