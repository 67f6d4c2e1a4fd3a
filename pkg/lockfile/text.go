package lockfile

import "strings"

const pnpmPackagesHeader = "packages:"

// scanPnpm walks the packages section of pnpm-lock.yaml. Every other
// top-level section (importers, snapshots, dependencies) is skipped.
func scanPnpm(text string, policy SpecifierPolicy, emit func(Record)) {
	inPackages := false
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] != ' ' {
			inPackages = strings.TrimRight(line, " ") == pnpmPackagesHeader
			continue
		}
		if !inPackages {
			continue
		}
		name, version, ok := DecodePnpmEntry(line)
		if !ok {
			continue
		}
		rec := Record{Name: name, Version: version}
		if !IsResolvedVersion(version) {
			if rec, ok = policy.unresolved(name, version); !ok {
				continue
			}
		}
		emit(rec)
	}
}

// scanYarn pairs every entry header of yarn.lock with the version field on
// the line right after it. A header on the last line has no version.
func scanYarn(text string, emit func(Record)) {
	lines := splitLines(text)
	for i, line := range lines {
		name, ok := DecodeYarnHeader(line)
		if !ok || i+1 >= len(lines) {
			continue
		}
		if version, ok := DecodeYarnVersion(lines[i+1]); ok {
			emit(Record{Name: name, Version: version})
		}
	}
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
