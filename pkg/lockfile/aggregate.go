package lockfile

import "sort"

// Record is one resolved occurrence of a package in a lock file.
type Record struct {
	Name    string
	Version string
}

// Report maps a package name to the distinct versions it resolves to, in the
// order they were first seen. Only names with two or more versions appear.
type Report map[string][]string

// Names returns the package names in sorted order.
func (r Report) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// accumulator folds records into per-name version lists.
type accumulator struct {
	versions map[string][]string
	seen     map[Record]struct{}
}

func newAccumulator() *accumulator {
	return &accumulator{
		versions: make(map[string][]string),
		seen:     make(map[Record]struct{}),
	}
}

func (a *accumulator) add(rec Record) {
	if rec.Name == "" {
		return
	}
	if _, ok := a.seen[rec]; ok {
		return
	}
	a.seen[rec] = struct{}{}
	a.versions[rec.Name] = append(a.versions[rec.Name], rec.Version)
}

func (a *accumulator) report() Report {
	out := make(Report)
	for name, versions := range a.versions {
		if len(versions) > 1 {
			out[name] = versions
		}
	}
	return out
}
