// Package overrides pins duplicated packages to a single version by writing
// the greatest version of each into the project's override configuration:
// "overrides" (npm, Bun), "resolutions" (Yarn) or "pnpm.overrides" in
// package.json, or the "overrides" mapping of pnpm-workspace.yaml.
package overrides

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/sambabib/dupcheck/pkg/lockfile"
)

const (
	PackageJSON   = "package.json"
	PnpmWorkspace = "pnpm-workspace.yaml"
)

// ErrNothingToOverride is returned by Apply for an empty report.
var ErrNothingToOverride = errors.New("nothing to override")

// Target is the file and key path overrides are written to.
type Target struct {
	File string
	Path []string
}

// ManifestTarget returns a target inside dir/package.json.
func ManifestTarget(dir string, path ...string) Target {
	return Target{File: filepath.Join(dir, PackageJSON), Path: path}
}

// WorkspaceTarget returns the overrides mapping of dir/pnpm-workspace.yaml.
func WorkspaceTarget(dir string) Target {
	return Target{File: filepath.Join(dir, PnpmWorkspace), Path: []string{"overrides"}}
}

func (t Target) String() string {
	return fmt.Sprintf("%s (%s)", t.File, strings.Join(t.Path, "."))
}

func (t Target) isYAML() bool {
	ext := filepath.Ext(t.File)
	return ext == ".yaml" || ext == ".yml"
}

// Change is one override written by Apply.
type Change struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (c Change) String() string { return c.Name + "@" + c.Version }

// Pick returns the greatest version of every package in report.
func Pick(report lockfile.Report) map[string]string {
	picks := make(map[string]string, len(report))
	for name, versions := range report {
		if len(versions) == 0 {
			continue
		}
		best := versions[0]
		for _, v := range versions[1:] {
			if Compare(v, best) > 0 {
				best = v
			}
		}
		picks[name] = best
	}
	return picks
}

// Compare orders two version literals. Versions that parse as semver are
// compared as such and sort above those that don't; the rest compare as
// strings.
func Compare(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	}
	return strings.Compare(a, b)
}

// Apply writes the greatest version of every duplicated package to target.
// Entries that already hold the chosen version are left alone and the file
// is only rewritten when something changed.
func Apply(target Target, report lockfile.Report) ([]Change, error) {
	if len(report) == 0 {
		return nil, ErrNothingToOverride
	}
	picks := Pick(report)
	names := make([]string, 0, len(picks))
	for name := range picks {
		names = append(names, name)
	}
	sort.Strings(names)

	if target.isYAML() {
		return applyYAML(target, names, picks)
	}
	return applyJSON(target, names, picks)
}
