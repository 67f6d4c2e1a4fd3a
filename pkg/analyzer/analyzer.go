package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sambabib/dupcheck/pkg/lockfile"
	"github.com/sambabib/dupcheck/pkg/logger"
	"github.com/sambabib/dupcheck/pkg/overrides"
)

// ErrNoLockfile is returned when a directory holds no supported lock file.
var ErrNoLockfile = errors.New("no lockfile found")

// ReportItem represents a single package resolved to more than one version
type ReportItem struct {
	Name     string   `json:"name"`     // package name
	Versions []string `json:"versions"` // distinct versions, in lock file order
	Manager  string   `json:"manager"`  // package manager that wrote the lock file
	Lockfile string   `json:"lockfile"` // path of the lock file
}

// Manager knows the lock files of one package manager, how to read them
// and where its overrides live.
type Manager interface {
	// Name returns the package manager name, e.g. "pnpm"
	Name() string
	// Lockfiles returns the lock file names in order of preference
	Lockfiles() []string
	// Load returns the text of the lock file at path
	Load(ctx context.Context, path string) (string, error)
	// OverrideTarget returns where overrides for the project in dir are written
	OverrideTarget(dir string) overrides.Target
}

// Result is the outcome of analyzing one lock file.
type Result struct {
	Dir      string          `json:"dir"`
	Lockfile string          `json:"lockfile"`
	Manager  Manager         `json:"-"`
	Report   lockfile.Report `json:"-"`
	Items    []ReportItem    `json:"items"`
}

// Analyzer finds duplicated packages in a project's lock file.
type Analyzer struct {
	Managers []Manager
	Ignore   func(name string) bool
	Options  []lockfile.Option
}

// NewAnalyzer creates an Analyzer for every supported package manager, in
// lock file lookup order: pnpm, npm, Yarn, Bun.
func NewAnalyzer(bunCommand string) *Analyzer {
	return &Analyzer{
		Managers: []Manager{
			NewPnpmManager(),
			NewNpmManager(),
			NewYarnManager(),
			NewBunManager(bunCommand),
		},
	}
}

// Detect returns the first lock file found in dir and the manager owning it.
func (a *Analyzer) Detect(dir string) (Manager, string, error) {
	for _, m := range a.Managers {
		for _, name := range m.Lockfiles() {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err == nil && !info.IsDir() {
				return m, path, nil
			}
		}
	}
	return nil, "", fmt.Errorf("%w in %s", ErrNoLockfile, dir)
}

// Analyze detects the lock file in dir and reports its duplicates.
func (a *Analyzer) Analyze(ctx context.Context, dir string) (*Result, error) {
	m, path, err := a.Detect(dir)
	if err != nil {
		return nil, err
	}
	logger.Debugf("%s: found %s", m.Name(), path)
	return a.analyze(ctx, m, dir, path)
}

// AnalyzeFile reports the duplicates of a lock file given by path. The
// manager is picked by file name and defaults to npm.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*Result, error) {
	m := a.managerFor(filepath.Base(path))
	return a.analyze(ctx, m, filepath.Dir(path), path)
}

// AnalyzeText reports the duplicates of lock file content that did not come
// from disk, such as standard input.
func (a *Analyzer) AnalyzeText(text, source string) (*Result, error) {
	return a.report(text, nil, "", source)
}

func (a *Analyzer) analyze(ctx context.Context, m Manager, dir, path string) (*Result, error) {
	text, err := m.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%s analysis failed: %w", m.Name(), err)
	}
	return a.report(text, m, dir, path)
}

func (a *Analyzer) report(text string, m Manager, dir, path string) (*Result, error) {
	in := lockfile.TextInput(text)
	logger.Debugf("%s: classified as %s", path, lockfile.Classify(in))

	report, err := lockfile.FindDuplicates(in, a.Options...)
	if err != nil {
		return nil, err
	}
	for name := range report {
		if a.Ignore != nil && a.Ignore(name) {
			logger.Debugf("ignoring duplicated package %s", name)
			delete(report, name)
		}
	}

	managerName := ""
	if m != nil {
		managerName = m.Name()
	}
	items := make([]ReportItem, 0, len(report))
	for _, name := range report.Names() {
		items = append(items, ReportItem{
			Name:     name,
			Versions: report[name],
			Manager:  managerName,
			Lockfile: path,
		})
	}
	return &Result{Dir: dir, Lockfile: path, Manager: m, Report: report, Items: items}, nil
}

func (a *Analyzer) managerFor(base string) Manager {
	for _, m := range a.Managers {
		for _, name := range m.Lockfiles() {
			if name == base {
				return m
			}
		}
	}
	return NewNpmManager()
}

// readLockfile reads a text lock file.
func readLockfile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return string(data), nil
}
