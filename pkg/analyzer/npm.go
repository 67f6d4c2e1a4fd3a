package analyzer

import (
	"context"

	"github.com/sambabib/dupcheck/pkg/overrides"
)

// NpmManager handles package-lock.json and npm-shrinkwrap.json
type NpmManager struct{}

// NewNpmManager creates a new NpmManager
func NewNpmManager() *NpmManager {
	return &NpmManager{}
}

func (m *NpmManager) Name() string { return "npm" }

func (m *NpmManager) Lockfiles() []string {
	return []string{"package-lock.json", "npm-shrinkwrap.json"}
}

func (m *NpmManager) Load(_ context.Context, path string) (string, error) {
	return readLockfile(path)
}

// OverrideTarget returns the "overrides" field of package.json
func (m *NpmManager) OverrideTarget(dir string) overrides.Target {
	return overrides.ManifestTarget(dir, "overrides")
}
