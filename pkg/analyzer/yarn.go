package analyzer

import (
	"context"

	"github.com/sambabib/dupcheck/pkg/overrides"
)

// YarnManager handles yarn.lock, classic and berry
type YarnManager struct{}

// NewYarnManager creates a new YarnManager
func NewYarnManager() *YarnManager {
	return &YarnManager{}
}

func (m *YarnManager) Name() string { return "yarn" }

func (m *YarnManager) Lockfiles() []string { return []string{"yarn.lock"} }

func (m *YarnManager) Load(_ context.Context, path string) (string, error) {
	return readLockfile(path)
}

// OverrideTarget returns the "resolutions" field of package.json
func (m *YarnManager) OverrideTarget(dir string) overrides.Target {
	return overrides.ManifestTarget(dir, "resolutions")
}
