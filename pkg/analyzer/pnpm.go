package analyzer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sambabib/dupcheck/pkg/overrides"
)

// PnpmManager handles pnpm-lock.yaml
type PnpmManager struct{}

// NewPnpmManager creates a new PnpmManager
func NewPnpmManager() *PnpmManager {
	return &PnpmManager{}
}

func (m *PnpmManager) Name() string { return "pnpm" }

func (m *PnpmManager) Lockfiles() []string { return []string{"pnpm-lock.yaml"} }

func (m *PnpmManager) Load(_ context.Context, path string) (string, error) {
	return readLockfile(path)
}

// OverrideTarget prefers pnpm-workspace.yaml and falls back to the
// "pnpm.overrides" field of package.json
func (m *PnpmManager) OverrideTarget(dir string) overrides.Target {
	if _, err := os.Stat(filepath.Join(dir, overrides.PnpmWorkspace)); err == nil {
		return overrides.WorkspaceTarget(dir)
	}
	return overrides.ManifestTarget(dir, "pnpm", "overrides")
}
