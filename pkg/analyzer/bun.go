package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sambabib/dupcheck/pkg/logger"
	"github.com/sambabib/dupcheck/pkg/overrides"
)

const (
	bunTextLockfile   = "bun.lock"
	bunBinaryLockfile = "bun.lockb"
)

// BunManager handles bun.lock and the binary bun.lockb
type BunManager struct {
	Command string // Executable that prints bun.lockb as text; "bun" if empty
}

// NewBunManager creates a new BunManager
func NewBunManager(command string) *BunManager {
	return &BunManager{Command: command}
}

func (m *BunManager) Name() string { return "bun" }

func (m *BunManager) Lockfiles() []string {
	return []string{bunTextLockfile, bunBinaryLockfile}
}

// Load reads bun.lock directly. bun.lockb is binary, so it is handed to
// `bun bun.lockb`, which prints the equivalent yarn.lock.
func (m *BunManager) Load(ctx context.Context, path string) (string, error) {
	if filepath.Base(path) != bunBinaryLockfile {
		return readLockfile(path)
	}

	command := m.Command
	if command == "" {
		command = "bun"
	}
	logger.Debugf("BUN: running %s %s", command, bunBinaryLockfile)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, command, bunBinaryLockfile)
	cmd.Dir = filepath.Dir(path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("failed to print %s with %s: %w: %s", bunBinaryLockfile, command, err, msg)
		}
		return "", fmt.Errorf("failed to print %s with %s: %w", bunBinaryLockfile, command, err)
	}
	return stdout.String(), nil
}

// OverrideTarget returns the "overrides" field of package.json
func (m *BunManager) OverrideTarget(dir string) overrides.Target {
	return overrides.ManifestTarget(dir, "overrides")
}
