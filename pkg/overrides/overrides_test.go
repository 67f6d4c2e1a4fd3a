package overrides

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sambabib/dupcheck/pkg/lockfile"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "2.0.0", -1},
		{"10.0.0", "9.0.0", 1},
		{"1.0.0", "1.0.0", 0},
		{"1.0.0-beta.1", "1.0.0", -1},
		{"1.0.0", "npm", 1},
		{"github:a/b", "2.0.0", -1},
		{"b", "a", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestPick(t *testing.T) {
	picks := Pick(lockfile.Report{
		"foo":        {"1.2.0", "10.0.0", "9.1.0"},
		"@scope/pkg": {"2.0.0-rc.1", "1.9.9"},
		"git-dep":    {"github:a/b#abc", "1.0.0"},
	})
	assert.Equal(t, map[string]string{
		"foo":        "10.0.0",
		"@scope/pkg": "2.0.0-rc.1",
		"git-dep":    "1.0.0",
	}, picks)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestApply_PackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, PackageJSON), `{
  "name": "app",
  "scripts": {
    "build": "tsc && vite build"
  },
  "overrides": {
    "bar": "1.0.0"
  }
}
`)

	report := lockfile.Report{
		"foo": {"1.0.0", "2.0.0"},
		"bar": {"0.9.0", "1.0.0"},
	}
	changes, err := Apply(ManifestTarget(dir, "overrides"), report)
	require.NoError(t, err)
	assert.Equal(t, []Change{{Name: "foo", Version: "2.0.0"}}, changes)

	assert.Equal(t, `{
  "name": "app",
  "scripts": {
    "build": "tsc && vite build"
  },
  "overrides": {
    "bar": "1.0.0",
    "foo": "2.0.0"
  }
}
`, readFile(t, filepath.Join(dir, PackageJSON)))
}

func TestApply_NestedPathIsCreated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, PackageJSON), "{\n\t\"name\": \"app\"\n}\n")

	changes, err := Apply(ManifestTarget(dir, "pnpm", "overrides"), lockfile.Report{"foo": {"1.0.0", "1.1.0"}})
	require.NoError(t, err)
	assert.Len(t, changes, 1)
	assert.Equal(t, "{\n\t\"name\": \"app\",\n\t\"pnpm\": {\n\t\t\"overrides\": {\n\t\t\t\"foo\": \"1.1.0\"\n\t\t}\n\t}\n}\n",
		readFile(t, filepath.Join(dir, PackageJSON)))
}

func TestApply_UnchangedFileIsNotRewritten(t *testing.T) {
	dir := t.TempDir()
	original := `{"resolutions": {"foo": "2.0.0"}}`
	writeFile(t, filepath.Join(dir, PackageJSON), original)

	changes, err := Apply(ManifestTarget(dir, "resolutions"), lockfile.Report{"foo": {"1.0.0", "2.0.0"}})
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Equal(t, original, readFile(t, filepath.Join(dir, PackageJSON)))
}

func TestApply_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Apply(ManifestTarget(dir, "overrides"), lockfile.Report{})
	assert.ErrorIs(t, err, ErrNothingToOverride)

	_, err = Apply(ManifestTarget(dir, "overrides"), lockfile.Report{"foo": {"1.0.0", "2.0.0"}})
	assert.Error(t, err, "package.json does not exist")

	writeFile(t, filepath.Join(dir, PackageJSON), `{"overrides": "nope"}`)
	_, err = Apply(ManifestTarget(dir, "overrides"), lockfile.Report{"foo": {"1.0.0", "2.0.0"}})
	assert.ErrorContains(t, err, "not an object")
}

func TestApply_PnpmWorkspace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PnpmWorkspace)
	writeFile(t, path, `packages:
  - "packages/*"
# pinned by hand
overrides:
  lodash: "4.17.21"
`)

	report := lockfile.Report{
		"lodash":     {"4.17.20", "4.17.21"},
		"@scope/pkg": {"1.0.0", "2.0.0"},
	}
	changes, err := Apply(WorkspaceTarget(dir), report)
	require.NoError(t, err)
	assert.Equal(t, []Change{{Name: "@scope/pkg", Version: "2.0.0"}}, changes)

	out := readFile(t, path)
	assert.Contains(t, out, "# pinned by hand")
	assert.Contains(t, out, `"@scope/pkg": "2.0.0"`)

	var parsed struct {
		Packages  []string          `yaml:"packages"`
		Overrides map[string]string `yaml:"overrides"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, []string{"packages/*"}, parsed.Packages)
	assert.Equal(t, map[string]string{"lodash": "4.17.21", "@scope/pkg": "2.0.0"}, parsed.Overrides)
}

func TestApply_PnpmWorkspaceWithoutOverrides(t *testing.T) {
	for name, content := range map[string]string{
		"empty file":     "",
		"no overrides":   "packages:\n  - apps/*\n",
		"null overrides": "overrides:\n",
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, PnpmWorkspace)
			writeFile(t, path, content)

			_, err := Apply(WorkspaceTarget(dir), lockfile.Report{"foo": {"1.0.0", "2.0.0"}})
			require.NoError(t, err)

			var parsed struct {
				Overrides map[string]string `yaml:"overrides"`
			}
			require.NoError(t, yaml.Unmarshal([]byte(readFile(t, path)), &parsed))
			assert.Equal(t, map[string]string{"foo": "2.0.0"}, parsed.Overrides)
		})
	}
}

func TestApply_PnpmWorkspaceCommentOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PnpmWorkspace)
	writeFile(t, path, "# just a comment\n")

	changes, err := Apply(WorkspaceTarget(dir), lockfile.Report{"foo": {"1.0.0", "2.0.0"}})
	require.NoError(t, err)
	assert.Equal(t, []Change{{Name: "foo", Version: "2.0.0"}}, changes)

	out := readFile(t, path)
	assert.Contains(t, out, "# just a comment")

	var parsed struct {
		Overrides map[string]string `yaml:"overrides"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, map[string]string{"foo": "2.0.0"}, parsed.Overrides)
}

func TestChangeString(t *testing.T) {
	assert.Equal(t, "@scope/pkg@1.0.0", Change{Name: "@scope/pkg", Version: "1.0.0"}.String())
}
