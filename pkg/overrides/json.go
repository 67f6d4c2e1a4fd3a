package overrides

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sambabib/dupcheck/pkg/lockfile"
)

func applyJSON(target Target, names []string, picks map[string]string) ([]Change, error) {
	data, err := os.ReadFile(target.File)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target.File, err)
	}
	info, err := os.Stat(target.File)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target.File, err)
	}
	manifest, err := lockfile.ParseObject(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", target.File, err)
	}

	node := manifest
	for i, key := range target.Path {
		v, ok := node.Get(key)
		if !ok || v == nil {
			child := lockfile.NewObject()
			node.Set(key, child)
			node = child
			continue
		}
		child, ok := v.(*lockfile.Object)
		if !ok {
			return nil, fmt.Errorf("%s: %q is not an object", target.File, strings.Join(target.Path[:i+1], "."))
		}
		node = child
	}

	var changes []Change
	for _, name := range names {
		if current, ok := node.String(name); ok && current == picks[name] {
			continue
		}
		node.Set(name, picks[name])
		changes = append(changes, Change{Name: name, Version: picks[name]})
	}
	if len(changes) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", detectIndent(data))
	if err := enc.Encode(manifest); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", target.File, err)
	}
	if err := os.WriteFile(target.File, buf.Bytes(), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing %s: %w", target.File, err)
	}
	return changes, nil
}

// detectIndent returns the indentation of the first indented line of a JSON
// document, two spaces if there is none.
func detectIndent(data []byte) string {
	for _, line := range bytes.Split(data, []byte("\n")) {
		trimmed := bytes.TrimLeft(line, " \t")
		if len(trimmed) == len(line) || len(trimmed) == 0 {
			continue
		}
		return string(line[:len(line)-len(trimmed)])
	}
	return "  "
}
