package overrides

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func applyYAML(target Target, names []string, picks map[string]string) ([]Change, error) {
	data, err := os.ReadFile(target.File)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target.File, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", target.File, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// empty or comment-only file
		doc = yaml.Node{
			Kind:        yaml.DocumentNode,
			HeadComment: doc.HeadComment,
			FootComment: doc.FootComment,
			Content:     []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}
	node := doc.Content[0]
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: top-level value is not a mapping", target.File)
	}
	for _, key := range target.Path {
		node = mappingValue(node, key, 0)
		if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
			*node = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		}
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%s: %q is not a mapping", target.File, key)
		}
	}

	var changes []Change
	for _, name := range names {
		version := picks[name]
		value := mappingValue(node, name, yaml.DoubleQuotedStyle)
		if value.Kind == yaml.ScalarNode && value.Value == version {
			continue
		}
		*value = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: version, Style: yaml.DoubleQuotedStyle}
		changes = append(changes, Change{Name: name, Version: version})
	}
	if len(changes) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", target.File, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", target.File, err)
	}
	info, err := os.Stat(target.File)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(target.File, buf.Bytes(), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing %s: %w", target.File, err)
	}
	return changes, nil
}

// mappingValue returns the value node stored under key, appending an empty
// null entry when the key is missing.
func mappingValue(mapping *yaml.Node, key string, style yaml.Style) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key, Style: style}
	v := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
	mapping.Content = append(mapping.Content, k, v)
	return v
}
