package dataset

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a yaml sequence of mappings, or a mapping with the
// sequence under "data".
func LoadYAML(path string) (Set, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Set{}, err
	}
	s, err := ParseYAML(b)
	if err != nil {
		return Set{}, err
	}
	s.Source = path
	return s, nil
}

// ParseYAML decodes yaml records. The field order of the first mapping is
// kept by walking the node tree instead of a plain map.
func ParseYAML(b []byte) (Set, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Set{}, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Set{}, errors.New("yaml: empty document")
	}
	root := doc.Content[0]
	if root.Kind == yaml.MappingNode {
		root = mappingValue(root, "data")
		if root == nil {
			return Set{}, errors.New(`yaml: mapping without "data" sequence`)
		}
	}
	if root.Kind != yaml.SequenceNode {
		return Set{}, errors.New("yaml: expected a sequence of mappings")
	}
	var arr []any
	var order []string
	seen := map[string]bool{}
	for i, n := range root.Content {
		if n.Kind != yaml.MappingNode {
			return Set{}, fmt.Errorf("yaml: element %d is not a mapping", i)
		}
		for j := 0; j+1 < len(n.Content); j += 2 {
			if k := n.Content[j].Value; !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
		var m map[string]any
		if err := n.Decode(&m); err != nil {
			return Set{}, fmt.Errorf("yaml: element %d: %w", i, err)
		}
		arr = append(arr, m)
	}
	recs, err := recordsFromAny(arr)
	if err != nil {
		return Set{}, fmt.Errorf("yaml: %w", err)
	}
	return Set{Records: recs, Fields: order}, nil
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
