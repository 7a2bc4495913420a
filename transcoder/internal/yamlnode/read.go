package yamlnode

import (
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"

	"github.com/wippyai/hostbridge/serde"
	"gopkg.in/yaml.v3"
)

// ToValue converts a node tree into plain values: mappings become
// serde.Map in document order, sequences []any, integers *big.Int and
// binary scalars []byte. Aliases are followed.
func ToValue(node *yaml.Node) (any, error) {
	return toValue(node, 0)
}

const maxDepth = 10000

func toValue(node *yaml.Node, depth int) (any, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("yamlnode: document nested too deeply")
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return toValue(node.Content[0], depth+1)
	case yaml.AliasNode:
		return toValue(node.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]any, len(node.Content))
		for i, child := range node.Content {
			v, err := toValue(child, depth+1)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return items, nil
	case yaml.MappingNode:
		entries := make(serde.Map, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, err := toValue(node.Content[i], depth+1)
			if err != nil {
				return nil, err
			}
			v, err := toValue(node.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			entries = append(entries, serde.Entry{Key: k, Value: v})
		}
		return entries, nil
	case yaml.ScalarNode:
		return scalarValue(node)
	}
	return nil, fmt.Errorf("yamlnode: unsupported node kind %d at line %d", node.Kind, node.Line)
}

func scalarValue(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case tagNull:
		return nil, nil
	case tagBool:
		var b bool
		err := node.Decode(&b)
		return b, err
	case tagInt:
		text := strings.ReplaceAll(node.Value, "_", "")
		if n, ok := new(big.Int).SetString(text, 0); ok {
			return n, nil
		}
		var n int64
		err := node.Decode(&n)
		return n, err
	case tagFloat:
		var f float64
		err := node.Decode(&f)
		return f, err
	case tagBinary:
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(node.Value), ""))
		if err != nil {
			return nil, fmt.Errorf("yamlnode: line %d: %w", node.Line, err)
		}
		return b, nil
	}
	return node.Value, nil
}
