package value

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FromYaml decodes a YAML document. Mapping order is preserved.
func FromYaml(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return Nil, nil
	}
	return fromYamlNode(&doc)
}

func fromYamlNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Nil, nil
		}
		return fromYamlNode(n.Content[0])
	case yaml.AliasNode:
		return fromYamlNode(n.Alias)
	case yaml.SequenceNode:
		ret := NewArray()
		for _, c := range n.Content {
			v, err := fromYamlNode(c)
			if err != nil {
				return nil, err
			}
			ret.Append(v)
		}
		return ret, nil
	case yaml.MappingNode:
		ret := NewDict()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := fromYamlNode(n.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := fromYamlNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			ret.Set(k, v)
		}
		return ret, nil
	case yaml.ScalarNode:
		return fromYamlScalar(n)
	default:
		return nil, fmt.Errorf("unsupported yaml node at line %d", n.Line)
	}
}

func fromYamlScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int":
		return ParseNumber(n.Value)
	case "!!float":
		d, err := decimal.NewFromString(n.Value)
		if err != nil {
			return nil, fmt.Errorf("yaml float '%s' has no decimal representation", n.Value)
		}
		return Number{d: d}, nil
	default:
		return String(n.Value), nil
	}
}
