// Package yamlnode converts between the serde data model and yaml.v3 node
// trees. Mapping order is kept both ways.
package yamlnode

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/wippyai/hostbridge/serde"
	"gopkg.in/yaml.v3"
)

const (
	tagNull   = "!!null"
	tagBool   = "!!bool"
	tagInt    = "!!int"
	tagFloat  = "!!float"
	tagStr    = "!!str"
	tagBinary = "!!binary"
	tagSeq    = "!!seq"
	tagMap    = "!!map"
)

// Serializer builds a *yaml.Node for each value.
type Serializer struct{}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func mapping(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap, Content: content}
}

func (Serializer) SerializeBool(v bool) (*yaml.Node, error) {
	return scalar(tagBool, strconv.FormatBool(v)), nil
}

func (Serializer) SerializeInt8(v int8) (*yaml.Node, error)   { return formatInt(int64(v)), nil }
func (Serializer) SerializeInt16(v int16) (*yaml.Node, error) { return formatInt(int64(v)), nil }
func (Serializer) SerializeInt32(v int32) (*yaml.Node, error) { return formatInt(int64(v)), nil }
func (Serializer) SerializeInt64(v int64) (*yaml.Node, error) { return formatInt(v), nil }

func (Serializer) SerializeUint8(v uint8) (*yaml.Node, error)   { return formatUint(uint64(v)), nil }
func (Serializer) SerializeUint16(v uint16) (*yaml.Node, error) { return formatUint(uint64(v)), nil }
func (Serializer) SerializeUint32(v uint32) (*yaml.Node, error) { return formatUint(uint64(v)), nil }
func (Serializer) SerializeUint64(v uint64) (*yaml.Node, error) { return formatUint(v), nil }

func formatInt(v int64) *yaml.Node   { return scalar(tagInt, strconv.FormatInt(v, 10)) }
func formatUint(v uint64) *yaml.Node { return scalar(tagInt, strconv.FormatUint(v, 10)) }

func (Serializer) SerializeBigInt(v *big.Int) (*yaml.Node, error) {
	return scalar(tagInt, v.String()), nil
}

func (s Serializer) SerializeFloat32(v float32) (*yaml.Node, error) {
	return s.SerializeFloat64(float64(v))
}

func (Serializer) SerializeFloat64(v float64) (*yaml.Node, error) {
	return scalar(tagFloat, FormatFloat(v)), nil
}

// FormatFloat renders f so that it reads back as a float: integral values
// keep a ".0" suffix and specials use the YAML spellings.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (Serializer) SerializeChar(v rune) (*yaml.Node, error) {
	return scalar(tagStr, string(v)), nil
}

func (Serializer) SerializeStr(v string) (*yaml.Node, error) {
	return scalar(tagStr, v), nil
}

func (Serializer) SerializeBytes(v []byte) (*yaml.Node, error) {
	return scalar(tagBinary, base64.StdEncoding.EncodeToString(v)), nil
}

func (Serializer) SerializeNone() (*yaml.Node, error)             { return scalar(tagNull, "null"), nil }
func (Serializer) SerializeUnit() (*yaml.Node, error)             { return scalar(tagNull, "null"), nil }
func (Serializer) SerializeUnitStruct(string) (*yaml.Node, error) { return scalar(tagNull, "null"), nil }

func (s Serializer) SerializeSome(v any) (*yaml.Node, error) {
	return serde.Serialize[*yaml.Node](s, v)
}

func (Serializer) SerializeUnitVariant(_ string, _ int, variant string) (*yaml.Node, error) {
	return scalar(tagStr, variant), nil
}

func (s Serializer) SerializeNewtypeStruct(_ string, v any) (*yaml.Node, error) {
	return serde.Serialize[*yaml.Node](s, v)
}

func (s Serializer) SerializeNewtypeVariant(_ string, _ int, variant string, v any) (*yaml.Node, error) {
	payload, err := serde.Serialize[*yaml.Node](s, v)
	if err != nil {
		return nil, err
	}
	return mapping(scalar(tagStr, variant), payload), nil
}

func (Serializer) SerializeSeq(length int) (serde.SerializeSeq[*yaml.Node], error) {
	return newSeq(length, ""), nil
}

func (Serializer) SerializeTuple(length int) (serde.SerializeSeq[*yaml.Node], error) {
	return newSeq(length, ""), nil
}

func (Serializer) SerializeTupleStruct(_ string, length int) (serde.SerializeSeq[*yaml.Node], error) {
	return newSeq(length, ""), nil
}

func (Serializer) SerializeTupleVariant(_ string, _ int, variant string, length int) (serde.SerializeSeq[*yaml.Node], error) {
	return newSeq(length, variant), nil
}

func (Serializer) SerializeMap(length int) (serde.SerializeMap[*yaml.Node], error) {
	return newMap(length, ""), nil
}

func (Serializer) SerializeStruct(_ string, length int) (serde.SerializeStruct[*yaml.Node], error) {
	return newMap(length, ""), nil
}

func (Serializer) SerializeStructVariant(_ string, _ int, variant string, length int) (serde.SerializeStruct[*yaml.Node], error) {
	return newMap(length, variant), nil
}

type seqNode struct {
	node    *yaml.Node
	variant string
}

func newSeq(length int, variant string) *seqNode {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: tagSeq, Content: make([]*yaml.Node, 0, max(length, 0))}
	if length == 0 {
		node.Style = yaml.FlowStyle
	}
	return &seqNode{node: node, variant: variant}
}

func (s *seqNode) SerializeElement(v any) error {
	item, err := serde.Serialize[*yaml.Node](Serializer{}, v)
	if err != nil {
		return err
	}
	s.node.Content = append(s.node.Content, item)
	return nil
}

func (s *seqNode) End() (*yaml.Node, error) {
	if s.variant != "" {
		return mapping(scalar(tagStr, s.variant), s.node), nil
	}
	return s.node, nil
}

type mapNode struct {
	node    *yaml.Node
	key     *yaml.Node
	variant string
}

func newMap(length int, variant string) *mapNode {
	node := mapping(make([]*yaml.Node, 0, 2*max(length, 0))...)
	if length == 0 {
		node.Style = yaml.FlowStyle
	}
	return &mapNode{node: node, variant: variant}
}

func (m *mapNode) SerializeKey(k any) error {
	key, err := serde.Serialize[*yaml.Node](Serializer{}, k)
	if err != nil {
		return err
	}
	m.key = key
	return nil
}

func (m *mapNode) SerializeValue(v any) error {
	if m.key == nil {
		return fmt.Errorf("yamlnode: value without key")
	}
	value, err := serde.Serialize[*yaml.Node](Serializer{}, v)
	if err != nil {
		return err
	}
	m.node.Content = append(m.node.Content, m.key, value)
	m.key = nil
	return nil
}

func (m *mapNode) SerializeField(name string, v any) error {
	m.key = scalar(tagStr, name)
	return m.SerializeValue(v)
}

func (m *mapNode) End() (*yaml.Node, error) {
	if m.variant != "" {
		return mapping(scalar(tagStr, m.variant), m.node), nil
	}
	return m.node, nil
}
