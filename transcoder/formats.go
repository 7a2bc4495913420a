package transcoder

import (
	"math/big"

	"github.com/fxamacker/cbor/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/object"
	"github.com/wippyai/hostbridge/serde"
	"github.com/wippyai/hostbridge/transcoder/internal/jsonstream"
	"github.com/wippyai/hostbridge/transcoder/internal/yamlnode"
	"gopkg.in/yaml.v3"
)

var (
	jsonCompact = jsoniter.Config{EscapeHTML: false, UseNumber: true}.Froze()
	jsonIndent  = jsoniter.Config{EscapeHTML: false, UseNumber: true, IndentionStep: 2}.Froze()

	// cborEnc uses Core Deterministic Encoding: sorted map keys and the
	// shortest integer forms. Integers beyond 64 bits become bignums.
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.BigIntConvert = cbor.BigIntConvertShortest
	cborEnc, err = encOptions.EncMode()
	if err != nil {
		panic("transcoder: CBOR encoder initialization failed: " + err.Error())
	}

	cborDec, err = cbor.DecOptions{
		BigIntDec: cbor.BigIntDecodePointer,
	}.DecMode()
	if err != nil {
		panic("transcoder: CBOR decoder initialization failed: " + err.Error())
	}
}

// ToJSON renders obj as JSON, keeping dict order. Bytes become base64
// strings and sets become arrays. indent selects two-space indentation.
func ToJSON(obj object.Object, indent bool) ([]byte, error) {
	api := jsonCompact
	if indent {
		api = jsonIndent
	}
	out, err := jsonstream.Marshal(api, serde.From(NewDecoder(obj)))
	if err != nil {
		return nil, errors.Classify(errors.PhaseTranscode, err)
	}
	return out, nil
}

// FromJSON parses a JSON document into host objects. Integers of any size
// become ints; object member order is kept.
func FromJSON(data []byte, s Strategy) (object.Object, error) {
	tree, err := jsonstream.Read(jsonCompact, data)
	if err != nil {
		return nil, errors.Classify(errors.PhaseTranscode, err)
	}
	return fromTree(tree, s)
}

// ToYAML renders obj as a YAML node tree.
func ToYAML(obj object.Object) (*yaml.Node, error) {
	node, err := serde.Transcode[*yaml.Node](NewDecoder(obj), yamlnode.Serializer{})
	if err != nil {
		return nil, errors.Classify(errors.PhaseTranscode, err)
	}
	return node, nil
}

// FromYAML converts a YAML node tree into host objects.
func FromYAML(node *yaml.Node, s Strategy) (object.Object, error) {
	tree, err := yamlnode.ToValue(node)
	if err != nil {
		return nil, errors.Classify(errors.PhaseTranscode, err)
	}
	return fromTree(tree, s)
}

// ToCBOR renders obj as deterministic CBOR.
func ToCBOR(obj object.Object) ([]byte, error) {
	var tree any
	if err := serde.Deserialize(NewDecoder(obj), &tree); err != nil {
		return nil, errors.Classify(errors.PhaseTranscode, err)
	}
	out, err := cborEnc.Marshal(tree)
	if err != nil {
		return nil, errors.Classify(errors.PhaseTranscode, err)
	}
	return out, nil
}

// FromCBOR decodes one CBOR data item into host objects.
func FromCBOR(data []byte, s Strategy) (object.Object, error) {
	var tree any
	if err := cborDec.Unmarshal(data, &tree); err != nil {
		return nil, errors.Classify(errors.PhaseTranscode, err)
	}
	return fromTree(tree, s)
}

// DiagnoseCBOR returns the diagnostic notation of a CBOR data item.
func DiagnoseCBOR(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

func fromTree(tree any, s Strategy) (object.Object, error) {
	obj, err := FromDeserializer(serde.NewValueDeserializer(normalize(tree)), s)
	if err != nil {
		return nil, errors.Classify(errors.PhaseTranscode, err)
	}
	return obj, nil
}

// normalize replaces the big.Int values some decoders produce with
// pointers, which the value deserializer reads as integers.
func normalize(v any) any {
	switch x := v.(type) {
	case big.Int:
		return &x
	case []any:
		for i := range x {
			x[i] = normalize(x[i])
		}
	case map[any]any:
		for k, val := range x {
			x[k] = normalize(val)
		}
	case serde.Map:
		for i := range x {
			x[i].Value = normalize(x[i].Value)
		}
	}
	return v
}

func (v Value) MarshalJSON() ([]byte, error) { return ToJSON(v.object(), false) }

func (v *Value) UnmarshalJSON(data []byte) error {
	obj, err := FromJSON(data, DefaultStrategy())
	if err != nil {
		return err
	}
	v.Object = obj
	return nil
}

func (v Value) MarshalYAML() (any, error) { return ToYAML(v.object()) }

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	obj, err := FromYAML(node, DefaultStrategy())
	if err != nil {
		return err
	}
	v.Object = obj
	return nil
}

func (v Value) MarshalCBOR() ([]byte, error) { return ToCBOR(v.object()) }

func (v *Value) UnmarshalCBOR(data []byte) error {
	obj, err := FromCBOR(data, DefaultStrategy())
	if err != nil {
		return err
	}
	v.Object = obj
	return nil
}
