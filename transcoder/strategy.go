package transcoder

import (
	"github.com/wippyai/hostbridge/object"
)

// ListType creates a host sequence from its items.
type ListType interface {
	CreateSequence(items []object.Object) (object.Object, error)
}

// MappingType creates builders for unnamed mappings.
type MappingType interface {
	NewBuilder(capacity int) (MappingBuilder, error)
}

// MappingBuilder accumulates key/value pairs into a host mapping.
type MappingBuilder interface {
	PushItem(key, value object.Object) error
	Finish() (object.Object, error)
}

// NamedMappingType creates builders for mappings produced from structs and
// enum variants. The name is the declared Go type name: a struct's own name,
// or for a variant the enum's name, both for the {variant: payload} wrapper
// and for the field mapping of a struct variant.
type NamedMappingType interface {
	NewNamedBuilder(name string, capacity int) (NamedMappingBuilder, error)
}

// VariantMappingType is implemented by named mapping types that build the
// {variant: payload} wrapper differently from records. Without it the
// wrapper comes from NewNamedBuilder(enum, 1).
type VariantMappingType interface {
	NewVariantBuilder(enum string) (NamedMappingBuilder, error)
}

// NamedMappingBuilder accumulates fields into a host mapping.
type NamedMappingBuilder interface {
	PushField(name string, value object.Object) error
	Finish() (object.Object, error)
}

// Strategy selects the host containers the Encoder produces.
type Strategy struct {
	List     ListType
	Tuple    ListType
	Map      MappingType
	NamedMap NamedMappingType
}

// DefaultStrategy produces lists, tuples and dicts. Struct names are
// discarded.
func DefaultStrategy() Strategy {
	return Strategy{
		List:     ListKind{},
		Tuple:    TupleKind{},
		Map:      DictKind{},
		NamedMap: UnnamedMappingAdapter{Map: DictKind{}},
	}
}

// withDefaults fills unset members from DefaultStrategy.
func (s Strategy) withDefaults() Strategy {
	d := DefaultStrategy()
	if s.List == nil {
		s.List = d.List
	}
	if s.Tuple == nil {
		s.Tuple = d.Tuple
	}
	if s.Map == nil {
		s.Map = d.Map
	}
	if s.NamedMap == nil {
		s.NamedMap = UnnamedMappingAdapter{Map: s.Map}
	}
	return s
}

// ListKind creates *object.List.
type ListKind struct{}

func (ListKind) CreateSequence(items []object.Object) (object.Object, error) {
	return object.NewList(items...), nil
}

// TupleKind creates *object.Tuple.
type TupleKind struct{}

func (TupleKind) CreateSequence(items []object.Object) (object.Object, error) {
	return object.NewTuple(items...), nil
}

// DictKind creates *object.Dict.
type DictKind struct{}

func (DictKind) NewBuilder(int) (MappingBuilder, error) {
	return &dictBuilder{dict: object.NewDict()}, nil
}

type dictBuilder struct {
	dict *object.Dict
}

func (b *dictBuilder) PushItem(key, value object.Object) error {
	return b.dict.SetItem(key, value)
}

func (b *dictBuilder) Finish() (object.Object, error) {
	return b.dict, nil
}

// UnnamedMappingAdapter serves named mappings from an unnamed MappingType,
// ignoring the name and using field names as str keys.
type UnnamedMappingAdapter struct {
	Map MappingType
}

func (a UnnamedMappingAdapter) NewNamedBuilder(_ string, capacity int) (NamedMappingBuilder, error) {
	b, err := a.Map.NewBuilder(capacity)
	if err != nil {
		return nil, err
	}
	return namedAdapter{b}, nil
}

type namedAdapter struct {
	b MappingBuilder
}

func (n namedAdapter) PushField(name string, value object.Object) error {
	return n.b.PushItem(object.Str(name), value)
}

func (n namedAdapter) Finish() (object.Object, error) {
	return n.b.Finish()
}

// TypeTagged brands every named mapping with its type name under Key,
// pushed before the fields. The {variant: payload} wrapper of an enum stays
// untagged so it keeps the single-key shape; a struct variant's fields are
// tagged with the enum name.
type TypeTagged struct {
	Key string
	Map MappingType
}

func (t TypeTagged) NewNamedBuilder(name string, capacity int) (NamedMappingBuilder, error) {
	m := t.Map
	if m == nil {
		m = DictKind{}
	}
	b, err := m.NewBuilder(capacity + 1)
	if err != nil {
		return nil, err
	}
	if name != "" {
		if err := b.PushItem(object.Str(t.Key), object.Str(name)); err != nil {
			return nil, err
		}
	}
	return namedAdapter{b}, nil
}

// NewVariantBuilder returns an untagged builder for the variant wrapper.
func (t TypeTagged) NewVariantBuilder(string) (NamedMappingBuilder, error) {
	return t.NewNamedBuilder("", 1)
}
