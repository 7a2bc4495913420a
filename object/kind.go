package object

// Kind is the coarse classification of a host object.
type Kind uint8

const (
	KindOther Kind = iota
	KindNone
	KindBool
	KindInt
	KindList
	KindTuple
	KindDict
	KindStr
	KindBytes
	KindByteArray
	KindFloat
	KindFrozenSet
	KindSet
	KindSequence
	KindMapping
)

var kindNames = [...]string{
	KindOther:     "other",
	KindNone:      "none",
	KindBool:      "bool",
	KindInt:       "int",
	KindList:      "list",
	KindTuple:     "tuple",
	KindDict:      "dict",
	KindStr:       "str",
	KindBytes:     "bytes",
	KindByteArray: "bytearray",
	KindFloat:     "float",
	KindFrozenSet: "frozenset",
	KindSet:       "set",
	KindSequence:  "sequence",
	KindMapping:   "mapping",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsContainer reports whether the kind holds other objects.
func (k Kind) IsContainer() bool {
	switch k {
	case KindList, KindTuple, KindDict, KindFrozenSet, KindSet, KindSequence, KindMapping:
		return true
	}
	return false
}

// Classify returns the kind of o. Concrete built-in types are checked
// before the sequence and mapping protocols; bool is checked before int.
func Classify(o Object) Kind {
	switch o.(type) {
	case nil, NoneType:
		return KindNone
	case Bool:
		return KindBool
	case *Int:
		return KindInt
	case *List:
		return KindList
	case *Tuple:
		return KindTuple
	case *Dict:
		return KindDict
	case Str:
		return KindStr
	case Bytes:
		return KindBytes
	case *ByteArray:
		return KindByteArray
	case Float:
		return KindFloat
	case *FrozenSet:
		return KindFrozenSet
	case *Set:
		return KindSet
	case Sequence:
		return KindSequence
	case Mapping:
		return KindMapping
	}
	return KindOther
}
