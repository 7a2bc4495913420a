package object

import (
	"math"
	"math/big"
)

// Truthy applies the host's truth test.
func Truthy(o Object) (bool, error) {
	switch v := o.(type) {
	case nil, NoneType:
		return false, nil
	case Bool:
		return bool(v), nil
	case *Int:
		return v.Sign() != 0, nil
	case Float:
		return v != 0, nil
	case Str:
		return v != "", nil
	case Bytes:
		return len(v) > 0, nil
	case *ByteArray:
		return len(v.data) > 0, nil
	case interface{ Len() (int, error) }:
		n, err := v.Len()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}
	return true, nil
}

// AsBigInt extracts an integer. Bools count as integers.
func AsBigInt(o Object) (*big.Int, error) {
	switch v := o.(type) {
	case Bool:
		if v {
			return big.NewInt(1), nil
		}
		return big.NewInt(0), nil
	case *Int:
		return v.Big(), nil
	}
	return nil, NewTypeError("'" + TypeNameOf(o) + "' object cannot be interpreted as an integer")
}

func AsInt64(o Object) (int64, error) {
	b, err := AsBigInt(o)
	if err != nil {
		return 0, err
	}
	if !b.IsInt64() {
		return 0, NewOverflowError("int too large to convert to int64")
	}
	return b.Int64(), nil
}

func AsUint64(o Object) (uint64, error) {
	b, err := AsBigInt(o)
	if err != nil {
		return 0, err
	}
	if b.Sign() < 0 {
		return 0, NewOverflowError("can't convert negative int to unsigned")
	}
	if !b.IsUint64() {
		return 0, NewOverflowError("int too large to convert to uint64")
	}
	return b.Uint64(), nil
}

// AsFloat64 extracts a float, converting integers.
func AsFloat64(o Object) (float64, error) {
	switch v := o.(type) {
	case Float:
		return float64(v), nil
	case Bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case *Int:
		f, _ := new(big.Float).SetInt(&v.v).Float64()
		if math.IsInf(f, 0) {
			return 0, NewOverflowError("int too large to convert to float")
		}
		return f, nil
	}
	return 0, NewTypeError("must be real number, not " + TypeNameOf(o))
}

func AsStr(o Object) (string, error) {
	if s, ok := o.(Str); ok {
		return string(s), nil
	}
	return "", NewTypeError("'" + TypeNameOf(o) + "' object cannot be converted to 'str'")
}

// AsBytes extracts bytes or bytearray contents.
func AsBytes(o Object) ([]byte, error) {
	switch v := o.(type) {
	case Bytes:
		return []byte(v), nil
	case *ByteArray:
		return v.data, nil
	}
	return nil, NewTypeError("expected bytes, " + TypeNameOf(o) + " found")
}

// TypeNameOf returns the type name of o, treating a nil handle as None.
func TypeNameOf(o Object) string {
	if o == nil {
		return None.TypeName()
	}
	return o.TypeName()
}
