package object

import (
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Hashable lets host objects defined outside this package be used as dict
// keys and set members. HashKey must be equal for equal objects.
type Hashable interface {
	Object
	HashKey() string
}

// hashKey returns a string that is equal for host-equal hashable objects.
// Numbers hash by value, so True, 1 and 1.0 collide as the host expects.
func hashKey(o Object) (string, error) {
	switch v := o.(type) {
	case NoneType:
		return "n", nil
	case Bool:
		if v {
			return "i:1", nil
		}
		return "i:0", nil
	case *Int:
		return "i:" + v.String(), nil
	case Float:
		f := float64(v)
		if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) {
			b, _ := big.NewFloat(f).Int(nil)
			return "i:" + b.String(), nil
		}
		return "f:" + strconv.FormatFloat(f, 'g', -1, 64), nil
	case Str:
		return "s:" + string(v), nil
	case Bytes:
		return "b:" + string(v), nil
	case *Tuple:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			k, err := hashKey(item)
			if err != nil {
				return "", err
			}
			parts[i] = k
		}
		return "t(" + joinKeys(parts) + ")", nil
	case *FrozenSet:
		parts := make([]string, 0, len(v.members))
		for k := range v.index {
			parts = append(parts, k)
		}
		sort.Strings(parts)
		return "fs(" + joinKeys(parts) + ")", nil
	case Hashable:
		return "u:" + v.TypeName() + ":" + v.HashKey(), nil
	}
	return "", NewTypeError("unhashable type: '" + o.TypeName() + "'")
}

// joinKeys length-prefixes each key so composite keys cannot collide.
func joinKeys(parts []string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte('#')
		b.WriteString(p)
	}
	return b.String()
}
