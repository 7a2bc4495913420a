package jsonstream

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/wippyai/hostbridge/serde"
)

// maxDepth bounds nesting while reading untrusted input.
const maxDepth = 10000

// Read parses a single JSON document into plain values: objects become
// serde.Map in document order, arrays []any, numbers json.Number.
func Read(api jsoniter.API, data []byte) (any, error) {
	iter := api.BorrowIterator(data)
	defer api.ReturnIterator(iter)

	v := readValue(iter, 0)
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, iter.Error
	}
	if next := iter.WhatIsNext(); next != jsoniter.InvalidValue {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

func readValue(iter *jsoniter.Iterator, depth int) any {
	if depth > maxDepth {
		iter.ReportError("read", "exceeded max depth")
		return nil
	}
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NumberValue:
		return iter.ReadNumber()
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.ArrayValue:
		items := []any{}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			items = append(items, readValue(it, depth+1))
			return it.Error == nil
		})
		return items
	case jsoniter.ObjectValue:
		entries := serde.Map{}
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			entries = append(entries, serde.Entry{Key: key, Value: readValue(it, depth+1)})
			return it.Error == nil
		})
		return entries
	}
	iter.ReportError("read", "unexpected character")
	return nil
}
