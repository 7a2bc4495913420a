package main

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/object"
	"github.com/wippyai/hostbridge/object/literal"
	"github.com/wippyai/hostbridge/transcoder"
)

const (
	formatPy   = "py"
	formatJSON = "json"
	formatYAML = "yaml"
	formatCBOR = "cbor"
)

var formats = []string{formatPy, formatJSON, formatYAML, formatCBOR}

type options struct {
	from          string
	to            string
	tuplesAsLists bool
	compact       bool
	classify      bool
	terminal      bool
}

func (o options) validate() error {
	for _, f := range []string{o.from, o.to} {
		if !lo.Contains(formats, f) {
			return fmt.Errorf("unknown format %q (want one of %s)", f, strings.Join(formats, ", "))
		}
	}
	return nil
}

func (o options) strategy() transcoder.Strategy {
	s := transcoder.DefaultStrategy()
	if o.tuplesAsLists {
		s.Tuple = transcoder.ListKind{}
	}
	return s
}

func convert(o options, input []byte) ([]byte, error) {
	obj, err := parse(o, input)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if o.classify {
		out.WriteString(describe(obj))
		out.WriteByte('\n')
	}
	rendered, err := render(o, obj)
	if err != nil {
		return nil, err
	}
	out.Write(rendered)
	return out.Bytes(), nil
}

func parse(o options, input []byte) (object.Object, error) {
	s := o.strategy()
	switch o.from {
	case formatJSON:
		return transcoder.FromJSON(jsonc.ToJSON(input), s)
	case formatYAML:
		var doc yaml.Node
		if err := yaml.Unmarshal(input, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return transcoder.FromYAML(&doc, s)
	case formatCBOR:
		return transcoder.FromCBOR(input, s)
	}
	obj, err := literal.Parse(string(input))
	if err != nil {
		return nil, err
	}
	if o.tuplesAsLists {
		return transcoder.Convert(obj, s)
	}
	return obj, nil
}

// render writes obj in the output format. CBOR is shown in diagnostic
// notation when writing to a terminal.
func render(o options, obj object.Object) ([]byte, error) {
	switch o.to {
	case formatJSON:
		out, err := transcoder.ToJSON(obj, !o.compact)
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case formatYAML:
		node, err := transcoder.ToYAML(obj)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatCBOR:
		out, err := transcoder.ToCBOR(obj)
		if err != nil {
			return nil, err
		}
		if !o.terminal {
			return out, nil
		}
		diag, err := transcoder.DiagnoseCBOR(out)
		if err != nil {
			return nil, err
		}
		return []byte(diag + "\n"), nil
	}
	return []byte(object.Repr(obj) + "\n"), nil
}

// describe renders the kind tree of obj, one node per line.
func describe(obj object.Object) string {
	var b strings.Builder
	describeInto(&b, "", obj, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func describeInto(b *strings.Builder, label string, obj object.Object, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if label != "" {
		b.WriteString(label)
		b.WriteString(": ")
	}
	kind := object.Classify(obj)
	b.WriteString(kind.String())
	if name := object.TypeNameOf(obj); name != kind.String() {
		b.WriteString(" (" + name + ")")
	}

	switch v := obj.(type) {
	case object.Mapping:
		keys, err := v.Keys()
		if err != nil {
			b.WriteString(" <error: " + err.Error() + ">\n")
			return
		}
		fmt.Fprintf(b, " [%d]\n", len(keys))
		for _, k := range keys {
			val, err := v.GetItem(k)
			if err != nil {
				continue
			}
			describeInto(b, object.Repr(k), val, depth+1)
		}
	case object.Sequence:
		n, _ := v.Len()
		fmt.Fprintf(b, " [%d]\n", n)
		for i := 0; i < n; i++ {
			item, err := v.GetItem(i)
			if err != nil {
				continue
			}
			describeInto(b, fmt.Sprintf("[%d]", i), item, depth+1)
		}
	case object.Iterable:
		items := members(v)
		fmt.Fprintf(b, " [%d]\n", len(items))
		for _, item := range items {
			describeInto(b, "-", item, depth+1)
		}
	default:
		b.WriteString(" = " + object.Repr(obj) + "\n")
	}
}

func members(it object.Iterable) []object.Object {
	iter, err := it.Iter()
	if err != nil {
		return nil
	}
	var out []object.Object
	for {
		item, ok, err := iter.Next()
		if err != nil || !ok {
			return out
		}
		out = append(out, item)
	}
}

// errorText formats conversion errors the way the host would raise them.
func errorText(err error) string {
	var convErr *errors.Error
	if !stderrors.As(err, &convErr) {
		return err.Error()
	}
	exc := errors.ToException(convErr)
	return exc.Type + ": " + exc.Message
}
