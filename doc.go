// Package hostbridge moves statically typed Go values in and out of the
// dynamic object model of an embedded scripting host.
//
// Values cross the boundary through the serde data model: a Go value is
// serialized straight into host objects, and a host object is walked by a
// deserializer that answers whatever shape the Go target asks for.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	hostbridge/          Root package with the Codec convenience API
//	├── serde/           Data model, visitor protocol and reflect drivers
//	├── transcoder/      Encoder, Decoder, strategies and format bridges
//	├── object/          Host object model and protocols
//	│   └── literal/     Parser for host literal syntax
//	├── errors/          Structured error types mapped to host exceptions
//	└── cmd/hostconv/    Converter CLI and interactive REPL
//
// # Quick Start
//
// Encode a Go value and read it back:
//
//	type Point struct {
//	    X int `serde:"x"`
//	    Y int `serde:"y"`
//	}
//
//	obj, err := hostbridge.ToHost(Point{X: 1, Y: 2})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(object.Repr(obj)) // {'x': 1, 'y': 2}
//
//	p, err := hostbridge.FromHost[Point](obj)
//
// # Containers
//
// A Codec carries the transcoder.Strategy that picks the host containers
// the encoder creates. The zero Codec uses list, tuple and dict:
//
//	codec := hostbridge.NewCodec(transcoder.Strategy{
//	    Tuple: transcoder.ListKind{},
//	})
//
// # Errors
//
// Failures are *errors.Error values with a path to the offending value.
// errors.ToException turns one into the exception the host raises.
//
// # Thread Safety
//
// Codec, Encoder and Decoder hold no mutable state and are safe for
// concurrent use. Host objects themselves are not synchronized; callers
// must not mutate an object while it is being encoded or decoded.
package hostbridge
