package serde

import (
	"reflect"
	"sync"
)

// Extension teaches the reflect drivers about a type they cannot inspect,
// typically an interface implemented by opaque handles. Register
// extensions from init, before any value of the type is processed.
type Extension struct {
	// Type is matched exactly, or by implementation when it is an interface.
	Type reflect.Type
	// Source returns the replayable form of v.
	Source func(v any) Source
	// Deserialize builds a value assignable to the matched type.
	Deserialize func(d Deserializer) (any, error)
}

var (
	extMu      sync.RWMutex
	extensions []*Extension
)

func Register(ext Extension) {
	extMu.Lock()
	defer extMu.Unlock()
	extensions = append(extensions, &ext)
}

func lookupExtension(t reflect.Type) *Extension {
	extMu.RLock()
	defer extMu.RUnlock()
	for _, ext := range extensions {
		if t == ext.Type {
			return ext
		}
	}
	for _, ext := range extensions {
		if ext.Type.Kind() == reflect.Interface && t.Kind() != reflect.Interface && t.Implements(ext.Type) {
			return ext
		}
	}
	return nil
}
