package asset

import "reflect"

// Key identifies one cached asset by path, registered type, and an
// optional variant string distinguishing multiple instances loaded from
// the same path (e.g. a font rasterized at different pixel sizes).
type Key struct {
	Path    string
	Type    reflect.Type
	Variant string
}

func keyFor[T any](path, variant string) Key {
	return Key{Path: path, Type: typeOf[T](), Variant: variant}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
