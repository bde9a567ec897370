package cache

import (
	"fmt"
	"reflect"
)

// NotSerializableError reports a cache (or one of its collaborators) that
// cannot be dehydrated: either the instance is not a known variant, or a
// collaborator's implementation type was never registered.
type NotSerializableError struct {
	Component string // "cache", "ticker", "removal listener", "weigher", "loader"
	Type      reflect.Type
}

func (e *NotSerializableError) Error() string {
	return fmt.Sprintf("cache: %s %v is not registered for serialization", e.Component, e.Type)
}

// UnknownComponentError reports a snapshot naming a component that no factory
// is registered for.
type UnknownComponentError struct {
	Name string
	Want string
}

func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("cache: component %q is not registered (want %s)", e.Name, e.Want)
}

// ComponentTypeError reports a registered factory producing a value of the
// wrong type for the role a snapshot assigns it.
type ComponentTypeError struct {
	Name string
	Want string
	Got  reflect.Type
}

func (e *ComponentTypeError) Error() string {
	return fmt.Sprintf("cache: component %q is %v, want %s", e.Name, e.Got, e.Want)
}
