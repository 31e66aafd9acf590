// Package naming provides the shared Named identity embedded by every
// model in the engine, plus name validation and path joining.
package naming

import (
	"fmt"
	"strings"
)

// Named describes an object that has a name.
type Named interface {
	Name() string
}

// NamedBase is a base implementation of Named.
type NamedBase struct {
	name string
}

// Name returns the object's name.
func (b *NamedBase) Name() string {
	return b.name
}

// MakeNamedBase creates a new NamedBase.
func MakeNamedBase(name string) NamedBase {
	return NamedBase{name: name}
}

// MustBeValid panics if name is not a valid model/port name: non-empty,
// containing no '.' (reserved for building fully-qualified paths) and no
// whitespace.
func MustBeValid(name string) {
	if err := Validate(name); err != nil {
		panic(err)
	}
}

// Validate reports whether name is usable as a model or port name.
func Validate(name string) error {
	if name == "" {
		return fmt.Errorf("naming: name must not be empty")
	}
	if strings.ContainsAny(name, ".\t\n\r ") {
		return fmt.Errorf("naming: name %q must not contain '.' or whitespace", name)
	}
	return nil
}

// Join builds a fully-qualified dotted path from a sequence of names, most
// distant ancestor first.
func Join(parts ...string) string {
	return strings.Join(parts, ".")
}
