package lockfile

import (
	"errors"
	"fmt"
)

// ErrInvalidInputKind is matched by errors.Is for every *InvalidInputKindError.
var ErrInvalidInputKind = errors.New("invalid input kind")

// InvalidInputKindError is returned when the input is neither an object nor
// text. Type names the Go type that was passed.
type InvalidInputKindError struct {
	Type string
}

func (e *InvalidInputKindError) Error() string {
	return fmt.Sprintf("expect string or object, got %s", e.Type)
}

// Is makes the error match ErrInvalidInputKind.
func (e *InvalidInputKindError) Is(target error) bool {
	return target == ErrInvalidInputKind
}

// Kind tells which variant of an Input is set.
type Kind int

const (
	KindObject Kind = iota + 1
	KindText
)

// Input holds either a parsed object or raw lock file text.
type Input struct {
	kind   Kind
	object *Object
	text   string
}

// ObjectInput wraps a parsed lock file.
func ObjectInput(obj *Object) Input {
	if obj == nil {
		obj = NewObject()
	}
	return Input{kind: KindObject, object: obj}
}

// TextInput wraps the raw content of a lock file.
func TextInput(text string) Input {
	return Input{kind: KindText, text: text}
}

// InputOf builds an Input from a dynamically typed value. It accepts
// *Object, map[string]any, string and []byte.
func InputOf(v any) (Input, error) {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return Input{}, &InvalidInputKindError{Type: "<nil>"}
		}
		return ObjectInput(t), nil
	case map[string]any:
		return ObjectInput(ObjectFromMap(t)), nil
	case string:
		return TextInput(t), nil
	case []byte:
		return TextInput(string(t)), nil
	case nil:
		return Input{}, &InvalidInputKindError{Type: "<nil>"}
	}
	return Input{}, &InvalidInputKindError{Type: fmt.Sprintf("%T", v)}
}

// Kind returns the active variant, or 0 for the zero Input.
func (in Input) Kind() Kind { return in.kind }
