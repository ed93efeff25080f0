package types

import (
	"context"
	"reflect"
)

type Signatures []Signature

// Lookup returns the signature with the given method name or nil.
func (s Signatures) Lookup(name string) *Signature {
	for i := range s {
		sig := &s[i]
		if sig.Name == name {
			return sig
		}
	}
	return nil
}

// Signature describes one command method with its input and output shapes.
type Signature struct {
	Name        string
	Description string
	Input       reflect.Type
	Output      reflect.Type
}

// Executable runs a command, decoding input into the method's input shape
// and writing the result through output.
type Executable func(context context.Context, input, output interface{}) error
