// Package extension provides run-time registries exposing engine commands
// and user-defined Go types (for example custom command inputs or outputs)
// to embedding applications.
//
// The registries are normally populated through the public APIs of the root
// gridlock package, therefore most applications do not need to import this
// package directly.
package extension
