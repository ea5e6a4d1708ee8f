// Package jni is a generic marshalling layer over the JNI entry-point
// surface.
//
// This package contains:
//   - The closed set of marshallable value types and their descriptors
//   - Call-frame slots and the variadic argument packer
//   - Scoped local references
//   - The exception bridge that turns pending Java exceptions into errors
//   - Method, constructor and field invocation by name and signature
//
// Every entry point this package calls on an Env is followed immediately by
// Check, so a pending exception never leaks into the next call. The Env
// itself is supplied by the embedding host (see package native) or by the
// in-process runtime in package vm.
//
// An Env is only valid on the thread that obtained it. Nothing in this
// package starts goroutines or locks.
package jni
