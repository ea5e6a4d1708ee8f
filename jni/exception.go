package jni

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jbridge.jni")

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Options tunes process-wide bridge behaviour. Set it once at start-up.
type Options struct {
	// DescribeExceptions calls ExceptionDescribe on every captured
	// exception before it is cleared.
	DescribeExceptions bool

	// KeepPackedStrings leaves strings created while packing arguments
	// alive after the call returns. The host is then responsible for them,
	// typically by running calls inside PushLocalFrame/PopLocalFrame.
	KeepPackedStrings bool
}

// DefaultOptions describes exceptions and releases packed strings.
func DefaultOptions() Options {
	return Options{DescribeExceptions: true}
}

var options atomic.Pointer[Options]

func init() {
	o := DefaultOptions()
	options.Store(&o)
}

// SetOptions replaces the current options.
func SetOptions(o Options) {
	options.Store(&o)
}

// CurrentOptions returns the options in effect.
func CurrentOptions() Options {
	return *options.Load()
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	// ErrLookup marks a failed class, method or field resolution.
	ErrLookup = errors.New("lookup failed")

	// ErrInvocation marks an exception raised by a call, constructor or
	// field access.
	ErrInvocation = errors.New("exception raised")

	// ErrConversion marks a failed native-to-Java argument conversion.
	ErrConversion = errors.New("argument conversion failed")
)

// Error is the single error type produced from a pending Java exception.
// Throwable is a local reference owned by whoever handles the error; call
// Release once it is no longer needed, or ThrowError to hand it back to the
// JVM.
type Error struct {
	Kind      error
	Op        string
	Name      string
	Signature string

	// Throwable is null when the JVM could not issue a local reference for
	// the exception, typically because the local reference table is full.
	// The exception is still cleared and Kind still reports the failure.
	Throwable Throwable
}

func (e *Error) Error() string {
	msg := "jni: "
	if e.Op != "" {
		msg += e.Op
		if e.Name != "" {
			msg += " " + e.Name
		}
		if e.Signature != "" {
			msg += " " + e.Signature
		}
		msg += ": "
	}
	return msg + e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

// Release deletes the captured throwable reference.
func (e *Error) Release(env Env) {
	if e.Throwable != 0 {
		env.DeleteLocalRef(Object(e.Throwable))
		e.Throwable = 0
	}
}

// annotate records where a bridge error happened. Errors that did not come
// from the bridge are returned unchanged.
func annotate(err error, kind error, op, name, sig string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	if kind != nil {
		e.Kind = kind
	}
	if e.Op == "" {
		e.Op, e.Name, e.Signature = op, name, sig
	}
	return e
}

// ---------------------------------------------------------------------------
// Check
// ---------------------------------------------------------------------------

// Check inspects the pending-exception state. If an exception is pending it
// is captured, optionally described, cleared, and returned as an *Error of
// kind ErrInvocation. Check must run after every entry point that can
// throw, before any other entry point. The returned error's Throwable may be
// null; see Error.
func Check(env Env) error {
	if !env.ExceptionCheck() {
		return nil
	}
	exc := env.ExceptionOccurred()
	if CurrentOptions().DescribeExceptions {
		env.ExceptionDescribe()
	}
	env.ExceptionClear()
	log.Warningf("java exception captured and cleared (throwable %#x)", uintptr(exc))
	return &Error{Kind: ErrInvocation, Throwable: exc}
}

// checked pairs an entry point's result with the Check that must follow it.
func checked(env Env, v Value) (Value, error) {
	if err := Check(env); err != nil {
		return Value{}, err
	}
	return v, nil
}

// ---------------------------------------------------------------------------
// Rethrow
// ---------------------------------------------------------------------------

// ThrowError makes err pending in the JVM so a native method can return to
// Java with it. A bridge *Error rethrows its captured throwable and gives up
// ownership of it; any other error becomes a java/lang/RuntimeException
// carrying err's text.
func ThrowError(env Env, err error) error {
	var e *Error
	if errors.As(err, &e) && e.Throwable != 0 {
		if rc := env.Throw(e.Throwable); rc != 0 {
			return fmt.Errorf("jni: Throw failed with status %d", rc)
		}
		// The JVM holds the exception now; the local reference is released
		// when the native frame returns.
		e.Throwable = 0
		return nil
	}
	return ThrowNew(env, "java/lang/RuntimeException", err.Error())
}

// ThrowNew raises a new exception of the named class with msg.
func ThrowNew(env Env, className, msg string) error {
	cls, err := FindClass(env, className)
	if err != nil {
		return err
	}
	rc := env.ThrowNew(cls, msg)
	// DeleteLocalRef is legal while an exception is pending.
	env.DeleteLocalRef(Object(cls))
	if rc != 0 {
		return fmt.Errorf("jni: ThrowNew %s failed with status %d", className, rc)
	}
	return nil
}

// Describe renders a throwable through its toString method.
func Describe(env Env, t Throwable) (string, error) {
	s, err := CallMethod[String](env, Object(t), "toString", "()Ljava/lang/String;")
	if err != nil {
		return "", err
	}
	ref := NewLocalRef(env, s)
	defer ref.Close()
	return GoString(env, s)
}
