package jni_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/chazu/jbridge/jni"
	"github.com/chazu/jbridge/vm"
)

func TestCheck_NothingPending(t *testing.T) {
	env := newEnv(t)
	if err := jni.Check(env); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	assertClean(t, env, 0)
}

func TestCheck_CapturesAndClears(t *testing.T) {
	env := newEnv(t)
	if err := jni.ThrowNew(env, "java/lang/IllegalArgumentException", "bad argument"); err != nil {
		t.Fatalf("ThrowNew: %v", err)
	}
	if !env.ExceptionCheck() {
		t.Fatal("expected a pending exception")
	}

	err := jni.Check(env)
	if !errors.Is(err, jni.ErrInvocation) {
		t.Fatalf("expected ErrInvocation, got %v", err)
	}
	if env.ExceptionCheck() {
		t.Error("expected Check to clear the exception")
	}

	var e *jni.Error
	if !errors.As(err, &e) || e.Throwable.IsNull() {
		t.Fatalf("expected a captured throwable, got %+v", err)
	}
	desc, derr := jni.Describe(env, e.Throwable)
	if derr != nil {
		t.Fatalf("Describe: %v", derr)
	}
	if desc != "java.lang.IllegalArgumentException: bad argument" {
		t.Errorf("unexpected description %q", desc)
	}

	e.Release(env)
	if e.Throwable != 0 {
		t.Error("expected Release to clear the handle")
	}
	e.Release(env)
	assertClean(t, env, 0)
}

func TestCheck_FullLocalTable(t *testing.T) {
	env := newEnv(t, vm.WithLocalCapacity(1))
	s, err := jni.NewString(env, "fills the table")
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}

	env.FindClass("app/Missing")
	err = jni.Check(env)
	if !errors.Is(err, jni.ErrInvocation) {
		t.Fatalf("expected ErrInvocation, got %v", err)
	}
	var e *jni.Error
	if !errors.As(err, &e) || !e.Throwable.IsNull() {
		t.Fatalf("expected a null throwable, got %+v", err)
	}
	if env.ExceptionCheck() {
		t.Error("expected Check to clear the exception")
	}
	e.Release(env)

	v := env.Violations()
	if len(v) != 1 || !strings.Contains(v[0], "local reference table overflow") {
		t.Errorf("expected one overflow violation, got %v", v)
	}
	env.DeleteLocalRef(jni.Object(s))
	if env.LiveRefs() != 0 {
		t.Errorf("expected no live refs, got %d", env.LiveRefs())
	}
}

func TestCheck_DescribeOption(t *testing.T) {
	tests := []struct {
		name     string
		describe bool
		want     string
	}{
		{"enabled", true, "Exception in thread \"main\" java.lang.ArithmeticException: / by zero\n"},
		{"disabled", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withOptions(t, jni.Options{DescribeExceptions: tt.describe})
			var stderr bytes.Buffer
			env := vm.New(vm.WithStderr(&stderr)).NewEnv()

			_, err := jni.CallStaticMethod[jni.Int](env, "java/lang/Math", "floorDiv", "(II)I", jni.Int(1), jni.Int(0))
			if !errors.Is(err, jni.ErrInvocation) {
				t.Fatalf("expected ErrInvocation, got %v", err)
			}
			if stderr.String() != tt.want {
				t.Errorf("expected %q on stderr, got %q", tt.want, stderr.String())
			}
			if env.ExceptionCheck() {
				t.Error("expected the exception to be cleared")
			}
		})
	}
}

func TestThrowError_RethrowsCapturedThrowable(t *testing.T) {
	env := newEnv(t)
	_, err := jni.CallStaticMethod[jni.Int](env, "java/lang/Integer", "parseInt", "(Ljava/lang/String;)I", jni.Text("x1"))
	var e *jni.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *jni.Error, got %v", err)
	}
	original := env.Deref(jni.Object(e.Throwable))
	if original == nil || original.ClassName() != "java/lang/NumberFormatException" {
		t.Fatalf("expected a NumberFormatException, got %v", original)
	}

	if err := jni.ThrowError(env, err); err != nil {
		t.Fatalf("ThrowError: %v", err)
	}
	if env.Pending() != original {
		t.Error("expected the captured throwable to be pending again")
	}
	if e.Throwable != 0 {
		t.Error("expected ThrowError to give up ownership of the handle")
	}
	env.ExceptionClear()
}

func TestThrowError_GoError(t *testing.T) {
	env := newEnv(t)
	if err := jni.ThrowError(env, errors.New("disk on fire")); err != nil {
		t.Fatalf("ThrowError: %v", err)
	}
	pending := env.Pending()
	if pending == nil || pending.ClassName() != "java/lang/RuntimeException" {
		t.Fatalf("expected a RuntimeException, got %v", pending)
	}
	if msg, _ := vm.ThrowableMessage(pending); msg != "disk on fire" {
		t.Errorf("expected message \"disk on fire\", got %q", msg)
	}
	env.ExceptionClear()
	assertClean(t, env, 0)
}

func TestThrowNew_UnknownClass(t *testing.T) {
	env := newEnv(t)
	err := jni.ThrowNew(env, "com/example/Missing", "m")
	if !errors.Is(err, jni.ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
	if env.ExceptionCheck() {
		t.Error("expected nothing pending after a failed ThrowNew")
	}
	var e *jni.Error
	errors.As(err, &e)
	e.Release(env)
	assertClean(t, env, 0)
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		err  *jni.Error
		want string
	}{
		{&jni.Error{Kind: jni.ErrInvocation}, "jni: exception raised"},
		{&jni.Error{Kind: jni.ErrLookup, Op: "FindClass", Name: "a/B"}, "jni: FindClass a/B: lookup failed"},
		{&jni.Error{Kind: jni.ErrInvocation, Op: "CallMethod", Name: "run", Signature: "()V"}, "jni: CallMethod run ()V: exception raised"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}

	wrapped := errors.Join(errors.New("context"), &jni.Error{Kind: jni.ErrLookup})
	if !errors.Is(wrapped, jni.ErrLookup) || errors.Is(wrapped, jni.ErrInvocation) {
		t.Error("sentinel matching through wrapping is broken")
	}
	if !strings.HasPrefix(jni.ErrConversion.Error(), "argument conversion") {
		t.Errorf("unexpected ErrConversion text %q", jni.ErrConversion)
	}
}
