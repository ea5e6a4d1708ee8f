package jni_test

import (
	"io"
	"testing"

	"github.com/chazu/jbridge/jni"
	"github.com/chazu/jbridge/vm"
)

func newEnv(t *testing.T, opts ...vm.Option) *vm.Env {
	t.Helper()
	opts = append([]vm.Option{vm.WithStderr(io.Discard)}, opts...)
	return vm.New(opts...).NewEnv()
}

// assertClean fails the test if env has a pending exception, recorded any
// violation, or holds a number of live references other than refs.
func assertClean(t *testing.T, env *vm.Env, refs int) {
	t.Helper()
	if env.ExceptionCheck() {
		t.Errorf("exception left pending: %s", env.Pending().ClassName())
	}
	if v := env.Violations(); len(v) != 0 {
		t.Errorf("unexpected violations: %v", v)
	}
	if got := env.LiveRefs(); got != refs {
		t.Errorf("expected %d live refs, got %d", refs, got)
	}
}

func goString(t *testing.T, env jni.Env, s jni.String) string {
	t.Helper()
	text, err := jni.GoString(env, s)
	if err != nil {
		t.Fatalf("GoString: %v", err)
	}
	return text
}

func withOptions(t *testing.T, o jni.Options) {
	t.Helper()
	prev := jni.CurrentOptions()
	jni.SetOptions(o)
	t.Cleanup(func() { jni.SetOptions(prev) })
}
