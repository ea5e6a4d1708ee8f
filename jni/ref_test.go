package jni_test

import (
	"testing"

	"github.com/chazu/jbridge/jni"
)

func TestLocalRef_Close(t *testing.T) {
	env := newEnv(t)
	ref := jni.NewLocalRef(env, env.NewStringUTF("scoped"))
	if !ref.Valid() {
		t.Fatal("expected an armed ref")
	}
	if env.LiveRefs() != 1 {
		t.Fatalf("expected 1 live ref, got %d", env.LiveRefs())
	}

	ref.Close()
	if ref.Valid() {
		t.Error("expected Close to disarm the ref")
	}
	ref.Close()
	assertClean(t, env, 0)
}

func TestLocalRef_Release(t *testing.T) {
	env := newEnv(t)
	s := env.NewStringUTF("escapes")

	var out jni.String
	func() {
		ref := jni.NewLocalRef(env, s)
		defer ref.Close()
		if ref.Get() != s {
			t.Fatal("Get returned a different handle")
		}
		out = ref.Release()
		if ref.Valid() {
			t.Error("expected Release to disarm the ref")
		}
	}()

	if out != s {
		t.Fatal("Release returned a different handle")
	}
	if got := goString(t, env, out); got != "escapes" {
		t.Errorf("expected the released handle to stay live, got %q", got)
	}
	env.DeleteLocalRef(jni.Object(out))
	assertClean(t, env, 0)
}

func TestLocalRef_Null(t *testing.T) {
	env := newEnv(t)
	ref := jni.NewLocalRef(env, jni.Object(0))
	if ref.Valid() {
		t.Error("a null ref is never valid")
	}
	ref.Close()
	assertClean(t, env, 0)
}

func TestLocalRef_ClosedWithPendingException(t *testing.T) {
	env := newEnv(t)
	ref := jni.NewLocalRef(env, env.NewStringUTF("x"))

	env.FindClass("java/lang/Nope")
	ref.Close()
	if !env.ExceptionCheck() {
		t.Fatal("expected the exception to stay pending")
	}
	env.ExceptionClear()
	assertClean(t, env, 0)
}
