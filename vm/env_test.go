package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chazu/jbridge/jni"
)

func TestEnv_CallStaticRaw(t *testing.T) {
	env := New().NewEnv()

	cls := env.FindClass("java/lang/String")
	if cls == 0 {
		t.Fatal("FindClass returned null")
	}
	mid := env.GetStaticMethodID(cls, "valueOf", "(I)Ljava/lang/String;")
	if mid == 0 {
		t.Fatal("GetStaticMethodID returned 0")
	}
	str := env.CallStaticObjectMethodA(cls, mid, []jni.Value{jni.Int(42).Value()})
	if env.ExceptionCheck() {
		t.Fatal("unexpected pending exception")
	}
	s, ok := env.GetStringUTFChars(jni.String(str))
	if !ok || s != "42" {
		t.Errorf("expected \"42\", got %q (ok=%v)", s, ok)
	}

	env.DeleteLocalRef(str)
	env.DeleteLocalRef(jni.Object(cls))
	if env.LiveRefs() != 0 {
		t.Errorf("expected no live refs, got %d", env.LiveRefs())
	}
	if v := env.Violations(); len(v) != 0 {
		t.Errorf("unexpected violations: %v", v)
	}
}

func TestEnv_LookupFailuresRaise(t *testing.T) {
	env := New().NewEnv()

	tests := []struct {
		name string
		run  func() bool
		want string
	}{
		{"FindClass", func() bool { return env.FindClass("java/lang/Nope") == 0 }, "java/lang/NoClassDefFoundError"},
		{"FindClass dotted", func() bool { return env.FindClass("java.lang.String") == 0 }, "java/lang/NoClassDefFoundError"},
		{"GetMethodID", func() bool {
			cls := env.FindClass("java/lang/Object")
			defer env.DeleteLocalRef(jni.Object(cls))
			return env.GetMethodID(cls, "nope", "()V") == 0
		}, "java/lang/NoSuchMethodError"},
		{"GetStaticFieldID", func() bool {
			cls := env.FindClass("java/lang/Integer")
			defer env.DeleteLocalRef(jni.Object(cls))
			return env.GetStaticFieldID(cls, "MAX_VALUE", "J") == 0
		}, "java/lang/NoSuchFieldError"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.run() {
				t.Fatal("expected a zero result")
			}
			if !env.ExceptionCheck() {
				t.Fatal("expected a pending exception")
			}
			if got := env.Pending().ClassName(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
			env.ExceptionClear()
		})
	}
	if v := env.Violations(); len(v) != 0 {
		t.Errorf("unexpected violations: %v", v)
	}
}

func TestEnv_ReferenceArgumentClassIsChecked(t *testing.T) {
	env := New().NewEnv()
	cls := env.FindClass("java/lang/Integer")
	defer env.DeleteLocalRef(jni.Object(cls))
	mid := env.GetStaticMethodID(cls, "parseInt", "(Ljava/lang/String;)I")

	boxed := env.NewLocal(env.VM().Box("java/lang/Integer", Int(7)))
	defer env.DeleteLocalRef(boxed)
	if got := env.CallStaticIntMethodA(cls, mid, []jni.Value{boxed.Value()}); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	v := env.Violations()
	if len(v) != 1 || !strings.Contains(v[0], "argument 0 is a java.lang.Integer, want Ljava/lang/String;") {
		t.Errorf("unexpected violations: %v", v)
	}
	if env.ExceptionCheck() {
		t.Error("a violation must not raise")
	}

	// Any object passes for Object, and null passes for any class.
	str := env.FindClass("java/lang/String")
	defer env.DeleteLocalRef(jni.Object(str))
	valueOf := env.GetStaticMethodID(str, "valueOf", "(Ljava/lang/Object;)Ljava/lang/String;")
	s := env.CallStaticObjectMethodA(str, valueOf, []jni.Value{boxed.Value()})
	env.DeleteLocalRef(s)
	env.CallStaticIntMethodA(cls, mid, []jni.Value{jni.NullValue()})
	if !env.ExceptionCheck() || env.Pending().ClassName() != "java/lang/NumberFormatException" {
		t.Errorf("expected parseInt(null) to raise NumberFormatException, got %v", env.Pending())
	}
	env.ExceptionClear()
	if len(env.Violations()) != 1 {
		t.Errorf("expected no further violations, got %v", env.Violations())
	}
}

func TestEnv_CallWhilePendingIsViolation(t *testing.T) {
	env := New().NewEnv()

	env.FindClass("java/lang/Nope")
	if !env.ExceptionCheck() {
		t.Fatal("expected a pending exception")
	}
	if cls := env.FindClass("java/lang/String"); cls != 0 {
		t.Error("expected FindClass to refuse while an exception is pending")
	}
	v := env.Violations()
	if len(v) != 1 || !strings.Contains(v[0], "FindClass called with java.lang.NoClassDefFoundError pending") {
		t.Errorf("unexpected violations: %v", v)
	}

	// The Exception* family and DeleteLocalRef stay legal.
	thr := env.ExceptionOccurred()
	env.ExceptionClear()
	env.DeleteLocalRef(jni.Object(thr))
	if len(env.Violations()) != 1 {
		t.Errorf("expected no further violations, got %v", env.Violations())
	}
}

func TestEnv_FrameMismatchIsViolation(t *testing.T) {
	env := New().NewEnv()
	cls := env.FindClass("java/lang/Math")
	defer env.DeleteLocalRef(jni.Object(cls))
	mid := env.GetStaticMethodID(cls, "max", "(II)I")

	tests := []struct {
		name string
		call func() jni.Int
		want string
	}{
		{"short frame", func() jni.Int {
			return env.CallStaticIntMethodA(cls, mid, []jni.Value{jni.Int(1).Value()})
		}, "takes 2 arguments, frame has 1"},
		{"wrong kind", func() jni.Int {
			return env.CallStaticIntMethodA(cls, mid, []jni.Value{jni.Int(1).Value(), jni.Long(2).Value()})
		}, "argument 1 is long, want int"},
		{"wrong return family", func() jni.Int {
			return jni.Int(env.CallStaticLongMethodA(cls, mid, []jni.Value{jni.Int(1).Value(), jni.Int(2).Value()}))
		}, "returns I"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(env.Violations())
			if got := tt.call(); got != 0 {
				t.Errorf("expected 0, got %d", got)
			}
			v := env.Violations()
			if len(v) != before+1 || !strings.Contains(v[before], tt.want) {
				t.Errorf("expected a violation containing %q, got %v", tt.want, v[before:])
			}
			if env.ExceptionCheck() {
				t.Error("a violation must not raise")
			}
		})
	}
}

func TestEnv_DeleteLocalRef(t *testing.T) {
	env := New().NewEnv()
	s := env.NewStringUTF("x")
	if env.LiveRefs() != 1 {
		t.Fatalf("expected 1 live ref, got %d", env.LiveRefs())
	}

	env.DeleteLocalRef(0)
	env.DeleteLocalRef(jni.Object(s))
	if env.LiveRefs() != 0 {
		t.Fatalf("expected 0 live refs, got %d", env.LiveRefs())
	}
	if len(env.Violations()) != 0 {
		t.Fatalf("unexpected violations: %v", env.Violations())
	}

	env.DeleteLocalRef(jni.Object(s))
	if v := env.Violations(); len(v) != 1 || !strings.Contains(v[0], "invalid or deleted reference") {
		t.Errorf("expected a double-delete violation, got %v", v)
	}

	if _, ok := env.GetStringUTFChars(s); ok {
		t.Error("expected a stale handle to be rejected")
	}
}

func TestEnv_LocalCapacity(t *testing.T) {
	env := New(WithLocalCapacity(2)).NewEnv()

	a := env.NewStringUTF("a")
	b := env.NewStringUTF("b")
	if a == 0 || b == 0 {
		t.Fatal("expected the first two strings to fit")
	}
	if c := env.NewStringUTF("c"); c != 0 {
		t.Error("expected overflow to return null")
	}
	if !env.ExceptionCheck() || env.Pending().ClassName() != "java/lang/OutOfMemoryError" {
		t.Fatal("expected a pending OutOfMemoryError")
	}
	env.ExceptionClear()
	if env.PeakRefs() != 2 {
		t.Errorf("expected peak 2, got %d", env.PeakRefs())
	}
	if len(env.Violations()) != 1 {
		t.Errorf("expected one overflow violation, got %v", env.Violations())
	}
}

func TestEnv_ExceptionDescribe(t *testing.T) {
	var stderr bytes.Buffer
	env := New(WithStderr(&stderr)).NewEnv()

	cls := env.FindClass("java/lang/IllegalStateException")
	if rc := env.ThrowNew(cls, "bad state"); rc != 0 {
		t.Fatalf("ThrowNew returned %d", rc)
	}
	env.DeleteLocalRef(jni.Object(cls))

	env.ExceptionDescribe()
	if env.ExceptionCheck() {
		t.Error("ExceptionDescribe should clear the exception")
	}
	want := "Exception in thread \"main\" java.lang.IllegalStateException: bad state\n"
	if stderr.String() != want {
		t.Errorf("expected %q, got %q", want, stderr.String())
	}
}

func TestEnv_ThrowRethrowsSameObject(t *testing.T) {
	env := New().NewEnv()

	cls := env.FindClass("java/lang/Math")
	mid := env.GetStaticMethodID(cls, "floorDiv", "(II)I")
	env.CallStaticIntMethodA(cls, mid, []jni.Value{jni.Int(1).Value(), jni.Int(0).Value()})
	thr := env.ExceptionOccurred()
	first := env.Pending()
	env.ExceptionClear()

	if rc := env.Throw(thr); rc != 0 {
		t.Fatalf("Throw returned %d", rc)
	}
	if env.Pending() != first {
		t.Error("expected Throw to make the same throwable pending")
	}
	if msg, _ := ThrowableMessage(env.Pending()); msg != "/ by zero" {
		t.Errorf("expected \"/ by zero\", got %q", msg)
	}
	env.ExceptionClear()

	// A non-throwable cannot be thrown.
	if rc := env.Throw(jni.Throwable(cls)); rc == 0 {
		t.Error("expected Throw of a class mirror to fail")
	}
}

func TestEnv_InstanceCallsAndFields(t *testing.T) {
	env := New().NewEnv()

	cls := env.FindClass("java/lang/Integer")
	ctor := env.GetMethodID(cls, "<init>", "(I)V")
	obj := env.NewObjectA(cls, ctor, []jni.Value{jni.Int(7).Value()})
	if obj == 0 || env.ExceptionCheck() {
		t.Fatal("NewObjectA failed")
	}

	fid := env.GetFieldID(cls, "value", "I")
	if got := env.GetIntField(obj, fid); got != 7 {
		t.Errorf("expected value 7, got %d", got)
	}
	mid := env.GetMethodID(cls, "doubleValue", "()D")
	if got := env.CallDoubleMethodA(obj, mid, nil); got != 7 {
		t.Errorf("expected 7.0, got %v", got)
	}
	maxID := env.GetStaticFieldID(cls, "MAX_VALUE", "I")
	if got := env.GetStaticIntField(cls, maxID); got != 2147483647 {
		t.Errorf("expected MAX_VALUE, got %d", got)
	}

	// Object.toString resolved on Object dispatches to Integer.toString.
	objCls := env.FindClass("java/lang/Object")
	toString := env.GetMethodID(objCls, "toString", "()Ljava/lang/String;")
	s := env.CallObjectMethodA(obj, toString, nil)
	if text, _ := env.GetStringUTFChars(jni.String(s)); text != "7" {
		t.Errorf("expected \"7\", got %q", text)
	}

	// Null receiver raises.
	env.CallObjectMethodA(0, toString, nil)
	if !env.ExceptionCheck() || env.Pending().ClassName() != "java/lang/NullPointerException" {
		t.Error("expected a NullPointerException")
	}
	env.ExceptionClear()

	for _, h := range []jni.Object{s, obj, jni.Object(objCls), jni.Object(cls)} {
		env.DeleteLocalRef(h)
	}
	if env.LiveRefs() != 0 {
		t.Errorf("expected no live refs, got %d", env.LiveRefs())
	}
	if len(env.Violations()) != 0 {
		t.Errorf("unexpected violations: %v", env.Violations())
	}
}
