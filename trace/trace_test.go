package trace

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chazu/jbridge/jni"
	"github.com/chazu/jbridge/vm"
)

func newTraced(t *testing.T) (*Env, *vm.Env) {
	t.Helper()
	inner := vm.New(vm.WithStderr(io.Discard)).NewEnv()
	return Wrap(inner, t.Name()), inner
}

func TestWrap_RecordsCalls(t *testing.T) {
	env, _ := newTraced(t)

	s, err := jni.CallStaticMethod[jni.String](env, "java/lang/String", "valueOf", "(I)Ljava/lang/String;", jni.Int(42))
	if err != nil {
		t.Fatalf("CallStaticMethod: %v", err)
	}
	env.DeleteLocalRef(s.Object())

	want := []string{
		"FindClass", "ExceptionCheck",
		"GetStaticMethodID", "ExceptionCheck",
		"CallStaticObjectMethodA", "ExceptionCheck",
		"DeleteLocalRef", // class
		"DeleteLocalRef", // result
	}
	l := env.Log()
	if diff := cmp.Diff(want, l.Ops()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	if got := l.Calls[4].Args[2]; got != "[I:42]" {
		t.Errorf("expected packed args [I:42], got %s", got)
	}
	if l.Calls[0].Args[0] != `"java/lang/String"` {
		t.Errorf("unexpected FindClass args %v", l.Calls[0].Args)
	}
	if l.Session == "" || l.Name != t.Name() {
		t.Errorf("unexpected session header %+v", l)
	}
	if v := Verify(l); len(v) != 0 {
		t.Errorf("unexpected violations: %v", v)
	}
}

func TestWrap_BridgeOperationsVerify(t *testing.T) {
	env, inner := newTraced(t)

	obj, err := jni.NewObject(env, "java/lang/Integer", "(I)V", jni.Int(7))
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	if _, err := jni.GetField[jni.Int](env, obj, "value"); err != nil {
		t.Fatalf("GetField: %v", err)
	}
	if _, err := jni.CallMethod[jni.String](env, obj, "toString", "()Ljava/lang/String;"); err != nil {
		t.Fatalf("CallMethod: %v", err)
	}
	_, err = jni.CallStaticMethod[jni.Int](env, "java/lang/Math", "floorDiv", "(II)I", jni.Int(1), jni.Int(0))
	var e *jni.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *jni.Error, got %v", err)
	}
	if _, err := jni.FindClass(env, "com/example/Missing"); !errors.Is(err, jni.ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
	if err := jni.ThrowError(env, e); err != nil {
		t.Fatalf("ThrowError: %v", err)
	}

	if v := Verify(env.Log()); len(v) != 0 {
		t.Errorf("unexpected violations: %v", v)
	}
	if v := inner.Violations(); len(v) != 0 {
		t.Errorf("unexpected runtime violations: %v", v)
	}
}

func TestVerify(t *testing.T) {
	calls := func(ops ...string) *Log {
		l := &Log{}
		for i, op := range ops {
			c := Call{Seq: i + 1, Op: op}
			if name, result, ok := strings.Cut(op, "="); ok {
				c.Op, c.Result = name, result
			}
			l.Calls = append(l.Calls, c)
		}
		return l
	}

	tests := []struct {
		name string
		log  *Log
		want []string
	}{
		{
			name: "checked",
			log:  calls("FindClass", "ExceptionCheck", "GetMethodID", "ExceptionCheck"),
		},
		{
			name: "capture sequence",
			log: calls("CallIntMethodA", "ExceptionCheck", "ExceptionOccurred",
				"ExceptionDescribe", "ExceptionClear", "DeleteLocalRef", "FindClass", "ExceptionCheck"),
		},
		{
			name: "delete before check",
			log:  calls("CallVoidMethodA", "DeleteLocalRef", "ExceptionCheck"),
		},
		{
			name: "missing check",
			log:  calls("FindClass", "GetMethodID", "ExceptionCheck"),
			want: []string{"#2 GetMethodID: follows #1 FindClass without an exception check"},
		},
		{
			name: "unchecked at end",
			log:  calls("FindClass", "ExceptionCheck", "NewStringUTF", "DeleteLocalRef"),
			want: []string{"#3 NewStringUTF: never checked for an exception"},
		},
		{
			name: "throw at end",
			log:  calls("FindClass", "ExceptionCheck", "ThrowNew", "DeleteLocalRef"),
		},
		{
			name: "call after throw",
			log:  calls("Throw", "FindClass", "ExceptionCheck"),
			want: []string{"#2 FindClass: called while the exception from #1 Throw is pending"},
		},
		{
			name: "throw then clear",
			log:  calls("Throw", "ExceptionClear", "FindClass", "ExceptionCheck"),
		},
		{
			name: "call after positive check",
			log:  calls("CallIntMethodA", "ExceptionCheck=true", "FindClass", "ExceptionCheck=false"),
			want: []string{"#3 FindClass: called while the exception from #1 CallIntMethodA is pending"},
		},
		{
			name: "positive check then clear",
			log: calls("CallIntMethodA", "ExceptionCheck=true", "ExceptionOccurred",
				"ExceptionClear", "FindClass", "ExceptionCheck=false"),
		},
		{
			name: "positive check then describe",
			log:  calls("GetMethodID", "ExceptionCheck=true", "ExceptionDescribe", "FindClass", "ExceptionCheck"),
		},
		{
			name: "negative check",
			log:  calls("CallIntMethodA", "ExceptionCheck=false", "FindClass", "ExceptionCheck=false"),
		},
		{
			name: "positive check at end",
			log:  calls("FindClass", "ExceptionCheck=true"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, v := range Verify(tt.log) {
				got = append(got, v.String())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("violations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVerify_CallAfterPositiveCheck(t *testing.T) {
	env, inner := newTraced(t)

	env.FindClass("app/Missing")
	if !env.ExceptionCheck() {
		t.Fatal("expected NoClassDefFoundError to be pending")
	}
	env.FindClass("java/lang/Object")
	env.ExceptionCheck()

	want := []string{"#3 FindClass: called while the exception from #1 FindClass is pending"}
	var got []string
	for _, v := range Verify(env.Log()) {
		got = append(got, v.String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("violations mismatch (-want +got):\n%s", diff)
	}
	if len(inner.Violations()) == 0 {
		t.Error("expected the runtime to flag the same call")
	}
}

func TestMarshal(t *testing.T) {
	env, _ := newTraced(t)
	if _, err := jni.CallStaticMethod[jni.Void](env, "java/lang/System", "gc", "()V"); err != nil {
		t.Fatalf("gc: %v", err)
	}
	l := env.Log()

	data, err := Marshal(l)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := Marshal(l)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != string(again) {
		t.Error("expected canonical encoding to be deterministic")
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(l, got); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}

	if _, err := Unmarshal([]byte{0xff}); err == nil || !strings.HasPrefix(err.Error(), "trace: unmarshal log") {
		t.Errorf("expected an unmarshal error, got %v", err)
	}
}

func TestStore(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "traces", "jbridge.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	env, _ := newTraced(t)
	if _, err := jni.FindClass(env, "java/lang/Object"); err != nil {
		t.Fatalf("FindClass: %v", err)
	}
	good := env.Log()

	bad := &Log{Session: "bad-session", Name: "bad", StartedAt: good.StartedAt + 1,
		Calls: []Call{{Seq: 1, Op: "FindClass"}, {Seq: 2, Op: "FindClass"}}}

	for _, l := range []*Log{good, bad} {
		if err := store.Save(l); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	// Saving again replaces the row.
	if err := store.Save(good); err != nil {
		t.Fatalf("Save: %v", err)
	}

	sums, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sums))
	}
	if sums[0].Session != good.Session || sums[0].Calls != 2 || sums[0].Violations != 0 {
		t.Errorf("unexpected first summary %+v", sums[0])
	}
	if sums[1].Session != "bad-session" || sums[1].Violations != 2 {
		t.Errorf("unexpected second summary %+v", sums[1])
	}

	loaded, err := store.Load(good.Session)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(good, loaded); diff != "" {
		t.Errorf("loaded log mismatch (-want +got):\n%s", diff)
	}

	if _, err := store.Load("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if err := store.Delete("bad-session"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete("bad-session"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound on second delete, got %v", err)
	}
}
