package jni_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chazu/jbridge/jni"
)

func TestNames(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{jni.InternalName("java.lang.String"), "java/lang/String"},
		{jni.InternalName("java.util.Map$Entry"), "java/util/Map$Entry"},
		{jni.BinaryName("java/lang/String"), "java.lang.String"},
		{jni.ClassSignature("java.util.List"), "Ljava/util/List;"},
		{jni.ArraySignature("I"), "[I"},
		{jni.ArraySignature(jni.ClassSignature("java.lang.String")), "[Ljava/lang/String;"},
		{jni.MethodSignature("V"), "()V"},
		{jni.MethodSignature("Ljava/lang/String;", "I", "[J"), "(I[J)Ljava/lang/String;"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, tt.got)
		}
	}
}

func TestParseMethodSignature(t *testing.T) {
	tests := []struct {
		sig    string
		params []string
		ret    string
	}{
		{"()V", nil, "V"},
		{"(I)Ljava/lang/String;", []string{"I"}, "Ljava/lang/String;"},
		{"(ZBCSIJFD)D", []string{"Z", "B", "C", "S", "I", "J", "F", "D"}, "D"},
		{"([[ILjava/lang/Object;J)[Ljava/lang/String;", []string{"[[I", "Ljava/lang/Object;", "J"}, "[Ljava/lang/String;"},
	}
	for _, tt := range tests {
		params, ret, err := jni.ParseMethodSignature(tt.sig)
		if err != nil {
			t.Errorf("%s: %v", tt.sig, err)
			continue
		}
		if diff := cmp.Diff(tt.params, params); diff != "" {
			t.Errorf("%s: params mismatch (-want +got):\n%s", tt.sig, diff)
		}
		if ret != tt.ret {
			t.Errorf("%s: expected return %q, got %q", tt.sig, tt.ret, ret)
		}
	}

	for _, bad := range []string{"", "I", "(I", "(Q)V", "(Ljava/lang/String)V", "()", "()VV", "()[V", "(V)V"} {
		if _, _, err := jni.ParseMethodSignature(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestKindForSignature(t *testing.T) {
	tests := []struct {
		sig  string
		kind jni.Kind
		ok   bool
	}{
		{"I", jni.KindInt, true},
		{"Ljava/lang/String;", jni.KindString, true},
		{"Ljava/lang/Throwable;", jni.KindThrowable, true},
		{"Ljava/util/List;", jni.KindObject, true},
		{"[I", jni.KindObject, true},
		{"Ljava/util/List", jni.KindObject, false},
		{"Q", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		kind, ok := jni.KindForSignature(tt.sig)
		if ok != tt.ok || (ok && kind != tt.kind) {
			t.Errorf("KindForSignature(%q) = %s, %v; want %s, %v", tt.sig, kind, ok, tt.kind, tt.ok)
		}
	}
}
