package jni_test

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chazu/jbridge/jni"
	"github.com/chazu/jbridge/vm"
)

func TestSignatureOf(t *testing.T) {
	got := []string{
		jni.SignatureOf[jni.Void](),
		jni.SignatureOf[jni.Boolean](),
		jni.SignatureOf[jni.Byte](),
		jni.SignatureOf[jni.Char](),
		jni.SignatureOf[jni.Short](),
		jni.SignatureOf[jni.Int](),
		jni.SignatureOf[jni.Long](),
		jni.SignatureOf[jni.Float](),
		jni.SignatureOf[jni.Double](),
		jni.SignatureOf[jni.Object](),
		jni.SignatureOf[jni.String](),
		jni.SignatureOf[jni.Class](),
		jni.SignatureOf[jni.Throwable](),
	}
	want := []string{
		"V", "Z", "B", "C", "S", "I", "J", "F", "D",
		"Ljava/lang/Object;",
		"Ljava/lang/String;",
		"Ljava/lang/Class;",
		"Ljava/lang/Throwable;",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("signatures mismatch (-want +got):\n%s", diff)
	}
}

func TestDescriptors_Table(t *testing.T) {
	ds := jni.Descriptors()
	if len(ds) != 13 {
		t.Fatalf("expected 13 descriptors, got %d", len(ds))
	}
	for i, d := range ds {
		if d.Kind != jni.Kind(i) {
			t.Errorf("descriptor %d has kind %s", i, d.Kind)
		}
		if d.CallMethod == nil || d.CallStaticMethod == nil {
			t.Errorf("%s: missing call accessors", d.Kind)
		}
		hasFields := d.GetField != nil && d.GetStaticField != nil
		if hasFields == (d.Kind == jni.KindVoid) {
			t.Errorf("%s: field accessors present = %v", d.Kind, hasFields)
		}
		if k, ok := jni.KindForSignature(d.Signature); d.Kind != jni.KindVoid && (!ok || k != d.Kind) {
			t.Errorf("KindForSignature(%q) = %s, %v", d.Signature, k, ok)
		}
	}

	if jni.DescriptorOf[jni.Long]() != jni.DescriptorOf[jni.Long]() {
		t.Error("expected DescriptorOf to return the single table entry")
	}
}

func TestDescriptors_StaticFieldsEveryPrimitive(t *testing.T) {
	env := newEnv(t)

	check := func(name string, got, want any, err error) {
		t.Helper()
		if err != nil {
			t.Errorf("%s: %v", name, err)
			return
		}
		if got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}

	b, err := jni.GetStaticField[jni.Byte](env, "java/lang/Byte", "MAX_VALUE")
	check("Byte.MAX_VALUE", b, jni.Byte(math.MaxInt8), err)
	c, err := jni.GetStaticField[jni.Char](env, "java/lang/Character", "MAX_VALUE")
	check("Character.MAX_VALUE", c, jni.Char(math.MaxUint16), err)
	s, err := jni.GetStaticField[jni.Short](env, "java/lang/Short", "MIN_VALUE")
	check("Short.MIN_VALUE", s, jni.Short(math.MinInt16), err)
	i, err := jni.GetStaticField[jni.Int](env, "java/lang/Integer", "MIN_VALUE")
	check("Integer.MIN_VALUE", i, jni.Int(math.MinInt32), err)
	l, err := jni.GetStaticField[jni.Long](env, "java/lang/Long", "MAX_VALUE")
	check("Long.MAX_VALUE", l, jni.Long(math.MaxInt64), err)
	f, err := jni.GetStaticField[jni.Float](env, "java/lang/Float", "MAX_VALUE")
	check("Float.MAX_VALUE", f, jni.Float(math.MaxFloat32), err)
	d, err := jni.GetStaticField[jni.Double](env, "java/lang/Math", "PI")
	check("Math.PI", d, jni.Double(math.Pi), err)

	assertClean(t, env, 0)
}

func TestDescriptors_StaticCallsEveryKind(t *testing.T) {
	env := newEnv(t)

	u, err := jni.CallStaticMethod[jni.Int](env, "java/lang/Byte", "toUnsignedInt", "(B)I", jni.Byte(-1))
	if err != nil || u != 255 {
		t.Errorf("Byte.toUnsignedInt(-1) = %d, %v", u, err)
	}
	s, err := jni.CallStaticMethod[jni.Short](env, "java/lang/Short", "reverseBytes", "(S)S", jni.Short(0x0102))
	if err != nil || s != 0x0201 {
		t.Errorf("Short.reverseBytes = %#x, %v", s, err)
	}
	c, err := jni.CallStaticMethod[jni.Char](env, "java/lang/Character", "toUpperCase", "(C)C", jni.Char('q'))
	if err != nil || c != 'Q' {
		t.Errorf("Character.toUpperCase = %q, %v", rune(c), err)
	}
	z, err := jni.CallStaticMethod[jni.Boolean](env, "java/lang/Character", "isDigit", "(C)Z", jni.Char('7'))
	if err != nil || !z {
		t.Errorf("Character.isDigit('7') = %v, %v", z, err)
	}
	l, err := jni.CallStaticMethod[jni.Long](env, "java/lang/Long", "sum", "(JJ)J", jni.Long(1<<40), jni.Long(1))
	if err != nil || l != 1<<40+1 {
		t.Errorf("Long.sum = %d, %v", l, err)
	}
	f, err := jni.CallStaticMethod[jni.Float](env, "java/lang/Float", "sum", "(FF)F", jni.Float(1.25), jni.Float(2))
	if err != nil || f != 3.25 {
		t.Errorf("Float.sum = %v, %v", f, err)
	}
	d, err := jni.CallStaticMethod[jni.Double](env, "java/lang/Math", "sqrt", "(D)D", jni.Double(2.25))
	if err != nil || d != 1.5 {
		t.Errorf("Math.sqrt = %v, %v", d, err)
	}
	if _, err := jni.CallStaticMethod[jni.Void](env, "java/lang/System", "gc", "()V"); err != nil {
		t.Errorf("System.gc: %v", err)
	}

	assertClean(t, env, 0)
}

// defineSlots loads app/Slots: one field per primitive kind, named by its
// lower-cased descriptor, with swap(X)X storing its argument and returning
// the previous value and peek()X returning the current one.
func defineSlots(t *testing.T, env *vm.Env) *vm.Class {
	t.Helper()
	def := vm.ClassDef{Name: "app/Slots"}
	for _, sig := range strings.Split("ZBCSIJFD", "") {
		field := strings.ToLower(sig)
		def.Fields = append(def.Fields, vm.FieldDef{Name: field, Sig: sig})
		def.Methods = append(def.Methods,
			vm.MethodDef{Name: "swap", Sig: "(" + sig + ")" + sig, Impl: func(c *vm.Call) (vm.Value, error) {
				old := c.This.Field(field)
				c.This.SetField(field, c.Args[0])
				return old, nil
			}},
			vm.MethodDef{Name: "peek", Sig: "()" + sig, Impl: func(c *vm.Call) (vm.Value, error) {
				return c.This.Field(field), nil
			}},
		)
	}
	cls, err := env.VM().DefineClass(def)
	if err != nil {
		t.Fatalf("DefineClass: %v", err)
	}
	return cls
}

type packable interface {
	jni.Primitive
	jni.Arg
}

// roundTrip reads the field's default, swaps in next through a packed
// instance call, then reads it back through the field and a no-argument call.
func roundTrip[T packable](t *testing.T, env jni.Env, obj jni.Object, next T) {
	t.Helper()
	var zero T
	sig := jni.SignatureOf[T]()
	field := strings.ToLower(sig)

	if got, err := jni.GetField[T](env, obj, field); err != nil || got != zero {
		t.Errorf("GetField %s before swap = %v, %v; want zero", field, got, err)
	}
	old, err := jni.CallMethod[T](env, obj, "swap", "("+sig+")"+sig, next)
	if err != nil || old != zero {
		t.Errorf("swap(%v) = %v, %v; want zero", next, old, err)
	}
	if got, err := jni.GetField[T](env, obj, field); err != nil || got != next {
		t.Errorf("GetField %s after swap = %v, %v; want %v", field, got, err, next)
	}
	if got, err := jni.CallMethod[T](env, obj, "peek", "()"+sig); err != nil || got != next {
		t.Errorf("peek() = %v, %v; want %v", got, err, next)
	}
}

func TestDescriptors_InstanceEveryPrimitive(t *testing.T) {
	env := newEnv(t)
	cls := defineSlots(t, env)
	obj := env.NewLocal(env.VM().Instantiate(cls))

	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{"boolean", func(t *testing.T) { roundTrip(t, env, obj, jni.Boolean(true)) }},
		{"byte", func(t *testing.T) { roundTrip(t, env, obj, jni.Byte(math.MinInt8)) }},
		{"char", func(t *testing.T) { roundTrip(t, env, obj, jni.Char('界')) }},
		{"short", func(t *testing.T) { roundTrip(t, env, obj, jni.Short(-12345)) }},
		{"int", func(t *testing.T) { roundTrip(t, env, obj, jni.Int(math.MaxInt32)) }},
		{"long", func(t *testing.T) { roundTrip(t, env, obj, jni.Long(-1<<40)) }},
		{"float", func(t *testing.T) { roundTrip(t, env, obj, jni.Float(-2.5)) }},
		{"double", func(t *testing.T) { roundTrip(t, env, obj, jni.Double(math.SmallestNonzeroFloat64)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, tt.run)
	}

	// Only the instance is live.
	assertClean(t, env, 1)
	env.DeleteLocalRef(obj)
}
