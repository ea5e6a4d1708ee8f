package vm

import (
	"github.com/chazu/jbridge/jni"
)

// Value is a slot inside the VM: a primitive held as a jni.Value, or an
// object pointer. Objects never leave the VM as pointers; an Env hands out
// local reference handles for them instead.
type Value struct {
	Prim jni.Value
	Ref  *Object
}

// Prim wraps a primitive.
func Prim(v jni.Value) Value { return Value{Prim: v} }

// Ref wraps an object. Ref(nil) is the null reference.
func Ref(o *Object) Value { return Value{Prim: jni.NullValue(), Ref: o} }

// Null is the null reference.
var Null = Ref(nil)

func Boolean(b bool) Value   { return Prim(jni.Boolean(b).Value()) }
func Byte(b int8) Value      { return Prim(jni.Byte(b).Value()) }
func Char(c uint16) Value    { return Prim(jni.Char(c).Value()) }
func Short(s int16) Value    { return Prim(jni.Short(s).Value()) }
func Int(i int32) Value      { return Prim(jni.Int(i).Value()) }
func Long(l int64) Value     { return Prim(jni.Long(l).Value()) }
func Float(f float32) Value  { return Prim(jni.Float(f).Value()) }
func Double(d float64) Value { return Prim(jni.Double(d).Value()) }

// Void is the result of a method returning V.
var Void = Value{}

// zeroValue returns the default value of a field with descriptor sig.
func zeroValue(sig string) Value {
	switch sig[0] {
	case 'Z':
		return Boolean(false)
	case 'B':
		return Byte(0)
	case 'C':
		return Char(0)
	case 'S':
		return Short(0)
	case 'I':
		return Int(0)
	case 'J':
		return Long(0)
	case 'F':
		return Float(0)
	case 'D':
		return Double(0)
	}
	return Null
}

// isRefSig reports whether a descriptor names a reference type.
func isRefSig(sig string) bool {
	return sig != "" && (sig[0] == 'L' || sig[0] == '[')
}
