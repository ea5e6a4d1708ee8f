package jni

import (
	"fmt"
	"math"
)

// Value is one call-frame slot: a kind tag plus the 64-bit pattern of the
// jvalue union member that kind selects. Primitives are stored bit-exact,
// references as their handle.
type Value struct {
	kind Kind
	bits uint64
}

// Kind returns the slot's tag.
func (v Value) Kind() Kind { return v.kind }

// Bits returns the raw payload.
func (v Value) Bits() uint64 { return v.bits }

func (v Value) Boolean() Boolean { return v.bits&0xff != 0 }
func (v Value) Byte() Byte       { return Byte(int8(v.bits)) }
func (v Value) Char() Char       { return Char(uint16(v.bits)) }
func (v Value) Short() Short     { return Short(int16(v.bits)) }
func (v Value) Int() Int         { return Int(int32(uint32(v.bits))) }
func (v Value) Long() Long       { return Long(int64(v.bits)) }
func (v Value) Float() Float     { return Float(math.Float32frombits(uint32(v.bits))) }
func (v Value) Double() Double   { return Double(math.Float64frombits(v.bits)) }
func (v Value) Object() Object   { return Object(uintptr(v.bits)) }

func (v Value) String() string {
	switch v.kind {
	case KindVoid:
		return "void"
	case KindBoolean:
		return fmt.Sprintf("Z:%t", bool(v.Boolean()))
	case KindByte:
		return fmt.Sprintf("B:%d", v.Byte())
	case KindChar:
		return fmt.Sprintf("C:%d", v.Char())
	case KindShort:
		return fmt.Sprintf("S:%d", v.Short())
	case KindInt:
		return fmt.Sprintf("I:%d", v.Int())
	case KindLong:
		return fmt.Sprintf("J:%d", v.Long())
	case KindFloat:
		return fmt.Sprintf("F:%g", v.Float())
	case KindDouble:
		return fmt.Sprintf("D:%g", v.Double())
	}
	return fmt.Sprintf("L(%s):%#x", v.kind, v.bits)
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

func (b Boolean) Value() Value {
	if b {
		return Value{kind: KindBoolean, bits: 1}
	}
	return Value{kind: KindBoolean}
}

func (b Byte) Value() Value   { return Value{kind: KindByte, bits: uint64(uint8(b))} }
func (c Char) Value() Value   { return Value{kind: KindChar, bits: uint64(c)} }
func (s Short) Value() Value  { return Value{kind: KindShort, bits: uint64(uint16(s))} }
func (i Int) Value() Value    { return Value{kind: KindInt, bits: uint64(uint32(i))} }
func (l Long) Value() Value   { return Value{kind: KindLong, bits: uint64(l)} }
func (f Float) Value() Value  { return Value{kind: KindFloat, bits: uint64(math.Float32bits(float32(f)))} }
func (d Double) Value() Value { return Value{kind: KindDouble, bits: math.Float64bits(float64(d))} }

func (o Object) Value() Value    { return refValue(KindObject, o) }
func (s String) Value() Value    { return refValue(KindString, Object(s)) }
func (c Class) Value() Value     { return refValue(KindClass, Object(c)) }
func (t Throwable) Value() Value { return refValue(KindThrowable, Object(t)) }

func refValue(kind Kind, o Object) Value {
	return Value{kind: kind, bits: uint64(o)}
}

// NullValue is a null reference slot.
func NullValue() Value { return refValue(KindObject, 0) }
