package jni

// ---------------------------------------------------------------------------
// Kinds
// ---------------------------------------------------------------------------

// Kind identifies one of the value kinds the bridge can marshal.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBoolean
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindObject
	KindString
	KindClass
	KindThrowable

	numKinds
)

var kindNames = [numKinds]string{
	KindVoid:      "void",
	KindBoolean:   "boolean",
	KindByte:      "byte",
	KindChar:      "char",
	KindShort:     "short",
	KindInt:       "int",
	KindLong:      "long",
	KindFloat:     "float",
	KindDouble:    "double",
	KindObject:    "object",
	KindString:    "string",
	KindClass:     "class",
	KindThrowable: "throwable",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "invalid"
}

// IsRef reports whether values of this kind travel in the reference (L)
// member of a call-frame slot.
func (k Kind) IsRef() bool {
	return k >= KindObject && k < numKinds
}

// ---------------------------------------------------------------------------
// Value types
// ---------------------------------------------------------------------------

// Void is the declared return type of methods that return nothing.
type Void struct{}

type (
	Boolean bool
	Byte    int8
	Char    uint16
	Short   int16
	Int     int32
	Long    int64
	Float   float32
	Double  float64
)

// Reference handles. The zero value is the null reference. Object, Class,
// String and Throwable handles are local references owned by whoever
// received them and must be released with DeleteLocalRef (see LocalRef).
type (
	Object    uintptr
	Class     uintptr
	String    uintptr
	Throwable uintptr
)

// MethodID and FieldID identify resolved members. They are not references
// and are never released.
type (
	MethodID uintptr
	FieldID  uintptr
)

func (o Object) IsNull() bool    { return o == 0 }
func (c Class) IsNull() bool     { return c == 0 }
func (s String) IsNull() bool    { return s == 0 }
func (t Throwable) IsNull() bool { return t == 0 }

// Object widens the handle to a plain object reference.
func (c Class) Object() Object     { return Object(c) }
func (s String) Object() Object    { return Object(s) }
func (t Throwable) Object() Object { return Object(t) }

// ---------------------------------------------------------------------------
// Constraints
// ---------------------------------------------------------------------------

// Primitive is the set of primitive value types.
type Primitive interface {
	Boolean | Byte | Char | Short | Int | Long | Float | Double
}

// Ref is the set of reference handle types.
type Ref interface {
	Object | Class | String | Throwable
}

// FieldType is the set of types a field can be read as.
type FieldType interface {
	Primitive | Ref
}

// ReturnType is the set of types a method can be declared to return.
type ReturnType interface {
	Void | Primitive | Ref
}

// kindOf maps a type parameter onto its Kind. The constraint keeps the
// switch exhaustive.
func kindOf[T ReturnType]() Kind {
	var zero T
	switch any(zero).(type) {
	case Void:
		return KindVoid
	case Boolean:
		return KindBoolean
	case Byte:
		return KindByte
	case Char:
		return KindChar
	case Short:
		return KindShort
	case Int:
		return KindInt
	case Long:
		return KindLong
	case Float:
		return KindFloat
	case Double:
		return KindDouble
	case Object:
		return KindObject
	case String:
		return KindString
	case Class:
		return KindClass
	case Throwable:
		return KindThrowable
	}
	panic("jni: unreachable kind")
}

// decode reinterprets a slot as T.
func decode[T ReturnType](v Value) T {
	var out T
	switch p := any(&out).(type) {
	case *Void:
	case *Boolean:
		*p = v.Boolean()
	case *Byte:
		*p = v.Byte()
	case *Char:
		*p = v.Char()
	case *Short:
		*p = v.Short()
	case *Int:
		*p = v.Int()
	case *Long:
		*p = v.Long()
	case *Float:
		*p = v.Float()
	case *Double:
		*p = v.Double()
	case *Object:
		*p = v.Object()
	case *String:
		*p = String(v.Object())
	case *Class:
		*p = Class(v.Object())
	case *Throwable:
		*p = Throwable(v.Object())
	}
	return out
}
