package vm

import (
	"fmt"

	"github.com/chazu/jbridge/jni"
)

// ---------------------------------------------------------------------------
// Object
// ---------------------------------------------------------------------------

// Object is a heap object. Strings and string builders keep their characters
// in text, class mirrors point back at their Class.
type Object struct {
	Class  *Class
	hash   int32
	fields map[*Field]Value
	text   string
	mirror *Class
}

// Field returns the value of the named instance field, searching the class
// chain from the most derived class. Unknown names return Null.
func (o *Object) Field(name string) Value {
	if f := o.Class.lookupField(name, "", false); f != nil {
		return o.fields[f]
	}
	return Null
}

// SetField stores v in the named instance field. It panics on an unknown
// name; it is meant for method implementations, which know their layout.
func (o *Object) SetField(name string, v Value) {
	f := o.Class.lookupField(name, "", false)
	if f == nil {
		panic(fmt.Sprintf("vm: %s has no field %s", o.Class.Name, name))
	}
	o.fields[f] = v
}

// Text returns the characters of a String or StringBuilder.
func (o *Object) Text() string { return o.text }

// Mirror returns the class a java/lang/Class object stands for.
func (o *Object) Mirror() *Class { return o.mirror }

// ClassName returns the object's class in internal form.
func (o *Object) ClassName() string { return o.Class.Name }

// IsInstanceOf reports whether o's class is name or a subclass of it.
func (o *Object) IsInstanceOf(name string) bool {
	for c := o.Class; c != nil; c = c.Super {
		if c.Name == name {
			return true
		}
	}
	return false
}

// IdentityHash is the object's identity hash code.
func (o *Object) IdentityHash() int32 { return o.hash }

// ---------------------------------------------------------------------------
// Class
// ---------------------------------------------------------------------------

// Class is a loaded class. Members are keyed by name and descriptor, as the
// JVM resolves them.
type Class struct {
	Name    string // internal name, e.g. "java/lang/String"
	Super   *Class
	methods map[string]*Method
	fields  []*Field
	mirror  *Object
}

// BinaryName returns the dotted class name.
func (c *Class) BinaryName() string { return jni.BinaryName(c.Name) }

// IsSubclassOf returns true if c is other or inherits from it.
func (c *Class) IsSubclassOf(other *Class) bool {
	for current := c; current != nil; current = current.Super {
		if current == other {
			return true
		}
	}
	return false
}

// Mirror returns the java/lang/Class object for c.
func (c *Class) Mirror() *Object { return c.mirror }

func memberKey(name, sig string) string { return name + sig }

// lookupMethod searches c and its superclasses. Constructors are never
// inherited.
func (c *Class) lookupMethod(name, sig string, static bool) *Method {
	if name == jni.ConstructorName {
		if m := c.methods[memberKey(name, sig)]; m != nil && !m.Static {
			return m
		}
		return nil
	}
	for cur := c; cur != nil; cur = cur.Super {
		if m := cur.methods[memberKey(name, sig)]; m != nil && m.Static == static {
			return m
		}
	}
	return nil
}

// lookupField searches c and its superclasses. An empty sig matches any
// descriptor.
func (c *Class) lookupField(name, sig string, static bool) *Field {
	for cur := c; cur != nil; cur = cur.Super {
		for _, f := range cur.fields {
			if f.Name == name && f.Static == static && (sig == "" || f.Sig == sig) {
				return f
			}
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Members
// ---------------------------------------------------------------------------

// Impl implements a method in Go. Returning an error raises it in the VM:
// an *Exception keeps its class, any other error becomes a
// java/lang/RuntimeException.
type Impl func(c *Call) (Value, error)

// Method is a resolved method.
type Method struct {
	ID     jni.MethodID
	Class  *Class
	Name   string
	Sig    string
	Static bool
	Params []string
	Ret    string
	impl   Impl
}

func (m *Method) String() string {
	return m.Class.BinaryName() + "." + m.Name + m.Sig
}

// Field is a resolved field. Static fields hold their value here.
type Field struct {
	ID     jni.FieldID
	Class  *Class
	Name   string
	Sig    string
	Static bool
	static Value
}

// Call is what an Impl sees: the receiver (nil for static methods) and the
// decoded arguments.
type Call struct {
	VM     *VM
	This   *Object
	Method *Method
	Args   []Value
}

func (c *Call) Boolean(i int) bool   { return bool(c.Args[i].Prim.Boolean()) }
func (c *Call) Byte(i int) int8      { return int8(c.Args[i].Prim.Byte()) }
func (c *Call) Char(i int) uint16    { return uint16(c.Args[i].Prim.Char()) }
func (c *Call) Short(i int) int16    { return int16(c.Args[i].Prim.Short()) }
func (c *Call) Int(i int) int32      { return int32(c.Args[i].Prim.Int()) }
func (c *Call) Long(i int) int64     { return int64(c.Args[i].Prim.Long()) }
func (c *Call) Float(i int) float32  { return float32(c.Args[i].Prim.Float()) }
func (c *Call) Double(i int) float64 { return float64(c.Args[i].Prim.Double()) }
func (c *Call) Ref(i int) *Object    { return c.Args[i].Ref }

// Text returns argument i as Go text. ok is false for a null argument.
func (c *Call) Text(i int) (s string, ok bool) {
	o := c.Args[i].Ref
	if o == nil {
		return "", false
	}
	return o.text, true
}

// ---------------------------------------------------------------------------
// Definitions
// ---------------------------------------------------------------------------

// ClassDef describes a class to define. Super defaults to java/lang/Object.
type ClassDef struct {
	Name    string
	Super   string
	Fields  []FieldDef
	Methods []MethodDef
}

// FieldDef describes a field. Value is the initial value of a static field;
// a zero Value means the descriptor's default.
type FieldDef struct {
	Name   string
	Sig    string
	Static bool
	Value  Value
}

// MethodDef describes a method. Constructors are named "<init>" and return V.
type MethodDef struct {
	Name   string
	Sig    string
	Static bool
	Impl   Impl
}
