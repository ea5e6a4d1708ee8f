package vm

import (
	"fmt"

	"github.com/chazu/jbridge/jni"
)

// ---------------------------------------------------------------------------
// Bootstrap
// ---------------------------------------------------------------------------

// bootstrap loads java.lang. Object and Class come first and get their
// mirrors by hand; everything after them is an ordinary DefineClass.
func (vm *VM) bootstrap() {
	vm.objectClass = vm.MustDefineClass(objectClassDef)
	vm.classClass = vm.MustDefineClass(classClassDef)
	for _, c := range []*Class{vm.objectClass, vm.classClass} {
		c.mirror = vm.Instantiate(vm.classClass)
		c.mirror.mirror = c
	}

	vm.stringClass = vm.MustDefineClass(stringClassDef)
	vm.throwableClass = vm.MustDefineClass(throwableClassDef)
	for _, t := range throwables {
		vm.MustDefineClass(throwableDef(t.name, t.super))
	}

	for _, def := range langClassDefs {
		vm.MustDefineClass(def)
	}
	for _, b := range []bool{true, false} {
		name := "FALSE"
		if b {
			name = "TRUE"
		}
		box := vm.Box("java/lang/Boolean", Boolean(b))
		if err := vm.SetStaticField("java/lang/Boolean", name, Ref(box)); err != nil {
			panic(err)
		}
	}
	log.Debugf("bootstrap loaded %d classes", vm.ClassCount())
}

// Box creates an instance of a wrapper class with its value field set.
func (vm *VM) Box(className string, v Value) *Object {
	o := vm.Instantiate(vm.Class(className))
	o.SetField("value", v)
	return o
}

func instanceMethod(name, sig string, impl Impl) MethodDef {
	return MethodDef{Name: name, Sig: sig, Impl: impl}
}

func staticMethod(name, sig string, impl Impl) MethodDef {
	return MethodDef{Name: name, Sig: sig, Static: true, Impl: impl}
}

func constField(name, sig string, v Value) FieldDef {
	return FieldDef{Name: name, Sig: sig, Static: true, Value: v}
}

func text(c *Call, s string) (Value, error) {
	return Ref(c.VM.NewString(s)), nil
}

func noop(*Call) (Value, error) { return Void, nil }

// ---------------------------------------------------------------------------
// java/lang/Object and java/lang/Class
// ---------------------------------------------------------------------------

var objectClassDef = ClassDef{
	Name: "java/lang/Object",
	Methods: []MethodDef{
		instanceMethod(jni.ConstructorName, "()V", noop),
		instanceMethod("hashCode", "()I", func(c *Call) (Value, error) {
			return Int(c.This.hash), nil
		}),
		instanceMethod("equals", "(Ljava/lang/Object;)Z", func(c *Call) (Value, error) {
			return Boolean(c.This == c.Ref(0)), nil
		}),
		instanceMethod("getClass", "()Ljava/lang/Class;", func(c *Call) (Value, error) {
			return Ref(c.This.Class.mirror), nil
		}),
		instanceMethod("toString", "()Ljava/lang/String;", func(c *Call) (Value, error) {
			h, err := c.VM.Invoke(c.This, "hashCode", "()I")
			if err != nil {
				return Void, err
			}
			return text(c, fmt.Sprintf("%s@%x", c.This.Class.BinaryName(), uint32(h.Prim.Int())))
		}),
	},
}

var classClassDef = ClassDef{
	Name: "java/lang/Class",
	Methods: []MethodDef{
		instanceMethod("getName", "()Ljava/lang/String;", func(c *Call) (Value, error) {
			return text(c, c.This.mirror.BinaryName())
		}),
		instanceMethod("getSuperclass", "()Ljava/lang/Class;", func(c *Call) (Value, error) {
			if super := c.This.mirror.Super; super != nil {
				return Ref(super.mirror), nil
			}
			return Null, nil
		}),
		instanceMethod("toString", "()Ljava/lang/String;", func(c *Call) (Value, error) {
			return text(c, "class "+c.This.mirror.BinaryName())
		}),
	},
}

// ---------------------------------------------------------------------------
// java/lang/Throwable and subclasses
// ---------------------------------------------------------------------------

var throwableClassDef = ClassDef{
	Name: "java/lang/Throwable",
	Fields: []FieldDef{
		{Name: "detailMessage", Sig: "Ljava/lang/String;"},
	},
	Methods: []MethodDef{
		instanceMethod(jni.ConstructorName, "()V", noop),
		instanceMethod(jni.ConstructorName, "(Ljava/lang/String;)V", initMessage),
		instanceMethod("getMessage", "()Ljava/lang/String;", getMessage),
		instanceMethod("getLocalizedMessage", "()Ljava/lang/String;", getMessage),
		instanceMethod("toString", "()Ljava/lang/String;", func(c *Call) (Value, error) {
			return text(c, describeThrowable(c.This))
		}),
	},
}

func initMessage(c *Call) (Value, error) {
	c.This.SetField("detailMessage", c.Args[0])
	return Void, nil
}

func getMessage(c *Call) (Value, error) {
	return c.This.Field("detailMessage"), nil
}

// throwableDef builds a subclass with the two standard constructors, which
// are not inherited.
func throwableDef(name, super string) ClassDef {
	return ClassDef{
		Name:  name,
		Super: super,
		Methods: []MethodDef{
			instanceMethod(jni.ConstructorName, "()V", noop),
			instanceMethod(jni.ConstructorName, "(Ljava/lang/String;)V", initMessage),
		},
	}
}

// throwables are loaded in order; each super precedes its subclasses.
var throwables = []struct{ name, super string }{
	{"java/lang/Exception", "java/lang/Throwable"},
	{"java/lang/RuntimeException", "java/lang/Exception"},
	{"java/lang/IllegalArgumentException", "java/lang/RuntimeException"},
	{"java/lang/NumberFormatException", "java/lang/IllegalArgumentException"},
	{"java/lang/IllegalStateException", "java/lang/RuntimeException"},
	{"java/lang/UnsupportedOperationException", "java/lang/RuntimeException"},
	{"java/lang/ArithmeticException", "java/lang/RuntimeException"},
	{"java/lang/NullPointerException", "java/lang/RuntimeException"},
	{"java/lang/IndexOutOfBoundsException", "java/lang/RuntimeException"},
	{"java/lang/StringIndexOutOfBoundsException", "java/lang/IndexOutOfBoundsException"},
	{"java/lang/Error", "java/lang/Throwable"},
	{"java/lang/LinkageError", "java/lang/Error"},
	{"java/lang/NoClassDefFoundError", "java/lang/LinkageError"},
	{"java/lang/IncompatibleClassChangeError", "java/lang/LinkageError"},
	{"java/lang/NoSuchMethodError", "java/lang/IncompatibleClassChangeError"},
	{"java/lang/NoSuchFieldError", "java/lang/IncompatibleClassChangeError"},
	{"java/lang/VirtualMachineError", "java/lang/Error"},
	{"java/lang/OutOfMemoryError", "java/lang/VirtualMachineError"},
}
