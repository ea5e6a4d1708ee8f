package vm

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/tliron/commonlog"

	"github.com/chazu/jbridge/jni"
)

var log = commonlog.GetLogger("jbridge.vm")

// DefaultLocalCapacity is the size of each Env's local reference table.
const DefaultLocalCapacity = 512

type options struct {
	localCapacity int
	stderr        io.Writer
}

// Option configures a VM.
type Option func(*options)

// WithLocalCapacity bounds the number of live local references per Env.
func WithLocalCapacity(n int) Option {
	return func(o *options) { o.localCapacity = n }
}

// WithStderr redirects ExceptionDescribe output.
func WithStderr(w io.Writer) Option {
	return func(o *options) { o.stderr = w }
}

// ---------------------------------------------------------------------------
// VM
// ---------------------------------------------------------------------------

// VM holds the loaded classes and the member ID tables. It is safe for use
// by several Envs at once; objects themselves are not synchronized.
type VM struct {
	mu         sync.RWMutex
	classes    map[string]*Class
	methods    map[jni.MethodID]*Method
	fields     map[jni.FieldID]*Field
	nextMember uintptr
	nextHash   atomic.Int32

	opts options

	// Well-known classes
	objectClass    *Class
	classClass     *Class
	stringClass    *Class
	throwableClass *Class
}

// New creates a VM with the java.lang bootstrap library loaded.
func New(opts ...Option) *VM {
	o := options{localCapacity: DefaultLocalCapacity, stderr: os.Stderr}
	for _, fn := range opts {
		fn(&o)
	}
	vm := &VM{
		classes:    make(map[string]*Class),
		methods:    make(map[jni.MethodID]*Method),
		fields:     make(map[jni.FieldID]*Field),
		nextMember: 0x100,
		opts:       o,
	}
	vm.bootstrap()
	return vm
}

// NewEnv creates an execution context with its own local reference table
// and pending-exception state.
func (vm *VM) NewEnv() *Env {
	return &Env{
		vm:     vm,
		refs:   newLocalTable(vm.opts.localCapacity),
		thread: "main",
	}
}

// Class returns the class with the given internal name, or nil.
func (vm *VM) Class(name string) *Class {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.classes[name]
}

// ClassCount returns the number of loaded classes.
func (vm *VM) ClassCount() int {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return len(vm.classes)
}

func (vm *VM) method(id jni.MethodID) *Method {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.methods[id]
}

func (vm *VM) field(id jni.FieldID) *Field {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.fields[id]
}

// DefineClass loads a class built from def.
func (vm *VM) DefineClass(def ClassDef) (*Class, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("vm: class name is empty")
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if _, exists := vm.classes[def.Name]; exists {
		return nil, fmt.Errorf("vm: class %s already defined", def.Name)
	}

	cls := &Class{Name: def.Name, methods: make(map[string]*Method)}
	superName := def.Super
	if superName == "" && def.Name != "java/lang/Object" {
		superName = "java/lang/Object"
	}
	if superName != "" {
		cls.Super = vm.classes[superName]
		if cls.Super == nil {
			return nil, fmt.Errorf("vm: superclass %s of %s is not defined", superName, def.Name)
		}
	}

	for _, fd := range def.Fields {
		if !jni.ValidFieldSignature(fd.Sig) {
			return nil, fmt.Errorf("vm: field %s.%s has invalid descriptor %q", def.Name, fd.Name, fd.Sig)
		}
		f := &Field{
			ID:     jni.FieldID(vm.allocMember()),
			Class:  cls,
			Name:   fd.Name,
			Sig:    fd.Sig,
			Static: fd.Static,
		}
		if fd.Static {
			f.static = zeroValue(fd.Sig)
			if fd.Value != (Value{}) {
				f.static = fd.Value
			}
		}
		cls.fields = append(cls.fields, f)
	}

	for _, md := range def.Methods {
		params, ret, err := jni.ParseMethodSignature(md.Sig)
		if err != nil {
			return nil, fmt.Errorf("vm: method %s.%s: %w", def.Name, md.Name, err)
		}
		if md.Impl == nil {
			return nil, fmt.Errorf("vm: method %s.%s%s has no implementation", def.Name, md.Name, md.Sig)
		}
		if md.Name == jni.ConstructorName && (md.Static || ret != "V") {
			return nil, fmt.Errorf("vm: constructor %s%s must be an instance method returning V", def.Name, md.Sig)
		}
		key := memberKey(md.Name, md.Sig)
		if _, dup := cls.methods[key]; dup {
			return nil, fmt.Errorf("vm: method %s.%s%s defined twice", def.Name, md.Name, md.Sig)
		}
		m := &Method{
			ID:     jni.MethodID(vm.allocMember()),
			Class:  cls,
			Name:   md.Name,
			Sig:    md.Sig,
			Static: md.Static,
			Params: params,
			Ret:    ret,
			impl:   md.Impl,
		}
		cls.methods[key] = m
	}

	// Nothing is published until the whole definition validated.
	for _, f := range cls.fields {
		vm.fields[f.ID] = f
	}
	for _, m := range cls.methods {
		vm.methods[m.ID] = m
	}

	// Mirrors need java/lang/Class; classes loaded before it get theirs
	// once it exists.
	if vm.classClass != nil {
		cls.mirror = vm.allocate(vm.classClass)
		cls.mirror.mirror = cls
	}
	vm.classes[def.Name] = cls
	log.Debugf("defined class %s (%d methods, %d fields)", def.Name, len(cls.methods), len(cls.fields))
	return cls, nil
}

// MustDefineClass is DefineClass for static class tables; it panics on error.
func (vm *VM) MustDefineClass(def ClassDef) *Class {
	cls, err := vm.DefineClass(def)
	if err != nil {
		panic(err)
	}
	return cls
}

func (vm *VM) allocMember() uintptr {
	vm.nextMember += 8
	return vm.nextMember
}

// allocate creates an object with every instance field at its default.
func (vm *VM) allocate(cls *Class) *Object {
	o := &Object{
		Class:  cls,
		hash:   vm.nextHash.Add(0x61c8) & 0x7fffffff,
		fields: make(map[*Field]Value),
	}
	for c := cls; c != nil; c = c.Super {
		for _, f := range c.fields {
			if !f.Static {
				o.fields[f] = zeroValue(f.Sig)
			}
		}
	}
	return o
}

// Instantiate allocates an instance of cls without running a constructor.
func (vm *VM) Instantiate(cls *Class) *Object {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.allocate(cls)
}

// NewString creates a java/lang/String.
func (vm *VM) NewString(s string) *Object {
	o := vm.Instantiate(vm.stringClass)
	o.text = s
	return o
}

// StaticField returns the value of a static field, or Null if the class or
// field does not exist.
func (vm *VM) StaticField(className, name string) Value {
	cls := vm.Class(className)
	if cls == nil {
		return Null
	}
	f := cls.lookupField(name, "", true)
	if f == nil {
		return Null
	}
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return f.static
}

// SetStaticField stores a static field value.
func (vm *VM) SetStaticField(className, name string, v Value) error {
	cls := vm.Class(className)
	if cls == nil {
		return fmt.Errorf("vm: class %s is not defined", className)
	}
	f := cls.lookupField(name, "", true)
	if f == nil {
		return fmt.Errorf("vm: %s has no static field %s", className, name)
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	f.static = v
	return nil
}

// ---------------------------------------------------------------------------
// Invocation from Go
// ---------------------------------------------------------------------------

// Invoke calls an instance method on recv with virtual dispatch. Method
// implementations use it to call each other.
func (vm *VM) Invoke(recv *Object, name, sig string, args ...Value) (Value, error) {
	if recv == nil {
		return Void, Throw("java/lang/NullPointerException", "")
	}
	m := recv.Class.lookupMethod(name, sig, false)
	if m == nil {
		return Void, Throw("java/lang/NoSuchMethodError", name)
	}
	return m.impl(&Call{VM: vm, This: recv, Method: m, Args: args})
}

// InvokeStatic calls a static method.
func (vm *VM) InvokeStatic(className, name, sig string, args ...Value) (Value, error) {
	cls := vm.Class(className)
	if cls == nil {
		return Void, Throw("java/lang/NoClassDefFoundError", className)
	}
	m := cls.lookupMethod(name, sig, true)
	if m == nil {
		return Void, Throw("java/lang/NoSuchMethodError", name)
	}
	return m.impl(&Call{VM: vm, Method: m, Args: args})
}

// ToString renders o through its toString method; null renders as "null".
func (vm *VM) ToString(o *Object) string {
	if o == nil {
		return "null"
	}
	v, err := vm.Invoke(o, "toString", "()Ljava/lang/String;")
	if err != nil || v.Ref == nil {
		return "null"
	}
	return v.Ref.text
}
