package vm

import (
	"fmt"
	"slices"

	"github.com/chazu/jbridge/jni"
)

// Env is one thread's view of the VM. It implements jni.Env.
//
// Misuse that a real JVM leaves undefined is recorded as a violation and the
// offending entry point returns a zero result without side effects: calling
// anything but the Exception* family or DeleteLocalRef with an exception
// pending, passing a stale or deleted handle, packing a frame that does not
// match the method descriptor, or calling a typed entry point whose return
// kind differs from the method's.
type Env struct {
	vm         *VM
	refs       *LocalTable
	pending    *Object
	violations []string
	thread     string
}

var _ jni.Env = (*Env)(nil)

// VM returns the VM the Env belongs to.
func (e *Env) VM() *VM { return e.vm }

// LiveRefs returns the number of live local references.
func (e *Env) LiveRefs() int { return e.refs.Len() }

// PeakRefs returns the largest number of local references ever live at once.
func (e *Env) PeakRefs() int { return e.refs.Peak() }

// LocalCapacity returns the size of the local reference table.
func (e *Env) LocalCapacity() int { return e.refs.Capacity() }

// Violations returns the protocol violations recorded so far.
func (e *Env) Violations() []string { return slices.Clone(e.violations) }

// Pending returns the pending throwable, or nil.
func (e *Env) Pending() *Object { return e.pending }

// Deref resolves a local reference without recording a violation. It returns
// nil for null, stale and unknown handles.
func (e *Env) Deref(h jni.Object) *Object {
	o, _ := e.refs.get(h)
	return o
}

// NewLocal issues a local reference for o, as if a native method had
// received it as an argument.
func (e *Env) NewLocal(o *Object) jni.Object { return e.local(o) }

func (e *Env) violate(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Errorf("JNI violation: %s", msg)
	e.violations = append(e.violations, msg)
}

// enter guards an entry point that must not run with an exception pending.
func (e *Env) enter(op string) bool {
	if e.pending != nil {
		e.violate("%s called with %s pending", op, e.pending.Class.BinaryName())
		return false
	}
	return true
}

func (e *Env) raise(t *Object) {
	log.Debugf("raise %s", describeThrowable(t))
	e.pending = t
}

func (e *Env) throw(className, msg string) {
	e.raise(e.vm.NewThrowable(className, msg))
}

// local issues a handle for o. Null stays null.
func (e *Env) local(o *Object) jni.Object {
	if o == nil {
		return 0
	}
	h, ok := e.refs.add(o)
	if !ok {
		e.violate("local reference table overflow (%d entries)", e.refs.Capacity())
		if e.pending == nil {
			e.throw("java/lang/OutOfMemoryError", "local reference table overflow")
		}
		return 0
	}
	return h
}

// deref resolves h for op. A null handle yields nil silently; a stale or
// unknown one yields nil and a violation.
func (e *Env) deref(op string, h jni.Object) (*Object, bool) {
	if h == 0 {
		return nil, true
	}
	o, ok := e.refs.get(h)
	if !ok {
		e.violate("%s: invalid or deleted reference %#x", op, uintptr(h))
		return nil, false
	}
	return o, true
}

// receiver resolves a reference that must be non-null.
func (e *Env) receiver(op string, h jni.Object) *Object {
	o, ok := e.deref(op, h)
	if ok && o == nil {
		e.violate("%s: null reference", op)
	}
	return o
}

func (e *Env) class(op string, h jni.Class) *Class {
	o := e.receiver(op, jni.Object(h))
	if o == nil {
		return nil
	}
	if o.mirror == nil {
		e.violate("%s: %#x is a %s, not a class", op, uintptr(h), o.Class.BinaryName())
		return nil
	}
	return o.mirror
}

// ---------------------------------------------------------------------------
// Classes and members
// ---------------------------------------------------------------------------

func (e *Env) FindClass(name string) jni.Class {
	if !e.enter("FindClass") {
		return 0
	}
	cls := e.vm.Class(name)
	if cls == nil {
		e.throw("java/lang/NoClassDefFoundError", name)
		return 0
	}
	return jni.Class(e.local(cls.mirror))
}

func (e *Env) GetObjectClass(obj jni.Object) jni.Class {
	const op = "GetObjectClass"
	if !e.enter(op) {
		return 0
	}
	o, ok := e.deref(op, obj)
	if !ok {
		return 0
	}
	if o == nil {
		e.throw("java/lang/NullPointerException", "")
		return 0
	}
	return jni.Class(e.local(o.Class.mirror))
}

func (e *Env) methodID(op string, h jni.Class, name, sig string, static bool) jni.MethodID {
	if !e.enter(op) {
		return 0
	}
	cls := e.class(op, h)
	if cls == nil {
		return 0
	}
	m := cls.lookupMethod(name, sig, static)
	if m == nil {
		e.throw("java/lang/NoSuchMethodError", name)
		return 0
	}
	return m.ID
}

func (e *Env) fieldID(op string, h jni.Class, name, sig string, static bool) jni.FieldID {
	if !e.enter(op) {
		return 0
	}
	cls := e.class(op, h)
	if cls == nil {
		return 0
	}
	f := cls.lookupField(name, sig, static)
	if f == nil {
		e.throw("java/lang/NoSuchFieldError", name)
		return 0
	}
	return f.ID
}

func (e *Env) GetMethodID(cls jni.Class, name, sig string) jni.MethodID {
	return e.methodID("GetMethodID", cls, name, sig, false)
}

func (e *Env) GetStaticMethodID(cls jni.Class, name, sig string) jni.MethodID {
	return e.methodID("GetStaticMethodID", cls, name, sig, true)
}

func (e *Env) GetFieldID(cls jni.Class, name, sig string) jni.FieldID {
	return e.fieldID("GetFieldID", cls, name, sig, false)
}

func (e *Env) GetStaticFieldID(cls jni.Class, name, sig string) jni.FieldID {
	return e.fieldID("GetStaticFieldID", cls, name, sig, true)
}

// ---------------------------------------------------------------------------
// Invocation
// ---------------------------------------------------------------------------

// returns reports whether a member with descriptor sig is read through the
// entry point family identified by want ('L' for Object, otherwise the
// primitive code).
func returns(sig string, want byte) bool {
	if want == 'L' {
		return isRefSig(sig)
	}
	return sig != "" && sig[0] == want
}

func (e *Env) resolveMethod(op string, mid jni.MethodID, static bool, want byte) *Method {
	m := e.vm.method(mid)
	if m == nil {
		e.violate("%s: invalid method ID %#x", op, uintptr(mid))
		return nil
	}
	if m.Static != static {
		e.violate("%s: %s has the wrong static-ness", op, m)
		return nil
	}
	if !returns(m.Ret, want) {
		e.violate("%s: %s returns %s", op, m, m.Ret)
		return nil
	}
	return m
}

// decodeArgs unpacks a frame against m's parameter descriptors.
func (e *Env) decodeArgs(op string, m *Method, args []jni.Value) ([]Value, bool) {
	if len(args) != len(m.Params) {
		e.violate("%s: %s takes %d arguments, frame has %d", op, m, len(m.Params), len(args))
		return nil, false
	}
	out := make([]Value, len(args))
	for i, p := range m.Params {
		slot := args[i]
		if isRefSig(p) {
			if !slot.Kind().IsRef() {
				e.violate("%s: %s argument %d is %s, want reference %s", op, m, i, slot.Kind(), p)
				return nil, false
			}
			o, ok := e.deref(op, slot.Object())
			if !ok {
				return nil, false
			}
			if o != nil && !e.assignable(o, p) {
				e.violate("%s: %s argument %d is a %s, want %s", op, m, i, o.Class.BinaryName(), p)
				return nil, false
			}
			out[i] = Ref(o)
			continue
		}
		if kind, _ := jni.KindForSignature(p); slot.Kind() != kind {
			e.violate("%s: %s argument %d is %s, want %s", op, m, i, slot.Kind(), kind)
			return nil, false
		}
		out[i] = Prim(slot)
	}
	return out, true
}

// assignable reports whether o can be passed where descriptor sig is
// expected. Array descriptors and classes the VM never loaded are accepted.
func (e *Env) assignable(o *Object, sig string) bool {
	if sig[0] != 'L' {
		return true
	}
	cls := e.vm.Class(sig[1 : len(sig)-1])
	return cls == nil || o.Class.IsSubclassOf(cls)
}

// run executes m. An error from the implementation becomes the pending
// exception.
func (e *Env) run(op string, recv *Object, m *Method, args []jni.Value) (Value, bool) {
	decoded, ok := e.decodeArgs(op, m, args)
	if !ok {
		return Void, false
	}
	v, err := m.impl(&Call{VM: e.vm, This: recv, Method: m, Args: decoded})
	if err != nil {
		e.raise(e.vm.throwable(err))
		return Void, false
	}
	return v, true
}

func (e *Env) callMethod(op string, obj jni.Object, mid jni.MethodID, args []jni.Value, want byte) Value {
	if !e.enter(op) {
		return Void
	}
	m := e.resolveMethod(op, mid, false, want)
	if m == nil {
		return Void
	}
	recv, ok := e.deref(op, obj)
	if !ok {
		return Void
	}
	if recv == nil {
		e.throw("java/lang/NullPointerException", "")
		return Void
	}
	if !recv.Class.IsSubclassOf(m.Class) {
		e.violate("%s: %s is not an instance of %s", op, recv.Class.BinaryName(), m.Class.BinaryName())
		return Void
	}
	if m.Name != jni.ConstructorName {
		if target := recv.Class.lookupMethod(m.Name, m.Sig, false); target != nil {
			m = target
		}
	}
	v, _ := e.run(op, recv, m, args)
	return v
}

func (e *Env) callStaticMethod(op string, h jni.Class, mid jni.MethodID, args []jni.Value, want byte) Value {
	if !e.enter(op) {
		return Void
	}
	cls := e.class(op, h)
	if cls == nil {
		return Void
	}
	m := e.resolveMethod(op, mid, true, want)
	if m == nil {
		return Void
	}
	if !cls.IsSubclassOf(m.Class) {
		e.violate("%s: %s is not declared by %s", op, m, cls.BinaryName())
		return Void
	}
	v, _ := e.run(op, nil, m, args)
	return v
}

func (e *Env) NewObjectA(h jni.Class, ctor jni.MethodID, args []jni.Value) jni.Object {
	const op = "NewObjectA"
	if !e.enter(op) {
		return 0
	}
	cls := e.class(op, h)
	if cls == nil {
		return 0
	}
	m := e.resolveMethod(op, ctor, false, 'V')
	if m == nil {
		return 0
	}
	if m.Name != jni.ConstructorName || m.Class != cls {
		e.violate("%s: %s is not a constructor of %s", op, m, cls.BinaryName())
		return 0
	}
	o := e.vm.Instantiate(cls)
	if _, ok := e.run(op, o, m, args); !ok {
		return 0
	}
	return e.local(o)
}

func (e *Env) CallObjectMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Object {
	return e.local(e.callMethod("CallObjectMethodA", obj, mid, args, 'L').Ref)
}

func (e *Env) CallBooleanMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Boolean {
	return e.callMethod("CallBooleanMethodA", obj, mid, args, 'Z').Prim.Boolean()
}

func (e *Env) CallByteMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Byte {
	return e.callMethod("CallByteMethodA", obj, mid, args, 'B').Prim.Byte()
}

func (e *Env) CallCharMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Char {
	return e.callMethod("CallCharMethodA", obj, mid, args, 'C').Prim.Char()
}

func (e *Env) CallShortMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Short {
	return e.callMethod("CallShortMethodA", obj, mid, args, 'S').Prim.Short()
}

func (e *Env) CallIntMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Int {
	return e.callMethod("CallIntMethodA", obj, mid, args, 'I').Prim.Int()
}

func (e *Env) CallLongMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Long {
	return e.callMethod("CallLongMethodA", obj, mid, args, 'J').Prim.Long()
}

func (e *Env) CallFloatMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Float {
	return e.callMethod("CallFloatMethodA", obj, mid, args, 'F').Prim.Float()
}

func (e *Env) CallDoubleMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Double {
	return e.callMethod("CallDoubleMethodA", obj, mid, args, 'D').Prim.Double()
}

func (e *Env) CallVoidMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) {
	e.callMethod("CallVoidMethodA", obj, mid, args, 'V')
}

func (e *Env) CallStaticObjectMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Object {
	return e.local(e.callStaticMethod("CallStaticObjectMethodA", cls, mid, args, 'L').Ref)
}

func (e *Env) CallStaticBooleanMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Boolean {
	return e.callStaticMethod("CallStaticBooleanMethodA", cls, mid, args, 'Z').Prim.Boolean()
}

func (e *Env) CallStaticByteMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Byte {
	return e.callStaticMethod("CallStaticByteMethodA", cls, mid, args, 'B').Prim.Byte()
}

func (e *Env) CallStaticCharMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Char {
	return e.callStaticMethod("CallStaticCharMethodA", cls, mid, args, 'C').Prim.Char()
}

func (e *Env) CallStaticShortMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Short {
	return e.callStaticMethod("CallStaticShortMethodA", cls, mid, args, 'S').Prim.Short()
}

func (e *Env) CallStaticIntMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Int {
	return e.callStaticMethod("CallStaticIntMethodA", cls, mid, args, 'I').Prim.Int()
}

func (e *Env) CallStaticLongMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Long {
	return e.callStaticMethod("CallStaticLongMethodA", cls, mid, args, 'J').Prim.Long()
}

func (e *Env) CallStaticFloatMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Float {
	return e.callStaticMethod("CallStaticFloatMethodA", cls, mid, args, 'F').Prim.Float()
}

func (e *Env) CallStaticDoubleMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Double {
	return e.callStaticMethod("CallStaticDoubleMethodA", cls, mid, args, 'D').Prim.Double()
}

func (e *Env) CallStaticVoidMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) {
	e.callStaticMethod("CallStaticVoidMethodA", cls, mid, args, 'V')
}

// ---------------------------------------------------------------------------
// Fields
// ---------------------------------------------------------------------------

func (e *Env) resolveField(op string, fid jni.FieldID, static bool, want byte) *Field {
	f := e.vm.field(fid)
	if f == nil {
		e.violate("%s: invalid field ID %#x", op, uintptr(fid))
		return nil
	}
	if f.Static != static {
		e.violate("%s: field %s has the wrong static-ness", op, f.Name)
		return nil
	}
	if !returns(f.Sig, want) {
		e.violate("%s: field %s is %s", op, f.Name, f.Sig)
		return nil
	}
	return f
}

func (e *Env) getField(op string, obj jni.Object, fid jni.FieldID, want byte) Value {
	if !e.enter(op) {
		return Void
	}
	f := e.resolveField(op, fid, false, want)
	if f == nil {
		return Void
	}
	o, ok := e.deref(op, obj)
	if !ok {
		return Void
	}
	if o == nil {
		e.throw("java/lang/NullPointerException", "")
		return Void
	}
	if !o.Class.IsSubclassOf(f.Class) {
		e.violate("%s: %s has no field %s", op, o.Class.BinaryName(), f.Name)
		return Void
	}
	return o.fields[f]
}

func (e *Env) getStaticField(op string, h jni.Class, fid jni.FieldID, want byte) Value {
	if !e.enter(op) {
		return Void
	}
	cls := e.class(op, h)
	if cls == nil {
		return Void
	}
	f := e.resolveField(op, fid, true, want)
	if f == nil {
		return Void
	}
	if !cls.IsSubclassOf(f.Class) {
		e.violate("%s: field %s is not declared by %s", op, f.Name, cls.BinaryName())
		return Void
	}
	e.vm.mu.RLock()
	defer e.vm.mu.RUnlock()
	return f.static
}

func (e *Env) GetObjectField(obj jni.Object, fid jni.FieldID) jni.Object {
	return e.local(e.getField("GetObjectField", obj, fid, 'L').Ref)
}

func (e *Env) GetBooleanField(obj jni.Object, fid jni.FieldID) jni.Boolean {
	return e.getField("GetBooleanField", obj, fid, 'Z').Prim.Boolean()
}

func (e *Env) GetByteField(obj jni.Object, fid jni.FieldID) jni.Byte {
	return e.getField("GetByteField", obj, fid, 'B').Prim.Byte()
}

func (e *Env) GetCharField(obj jni.Object, fid jni.FieldID) jni.Char {
	return e.getField("GetCharField", obj, fid, 'C').Prim.Char()
}

func (e *Env) GetShortField(obj jni.Object, fid jni.FieldID) jni.Short {
	return e.getField("GetShortField", obj, fid, 'S').Prim.Short()
}

func (e *Env) GetIntField(obj jni.Object, fid jni.FieldID) jni.Int {
	return e.getField("GetIntField", obj, fid, 'I').Prim.Int()
}

func (e *Env) GetLongField(obj jni.Object, fid jni.FieldID) jni.Long {
	return e.getField("GetLongField", obj, fid, 'J').Prim.Long()
}

func (e *Env) GetFloatField(obj jni.Object, fid jni.FieldID) jni.Float {
	return e.getField("GetFloatField", obj, fid, 'F').Prim.Float()
}

func (e *Env) GetDoubleField(obj jni.Object, fid jni.FieldID) jni.Double {
	return e.getField("GetDoubleField", obj, fid, 'D').Prim.Double()
}

func (e *Env) GetStaticObjectField(cls jni.Class, fid jni.FieldID) jni.Object {
	return e.local(e.getStaticField("GetStaticObjectField", cls, fid, 'L').Ref)
}

func (e *Env) GetStaticBooleanField(cls jni.Class, fid jni.FieldID) jni.Boolean {
	return e.getStaticField("GetStaticBooleanField", cls, fid, 'Z').Prim.Boolean()
}

func (e *Env) GetStaticByteField(cls jni.Class, fid jni.FieldID) jni.Byte {
	return e.getStaticField("GetStaticByteField", cls, fid, 'B').Prim.Byte()
}

func (e *Env) GetStaticCharField(cls jni.Class, fid jni.FieldID) jni.Char {
	return e.getStaticField("GetStaticCharField", cls, fid, 'C').Prim.Char()
}

func (e *Env) GetStaticShortField(cls jni.Class, fid jni.FieldID) jni.Short {
	return e.getStaticField("GetStaticShortField", cls, fid, 'S').Prim.Short()
}

func (e *Env) GetStaticIntField(cls jni.Class, fid jni.FieldID) jni.Int {
	return e.getStaticField("GetStaticIntField", cls, fid, 'I').Prim.Int()
}

func (e *Env) GetStaticLongField(cls jni.Class, fid jni.FieldID) jni.Long {
	return e.getStaticField("GetStaticLongField", cls, fid, 'J').Prim.Long()
}

func (e *Env) GetStaticFloatField(cls jni.Class, fid jni.FieldID) jni.Float {
	return e.getStaticField("GetStaticFloatField", cls, fid, 'F').Prim.Float()
}

func (e *Env) GetStaticDoubleField(cls jni.Class, fid jni.FieldID) jni.Double {
	return e.getStaticField("GetStaticDoubleField", cls, fid, 'D').Prim.Double()
}

// ---------------------------------------------------------------------------
// Strings and references
// ---------------------------------------------------------------------------

func (e *Env) NewStringUTF(s string) jni.String {
	if !e.enter("NewStringUTF") {
		return 0
	}
	return jni.String(e.local(e.vm.NewString(s)))
}

func (e *Env) GetStringUTFChars(str jni.String) (string, bool) {
	const op = "GetStringUTFChars"
	if !e.enter(op) {
		return "", false
	}
	o := e.receiver(op, jni.Object(str))
	if o == nil {
		return "", false
	}
	if o.Class != e.vm.stringClass {
		e.violate("%s: %s is not a string", op, o.Class.BinaryName())
		return "", false
	}
	return o.text, true
}

// DeleteLocalRef is legal with an exception pending. Deleting null does
// nothing; deleting an unknown or already deleted handle is a violation.
func (e *Env) DeleteLocalRef(ref jni.Object) {
	if ref == 0 {
		return
	}
	if !e.refs.remove(ref) {
		e.violate("DeleteLocalRef: invalid or deleted reference %#x", uintptr(ref))
	}
}

// ---------------------------------------------------------------------------
// Exceptions
// ---------------------------------------------------------------------------

func (e *Env) ExceptionCheck() bool { return e.pending != nil }

func (e *Env) ExceptionOccurred() jni.Throwable {
	if e.pending == nil {
		return 0
	}
	return jni.Throwable(e.local(e.pending))
}

// ExceptionDescribe prints the pending exception to the VM's stderr and
// clears it.
func (e *Env) ExceptionDescribe() {
	if e.pending == nil {
		return
	}
	t := e.pending
	e.pending = nil
	fmt.Fprintf(e.vm.opts.stderr, "Exception in thread \"%s\" %s\n", e.thread, describeThrowable(t))
}

func (e *Env) ExceptionClear() { e.pending = nil }

func (e *Env) Throw(t jni.Throwable) jni.Int {
	const op = "Throw"
	if !e.enter(op) {
		return -1
	}
	o := e.receiver(op, jni.Object(t))
	if o == nil {
		return -1
	}
	if !o.Class.IsSubclassOf(e.vm.throwableClass) {
		e.violate("%s: %s is not throwable", op, o.Class.BinaryName())
		return -1
	}
	e.raise(o)
	return 0
}

func (e *Env) ThrowNew(h jni.Class, msg string) jni.Int {
	const op = "ThrowNew"
	if !e.enter(op) {
		return -1
	}
	cls := e.class(op, h)
	if cls == nil {
		return -1
	}
	if !cls.IsSubclassOf(e.vm.throwableClass) {
		e.violate("%s: %s is not throwable", op, cls.BinaryName())
		return -1
	}
	e.raise(e.vm.newThrowable(cls, msg))
	return 0
}
