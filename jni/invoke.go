package jni

// ConstructorName is the method name the JVM gives constructors.
const ConstructorName = "<init>"

// ---------------------------------------------------------------------------
// Classes
// ---------------------------------------------------------------------------

// FindClass resolves a class by internal name ("java/lang/String"). The
// returned reference is owned by the caller.
func FindClass(env Env, name string) (Class, error) {
	log.Debugf("FindClass %s", name)
	cls := env.FindClass(name)
	if err := Check(env); err != nil {
		return 0, annotate(err, ErrLookup, "FindClass", name, "")
	}
	return cls, nil
}

// GetObjectClass returns obj's class. The returned reference is owned by
// the caller.
func GetObjectClass(env Env, obj Object) (Class, error) {
	cls := env.GetObjectClass(obj)
	if err := Check(env); err != nil {
		return 0, annotate(err, ErrInvocation, "GetObjectClass", "", "")
	}
	return cls, nil
}

func methodID(env Env, cls Class, name, sig string, static bool) (MethodID, error) {
	log.Debugf("resolve method %s%s (static=%t)", name, sig, static)
	var mid MethodID
	op := "GetMethodID"
	if static {
		op = "GetStaticMethodID"
		mid = env.GetStaticMethodID(cls, name, sig)
	} else {
		mid = env.GetMethodID(cls, name, sig)
	}
	if err := Check(env); err != nil {
		return 0, annotate(err, ErrLookup, op, name, sig)
	}
	return mid, nil
}

func fieldID(env Env, cls Class, name, sig string, static bool) (FieldID, error) {
	log.Debugf("resolve field %s %s (static=%t)", name, sig, static)
	var fid FieldID
	op := "GetFieldID"
	if static {
		op = "GetStaticFieldID"
		fid = env.GetStaticFieldID(cls, name, sig)
	} else {
		fid = env.GetFieldID(cls, name, sig)
	}
	if err := Check(env); err != nil {
		return 0, annotate(err, ErrLookup, op, name, sig)
	}
	return fid, nil
}

// ---------------------------------------------------------------------------
// Methods
// ---------------------------------------------------------------------------

// CallMethod invokes the instance method name with signature sig on obj and
// returns its result as R. Method IDs are resolved on every call.
//
//	n, err := jni.CallMethod[jni.Int](env, list, "size", "()I")
func CallMethod[R ReturnType](env Env, obj Object, name, sig string, args ...Arg) (R, error) {
	var zero R
	cls, err := GetObjectClass(env, obj)
	if err != nil {
		return zero, err
	}
	clsRef := NewLocalRef(env, cls)
	defer clsRef.Close()

	mid, err := methodID(env, cls, name, sig, false)
	if err != nil {
		return zero, err
	}

	var v Value
	if len(args) == 0 {
		v, err = callNoArgs(env, kindOf[R](), obj, mid)
	} else {
		var frame *Frame
		if frame, err = Pack(env, args...); err != nil {
			return zero, annotate(err, nil, "CallMethod", name, sig)
		}
		defer frame.Close()
		v, err = DescriptorOf[R]().CallMethod(env, obj, mid, frame.Slots())
	}
	if err != nil {
		return zero, annotate(err, ErrInvocation, "CallMethod", name, sig)
	}
	return decode[R](v), nil
}

// CallStaticMethod invokes the static method name with signature sig on
// the class className and returns its result as R.
//
//	s, err := jni.CallStaticMethod[jni.String](env, "java/lang/String",
//		"valueOf", "(I)Ljava/lang/String;", jni.Int(42))
func CallStaticMethod[R ReturnType](env Env, className, name, sig string, args ...Arg) (R, error) {
	var zero R
	cls, err := FindClass(env, className)
	if err != nil {
		return zero, err
	}
	clsRef := NewLocalRef(env, cls)
	defer clsRef.Close()

	mid, err := methodID(env, cls, name, sig, true)
	if err != nil {
		return zero, err
	}

	var v Value
	if len(args) == 0 {
		v, err = callStaticNoArgs(env, kindOf[R](), cls, mid)
	} else {
		var frame *Frame
		if frame, err = Pack(env, args...); err != nil {
			return zero, annotate(err, nil, "CallStaticMethod", name, sig)
		}
		defer frame.Close()
		v, err = DescriptorOf[R]().CallStaticMethod(env, cls, mid, frame.Slots())
	}
	if err != nil {
		return zero, annotate(err, ErrInvocation, "CallStaticMethod", name, sig)
	}
	return decode[R](v), nil
}

// NewObject constructs an instance of className through the constructor
// with signature ctorSig (which must return V). The new object is owned by
// the caller.
func NewObject(env Env, className, ctorSig string, args ...Arg) (Object, error) {
	cls, err := FindClass(env, className)
	if err != nil {
		return 0, err
	}
	clsRef := NewLocalRef(env, cls)
	defer clsRef.Close()

	ctor, err := methodID(env, cls, ConstructorName, ctorSig, false)
	if err != nil {
		return 0, err
	}

	frame, err := Pack(env, args...)
	if err != nil {
		return 0, annotate(err, nil, "NewObject", className, ctorSig)
	}
	defer frame.Close()

	obj := env.NewObjectA(cls, ctor, frame.Slots())
	if err := Check(env); err != nil {
		return 0, annotate(err, ErrInvocation, "NewObject", className, ctorSig)
	}
	return obj, nil
}

// callNoArgs is the zero-argument path: the declared return kind picks the
// typed entry point directly, with no frame to pack.
func callNoArgs(env Env, kind Kind, obj Object, mid MethodID) (Value, error) {
	var none []Value
	switch kind {
	case KindVoid:
		env.CallVoidMethodA(obj, mid, none)
		return checked(env, Value{})
	case KindBoolean:
		return checked(env, env.CallBooleanMethodA(obj, mid, none).Value())
	case KindByte:
		return checked(env, env.CallByteMethodA(obj, mid, none).Value())
	case KindChar:
		return checked(env, env.CallCharMethodA(obj, mid, none).Value())
	case KindShort:
		return checked(env, env.CallShortMethodA(obj, mid, none).Value())
	case KindInt:
		return checked(env, env.CallIntMethodA(obj, mid, none).Value())
	case KindLong:
		return checked(env, env.CallLongMethodA(obj, mid, none).Value())
	case KindFloat:
		return checked(env, env.CallFloatMethodA(obj, mid, none).Value())
	case KindDouble:
		return checked(env, env.CallDoubleMethodA(obj, mid, none).Value())
	default:
		return checked(env, refValue(kind, env.CallObjectMethodA(obj, mid, none)))
	}
}

func callStaticNoArgs(env Env, kind Kind, cls Class, mid MethodID) (Value, error) {
	var none []Value
	switch kind {
	case KindVoid:
		env.CallStaticVoidMethodA(cls, mid, none)
		return checked(env, Value{})
	case KindBoolean:
		return checked(env, env.CallStaticBooleanMethodA(cls, mid, none).Value())
	case KindByte:
		return checked(env, env.CallStaticByteMethodA(cls, mid, none).Value())
	case KindChar:
		return checked(env, env.CallStaticCharMethodA(cls, mid, none).Value())
	case KindShort:
		return checked(env, env.CallStaticShortMethodA(cls, mid, none).Value())
	case KindInt:
		return checked(env, env.CallStaticIntMethodA(cls, mid, none).Value())
	case KindLong:
		return checked(env, env.CallStaticLongMethodA(cls, mid, none).Value())
	case KindFloat:
		return checked(env, env.CallStaticFloatMethodA(cls, mid, none).Value())
	case KindDouble:
		return checked(env, env.CallStaticDoubleMethodA(cls, mid, none).Value())
	default:
		return checked(env, refValue(kind, env.CallStaticObjectMethodA(cls, mid, none)))
	}
}

// ---------------------------------------------------------------------------
// Fields
// ---------------------------------------------------------------------------

// GetField reads the instance field name of obj. The field signature comes
// from T's descriptor.
func GetField[T FieldType](env Env, obj Object, name string) (T, error) {
	var zero T
	cls, err := GetObjectClass(env, obj)
	if err != nil {
		return zero, err
	}
	clsRef := NewLocalRef(env, cls)
	defer clsRef.Close()

	d := DescriptorOf[T]()
	fid, err := fieldID(env, cls, name, d.Signature, false)
	if err != nil {
		return zero, err
	}
	v, err := d.GetField(env, obj, fid)
	if err != nil {
		return zero, annotate(err, ErrInvocation, "GetField", name, d.Signature)
	}
	return decode[T](v), nil
}

// GetFieldAs reads a reference field whose signature is given explicitly,
// for fields of types other than the built-in references. The value is read
// through the object accessor and reinterpreted as T.
//
//	list, err := jni.GetFieldAs[jni.Object](env, obj, "items", "Ljava/util/List;")
func GetFieldAs[T Ref](env Env, obj Object, name, sig string) (T, error) {
	var zero T
	cls, err := GetObjectClass(env, obj)
	if err != nil {
		return zero, err
	}
	clsRef := NewLocalRef(env, cls)
	defer clsRef.Close()

	fid, err := fieldID(env, cls, name, sig, false)
	if err != nil {
		return zero, err
	}
	v, err := descriptors[KindObject].GetField(env, obj, fid)
	if err != nil {
		return zero, annotate(err, ErrInvocation, "GetField", name, sig)
	}
	return decode[T](v), nil
}

// GetStaticField reads the static field name of className.
func GetStaticField[T FieldType](env Env, className, name string) (T, error) {
	var zero T
	cls, err := FindClass(env, className)
	if err != nil {
		return zero, err
	}
	clsRef := NewLocalRef(env, cls)
	defer clsRef.Close()

	d := DescriptorOf[T]()
	fid, err := fieldID(env, cls, name, d.Signature, true)
	if err != nil {
		return zero, err
	}
	v, err := d.GetStaticField(env, cls, fid)
	if err != nil {
		return zero, annotate(err, ErrInvocation, "GetStaticField", name, d.Signature)
	}
	return decode[T](v), nil
}

// GetStaticFieldAs is GetFieldAs for static fields.
func GetStaticFieldAs[T Ref](env Env, className, name, sig string) (T, error) {
	var zero T
	cls, err := FindClass(env, className)
	if err != nil {
		return zero, err
	}
	clsRef := NewLocalRef(env, cls)
	defer clsRef.Close()

	fid, err := fieldID(env, cls, name, sig, true)
	if err != nil {
		return zero, err
	}
	v, err := descriptors[KindObject].GetStaticField(env, cls, fid)
	if err != nil {
		return zero, annotate(err, ErrInvocation, "GetStaticField", name, sig)
	}
	return decode[T](v), nil
}

// ---------------------------------------------------------------------------
// Strings
// ---------------------------------------------------------------------------

// NewString creates a java/lang/String owned by the caller.
func NewString(env Env, s string) (String, error) {
	str := env.NewStringUTF(s)
	if err := Check(env); err != nil {
		return 0, annotate(err, ErrConversion, "NewStringUTF", "", "")
	}
	return str, nil
}

// GoString decodes a java/lang/String. A null string decodes to "".
func GoString(env Env, s String) (string, error) {
	if s == 0 {
		return "", nil
	}
	text, ok := env.GetStringUTFChars(s)
	if err := Check(env); err != nil {
		return "", annotate(err, ErrConversion, "GetStringUTFChars", "", "")
	}
	if !ok {
		return "", &Error{Kind: ErrConversion, Op: "GetStringUTFChars"}
	}
	return text, nil
}
