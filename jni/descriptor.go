package jni

// Descriptor binds one value kind to its type signature and to the four
// entry points used to read fields and call methods of that kind. Every
// accessor calls exactly one entry point followed by Check.
//
// Void has no field accessors; the FieldType constraint keeps them from
// being reached.
type Descriptor struct {
	Kind      Kind
	Signature string

	GetField         func(env Env, obj Object, fid FieldID) (Value, error)
	GetStaticField   func(env Env, cls Class, fid FieldID) (Value, error)
	CallMethod       func(env Env, obj Object, mid MethodID, args []Value) (Value, error)
	CallStaticMethod func(env Env, cls Class, mid MethodID, args []Value) (Value, error)
}

// DescriptorOf returns the descriptor for T. T is resolved at compile time
// against the closed ReturnType set.
func DescriptorOf[T ReturnType]() *Descriptor {
	return &descriptors[kindOf[T]()]
}

// SignatureOf returns T's type signature, e.g. "J" for Long.
func SignatureOf[T ReturnType]() string {
	return descriptors[kindOf[T]()].Signature
}

// Descriptors lists every descriptor in Kind order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors[:])
	return out
}

// ---------------------------------------------------------------------------
// Table
// ---------------------------------------------------------------------------

var descriptors = [numKinds]Descriptor{
	KindVoid: {
		Kind:      KindVoid,
		Signature: "V",
		CallMethod: func(env Env, obj Object, mid MethodID, args []Value) (Value, error) {
			env.CallVoidMethodA(obj, mid, args)
			return checked(env, Value{})
		},
		CallStaticMethod: func(env Env, cls Class, mid MethodID, args []Value) (Value, error) {
			env.CallStaticVoidMethodA(cls, mid, args)
			return checked(env, Value{})
		},
	},

	KindBoolean: {
		Kind:      KindBoolean,
		Signature: "Z",
		GetField: func(env Env, obj Object, fid FieldID) (Value, error) {
			return checked(env, env.GetBooleanField(obj, fid).Value())
		},
		GetStaticField: func(env Env, cls Class, fid FieldID) (Value, error) {
			return checked(env, env.GetStaticBooleanField(cls, fid).Value())
		},
		CallMethod: func(env Env, obj Object, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallBooleanMethodA(obj, mid, args).Value())
		},
		CallStaticMethod: func(env Env, cls Class, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallStaticBooleanMethodA(cls, mid, args).Value())
		},
	},

	KindByte: {
		Kind:      KindByte,
		Signature: "B",
		GetField: func(env Env, obj Object, fid FieldID) (Value, error) {
			return checked(env, env.GetByteField(obj, fid).Value())
		},
		GetStaticField: func(env Env, cls Class, fid FieldID) (Value, error) {
			return checked(env, env.GetStaticByteField(cls, fid).Value())
		},
		CallMethod: func(env Env, obj Object, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallByteMethodA(obj, mid, args).Value())
		},
		CallStaticMethod: func(env Env, cls Class, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallStaticByteMethodA(cls, mid, args).Value())
		},
	},

	KindChar: {
		Kind:      KindChar,
		Signature: "C",
		GetField: func(env Env, obj Object, fid FieldID) (Value, error) {
			return checked(env, env.GetCharField(obj, fid).Value())
		},
		GetStaticField: func(env Env, cls Class, fid FieldID) (Value, error) {
			return checked(env, env.GetStaticCharField(cls, fid).Value())
		},
		CallMethod: func(env Env, obj Object, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallCharMethodA(obj, mid, args).Value())
		},
		CallStaticMethod: func(env Env, cls Class, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallStaticCharMethodA(cls, mid, args).Value())
		},
	},

	KindShort: {
		Kind:      KindShort,
		Signature: "S",
		GetField: func(env Env, obj Object, fid FieldID) (Value, error) {
			return checked(env, env.GetShortField(obj, fid).Value())
		},
		GetStaticField: func(env Env, cls Class, fid FieldID) (Value, error) {
			return checked(env, env.GetStaticShortField(cls, fid).Value())
		},
		CallMethod: func(env Env, obj Object, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallShortMethodA(obj, mid, args).Value())
		},
		CallStaticMethod: func(env Env, cls Class, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallStaticShortMethodA(cls, mid, args).Value())
		},
	},

	KindInt: {
		Kind:      KindInt,
		Signature: "I",
		GetField: func(env Env, obj Object, fid FieldID) (Value, error) {
			return checked(env, env.GetIntField(obj, fid).Value())
		},
		GetStaticField: func(env Env, cls Class, fid FieldID) (Value, error) {
			return checked(env, env.GetStaticIntField(cls, fid).Value())
		},
		CallMethod: func(env Env, obj Object, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallIntMethodA(obj, mid, args).Value())
		},
		CallStaticMethod: func(env Env, cls Class, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallStaticIntMethodA(cls, mid, args).Value())
		},
	},

	KindLong: {
		Kind:      KindLong,
		Signature: "J",
		GetField: func(env Env, obj Object, fid FieldID) (Value, error) {
			return checked(env, env.GetLongField(obj, fid).Value())
		},
		GetStaticField: func(env Env, cls Class, fid FieldID) (Value, error) {
			return checked(env, env.GetStaticLongField(cls, fid).Value())
		},
		CallMethod: func(env Env, obj Object, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallLongMethodA(obj, mid, args).Value())
		},
		CallStaticMethod: func(env Env, cls Class, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallStaticLongMethodA(cls, mid, args).Value())
		},
	},

	KindFloat: {
		Kind:      KindFloat,
		Signature: "F",
		GetField: func(env Env, obj Object, fid FieldID) (Value, error) {
			return checked(env, env.GetFloatField(obj, fid).Value())
		},
		GetStaticField: func(env Env, cls Class, fid FieldID) (Value, error) {
			return checked(env, env.GetStaticFloatField(cls, fid).Value())
		},
		CallMethod: func(env Env, obj Object, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallFloatMethodA(obj, mid, args).Value())
		},
		CallStaticMethod: func(env Env, cls Class, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallStaticFloatMethodA(cls, mid, args).Value())
		},
	},

	KindDouble: {
		Kind:      KindDouble,
		Signature: "D",
		GetField: func(env Env, obj Object, fid FieldID) (Value, error) {
			return checked(env, env.GetDoubleField(obj, fid).Value())
		},
		GetStaticField: func(env Env, cls Class, fid FieldID) (Value, error) {
			return checked(env, env.GetStaticDoubleField(cls, fid).Value())
		},
		CallMethod: func(env Env, obj Object, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallDoubleMethodA(obj, mid, args).Value())
		},
		CallStaticMethod: func(env Env, cls Class, mid MethodID, args []Value) (Value, error) {
			return checked(env, env.CallStaticDoubleMethodA(cls, mid, args).Value())
		},
	},

	KindObject:    refDescriptor(KindObject, "Ljava/lang/Object;"),
	KindString:    refDescriptor(KindString, "Ljava/lang/String;"),
	KindClass:     refDescriptor(KindClass, "Ljava/lang/Class;"),
	KindThrowable: refDescriptor(KindThrowable, "Ljava/lang/Throwable;"),
}

// refDescriptor builds a reference-kind descriptor on the Object entry
// points; only the signature and the slot tag differ.
func refDescriptor(kind Kind, sig string) Descriptor {
	return Descriptor{
		Kind:      kind,
		Signature: sig,
		GetField: func(env Env, obj Object, fid FieldID) (Value, error) {
			return checked(env, refValue(kind, env.GetObjectField(obj, fid)))
		},
		GetStaticField: func(env Env, cls Class, fid FieldID) (Value, error) {
			return checked(env, refValue(kind, env.GetStaticObjectField(cls, fid)))
		},
		CallMethod: func(env Env, obj Object, mid MethodID, args []Value) (Value, error) {
			return checked(env, refValue(kind, env.CallObjectMethodA(obj, mid, args)))
		},
		CallStaticMethod: func(env Env, cls Class, mid MethodID, args []Value) (Value, error) {
			return checked(env, refValue(kind, env.CallStaticObjectMethodA(cls, mid, args)))
		},
	}
}
