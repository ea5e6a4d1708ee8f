package jni

// Env is the JNI entry-point surface this package consumes. It mirrors the
// JNIEnv function table one method per entry point; implementations do not
// check for exceptions themselves. Any method except the Exception* family
// and DeleteLocalRef may leave an exception pending, and callers in this
// package follow every call with Check.
//
// The C-variadic Call<Type>Method forms are absent: cgo cannot call them,
// and a zero-argument call is the A form with an empty frame.
type Env interface {
	FindClass(name string) Class
	GetObjectClass(obj Object) Class

	GetMethodID(cls Class, name, sig string) MethodID
	GetStaticMethodID(cls Class, name, sig string) MethodID
	GetFieldID(cls Class, name, sig string) FieldID
	GetStaticFieldID(cls Class, name, sig string) FieldID

	NewObjectA(cls Class, ctor MethodID, args []Value) Object

	CallObjectMethodA(obj Object, mid MethodID, args []Value) Object
	CallBooleanMethodA(obj Object, mid MethodID, args []Value) Boolean
	CallByteMethodA(obj Object, mid MethodID, args []Value) Byte
	CallCharMethodA(obj Object, mid MethodID, args []Value) Char
	CallShortMethodA(obj Object, mid MethodID, args []Value) Short
	CallIntMethodA(obj Object, mid MethodID, args []Value) Int
	CallLongMethodA(obj Object, mid MethodID, args []Value) Long
	CallFloatMethodA(obj Object, mid MethodID, args []Value) Float
	CallDoubleMethodA(obj Object, mid MethodID, args []Value) Double
	CallVoidMethodA(obj Object, mid MethodID, args []Value)

	CallStaticObjectMethodA(cls Class, mid MethodID, args []Value) Object
	CallStaticBooleanMethodA(cls Class, mid MethodID, args []Value) Boolean
	CallStaticByteMethodA(cls Class, mid MethodID, args []Value) Byte
	CallStaticCharMethodA(cls Class, mid MethodID, args []Value) Char
	CallStaticShortMethodA(cls Class, mid MethodID, args []Value) Short
	CallStaticIntMethodA(cls Class, mid MethodID, args []Value) Int
	CallStaticLongMethodA(cls Class, mid MethodID, args []Value) Long
	CallStaticFloatMethodA(cls Class, mid MethodID, args []Value) Float
	CallStaticDoubleMethodA(cls Class, mid MethodID, args []Value) Double
	CallStaticVoidMethodA(cls Class, mid MethodID, args []Value)

	GetObjectField(obj Object, fid FieldID) Object
	GetBooleanField(obj Object, fid FieldID) Boolean
	GetByteField(obj Object, fid FieldID) Byte
	GetCharField(obj Object, fid FieldID) Char
	GetShortField(obj Object, fid FieldID) Short
	GetIntField(obj Object, fid FieldID) Int
	GetLongField(obj Object, fid FieldID) Long
	GetFloatField(obj Object, fid FieldID) Float
	GetDoubleField(obj Object, fid FieldID) Double

	GetStaticObjectField(cls Class, fid FieldID) Object
	GetStaticBooleanField(cls Class, fid FieldID) Boolean
	GetStaticByteField(cls Class, fid FieldID) Byte
	GetStaticCharField(cls Class, fid FieldID) Char
	GetStaticShortField(cls Class, fid FieldID) Short
	GetStaticIntField(cls Class, fid FieldID) Int
	GetStaticLongField(cls Class, fid FieldID) Long
	GetStaticFloatField(cls Class, fid FieldID) Float
	GetStaticDoubleField(cls Class, fid FieldID) Double

	NewStringUTF(s string) String
	// GetStringUTFChars copies the string's modified UTF-8 contents and
	// releases the native buffer. ok is false if the chars could not be
	// obtained.
	GetStringUTFChars(str String) (s string, ok bool)

	DeleteLocalRef(ref Object)

	ExceptionCheck() bool
	ExceptionOccurred() Throwable
	ExceptionDescribe()
	ExceptionClear()
	Throw(t Throwable) Int
	ThrowNew(cls Class, msg string) Int
}
