//go:build cgo && jni

package native

/*
#include <jni.h>
#include <stdint.h>
#include <stdlib.h>

// Handles and member IDs cross as uintptr_t so the Go side never holds a
// C pointer it did not allocate.

static uintptr_t jb_FindClass(JNIEnv* env, const char* name) {
	return (uintptr_t)(*env)->FindClass(env, name);
}

static uintptr_t jb_GetObjectClass(JNIEnv* env, uintptr_t obj) {
	return (uintptr_t)(*env)->GetObjectClass(env, (jobject)obj);
}

static uintptr_t jb_GetMethodID(JNIEnv* env, uintptr_t cls, const char* name, const char* sig) {
	return (uintptr_t)(*env)->GetMethodID(env, (jclass)cls, name, sig);
}

static uintptr_t jb_GetStaticMethodID(JNIEnv* env, uintptr_t cls, const char* name, const char* sig) {
	return (uintptr_t)(*env)->GetStaticMethodID(env, (jclass)cls, name, sig);
}

static uintptr_t jb_GetFieldID(JNIEnv* env, uintptr_t cls, const char* name, const char* sig) {
	return (uintptr_t)(*env)->GetFieldID(env, (jclass)cls, name, sig);
}

static uintptr_t jb_GetStaticFieldID(JNIEnv* env, uintptr_t cls, const char* name, const char* sig) {
	return (uintptr_t)(*env)->GetStaticFieldID(env, (jclass)cls, name, sig);
}

static uintptr_t jb_NewObjectA(JNIEnv* env, uintptr_t cls, uintptr_t ctor, const jvalue* args) {
	return (uintptr_t)(*env)->NewObjectA(env, (jclass)cls, (jmethodID)ctor, args);
}

static uintptr_t jb_CallObjectMethodA(JNIEnv* env, uintptr_t obj, uintptr_t mid, const jvalue* args) {
	return (uintptr_t)(*env)->CallObjectMethodA(env, (jobject)obj, (jmethodID)mid, args);
}

static jboolean jb_CallBooleanMethodA(JNIEnv* env, uintptr_t obj, uintptr_t mid, const jvalue* args) {
	return (*env)->CallBooleanMethodA(env, (jobject)obj, (jmethodID)mid, args);
}

static jbyte jb_CallByteMethodA(JNIEnv* env, uintptr_t obj, uintptr_t mid, const jvalue* args) {
	return (*env)->CallByteMethodA(env, (jobject)obj, (jmethodID)mid, args);
}

static jchar jb_CallCharMethodA(JNIEnv* env, uintptr_t obj, uintptr_t mid, const jvalue* args) {
	return (*env)->CallCharMethodA(env, (jobject)obj, (jmethodID)mid, args);
}

static jshort jb_CallShortMethodA(JNIEnv* env, uintptr_t obj, uintptr_t mid, const jvalue* args) {
	return (*env)->CallShortMethodA(env, (jobject)obj, (jmethodID)mid, args);
}

static jint jb_CallIntMethodA(JNIEnv* env, uintptr_t obj, uintptr_t mid, const jvalue* args) {
	return (*env)->CallIntMethodA(env, (jobject)obj, (jmethodID)mid, args);
}

static jlong jb_CallLongMethodA(JNIEnv* env, uintptr_t obj, uintptr_t mid, const jvalue* args) {
	return (*env)->CallLongMethodA(env, (jobject)obj, (jmethodID)mid, args);
}

static jfloat jb_CallFloatMethodA(JNIEnv* env, uintptr_t obj, uintptr_t mid, const jvalue* args) {
	return (*env)->CallFloatMethodA(env, (jobject)obj, (jmethodID)mid, args);
}

static jdouble jb_CallDoubleMethodA(JNIEnv* env, uintptr_t obj, uintptr_t mid, const jvalue* args) {
	return (*env)->CallDoubleMethodA(env, (jobject)obj, (jmethodID)mid, args);
}

static void jb_CallVoidMethodA(JNIEnv* env, uintptr_t obj, uintptr_t mid, const jvalue* args) {
	(*env)->CallVoidMethodA(env, (jobject)obj, (jmethodID)mid, args);
}

static uintptr_t jb_CallStaticObjectMethodA(JNIEnv* env, uintptr_t cls, uintptr_t mid, const jvalue* args) {
	return (uintptr_t)(*env)->CallStaticObjectMethodA(env, (jclass)cls, (jmethodID)mid, args);
}

static jboolean jb_CallStaticBooleanMethodA(JNIEnv* env, uintptr_t cls, uintptr_t mid, const jvalue* args) {
	return (*env)->CallStaticBooleanMethodA(env, (jclass)cls, (jmethodID)mid, args);
}

static jbyte jb_CallStaticByteMethodA(JNIEnv* env, uintptr_t cls, uintptr_t mid, const jvalue* args) {
	return (*env)->CallStaticByteMethodA(env, (jclass)cls, (jmethodID)mid, args);
}

static jchar jb_CallStaticCharMethodA(JNIEnv* env, uintptr_t cls, uintptr_t mid, const jvalue* args) {
	return (*env)->CallStaticCharMethodA(env, (jclass)cls, (jmethodID)mid, args);
}

static jshort jb_CallStaticShortMethodA(JNIEnv* env, uintptr_t cls, uintptr_t mid, const jvalue* args) {
	return (*env)->CallStaticShortMethodA(env, (jclass)cls, (jmethodID)mid, args);
}

static jint jb_CallStaticIntMethodA(JNIEnv* env, uintptr_t cls, uintptr_t mid, const jvalue* args) {
	return (*env)->CallStaticIntMethodA(env, (jclass)cls, (jmethodID)mid, args);
}

static jlong jb_CallStaticLongMethodA(JNIEnv* env, uintptr_t cls, uintptr_t mid, const jvalue* args) {
	return (*env)->CallStaticLongMethodA(env, (jclass)cls, (jmethodID)mid, args);
}

static jfloat jb_CallStaticFloatMethodA(JNIEnv* env, uintptr_t cls, uintptr_t mid, const jvalue* args) {
	return (*env)->CallStaticFloatMethodA(env, (jclass)cls, (jmethodID)mid, args);
}

static jdouble jb_CallStaticDoubleMethodA(JNIEnv* env, uintptr_t cls, uintptr_t mid, const jvalue* args) {
	return (*env)->CallStaticDoubleMethodA(env, (jclass)cls, (jmethodID)mid, args);
}

static void jb_CallStaticVoidMethodA(JNIEnv* env, uintptr_t cls, uintptr_t mid, const jvalue* args) {
	(*env)->CallStaticVoidMethodA(env, (jclass)cls, (jmethodID)mid, args);
}

static uintptr_t jb_GetObjectField(JNIEnv* env, uintptr_t obj, uintptr_t fid) {
	return (uintptr_t)(*env)->GetObjectField(env, (jobject)obj, (jfieldID)fid);
}

static jboolean jb_GetBooleanField(JNIEnv* env, uintptr_t obj, uintptr_t fid) {
	return (*env)->GetBooleanField(env, (jobject)obj, (jfieldID)fid);
}

static jbyte jb_GetByteField(JNIEnv* env, uintptr_t obj, uintptr_t fid) {
	return (*env)->GetByteField(env, (jobject)obj, (jfieldID)fid);
}

static jchar jb_GetCharField(JNIEnv* env, uintptr_t obj, uintptr_t fid) {
	return (*env)->GetCharField(env, (jobject)obj, (jfieldID)fid);
}

static jshort jb_GetShortField(JNIEnv* env, uintptr_t obj, uintptr_t fid) {
	return (*env)->GetShortField(env, (jobject)obj, (jfieldID)fid);
}

static jint jb_GetIntField(JNIEnv* env, uintptr_t obj, uintptr_t fid) {
	return (*env)->GetIntField(env, (jobject)obj, (jfieldID)fid);
}

static jlong jb_GetLongField(JNIEnv* env, uintptr_t obj, uintptr_t fid) {
	return (*env)->GetLongField(env, (jobject)obj, (jfieldID)fid);
}

static jfloat jb_GetFloatField(JNIEnv* env, uintptr_t obj, uintptr_t fid) {
	return (*env)->GetFloatField(env, (jobject)obj, (jfieldID)fid);
}

static jdouble jb_GetDoubleField(JNIEnv* env, uintptr_t obj, uintptr_t fid) {
	return (*env)->GetDoubleField(env, (jobject)obj, (jfieldID)fid);
}

static uintptr_t jb_GetStaticObjectField(JNIEnv* env, uintptr_t cls, uintptr_t fid) {
	return (uintptr_t)(*env)->GetStaticObjectField(env, (jclass)cls, (jfieldID)fid);
}

static jboolean jb_GetStaticBooleanField(JNIEnv* env, uintptr_t cls, uintptr_t fid) {
	return (*env)->GetStaticBooleanField(env, (jclass)cls, (jfieldID)fid);
}

static jbyte jb_GetStaticByteField(JNIEnv* env, uintptr_t cls, uintptr_t fid) {
	return (*env)->GetStaticByteField(env, (jclass)cls, (jfieldID)fid);
}

static jchar jb_GetStaticCharField(JNIEnv* env, uintptr_t cls, uintptr_t fid) {
	return (*env)->GetStaticCharField(env, (jclass)cls, (jfieldID)fid);
}

static jshort jb_GetStaticShortField(JNIEnv* env, uintptr_t cls, uintptr_t fid) {
	return (*env)->GetStaticShortField(env, (jclass)cls, (jfieldID)fid);
}

static jint jb_GetStaticIntField(JNIEnv* env, uintptr_t cls, uintptr_t fid) {
	return (*env)->GetStaticIntField(env, (jclass)cls, (jfieldID)fid);
}

static jlong jb_GetStaticLongField(JNIEnv* env, uintptr_t cls, uintptr_t fid) {
	return (*env)->GetStaticLongField(env, (jclass)cls, (jfieldID)fid);
}

static jfloat jb_GetStaticFloatField(JNIEnv* env, uintptr_t cls, uintptr_t fid) {
	return (*env)->GetStaticFloatField(env, (jclass)cls, (jfieldID)fid);
}

static jdouble jb_GetStaticDoubleField(JNIEnv* env, uintptr_t cls, uintptr_t fid) {
	return (*env)->GetStaticDoubleField(env, (jclass)cls, (jfieldID)fid);
}

static uintptr_t jb_NewStringUTF(JNIEnv* env, const char* s) {
	return (uintptr_t)(*env)->NewStringUTF(env, s);
}

static const char* jb_GetStringUTFChars(JNIEnv* env, uintptr_t str) {
	return (*env)->GetStringUTFChars(env, (jstring)str, NULL);
}

static void jb_ReleaseStringUTFChars(JNIEnv* env, uintptr_t str, const char* chars) {
	(*env)->ReleaseStringUTFChars(env, (jstring)str, chars);
}

static void jb_DeleteLocalRef(JNIEnv* env, uintptr_t ref) {
	(*env)->DeleteLocalRef(env, (jobject)ref);
}

static jboolean jb_ExceptionCheck(JNIEnv* env) {
	return (*env)->ExceptionCheck(env);
}

static uintptr_t jb_ExceptionOccurred(JNIEnv* env) {
	return (uintptr_t)(*env)->ExceptionOccurred(env);
}

static void jb_ExceptionDescribe(JNIEnv* env) {
	(*env)->ExceptionDescribe(env);
}

static void jb_ExceptionClear(JNIEnv* env) {
	(*env)->ExceptionClear(env);
}

static jint jb_Throw(JNIEnv* env, uintptr_t t) {
	return (*env)->Throw(env, (jthrowable)t);
}

static jint jb_ThrowNew(JNIEnv* env, uintptr_t cls, const char* msg) {
	return (*env)->ThrowNew(env, (jclass)cls, msg);
}
*/
import "C"

import (
	"unsafe"

	"github.com/chazu/jbridge/jni"
)

// Env drives a real JVM through a JNIEnv pointer. It is bound to the thread
// the pointer was obtained on; callers must keep the calling goroutine
// locked to that thread (runtime.LockOSThread) for the Env's lifetime.
type Env struct {
	env *C.JNIEnv
}

var _ jni.Env = (*Env)(nil)

// Attach wraps the JNIEnv* handed to a native method or returned by
// AttachCurrentThread.
func Attach(env unsafe.Pointer) *Env {
	return &Env{env: (*C.JNIEnv)(env)}
}

// jvalues lays a frame out as a jvalue array. Each slot is written through
// the union member its kind selects. The array is never empty so its first
// element is always addressable.
func jvalues(args []jni.Value) []C.jvalue {
	out := make([]C.jvalue, max(len(args), 1))
	for i, v := range args {
		p := unsafe.Pointer(&out[i])
		switch v.Kind() {
		case jni.KindBoolean:
			if v.Boolean() {
				*(*C.jboolean)(p) = C.JNI_TRUE
			} else {
				*(*C.jboolean)(p) = C.JNI_FALSE
			}
		case jni.KindByte:
			*(*C.jbyte)(p) = C.jbyte(v.Byte())
		case jni.KindChar:
			*(*C.jchar)(p) = C.jchar(v.Char())
		case jni.KindShort:
			*(*C.jshort)(p) = C.jshort(v.Short())
		case jni.KindInt:
			*(*C.jint)(p) = C.jint(v.Int())
		case jni.KindLong:
			*(*C.jlong)(p) = C.jlong(v.Long())
		case jni.KindFloat:
			*(*C.jfloat)(p) = C.jfloat(v.Float())
		case jni.KindDouble:
			*(*C.jdouble)(p) = C.jdouble(v.Double())
		default:
			*(*C.uintptr_t)(p) = C.uintptr_t(v.Object())
		}
	}
	return out
}

func (e *Env) FindClass(name string) jni.Class {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return jni.Class(C.jb_FindClass(e.env, cname))
}

func (e *Env) GetObjectClass(obj jni.Object) jni.Class {
	return jni.Class(C.jb_GetObjectClass(e.env, C.uintptr_t(obj)))
}

func (e *Env) GetMethodID(cls jni.Class, name, sig string) jni.MethodID {
	cname, csig := C.CString(name), C.CString(sig)
	defer C.free(unsafe.Pointer(cname))
	defer C.free(unsafe.Pointer(csig))
	return jni.MethodID(C.jb_GetMethodID(e.env, C.uintptr_t(cls), cname, csig))
}

func (e *Env) GetStaticMethodID(cls jni.Class, name, sig string) jni.MethodID {
	cname, csig := C.CString(name), C.CString(sig)
	defer C.free(unsafe.Pointer(cname))
	defer C.free(unsafe.Pointer(csig))
	return jni.MethodID(C.jb_GetStaticMethodID(e.env, C.uintptr_t(cls), cname, csig))
}

func (e *Env) GetFieldID(cls jni.Class, name, sig string) jni.FieldID {
	cname, csig := C.CString(name), C.CString(sig)
	defer C.free(unsafe.Pointer(cname))
	defer C.free(unsafe.Pointer(csig))
	return jni.FieldID(C.jb_GetFieldID(e.env, C.uintptr_t(cls), cname, csig))
}

func (e *Env) GetStaticFieldID(cls jni.Class, name, sig string) jni.FieldID {
	cname, csig := C.CString(name), C.CString(sig)
	defer C.free(unsafe.Pointer(cname))
	defer C.free(unsafe.Pointer(csig))
	return jni.FieldID(C.jb_GetStaticFieldID(e.env, C.uintptr_t(cls), cname, csig))
}

func (e *Env) NewObjectA(cls jni.Class, ctor jni.MethodID, args []jni.Value) jni.Object {
	frame := jvalues(args)
	return jni.Object(C.jb_NewObjectA(e.env, C.uintptr_t(cls), C.uintptr_t(ctor), &frame[0]))
}

func (e *Env) CallObjectMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Object {
	frame := jvalues(args)
	return jni.Object(C.jb_CallObjectMethodA(e.env, C.uintptr_t(obj), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallBooleanMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Boolean {
	frame := jvalues(args)
	return C.jb_CallBooleanMethodA(e.env, C.uintptr_t(obj), C.uintptr_t(mid), &frame[0]) != C.JNI_FALSE
}

func (e *Env) CallByteMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Byte {
	frame := jvalues(args)
	return jni.Byte(C.jb_CallByteMethodA(e.env, C.uintptr_t(obj), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallCharMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Char {
	frame := jvalues(args)
	return jni.Char(C.jb_CallCharMethodA(e.env, C.uintptr_t(obj), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallShortMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Short {
	frame := jvalues(args)
	return jni.Short(C.jb_CallShortMethodA(e.env, C.uintptr_t(obj), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallIntMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Int {
	frame := jvalues(args)
	return jni.Int(C.jb_CallIntMethodA(e.env, C.uintptr_t(obj), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallLongMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Long {
	frame := jvalues(args)
	return jni.Long(C.jb_CallLongMethodA(e.env, C.uintptr_t(obj), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallFloatMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Float {
	frame := jvalues(args)
	return jni.Float(C.jb_CallFloatMethodA(e.env, C.uintptr_t(obj), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallDoubleMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Double {
	frame := jvalues(args)
	return jni.Double(C.jb_CallDoubleMethodA(e.env, C.uintptr_t(obj), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallVoidMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) {
	frame := jvalues(args)
	C.jb_CallVoidMethodA(e.env, C.uintptr_t(obj), C.uintptr_t(mid), &frame[0])
}

func (e *Env) CallStaticObjectMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Object {
	frame := jvalues(args)
	return jni.Object(C.jb_CallStaticObjectMethodA(e.env, C.uintptr_t(cls), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallStaticBooleanMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Boolean {
	frame := jvalues(args)
	return C.jb_CallStaticBooleanMethodA(e.env, C.uintptr_t(cls), C.uintptr_t(mid), &frame[0]) != C.JNI_FALSE
}

func (e *Env) CallStaticByteMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Byte {
	frame := jvalues(args)
	return jni.Byte(C.jb_CallStaticByteMethodA(e.env, C.uintptr_t(cls), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallStaticCharMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Char {
	frame := jvalues(args)
	return jni.Char(C.jb_CallStaticCharMethodA(e.env, C.uintptr_t(cls), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallStaticShortMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Short {
	frame := jvalues(args)
	return jni.Short(C.jb_CallStaticShortMethodA(e.env, C.uintptr_t(cls), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallStaticIntMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Int {
	frame := jvalues(args)
	return jni.Int(C.jb_CallStaticIntMethodA(e.env, C.uintptr_t(cls), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallStaticLongMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Long {
	frame := jvalues(args)
	return jni.Long(C.jb_CallStaticLongMethodA(e.env, C.uintptr_t(cls), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallStaticFloatMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Float {
	frame := jvalues(args)
	return jni.Float(C.jb_CallStaticFloatMethodA(e.env, C.uintptr_t(cls), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallStaticDoubleMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Double {
	frame := jvalues(args)
	return jni.Double(C.jb_CallStaticDoubleMethodA(e.env, C.uintptr_t(cls), C.uintptr_t(mid), &frame[0]))
}

func (e *Env) CallStaticVoidMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) {
	frame := jvalues(args)
	C.jb_CallStaticVoidMethodA(e.env, C.uintptr_t(cls), C.uintptr_t(mid), &frame[0])
}

func (e *Env) GetObjectField(obj jni.Object, fid jni.FieldID) jni.Object {
	return jni.Object(C.jb_GetObjectField(e.env, C.uintptr_t(obj), C.uintptr_t(fid)))
}

func (e *Env) GetBooleanField(obj jni.Object, fid jni.FieldID) jni.Boolean {
	return C.jb_GetBooleanField(e.env, C.uintptr_t(obj), C.uintptr_t(fid)) != C.JNI_FALSE
}

func (e *Env) GetByteField(obj jni.Object, fid jni.FieldID) jni.Byte {
	return jni.Byte(C.jb_GetByteField(e.env, C.uintptr_t(obj), C.uintptr_t(fid)))
}

func (e *Env) GetCharField(obj jni.Object, fid jni.FieldID) jni.Char {
	return jni.Char(C.jb_GetCharField(e.env, C.uintptr_t(obj), C.uintptr_t(fid)))
}

func (e *Env) GetShortField(obj jni.Object, fid jni.FieldID) jni.Short {
	return jni.Short(C.jb_GetShortField(e.env, C.uintptr_t(obj), C.uintptr_t(fid)))
}

func (e *Env) GetIntField(obj jni.Object, fid jni.FieldID) jni.Int {
	return jni.Int(C.jb_GetIntField(e.env, C.uintptr_t(obj), C.uintptr_t(fid)))
}

func (e *Env) GetLongField(obj jni.Object, fid jni.FieldID) jni.Long {
	return jni.Long(C.jb_GetLongField(e.env, C.uintptr_t(obj), C.uintptr_t(fid)))
}

func (e *Env) GetFloatField(obj jni.Object, fid jni.FieldID) jni.Float {
	return jni.Float(C.jb_GetFloatField(e.env, C.uintptr_t(obj), C.uintptr_t(fid)))
}

func (e *Env) GetDoubleField(obj jni.Object, fid jni.FieldID) jni.Double {
	return jni.Double(C.jb_GetDoubleField(e.env, C.uintptr_t(obj), C.uintptr_t(fid)))
}

func (e *Env) GetStaticObjectField(cls jni.Class, fid jni.FieldID) jni.Object {
	return jni.Object(C.jb_GetStaticObjectField(e.env, C.uintptr_t(cls), C.uintptr_t(fid)))
}

func (e *Env) GetStaticBooleanField(cls jni.Class, fid jni.FieldID) jni.Boolean {
	return C.jb_GetStaticBooleanField(e.env, C.uintptr_t(cls), C.uintptr_t(fid)) != C.JNI_FALSE
}

func (e *Env) GetStaticByteField(cls jni.Class, fid jni.FieldID) jni.Byte {
	return jni.Byte(C.jb_GetStaticByteField(e.env, C.uintptr_t(cls), C.uintptr_t(fid)))
}

func (e *Env) GetStaticCharField(cls jni.Class, fid jni.FieldID) jni.Char {
	return jni.Char(C.jb_GetStaticCharField(e.env, C.uintptr_t(cls), C.uintptr_t(fid)))
}

func (e *Env) GetStaticShortField(cls jni.Class, fid jni.FieldID) jni.Short {
	return jni.Short(C.jb_GetStaticShortField(e.env, C.uintptr_t(cls), C.uintptr_t(fid)))
}

func (e *Env) GetStaticIntField(cls jni.Class, fid jni.FieldID) jni.Int {
	return jni.Int(C.jb_GetStaticIntField(e.env, C.uintptr_t(cls), C.uintptr_t(fid)))
}

func (e *Env) GetStaticLongField(cls jni.Class, fid jni.FieldID) jni.Long {
	return jni.Long(C.jb_GetStaticLongField(e.env, C.uintptr_t(cls), C.uintptr_t(fid)))
}

func (e *Env) GetStaticFloatField(cls jni.Class, fid jni.FieldID) jni.Float {
	return jni.Float(C.jb_GetStaticFloatField(e.env, C.uintptr_t(cls), C.uintptr_t(fid)))
}

func (e *Env) GetStaticDoubleField(cls jni.Class, fid jni.FieldID) jni.Double {
	return jni.Double(C.jb_GetStaticDoubleField(e.env, C.uintptr_t(cls), C.uintptr_t(fid)))
}

func (e *Env) NewStringUTF(s string) jni.String {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return jni.String(C.jb_NewStringUTF(e.env, cs))
}

func (e *Env) GetStringUTFChars(str jni.String) (string, bool) {
	chars := C.jb_GetStringUTFChars(e.env, C.uintptr_t(str))
	if chars == nil {
		return "", false
	}
	defer C.jb_ReleaseStringUTFChars(e.env, C.uintptr_t(str), chars)
	return C.GoString(chars), true
}

func (e *Env) DeleteLocalRef(ref jni.Object) {
	C.jb_DeleteLocalRef(e.env, C.uintptr_t(ref))
}

func (e *Env) ExceptionCheck() bool {
	return C.jb_ExceptionCheck(e.env) != C.JNI_FALSE
}

func (e *Env) ExceptionOccurred() jni.Throwable {
	return jni.Throwable(C.jb_ExceptionOccurred(e.env))
}

func (e *Env) ExceptionDescribe() { C.jb_ExceptionDescribe(e.env) }

func (e *Env) ExceptionClear() { C.jb_ExceptionClear(e.env) }

func (e *Env) Throw(t jni.Throwable) jni.Int {
	return jni.Int(C.jb_Throw(e.env, C.uintptr_t(t)))
}

func (e *Env) ThrowNew(cls jni.Class, msg string) jni.Int {
	cmsg := C.CString(msg)
	defer C.free(unsafe.Pointer(cmsg))
	return jni.Int(C.jb_ThrowNew(e.env, C.uintptr_t(cls), cmsg))
}
