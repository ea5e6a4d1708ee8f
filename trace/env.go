package trace

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/chazu/jbridge/jni"
)

var log = commonlog.GetLogger("jbridge.trace")

// Env records every entry point called through it and forwards the call
// to the wrapped environment unchanged. It is safe to read the log from
// another goroutine while calls are being recorded.
type Env struct {
	inner jni.Env

	mu  sync.Mutex
	log Log
}

var _ jni.Env = (*Env)(nil)

// Wrap starts a new trace session over inner.
func Wrap(inner jni.Env, name string) *Env {
	e := &Env{
		inner: inner,
		log: Log{
			Session:   uuid.NewString(),
			Name:      name,
			StartedAt: time.Now().UnixNano(),
		},
	}
	log.Debugf("trace session %s (%s) started", e.log.Session, name)
	return e
}

// Inner returns the wrapped environment.
func (e *Env) Inner() jni.Env { return e.inner }

// Log returns a snapshot of the calls recorded so far.
func (e *Env) Log() *Log {
	e.mu.Lock()
	defer e.mu.Unlock()
	l := e.log
	l.Calls = append([]Call(nil), e.log.Calls...)
	return &l
}

// Len returns the number of recorded calls.
func (e *Env) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.log.Calls)
}

func (e *Env) record(op, result string, args ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log.Calls = append(e.log.Calls, Call{
		Seq:    len(e.log.Calls) + 1,
		Op:     op,
		Args:   args,
		Result: result,
	})
}

func handle[H ~uintptr](h H) string {
	if h == 0 {
		return "null"
	}
	return "0x" + strconv.FormatUint(uint64(h), 16)
}

func quote(s string) string { return strconv.Quote(s) }

func slots(args []jni.Value) string {
	parts := make([]string, len(args))
	for i, v := range args {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ---------------------------------------------------------------------------
// Entry points
// ---------------------------------------------------------------------------

func (e *Env) FindClass(name string) jni.Class {
	r := e.inner.FindClass(name)
	e.record("FindClass", handle(r), quote(name))
	return r
}

func (e *Env) GetObjectClass(obj jni.Object) jni.Class {
	r := e.inner.GetObjectClass(obj)
	e.record("GetObjectClass", handle(r), handle(obj))
	return r
}

func (e *Env) GetMethodID(cls jni.Class, name, sig string) jni.MethodID {
	r := e.inner.GetMethodID(cls, name, sig)
	e.record("GetMethodID", handle(r), handle(cls), quote(name), quote(sig))
	return r
}

func (e *Env) GetStaticMethodID(cls jni.Class, name, sig string) jni.MethodID {
	r := e.inner.GetStaticMethodID(cls, name, sig)
	e.record("GetStaticMethodID", handle(r), handle(cls), quote(name), quote(sig))
	return r
}

func (e *Env) GetFieldID(cls jni.Class, name, sig string) jni.FieldID {
	r := e.inner.GetFieldID(cls, name, sig)
	e.record("GetFieldID", handle(r), handle(cls), quote(name), quote(sig))
	return r
}

func (e *Env) GetStaticFieldID(cls jni.Class, name, sig string) jni.FieldID {
	r := e.inner.GetStaticFieldID(cls, name, sig)
	e.record("GetStaticFieldID", handle(r), handle(cls), quote(name), quote(sig))
	return r
}

func (e *Env) NewObjectA(cls jni.Class, ctor jni.MethodID, args []jni.Value) jni.Object {
	r := e.inner.NewObjectA(cls, ctor, args)
	e.record("NewObjectA", handle(r), handle(cls), handle(ctor), slots(args))
	return r
}

func (e *Env) CallObjectMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Object {
	r := e.inner.CallObjectMethodA(obj, mid, args)
	e.record("CallObjectMethodA", handle(r), handle(obj), handle(mid), slots(args))
	return r
}

func (e *Env) CallBooleanMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Boolean {
	r := e.inner.CallBooleanMethodA(obj, mid, args)
	e.record("CallBooleanMethodA", fmt.Sprint(r), handle(obj), handle(mid), slots(args))
	return r
}

func (e *Env) CallByteMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Byte {
	r := e.inner.CallByteMethodA(obj, mid, args)
	e.record("CallByteMethodA", fmt.Sprint(r), handle(obj), handle(mid), slots(args))
	return r
}

func (e *Env) CallCharMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Char {
	r := e.inner.CallCharMethodA(obj, mid, args)
	e.record("CallCharMethodA", fmt.Sprint(r), handle(obj), handle(mid), slots(args))
	return r
}

func (e *Env) CallShortMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Short {
	r := e.inner.CallShortMethodA(obj, mid, args)
	e.record("CallShortMethodA", fmt.Sprint(r), handle(obj), handle(mid), slots(args))
	return r
}

func (e *Env) CallIntMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Int {
	r := e.inner.CallIntMethodA(obj, mid, args)
	e.record("CallIntMethodA", fmt.Sprint(r), handle(obj), handle(mid), slots(args))
	return r
}

func (e *Env) CallLongMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Long {
	r := e.inner.CallLongMethodA(obj, mid, args)
	e.record("CallLongMethodA", fmt.Sprint(r), handle(obj), handle(mid), slots(args))
	return r
}

func (e *Env) CallFloatMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Float {
	r := e.inner.CallFloatMethodA(obj, mid, args)
	e.record("CallFloatMethodA", fmt.Sprint(r), handle(obj), handle(mid), slots(args))
	return r
}

func (e *Env) CallDoubleMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) jni.Double {
	r := e.inner.CallDoubleMethodA(obj, mid, args)
	e.record("CallDoubleMethodA", fmt.Sprint(r), handle(obj), handle(mid), slots(args))
	return r
}

func (e *Env) CallVoidMethodA(obj jni.Object, mid jni.MethodID, args []jni.Value) {
	e.inner.CallVoidMethodA(obj, mid, args)
	e.record("CallVoidMethodA", "", handle(obj), handle(mid), slots(args))
}

func (e *Env) CallStaticObjectMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Object {
	r := e.inner.CallStaticObjectMethodA(cls, mid, args)
	e.record("CallStaticObjectMethodA", handle(r), handle(cls), handle(mid), slots(args))
	return r
}

func (e *Env) CallStaticBooleanMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Boolean {
	r := e.inner.CallStaticBooleanMethodA(cls, mid, args)
	e.record("CallStaticBooleanMethodA", fmt.Sprint(r), handle(cls), handle(mid), slots(args))
	return r
}

func (e *Env) CallStaticByteMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Byte {
	r := e.inner.CallStaticByteMethodA(cls, mid, args)
	e.record("CallStaticByteMethodA", fmt.Sprint(r), handle(cls), handle(mid), slots(args))
	return r
}

func (e *Env) CallStaticCharMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Char {
	r := e.inner.CallStaticCharMethodA(cls, mid, args)
	e.record("CallStaticCharMethodA", fmt.Sprint(r), handle(cls), handle(mid), slots(args))
	return r
}

func (e *Env) CallStaticShortMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Short {
	r := e.inner.CallStaticShortMethodA(cls, mid, args)
	e.record("CallStaticShortMethodA", fmt.Sprint(r), handle(cls), handle(mid), slots(args))
	return r
}

func (e *Env) CallStaticIntMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Int {
	r := e.inner.CallStaticIntMethodA(cls, mid, args)
	e.record("CallStaticIntMethodA", fmt.Sprint(r), handle(cls), handle(mid), slots(args))
	return r
}

func (e *Env) CallStaticLongMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Long {
	r := e.inner.CallStaticLongMethodA(cls, mid, args)
	e.record("CallStaticLongMethodA", fmt.Sprint(r), handle(cls), handle(mid), slots(args))
	return r
}

func (e *Env) CallStaticFloatMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Float {
	r := e.inner.CallStaticFloatMethodA(cls, mid, args)
	e.record("CallStaticFloatMethodA", fmt.Sprint(r), handle(cls), handle(mid), slots(args))
	return r
}

func (e *Env) CallStaticDoubleMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) jni.Double {
	r := e.inner.CallStaticDoubleMethodA(cls, mid, args)
	e.record("CallStaticDoubleMethodA", fmt.Sprint(r), handle(cls), handle(mid), slots(args))
	return r
}

func (e *Env) CallStaticVoidMethodA(cls jni.Class, mid jni.MethodID, args []jni.Value) {
	e.inner.CallStaticVoidMethodA(cls, mid, args)
	e.record("CallStaticVoidMethodA", "", handle(cls), handle(mid), slots(args))
}

func (e *Env) GetObjectField(obj jni.Object, fid jni.FieldID) jni.Object {
	r := e.inner.GetObjectField(obj, fid)
	e.record("GetObjectField", handle(r), handle(obj), handle(fid))
	return r
}

func (e *Env) GetBooleanField(obj jni.Object, fid jni.FieldID) jni.Boolean {
	r := e.inner.GetBooleanField(obj, fid)
	e.record("GetBooleanField", fmt.Sprint(r), handle(obj), handle(fid))
	return r
}

func (e *Env) GetByteField(obj jni.Object, fid jni.FieldID) jni.Byte {
	r := e.inner.GetByteField(obj, fid)
	e.record("GetByteField", fmt.Sprint(r), handle(obj), handle(fid))
	return r
}

func (e *Env) GetCharField(obj jni.Object, fid jni.FieldID) jni.Char {
	r := e.inner.GetCharField(obj, fid)
	e.record("GetCharField", fmt.Sprint(r), handle(obj), handle(fid))
	return r
}

func (e *Env) GetShortField(obj jni.Object, fid jni.FieldID) jni.Short {
	r := e.inner.GetShortField(obj, fid)
	e.record("GetShortField", fmt.Sprint(r), handle(obj), handle(fid))
	return r
}

func (e *Env) GetIntField(obj jni.Object, fid jni.FieldID) jni.Int {
	r := e.inner.GetIntField(obj, fid)
	e.record("GetIntField", fmt.Sprint(r), handle(obj), handle(fid))
	return r
}

func (e *Env) GetLongField(obj jni.Object, fid jni.FieldID) jni.Long {
	r := e.inner.GetLongField(obj, fid)
	e.record("GetLongField", fmt.Sprint(r), handle(obj), handle(fid))
	return r
}

func (e *Env) GetFloatField(obj jni.Object, fid jni.FieldID) jni.Float {
	r := e.inner.GetFloatField(obj, fid)
	e.record("GetFloatField", fmt.Sprint(r), handle(obj), handle(fid))
	return r
}

func (e *Env) GetDoubleField(obj jni.Object, fid jni.FieldID) jni.Double {
	r := e.inner.GetDoubleField(obj, fid)
	e.record("GetDoubleField", fmt.Sprint(r), handle(obj), handle(fid))
	return r
}

func (e *Env) GetStaticObjectField(cls jni.Class, fid jni.FieldID) jni.Object {
	r := e.inner.GetStaticObjectField(cls, fid)
	e.record("GetStaticObjectField", handle(r), handle(cls), handle(fid))
	return r
}

func (e *Env) GetStaticBooleanField(cls jni.Class, fid jni.FieldID) jni.Boolean {
	r := e.inner.GetStaticBooleanField(cls, fid)
	e.record("GetStaticBooleanField", fmt.Sprint(r), handle(cls), handle(fid))
	return r
}

func (e *Env) GetStaticByteField(cls jni.Class, fid jni.FieldID) jni.Byte {
	r := e.inner.GetStaticByteField(cls, fid)
	e.record("GetStaticByteField", fmt.Sprint(r), handle(cls), handle(fid))
	return r
}

func (e *Env) GetStaticCharField(cls jni.Class, fid jni.FieldID) jni.Char {
	r := e.inner.GetStaticCharField(cls, fid)
	e.record("GetStaticCharField", fmt.Sprint(r), handle(cls), handle(fid))
	return r
}

func (e *Env) GetStaticShortField(cls jni.Class, fid jni.FieldID) jni.Short {
	r := e.inner.GetStaticShortField(cls, fid)
	e.record("GetStaticShortField", fmt.Sprint(r), handle(cls), handle(fid))
	return r
}

func (e *Env) GetStaticIntField(cls jni.Class, fid jni.FieldID) jni.Int {
	r := e.inner.GetStaticIntField(cls, fid)
	e.record("GetStaticIntField", fmt.Sprint(r), handle(cls), handle(fid))
	return r
}

func (e *Env) GetStaticLongField(cls jni.Class, fid jni.FieldID) jni.Long {
	r := e.inner.GetStaticLongField(cls, fid)
	e.record("GetStaticLongField", fmt.Sprint(r), handle(cls), handle(fid))
	return r
}

func (e *Env) GetStaticFloatField(cls jni.Class, fid jni.FieldID) jni.Float {
	r := e.inner.GetStaticFloatField(cls, fid)
	e.record("GetStaticFloatField", fmt.Sprint(r), handle(cls), handle(fid))
	return r
}

func (e *Env) GetStaticDoubleField(cls jni.Class, fid jni.FieldID) jni.Double {
	r := e.inner.GetStaticDoubleField(cls, fid)
	e.record("GetStaticDoubleField", fmt.Sprint(r), handle(cls), handle(fid))
	return r
}

func (e *Env) NewStringUTF(s string) jni.String {
	r := e.inner.NewStringUTF(s)
	e.record("NewStringUTF", handle(r), quote(s))
	return r
}

func (e *Env) GetStringUTFChars(str jni.String) (string, bool) {
	s, ok := e.inner.GetStringUTFChars(str)
	result := "<failed>"
	if ok {
		result = quote(s)
	}
	e.record("GetStringUTFChars", result, handle(str))
	return s, ok
}

func (e *Env) DeleteLocalRef(ref jni.Object) {
	e.inner.DeleteLocalRef(ref)
	e.record("DeleteLocalRef", "", handle(ref))
}

func (e *Env) ExceptionCheck() bool {
	r := e.inner.ExceptionCheck()
	e.record("ExceptionCheck", fmt.Sprint(r))
	return r
}

func (e *Env) ExceptionOccurred() jni.Throwable {
	r := e.inner.ExceptionOccurred()
	e.record("ExceptionOccurred", handle(r))
	return r
}

func (e *Env) ExceptionDescribe() {
	e.inner.ExceptionDescribe()
	e.record("ExceptionDescribe", "")
}

func (e *Env) ExceptionClear() {
	e.inner.ExceptionClear()
	e.record("ExceptionClear", "")
}

func (e *Env) Throw(t jni.Throwable) jni.Int {
	r := e.inner.Throw(t)
	e.record("Throw", fmt.Sprint(r), handle(t))
	return r
}

func (e *Env) ThrowNew(cls jni.Class, msg string) jni.Int {
	r := e.inner.ThrowNew(cls, msg)
	e.record("ThrowNew", fmt.Sprint(r), handle(cls), quote(msg))
	return r
}
