package vm

import (
	"errors"
	"fmt"

	"github.com/chazu/jbridge/jni"
)

// Exception is the error an Impl returns to raise a Java exception. When
// Object is set the exception rethrows that throwable; otherwise a new
// instance of ClassName is created with Message.
type Exception struct {
	ClassName string
	Message   string
	Object    *Object
}

func (e *Exception) Error() string {
	name := e.ClassName
	if e.Object != nil {
		name = e.Object.Class.Name
	}
	if e.Message == "" {
		return jni.BinaryName(name)
	}
	return jni.BinaryName(name) + ": " + e.Message
}

// Throw returns an error that raises a new className with msg. An empty msg
// leaves detailMessage null.
func Throw(className, msg string) error {
	return &Exception{ClassName: className, Message: msg}
}

// Throwf is Throw with a formatted message.
func Throwf(className, format string, args ...any) error {
	return &Exception{ClassName: className, Message: fmt.Sprintf(format, args...)}
}

// Rethrow returns an error that raises an existing throwable object.
func Rethrow(t *Object) error {
	return &Exception{Object: t}
}

// throwable converts an Impl error into the throwable object to make
// pending.
func (vm *VM) throwable(err error) *Object {
	var exc *Exception
	if !errors.As(err, &exc) {
		log.Warningf("method returned a non-Java error, raising RuntimeException: %s", err)
		return vm.NewThrowable("java/lang/RuntimeException", err.Error())
	}
	if exc.Object != nil {
		return exc.Object
	}
	return vm.NewThrowable(exc.ClassName, exc.Message)
}

// NewThrowable creates an instance of className with detailMessage set to
// msg (null when msg is empty). Unknown or non-throwable classes yield a
// NoClassDefFoundError naming className.
func (vm *VM) NewThrowable(className, msg string) *Object {
	cls := vm.Class(className)
	if cls == nil || !cls.IsSubclassOf(vm.throwableClass) {
		return vm.newThrowable(vm.Class("java/lang/NoClassDefFoundError"), className)
	}
	return vm.newThrowable(cls, msg)
}

func (vm *VM) newThrowable(cls *Class, msg string) *Object {
	o := vm.Instantiate(cls)
	if msg != "" {
		o.SetField("detailMessage", Ref(vm.NewString(msg)))
	}
	return o
}

// ThrowableMessage returns a throwable's detailMessage and whether it is
// non-null.
func ThrowableMessage(t *Object) (string, bool) {
	msg := t.Field("detailMessage").Ref
	if msg == nil {
		return "", false
	}
	return msg.text, true
}

// describeThrowable renders t the way Throwable.toString does: the binary
// class name, then ": " and the message if there is one.
func describeThrowable(t *Object) string {
	if msg, ok := ThrowableMessage(t); ok {
		return t.Class.BinaryName() + ": " + msg
	}
	return t.Class.BinaryName()
}
