// Package native implements jni.Env over a real JNIEnv pointer.
//
// The package is compiled only with cgo and the jni build tag, and needs the
// JDK headers on the include path:
//
//	CGO_CFLAGS="-I$JAVA_HOME/include -I$JAVA_HOME/include/linux" \
//		go build -tags jni ./...
//
// A typical entry point is a native method exported from a c-shared library:
//
//	//export Java_app_Greeter_greet
//	func Java_app_Greeter_greet(envp unsafe.Pointer, this uintptr) uintptr {
//		env := native.Attach(envp)
//		s, err := jni.CallStaticMethod[jni.String](env, "java/lang/String",
//			"valueOf", "(I)Ljava/lang/String;", jni.Int(42))
//		if err != nil {
//			jni.ThrowError(env, err)
//			return 0
//		}
//		return uintptr(s)
//	}
package native
