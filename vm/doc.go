// Package vm implements a small in-process JVM-style object system that
// speaks the jni.Env entry-point surface.
//
// This package contains:
//   - Classes, methods and fields defined from Go (ClassDef)
//   - A java.lang bootstrap library (Object, String, boxed primitives,
//     Math, StringBuilder and the Throwable hierarchy)
//   - Per-thread Envs with a finite local reference table
//   - The pending-exception state, enforced: entry points other than the
//     Exception* family and DeleteLocalRef refuse to run while an exception
//     is pending and record a violation instead
//
// It exists so the bridge can be exercised without a JDK, and so that
// misuse a real JVM would only punish with a crash (stale references,
// calls with a pending exception, leaked locals) becomes observable.
package vm
