package jni

// noCopy trips go vet's copylocks check when a LocalRef is copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// LocalRef owns exactly one local reference and deletes it on Close unless
// ownership was handed back with Release first. The usual shape is
//
//	ref := jni.NewLocalRef(env, cls)
//	defer ref.Close()
//
// A LocalRef must not be copied.
type LocalRef[T Ref] struct {
	noCopy noCopy
	env    Env
	ref    T
	armed  bool
}

// NewLocalRef takes ownership of ref.
func NewLocalRef[T Ref](env Env, ref T) *LocalRef[T] {
	return &LocalRef[T]{env: env, ref: ref, armed: true}
}

// Get returns the handle without transferring ownership.
func (r *LocalRef[T]) Get() T {
	return r.ref
}

// Valid reports whether the guard still owns a non-null handle.
func (r *LocalRef[T]) Valid() bool {
	return r.armed && r.ref != 0
}

// Release disarms the guard and returns the handle; the caller now owns it.
func (r *LocalRef[T]) Release() T {
	var zero T
	ref := r.ref
	r.ref = zero
	r.armed = false
	return ref
}

// Close deletes the handle if the guard is still armed. Closing a null,
// released or already closed ref does nothing. DeleteLocalRef cannot raise,
// so no Check follows it.
func (r *LocalRef[T]) Close() {
	if !r.armed {
		return
	}
	r.armed = false
	if r.ref != 0 {
		r.env.DeleteLocalRef(Object(r.ref))
	}
	var zero T
	r.ref = zero
}
