package jni

// Arg is a single call argument. The set of implementations is closed:
// every primitive and reference type, Text, and Null. Anything else is
// rejected by the compiler.
type Arg interface {
	pack(f *Frame) error
}

// Text is Go text that is passed as a new java/lang/String.
type Text string

// NullRef is the type of Null.
type NullRef struct{}

// Null passes a null reference.
var Null NullRef

func (b Boolean) pack(f *Frame) error { return f.push(b.Value()) }
func (b Byte) pack(f *Frame) error    { return f.push(b.Value()) }
func (c Char) pack(f *Frame) error    { return f.push(c.Value()) }
func (s Short) pack(f *Frame) error   { return f.push(s.Value()) }
func (i Int) pack(f *Frame) error     { return f.push(i.Value()) }
func (l Long) pack(f *Frame) error    { return f.push(l.Value()) }
func (v Float) pack(f *Frame) error   { return f.push(v.Value()) }
func (d Double) pack(f *Frame) error  { return f.push(d.Value()) }

// References are stored as-is; the frame never takes ownership of them.
func (o Object) pack(f *Frame) error    { return f.push(o.Value()) }
func (s String) pack(f *Frame) error    { return f.push(s.Value()) }
func (c Class) pack(f *Frame) error     { return f.push(c.Value()) }
func (t Throwable) pack(f *Frame) error { return f.push(t.Value()) }

func (NullRef) pack(f *Frame) error { return f.push(NullValue()) }

func (t Text) pack(f *Frame) error {
	s := f.env.NewStringUTF(string(t))
	if err := Check(f.env); err != nil {
		return annotate(err, ErrConversion, "NewStringUTF", "", "")
	}
	if !CurrentOptions().KeepPackedStrings {
		f.owned = append(f.owned, s)
	}
	return f.push(s.Value())
}

// ---------------------------------------------------------------------------
// Frame
// ---------------------------------------------------------------------------

// Frame is a packed argument list: one slot per argument, in declaration
// order. The backing array always holds at least one slot so a zero-argument
// frame still has an addressable first element.
//
// Strings the frame created from Text arguments belong to the frame and are
// deleted by Close.
type Frame struct {
	env   Env
	slots []Value
	owned []String
}

// Pack converts args into a frame. It fails only when converting a Text
// argument raises; strings created before the failure are released.
func Pack(env Env, args ...Arg) (*Frame, error) {
	f := &Frame{
		env:   env,
		slots: make([]Value, 0, max(len(args), 1)),
	}
	for _, a := range args {
		if err := a.pack(f); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func (f *Frame) push(v Value) error {
	f.slots = append(f.slots, v)
	return nil
}

// Len is the argument count.
func (f *Frame) Len() int { return len(f.slots) }

// Slots returns the packed slots. The slice has length Len and capacity of
// at least one.
func (f *Frame) Slots() []Value { return f.slots }

// At returns slot i.
func (f *Frame) At(i int) Value { return f.slots[i] }

// Owned reports how many references the frame will delete on Close.
func (f *Frame) Owned() int { return len(f.owned) }

// Close deletes the strings the frame created. It is safe to call twice.
func (f *Frame) Close() {
	for _, s := range f.owned {
		f.env.DeleteLocalRef(Object(s))
	}
	f.owned = nil
}
